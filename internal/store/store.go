// Package store provides a SQLite-backed store for goals and settings.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/goalplan/internal/config"
	"github.com/rgehrsitz/goalplan/internal/domain"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store persists the goal list (in insertion order) and the single settings record.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

type querier interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// Open opens or creates the store database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the store database.
func (s *Store) Close() error {
	return s.db.Close()
}

// NormalizeID trims an identifier the way lookups compare them
func NormalizeID(id string) string {
	return strings.TrimSpace(id)
}

func (s *Store) stamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// List returns every goal in insertion order.
func (s *Store) List() ([]domain.Goal, error) {
	return listGoals(s.db)
}

func listGoals(q querier) ([]domain.Goal, error) {
	rows, err := q.Query(`SELECT
		goal_id, name, amount, rate_annual, target_date, existing_capital, savings_type,
		monthly_increase, calculation_mode, monthly_payment, initial_amount
		FROM goals ORDER BY position, goal_id`)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	goals := []domain.Goal{}
	index := make(map[string]int)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		index[g.ID] = len(goals)
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	bonusRows, err := q.Query("SELECT goal_id, month, amount, description FROM goal_bonuses ORDER BY goal_id, seq")
	if err != nil {
		return nil, fmt.Errorf("listing bonuses: %w", err)
	}
	defer func() { _ = bonusRows.Close() }()

	for bonusRows.Next() {
		var id string
		var b domain.Bonus
		var desc sql.NullString
		if err := bonusRows.Scan(&id, &b.Month, &b.Amount, &desc); err != nil {
			return nil, err
		}
		b.Description = desc.String
		if i, ok := index[id]; ok {
			goals[i].Bonuses = append(goals[i].Bonuses, b)
		}
	}
	return goals, bonusRows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGoal(row scanner) (domain.Goal, error) {
	var g domain.Goal
	var targetDate, savingsType, mode string
	if err := row.Scan(&g.ID, &g.Name, &g.Amount, &g.RateAnnual, &targetDate, &g.ExistingCapital,
		&savingsType, &g.MonthlyIncrease, &mode, &g.MonthlyPayment, &g.InitialAmount); err != nil {
		return domain.Goal{}, err
	}
	if t, err := time.Parse(time.RFC3339, targetDate); err == nil {
		g.TargetDate = t
	}
	g.SavingsType, _ = domain.ParseSavingsType(savingsType)
	g.CalculationMode, _ = domain.ParseCalculationMode(mode)
	g.Bonuses = []domain.Bonus{}
	return g, nil
}

// Get returns the goal with the given (trimmed) ID.
func (s *Store) Get(id string) (domain.Goal, bool, error) {
	key := NormalizeID(id)
	row := s.db.QueryRow(`SELECT
		goal_id, name, amount, rate_annual, target_date, existing_capital, savings_type,
		monthly_increase, calculation_mode, monthly_payment, initial_amount
		FROM goals WHERE goal_id = ?`, key)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Goal{}, false, nil
	}
	if err != nil {
		return domain.Goal{}, false, fmt.Errorf("reading goal %s: %w", key, err)
	}

	rows, err := s.db.Query("SELECT month, amount, description FROM goal_bonuses WHERE goal_id = ? ORDER BY seq", key)
	if err != nil {
		return domain.Goal{}, false, fmt.Errorf("reading bonuses for %s: %w", key, err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var b domain.Bonus
		var desc sql.NullString
		if err := rows.Scan(&b.Month, &b.Amount, &desc); err != nil {
			return domain.Goal{}, false, err
		}
		b.Description = desc.String
		g.Bonuses = append(g.Bonuses, b)
	}
	return g, true, rows.Err()
}

// Upsert inserts a goal or replaces the stored goal with the same ID, keeping its
// position. A goal without an ID gets a new UUID. The stored goal is returned.
func (s *Store) Upsert(g domain.Goal) (domain.Goal, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return domain.Goal{}, err
	}
	defer func() { _ = tx.Rollback() }()

	g.ID = NormalizeID(g.ID)
	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	if err := s.writeGoal(tx, g); err != nil {
		return domain.Goal{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Goal{}, err
	}

	stored, _, err := s.Get(g.ID)
	return stored, err
}

// writeGoal stores g, keeping an existing goal's slot or appending a new one
func (s *Store) writeGoal(q querier, g domain.Goal) error {
	var position int
	var existing sql.NullInt64
	err := q.QueryRow("SELECT position FROM goals WHERE goal_id = ?", g.ID).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		var maxPos sql.NullInt64
		if err := q.QueryRow("SELECT MAX(position) FROM goals").Scan(&maxPos); err != nil {
			return fmt.Errorf("reading goal positions: %w", err)
		}
		if maxPos.Valid {
			position = int(maxPos.Int64) + 1
		}
	case err != nil:
		return fmt.Errorf("reading goal %s: %w", g.ID, err)
	default:
		position = int(existing.Int64)
	}

	targetDate := ""
	if !g.TargetDate.IsZero() {
		targetDate = g.TargetDate.Format(time.RFC3339)
	}

	_, err = q.Exec(`INSERT INTO goals
		(goal_id, position, name, amount, rate_annual, target_date, existing_capital,
		 savings_type, monthly_increase, calculation_mode, monthly_payment, initial_amount, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(goal_id) DO UPDATE SET
		 position = excluded.position, name = excluded.name, amount = excluded.amount,
		 rate_annual = excluded.rate_annual, target_date = excluded.target_date,
		 existing_capital = excluded.existing_capital, savings_type = excluded.savings_type,
		 monthly_increase = excluded.monthly_increase, calculation_mode = excluded.calculation_mode,
		 monthly_payment = excluded.monthly_payment, initial_amount = excluded.initial_amount,
		 updated_at = excluded.updated_at`,
		g.ID, position, g.Name, g.Amount, g.RateAnnual, targetDate, g.ExistingCapital,
		g.SavingsType.String(), g.MonthlyIncrease, g.CalculationMode.String(), g.MonthlyPayment,
		g.InitialAmount, s.stamp(),
	)
	if err != nil {
		return fmt.Errorf("writing goal %s: %w", g.ID, err)
	}

	if _, err := q.Exec("DELETE FROM goal_bonuses WHERE goal_id = ?", g.ID); err != nil {
		return err
	}
	for i, b := range g.Bonuses {
		_, err := q.Exec(`INSERT INTO goal_bonuses (goal_id, seq, month, amount, description)
			VALUES (?, ?, ?, ?, ?)`, g.ID, i, b.Month, b.Amount, b.Description)
		if err != nil {
			return fmt.Errorf("writing bonus %d of %s: %w", i, g.ID, err)
		}
	}
	return nil
}

// Remove deletes a goal. Removing an unknown ID is not an error.
func (s *Store) Remove(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	key := NormalizeID(id)
	if _, err := tx.Exec("DELETE FROM goal_bonuses WHERE goal_id = ?", key); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM goals WHERE goal_id = ?", key); err != nil {
		return fmt.Errorf("removing goal %s: %w", key, err)
	}
	return tx.Commit()
}

// Clear removes every goal.
func (s *Store) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := clearGoals(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func clearGoals(q querier) error {
	if _, err := q.Exec("DELETE FROM goal_bonuses"); err != nil {
		return fmt.Errorf("clearing bonuses: %w", err)
	}
	if _, err := q.Exec("DELETE FROM goals"); err != nil {
		return fmt.Errorf("clearing goals: %w", err)
	}
	return nil
}

// ReplaceAll swaps the whole goal list in one transaction.
func (s *Store) ReplaceAll(goals []domain.Goal) ([]domain.Goal, error) {
	return s.Import(goals, true)
}

// Import adds goals after the existing ones, or replaces the list when replace is set.
// An imported goal whose ID is already stored overwrites it in place.
func (s *Store) Import(goals []domain.Goal, replace bool) ([]domain.Goal, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	if replace {
		if err := clearGoals(tx); err != nil {
			return nil, err
		}
	}
	for _, g := range goals {
		g.ID = NormalizeID(g.ID)
		if g.ID == "" {
			g.ID = uuid.NewString()
		}
		if err := s.writeGoal(tx, g); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.List()
}

// Export returns the goal list as an indented JSON array.
func (s *Store) Export() ([]byte, error) {
	goals, err := s.List()
	if err != nil {
		return nil, err
	}
	data, err := gojson.MarshalIndent(goals, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding goals: %w", err)
	}
	return data, nil
}

// Settings returns the stored settings, or the defaults when none are stored.
func (s *Store) Settings() (domain.Settings, error) {
	var payload string
	err := s.db.QueryRow("SELECT payload FROM settings WHERE id = 1").Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultSettings(), nil
	}
	if err != nil {
		return domain.Settings{}, fmt.Errorf("reading settings: %w", err)
	}

	var raw map[string]any
	if err := gojson.Unmarshal([]byte(payload), &raw); err != nil {
		return domain.Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	return config.SanitizeSettings(raw), nil
}

// SaveSettings stores the full settings record.
func (s *Store) SaveSettings(settings domain.Settings) error {
	payload, err := gojson.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO settings (id, payload, updated_at) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		string(payload), s.stamp())
	if err != nil {
		return fmt.Errorf("writing settings: %w", err)
	}
	return nil
}

// PatchSettings merges the given fields over the stored settings. Keys follow the
// plan file names in any casing; values pass through the same sanitization.
func (s *Store) PatchSettings(patch map[string]any) (domain.Settings, error) {
	current, err := s.Settings()
	if err != nil {
		return domain.Settings{}, err
	}
	data, err := gojson.Marshal(current)
	if err != nil {
		return domain.Settings{}, err
	}
	merged := map[string]any{}
	if err := gojson.Unmarshal(data, &merged); err != nil {
		return domain.Settings{}, err
	}
	for k, v := range patch {
		for existing := range merged {
			if config.NormalizeKey(existing) == config.NormalizeKey(k) {
				delete(merged, existing)
			}
		}
		merged[k] = v
	}

	next := config.SanitizeSettings(merged)
	if err := s.SaveSettings(next); err != nil {
		return domain.Settings{}, err
	}
	return next, nil
}

// ClearSettings restores the defaults.
func (s *Store) ClearSettings() (domain.Settings, error) {
	if _, err := s.db.Exec("DELETE FROM settings"); err != nil {
		return domain.Settings{}, fmt.Errorf("clearing settings: %w", err)
	}
	return domain.DefaultSettings(), nil
}

// LoadPlan reads the stored settings and goals as a plan.
func (s *Store) LoadPlan() (*domain.Plan, error) {
	settings, err := s.Settings()
	if err != nil {
		return nil, err
	}
	goals, err := s.List()
	if err != nil {
		return nil, err
	}
	return &domain.Plan{Settings: settings, Goals: goals}, nil
}
