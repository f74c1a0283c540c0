package store

import (
	"path/filepath"
	"testing"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "goals.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleGoal(id, name string) domain.Goal {
	return domain.Goal{
		ID:              id,
		Name:            name,
		Amount:          50000,
		RateAnnual:      4.5,
		TargetDate:      time.Date(2029, 6, 30, 12, 0, 0, 0, time.UTC),
		ExistingCapital: 1000,
		SavingsType:     domain.SavingsProgressive,
		MonthlyIncrease: 15,
		CalculationMode: domain.ModeDatePayment,
		MonthlyPayment:  700,
		Bonuses: []domain.Bonus{
			{Month: 6, Amount: 2000, Description: "bonus"},
			{Month: 18, Amount: 500},
		},
	}
}

func TestStore_UpsertAndGet(t *testing.T) {
	s := openTestStore(t)

	stored, err := s.Upsert(sampleGoal(" car ", "Car"))
	require.NoError(t, err)
	assert.Equal(t, "car", stored.ID)

	got, ok, err := s.Get("car  ")
	require.NoError(t, err)
	require.True(t, ok)

	want := sampleGoal("car", "Car")
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.Amount, got.Amount)
	assert.True(t, want.TargetDate.Equal(got.TargetDate))
	assert.Equal(t, want.SavingsType, got.SavingsType)
	assert.Equal(t, want.CalculationMode, got.CalculationMode)
	assert.Equal(t, want.Bonuses, got.Bonuses)

	_, ok, err = s.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_UpsertAssignsIDAndKeepsPosition(t *testing.T) {
	s := openTestStore(t)

	first, err := s.Upsert(sampleGoal("", "First"))
	require.NoError(t, err)
	_, err = uuid.Parse(first.ID)
	require.NoError(t, err)

	_, err = s.Upsert(sampleGoal("second", "Second"))
	require.NoError(t, err)

	updated := sampleGoal(first.ID, "First renamed")
	updated.Bonuses = nil
	_, err = s.Upsert(updated)
	require.NoError(t, err)

	goals, err := s.List()
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "First renamed", goals[0].Name)
	assert.Empty(t, goals[0].Bonuses)
	assert.Equal(t, "second", goals[1].ID)
	assert.Len(t, goals[1].Bonuses, 2)
}

func TestStore_RemoveAndClear(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Import([]domain.Goal{sampleGoal("a", "A"), sampleGoal("b", "B")}, false)
	require.NoError(t, err)

	require.NoError(t, s.Remove(" a"))
	require.NoError(t, s.Remove("unknown"))
	goals, err := s.List()
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "b", goals[0].ID)

	require.NoError(t, s.Clear())
	goals, err = s.List()
	require.NoError(t, err)
	assert.Empty(t, goals)
}

func TestStore_ImportAppendAndReplace(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Import([]domain.Goal{sampleGoal("a", "A")}, false)
	require.NoError(t, err)

	goals, err := s.Import([]domain.Goal{sampleGoal("b", "B"), sampleGoal("a", "A2")}, false)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "A2", goals[0].Name, "existing id overwritten in place")
	assert.Equal(t, "b", goals[1].ID)

	goals, err = s.ReplaceAll([]domain.Goal{sampleGoal("z", "Z")})
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "z", goals[0].ID)
}

func TestStore_Export(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Import([]domain.Goal{sampleGoal("a", "A")}, false)
	require.NoError(t, err)

	data, err := s.Export()
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, gojson.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "a", decoded[0]["id"])
	assert.Equal(t, "progressive", decoded[0]["savingsType"])
	assert.Equal(t, "date_payment", decoded[0]["calculationMode"])
}

func TestStore_Settings(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Settings()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got)

	got, err = s.PatchSettings(map[string]any{"general_monthly_deposit": "4,000", "computeReal": true})
	require.NoError(t, err)
	assert.Equal(t, 4000.0, got.GeneralMonthlyDeposit)
	assert.True(t, got.ComputeReal)
	assert.Equal(t, 2.5, got.InflationAnnualPct)

	got, err = s.PatchSettings(map[string]any{"compute_real": false})
	require.NoError(t, err)
	assert.False(t, got.ComputeReal)
	assert.Equal(t, 4000.0, got.GeneralMonthlyDeposit)

	reloaded, err := s.Settings()
	require.NoError(t, err)
	assert.Equal(t, got, reloaded)

	cleared, err := s.ClearSettings()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), cleared)
	reloaded, err = s.Settings()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), reloaded)
}

func TestStore_LoadPlan(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.SaveSettings(domain.Settings{GlobalSaved: 10000, InflationAnnualPct: 3}))
	_, err := s.Upsert(sampleGoal("a", "A"))
	require.NoError(t, err)

	plan, err := s.LoadPlan()
	require.NoError(t, err)
	assert.Equal(t, 10000.0, plan.Settings.GlobalSaved)
	assert.Equal(t, 3.0, plan.Settings.InflationAnnualPct)
	require.Len(t, plan.Goals, 1)
}
