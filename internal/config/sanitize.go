package config

import (
	"math"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/goalplan/internal/dateutil"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultGoalName is used for goals stored without a name
const DefaultGoalName = "Goal"

// Sanitization is the single boundary where loosely typed plan records become domain
// values. Nothing here returns an error: garbage becomes a safe default, matching what
// the engine expects (finite, non-negative money; bonus months >= 1).

// Number parses a signed numeric value. Plain decimal strings, exponents included, parse
// as is; other strings are stripped of everything except digits, '.' and '-', so
// "₪1,200.50" reads as 1200.5. Anything unparseable or non-finite is 0.
func Number(v any) float64 {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		return Number(string(x))
	case decimal.Decimal:
		f = x.InexactFloat64()
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		if d, err := decimal.NewFromString(strings.TrimSpace(x)); err == nil {
			f = d.InexactFloat64()
			break
		}
		// currency-decorated input such as "₪1,200.50"
		cleaned := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				return r
			}
			return -1
		}, x)
		if cleaned == "" {
			return 0
		}
		d, err := decimal.NewFromString(cleaned)
		if err != nil {
			return 0
		}
		f = d.InexactFloat64()
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Money parses a monetary amount, clamped at 0
func Money(v any) float64 {
	return math.Max(0, Number(v))
}

// Month parses a 1-based month index, truncating fractions and clamping at 1
func Month(v any) int {
	n := math.Trunc(Number(v))
	if n < 1 {
		return 1
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// Bool parses a flag: true/yes/on/1 in any case, or a non-zero number
func Bool(v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "true", "yes", "on", "1":
			return true
		}
		return false
	default:
		return Number(v) != 0
	}
}

// Text renders a scalar as a trimmed string
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case json.Number:
		return string(x)
	default:
		return ""
	}
}

// TargetDate normalizes a date given as time.Time, a date string or epoch milliseconds.
// Anything else, including an unparseable string, falls back to now.
func TargetDate(v any, now time.Time) time.Time {
	loc := now.Location()
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return dateutil.Midday(now)
		}
		return dateutil.Midday(x)
	case string:
		if t, err := dateutil.ParseDate(x, loc); err == nil {
			return dateutil.Midday(t)
		}
	case float64, int, int64, json.Number:
		if ms := Number(x); ms != 0 {
			return dateutil.Midday(dateutil.FromEpochMillis(int64(ms), loc))
		}
	}
	return dateutil.Midday(now)
}

// lookup finds a key by its NormalizeKey form
func lookup(m map[string]any, key string) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	want := NormalizeKey(key)
	for k, v := range m {
		if NormalizeKey(k) == want {
			return v, true
		}
	}
	return nil, false
}

func get(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := lookup(m, k); ok {
			return v
		}
	}
	return nil
}

// NormalizeKey folds a field name so "target_date", "targetDate" and "target-date" compare equal
func NormalizeKey(k string) string {
	return strings.ToLower(strings.NewReplacer("_", "", "-", "").Replace(k))
}

// asMap accepts both map[string]any and the map[any]any some decoders produce
func asMap(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case map[string]any:
		return x, true
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[Text(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func asSlice(v any) []any {
	switch x := v.(type) {
	case []any:
		return x
	case []map[string]any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = x[i]
		}
		return out
	default:
		return nil
	}
}

// SanitizeGoal converts a raw goal record into a domain goal. Missing IDs get a UUID,
// unknown enum names fall back to fixed/standard.
func SanitizeGoal(raw map[string]any, now time.Time) domain.Goal {
	id := Text(get(raw, "id"))
	if id == "" {
		id = uuid.NewString()
	}
	name := Text(get(raw, "name"))
	if name == "" {
		name = DefaultGoalName
	}

	savingsType, _ := domain.ParseSavingsType(Text(get(raw, "savingsType")))
	mode, _ := domain.ParseCalculationMode(Text(get(raw, "calculationMode")))

	g := domain.Goal{
		ID:              id,
		Name:            name,
		Amount:          Money(get(raw, "amount")),
		RateAnnual:      Number(get(raw, "rateAnnual", "rate")),
		TargetDate:      TargetDate(get(raw, "targetDate"), now),
		ExistingCapital: Money(get(raw, "existingCapital")),
		SavingsType:     savingsType,
		MonthlyIncrease: Money(get(raw, "monthlyIncrease")),
		CalculationMode: mode,
		MonthlyPayment:  Money(get(raw, "monthlyPayment")),
		InitialAmount:   Money(get(raw, "initialAmount")),
		Bonuses:         []domain.Bonus{},
	}

	for _, item := range asSlice(get(raw, "bonuses")) {
		b, ok := asMap(item)
		if !ok {
			continue
		}
		g.Bonuses = append(g.Bonuses, domain.Bonus{
			Month:       Month(get(b, "month")),
			Amount:      Money(get(b, "amount")),
			Description: Text(get(b, "description", "desc")),
		})
	}

	return g
}

// SanitizeSettings converts a raw settings record, starting from DefaultSettings for
// any field that is absent.
func SanitizeSettings(raw map[string]any) domain.Settings {
	s := domain.DefaultSettings()
	if raw == nil {
		return s
	}
	if v, ok := lookup(raw, "computeReal"); ok {
		s.ComputeReal = Bool(v)
	}
	if v, ok := lookup(raw, "inflationAnnualPct"); ok {
		s.InflationAnnualPct = Number(v)
	}
	if v, ok := lookup(raw, "generalMonthlyDeposit"); ok {
		s.GeneralMonthlyDeposit = Money(v)
	}
	if v, ok := lookup(raw, "generalInterestRate"); ok {
		s.GeneralInterestRate = Number(v)
	}
	if v, ok := lookup(raw, "monthlyIncome"); ok {
		s.MonthlyIncome = Money(v)
	}
	if v, ok := lookup(raw, "globalSaved"); ok {
		s.GlobalSaved = Money(v)
	}
	if v, ok := lookup(raw, "globalAnnualRate"); ok {
		s.GlobalAnnualRate = Number(v)
	}
	return s
}

// SanitizePlan converts a raw plan document with "settings" and "goals" sections.
// A bare list is read as goals only.
func SanitizePlan(raw any, now time.Time) domain.Plan {
	plan := domain.Plan{Settings: domain.DefaultSettings(), Goals: []domain.Goal{}}

	var goals []any
	if m, ok := asMap(raw); ok {
		if sm, ok := asMap(get(m, "settings")); ok {
			plan.Settings = SanitizeSettings(sm)
		}
		goals = asSlice(get(m, "goals"))
	} else {
		goals = asSlice(raw)
	}

	for _, item := range goals {
		gm, ok := asMap(item)
		if !ok {
			continue
		}
		plan.Goals = append(plan.Goals, SanitizeGoal(gm, now))
	}
	return plan
}
