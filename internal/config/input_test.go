package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlPlan = `
settings:
  compute_real: false
  inflation_annual_pct: 2
  general_monthly_deposit: 6000
  general_interest_rate: 2
goals:
  - id: house
    name: House
    amount: 120000
    rate_annual: 6
    target_date: 2027-03-10
    savings_type: fixed
    bonuses:
      - month: 12
        amount: 10000
        description: year-end bonus
  - id: car
    name: Car
    amount: "₪40,000"
    rate_annual: 3
    target_date: 10/03/2026
    calculation_mode: amount_payment
    monthly_payment: 2500
`

const jsonPlan = `{
  "settings": {"computeReal": true, "inflationAnnualPct": 2.5, "generalMonthlyDeposit": 1000},
  "goals": [
    {"id": "trip", "name": "Trip", "amount": 5000, "rateAnnual": 1.5,
     "targetDate": "2026-01-01T00:00:00.000Z", "savingsType": "progressive", "monthlyIncrease": 10,
     "bonuses": [{"month": 3, "amount": 100, "desc": "gift"}]}
  ]
}`

const tomlPlan = `
[settings]
compute_real = false
general_monthly_deposit = 2500

[[goals]]
id = "edu"
name = "Education"
amount = 30000
rate_annual = 5
target_date = 2030-09-01

[[goals.bonuses]]
month = 24
amount = 1500
`

func newTestParser() *InputParser {
	return &InputParser{Now: func() time.Time { return testNow }}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("plan.JSON"))
	assert.Equal(t, FormatTOML, FormatFromPath("a/b/plan.toml"))
	assert.Equal(t, FormatYAML, FormatFromPath("plan.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("plan"))
}

func TestLoadFromFile_YAML(t *testing.T) {
	plan, err := newTestParser().LoadFromFile(writeFile(t, "plan.yaml", yamlPlan))
	require.NoError(t, err)

	assert.Equal(t, 6000.0, plan.Settings.GeneralMonthlyDeposit)
	assert.Equal(t, 2.0, plan.Settings.InflationAnnualPct)
	require.Len(t, plan.Goals, 2)

	house := plan.Goals[0]
	assert.Equal(t, "house", house.ID)
	assert.Equal(t, time.Date(2027, 3, 10, 12, 0, 0, 0, time.UTC), house.TargetDate)
	require.Len(t, house.Bonuses, 1)
	assert.Equal(t, "year-end bonus", house.Bonuses[0].Description)

	car := plan.Goals[1]
	assert.Equal(t, 40000.0, car.Amount)
	assert.Equal(t, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), car.TargetDate)
	assert.True(t, car.HasPinnedPayment())
}

func TestLoadFromFile_JSON(t *testing.T) {
	plan, err := newTestParser().LoadFromFile(writeFile(t, "plan.json", jsonPlan))
	require.NoError(t, err)

	assert.True(t, plan.Settings.ComputeReal)
	require.Len(t, plan.Goals, 1)
	g := plan.Goals[0]
	assert.True(t, g.IsProgressive())
	assert.Equal(t, 10.0, g.MonthlyIncrease)
	assert.Equal(t, 2026, g.TargetDate.Year())
	assert.Equal(t, "gift", g.Bonuses[0].Description)
}

func TestLoadFromFile_TOML(t *testing.T) {
	plan, err := newTestParser().LoadFromFile(writeFile(t, "plan.toml", tomlPlan))
	require.NoError(t, err)

	assert.Equal(t, 2500.0, plan.Settings.GeneralMonthlyDeposit)
	require.Len(t, plan.Goals, 1)
	g := plan.Goals[0]
	assert.Equal(t, "Education", g.Name)
	assert.Equal(t, 2030, g.TargetDate.Year())
	assert.Equal(t, time.September, g.TargetDate.Month())
	require.Len(t, g.Bonuses, 1)
	assert.Equal(t, 24, g.Bonuses[0].Month)
}

func TestLoadFromFile_Errors(t *testing.T) {
	_, err := newTestParser().LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = newTestParser().LoadFromFile(writeFile(t, "bad.json", "{not json"))
	assert.Error(t, err)

	_, err = newTestParser().LoadFromFile(writeFile(t, "bad.yaml", "goals: [\n"))
	assert.Error(t, err)
}

func validPlan() *domain.Plan {
	return &domain.Plan{
		Settings: domain.DefaultSettings(),
		Goals: []domain.Goal{
			{ID: "a", Name: "A", Amount: 1000, RateAnnual: 3, TargetDate: testNow.AddDate(1, 0, 0)},
			{ID: "b", Name: "B", Amount: 2000, RateAnnual: 4, TargetDate: testNow.AddDate(2, 0, 0)},
		},
	}
}

func TestValidateConfiguration(t *testing.T) {
	p := newTestParser()
	require.NoError(t, p.ValidateConfiguration(validPlan()))

	assert.Error(t, p.ValidateConfiguration(nil))

	dup := validPlan()
	dup.Goals[1].ID = "a"
	err := p.ValidateConfiguration(dup)
	require.Error(t, err)
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "goals[1].id", ve.Field)

	zero := validPlan()
	zero.Goals[0].Amount = 0
	err = p.ValidateConfiguration(zero)
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "amount", ve.Field)

	realMode := validPlan()
	realMode.Settings.ComputeReal = true
	realMode.Settings.InflationAnnualPct = -1
	assert.Error(t, p.ValidateConfiguration(realMode))

	noDate := validPlan()
	noDate.Goals[0].TargetDate = time.Time{}
	assert.Error(t, p.ValidateConfiguration(noDate))
}

func TestSavePlan_RoundTrip(t *testing.T) {
	p := newTestParser()
	original := validPlan()
	original.Goals[0].Bonuses = []domain.Bonus{{Month: 2, Amount: 50, Description: "x"}}
	original.Goals[1].SavingsType = domain.SavingsProgressive
	original.Goals[1].MonthlyIncrease = 5

	for _, name := range []string{"out.yaml", "out.json", "out.toml"} {
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, p.SavePlan(original, path), name)

		loaded, err := p.LoadFromFile(path)
		require.NoError(t, err, name)
		require.Len(t, loaded.Goals, 2, name)
		assert.Equal(t, original.Goals[0].Bonuses, loaded.Goals[0].Bonuses, name)
		assert.Equal(t, domain.SavingsProgressive, loaded.Goals[1].SavingsType, name)
		assert.Equal(t, 5.0, loaded.Goals[1].MonthlyIncrease, name)
		assert.Equal(t, original.Goals[1].TargetDate.Year(), loaded.Goals[1].TargetDate.Year(), name)
	}
}
