package compare

import (
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet() *ComparisonSet {
	return &ComparisonSet{
		BaseScenarioName: "base",
		PlanPath:         "/path/to/plan.yaml",
		BaseResult: &ComparisonResult{
			ScenarioName:       "base",
			Description:        "Plan as given",
			MonthlyPayments:    decimal.NewFromInt(4950),
			FreeMonthlyDeposit: decimal.NewFromInt(3050),
			ExpectedInterest:   decimal.NewFromInt(12500),
			GoalCount:          2,
			Achievable:         2,
			LatestMonths:       36,
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:         "postpone_1yr",
				Description:          "Postpone every target date by 1 year (12 months)",
				MonthlyPayments:      decimal.NewFromInt(3600),
				FreeMonthlyDeposit:   decimal.NewFromInt(4400),
				ExpectedInterest:     decimal.NewFromInt(15000),
				GoalCount:            2,
				Achievable:           2,
				LatestMonths:         48,
				PaymentDiffFromBase:  decimal.NewFromInt(-1350),
				PaymentPctFromBase:   decimal.NewFromFloat(-27.27),
				FreeDepositDiff:      decimal.NewFromInt(1350),
				InterestDiffFromBase: decimal.NewFromInt(2500),
				LatestMonthsDiff:     12,
			},
		},
		Recommendations: []string{"Lowest Payments: postpone_1yr needs ₪1,350.00 less per month than the base plan"},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(sampleSet())

	assert.Contains(t, out, "SAVINGS SCENARIO COMPARISON")
	assert.Contains(t, out, "Base Scenario: base")
	assert.Contains(t, out, "Plan:          /path/to/plan.yaml")
	assert.Contains(t, out, "base (base)")
	assert.Contains(t, out, "₪4950")
	assert.Contains(t, out, "₪12.5K")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "COMPARISON TO BASE")
	assert.Contains(t, out, "postpone_1yr: Postpone every target date by 1 year")
	assert.Contains(t, out, "Monthly Payments: -₪1350 (-27.3%)")
	assert.Contains(t, out, "Interest:         +₪2500")
	assert.Contains(t, out, "Last target:      +12 months")
	assert.NotContains(t, out, "Achievable goals:")
	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Contains(t, out, "• Lowest Payments")
}

func TestTableFormatter_Format_EmptyAlternatives(t *testing.T) {
	set := sampleSet()
	set.AlternativeResults = nil
	set.Recommendations = nil
	set.PlanPath = ""

	out := (&TableFormatter{}).Format(set)
	assert.Contains(t, out, "base (base)")
	assert.NotContains(t, out, "Plan:")
	assert.NotContains(t, out, "COMPARISON TO BASE")
	assert.NotContains(t, out, "RECOMMENDATIONS")
}

func TestTableFormatter_formatDecimal(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "₪950", tf.formatDecimal(decimal.NewFromInt(950)))
	assert.Equal(t, "₪9999", tf.formatDecimal(decimal.NewFromInt(9999)))
	assert.Equal(t, "₪12.5K", tf.formatDecimal(decimal.NewFromInt(12500)))
	assert.Equal(t, "-₪1.25M", tf.formatDecimal(decimal.NewFromInt(-1250000)))
	assert.Equal(t, "twenty-two-chars-ab...", tf.truncate("twenty-two-chars-abcdefgh", 22))
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	set := sampleSet()
	set.AlternativeResults = append(set.AlternativeResults, ComparisonResult{ScenarioName: "same"})

	assert.Equal(t, "Base: base | postpone_1yr: -₪1350 | same: =", (&TableFormatter{}).FormatCompact(set))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleSet())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Scenario,Type,Monthly Payments,"))
	assert.Equal(t, "base,base,4950.00,3050.00,12500.00,0.00,2,2,36,0.00,0.00,0.00,0,0", lines[1])
	assert.Equal(t, "postpone_1yr,alternative,3600.00,4400.00,15000.00,0.00,2,2,48,-1350.00,-27.27,2500.00,0,12", lines[2])
}

func TestJSONFormatter_Format(t *testing.T) {
	set := sampleSet()

	compact, err := (&JSONFormatter{}).Format(set)
	require.NoError(t, err)
	assert.NotContains(t, compact, "\n")

	pretty, err := (&JSONFormatter{Pretty: true}).Format(set)
	require.NoError(t, err)
	assert.Contains(t, pretty, "\n  \"baseScenarioName\": \"base\"")

	var decoded ComparisonSet
	require.NoError(t, gojson.Unmarshal([]byte(pretty), &decoded))
	assert.Equal(t, "base", decoded.BaseScenarioName)
	require.Len(t, decoded.AlternativeResults, 1)
	assert.True(t, decoded.AlternativeResults[0].PaymentDiffFromBase.Equal(decimal.NewFromInt(-1350)))
	assert.Nil(t, decoded.BaseResult.Report)
}
