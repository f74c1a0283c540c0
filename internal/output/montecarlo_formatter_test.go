package output

import (
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

func sampleMonteCarlo() *domain.MonteCarloResult {
	return &domain.MonteCarloResult{
		GoalID:          "house",
		GoalName:        "House",
		GoalAmount:      60000,
		Payment:         1540.25,
		MonthsUntil:     36,
		MeanRate:        6,
		RateStdDev:      2,
		NumSimulations:  1000,
		Seed:            1,
		SuccessRate:     0.512,
		MeanFinal:       60010,
		MeanShortfall:   640.5,
		DeterministicFV: 60000,
		FinalBalance:    domain.Percentiles{P10: 58900, P25: 59450, P50: 60005, P75: 60560, P90: 61100},
	}
}

func TestMonteCarloTableFormatter(t *testing.T) {
	f := NewMonteCarloFormatter("table")
	assert.Equal(t, "table", f.Name())

	out, err := f.FormatMonteCarlo(sampleMonteCarlo())
	require.NoError(t, err)
	assert.Contains(t, out, "MONTE CARLO SIMULATION")
	assert.Contains(t, out, "Goal:              House (house)")
	assert.Contains(t, out, "Amount:            ₪60,000.00 in 36 months (3y 0m)")
	assert.Contains(t, out, "Yearly rate:       6.00% ± 2.00 points")
	assert.Contains(t, out, "Probability of reaching the amount: 51.20%")
	assert.Contains(t, out, "Mean shortfall when missed:         ₪640.50")
	assert.Contains(t, out, "₪58,900.00")

	res := sampleMonteCarlo()
	res.MeanShortfall = 0
	out, err = f.FormatMonteCarlo(res)
	require.NoError(t, err)
	assert.NotContains(t, out, "Mean shortfall")

	_, err = f.FormatMonteCarlo(nil)
	assert.Error(t, err)
}

func TestMonteCarloJSONFormatter(t *testing.T) {
	f := NewMonteCarloFormatter("JSON")
	assert.Equal(t, "json", f.Name())

	out, err := f.FormatMonteCarlo(sampleMonteCarlo())
	require.NoError(t, err)

	var decoded domain.MonteCarloResult
	require.NoError(t, gojson.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, *sampleMonteCarlo(), decoded)
}
