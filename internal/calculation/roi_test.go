package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCAGR(t *testing.T) {
	assert.InDelta(t, 10, CAGR(1210, 1000, 24), 1e-9)
	assert.Equal(t, 0.0, CAGR(1000, 0, 24))
	assert.Equal(t, 0.0, CAGR(1000, 1000, 0))
	assert.Equal(t, 0.0, CAGR(0, 1000, 12))
	assert.InDelta(t, -50, CAGR(500, 1000, 12), 1e-9)
}

func TestCalculateROI(t *testing.T) {
	engine := NewProjectionEngine()

	flat := fixedGoal(12000, 0, 12)
	assert.InDelta(t, 0, engine.CalculateROI(flat, nominalSettings(), testContext()), 1e-9)

	growing := fixedGoal(120000, 6, 24)
	roi := engine.CalculateROI(growing, nominalSettings(), testContext())
	assert.Greater(t, roi, 0.0)
	assert.Less(t, roi, 6.0, "annualized return on a deposit stream is below the account rate")
}

func TestRule72Years(t *testing.T) {
	years, ok := Rule72Years(6)
	assert.True(t, ok)
	assert.Equal(t, 12.0, years)

	_, ok = Rule72Years(0)
	assert.False(t, ok)
	_, ok = Rule72Years(-3)
	assert.False(t, ok)
}
