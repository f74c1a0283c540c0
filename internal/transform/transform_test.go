package transform

import (
	"errors"
	"testing"
	"time"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a basic test goal
func createTestGoal() *domain.Goal {
	return &domain.Goal{
		ID:         "house",
		Name:       "House",
		Amount:     120000,
		RateAnnual: 6,
		TargetDate: time.Date(2027, 3, 10, 12, 0, 0, 0, time.UTC),
		Bonuses:    []domain.Bonus{{Month: 6, Amount: 1000}},
	}
}

func TestApplyTransforms_NilGoal(t *testing.T) {
	_, err := ApplyTransforms(nil, []GoalTransform{&ShiftRate{Points: 1}})
	assert.Error(t, err)
}

func TestApplyTransforms_EmptyTransformsReturnsCopy(t *testing.T) {
	base := createTestGoal()

	result, err := ApplyTransforms(base, nil)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.NotSame(t, base, result)
	assert.Equal(t, *base, *result)
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(createTestGoal(), []GoalTransform{nil})
	assert.Error(t, err)
}

func TestApplyTransforms_Chain(t *testing.T) {
	base := createTestGoal()

	result, err := ApplyTransforms(base, []GoalTransform{
		&ShiftRate{Points: -1.5},
		&PostponeTarget{Months: 6},
		&AddBonus{Month: 12, Amount: 5000, Note: "year-end"},
		&SetExistingCapital{Amount: 2500},
		&PinPayment{Payment: 1800},
	})
	require.NoError(t, err)

	assert.Equal(t, 4.5, result.RateAnnual)
	assert.Equal(t, time.Date(2027, 9, 10, 12, 0, 0, 0, time.UTC), result.TargetDate)
	require.Len(t, result.Bonuses, 2)
	assert.Equal(t, 5000.0, result.Bonuses[1].Amount)
	assert.Equal(t, 2500.0, result.ExistingCapital)
	assert.Equal(t, domain.ModeAmountPayment, result.CalculationMode)
	assert.Equal(t, 1800.0, result.MonthlyPayment)

	// base untouched
	assert.Equal(t, 6.0, base.RateAnnual)
	assert.Len(t, base.Bonuses, 1)
	assert.Zero(t, base.ExistingCapital)
}

func TestApplyTransforms_ValidationFailure(t *testing.T) {
	_, err := ApplyTransforms(createTestGoal(), []GoalTransform{&PinPayment{Payment: 0}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transform pin_payment validation failed")

	var te *TransformError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "pin_payment", te.TransformName)
	assert.Equal(t, "validate", te.Operation)
}

func TestPostponeTarget_RequiresDate(t *testing.T) {
	g := createTestGoal()
	g.TargetDate = time.Time{}
	assert.Error(t, (&PostponeTarget{Months: 1}).Validate(g))
	assert.Error(t, (&PostponeTarget{Months: -1}).Validate(createTestGoal()))
}

func TestPinPayment_DatePaymentMode(t *testing.T) {
	g, err := ApplyTransforms(createTestGoal(), []GoalTransform{&PinPayment{Payment: 10, Mode: domain.ModeDatePayment}})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeDatePayment, g.CalculationMode)

	// standard is not a pinning mode
	g, err = ApplyTransforms(createTestGoal(), []GoalTransform{&PinPayment{Payment: 10, Mode: domain.ModeStandard}})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeAmountPayment, g.CalculationMode)
}

func TestSetProgressive(t *testing.T) {
	g, err := ApplyTransforms(createTestGoal(), []GoalTransform{&SetProgressive{Increase: 25}})
	require.NoError(t, err)
	assert.True(t, g.IsProgressive())
	assert.Equal(t, 25.0, g.MonthlyIncrease)

	assert.Error(t, (&SetProgressive{Increase: -1}).Validate(createTestGoal()))
}

func TestAddBonus_Validation(t *testing.T) {
	g := createTestGoal()
	assert.Error(t, (&AddBonus{Month: 0, Amount: 10}).Validate(g))
	assert.Error(t, (&AddBonus{Month: 1, Amount: 0}).Validate(g))
	assert.NoError(t, (&AddBonus{Month: 1, Amount: 10}).Validate(g))
}

func TestApplyToAll(t *testing.T) {
	goals := []domain.Goal{*createTestGoal(), {ID: "car", RateAnnual: 3}}

	out, err := ApplyToAll(goals, []GoalTransform{&ShiftRate{Points: 1}})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 7.0, out[0].RateAnnual)
	assert.Equal(t, 4.0, out[1].RateAnnual)
	assert.Equal(t, 6.0, goals[0].RateAnnual)
}

func TestTransformDescriptions(t *testing.T) {
	assert.Equal(t, "Shift annual rate by +1.50 percentage points", (&ShiftRate{Points: 1.5}).Description())
	assert.Equal(t, "Postpone target date by 3 months", (&PostponeTarget{Months: 3}).Description())
	assert.Equal(t, "Pin monthly payment to 100.00 (amount_payment)", (&PinPayment{Payment: 100}).Description())
}
