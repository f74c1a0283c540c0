package transform

import (
	"testing"
	"time"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_List(t *testing.T) {
	r := NewTransformRegistry()
	assert.Equal(t, []string{
		"add_bonus",
		"pin_payment",
		"postpone_target",
		"set_existing_capital",
		"set_progressive",
		"set_target_date",
		"shift_rate",
	}, r.List())
}

func TestRegistry_ParseTransformSpec(t *testing.T) {
	r := NewTransformRegistry()

	tr, err := r.ParseTransformSpec("shift_rate:points=-0.75")
	require.NoError(t, err)
	assert.Equal(t, &ShiftRate{Points: -0.75}, tr)

	tr, err = r.ParseTransformSpec("add_bonus: month=12, amount=5000, description=bonus")
	require.NoError(t, err)
	assert.Equal(t, &AddBonus{Month: 12, Amount: 5000, Note: "bonus"}, tr)

	tr, err = r.ParseTransformSpec("pin_payment:amount=1500.50,mode=date_payment")
	require.NoError(t, err)
	assert.Equal(t, &PinPayment{Payment: 1500.5, Mode: domain.ModeDatePayment}, tr)

	tr, err = r.ParseTransformSpec("postpone_target:months=6")
	require.NoError(t, err)
	assert.Equal(t, &PostponeTarget{Months: 6}, tr)

	tr, err = r.ParseTransformSpec("set_existing_capital:amount=2500")
	require.NoError(t, err)
	assert.Equal(t, &SetExistingCapital{Amount: 2500}, tr)

	tr, err = r.ParseTransformSpec("set_progressive:increase=20")
	require.NoError(t, err)
	assert.Equal(t, &SetProgressive{Increase: 20}, tr)
}

func TestRegistry_AddBonusCarriesDescription(t *testing.T) {
	tr, err := NewTransformRegistry().ParseTransformSpec("add_bonus:month=12,amount=5000,description=year-end")
	require.NoError(t, err)
	assert.Equal(t, "Add bonus of 5000.00 at month 12", tr.Description())

	result, err := ApplyTransforms(createTestGoal(), []GoalTransform{tr})
	require.NoError(t, err)
	require.Len(t, result.Bonuses, 2)
	assert.Equal(t, domain.Bonus{Month: 12, Amount: 5000, Description: "year-end"}, result.Bonuses[1])
}

func TestRegistry_SetTargetDate(t *testing.T) {
	tr, err := NewTransformRegistry().ParseTransformSpec("set_target_date:date=31/12/2030")
	require.NoError(t, err)

	st, ok := tr.(*SetTargetDate)
	require.True(t, ok)
	assert.Equal(t, 2030, st.Date.Year())
	assert.Equal(t, time.December, st.Date.Month())
	assert.Equal(t, 31, st.Date.Day())
}

func TestRegistry_Errors(t *testing.T) {
	r := NewTransformRegistry()

	for _, spec := range []string{
		"shift_rate",                      // no params separator
		"unknown:x=1",                     // unknown transform
		"shift_rate:points",               // malformed pair
		"shift_rate:delta=1",              // missing param
		"shift_rate:points=abc",           // bad number
		"postpone_target:months=1.5",      // not an int
		"pin_payment:amount=10,mode=standard",
		"set_target_date:date=2030-13-45",
	} {
		_, err := r.ParseTransformSpec(spec)
		assert.Error(t, err, spec)
	}
}

func TestRegistry_ParseTransformSpecs(t *testing.T) {
	r := NewTransformRegistry()

	ts, err := r.ParseTransformSpecs([]string{"shift_rate:points=1", "postpone_target:months=2"})
	require.NoError(t, err)
	require.Len(t, ts, 2)
	assert.Equal(t, "shift_rate", ts[0].Name())
	assert.Equal(t, "postpone_target", ts[1].Name())

	_, err = r.ParseTransformSpecs([]string{"shift_rate:points=1", "bogus:x=1"})
	assert.Error(t, err)
}

func TestRegistry_CustomFactory(t *testing.T) {
	r := NewTransformRegistry()
	r.Register("double_rate", func(map[string]string) (GoalTransform, error) {
		return &ShiftRate{Points: 6}, nil
	})

	tr, err := r.Create("double_rate", nil)
	require.NoError(t, err)
	assert.Equal(t, "shift_rate", tr.Name())
}
