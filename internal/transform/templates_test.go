package transform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

func templatePlan() domain.Plan {
	return domain.Plan{
		Settings: domain.DefaultSettings(),
		Goals: []domain.Goal{
			{ID: "house", Name: "House", Amount: 120000, RateAnnual: 6, TargetDate: time.Date(2027, 3, 10, 12, 0, 0, 0, time.UTC)},
			{ID: "car", Name: "Car", Amount: 30000, RateAnnual: 0, TargetDate: time.Date(2028, 3, 10, 12, 0, 0, 0, time.UTC)},
		},
	}
}

func TestTemplateRegistry_RegisterAndGet(t *testing.T) {
	registry := NewTemplateRegistry()
	registry.Register(Template{Name: "Test_Template", Description: "A test template"})

	got, ok := registry.Get("test_template")
	require.True(t, ok)
	assert.Equal(t, "Test_Template", got.Name)

	_, ok = registry.Get(" TEST_TEMPLATE ")
	assert.True(t, ok, "lookup is case-insensitive")

	_, ok = registry.Get("nonexistent")
	assert.False(t, ok)
}

func TestCreateBuiltInTemplates(t *testing.T) {
	registry := CreateBuiltInTemplates()
	names := registry.List()

	for _, name := range []string{"postpone_6mo", "postpone_1yr", "postpone_2yr", "rate_up_1", "rate_down_1", "rate_down_2", "progressive_50", "progressive_100", "conservative", "patient"} {
		assert.Contains(t, names, name)
	}
	assert.IsNonDecreasing(t, names)

	for _, name := range names {
		tmpl, _ := registry.Get(name)
		assert.NotEmpty(t, tmpl.Description, name)
		assert.NotEmpty(t, tmpl.Transforms, name)
	}
}

func TestApplyTemplate_Postpone1Year(t *testing.T) {
	base := templatePlan()
	tmpl, ok := CreateBuiltInTemplates().Get("postpone_1yr")
	require.True(t, ok)

	out, err := ApplyTemplate(base, tmpl)
	require.NoError(t, err)

	require.Len(t, out.Goals, 2)
	assert.Equal(t, 2028, out.Goals[0].TargetDate.Year())
	assert.Equal(t, 2029, out.Goals[1].TargetDate.Year())
	assert.Equal(t, 2027, base.Goals[0].TargetDate.Year(), "base plan must stay untouched")
}

func TestApplyTemplate_Conservative(t *testing.T) {
	tmpl, ok := CreateBuiltInTemplates().Get("conservative")
	require.True(t, ok)

	out, err := ApplyTemplate(templatePlan(), tmpl)
	require.NoError(t, err)

	assert.InDelta(t, 4.0, out.Goals[0].RateAnnual, 1e-9)
	assert.InDelta(t, -2.0, out.Goals[1].RateAnnual, 1e-9)
	assert.Equal(t, time.September, out.Goals[0].TargetDate.Month())
}

func TestApplyTemplate_EmptyTransforms(t *testing.T) {
	base := templatePlan()
	out, err := ApplyTemplate(base, Template{Name: "noop"})
	require.NoError(t, err)
	assert.Equal(t, base.Goals, out.Goals)
}

func TestApplyTemplate_InvalidTransform(t *testing.T) {
	_, err := ApplyTemplate(templatePlan(), Template{
		Name:       "broken",
		Transforms: []GoalTransform{&PostponeTarget{Months: -1}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template broken")
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"postpone_1yr"}, ParseTemplateList("postpone_1yr"))
	assert.Equal(t, []string{"postpone_1yr", "rate_down_1"}, ParseTemplateList(" postpone_1yr , ,rate_down_1,"))
}

func TestParseTemplate(t *testing.T) {
	r := NewTransformRegistry()

	tmpl, err := r.ParseTemplate("lump=set_existing_capital:amount=5000; shift_rate:points=0.5")
	require.NoError(t, err)
	assert.Equal(t, "lump", tmpl.Name)
	assert.Equal(t, []GoalTransform{&SetExistingCapital{Amount: 5000}, &ShiftRate{Points: 0.5}}, tmpl.Transforms)
	assert.Contains(t, tmpl.Description, "Set existing capital to 5000.00")

	for _, bad := range []string{"", "noname", "=shift_rate:points=1", "empty=", "bad=shift_rate"} {
		_, err := r.ParseTemplate(bad)
		assert.Error(t, err, bad)
	}
}

func TestGetTemplateHelp(t *testing.T) {
	help := GetTemplateHelp(CreateBuiltInTemplates())
	assert.Contains(t, help, "Available Templates:")
	assert.Contains(t, help, "Target Timing:")
	assert.Contains(t, help, "Interest Rates:")
	assert.Contains(t, help, "Savings Schedule:")
	assert.Contains(t, help, "Combination Strategies:")
	assert.Contains(t, help, "postpone_1yr")
	assert.Contains(t, help, "goalplan compare")

	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
}
