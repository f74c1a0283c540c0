package scenes

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/tui/components"
	"github.com/rgehrsitz/goalplan/internal/tui/tuimsg"
)

func testReport() *domain.PlanReport {
	return &domain.PlanReport{
		Goals: []domain.GoalReport{
			{Goal: domain.Goal{ID: "a"}, ViewModel: domain.GoalViewModel{GoalName: "Alpha", MonthsUntil: 12, DisplayPayment: 500, Achievable: true}},
			{Goal: domain.Goal{ID: "b"}, ViewModel: domain.GoalViewModel{GoalName: "Beta", MonthsUntil: 24, Shortfall: 300}},
		},
		Totals:   domain.PlanTotals{Achievable: 1},
		Warnings: []domain.HealthWarning{{Severity: domain.SeverityHigh, Title: "Savings exceed 50% of income"}},
	}
}

func TestDashboardView(t *testing.T) {
	d := NewDashboardModel(components.NewRateShiftSlider())
	assert.Contains(t, d.View(), "Loading plan")

	sens := &domain.SensitivityAnalysis{Differences: []domain.GoalTimeDifference{
		{GoalID: "a", TimeDifferenceMonths: -2},
		{GoalID: "b", TimeDifferenceMonths: 0},
	}}
	d.SetData(testReport(), sens)
	view := d.View()
	assert.Contains(t, view, "Alpha")
	assert.Contains(t, view, "short ₪300")
	assert.Contains(t, view, "-2")
	assert.Contains(t, view, "[HIGH] Savings exceed 50% of income")
	assert.Contains(t, view, "1 / 2")

	d.SetData(&domain.PlanReport{}, nil)
	assert.Contains(t, d.View(), "No goals defined")
	assert.Contains(t, d.View(), "No issues found")
}

func TestDashboardSelection(t *testing.T) {
	d := NewDashboardModel(components.NewRateShiftSlider())
	d.SetData(testReport(), nil)

	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	assert.Equal(t, 1, d.SelectedIndex())
	d, _ = d.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, d.SelectedIndex())

	d, cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.GoalSelectedMsg{Index: 1}, cmd())

	d.SetData(&domain.PlanReport{}, nil)
	assert.Zero(t, d.SelectedIndex())
	_, cmd = d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestOptimizeToggles(t *testing.T) {
	o := NewOptimizeModel()
	assert.Contains(t, o.View(), "No allocation yet")

	o, cmd := o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.NotNil(t, cmd)
	msg := cmd().(tuimsg.OptimizeRequestMsg)
	assert.False(t, msg.Options.Diagnostics)

	_, cmd = o.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)

	o.SetResult(nil, errors.New("boom"))
	assert.Contains(t, o.View(), "Allocation failed: boom")
}

func TestSensitivityView(t *testing.T) {
	s := NewSensitivityModel(components.NewRateShiftSlider())
	assert.Contains(t, s.View(), "No goals to analyze")

	s.SetAnalysis(&domain.SensitivityAnalysis{Delta: 1, Differences: []domain.GoalTimeDifference{
		{GoalName: "Alpha", BaseMonths: 24, NewMonths: 22, TimeDifferenceMonths: -2},
		{GoalName: "Beta", BaseMonths: 12, NewMonths: 13, TimeDifferenceMonths: 1},
	}})
	view := s.View()
	assert.Contains(t, view, "-2 months")
	assert.Contains(t, view, "+1 months")
	assert.Contains(t, view, "Net change")
}

func TestGoalView(t *testing.T) {
	g := NewGoalModel()
	assert.Empty(t, g.GoalID())
	assert.Contains(t, g.View(), "No goal selected")

	report := testReport().Goals[0]
	g.SetGoal(report, domain.GoalSeries{
		MonthsToGoal: 1, GoalAmount: 500,
		Uncapped: []float64{0, 500}, Pessimistic: []float64{0, 490}, Optimistic: []float64{0, 510},
		HitMonth: 1,
	})
	assert.Equal(t, "a", g.GoalID())
	view := g.View()
	assert.Contains(t, view, "month 1")
	assert.Contains(t, view, "Balance bands")
}
