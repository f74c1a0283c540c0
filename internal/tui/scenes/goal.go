package scenes

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/output"
	"github.com/rgehrsitz/goalplan/internal/tui/components"
	"github.com/rgehrsitz/goalplan/internal/tui/tuistyles"
)

// GoalModel shows one goal's card and its scenario bands
type GoalModel struct {
	report *domain.GoalReport
	series *domain.GoalSeries
	width  int
	height int
}

// NewGoalModel creates a new goal detail scene model
func NewGoalModel() *GoalModel {
	return &GoalModel{}
}

// SetGoal updates the goal being shown
func (m *GoalModel) SetGoal(report domain.GoalReport, series domain.GoalSeries) {
	m.report = &report
	m.series = &series
}

// GoalID returns the ID of the goal on screen, or "" when none is selected
func (m *GoalModel) GoalID() string {
	if m.report == nil {
		return ""
	}
	return m.report.Goal.ID
}

// SetSize updates the scene dimensions
func (m *GoalModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the goal scene
func (m *GoalModel) Update(msg tea.Msg) (*GoalModel, tea.Cmd) {
	return m, nil
}

// View renders the goal detail
func (m *GoalModel) View() string {
	if m.report == nil {
		return tuistyles.BorderStyle.Render("No goal selected.\n\nPick a goal on the dashboard and press enter.")
	}

	card := components.NewGoalCard(*m.report).SetSelected(true).WithWidth(52)

	chartWidth := 64
	if m.width > 0 && m.width-4 < chartWidth {
		chartWidth = max(20, m.width-4)
	}
	chart := components.NewBandChart("Balance bands", *m.series).WithSize(chartWidth, 10)

	return lipgloss.JoinVertical(lipgloss.Left,
		card.Render(),
		"",
		m.renderBreakdown(),
		"",
		chart.Render(),
	)
}

func (m *GoalModel) renderBreakdown() string {
	vm := m.report.ViewModel
	label := tuistyles.MetricLabelStyle
	value := tuistyles.MetricValueStyle

	line := func(name, v string) string {
		return label.Render(fmt.Sprintf("%-22s", name)) + value.Render(v)
	}

	hit := "not within the chart horizon"
	if m.series.HitMonth >= 0 {
		hit = fmt.Sprintf("month %d", m.series.HitMonth)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		line("Monthly rate", output.FormatRate(vm.MonthlyRate)),
		line("Raw payment", output.FormatCurrency(vm.BasePayment)),
		line("Capital grows to", output.FormatCurrency(vm.FVExisting)),
		line("Bonuses grow to", output.FormatCurrency(vm.FVBonuses)),
		line("Payments grow to", output.FormatCurrency(vm.FVPayments)),
		line("Total invested", output.FormatCurrency(vm.TotalNominalInvestment)),
		line("Projected value", output.FormatCurrency(vm.CalculatedFutureValue)),
		line("Target reached", hit),
	)
}
