package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/output"
	"github.com/rgehrsitz/goalplan/internal/tui/components"
	"github.com/rgehrsitz/goalplan/internal/tui/tuimsg"
	"github.com/rgehrsitz/goalplan/internal/tui/tuistyles"
)

// DashboardModel is the home scene: plan KPIs, the goal table and health warnings
type DashboardModel struct {
	report        *domain.PlanReport
	sensitivity   *domain.SensitivityAnalysis
	slider        *components.ParameterSlider
	selectedIndex int
	width         int
	height        int
}

// NewDashboardModel creates a dashboard showing slider as the active rate shift
func NewDashboardModel(slider *components.ParameterSlider) *DashboardModel {
	return &DashboardModel{slider: slider}
}

// SetData replaces the report and the sensitivity deltas shown next to each goal
func (m *DashboardModel) SetData(report *domain.PlanReport, sensitivity *domain.SensitivityAnalysis) {
	m.report = report
	m.sensitivity = sensitivity
	if m.selectedIndex >= m.goalCount() {
		m.selectedIndex = 0
	}
}

// SetSize updates the scene dimensions
func (m *DashboardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SelectedIndex returns the highlighted goal row
func (m *DashboardModel) SelectedIndex() int {
	return m.selectedIndex
}

func (m *DashboardModel) goalCount() int {
	if m.report == nil {
		return 0
	}
	return len(m.report.Goals)
}

// Update handles row navigation and selection
func (m *DashboardModel) Update(msg tea.Msg) (*DashboardModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < m.goalCount()-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("g"))):
		m.selectedIndex = 0
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("G"))):
		m.selectedIndex = max(0, m.goalCount()-1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		if m.goalCount() == 0 {
			return m, nil
		}
		index := m.selectedIndex
		return m, func() tea.Msg { return tuimsg.GoalSelectedMsg{Index: index} }
	}
	return m, nil
}

// View renders the dashboard
func (m *DashboardModel) View() string {
	if m.report == nil {
		return tuistyles.BorderStyle.Render(tuistyles.SubtitleStyle.Render("Loading plan..."))
	}

	sections := []string{
		m.renderKPIs(),
		m.slider.RenderCompact(),
		"",
		m.renderGoalTable(),
		"",
		m.renderWarnings(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *DashboardModel) renderKPIs() string {
	t := m.report.Totals
	cards := []*components.MetricCard{
		components.NewMoneyCard("Goals total", t.GoalAmount),
		components.NewMoneyCard("Monthly payments", t.MonthlyPayments),
		components.NewMoneyCard("Free monthly", m.report.FreeMonthlyDeposit),
		components.NewMetricCard("On track", fmt.Sprintf("%d / %d", t.Achievable, len(m.report.Goals))),
	}
	return components.MetricGrid(cards, 4)
}

// monthsDelta returns the sensitivity delta for row i, if one was computed
func (m *DashboardModel) monthsDelta(i int) (int, bool) {
	if m.sensitivity == nil || i >= len(m.sensitivity.Differences) {
		return 0, false
	}
	return m.sensitivity.Differences[i].TimeDifferenceMonths, true
}

func (m *DashboardModel) renderGoalTable() string {
	if len(m.report.Goals) == 0 {
		return tuistyles.InfoStyle.Render("No goals defined. Add goals to the plan file and reload.")
	}

	var b strings.Builder
	header := fmt.Sprintf("  %-22s %-11s %7s %12s %10s %-8s %s",
		"Goal", "Target", "Months", "Payment", "Shift", "ROI", "Status")
	b.WriteString(tuistyles.TableHeaderStyle.Render(header))
	b.WriteString("\n")

	for i, gr := range m.report.Goals {
		vm := gr.ViewModel
		shift := "-"
		if d, ok := m.monthsDelta(i); ok {
			shift = output.FormatMonthsDelta(d)
			if d == 0 {
				shift = "0"
			}
		}
		status := "on track"
		if !vm.Achievable {
			status = "short " + tuistyles.FormatCurrency(vm.Shortfall)
		}

		prefix := "  "
		if i == m.selectedIndex {
			prefix = "▸ "
		}
		row := fmt.Sprintf("%s%-22s %-11s %7d %12s %10s %-8s %s",
			prefix,
			truncate(vm.GoalName, 22),
			gr.TargetDate.Format("2006-01-02"),
			vm.MonthsUntil,
			tuistyles.FormatCurrency(vm.DisplayPayment),
			strings.TrimSuffix(shift, " months"),
			gr.ROIClass,
			status,
		)

		style := tuistyles.TableCellStyle
		if i == m.selectedIndex {
			style = tuistyles.TableHighlightStyle
		}
		b.WriteString(style.Render(row))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *DashboardModel) renderWarnings() string {
	if len(m.report.Warnings) == 0 {
		return tuistyles.MetricPositiveStyle.Render("✓ No issues found")
	}

	lines := []string{tuistyles.TableHeaderStyle.Render(fmt.Sprintf("Health check (%d)", len(m.report.Warnings)))}
	for _, w := range m.report.Warnings {
		tag := tuistyles.SeverityStyle(w.Severity).Render("[" + strings.ToUpper(string(w.Severity)) + "]")
		lines = append(lines, fmt.Sprintf("%s %s", tag, w.Title))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
