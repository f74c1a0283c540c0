package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/output"
	"github.com/rgehrsitz/goalplan/internal/tui/components"
	"github.com/rgehrsitz/goalplan/internal/tui/tuistyles"
)

// SensitivityModel shows the rate-shift slider and how each goal's time to target moves
type SensitivityModel struct {
	slider   *components.ParameterSlider
	analysis *domain.SensitivityAnalysis
	width    int
	height   int
}

// NewSensitivityModel creates the scene around the shared rate-shift slider
func NewSensitivityModel(slider *components.ParameterSlider) *SensitivityModel {
	return &SensitivityModel{slider: slider}
}

// SetAnalysis updates the analysis being shown
func (m *SensitivityModel) SetAnalysis(analysis *domain.SensitivityAnalysis) {
	m.analysis = analysis
}

// SetSize updates the scene dimensions
func (m *SensitivityModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the sensitivity scene. The slider keys are global.
func (m *SensitivityModel) Update(msg tea.Msg) (*SensitivityModel, tea.Cmd) {
	return m, nil
}

// View renders the slider, summary cards and the per-goal table
func (m *SensitivityModel) View() string {
	m.slider.SetFocused(true)
	sections := []string{m.slider.Render(), ""}

	if m.analysis == nil || len(m.analysis.Differences) == 0 {
		sections = append(sections, tuistyles.InfoStyle.Render("No goals to analyze"))
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	faster, slower := len(m.analysis.Faster()), len(m.analysis.Slower())
	net := 0
	for _, d := range m.analysis.Differences {
		net += d.TimeDifferenceMonths
	}
	cards := []*components.MetricCard{
		components.NewMetricCard("Faster", fmt.Sprintf("%d", faster)),
		components.NewMetricCard("Slower", fmt.Sprintf("%d", slower)),
		components.NewMetricCard("Net change", output.FormatMonthsDelta(net)).WithMonthsTrend(net),
	}
	sections = append(sections, components.MetricGrid(cards, 3), "", m.renderTable())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *SensitivityModel) renderTable() string {
	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(fmt.Sprintf("%-24s %8s %8s %14s", "Goal", "Base", "Shifted", "Change")))
	b.WriteString("\n")
	for _, d := range m.analysis.Differences {
		style := tuistyles.TableCellStyle
		switch {
		case d.TimeDifferenceMonths < 0:
			style = tuistyles.MetricPositiveStyle
		case d.TimeDifferenceMonths > 0:
			style = tuistyles.MetricNegativeStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%-24s %8d %8d %14s",
			truncate(d.GoalName, 24), d.BaseMonths, d.NewMonths, output.FormatMonthsDelta(d.TimeDifferenceMonths))))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
