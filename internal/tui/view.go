package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneDashboard:
		content = m.dashboardModel.View()
	case SceneGoal:
		content = m.goalModel.View()
	case SceneSensitivity:
		content = m.sensitivityModel.View()
	case SceneOptimize:
		content = m.optimizeModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	contentHeight := m.height - 4 // title (2) + status (1) + padding (1)

	contentContainer := lipgloss.NewStyle().
		Height(max(contentHeight, 0)).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		contentContainer,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("GOALPLAN - Savings Goals")

	crumb := m.currentScene.String()
	if m.currentScene == SceneGoal && m.goalModel.GoalID() != "" {
		crumb = fmt.Sprintf("%s / %s", crumb, m.goalModel.GoalID())
	}
	if m.rateSlider.Changed() {
		crumb = fmt.Sprintf("%s • rate shift %s", crumb, m.rateSlider.ValueString())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(crumb),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	bindings := keys.statusBindings()
	shortcuts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		shortcuts = append(shortcuts, formatShortcut(h.Key, h.Desc))
	}
	statusText := strings.Join(shortcuts, " • ")

	if m.plan != nil {
		planName := SubtitleStyle.Render(filepath.Base(m.planPath))
		width := m.width - lipgloss.Width(statusText) - lipgloss.Width(planName) - 2
		statusText = statusText + strings.Repeat(" ", max(0, width)) + planName
	}

	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders the spinner and loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}
	return m.renderApp(BorderStyle.Render(fmt.Sprintf("%s %s", m.spinner.View(), message)))
}

// renderError renders an error message
func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue, r to reload, q to quit.", m.err.Error()),
	)
	return m.renderApp(content)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	rows := [][2]string{
		{"1", "Goals dashboard"},
		{"2", "Rate sensitivity"},
		{"3", "Budget allocation"},
		{"← / →", "Shift every goal's rate by 0.25 percentage points (-5 to +5)"},
		{"0", "Reset the rate shift"},
		{"↑ / ↓", "Move through goals"},
		{"enter", "Open the selected goal"},
		{"b / m / d", "Allocation: budget source, surplus strategy, diagnostics"},
		{"r", "Reload the plan file"},
		{"esc", "Go back"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(HelpKeyStyle.Render(fmt.Sprintf("%-10s", r[0])))
		b.WriteString(HelpDescStyle.Render(r[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("Payments are rounded up to whole units for display. Sensitivity keeps each goal's current payment and re-times it under the shifted rate."))

	return BorderStyle.Render(b.String())
}
