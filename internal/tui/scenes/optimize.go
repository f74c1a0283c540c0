package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/goalplan/internal/allocation"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/output"
	"github.com/rgehrsitz/goalplan/internal/tui/tuimsg"
	"github.com/rgehrsitz/goalplan/internal/tui/tuistyles"
)

// OptimizeModel shows the budget allocation and lets the user switch its options
type OptimizeModel struct {
	options allocation.Options
	result  *domain.AllocationResult
	err     error
	width   int
	height  int
}

// NewOptimizeModel creates a new optimize scene model with the default options
func NewOptimizeModel() *OptimizeModel {
	return &OptimizeModel{options: allocation.DefaultOptions()}
}

// Options returns the options the next allocation should use
func (m *OptimizeModel) Options() allocation.Options {
	return m.options
}

// SetResult updates the allocation shown; err replaces the result when set
func (m *OptimizeModel) SetResult(result *domain.AllocationResult, err error) {
	m.result = result
	m.err = err
}

// SetSize updates the model dimensions
func (m *OptimizeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update toggles the budget source and surplus strategy
func (m *OptimizeModel) Update(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("b"))):
		if m.options.BudgetMode == domain.BudgetGeneral {
			m.options.BudgetMode = domain.BudgetSumOfGoals
		} else {
			m.options.BudgetMode = domain.BudgetGeneral
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("m"))):
		if m.options.Mode == domain.AllocateSurplus {
			m.options.Mode = domain.AllocateTime
		} else {
			m.options.Mode = domain.AllocateSurplus
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("d"))):
		m.options.Diagnostics = !m.options.Diagnostics
	default:
		return m, nil
	}

	opts := m.options
	return m, func() tea.Msg { return tuimsg.OptimizeRequestMsg{Options: opts} }
}

// View renders the allocation
func (m *OptimizeModel) View() string {
	var content strings.Builder

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	content.WriteString(labelStyle.Render("Budget: "))
	content.WriteString(m.options.BudgetMode.String())
	content.WriteString(labelStyle.Render("   Strategy: "))
	content.WriteString(m.options.Mode.String())
	content.WriteString("\n\n")

	switch {
	case m.err != nil:
		content.WriteString(tuistyles.ErrorStyle.Render("Allocation failed: " + m.err.Error()))
	case m.result == nil:
		content.WriteString(labelStyle.Render("No allocation yet"))
	default:
		table, err := output.NewAllocationFormatter("table").FormatAllocation(m.result)
		if err != nil {
			content.WriteString(tuistyles.ErrorStyle.Render(err.Error()))
		} else {
			content.WriteString(strings.TrimRight(table, "\n"))
		}
	}

	content.WriteString("\n\n")
	content.WriteString(labelStyle.Render("b budget source • m surplus strategy • d diagnostics"))
	return tuistyles.BorderStyle.Render(content.String())
}
