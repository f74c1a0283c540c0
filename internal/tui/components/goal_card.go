package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/output"
	"github.com/rgehrsitz/goalplan/internal/tui/tuistyles"
)

// GoalCard displays a compact overview of one goal's projection
type GoalCard struct {
	Name       string
	Subtitle   string
	Highlights []string
	Achievable bool
	Shortfall  float64
	Funded     *ProgressBar
	IsSelected bool
	Width      int
}

// NewGoalCard builds a card from a goal report row
func NewGoalCard(gr domain.GoalReport) *GoalCard {
	vm := gr.ViewModel
	card := &GoalCard{
		Name: vm.GoalName,
		Subtitle: fmt.Sprintf("%s by %s (%s)",
			tuistyles.FormatCurrency(vm.GoalAmount), gr.TargetDate.Format("2006-01-02"), output.FormatMonths(vm.MonthsUntil)),
		Achievable: vm.Achievable,
		Shortfall:  vm.Shortfall,
		Funded:     NewProgressBar(vm.ExistingCapital, vm.GoalAmount).WithWidth(20),
		Width:      50,
	}

	payment := fmt.Sprintf("%s / month", tuistyles.FormatCurrency(vm.DisplayPayment))
	if vm.Progressive {
		payment += fmt.Sprintf(", rising %s", tuistyles.FormatCurrency(vm.MonthlyIncrease))
	}
	card.AddHighlight(payment)
	card.AddHighlight("Expected interest " + tuistyles.FormatCurrency(vm.ExpectedInterest))
	card.AddHighlight(fmt.Sprintf("ROI %s [%s]", output.FormatPercentage(gr.ROI), gr.ROIClass))
	if gr.Rule72OK {
		card.AddHighlight(fmt.Sprintf("Doubles in %.1f years [%s]", gr.Rule72Years, gr.Rule72Class))
	}
	return card
}

// AddHighlight adds a key metric line
func (g *GoalCard) AddHighlight(highlight string) *GoalCard {
	g.Highlights = append(g.Highlights, highlight)
	return g
}

// SetSelected marks the card as selected
func (g *GoalCard) SetSelected(selected bool) *GoalCard {
	g.IsSelected = selected
	return g
}

// WithWidth sets the card width
func (g *GoalCard) WithWidth(width int) *GoalCard {
	g.Width = width
	return g
}

func (g *GoalCard) status() string {
	if g.Achievable {
		return tuistyles.MetricPositiveStyle.Render("on track")
	}
	return tuistyles.MetricNegativeStyle.Render("short by " + tuistyles.FormatCurrency(g.Shortfall))
}

// Render returns the bordered goal card
func (g *GoalCard) Render() string {
	var content strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	content.WriteString(titleStyle.Render(g.Name) + "  " + g.status() + "\n")
	content.WriteString(tuistyles.SubtitleStyle.Render(g.Subtitle) + "\n")

	if g.Funded != nil {
		content.WriteString(g.Funded.Render() + "\n")
	}

	highlightStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	for _, h := range g.Highlights {
		content.WriteString(highlightStyle.Render("• "+h) + "\n")
	}

	border := tuistyles.ColorBorder
	if g.IsSelected {
		border = tuistyles.ColorPrimary
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(g.Width)

	return cardStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns a single-line version
func (g *GoalCard) RenderCompact() string {
	nameStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(tuistyles.ColorPrimary)
	parts := []string{nameStyle.Render(g.Name), g.status()}
	if len(g.Highlights) > 0 {
		parts = append(parts, lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("• "+g.Highlights[0]))
	}
	return strings.Join(parts, " ")
}

// GoalListCompact renders a selection list of cards
func GoalListCompact(cards []*GoalCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No goals defined")
	}

	rendered := make([]string, len(cards))
	for i, card := range cards {
		prefix := "  "
		style := tuistyles.UnselectedItemStyle
		if i == selectedIndex {
			prefix = "▸ "
			style = tuistyles.SelectedItemStyle
		}
		rendered[i] = style.Render(prefix + card.RenderCompact())
	}
	return strings.Join(rendered, "\n")
}
