package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/goalplan/internal/tui/tuistyles"
)

// ProgressBar shows how much of a money target is already covered
type ProgressBar struct {
	Current     float64
	Total       float64
	Width       int
	Label       string
	ShowPercent bool
	ShowAmounts bool
}

// NewProgressBar creates a new progress bar
func NewProgressBar(current, total float64) *ProgressBar {
	return &ProgressBar{
		Current:     current,
		Total:       total,
		Width:       30,
		ShowPercent: true,
	}
}

// WithLabel sets the progress label
func (p *ProgressBar) WithLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// WithWidth sets the bar width
func (p *ProgressBar) WithWidth(width int) *ProgressBar {
	p.Width = width
	return p
}

// WithAmounts appends "current / total" after the bar
func (p *ProgressBar) WithAmounts() *ProgressBar {
	p.ShowAmounts = true
	return p
}

// Percentage returns the covered share of the target in [0, 100]. A zero target counts
// as fully covered.
func (p *ProgressBar) Percentage() float64 {
	if p.Total <= 0 {
		return 100
	}
	pct := p.Current / p.Total * 100
	if math.IsNaN(pct) {
		return 0
	}
	return math.Max(0, math.Min(100, pct))
}

// IsComplete reports whether the target is covered
func (p *ProgressBar) IsComplete() bool {
	return p.Percentage() >= 100
}

// Render returns the styled progress bar
func (p *ProgressBar) Render() string {
	var content strings.Builder

	if p.Label != "" {
		labelStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorForeground).
			Bold(true)
		content.WriteString(labelStyle.Render(p.Label))
		content.WriteString("\n")
	}

	percentage := p.Percentage()
	filled := int(float64(p.Width) * percentage / 100)
	if filled > p.Width {
		filled = p.Width
	}
	empty := p.Width - filled

	barColor := tuistyles.ColorInfo
	if p.IsComplete() {
		barColor = tuistyles.ColorSuccess
	}
	barStyle := lipgloss.NewStyle().Foreground(barColor)
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	content.WriteString("[")
	if filled > 0 {
		content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		content.WriteString(emptyStyle.Render(strings.Repeat("░", empty)))
	}
	content.WriteString("]")

	var stats []string
	if p.ShowPercent {
		percentStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorPrimary).
			Bold(true)
		stats = append(stats, percentStyle.Render(fmt.Sprintf("%.1f%%", percentage)))
	}
	if p.ShowAmounts {
		amountStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
		stats = append(stats, amountStyle.Render(fmt.Sprintf("%s / %s",
			tuistyles.FormatCurrency(p.Current), tuistyles.FormatCurrency(p.Total))))
	}
	if len(stats) > 0 {
		content.WriteString(" ")
		content.WriteString(strings.Join(stats, " • "))
	}

	return content.String()
}
