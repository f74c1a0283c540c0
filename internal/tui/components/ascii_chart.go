package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/output"
	"github.com/rgehrsitz/goalplan/internal/tui/tuistyles"
)

// DataSeries represents a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart displays a simple line chart
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // X-axis labels
	Width      int
	Height     int
	ShowLegend bool
	XAxisLabel string
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     12,
		ShowLegend: true,
	}
}

// NewBandChart charts a goal's pessimistic, expected and optimistic balances against its
// target over the goal horizon
func NewBandChart(name string, s domain.GoalSeries) *ASCIIChart {
	n := s.MonthsToGoal + 1
	if n > len(s.Uncapped) {
		n = len(s.Uncapped)
	}
	target := make([]float64, n)
	for i := range target {
		target[i] = s.GoalAmount
	}

	labels := make([]string, n)
	for i := range labels {
		labels[i] = strconv.Itoa(i)
	}

	return NewASCIIChart(name).
		AddSeries("Target", target, tuistyles.ColorChartLine4).
		AddSeries("Optimistic", s.Optimistic, tuistyles.ColorChartLine2).
		AddSeries("Expected", s.Uncapped[:n], tuistyles.ColorChartLine1).
		AddSeries("Pessimistic", s.Pessimistic, tuistyles.ColorChartLine3).
		WithLabels(labels).
		WithAxisLabel("months from today")
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{
		Name:   name,
		Points: points,
		Color:  color,
	})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithAxisLabel sets the X-axis caption
func (c *ASCIIChart) WithAxisLabel(xLabel string) *ASCIIChart {
	c.XAxisLabel = xLabel
	return c
}

func (c *ASCIIChart) hasPoints() bool {
	for _, s := range c.Series {
		if len(s.Points) > 0 {
			return true
		}
	}
	return false
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if !c.hasPoints() {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		titleStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(tuistyles.ColorPrimary)
		content.WriteString(titleStyle.Render(c.Title))
		content.WriteString("\n\n")
	}

	minVal, maxVal := c.bounds()
	content.WriteString(c.renderGrid(minVal, maxVal))

	if c.XAxisLabel != "" {
		content.WriteString("\n")
		labelStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorMuted).
			Italic(true)
		content.WriteString(labelStyle.Render(c.XAxisLabel))
	}

	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString("\n\n")
		content.WriteString(c.renderLegend())
	}
	return content.String()
}

// bounds finds the value range across all series with 10% padding. A flat range is
// widened so every point still maps onto the grid.
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if hi-lo < 1e-9 {
		pad := math.Max(1, math.Abs(hi)*0.1)
		return lo - pad, hi + pad
	}
	pad := (hi - lo) * 0.1
	return lo - pad, hi + pad
}

func (c *ASCIIChart) project(i, n int, v, minVal, maxVal float64, chartWidth int) (int, int) {
	x := 0
	if n > 1 {
		x = int(float64(i) / float64(n-1) * float64(chartWidth-1))
	}
	y := c.Height - 1 - int((v-minVal)/(maxVal-minVal)*float64(c.Height-1))
	return x, y
}

// renderGrid renders the chart grid with data points
func (c *ASCIIChart) renderGrid(minVal, maxVal float64) string {
	yAxisWidth := 10
	chartWidth := c.Width - yAxisWidth
	if chartWidth < 2 {
		chartWidth = 2
	}

	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", chartWidth))
	}

	for idx, s := range c.Series {
		char := c.seriesChar(idx)
		n := len(s.Points)
		for i, v := range s.Points {
			x, y := c.project(i, n, v, minVal, maxVal, chartWidth)
			if i > 0 {
				px, py := c.project(i-1, n, s.Points[i-1], minVal, maxVal, chartWidth)
				drawLine(grid, px, py, x, y, char)
			} else if y >= 0 && y < c.Height {
				grid[y][x] = char
			}
		}
	}

	var out strings.Builder
	yAxisStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Width(yAxisWidth).
		Align(lipgloss.Right)
	for i, row := range grid {
		yValue := maxVal - float64(i)/float64(c.Height-1)*(maxVal-minVal)
		out.WriteString(yAxisStyle.Render(formatChartValue(yValue)))
		out.WriteString(" │ ")
		out.WriteString(string(row))
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", chartWidth))
	out.WriteString("\n")

	if len(c.Labels) > 0 {
		out.WriteString(c.renderXAxisLabels(yAxisWidth, chartWidth))
	}
	return out.String()
}

func (c *ASCIIChart) seriesChar(index int) rune {
	chars := []rune{'·', '●', '■', '▲'}
	return chars[index%len(chars)]
}

// drawLine draws a line between two points using Bresenham's algorithm. Cells already
// taken by an earlier series are kept.
func drawLine(grid [][]rune, x0, y0, x1, y1 int, char rune) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	x, y := x0, y0
	for {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) {
			if grid[y][x] == ' ' || grid[y][x] == '·' {
				grid[y][x] = char
			}
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// renderXAxisLabels places up to five evenly spaced labels under the axis
func (c *ASCIIChart) renderXAxisLabels(yAxisWidth, chartWidth int) string {
	const maxLabels = 5
	n := len(c.Labels)
	line := []rune(strings.Repeat(" ", chartWidth+8))

	slots := maxLabels
	if n < slots {
		slots = n
	}
	for k := 0; k < slots; k++ {
		i := 0
		if slots > 1 {
			i = k * (n - 1) / (slots - 1)
		}
		x := 0
		if n > 1 {
			x = int(float64(i) / float64(n-1) * float64(chartWidth-1))
		}
		for j, r := range c.Labels[i] {
			if x+j < len(line) {
				line[x+j] = r
			}
		}
	}

	labelStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	return strings.Repeat(" ", yAxisWidth+3) + labelStyle.Render(strings.TrimRight(string(line), " "))
}

// renderLegend renders the chart legend
func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(c.seriesChar(i)))
		name := lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Render(s.Name)
		items = append(items, fmt.Sprintf("%s %s", symbol, name))
	}
	return lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render("Legend: " + strings.Join(items, " • "))
}

// formatChartValue abbreviates a Y-axis amount
func formatChartValue(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}
	switch {
	case value >= 1_000_000:
		return fmt.Sprintf("%s%s%.1fM", sign, output.CurrencySymbol, value/1_000_000)
	case value >= 1000:
		return fmt.Sprintf("%s%s%.0fK", sign, output.CurrencySymbol, value/1000)
	default:
		return fmt.Sprintf("%s%s%.0f", sign, output.CurrencySymbol, value)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
