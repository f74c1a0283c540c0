package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"gonum.org/v1/gonum/floats"
)

// SeriesFormatter renders month-by-month projections
type SeriesFormatter interface {
	Name() string
	FormatTrajectory(goal domain.Goal, t domain.Trajectory) (string, error)
	FormatGoalSeries(goal domain.Goal, s domain.GoalSeries) (string, error)
	FormatGeneralSavings(p domain.GeneralSavingsProjection) (string, error)
}

// NewSeriesFormatter creates a series formatter based on the format name
func NewSeriesFormatter(format string) SeriesFormatter {
	if NormalizeFormatName(format) == "csv" {
		return SeriesCSVFormatter{}
	}
	return SeriesConsoleFormatter{}
}

// sampleMonths picks every step-th month in 1..n plus n itself
func sampleMonths(n, step int) []int {
	if n <= 0 {
		return nil
	}
	if step <= 0 {
		step = 12
	}
	var out []int
	for m := step; m < n; m += step {
		out = append(out, m)
	}
	return append(out, n)
}

func sampleStep(n int) int {
	switch {
	case n <= 24:
		return 1
	case n <= 120:
		return 6
	default:
		return 12
	}
}

// SeriesConsoleFormatter renders projections as sampled tables
type SeriesConsoleFormatter struct{}

func (SeriesConsoleFormatter) Name() string { return "console" }

func (SeriesConsoleFormatter) FormatTrajectory(goal domain.Goal, t domain.Trajectory) (string, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "TRAJECTORY: %s\n", goal.Name)
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintf(&buf, "Target:               %s in %s\n", FormatCurrency(goal.Amount), FormatMonths(len(t.Values)))
	fmt.Fprintf(&buf, "Monthly rate:         %s\n", FormatRate(t.MonthlyRate))
	fmt.Fprintf(&buf, "Base payment:         %s\n", FormatCurrency(t.BasePayment))
	fmt.Fprintf(&buf, "Average payment:      %s\n", FormatCurrency(t.AverageMonthlyPayment))
	fmt.Fprintf(&buf, "Total payments:       %s\n", FormatCurrency(t.SumPayments))
	fmt.Fprintf(&buf, "Bonuses:              %s\n", FormatCurrency(t.BonusesSum))
	fmt.Fprintf(&buf, "Final amount:         %s\n", FormatCurrency(t.FinalAmount))
	fmt.Fprintln(&buf)

	if len(t.Values) == 0 {
		fmt.Fprintln(&buf, "No months to project.")
		return buf.String(), nil
	}

	fmt.Fprintf(&buf, "%8s %16s %10s\n", "Month", "Balance", "Progress")
	fmt.Fprintln(&buf, strings.Repeat("-", 36))
	for _, m := range sampleMonths(len(t.Values), sampleStep(len(t.Values))) {
		v := t.Values[m-1]
		progress := 0.0
		if goal.Amount > 0 {
			progress = v / goal.Amount * 100
		}
		fmt.Fprintf(&buf, "%8d %16s %10s\n", m, FormatWhole(v), FormatPercentage(progress))
	}
	return buf.String(), nil
}

func (SeriesConsoleFormatter) FormatGoalSeries(goal domain.Goal, s domain.GoalSeries) (string, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "SCENARIO BANDS: %s\n", goal.Name)
	fmt.Fprintln(&buf, strings.Repeat("=", 70))
	fmt.Fprintf(&buf, "Target:               %s in %s\n", FormatCurrency(s.GoalAmount), FormatMonths(s.MonthsToGoal))
	fmt.Fprintf(&buf, "Base payment:         %s\n", FormatCurrency(s.BasePayment))
	if s.HitMonth >= 0 {
		fmt.Fprintf(&buf, "Target reached:       month %d\n", s.HitMonth)
	} else {
		fmt.Fprintln(&buf, "Target reached:       not within the chart horizon")
	}
	if s.MonthsToGoal > 0 {
		fmt.Fprintf(&buf, "Final band:           %s to %s\n",
			FormatWhole(floats.Min(finalRow(s))), FormatWhole(floats.Max(finalRow(s))))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%8s %16s %16s %16s\n", "Month", "Pessimistic", "Expected", "Optimistic")
	fmt.Fprintln(&buf, strings.Repeat("-", 60))
	fmt.Fprintf(&buf, "%8d %16s %16s %16s\n", 0, FormatWhole(s.Pessimistic[0]), FormatWhole(s.Uncapped[0]), FormatWhole(s.Optimistic[0]))
	for _, m := range sampleMonths(s.MonthsToGoal, sampleStep(s.MonthsToGoal)) {
		fmt.Fprintf(&buf, "%8d %16s %16s %16s\n", m, FormatWhole(s.Pessimistic[m]), FormatWhole(s.Uncapped[m]), FormatWhole(s.Optimistic[m]))
	}
	if extra := len(s.Uncapped) - 1 - s.MonthsToGoal; extra > 0 {
		fmt.Fprintf(&buf, "\nAfter the target date the balance keeps growing to %s over %d more months.\n",
			FormatWhole(domain.Final(s.Uncapped)), extra)
	}
	return buf.String(), nil
}

// finalRow is the last month of the three bands
func finalRow(s domain.GoalSeries) []float64 {
	n := s.MonthsToGoal
	return []float64{s.Pessimistic[n], s.Uncapped[n], s.Optimistic[n]}
}

func (SeriesConsoleFormatter) FormatGeneralSavings(p domain.GeneralSavingsProjection) (string, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "GENERAL SAVINGS (%s)\n", FormatMonths(p.Months))
	fmt.Fprintln(&buf, strings.Repeat("=", 76))
	fmt.Fprintf(&buf, "Unallocated start:    %s\n", FormatCurrency(p.NetStart))
	fmt.Fprintf(&buf, "Monthly rate:         %s\n", FormatRate(p.MonthlyRate))
	if len(p.CumulativeInterest) > 0 {
		fmt.Fprintf(&buf, "Interest earned:      %s\n", FormatWhole(floats.Max(p.CumulativeInterest)))
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%8s %16s %16s %16s %16s\n", "Month", "Capital", "Deposits", "No interest", "Interest")
	fmt.Fprintln(&buf, strings.Repeat("-", 76))
	months := append([]int{0}, sampleMonths(p.Months, sampleStep(p.Months))...)
	for _, m := range months {
		if m >= len(p.Global) {
			break
		}
		fmt.Fprintf(&buf, "%8d %16s %16s %16s %16s\n", m,
			FormatWhole(p.Global[m]), FormatWhole(p.Unassigned[m]), FormatWhole(p.BaselineNoRate[m]), FormatWhole(p.CumulativeInterest[m]))
	}
	return buf.String(), nil
}

// SeriesCSVFormatter renders every month of a projection as CSV
type SeriesCSVFormatter struct{}

func (SeriesCSVFormatter) Name() string { return "csv" }

func writeCSV(header []string, rows [][]string) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return "", err
	}
	if err := w.WriteAll(rows); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func money(x float64) string { return toDecimal(x).StringFixed(2) }

func (SeriesCSVFormatter) FormatTrajectory(goal domain.Goal, t domain.Trajectory) (string, error) {
	rows := make([][]string, 0, len(t.Values))
	for i, v := range t.Values {
		rows = append(rows, []string{goal.ID, strconv.Itoa(t.Months[i]), money(v)})
	}
	return writeCSV([]string{"goal_id", "month", "balance"}, rows)
}

func (SeriesCSVFormatter) FormatGoalSeries(goal domain.Goal, s domain.GoalSeries) (string, error) {
	rows := make([][]string, 0, len(s.Uncapped))
	for m, mid := range s.Uncapped {
		row := []string{goal.ID, strconv.Itoa(m), money(mid), "", "", ""}
		if m <= s.MonthsToGoal {
			row[3] = money(s.Capped[m])
			row[4] = money(s.Pessimistic[m])
			row[5] = money(s.Optimistic[m])
		}
		rows = append(rows, row)
	}
	return writeCSV([]string{"goal_id", "month", "expected", "capped", "pessimistic", "optimistic"}, rows)
}

func (SeriesCSVFormatter) FormatGeneralSavings(p domain.GeneralSavingsProjection) (string, error) {
	rows := make([][]string, 0, len(p.Global))
	for m := range p.Global {
		rows = append(rows, []string{
			strconv.Itoa(m), money(p.Global[m]), money(p.Unassigned[m]), money(p.BaselineNoRate[m]), money(p.CumulativeInterest[m]),
		})
	}
	return writeCSV([]string{"month", "capital", "deposits", "baseline_no_rate", "cumulative_interest"}, rows)
}
