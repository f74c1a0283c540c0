package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// ConsoleFormatter renders the detailed plan report
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintln(&buf, "SAVINGS GOALS PLAN")
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintf(&buf, "As of: %s\n", report.AsOf.Format("2006-01-02"))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range PlanAssumptions(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	if len(report.Goals) == 0 {
		fmt.Fprintln(&buf, "No goals defined.")
		fmt.Fprintln(&buf)
	}

	for i, g := range report.Goals {
		vm := g.ViewModel
		fmt.Fprintf(&buf, "GOAL %d: %s\n", i+1, vm.GoalName)
		fmt.Fprintln(&buf, strings.Repeat("-", 50))
		fmt.Fprintf(&buf, "  Target:                 %s by %s (%s)\n", FormatCurrency(vm.GoalAmount), g.TargetDate.Format("2006-01-02"), FormatMonths(vm.MonthsUntil))
		fmt.Fprintf(&buf, "  Annual rate:            %s (monthly %s)\n", FormatPercentage(g.Goal.RateAnnual+report.RateChange), FormatRate(vm.MonthlyRate))
		if vm.Progressive {
			fmt.Fprintf(&buf, "  Monthly payment:        %s, growing by %s each month\n", FormatWhole(vm.DisplayPayment), FormatCurrency(vm.MonthlyIncrease))
		} else {
			fmt.Fprintf(&buf, "  Monthly payment:        %s\n", FormatWhole(vm.DisplayPayment))
		}
		if g.Goal.HasPinnedPayment() {
			fmt.Fprintf(&buf, "  Payment pinned:         %s\n", g.Goal.CalculationMode)
		}
		fmt.Fprintf(&buf, "  Existing capital:       %s (grows to %s)\n", FormatCurrency(vm.ExistingCapital), FormatCurrency(vm.FVExisting))
		if vm.BonusesSum > 0 {
			fmt.Fprintf(&buf, "  Bonuses:                %s (grows to %s)\n", FormatCurrency(vm.BonusesSum), FormatCurrency(vm.FVBonuses))
		}
		fmt.Fprintf(&buf, "  Total invested:         %s\n", FormatCurrency(vm.TotalNominalInvestment))
		fmt.Fprintf(&buf, "  Expected interest:      %s\n", FormatCurrency(vm.ExpectedInterest))
		fmt.Fprintf(&buf, "  Projected value:        %s\n", FormatCurrency(vm.CalculatedFutureValue))
		if vm.Achievable {
			fmt.Fprintln(&buf, "  Status:                 on track")
		} else {
			fmt.Fprintf(&buf, "  Status:                 short by %s\n", FormatCurrency(vm.Shortfall))
		}
		fmt.Fprintf(&buf, "  ROI (annualized):       %s [%s]\n", FormatPercentage(g.ROI), g.ROIClass)
		if g.Rule72OK {
			fmt.Fprintf(&buf, "  Doubling time (72):     %.1f years [%s]\n", g.Rule72Years, g.Rule72Class)
		} else {
			fmt.Fprintln(&buf, "  Doubling time (72):     n/a")
		}
		fmt.Fprintln(&buf)
	}

	writeTotals(&buf, report)
	writeWarnings(&buf, report.Warnings)

	return buf.Bytes(), nil
}

func writeTotals(buf *bytes.Buffer, report *domain.PlanReport) {
	t := report.Totals
	fmt.Fprintln(buf, "TOTALS")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "  Goals on track:         %d of %d\n", t.Achievable, len(report.Goals))
	fmt.Fprintf(buf, "  Target amount:          %s\n", FormatCurrency(t.GoalAmount))
	fmt.Fprintf(buf, "  Existing capital:       %s\n", FormatCurrency(t.ExistingCapital))
	fmt.Fprintf(buf, "  Monthly payments:       %s\n", FormatWhole(t.MonthlyPayments))
	fmt.Fprintf(buf, "  Expected interest:      %s\n", FormatCurrency(t.ExpectedInterest))
	fmt.Fprintf(buf, "  Free monthly deposit:   %s\n", FormatCurrency(report.FreeMonthlyDeposit))
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "GENERAL SAVINGS (%s)\n", FormatMonths(report.GeneralMonths))
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	fmt.Fprintf(buf, "  Unallocated capital:    %s\n", FormatWhole(report.GeneralFinalGlobal))
	fmt.Fprintf(buf, "  Unassigned deposits:    %s\n", FormatWhole(report.GeneralFinalDeposit))
	fmt.Fprintf(buf, "  Interest earned:        %s\n", FormatWhole(report.GeneralInterest))
	fmt.Fprintln(buf)
}

func writeWarnings(buf *bytes.Buffer, warnings []domain.HealthWarning) {
	fmt.Fprintln(buf, "FINANCIAL HEALTH")
	fmt.Fprintln(buf, strings.Repeat("=", 50))
	if len(warnings) == 0 {
		fmt.Fprintln(buf, "  No issues found.")
		return
	}
	for _, w := range warnings {
		fmt.Fprintf(buf, "  [%s] %s\n", strings.ToUpper(string(w.Severity)), w.Title)
		fmt.Fprintf(buf, "      %s\n", w.Message)
		if w.Suggestion != "" {
			fmt.Fprintf(buf, "      → %s\n", w.Suggestion)
		}
	}
}

// ConsoleLiteFormatter renders one line per goal plus totals
type ConsoleLiteFormatter struct{}

func (c ConsoleLiteFormatter) Name() string { return "console-lite" }

func (c ConsoleLiteFormatter) Format(report *domain.PlanReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "SAVINGS GOALS SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 80))
	fmt.Fprintf(&buf, "%-24s %14s %8s %12s %10s %8s\n", "Goal", "Target", "Months", "Monthly", "ROI", "Status")
	fmt.Fprintln(&buf, strings.Repeat("-", 80))
	for _, g := range report.Goals {
		vm := g.ViewModel
		status := "ok"
		if !vm.Achievable {
			status = "short"
		}
		fmt.Fprintf(&buf, "%-24s %14s %8d %12s %10s %8s\n",
			truncate(vm.GoalName, 24),
			FormatWhole(vm.GoalAmount),
			vm.MonthsUntil,
			FormatWhole(vm.DisplayPayment),
			FormatPercentage(g.ROI),
			status)
	}
	fmt.Fprintln(&buf, strings.Repeat("-", 80))
	fmt.Fprintf(&buf, "Monthly payments: %s  Free monthly deposit: %s  Warnings: %d\n",
		FormatWhole(report.Totals.MonthlyPayments), FormatCurrency(report.FreeMonthlyDeposit), len(report.Warnings))
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
