package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/rgehrsitz/goalplan/internal/domain"
)

// AllocationFormatter defines a formatter for budget allocation results
type AllocationFormatter interface {
	FormatAllocation(result *domain.AllocationResult) (string, error)
	Name() string
}

// NewAllocationFormatter creates a formatter based on the format name
func NewAllocationFormatter(format string) AllocationFormatter {
	switch NormalizeFormatName(format) {
	case "csv":
		return &AllocationCSVFormatter{}
	case "json":
		return &AllocationJSONFormatter{}
	default:
		return &AllocationTableFormatter{}
	}
}

// AllocationTableFormatter formats allocation results as a table
type AllocationTableFormatter struct{}

func (f *AllocationTableFormatter) Name() string {
	return "table"
}

func (f *AllocationTableFormatter) FormatAllocation(result *domain.AllocationResult) (string, error) {
	if result == nil {
		return "", fmt.Errorf("result cannot be nil")
	}

	var out strings.Builder
	out.WriteString("BUDGET ALLOCATION\n")
	out.WriteString(strings.Repeat("=", 65) + "\n")
	out.WriteString(fmt.Sprintf("Budget (%s):      %s\n", result.BudgetMode, FormatCurrency(result.Budget)))
	out.WriteString(fmt.Sprintf("Minimum required:      %s\n", FormatCurrency(result.SumMinimum)))
	out.WriteString(fmt.Sprintf("Surplus strategy:      %s\n\n", result.Mode))

	if !result.Feasible {
		out.WriteString(fmt.Sprintf("NOT FEASIBLE: the budget is short by %s.\n", FormatCurrency(result.Shortfall)))
		out.WriteString("Extend target dates, reduce goal amounts or raise the monthly budget.\n")
		return out.String(), nil
	}

	out.WriteString(fmt.Sprintf("Leftover after minimums: %s\n\n", FormatCurrency(result.Leftover)))
	out.WriteString(fmt.Sprintf("%-28s %14s\n", "Goal", "New payment"))
	out.WriteString(strings.Repeat("-", 43) + "\n")
	for i, a := range result.Allocations {
		marker := ""
		if i == result.TargetIndex {
			marker = " ← surplus"
		}
		out.WriteString(fmt.Sprintf("%-28s %14s%s\n", truncate(a.GoalName, 28), FormatWhole(a.PaymentNew), marker))
	}

	if len(result.Diagnostics) > 0 {
		out.WriteString("\nDIAGNOSTICS:\n")
		for _, d := range result.Diagnostics {
			if d.IsGeneral() {
				out.WriteString(fmt.Sprintf("  %s: %s per month at %s\n", d.GoalName, FormatWhole(d.PaymentNew), FormatPercentage(d.InterestRate)))
				continue
			}
			out.WriteString(fmt.Sprintf("  %s (rate %s)\n", d.GoalName, FormatPercentage(d.InterestRate)))
			out.WriteString(fmt.Sprintf("    Payment:          %s → %s\n", FormatWhole(d.CurrentPayment), FormatWhole(d.PaymentNew)))
			out.WriteString(fmt.Sprintf("    Projected value:  %s of %s (%s)\n",
				FormatCurrency(d.ProjectedFutureValue), FormatCurrency(d.GoalAmount), signedCurrency(d.Surplus)))
			if d.ReachableNew {
				out.WriteString(fmt.Sprintf("    Time to goal:     %s → %s\n", FormatMonths(d.MonthsCurrent), FormatMonths(d.MonthsNew)))
			} else {
				out.WriteString(fmt.Sprintf("    Time to goal:     %s → not reachable\n", FormatMonths(d.MonthsCurrent)))
			}
		}
	}
	return out.String(), nil
}

func signedCurrency(x float64) string {
	if x >= 0 {
		return "+" + FormatCurrency(x)
	}
	return FormatCurrency(x)
}

// AllocationCSVFormatter formats allocations as CSV, one row per allocation
type AllocationCSVFormatter struct{}

func (f *AllocationCSVFormatter) Name() string {
	return "csv"
}

func (f *AllocationCSVFormatter) FormatAllocation(result *domain.AllocationResult) (string, error) {
	if result == nil {
		return "", fmt.Errorf("result cannot be nil")
	}
	diag := make(map[string]domain.AllocationDiagnostic, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		diag[d.GoalID] = d
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"id", "name", "payment_new", "interest_rate", "current_payment", "projected_future_value", "surplus", "months_current", "months_new", "reachable_new"}
	if err := w.Write(header); err != nil {
		return "", err
	}
	for _, a := range result.Allocations {
		row := []string{a.GoalID, a.GoalName, toDecimal(a.PaymentNew).StringFixed(2), "", "", "", "", "", "", ""}
		if d, ok := diag[a.GoalID]; ok {
			row[3] = toDecimal(d.InterestRate).StringFixed(2)
			if !a.IsGeneral() {
				row[4] = toDecimal(d.CurrentPayment).StringFixed(2)
				row[5] = toDecimal(d.ProjectedFutureValue).StringFixed(2)
				row[6] = toDecimal(d.Surplus).StringFixed(2)
				row[7] = strconv.Itoa(d.MonthsCurrent)
				row[8] = strconv.Itoa(d.MonthsNew)
				row[9] = strconv.FormatBool(d.ReachableNew)
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// AllocationJSONFormatter formats allocation results as JSON
type AllocationJSONFormatter struct{}

func (f *AllocationJSONFormatter) Name() string {
	return "json"
}

func (f *AllocationJSONFormatter) FormatAllocation(result *domain.AllocationResult) (string, error) {
	if result == nil {
		return "", fmt.Errorf("result cannot be nil")
	}
	data, err := gojson.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode allocation: %w", err)
	}
	return string(data) + "\n", nil
}
