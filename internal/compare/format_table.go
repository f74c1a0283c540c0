package compare

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/goalplan/internal/output"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("SAVINGS SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.PlanPath != "" {
		sb.WriteString(fmt.Sprintf("Plan:          %s\n", compSet.PlanPath))
	}
	sb.WriteString("\n")

	nameWidth := 22
	numWidth := 13

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, "Scenario",
		numWidth, "Monthly",
		numWidth, "Free Deposit",
		numWidth, "Interest",
		numWidth, "Achievable"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	if compSet.BaseResult != nil {
		sb.WriteString(tf.formatRow(compSet.BaseResult, nameWidth, numWidth, true))
	}

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for i := range compSet.AlternativeResults {
			sb.WriteString(tf.formatRow(&compSet.AlternativeResults[i], nameWidth, numWidth, false))
		}
	}

	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s: %s\n", alt.ScenarioName, alt.Description))

			sb.WriteString(fmt.Sprintf("  Monthly Payments: %s%s (%s%%)\n",
				tf.deltaSymbol(alt.PaymentDiffFromBase),
				tf.formatDecimal(alt.PaymentDiffFromBase),
				alt.PaymentPctFromBase.StringFixed(1)))

			if !alt.InterestDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Interest:         %s%s\n",
					tf.deltaSymbol(alt.InterestDiffFromBase),
					tf.formatDecimal(alt.InterestDiffFromBase)))
			}

			if alt.AchievableDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Achievable goals: %+d\n", alt.AchievableDiff))
			}

			if alt.LatestMonthsDiff != 0 {
				sb.WriteString(fmt.Sprintf("  Last target:      %s\n", output.FormatMonthsDelta(alt.LatestMonthsDiff)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, nameWidth, numWidth int, isBase bool) string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(name, nameWidth),
		numWidth, tf.formatDecimal(result.MonthlyPayments),
		numWidth, tf.formatDecimal(result.FreeMonthlyDeposit),
		numWidth, tf.formatDecimal(result.ExpectedInterest),
		numWidth, fmt.Sprintf("%d/%d", result.Achievable, result.GoalCount))
}

// formatDecimal formats an amount for display, in thousands or millions when large
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	abs := d.Abs()

	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1000000)):
		return sign + "₪" + abs.Div(decimal.NewFromInt(1000000)).StringFixed(2) + "M"
	case abs.GreaterThanOrEqual(decimal.NewFromInt(10000)):
		return sign + "₪" + abs.Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
	default:
		return sign + "₪" + abs.StringFixed(0)
	}
}

// deltaSymbol returns "+" for increases; negative amounts carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}

// FormatCompact creates a compact single-line summary of the payment change per scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.PaymentDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.PaymentDiffFromBase) + tf.formatDecimal(alt.PaymentDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
