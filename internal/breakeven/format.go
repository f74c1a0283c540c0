package breakeven

import (
	"fmt"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/rgehrsitz/goalplan/internal/dateutil"
	"github.com/rgehrsitz/goalplan/internal/output"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for one solver result
func (tf *TableFormatter) Format(result *SolveResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN RESULT\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Goal:            %s (%s)\n", result.GoalName, result.GoalID))
	sb.WriteString(fmt.Sprintf("Solved for:      %s\n", result.Target))
	sb.WriteString(fmt.Sprintf("Monthly payment: %s\n", output.FormatCurrency(result.Payment)))
	sb.WriteString(fmt.Sprintf("Status:          %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:      %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:     %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	if result.Success {
		sb.WriteString("SOLVED PARAMETER\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(tf.parameterLine(result) + "\n")
		sb.WriteString(fmt.Sprintf("Balance at target: %s\n", output.FormatCurrency(result.FinalBalance)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMulti formats every target solved for one goal
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Goal:            %s (%s)\n", result.GoalName, result.GoalID))
	sb.WriteString(fmt.Sprintf("Monthly payment: %s\n\n", output.FormatCurrency(result.Payment)))

	sb.WriteString(fmt.Sprintf("%-10s %-14s %-32s %s\n", "Target", "Status", "Value", "As given"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for i := range result.Results {
		r := &result.Results[i]
		value := "-"
		if r.Success {
			value = tf.value(r)
		}
		sb.WriteString(fmt.Sprintf("%-10s %-14s %-32s %s\n",
			r.Target, tf.formatStatus(r.Success), tf.truncate(value, 32), tf.base(r)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *SolveResult) (string, error) {
	return jf.encode(result)
}

// FormatMulti formats a multi-target result as JSON
func (jf *JSONFormatter) FormatMulti(result *MultiResult) (string, error) {
	return jf.encode(result)
}

func (jf *JSONFormatter) encode(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = gojson.MarshalIndent(v, "", "  ")
	} else {
		data, err = gojson.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) parameterLine(r *SolveResult) string {
	switch r.Target {
	case SolveRate:
		return "Required annual rate: " + tf.value(r)
	case SolveCapital:
		return "Required lump sum:    " + tf.value(r)
	case SolveDate:
		return "Reached on:           " + tf.value(r)
	default:
		return ""
	}
}

func (tf *TableFormatter) value(r *SolveResult) string {
	switch {
	case r.RequiredRate != nil:
		return output.FormatPercentage(*r.RequiredRate)
	case r.RequiredCapital != nil:
		return output.FormatCurrency(*r.RequiredCapital)
	case r.ReachDate != nil && r.MonthsNeeded != nil:
		return fmt.Sprintf("%s (%s)", dateutil.FormatDayFirst(*r.ReachDate), output.FormatMonths(*r.MonthsNeeded))
	default:
		return "-"
	}
}

func (tf *TableFormatter) base(r *SolveResult) string {
	switch r.Target {
	case SolveRate:
		return output.FormatPercentage(r.BaseRate)
	case SolveCapital:
		return output.FormatCurrency(r.BaseCapital)
	case SolveDate:
		return output.FormatMonths(r.BaseMonths)
	default:
		return ""
	}
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Solved"
	}
	return "⚠ Unreachable"
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}
