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

// SensitivityFormatter defines a formatter for sensitivity analysis. Accepted inputs are a
// single analysis (value or pointer) or a sweep ([]domain.SensitivityAnalysis).
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis interface{}) (string, error)
	Name() string
}

func asSweep(analysis interface{}) ([]domain.SensitivityAnalysis, bool, error) {
	switch a := analysis.(type) {
	case domain.SensitivityAnalysis:
		return []domain.SensitivityAnalysis{a}, false, nil
	case *domain.SensitivityAnalysis:
		if a == nil {
			return nil, false, fmt.Errorf("analysis cannot be nil")
		}
		return []domain.SensitivityAnalysis{*a}, false, nil
	case []domain.SensitivityAnalysis:
		if len(a) == 0 {
			return nil, true, fmt.Errorf("no results in sweep")
		}
		return a, true, nil
	default:
		return nil, false, fmt.Errorf("unsupported analysis type: %T", analysis)
	}
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct{}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	runs, sweep, err := asSweep(analysis)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if sweep {
		scf.formatSweep(&buf, runs)
	} else {
		scf.formatSingle(&buf, runs[0])
	}
	return buf.String(), nil
}

func (scf SensitivityConsoleFormatter) formatSingle(buf *bytes.Buffer, a domain.SensitivityAnalysis) {
	fmt.Fprintf(buf, "RATE SENSITIVITY: %+.2f PERCENTAGE POINTS\n", a.Delta)
	fmt.Fprintln(buf, strings.Repeat("=", 65))
	if len(a.Differences) == 0 {
		fmt.Fprintln(buf, "No goals to analyze.")
		return
	}
	fmt.Fprintf(buf, "%-24s %10s %10s %16s\n", "Goal", "Base", "Shifted", "Change")
	fmt.Fprintln(buf, strings.Repeat("-", 65))
	for _, d := range a.Differences {
		fmt.Fprintf(buf, "%-24s %10d %10d %16s\n",
			truncate(d.GoalName, 24), d.BaseMonths, d.NewMonths, FormatMonthsDelta(d.TimeDifferenceMonths))
	}
	fmt.Fprintln(buf)
	fmt.Fprintf(buf, "Faster: %d  Slower: %d  Unchanged: %d\n",
		len(a.Faster()), len(a.Slower()), len(a.Differences)-len(a.Faster())-len(a.Slower()))
}

func (scf SensitivityConsoleFormatter) formatSweep(buf *bytes.Buffer, runs []domain.SensitivityAnalysis) {
	fmt.Fprintf(buf, "RATE SENSITIVITY SWEEP: %+.2f TO %+.2f PERCENTAGE POINTS\n", runs[0].Delta, runs[len(runs)-1].Delta)
	fmt.Fprintln(buf, strings.Repeat("=", 65))

	fmt.Fprintf(buf, "%-24s", "Goal")
	for _, r := range runs {
		fmt.Fprintf(buf, " %8s", fmt.Sprintf("%+.2f", r.Delta))
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, strings.Repeat("-", 24+9*len(runs)))

	for i, d := range runs[0].Differences {
		fmt.Fprintf(buf, "%-24s", truncate(d.GoalName, 24))
		for _, r := range runs {
			if i < len(r.Differences) {
				fmt.Fprintf(buf, " %8d", r.Differences[i].TimeDifferenceMonths)
			}
		}
		fmt.Fprintln(buf)
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, "Values are months relative to the base plan; negative finishes sooner.")
}

// SensitivityCSVFormatter formats sensitivity analysis output as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	runs, _, err := asSweep(analysis)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"delta_pp", "goal_id", "goal_name", "base_months", "new_months", "time_difference_months"}); err != nil {
		return "", err
	}
	for _, r := range runs {
		for _, d := range r.Differences {
			row := []string{
				strconv.FormatFloat(r.Delta, 'f', 2, 64),
				d.GoalID,
				d.GoalName,
				strconv.Itoa(d.BaseMonths),
				strconv.Itoa(d.NewMonths),
				strconv.Itoa(d.TimeDifferenceMonths),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	return buf.String(), w.Error()
}

// SensitivityJSONFormatter formats sensitivity analysis output as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis interface{}) (string, error) {
	runs, sweep, err := asSweep(analysis)
	if err != nil {
		return "", err
	}
	var v interface{} = runs
	if !sweep {
		v = runs[0]
	}
	data, err := gojson.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode sensitivity analysis: %w", err)
	}
	return string(data) + "\n", nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format string) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "console", "table":
		return SensitivityConsoleFormatter{}
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{}
	}
}
