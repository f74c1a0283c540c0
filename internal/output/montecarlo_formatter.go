package output

import (
	"fmt"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// MonteCarloFormatter defines a formatter for goal Monte Carlo results
type MonteCarloFormatter interface {
	FormatMonteCarlo(result *domain.MonteCarloResult) (string, error)
	Name() string
}

// NewMonteCarloFormatter creates a formatter based on the format name
func NewMonteCarloFormatter(format string) MonteCarloFormatter {
	if NormalizeFormatName(format) == "json" {
		return &MonteCarloJSONFormatter{}
	}
	return &MonteCarloTableFormatter{}
}

// MonteCarloTableFormatter formats a Monte Carlo result as a table
type MonteCarloTableFormatter struct{}

func (f *MonteCarloTableFormatter) Name() string {
	return "table"
}

func (f *MonteCarloTableFormatter) FormatMonteCarlo(result *domain.MonteCarloResult) (string, error) {
	if result == nil {
		return "", fmt.Errorf("result cannot be nil")
	}

	var out strings.Builder
	out.WriteString("MONTE CARLO SIMULATION\n")
	out.WriteString(strings.Repeat("=", 65) + "\n")
	out.WriteString(fmt.Sprintf("Goal:              %s (%s)\n", result.GoalName, result.GoalID))
	out.WriteString(fmt.Sprintf("Amount:            %s in %s\n", FormatCurrency(result.GoalAmount), FormatMonths(result.MonthsUntil)))
	out.WriteString(fmt.Sprintf("Monthly payment:   %s\n", FormatCurrency(result.Payment)))
	out.WriteString(fmt.Sprintf("Yearly rate:       %s ± %.2f points\n", FormatPercentage(result.MeanRate), result.RateStdDev))
	out.WriteString(fmt.Sprintf("Simulations:       %d (seed %d)\n\n", result.NumSimulations, result.Seed))

	out.WriteString(fmt.Sprintf("Probability of reaching the amount: %s\n", FormatPercentage(result.SuccessRate*100)))
	out.WriteString(fmt.Sprintf("Balance at fixed rate:              %s\n", FormatCurrency(result.DeterministicFV)))
	out.WriteString(fmt.Sprintf("Mean simulated balance:             %s\n", FormatCurrency(result.MeanFinal)))
	if result.MeanShortfall > 0 {
		out.WriteString(fmt.Sprintf("Mean shortfall when missed:         %s\n", FormatCurrency(result.MeanShortfall)))
	}

	out.WriteString("\nBALANCE AT TARGET DATE\n")
	out.WriteString(strings.Repeat("-", 65) + "\n")
	p := result.FinalBalance
	for _, row := range []struct {
		label string
		value float64
	}{
		{"10th percentile", p.P10},
		{"25th percentile", p.P25},
		{"Median", p.P50},
		{"75th percentile", p.P75},
		{"90th percentile", p.P90},
	} {
		out.WriteString(fmt.Sprintf("%-20s %16s\n", row.label, FormatCurrency(row.value)))
	}

	return out.String(), nil
}

// MonteCarloJSONFormatter formats a Monte Carlo result as JSON
type MonteCarloJSONFormatter struct{}

func (f *MonteCarloJSONFormatter) Name() string {
	return "json"
}

func (f *MonteCarloJSONFormatter) FormatMonteCarlo(result *domain.MonteCarloResult) (string, error) {
	if result == nil {
		return "", fmt.Errorf("result cannot be nil")
	}
	data, err := gojson.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode simulation: %w", err)
	}
	return string(data) + "\n", nil
}
