package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Monthly Payments",
		"Free Monthly Deposit",
		"Expected Interest",
		"General Savings Final",
		"Goals",
		"Achievable",
		"Latest Target (Months)",
		"Payment Diff from Base",
		"Payment % Change",
		"Interest Diff from Base",
		"Achievable Diff",
		"Latest Target Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.MonthlyPayments.StringFixed(2),
		result.FreeMonthlyDeposit.StringFixed(2),
		result.ExpectedInterest.StringFixed(2),
		result.GeneralFinal.StringFixed(2),
		strconv.Itoa(result.GoalCount),
		strconv.Itoa(result.Achievable),
		strconv.Itoa(result.LatestMonths),
		result.PaymentDiffFromBase.StringFixed(2),
		result.PaymentPctFromBase.StringFixed(2),
		result.InterestDiffFromBase.StringFixed(2),
		strconv.Itoa(result.AchievableDiff),
		strconv.Itoa(result.LatestMonthsDiff),
	}
}
