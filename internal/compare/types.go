package compare

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/output"
)

// ComparisonResult represents one scenario of a comparison with its key metrics
type ComparisonResult struct {
	ScenarioName string             `json:"scenarioName"`
	Description  string             `json:"description"`
	Report       *domain.PlanReport `json:"-"`

	// Key Metrics
	MonthlyPayments    decimal.Decimal `json:"monthlyPayments"`
	FreeMonthlyDeposit decimal.Decimal `json:"freeMonthlyDeposit"`
	ExpectedInterest   decimal.Decimal `json:"expectedInterest"`
	GeneralFinal       decimal.Decimal `json:"generalFinal"`
	GoalCount          int             `json:"goalCount"`
	Achievable         int             `json:"achievable"`
	LatestMonths       int             `json:"latestMonths"` // months until the furthest target
	Warnings           int             `json:"warnings"`

	// Comparison to Base
	PaymentDiffFromBase  decimal.Decimal `json:"paymentDiffFromBase"`
	PaymentPctFromBase   decimal.Decimal `json:"paymentPctFromBase"`
	FreeDepositDiff      decimal.Decimal `json:"freeDepositDiff"`
	InterestDiffFromBase decimal.Decimal `json:"interestDiffFromBase"`
	AchievableDiff       int             `json:"achievableDiff"`
	LatestMonthsDiff     int             `json:"latestMonthsDiff"`
}

// ComparisonSet represents a base plan compared with its what-if scenarios
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	PlanPath           string             `json:"planPath,omitempty"`
}

// MetricsCalculator extracts key metrics from plan reports
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics of one plan report
func (mc *MetricsCalculator) CalculateMetrics(name string, report *domain.PlanReport) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:       name,
		Report:             report,
		MonthlyPayments:    decimal.NewFromFloat(report.Totals.MonthlyPayments).Round(2),
		FreeMonthlyDeposit: decimal.NewFromFloat(report.FreeMonthlyDeposit).Round(2),
		ExpectedInterest:   decimal.NewFromFloat(report.Totals.ExpectedInterest).Round(2),
		GeneralFinal:       decimal.NewFromFloat(report.GeneralFinalGlobal).Round(2),
		GoalCount:          len(report.Goals),
		Achievable:         report.Totals.Achievable,
		Warnings:           len(report.Warnings),
	}

	for _, g := range report.Goals {
		result.LatestMonths = max(result.LatestMonths, g.ViewModel.MonthsUntil)
	}

	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.PaymentDiffFromBase = scenario.MonthlyPayments.Sub(base.MonthlyPayments)

	if !base.MonthlyPayments.IsZero() {
		scenario.PaymentPctFromBase = scenario.PaymentDiffFromBase.
			Div(base.MonthlyPayments).
			Mul(decimal.NewFromInt(100))
	}

	scenario.FreeDepositDiff = scenario.FreeMonthlyDeposit.Sub(base.FreeMonthlyDeposit)
	scenario.InterestDiffFromBase = scenario.ExpectedInterest.Sub(base.ExpectedInterest)
	scenario.AchievableDiff = scenario.Achievable - base.Achievable
	scenario.LatestMonthsDiff = scenario.LatestMonths - base.LatestMonths

	return scenario
}

func money(d decimal.Decimal) string {
	return output.FormatCurrency(d.InexactFloat64())
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 || compSet.BaseResult == nil {
		return recommendations
	}
	base := compSet.BaseResult

	// Lowest monthly commitment
	lowest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.MonthlyPayments.LessThan(lowest.MonthlyPayments) {
			lowest = alt
		}
	}
	if lowest != base {
		recommendations = append(recommendations,
			"Lowest Payments: "+lowest.ScenarioName+" needs "+
				money(base.MonthlyPayments.Sub(lowest.MonthlyPayments))+" less per month than the base plan")
	}

	// Most goals reached
	mostAchievable := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.Achievable > mostAchievable.Achievable {
			mostAchievable = alt
		}
	}
	if mostAchievable != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Most Achievable: %s reaches %d of %d goals (base plan %d)",
				mostAchievable.ScenarioName, mostAchievable.Achievable, mostAchievable.GoalCount, base.Achievable))
	}

	// Highest interest earned
	mostInterest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.ExpectedInterest.GreaterThan(mostInterest.ExpectedInterest) {
			mostInterest = alt
		}
	}
	if mostInterest != base {
		recommendations = append(recommendations,
			"Most Interest: "+mostInterest.ScenarioName+" earns "+
				money(mostInterest.ExpectedInterest.Sub(base.ExpectedInterest))+" more interest")
	}

	// Scenarios that lose goals the base plan reaches
	for _, alt := range compSet.AlternativeResults {
		if alt.AchievableDiff < 0 {
			recommendations = append(recommendations,
				fmt.Sprintf("Caution: %s leaves %d more goal(s) out of reach", alt.ScenarioName, -alt.AchievableDiff))
		}
	}

	return recommendations
}
