package calculation

import (
	"math"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// rateEpsilon routes every "/rate" formula to its rate-free form
const rateEpsilon = 1e-12

// EffectiveAnnualRate converts a nominal annual percentage into a decimal annual rate.
// In real mode the Fisher relation (1+i)/(1+max(0,inflation))-1 is applied.
func EffectiveAnnualRate(nominalAnnualPct float64, computeReal bool, inflationAnnualPct float64) float64 {
	i := finiteOrZero(nominalAnnualPct) / 100
	if !computeReal {
		return i
	}
	pi := math.Max(0, finiteOrZero(inflationAnnualPct)/100)
	return (1+i)/(1+pi) - 1
}

// AnnualToMonthlyRate returns the geometric monthly equivalent (1+eff)^(1/12)-1
func AnnualToMonthlyRate(effectiveAnnual float64) float64 {
	return math.Pow(1+finiteOrZero(effectiveAnnual), 1.0/12) - 1
}

// MonthlyRate converts a nominal annual percentage to a monthly rate under the settings' real/nominal mode
func MonthlyRate(nominalAnnualPct float64, settings domain.Settings) float64 {
	eff := EffectiveAnnualRate(nominalAnnualPct, settings.ComputeReal, settings.InflationAnnualPct)
	return AnnualToMonthlyRate(eff)
}

// GoalMonthlyRate is the monthly rate of a goal with the scenario's rate shift applied
func GoalMonthlyRate(goal domain.Goal, settings domain.Settings, sc domain.ScenarioContext) float64 {
	return MonthlyRate(goal.RateAnnual+sc.RateChange, settings)
}

func finiteOrZero(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
