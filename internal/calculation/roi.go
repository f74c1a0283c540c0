package calculation

import (
	"math"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// CalculateROI returns the annualized growth (CAGR, percent) of the goal's projected future
// value over its total nominal investment. It is 0 whenever the ratio is undefined.
func (pe *ProjectionEngine) CalculateROI(goal domain.Goal, settings domain.Settings, sc domain.ScenarioContext) float64 {
	vm := pe.ViewModel(goal, settings, sc)
	return CAGR(vm.CalculatedFutureValue, vm.TotalNominalInvestment, vm.MonthsUntil)
}

// CAGR annualizes finalValue/invested over the given number of months, in percent
func CAGR(finalValue, invested float64, months int) float64 {
	if invested <= 0 || months <= 0 {
		return 0
	}
	years := float64(months) / 12
	totalReturn := finalValue / invested
	if math.IsNaN(totalReturn) || math.IsInf(totalReturn, 0) || totalReturn <= 0 {
		return 0
	}
	cagr := (math.Pow(totalReturn, 1/years) - 1) * 100
	if math.IsNaN(cagr) || math.IsInf(cagr, 0) {
		return 0
	}
	return cagr
}

// Rule72Years estimates the doubling time of money at ratePct. ok is false for rates <= 0.
func Rule72Years(ratePct float64) (years float64, ok bool) {
	ratePct = finiteOrZero(ratePct)
	if ratePct <= 0 {
		return 0, false
	}
	return 72 / ratePct, true
}
