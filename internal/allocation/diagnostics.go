package allocation

import (
	"context"
	"math"

	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/transform"
)

// TimeToGoal finds the smallest month count at which the goal's closed-form future value
// (existing capital, bonuses due by then, and the payment stream) reaches its amount.
// The search doubles up to MaxTimeToGoalMonths; ok is false when the goal is not reached.
func TimeToGoal(goal domain.Goal, settings domain.Settings, sc domain.ScenarioContext, payment float64) (months int, ok bool) {
	r := calculation.GoalMonthlyRate(goal, settings, sc)
	amount := nonNegative(goal.Amount)
	existing := nonNegative(goal.ExistingCapital)
	p := nonNegative(payment)
	d := 0.0
	if goal.IsProgressive() {
		d = nonNegative(goal.MonthlyIncrease)
	}

	fvFor := func(n int) float64 {
		fv := existing * math.Pow(1+r, float64(n))
		fv += calculation.BucketBonuses(goal.Bonuses, n).FutureValue(r, n)
		if goal.IsProgressive() {
			fv += calculation.GradientFutureValue(p, d, n, r)
		} else {
			fv += p * calculation.SeriesFactor(r, n)
		}
		return fv
	}

	lo, hi := 1, 1
	for fvFor(hi) < amount && hi < MaxTimeToGoalMonths {
		hi *= 2
	}
	if fvFor(hi) < amount {
		return 0, false
	}

	for lo < hi {
		mid := (lo + hi) / 2
		if fvFor(mid) >= amount {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return lo, true
}

// diagnose explains each allocation under the settings the optimizer ran with. Goal rows
// re-project the goal with its new payment pinned.
func (o *Optimizer) diagnose(ctx context.Context, analyzed []analyzedGoal, allocations []domain.Allocation, settings domain.Settings, sc domain.ScenarioContext, generalRate float64) ([]domain.AllocationDiagnostic, error) {
	byID := make(map[string]analyzedGoal, len(analyzed))
	for _, a := range analyzed {
		if _, seen := byID[a.goal.ID]; !seen {
			byID[a.goal.ID] = a
		}
	}

	out := make([]domain.AllocationDiagnostic, 0, len(allocations))
	for _, al := range allocations {
		if err := ctx.Err(); err != nil {
			return nil, &AllocationError{Operation: "diagnose", Message: "cancelled", Cause: err}
		}

		if al.IsGeneral() {
			out = append(out, domain.AllocationDiagnostic{Allocation: al, InterestRate: generalRate})
			continue
		}

		a, found := byID[al.GoalID]
		if !found {
			out = append(out, domain.AllocationDiagnostic{Allocation: al})
			continue
		}

		diag := domain.AllocationDiagnostic{
			Allocation:     al,
			InterestRate:   finite(a.goal.RateAnnual),
			CurrentPayment: a.vm.DisplayPayment,
			GoalAmount:     a.vm.GoalAmount,
			MonthsCurrent:  a.vm.MonthsUntil,
		}

		if al.PaymentNew > 0 {
			pinned, err := transform.ApplyTransforms(&a.goal, []transform.GoalTransform{
				&transform.PinPayment{Payment: al.PaymentNew, Mode: domain.ModeAmountPayment},
			})
			if err != nil {
				return nil, &AllocationError{Operation: "diagnose", Message: "failed to pin payment for goal " + al.GoalID, Cause: err}
			}
			vm := o.Engine.ViewModel(*pinned, settings, sc)
			diag.ProjectedFutureValue = vm.CalculatedFutureValue
			diag.Surplus = vm.CalculatedFutureValue - vm.GoalAmount
		} else {
			diag.ProjectedFutureValue = a.vm.CalculatedFutureValue
			diag.Surplus = a.vm.CalculatedFutureValue - a.vm.GoalAmount
		}

		diag.MonthsNew, diag.ReachableNew = TimeToGoal(a.goal, settings, sc, al.PaymentNew)
		out = append(out, diag)
	}
	return out, nil
}
