package allocation

import (
	"context"
	"math"

	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"gonum.org/v1/gonum/floats"
)

// Optimizer distributes a monthly budget across goals: every goal gets its minimum
// required payment and any surplus goes to at most one goal, or to the general bucket.
type Optimizer struct {
	Engine *calculation.ProjectionEngine
}

// NewOptimizer creates an optimizer over the given engine. A nil engine gets a default one.
func NewOptimizer(engine *calculation.ProjectionEngine) *Optimizer {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	return &Optimizer{Engine: engine}
}

type analyzedGoal struct {
	goal domain.Goal
	vm   domain.GoalViewModel
	pMin float64
}

// Budget returns the monthly budget for the given mode
func Budget(goals []domain.Goal, settings domain.Settings, mode domain.BudgetMode) float64 {
	if mode == domain.BudgetSumOfGoals {
		payments := make([]float64, len(goals))
		for i, g := range goals {
			payments[i] = nonNegative(g.MonthlyPayment)
		}
		return floats.Sum(payments)
	}
	return nonNegative(settings.GeneralMonthlyDeposit)
}

// Optimize runs the allocation. Infeasibility is reported in the result, not as an error;
// errors are reserved for invalid options and cancellation.
func (o *Optimizer) Optimize(ctx context.Context, goals []domain.Goal, settings domain.Settings, sc domain.ScenarioContext, opts Options) (*domain.AllocationResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	budget := Budget(goals, settings, opts.BudgetMode)
	result := &domain.AllocationResult{
		Feasible:    true,
		BudgetMode:  opts.BudgetMode,
		Mode:        opts.Mode,
		Budget:      budget,
		TargetIndex: -1,
		Allocations: []domain.Allocation{},
	}
	if len(goals) == 0 {
		return result, nil
	}

	analyzed := make([]analyzedGoal, len(goals))
	mins := make([]float64, len(goals))
	for i, g := range goals {
		select {
		case <-ctx.Done():
			return nil, &AllocationError{Operation: "optimize", Message: "cancelled", Cause: ctx.Err()}
		default:
		}
		vm := o.Engine.ViewModel(g, settings, sc)
		analyzed[i] = analyzedGoal{goal: g, vm: vm, pMin: vm.DisplayPayment}
		mins[i] = vm.DisplayPayment
	}

	sumMin := floats.Sum(mins)
	result.SumMinimum = sumMin
	if sumMin > budget {
		result.Feasible = false
		result.Shortfall = sumMin - budget
		result.Allocations = nil
		o.Engine.Log().Debugf("allocation infeasible: budget %.2f, minimum %.2f", budget, sumMin)
		return result, nil
	}

	leftover := math.Max(0, budget-sumMin)
	generalRate := finite(settings.GeneralInterestRate)
	idx := selectTarget(analyzed, opts.Mode, generalRate)

	result.Leftover = leftover
	result.TargetIndex = idx
	for i, a := range analyzed {
		pay := a.pMin
		if i == idx {
			pay += leftover
		}
		result.Allocations = append(result.Allocations, domain.Allocation{
			GoalID:     a.goal.ID,
			GoalName:   a.goal.Name,
			PaymentNew: pay,
		})
	}
	if idx == -1 && leftover > 0 {
		result.Allocations = append(result.Allocations, domain.Allocation{
			GoalID:     domain.GeneralAllocationID,
			GoalName:   "General savings",
			PaymentNew: leftover,
			General:    true,
		})
	}

	if opts.Diagnostics {
		diags, err := o.diagnose(ctx, analyzed, result.Allocations, settings, sc, generalRate)
		if err != nil {
			return nil, err
		}
		result.Diagnostics = diags
	}

	return result, nil
}

// selectTarget picks the surplus recipient, or -1 to leave the surplus unassigned.
// Ties keep the first goal in input order.
func selectTarget(analyzed []analyzedGoal, mode domain.AllocationMode, generalRate float64) int {
	switch mode {
	case domain.AllocateTime:
		best := 0
		for i := range analyzed {
			if analyzed[i].vm.MonthsUntil > analyzed[best].vm.MonthsUntil {
				best = i
			}
		}
		if finite(analyzed[best].goal.RateAnnual) > generalRate {
			return best
		}
		return -1
	case domain.AllocateSurplus:
		best := -1
		bestRate := generalRate
		for i, a := range analyzed {
			if rate := finite(a.goal.RateAnnual); rate > bestRate {
				bestRate = rate
				best = i
			}
		}
		return best
	default:
		return -1
	}
}

func finite(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}

func nonNegative(x float64) float64 {
	return math.Max(0, finite(x))
}
