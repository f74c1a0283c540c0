package breakeven

import (
	"context"
	"fmt"
	"math"

	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/dateutil"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/transform"
)

// reachTolerance absorbs floating-point noise when a balance is compared to its target
const reachTolerance = 0.005

// Solver searches the goal parameter that makes a fixed monthly payment sufficient
type Solver struct {
	Engine  *calculation.ProjectionEngine
	Options SolverOptions
}

// NewSolver creates a new solver
func NewSolver(engine *calculation.ProjectionEngine, options SolverOptions) *Solver {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.ProjectionEngine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// Solve runs the search named by req.Target. SolveAll is handled by SolveAll.
func (s *Solver) Solve(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}

	payment, err := s.resolvePayment(req)
	if err != nil {
		return nil, err
	}
	req.Payment = payment

	switch req.Target {
	case SolveRate:
		return s.solveRate(ctx, req)
	case SolveCapital:
		return s.solveCapital(ctx, req)
	case SolveDate:
		return s.solveDate(ctx, req)
	default:
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported target: %s", req.Target),
		}
	}
}

// resolvePayment picks the payment the goal keeps during the search
func (s *Solver) resolvePayment(req SolveRequest) (float64, error) {
	switch {
	case math.IsNaN(req.Payment) || math.IsInf(req.Payment, 0) || req.Payment < 0:
		return 0, &BreakEvenError{Operation: "solve", Message: fmt.Sprintf("payment must be a non-negative number, got %v", req.Payment)}
	case req.Payment > 0:
		return req.Payment, nil
	case req.Goal.HasPinnedPayment():
		return req.Goal.MonthlyPayment, nil
	default:
		return s.Engine.DisplayPayment(req.Goal, req.Settings, req.Scenario), nil
	}
}

// finalBalance is the balance at the target date when goal keeps paying payment
func finalBalance(goal domain.Goal, req SolveRequest) float64 {
	n := calculation.MonthsToTarget(goal, req.Scenario)
	r := calculation.GoalMonthlyRate(goal, req.Settings, req.Scenario)
	sched := calculation.ScheduleForGoal(goal, req.Payment)
	bonuses := calculation.BucketBonuses(goal.Bonuses, n)
	return calculation.FinalValue(math.Max(0, goal.ExistingCapital), r, sched, bonuses, n)
}

func reached(goal domain.Goal, balance float64) bool {
	return balance+reachTolerance >= goal.Amount
}

func (s *Solver) newResult(req SolveRequest) *SolveResult {
	return &SolveResult{
		Target:      req.Target,
		GoalID:      req.Goal.ID,
		GoalName:    req.Goal.Name,
		Payment:     req.Payment,
		BaseRate:    req.Goal.RateAnnual,
		BaseCapital: req.Goal.ExistingCapital,
		BaseMonths:  calculation.MonthsToTarget(req.Goal, req.Scenario),
	}
}

// solveRate finds the lowest annual rate at which the payment reaches the amount in time
func (s *Solver) solveRate(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	def := DefaultConstraints()
	minRate, maxRate := *def.MinRate, *def.MaxRate
	if req.Constraints.MinRate != nil {
		minRate = *req.Constraints.MinRate
	}
	if req.Constraints.MaxRate != nil {
		maxRate = *req.Constraints.MaxRate
	}
	tol := req.Tolerance
	if tol <= 0 {
		tol = s.Options.RateTolerance
	}

	atRate := func(rate float64) (domain.Goal, float64, error) {
		g, err := transform.ApplyTransforms(&req.Goal, []transform.GoalTransform{
			&transform.ShiftRate{Points: rate - req.Goal.RateAnnual},
		})
		if err != nil {
			return domain.Goal{}, 0, &BreakEvenError{Operation: "solve_rate", Message: "failed to apply rate transform", Cause: err}
		}
		return *g, finalBalance(*g, req), nil
	}

	result := s.newResult(req)

	g, balance, err := atRate(minRate)
	if err != nil {
		return nil, err
	}
	if reached(g, balance) {
		result.Success = true
		result.RequiredRate = &minRate
		result.FinalBalance = balance
		result.ConvergenceInfo = "Reached at the lowest rate searched"
		return result, nil
	}

	g, balance, err = atRate(maxRate)
	if err != nil {
		return nil, err
	}
	if !reached(g, balance) {
		result.FinalBalance = balance
		result.ConvergenceInfo = fmt.Sprintf("Not reachable at rates up to %.2f%%", maxRate)
		return result, nil
	}

	lo, hi := minRate, maxRate
	hiBalance := balance
	for result.Iterations < req.MaxIterations && hi-lo > tol {
		result.Iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := (lo + hi) / 2
		g, balance, err = atRate(mid)
		if err != nil {
			return nil, err
		}
		if reached(g, balance) {
			hi, hiBalance = mid, balance
		} else {
			lo = mid
		}
	}

	result.Success = true
	result.RequiredRate = &hi
	result.FinalBalance = hiBalance
	if hi-lo > tol {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
	} else {
		result.ConvergenceInfo = "Binary search converged"
	}
	return result, nil
}

// solveCapital finds the smallest lump sum today that lets the payment reach the amount in time
func (s *Solver) solveCapital(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	tol := req.Tolerance
	if tol <= 0 {
		tol = s.Options.CapitalTolerance
	}

	atCapital := func(amount float64) (domain.Goal, float64, error) {
		g, err := transform.ApplyTransforms(&req.Goal, []transform.GoalTransform{
			&transform.SetExistingCapital{Amount: amount},
		})
		if err != nil {
			return domain.Goal{}, 0, &BreakEvenError{Operation: "solve_capital", Message: "failed to apply capital transform", Cause: err}
		}
		return *g, finalBalance(*g, req), nil
	}

	result := s.newResult(req)

	g, balance, err := atCapital(0)
	if err != nil {
		return nil, err
	}
	if reached(g, balance) {
		zero := 0.0
		result.Success = true
		result.RequiredCapital = &zero
		result.FinalBalance = balance
		result.ConvergenceInfo = "The payment alone reaches the amount"
		return result, nil
	}

	// a lump sum of the amount discounted at the goal rate always suffices
	n := calculation.MonthsToTarget(req.Goal, req.Scenario)
	r := calculation.GoalMonthlyRate(req.Goal, req.Settings, req.Scenario)
	upper := req.Goal.Amount
	if r < 0 {
		upper = req.Goal.Amount / math.Pow(1+r, float64(n))
	}
	if req.Constraints.MaxCapital != nil {
		upper = *req.Constraints.MaxCapital
	}

	g, balance, err = atCapital(upper)
	if err != nil {
		return nil, err
	}
	if !reached(g, balance) {
		result.FinalBalance = balance
		result.ConvergenceInfo = fmt.Sprintf("Not reachable with a lump sum up to %.2f", upper)
		return result, nil
	}

	lo, hi := 0.0, upper
	hiBalance := balance
	for result.Iterations < req.MaxIterations && hi-lo > tol {
		result.Iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := (lo + hi) / 2
		g, balance, err = atCapital(mid)
		if err != nil {
			return nil, err
		}
		if reached(g, balance) {
			hi, hiBalance = mid, balance
		} else {
			lo = mid
		}
	}

	capital := math.Ceil(hi*100) / 100
	result.Success = true
	result.RequiredCapital = &capital
	result.FinalBalance = hiBalance
	result.ConvergenceInfo = "Binary search converged"
	return result, nil
}

// solveDate finds the earliest month the payment reaches the amount
func (s *Solver) solveDate(ctx context.Context, req SolveRequest) (*SolveResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	result := s.newResult(req)
	result.Iterations = 1

	months, ok := s.Engine.TimeToTarget(req.Goal, req.Settings, req.Scenario, req.Payment)
	if !ok || months >= calculation.MaxSimulationMonths {
		result.ConvergenceInfo = fmt.Sprintf("Not reachable within %d months", calculation.MaxSimulationMonths)
		return result, nil
	}

	date := dateutil.AddMonths(req.Scenario.Now, months)
	retimed, err := transform.ApplyTransforms(&req.Goal, []transform.GoalTransform{
		&transform.SetTargetDate{Date: date},
	})
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve_date", Message: "failed to apply date transform", Cause: err}
	}

	result.Success = true
	result.MonthsNeeded = &months
	result.ReachDate = &date
	result.FinalBalance = finalBalance(*retimed, req)
	result.ConvergenceInfo = fmt.Sprintf("Reached after %d months", months)
	return result, nil
}
