package breakeven

import (
	"fmt"
	"time"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// SolveTarget names the goal parameter the solver searches for
type SolveTarget string

const (
	// SolveRate finds the lowest annual rate that reaches the amount by the target date
	SolveRate SolveTarget = "rate"
	// SolveCapital finds the smallest lump sum today that reaches the amount by the target date
	SolveCapital SolveTarget = "capital"
	// SolveDate finds the earliest month the amount is reached
	SolveDate SolveTarget = "date"
	// SolveAll runs every target
	SolveAll SolveTarget = "all"
)

// ParseSolveTarget accepts the target names above, case-sensitive
func ParseSolveTarget(s string) (SolveTarget, error) {
	switch t := SolveTarget(s); t {
	case SolveRate, SolveCapital, SolveDate, SolveAll:
		return t, nil
	case "":
		return SolveAll, nil
	default:
		return "", &BreakEvenError{Operation: "parse_target", Message: fmt.Sprintf("unknown target %q (rate, capital, date, all)", s)}
	}
}

// Constraints bound the search ranges
type Constraints struct {
	// Annual rate bounds in percent
	MinRate *float64 `json:"min_rate,omitempty"`
	MaxRate *float64 `json:"max_rate,omitempty"`

	// Upper bound for the lump sum; defaults to the goal amount discounted at a negative rate
	MaxCapital *float64 `json:"max_capital,omitempty"`
}

// DefaultConstraints searches rates between -5% and 30% a year
func DefaultConstraints() Constraints {
	minRate := -5.0
	maxRate := 30.0
	return Constraints{MinRate: &minRate, MaxRate: &maxRate}
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.MinRate != nil && *c.MinRate <= -100 {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_rate must be greater than -100"}
	}
	if c.MinRate != nil && c.MaxRate != nil && *c.MinRate > *c.MaxRate {
		return &BreakEvenError{Operation: "validate_constraints", Message: "min_rate cannot be greater than max_rate"}
	}
	if c.MaxCapital != nil && *c.MaxCapital < 0 {
		return &BreakEvenError{Operation: "validate_constraints", Message: "max_capital cannot be negative"}
	}
	return nil
}

// SolveRequest defines one solver run for one goal
type SolveRequest struct {
	Goal     domain.Goal
	Settings domain.Settings
	Scenario domain.ScenarioContext
	Target   SolveTarget

	// Payment is the monthly payment the goal keeps; zero uses the goal's pinned
	// payment, or its required payment at the scenario when none is pinned
	Payment float64

	Constraints   Constraints
	MaxIterations int     // Maximum bisection steps
	Tolerance     float64 // Convergence width of the searched parameter
}

// SolveResult contains the outcome of one solver run
type SolveResult struct {
	Target          SolveTarget `json:"target"`
	GoalID          string      `json:"goal_id"`
	GoalName        string      `json:"goal_name"`
	Payment         float64     `json:"payment"`
	Success         bool        `json:"success"`
	Iterations      int         `json:"iterations"`
	ConvergenceInfo string      `json:"convergence_info"`

	// Solved parameters
	RequiredRate    *float64   `json:"required_rate,omitempty"`
	RequiredCapital *float64   `json:"required_capital,omitempty"`
	MonthsNeeded    *int       `json:"months_needed,omitempty"`
	ReachDate       *time.Time `json:"reach_date,omitempty"`

	// Balance at the target date with the solved parameter
	FinalBalance float64 `json:"final_balance"`

	// Goal as given, for comparison
	BaseRate    float64 `json:"base_rate"`
	BaseCapital float64 `json:"base_capital"`
	BaseMonths  int     `json:"base_months"`
}

// MultiResult contains every target solved for one goal
type MultiResult struct {
	GoalID          string        `json:"goal_id"`
	GoalName        string        `json:"goal_name"`
	Payment         float64       `json:"payment"`
	Results         []SolveResult `json:"results"`
	Recommendations []string      `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	MaxIterations    int     // Maximum bisection steps
	RateTolerance    float64 // Percentage points
	CapitalTolerance float64 // Currency units
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations:    100,
		RateTolerance:    0.0001,
		CapitalTolerance: 0.01,
	}
}

// BreakEvenError represents errors from the solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
