package domain

import (
	"fmt"
	"strings"
)

// GeneralAllocationID identifies the synthetic bucket that receives unassigned surplus
const GeneralAllocationID = "general"

// BudgetMode selects where the monthly budget for an allocation comes from
type BudgetMode int

const (
	// BudgetGeneral uses Settings.GeneralMonthlyDeposit
	BudgetGeneral BudgetMode = iota
	// BudgetSumOfGoals uses the sum of each goal's current MonthlyPayment
	BudgetSumOfGoals
)

func (b BudgetMode) String() string {
	switch b {
	case BudgetGeneral:
		return "general"
	case BudgetSumOfGoals:
		return "sumOfGoals"
	default:
		return fmt.Sprintf("BudgetMode(%d)", int(b))
	}
}

// MarshalText implements encoding.TextMarshaler
func (b BudgetMode) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// ParseBudgetMode accepts "general" and "sumOfGoals" (case-insensitive, "sum_of_goals" too)
func ParseBudgetMode(s string) (BudgetMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "general":
		return BudgetGeneral, nil
	case "sumofgoals", "sum_of_goals", "sum":
		return BudgetSumOfGoals, nil
	default:
		return BudgetGeneral, fmt.Errorf("unknown budget mode %q", s)
	}
}

// AllocationMode selects which goal receives the surplus
type AllocationMode int

const (
	// AllocateSurplus gives the surplus to the goal with the best rate
	AllocateSurplus AllocationMode = iota
	// AllocateTime gives the surplus to the goal with the longest horizon
	AllocateTime
)

func (a AllocationMode) String() string {
	switch a {
	case AllocateSurplus:
		return "surplus"
	case AllocateTime:
		return "time"
	default:
		return fmt.Sprintf("AllocationMode(%d)", int(a))
	}
}

// MarshalText implements encoding.TextMarshaler
func (a AllocationMode) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseAllocationMode accepts "surplus" and "time"
func ParseAllocationMode(s string) (AllocationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "surplus":
		return AllocateSurplus, nil
	case "time":
		return AllocateTime, nil
	default:
		return AllocateSurplus, fmt.Errorf("unknown allocation mode %q", s)
	}
}

// Allocation is the new monthly payment for one goal, or for the general bucket
type Allocation struct {
	GoalID     string  `json:"id"`
	GoalName   string  `json:"name"`
	PaymentNew float64 `json:"paymentNew"`
	General    bool    `json:"general,omitempty"`
}

// IsGeneral reports whether this is the unassigned-surplus bucket. A goal may use the
// ID "general" too; only the optimizer sets the flag.
func (a Allocation) IsGeneral() bool {
	return a.General
}

// AllocationDiagnostic explains one allocation: the rate it earns and, for goals, how the
// new payment changes the projected outcome.
type AllocationDiagnostic struct {
	Allocation
	InterestRate         float64 `json:"interestRate"`
	CurrentPayment       float64 `json:"currentPayment"`
	ProjectedFutureValue float64 `json:"projectedFutureValue"`
	GoalAmount           float64 `json:"goalAmount"`
	Surplus              float64 `json:"surplus"`
	MonthsCurrent        int     `json:"monthsCurrent"`
	MonthsNew            int     `json:"monthsNew"`
	ReachableNew         bool    `json:"reachableNew"`
}

// AllocationResult is the outcome of distributing a monthly budget across goals.
// An infeasible budget is a normal result carrying the shortfall.
type AllocationResult struct {
	Feasible    bool                   `json:"feasible"`
	BudgetMode  BudgetMode             `json:"budgetMode"`
	Mode        AllocationMode         `json:"mode"`
	Budget      float64                `json:"budget"`
	SumMinimum  float64                `json:"sumMinimum"`
	Shortfall   float64                `json:"shortfall,omitempty"`
	Leftover    float64                `json:"leftover"`
	TargetIndex int                    `json:"targetIndex"`
	Allocations []Allocation           `json:"allocations"`
	Diagnostics []AllocationDiagnostic `json:"diagnostics,omitempty"`
}
