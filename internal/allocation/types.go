package allocation

import (
	"github.com/rgehrsitz/goalplan/internal/domain"
)

// MaxTimeToGoalMonths bounds the doubling search in TimeToGoal
const MaxTimeToGoalMonths = 2400

// Options configures an allocation run
type Options struct {
	BudgetMode  domain.BudgetMode
	Mode        domain.AllocationMode
	Diagnostics bool // compute per-allocation diagnostics
}

// DefaultOptions allocates the general monthly deposit by best rate, with diagnostics
func DefaultOptions() Options {
	return Options{
		BudgetMode:  domain.BudgetGeneral,
		Mode:        domain.AllocateSurplus,
		Diagnostics: true,
	}
}

// Validate checks that the option enums are in range
func (o Options) Validate() error {
	switch o.BudgetMode {
	case domain.BudgetGeneral, domain.BudgetSumOfGoals:
	default:
		return &AllocationError{
			Operation: "validate_options",
			Message:   "unsupported budget mode: " + o.BudgetMode.String(),
		}
	}
	switch o.Mode {
	case domain.AllocateSurplus, domain.AllocateTime:
	default:
		return &AllocationError{
			Operation: "validate_options",
			Message:   "unsupported allocation mode: " + o.Mode.String(),
		}
	}
	return nil
}

// AllocationError represents errors from the allocation optimizer
type AllocationError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *AllocationError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *AllocationError) Unwrap() error {
	return e.Cause
}
