package tuimsg

import (
	"github.com/rgehrsitz/goalplan/internal/allocation"
)

// GoalSelectedMsg asks the app to open the detail view of the goal at Index
type GoalSelectedMsg struct {
	Index int
}

// OptimizeRequestMsg asks the app to rerun the budget allocation with Options
type OptimizeRequestMsg struct {
	Options allocation.Options
}
