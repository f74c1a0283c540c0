package tui

import (
	"github.com/rgehrsitz/goalplan/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneDashboard Scene = iota
	SceneGoal
	SceneSensitivity
	SceneOptimize
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// PlanLoadedMsg signals the plan file has been loaded and validated
type PlanLoadedMsg struct {
	Plan *domain.Plan
}

// PlanRecalculatedMsg carries everything derived from the plan at one rate shift
type PlanRecalculatedMsg struct {
	RateChange  float64
	Report      *domain.PlanReport
	Sensitivity *domain.SensitivityAnalysis
}

// AllocationCompleteMsg signals a budget allocation has finished
type AllocationCompleteMsg struct {
	RateChange float64
	Result     *domain.AllocationResult
	Err        error
}
