package domain

import "time"

// GoalReport is the per-goal row of a plan report
type GoalReport struct {
	Goal       Goal          `json:"goal"`
	ViewModel  GoalViewModel `json:"viewModel"`
	TargetDate time.Time     `json:"targetDate"`

	ROI      float64  `json:"roi"` // annualized percent
	ROIClass ROIClass `json:"roiClass"`

	// Rule72OK is false when the goal's rate is not positive and no doubling time exists
	Rule72Years float64  `json:"rule72Years"`
	Rule72OK    bool     `json:"rule72Ok"`
	Rule72Class ROIClass `json:"rule72Class,omitempty"`
}

// PlanTotals aggregates the goal rows of a report
type PlanTotals struct {
	GoalAmount       float64 `json:"goalAmount"`
	ExistingCapital  float64 `json:"existingCapital"`
	MonthlyPayments  float64 `json:"monthlyPayments"` // sum of display payments
	ExpectedInterest float64 `json:"expectedInterest"`
	Achievable       int     `json:"achievable"`
}

// PlanReport is everything the report surfaces render for a plan at one instant
type PlanReport struct {
	GeneratedAt time.Time       `json:"generatedAt"`
	AsOf        time.Time       `json:"asOf"`
	RateChange  float64         `json:"rateChange"`
	Settings    Settings        `json:"settings"`
	Goals       []GoalReport    `json:"goals"`
	Totals      PlanTotals      `json:"totals"`
	Warnings    []HealthWarning `json:"warnings"`

	FreeMonthlyDeposit float64 `json:"freeMonthlyDeposit"`

	GeneralMonths       int     `json:"generalMonths"`
	GeneralFinalGlobal  float64 `json:"generalFinalGlobal"`
	GeneralFinalDeposit float64 `json:"generalFinalDeposit"`
	GeneralInterest     float64 `json:"generalInterest"`
}
