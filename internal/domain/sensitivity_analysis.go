package domain

import "time"

// GoalTimeDifference is the time-to-target change for one goal under a rate shift
type GoalTimeDifference struct {
	GoalID               string `json:"goalId"`
	GoalName             string `json:"goalName"`
	BaseMonths           int    `json:"baseMonths"`
	NewMonths            int    `json:"newMonths"`
	TimeDifferenceMonths int    `json:"timeDifferenceMonths"` // positive = slower, negative = faster
}

// SensitivityAnalysis is the result of re-timing every goal under a global rate shift
type SensitivityAnalysis struct {
	Differences []GoalTimeDifference `json:"differences"`
	Delta       float64              `json:"delta"` // percentage points
	Timestamp   time.Time            `json:"timestamp"`
}

// Faster returns the goals that finish sooner under the shift
func (sa SensitivityAnalysis) Faster() []GoalTimeDifference {
	var out []GoalTimeDifference
	for _, d := range sa.Differences {
		if d.TimeDifferenceMonths < 0 {
			out = append(out, d)
		}
	}
	return out
}

// Slower returns the goals that finish later under the shift
func (sa SensitivityAnalysis) Slower() []GoalTimeDifference {
	var out []GoalTimeDifference
	for _, d := range sa.Differences {
		if d.TimeDifferenceMonths > 0 {
			out = append(out, d)
		}
	}
	return out
}
