package calculation

import (
	"math"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// SensitivityAnalyzer re-times every goal under a global interest-rate shift
type SensitivityAnalyzer struct {
	engine *ProjectionEngine
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer
func NewSensitivityAnalyzer(engine *ProjectionEngine) *SensitivityAnalyzer {
	if engine == nil {
		engine = NewProjectionEngine()
	}
	return &SensitivityAnalyzer{engine: engine}
}

// Analyze measures how much sooner or later each goal finishes when its rate moves by
// deltaPct percentage points while keeping the payment schedule it already uses.
// The payment is resolved under sc; only the simulation rate carries the delta.
func (sa *SensitivityAnalyzer) Analyze(goals []domain.Goal, settings domain.Settings, sc domain.ScenarioContext, deltaPct float64) domain.SensitivityAnalysis {
	deltaPct = finiteOrZero(deltaPct)
	diffs := make([]domain.GoalTimeDifference, 0, len(goals))

	for _, g := range goals {
		baseMonths := MonthsToTarget(g, sc)
		newMonths := sa.shiftedMonths(g, settings, sc, deltaPct, baseMonths)

		name := g.Name
		if name == "" {
			name = "Goal"
		}
		diffs = append(diffs, domain.GoalTimeDifference{
			GoalID:               g.ID,
			GoalName:             name,
			BaseMonths:           baseMonths,
			NewMonths:            newMonths,
			TimeDifferenceMonths: newMonths - baseMonths,
		})
	}

	return domain.SensitivityAnalysis{
		Differences: diffs,
		Delta:       deltaPct,
		Timestamp:   sc.Now,
	}
}

func (sa *SensitivityAnalyzer) shiftedMonths(g domain.Goal, settings domain.Settings, sc domain.ScenarioContext, deltaPct float64, baseMonths int) int {
	r := MonthlyRate(g.RateAnnual+deltaPct, settings)
	payment := math.Max(0, sa.engine.RequiredPayment(g, settings, sc))
	sched := ScheduleForGoal(g, payment)
	bonuses := BucketBonuses(g.Bonuses, 0)

	months := MonthsToReachTarget(math.Max(0, g.Amount), math.Max(0, g.ExistingCapital), r, sched, bonuses, -1)
	if months < 0 {
		sa.engine.logger().Debugf("goal %s: unmet within %d months at %+.2fpp, keeping baseline", g.ID, MaxSimulationMonths, deltaPct)
		return baseMonths
	}
	return months
}

// AnalyzeSweep runs Analyze for evenly spaced deltas from minPct to maxPct inclusive
func (sa *SensitivityAnalyzer) AnalyzeSweep(goals []domain.Goal, settings domain.Settings, sc domain.ScenarioContext, minPct, maxPct float64, steps int) []domain.SensitivityAnalysis {
	deltas := sweepValues(minPct, maxPct, steps)
	out := make([]domain.SensitivityAnalysis, 0, len(deltas))
	for _, d := range deltas {
		out = append(out, sa.Analyze(goals, settings, sc, d))
	}
	return out
}

func sweepValues(minPct, maxPct float64, steps int) []float64 {
	if steps <= 1 || minPct == maxPct {
		return []float64{minPct}
	}
	step := (maxPct - minPct) / float64(steps-1)
	values := make([]float64, steps)
	for i := range values {
		values[i] = minPct + float64(i)*step
	}
	values[steps-1] = maxPct
	return values
}
