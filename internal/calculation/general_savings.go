package calculation

import (
	"math"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// DefaultGeneralHorizonYears is used when there are no goals and no explicit horizon
const DefaultGeneralHorizonYears = 30

// GeneralSavings projects savings held outside any goal. The net starting balance is
// globalSaved minus the capital already allocated to goals, compounding at globalAnnualRate.
// Each month the part of generalMonthlyDeposit not consumed by goal payments is deposited.
// months <= 0 selects the longest goal horizon, or DefaultGeneralHorizonYears without goals.
func (pe *ProjectionEngine) GeneralSavings(goals []domain.Goal, settings domain.Settings, sc domain.ScenarioContext, months int) domain.GeneralSavingsProjection {
	if months <= 0 {
		months = DefaultGeneralHorizonYears * 12
		if len(goals) > 0 {
			months = 0
			for _, g := range goals {
				if n := MonthsToTarget(g, sc); n > months {
					months = n
				}
			}
		}
	}

	allocated := 0.0
	for _, g := range goals {
		allocated += g.ExistingCapital
	}
	g0Net := math.Max(0, math.Max(0, settings.GlobalSaved)-allocated)
	rG := MonthlyRate(settings.GlobalAnnualRate, settings)

	type flow struct {
		horizon int
		sched   PaymentSchedule
	}
	flows := make([]flow, 0, len(goals))
	for _, g := range goals {
		flows = append(flows, flow{
			horizon: MonthsToTarget(g, sc),
			sched:   ScheduleForGoal(g, math.Max(0, pe.RequiredPayment(g, settings, sc))),
		})
	}

	proj := domain.GeneralSavingsProjection{
		Months:             months,
		MonthlyRate:        rG,
		NetStart:           g0Net,
		Global:             make([]float64, months+1),
		Unassigned:         make([]float64, months+1),
		BaselineNoRate:     make([]float64, months+1),
		CumulativeInterest: make([]float64, months+1),
	}

	unassigned := 0.0
	baseline := g0Net
	for k := 0; k <= months; k++ {
		if k > 0 {
			goalPayments := 0.0
			for _, f := range flows {
				if k <= f.horizon {
					goalPayments += math.Max(0, f.sched.At(k))
				}
			}
			deposit := math.Max(0, settings.GeneralMonthlyDeposit-goalPayments)
			unassigned = unassigned*(1+rG) + deposit
			baseline += deposit
		}
		global := g0Net * math.Pow(1+rG, float64(k))

		proj.Global[k] = math.Round(global)
		proj.Unassigned[k] = math.Round(unassigned)
		proj.BaselineNoRate[k] = math.Round(baseline)
		proj.CumulativeInterest[k] = math.Round(math.Max(0, global+unassigned-baseline))
	}

	return proj
}
