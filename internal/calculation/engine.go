package calculation

import (
	"math"

	"github.com/rgehrsitz/goalplan/internal/dateutil"
	"github.com/rgehrsitz/goalplan/internal/domain"
)

// centEpsilon is the tolerance under which a goal counts as achieved
const centEpsilon = 0.01

// ProjectionEngine turns a goal and the shared settings into payments, trajectories and
// derived metrics. It holds no state between calls besides its logger.
type ProjectionEngine struct {
	Logger Logger
}

// NewProjectionEngine creates a projection engine with a no-op logger
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. A nil logger restores the no-op logger.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// Log returns the engine logger, never nil
func (pe *ProjectionEngine) Log() Logger {
	return pe.logger()
}

func (pe *ProjectionEngine) logger() Logger {
	if pe == nil || pe.Logger == nil {
		return NopLogger{}
	}
	return pe.Logger
}

// goalBasis is the per-call cash-flow model shared by every goal computation
type goalBasis struct {
	months     int
	rate       float64
	existing   float64
	bonuses    BonusSchedule
	bonusesSum float64
	fvExisting float64
	fvBonuses  float64
}

// need is the part of the target that payments have to cover
func (b goalBasis) need(amount float64) float64 {
	return math.Max(0, amount-b.fvExisting-b.fvBonuses)
}

// MonthsToTarget is the goal horizon in months, never less than 1
func MonthsToTarget(goal domain.Goal, sc domain.ScenarioContext) int {
	n := dateutil.MonthsBetween(sc.Now, goal.TargetDate, dateutil.RoundCeil)
	if n < 1 {
		return 1
	}
	return n
}

func newGoalBasis(goal domain.Goal, settings domain.Settings, sc domain.ScenarioContext) goalBasis {
	n := MonthsToTarget(goal, sc)
	r := GoalMonthlyRate(goal, settings, sc)
	existing := math.Max(0, goal.ExistingCapital)
	bonuses := BucketBonuses(goal.Bonuses, n)
	return goalBasis{
		months:     n,
		rate:       r,
		existing:   existing,
		bonuses:    bonuses,
		bonusesSum: bonuses.Sum(),
		fvExisting: existing * math.Pow(1+r, float64(n)),
		fvBonuses:  bonuses.FutureValue(r, n),
	}
}

// RequiredPayment returns the raw (unrounded) monthly payment for a goal. A user-pinned
// payment is returned verbatim. For progressive goals the result is the base payment of
// the growing schedule.
func (pe *ProjectionEngine) RequiredPayment(goal domain.Goal, settings domain.Settings, sc domain.ScenarioContext) float64 {
	if goal.HasPinnedPayment() {
		return goal.MonthlyPayment
	}

	b := newGoalBasis(goal, settings, sc)
	need := b.need(goal.Amount)
	if need <= 0 {
		return 0
	}

	switch goal.SavingsType {
	case domain.SavingsProgressive:
		if goal.InitialAmount > 0 {
			return goal.InitialAmount
		}
		d := math.Max(0, goal.MonthlyIncrease)
		p := ProgressiveBasePayment(need, d, b.months, b.rate)
		if math.IsNaN(p) || math.IsInf(p, 0) {
			pe.logger().Debugf("goal %s: progressive closed form degenerate (r=%g n=%d), bisecting", goal.ID, b.rate, b.months)
			p = solveBaseByBisection(need, b.months, b.rate, 0, d, nil)
		}
		return math.Max(0, p)
	case domain.SavingsFixed:
		return PaymentForFutureValue(need, b.months, b.rate)
	default:
		return PaymentForFutureValue(need, b.months, b.rate)
	}
}

// DisplayPayment is the required payment rounded up to a whole currency unit
func (pe *ProjectionEngine) DisplayPayment(goal domain.Goal, settings domain.Settings, sc domain.ScenarioContext) float64 {
	return math.Ceil(pe.RequiredPayment(goal, settings, sc))
}

// ViewModel builds the canonical derived-metrics record for a goal
func (pe *ProjectionEngine) ViewModel(goal domain.Goal, settings domain.Settings, sc domain.ScenarioContext) domain.GoalViewModel {
	b := newGoalBasis(goal, settings, sc)
	n := b.months
	nf := float64(n)

	base := math.Max(0, pe.RequiredPayment(goal, settings, sc))
	d := 0.0
	if goal.IsProgressive() {
		d = math.Max(0, goal.MonthlyIncrease)
	}

	var fvPayments, nominalPayments float64
	if goal.IsProgressive() {
		fvPayments = GradientFutureValue(base, d, n, b.rate)
		nominalPayments = base*nf + d*nf*(nf-1)/2
	} else {
		fvPayments = base * SeriesFactor(b.rate, n)
		nominalPayments = base * nf
	}

	goalAmount := toCent(math.Max(0, goal.Amount))
	calculated := toCent(toCent(b.fvExisting) + toCent(b.fvBonuses) + toCent(fvPayments))
	nominalInvestment := toCent(b.existing + b.bonusesSum + nominalPayments)
	deficit := toCent(goalAmount - calculated)
	achievable := deficit <= centEpsilon
	shortfall := 0.0
	if !achievable {
		shortfall = toCent(math.Max(0, deficit))
	}

	return domain.GoalViewModel{
		GoalID:                 goal.ID,
		GoalName:               goal.Name,
		GoalAmount:             goalAmount,
		ExistingCapital:        b.existing,
		MonthsUntil:            n,
		MonthlyRate:            b.rate,
		FVExisting:             b.fvExisting,
		FVBonuses:              b.fvBonuses,
		FVPayments:             fvPayments,
		BasePayment:            base,
		DisplayPayment:         math.Ceil(base),
		BonusesSum:             b.bonusesSum,
		TotalNominalInvestment: nominalInvestment,
		ExpectedInterest:       math.Max(0, toCent(calculated-nominalInvestment)),
		CalculatedFutureValue:  calculated,
		Achievable:             achievable,
		Shortfall:              shortfall,
		MonthlyIncrease:        d,
		Progressive:            goal.IsProgressive(),
	}
}

// ProjectTrajectory simulates the goal month by month from its existing capital using the
// resolved payment schedule. A progressive InitialAmount override drives both the payment
// and the trajectory.
func (pe *ProjectionEngine) ProjectTrajectory(goal domain.Goal, settings domain.Settings, sc domain.ScenarioContext) domain.Trajectory {
	b := newGoalBasis(goal, settings, sc)
	base := math.Max(0, pe.RequiredPayment(goal, settings, sc))
	sched := ScheduleForGoal(goal, base)

	values := Simulate(b.existing, b.rate, sched, b.bonuses, b.months)
	months := make([]int, b.months)
	for i := range months {
		months[i] = i + 1
	}
	sum := sched.Total(b.months)

	return domain.Trajectory{
		Months:                months,
		Values:                values,
		FinalAmount:           domain.Final(values),
		SumPayments:           sum,
		AverageMonthlyPayment: sum / float64(b.months),
		BonusesSum:            b.bonusesSum,
		FVExisting:            b.fvExisting,
		FVBonuses:             b.fvBonuses,
		MonthlyRate:           b.rate,
		BasePayment:           base,
	}
}

// GoalSeries builds chart series for a goal over chartMonths (at least the goal horizon):
// the mid trajectory capped at the target and uncapped, pessimistic and optimistic bands
// at -2/+2 annual points over the goal horizon, and the first month the target is hit.
func (pe *ProjectionEngine) GoalSeries(goal domain.Goal, settings domain.Settings, sc domain.ScenarioContext, chartMonths int) domain.GoalSeries {
	monthsToGoal := MonthsToTarget(goal, sc)
	if chartMonths < monthsToGoal {
		chartMonths = monthsToGoal
	}
	base := math.Max(0, pe.RequiredPayment(goal, settings, sc))
	sched := ScheduleForGoal(goal, base)
	bonuses := BucketBonuses(goal.Bonuses, monthsToGoal)
	existing := math.Max(0, goal.ExistingCapital)
	target := math.Max(0, goal.Amount)

	low, mid, high := SimulateBands(existing, goal.RateAnnual+sc.RateChange, settings, sched, bonuses, monthsToGoal, chartMonths)

	series := domain.GoalSeries{
		GoalID:       goal.ID,
		MonthsToGoal: monthsToGoal,
		GoalAmount:   target,
		BasePayment:  base,
		Capped:       make([]float64, monthsToGoal+1),
		Uncapped:     make([]float64, chartMonths+1),
		Pessimistic:  make([]float64, monthsToGoal+1),
		Optimistic:   make([]float64, monthsToGoal+1),
		HitMonth:     -1,
	}

	for m := 0; m <= chartMonths; m++ {
		uncapped := math.Max(0, mid.Values[m])
		series.Uncapped[m] = uncapped
		if m <= monthsToGoal {
			series.Capped[m] = math.Min(uncapped, target)
			series.Pessimistic[m] = math.Max(0, low.Values[m])
			series.Optimistic[m] = math.Max(0, high.Values[m])
		}
		if series.HitMonth < 0 && uncapped+reachEpsilon >= target {
			series.HitMonth = m
		}
	}
	series.Capped[0] = math.Min(existing, target)

	return series
}

// TimeToTarget returns how many months the goal needs at the given constant base payment,
// counting its existing capital and bonuses. reachable is false when no amount of time helps.
func (pe *ProjectionEngine) TimeToTarget(goal domain.Goal, settings domain.Settings, sc domain.ScenarioContext, payment float64) (int, bool) {
	r := GoalMonthlyRate(goal, settings, sc)
	existing := math.Max(0, goal.ExistingCapital)

	if !goal.IsProgressive() && len(BucketBonuses(goal.Bonuses, 0)) == 0 {
		return MonthsNeeded(goal.Amount, payment, existing, r)
	}

	sched := ScheduleForGoal(goal, math.Max(0, payment))
	bonuses := BucketBonuses(goal.Bonuses, 0)
	m := MonthsToReachTarget(math.Max(0, goal.Amount), existing, r, sched, bonuses, -1)
	if m < 0 {
		pe.logger().Debugf("goal %s: target not met within %d months", goal.ID, MaxSimulationMonths)
		return MaxSimulationMonths, true
	}
	return m, true
}

// FreeMonthlyDeposit is the general monthly deposit left after every goal's raw required payment
func (pe *ProjectionEngine) FreeMonthlyDeposit(goals []domain.Goal, settings domain.Settings, sc domain.ScenarioContext) float64 {
	assigned := 0.0
	for _, g := range goals {
		assigned += pe.RequiredPayment(g, settings, sc)
	}
	return math.Max(0, settings.GeneralMonthlyDeposit-assigned)
}

// toCent rounds half up to two decimals
func toCent(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Floor(x*100+0.5) / 100
}
