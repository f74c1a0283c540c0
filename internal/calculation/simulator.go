package calculation

import (
	"math"
	"sort"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// BonusSchedule maps a month (1 = end of the first month) to the bonus cash deposited then
type BonusSchedule map[int]float64

// BucketBonuses sums positive bonuses per month, keeping only months 1..horizon.
// A horizon <= 0 keeps every month.
func BucketBonuses(bonuses []domain.Bonus, horizon int) BonusSchedule {
	out := make(BonusSchedule)
	for _, b := range bonuses {
		if b.Month < 1 || b.Amount <= 0 {
			continue
		}
		if horizon > 0 && b.Month > horizon {
			continue
		}
		out[b.Month] += b.Amount
	}
	return out
}

// Months returns the scheduled months in ascending order
func (bs BonusSchedule) Months() []int {
	months := make([]int, 0, len(bs))
	for m := range bs {
		months = append(months, m)
	}
	sort.Ints(months)
	return months
}

// Sum returns the nominal total of all scheduled bonuses
func (bs BonusSchedule) Sum() float64 {
	total := 0.0
	for _, m := range bs.Months() {
		total += bs[m]
	}
	return total
}

// FutureValue compounds each bonus from its month to month n. Months beyond n contribute nothing.
// Buckets are visited in ascending order so repeated calls are bit-identical.
func (bs BonusSchedule) FutureValue(monthlyRate float64, n int) float64 {
	total := 0.0
	for _, m := range bs.Months() {
		if m > n {
			continue
		}
		total += bs[m] * math.Pow(1+monthlyRate, float64(n-m))
	}
	return total
}

// PaymentSchedule describes the monthly contribution: constant Base, or Base growing by
// Increase every month when Progressive.
type PaymentSchedule struct {
	Base        float64
	Increase    float64
	Progressive bool
}

// At returns the payment deposited at the end of month m (1-based)
func (p PaymentSchedule) At(m int) float64 {
	if !p.Progressive {
		return p.Base
	}
	return math.Max(0, p.Base+float64(m-1)*p.Increase)
}

// Total returns the nominal sum of the first n payments
func (p PaymentSchedule) Total(n int) float64 {
	total := 0.0
	for m := 1; m <= n; m++ {
		total += p.At(m)
	}
	return total
}

// ScheduleForGoal builds the payment schedule a goal follows with the given base payment
func ScheduleForGoal(goal domain.Goal, base float64) PaymentSchedule {
	if goal.IsProgressive() {
		return PaymentSchedule{Base: base, Increase: math.Max(0, goal.MonthlyIncrease), Progressive: true}
	}
	return PaymentSchedule{Base: base}
}

// Simulate runs the month-by-month balance: interest accrues on the prior balance, then the
// month's payment and bonus are deposited. It returns the balance after each of the n months.
func Simulate(initial, monthlyRate float64, sched PaymentSchedule, bonuses BonusSchedule, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	values := make([]float64, n)
	v := initial
	for m := 1; m <= n; m++ {
		v *= 1 + monthlyRate
		v += sched.At(m) + bonuses[m]
		values[m-1] = v
	}
	return values
}

// FinalValue is Simulate's last balance without keeping the intermediate months
func FinalValue(initial, monthlyRate float64, sched PaymentSchedule, bonuses BonusSchedule, n int) float64 {
	v := initial
	for m := 1; m <= n; m++ {
		v *= 1 + monthlyRate
		v += sched.At(m) + bonuses[m]
	}
	return v
}

// MonthsToReachTarget simulates up to MaxSimulationMonths and returns the first month whose
// balance meets target. When the target is never met it returns fallback.
func MonthsToReachTarget(target, initial, monthlyRate float64, sched PaymentSchedule, bonuses BonusSchedule, fallback int) int {
	v := initial
	for m := 1; m <= MaxSimulationMonths; m++ {
		v *= 1 + monthlyRate
		v += sched.At(m) + bonuses[m]
		if v+reachEpsilon >= target {
			return m
		}
	}
	return fallback
}

// Band is one rate variant of a forward simulation
type Band struct {
	AnnualPct   float64
	MonthlyRate float64
	Values      []float64 // index 0 is the starting balance
}

// SimulateBands runs the same schedule under the nominal rate and under rate-2 (floored at 0)
// and rate+2 annual percentage points. Deposits stop after depositMonths; growth continues
// up to horizon. Each band's values start with the initial balance at index 0.
func SimulateBands(initial, nominalAnnualPct float64, settings domain.Settings, sched PaymentSchedule, bonuses BonusSchedule, depositMonths, horizon int) (low, mid, high Band) {
	run := func(pct float64) Band {
		r := MonthlyRate(pct, settings)
		values := make([]float64, horizon+1)
		values[0] = initial
		v := initial
		for m := 1; m <= horizon; m++ {
			v *= 1 + r
			if m <= depositMonths {
				v += sched.At(m) + bonuses[m]
			}
			values[m] = v
		}
		return Band{AnnualPct: pct, MonthlyRate: r, Values: values}
	}
	return run(math.Max(0, nominalAnnualPct-2)), run(nominalAnnualPct), run(nominalAnnualPct + 2)
}
