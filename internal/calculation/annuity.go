package calculation

import (
	"math"
)

const (
	// MaxSimulationMonths caps every iterative time-to-target search (100 years)
	MaxSimulationMonths = 1200

	// BisectionIterations is the fixed step count of the payment bisection
	BisectionIterations = 80

	// reachEpsilon absorbs floating-point noise when comparing a balance against its target
	reachEpsilon = 1e-6
)

// PaymentForFutureValue is the end-of-period annuity PMT reaching targetFV after n months
func PaymentForFutureValue(targetFV float64, n int, monthlyRate float64) float64 {
	if n <= 0 {
		return 0
	}
	if monthlyRate <= 0 || math.Abs(monthlyRate) < rateEpsilon {
		return targetFV / float64(n)
	}
	denom := math.Pow(1+monthlyRate, float64(n)) - 1
	if denom <= 0 {
		return targetFV / float64(n)
	}
	return targetFV * monthlyRate / denom
}

// FutureValueOfPayments is the value after n months of a constant end-of-month payment
func FutureValueOfPayments(payment float64, n int, monthlyRate float64) float64 {
	if n <= 0 {
		return 0
	}
	if monthlyRate <= 0 || math.Abs(monthlyRate) < rateEpsilon {
		return payment * float64(n)
	}
	return payment * SeriesFactor(monthlyRate, n)
}

// PaymentForFutureValueWithExisting nets off the grown existing capital and solves PMT for
// the remainder. The result is never negative.
func PaymentForFutureValueWithExisting(target, existing float64, n int, monthlyRate float64) float64 {
	a := math.Max(0, target)
	e := math.Max(0, existing)
	if n <= 0 {
		return 0
	}
	if monthlyRate <= 0 {
		return math.Max(0, a-e) / float64(n)
	}
	need := math.Max(0, a-e*math.Pow(1+monthlyRate, float64(n)))
	if need <= 0 {
		return 0
	}
	return PaymentForFutureValue(need, n, monthlyRate)
}

// SeriesFactor is s(n,r) = ((1+r)^n - 1)/r, with the r -> 0 limit n
func SeriesFactor(monthlyRate float64, n int) float64 {
	if math.Abs(monthlyRate) < rateEpsilon {
		return float64(n)
	}
	return (math.Pow(1+monthlyRate, float64(n)) - 1) / monthlyRate
}

// GradientFutureValue is the value after n months of payments base, base+d, base+2d, ...
func GradientFutureValue(base, increase float64, n int, monthlyRate float64) float64 {
	if n <= 0 {
		return 0
	}
	nf := float64(n)
	if math.Abs(monthlyRate) < rateEpsilon {
		return base*nf + increase*nf*(nf-1)/2
	}
	s := SeriesFactor(monthlyRate, n)
	return base*s + increase*((s-nf)/monthlyRate)
}

// ProgressiveBasePayment solves the base payment of a linearly growing schedule from
// FV = P*s + d*(s-n)/r. The result may be negative when the increments alone overshoot.
func ProgressiveBasePayment(targetFV, increase float64, n int, monthlyRate float64) float64 {
	if n <= 0 {
		return 0
	}
	nf := float64(n)
	if math.Abs(monthlyRate) < rateEpsilon {
		return (targetFV - increase*nf*(nf-1)/2) / nf
	}
	s := SeriesFactor(monthlyRate, n)
	return (targetFV - increase*((s-nf)/monthlyRate)) / s
}

// MonthsNeeded returns how many months a constant payment on top of existing capital
// needs to reach target. reachable is false when the target provably cannot be met
// (no payment and no growth). An iterative fallback is capped at MaxSimulationMonths
// and returns the cap when unmet.
func MonthsNeeded(target, payment, existing, monthlyRate float64) (months int, reachable bool) {
	a := math.Max(0, target)
	p := math.Max(0, payment)
	e := math.Max(0, existing)

	if a <= e {
		return 0, true
	}

	if monthlyRate <= 0 {
		if p <= 0 {
			return 0, false
		}
		n := int(math.Ceil((a - e) / p))
		if n < 1 {
			n = 1
		}
		return n, true
	}

	if p > 0 {
		pr := p / monthlyRate
		top := a + pr
		bot := e + pr
		if top > 0 && bot > 0 && top > bot {
			n := math.Log(top/bot) / math.Log(1+monthlyRate)
			if !math.IsNaN(n) && !math.IsInf(n, 0) && n > 0 {
				return int(math.Ceil(n)), true
			}
		}
	}

	if p == 0 && e > 0 {
		n := math.Log(a/e) / math.Log(1+monthlyRate)
		if !math.IsNaN(n) && !math.IsInf(n, 0) && n > 0 {
			return int(math.Ceil(n)), true
		}
	}

	value := e
	for m := 1; m <= MaxSimulationMonths; m++ {
		value *= 1 + monthlyRate
		value += p
		if value+reachEpsilon >= a {
			return m, true
		}
	}
	return MaxSimulationMonths, true
}

// SolveRequiredPaymentByBisection finds the constant payment whose simulated balance,
// seeded with initial and topped up by bonuses, reaches targetFV after n months.
func SolveRequiredPaymentByBisection(targetFV float64, n int, monthlyRate, initial float64, bonuses BonusSchedule) float64 {
	return solveBaseByBisection(targetFV, n, monthlyRate, initial, 0, bonuses)
}

// solveBaseByBisection brackets the base payment by doubling an upper bound, then runs
// BisectionIterations halvings. The bound expansion stops once it exceeds targetFV*10+1e7.
func solveBaseByBisection(targetFV float64, n int, monthlyRate, initial, increase float64, bonuses BonusSchedule) float64 {
	fvAt := func(base float64) float64 {
		sched := PaymentSchedule{Base: base, Increase: increase, Progressive: increase != 0}
		return FinalValue(initial, monthlyRate, sched, bonuses, n)
	}

	lo := 0.0
	hi := math.Max(targetFV/math.Max(1, float64(n)), 1000)
	for fvAt(hi) < targetFV {
		hi *= 2
		if hi > targetFV*10+1e7 {
			break
		}
	}

	for i := 0; i < BisectionIterations; i++ {
		mid := (lo + hi) / 2
		if fvAt(mid) >= targetFV {
			hi = mid
		} else {
			lo = mid
		}
	}
	return (lo + hi) / 2
}
