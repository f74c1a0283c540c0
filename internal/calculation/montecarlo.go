package calculation

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// minAnnualRatePct keeps a drawn rate above total loss
const minAnnualRatePct = -99

// MonteCarloConfig holds the settings of a goal Monte Carlo run
type MonteCarloConfig struct {
	NumSimulations int
	RateStdDev     float64 // standard deviation of the yearly rate, in percentage points
	Seed           uint64
	Workers        int

	// Payment is the constant (or progressive base) monthly payment; zero uses the
	// goal's required payment
	Payment float64
}

// DefaultMonteCarloConfig runs 1000 simulations with a 2 point yearly rate deviation
func DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{
		NumSimulations: 1000,
		RateStdDev:     2,
		Seed:           1,
		Workers:        runtime.NumCPU(),
	}
}

func (c MonteCarloConfig) validate() error {
	switch {
	case c.NumSimulations < 1:
		return fmt.Errorf("number of simulations must be positive, got %d", c.NumSimulations)
	case math.IsNaN(c.RateStdDev) || c.RateStdDev < 0:
		return fmt.Errorf("rate deviation must be non-negative, got %v", c.RateStdDev)
	case math.IsNaN(c.Payment) || math.IsInf(c.Payment, 0) || c.Payment < 0:
		return fmt.Errorf("payment must be a non-negative number, got %v", c.Payment)
	}
	return nil
}

// MonteCarlo simulates the goal many times, drawing a new annual rate for every year of
// the horizon from a normal distribution centered on the goal's rate. Run i uses its own
// random source derived from the seed, so results do not depend on the worker count.
func (pe *ProjectionEngine) MonteCarlo(ctx context.Context, goal domain.Goal, settings domain.Settings, sc domain.ScenarioContext, cfg MonteCarloConfig) (*domain.MonteCarloResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	workers = min(workers, cfg.NumSimulations)

	payment := cfg.Payment
	if payment == 0 {
		payment = math.Max(0, pe.RequiredPayment(goal, settings, sc))
	}

	n := MonthsToTarget(goal, sc)
	initial := math.Max(0, goal.ExistingCapital)
	sched := ScheduleForGoal(goal, payment)
	bonuses := BucketBonuses(goal.Bonuses, n)
	mean := goal.RateAnnual + sc.RateChange
	years := max(1, (n+11)/12)

	finals := make([]float64, cfg.NumSimulations)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rng := rand.New(rand.NewPCG(cfg.Seed, uint64(i)))
				rates := make([]float64, years)
				for y := range rates {
					annual := mean
					if cfg.RateStdDev > 0 {
						annual = math.Max(minAnnualRatePct, mean+cfg.RateStdDev*rng.NormFloat64())
					}
					rates[y] = MonthlyRate(annual, settings)
				}
				finals[i] = simulateVarying(initial, rates, sched, bonuses, n)
			}
		}()
	}

	var cancelled error
feed:
	for i := 0; i < cfg.NumSimulations; i++ {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	if cancelled != nil {
		return nil, cancelled
	}

	result := &domain.MonteCarloResult{
		GoalID:          goal.ID,
		GoalName:        goal.Name,
		GoalAmount:      goal.Amount,
		Payment:         payment,
		MonthsUntil:     n,
		MeanRate:        mean,
		RateStdDev:      cfg.RateStdDev,
		NumSimulations:  cfg.NumSimulations,
		Seed:            cfg.Seed,
		DeterministicFV: FinalValue(initial, GoalMonthlyRate(goal, settings, sc), sched, bonuses, n),
	}
	summarizeFinals(result, finals)

	pe.logger().Debugf("monte carlo %s: %d runs, success %.3f", goal.ID, cfg.NumSimulations, result.SuccessRate)
	return result, nil
}

// simulateVarying is FinalValue with the monthly rate switching every 12 months
func simulateVarying(initial float64, yearlyRates []float64, sched PaymentSchedule, bonuses BonusSchedule, n int) float64 {
	v := initial
	for m := 1; m <= n; m++ {
		v *= 1 + yearlyRates[(m-1)/12]
		v += sched.At(m) + bonuses[m]
	}
	return v
}

func summarizeFinals(result *domain.MonteCarloResult, finals []float64) {
	sorted := append([]float64(nil), finals...)
	sort.Float64s(sorted)

	success := 0
	var shortfalls []float64
	for _, v := range sorted {
		if v+reachEpsilon >= result.GoalAmount {
			success++
		} else {
			shortfalls = append(shortfalls, result.GoalAmount-v)
		}
	}

	result.SuccessRate = float64(success) / float64(len(sorted))
	result.MeanFinal = stat.Mean(sorted, nil)
	if len(shortfalls) > 0 {
		result.MeanShortfall = stat.Mean(shortfalls, nil)
	}
	result.FinalBalance = domain.Percentiles{
		P10: stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P25: stat.Quantile(0.25, stat.Empirical, sorted, nil),
		P50: stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P75: stat.Quantile(0.75, stat.Empirical, sorted, nil),
		P90: stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
}
