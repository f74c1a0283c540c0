package planner

import (
	"context"
	"sync/atomic"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/patrickmn/go-cache"
	"github.com/rgehrsitz/goalplan/internal/allocation"
	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultTTL bounds how long a memoized result is reused
	DefaultTTL = 10 * time.Minute

	cleanupInterval = 2 * DefaultTTL
)

// Planner is a memoizing facade over the projection engine. Results are keyed by a JSON
// fingerprint of every input that affects them, so the cache never needs explicit
// invalidation for correctness; Invalidate only frees memory.
//
// Cached slices and pointers are shared between callers and must be treated as read-only.
type Planner struct {
	engine    *calculation.ProjectionEngine
	analyzer  *calculation.SensitivityAnalyzer
	optimizer *allocation.Optimizer
	cache     *cache.Cache

	// Now stamps generated reports
	Now func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

// Stats reports cache effectiveness
type Stats struct {
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
	Entries int   `json:"entries"`
}

// NewPlanner creates a planner over engine. A nil engine gets a default one and a
// non-positive ttl selects DefaultTTL.
func NewPlanner(engine *calculation.ProjectionEngine, ttl time.Duration) *Planner {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Planner{
		engine:    engine,
		analyzer:  calculation.NewSensitivityAnalyzer(engine),
		optimizer: allocation.NewOptimizer(engine),
		cache:     cache.New(ttl, cleanupInterval),
		Now:       time.Now,
	}
}

// Engine returns the underlying projection engine
func (p *Planner) Engine() *calculation.ProjectionEngine {
	return p.engine
}

// Invalidate drops every memoized result
func (p *Planner) Invalidate() {
	p.cache.Flush()
}

// Stats returns hit/miss counters and the current entry count
func (p *Planner) Stats() Stats {
	return Stats{Hits: p.hits.Load(), Misses: p.misses.Load(), Entries: p.cache.ItemCount()}
}

type fingerprint struct {
	Kind     string                 `json:"k"`
	Goals    []domain.Goal          `json:"g"`
	Settings domain.Settings        `json:"s"`
	Scenario domain.ScenarioContext `json:"c"`
	Extra    any                    `json:"x,omitempty"`
}

// key builds the cache key. ok is false when the inputs cannot be encoded (NaN amounts,
// for instance); such calls bypass the cache.
func key(kind string, goals []domain.Goal, settings domain.Settings, sc domain.ScenarioContext, extra any) (string, bool) {
	data, err := gojson.Marshal(fingerprint{Kind: kind, Goals: goals, Settings: settings, Scenario: sc, Extra: extra})
	if err != nil {
		return "", false
	}
	return string(data), true
}

func (p *Planner) lookup(k string) (any, bool) {
	v, found := p.cache.Get(k)
	if found {
		p.hits.Add(1)
	} else {
		p.misses.Add(1)
	}
	return v, found
}

// ViewModel returns the memoized view model of a goal
func (p *Planner) ViewModel(goal domain.Goal, settings domain.Settings, sc domain.ScenarioContext) domain.GoalViewModel {
	k, ok := key("vm", []domain.Goal{goal}, settings, sc, nil)
	if !ok {
		return p.engine.ViewModel(goal, settings, sc)
	}
	if v, found := p.lookup(k); found {
		return v.(domain.GoalViewModel)
	}
	vm := p.engine.ViewModel(goal, settings, sc)
	p.cache.SetDefault(k, vm)
	return vm
}

// RequiredPayment returns the memoized raw required payment of a goal
func (p *Planner) RequiredPayment(goal domain.Goal, settings domain.Settings, sc domain.ScenarioContext) float64 {
	k, ok := key("pay", []domain.Goal{goal}, settings, sc, nil)
	if !ok {
		return p.engine.RequiredPayment(goal, settings, sc)
	}
	if v, found := p.lookup(k); found {
		return v.(float64)
	}
	pay := p.engine.RequiredPayment(goal, settings, sc)
	p.cache.SetDefault(k, pay)
	return pay
}

// Sensitivity returns the memoized sensitivity analysis for a rate shift
func (p *Planner) Sensitivity(goals []domain.Goal, settings domain.Settings, sc domain.ScenarioContext, deltaPct float64) domain.SensitivityAnalysis {
	k, ok := key("sens", goals, settings, sc, deltaPct)
	if !ok {
		return p.analyzer.Analyze(goals, settings, sc, deltaPct)
	}
	if v, found := p.lookup(k); found {
		return v.(domain.SensitivityAnalysis)
	}
	sa := p.analyzer.Analyze(goals, settings, sc, deltaPct)
	p.cache.SetDefault(k, sa)
	return sa
}

// Optimize returns the memoized allocation. Errors are never cached.
func (p *Planner) Optimize(ctx context.Context, goals []domain.Goal, settings domain.Settings, sc domain.ScenarioContext, opts allocation.Options) (*domain.AllocationResult, error) {
	k, ok := key("opt", goals, settings, sc, opts)
	if ok {
		if v, found := p.lookup(k); found {
			return v.(*domain.AllocationResult), nil
		}
	}
	res, err := p.optimizer.Optimize(ctx, goals, settings, sc, opts)
	if err != nil {
		return nil, err
	}
	if ok {
		p.cache.SetDefault(k, res)
	}
	return res, nil
}

// BuildReport assembles the plan report at sc
func (p *Planner) BuildReport(plan domain.Plan, sc domain.ScenarioContext) domain.PlanReport {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	report := domain.PlanReport{
		GeneratedAt: now(),
		AsOf:        sc.Now,
		RateChange:  sc.RateChange,
		Settings:    plan.Settings,
		Goals:       make([]domain.GoalReport, 0, len(plan.Goals)),
	}

	n := len(plan.Goals)
	amounts := make([]float64, n)
	capital := make([]float64, n)
	payments := make([]float64, n)
	interest := make([]float64, n)

	for i, g := range plan.Goals {
		vm := p.ViewModel(g, plan.Settings, sc)
		roi := calculation.CAGR(vm.CalculatedFutureValue, vm.TotalNominalInvestment, vm.MonthsUntil)
		gr := domain.GoalReport{
			Goal:       g,
			ViewModel:  vm,
			TargetDate: g.TargetDate,
			ROI:        roi,
			ROIClass:   domain.ClassifyROI(roi),
		}
		if years, ok := calculation.Rule72Years(g.RateAnnual + sc.RateChange); ok {
			gr.Rule72Years = years
			gr.Rule72OK = true
			gr.Rule72Class = domain.Rule72Class(years)
		}
		report.Goals = append(report.Goals, gr)

		amounts[i] = vm.GoalAmount
		capital[i] = vm.ExistingCapital
		payments[i] = vm.DisplayPayment
		interest[i] = vm.ExpectedInterest
		if vm.Achievable {
			report.Totals.Achievable++
		}
	}

	report.Totals.GoalAmount = floats.Sum(amounts)
	report.Totals.ExistingCapital = floats.Sum(capital)
	report.Totals.MonthlyPayments = floats.Sum(payments)
	report.Totals.ExpectedInterest = floats.Sum(interest)

	report.Warnings = p.engine.ValidateFinancialHealth(plan.Goals, plan.Settings, sc)
	if report.Warnings == nil {
		report.Warnings = []domain.HealthWarning{}
	}
	report.FreeMonthlyDeposit = p.engine.FreeMonthlyDeposit(plan.Goals, plan.Settings, sc)

	general := p.engine.GeneralSavings(plan.Goals, plan.Settings, sc, 0)
	report.GeneralMonths = general.Months
	report.GeneralFinalGlobal = domain.Final(general.Global)
	report.GeneralFinalDeposit = domain.Final(general.Unassigned)
	report.GeneralInterest = domain.Final(general.CumulativeInterest)

	p.engine.Log().Debugf("built report for %d goals (cache hits=%d misses=%d)", n, p.hits.Load(), p.misses.Load())
	return report
}
