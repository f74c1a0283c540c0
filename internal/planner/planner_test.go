package planner

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/rgehrsitz/goalplan/internal/allocation"
	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/dateutil"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func testPlan() domain.Plan {
	return domain.Plan{
		Settings: domain.Settings{
			InflationAnnualPct:    2.5,
			GeneralMonthlyDeposit: 8000,
			GeneralInterestRate:   2,
			MonthlyIncome:         20000,
			GlobalSaved:           50000,
			GlobalAnnualRate:      4,
		},
		Goals: []domain.Goal{
			{ID: "house", Name: "House", Amount: 120000, RateAnnual: 6, TargetDate: dateutil.AddMonths(testNow, 24), ExistingCapital: 10000},
			{ID: "car", Name: "Car", Amount: 30000, RateAnnual: 0, TargetDate: dateutil.AddMonths(testNow, 36)},
		},
	}
}

func TestPlanner_ViewModelIsMemoized(t *testing.T) {
	p := NewPlanner(nil, time.Minute)
	plan := testPlan()
	sc := domain.NewScenarioContext(testNow)

	first := p.ViewModel(plan.Goals[0], plan.Settings, sc)
	second := p.ViewModel(plan.Goals[0], plan.Settings, sc)
	assert.Equal(t, first, second)
	assert.Equal(t, calculation.NewProjectionEngine().ViewModel(plan.Goals[0], plan.Settings, sc), first)

	stats := p.Stats()
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Entries)
}

func TestPlanner_KeyCoversEveryInput(t *testing.T) {
	p := NewPlanner(nil, time.Minute)
	plan := testPlan()
	sc := domain.NewScenarioContext(testNow)
	g := plan.Goals[0]

	base := p.RequiredPayment(g, plan.Settings, sc)
	shifted := p.RequiredPayment(g, plan.Settings, sc.WithRateChange(1))
	assert.Less(t, shifted, base)

	g.Amount = 150000
	bigger := p.RequiredPayment(g, plan.Settings, sc)
	assert.Greater(t, bigger, base)

	realSettings := plan.Settings
	realSettings.ComputeReal = true
	p.RequiredPayment(plan.Goals[0], realSettings, sc)

	assert.EqualValues(t, 0, p.Stats().Hits)
	assert.Equal(t, 4, p.Stats().Entries)
}

func TestPlanner_Invalidate(t *testing.T) {
	p := NewPlanner(nil, 0)
	plan := testPlan()
	sc := domain.NewScenarioContext(testNow)

	p.ViewModel(plan.Goals[0], plan.Settings, sc)
	require.Equal(t, 1, p.Stats().Entries)

	p.Invalidate()
	assert.Equal(t, 0, p.Stats().Entries)

	p.ViewModel(plan.Goals[0], plan.Settings, sc)
	assert.EqualValues(t, 2, p.Stats().Misses)
}

func TestPlanner_UnencodableInputBypassesCache(t *testing.T) {
	p := NewPlanner(nil, time.Minute)
	plan := testPlan()
	g := plan.Goals[0]
	g.Amount = math.NaN()

	p.ViewModel(g, plan.Settings, domain.NewScenarioContext(testNow))
	assert.Equal(t, 0, p.Stats().Entries)
	assert.EqualValues(t, 0, p.Stats().Misses)
}

func TestPlanner_SensitivityAndOptimize(t *testing.T) {
	p := NewPlanner(nil, time.Minute)
	plan := testPlan()
	sc := domain.NewScenarioContext(testNow)

	sa := p.Sensitivity(plan.Goals, plan.Settings, sc, 1)
	require.Len(t, sa.Differences, 2)
	assert.Equal(t, sa, p.Sensitivity(plan.Goals, plan.Settings, sc, 1))

	res, err := p.Optimize(context.Background(), plan.Goals, plan.Settings, sc, allocation.DefaultOptions())
	require.NoError(t, err)
	again, err := p.Optimize(context.Background(), plan.Goals, plan.Settings, sc, allocation.DefaultOptions())
	require.NoError(t, err)
	assert.Same(t, res, again)

	assert.EqualValues(t, 2, p.Stats().Hits)
}

func TestPlanner_OptimizeErrorsAreNotCached(t *testing.T) {
	p := NewPlanner(nil, time.Minute)
	plan := testPlan()

	opts := allocation.DefaultOptions()
	opts.Mode = domain.AllocationMode(7)
	_, err := p.Optimize(context.Background(), plan.Goals, plan.Settings, domain.NewScenarioContext(testNow), opts)
	require.Error(t, err)
	assert.Equal(t, 0, p.Stats().Entries)
}

func TestPlanner_BuildReport(t *testing.T) {
	p := NewPlanner(nil, time.Minute)
	generated := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	p.Now = func() time.Time { return generated }

	plan := testPlan()
	sc := domain.NewScenarioContext(testNow)
	report := p.BuildReport(plan, sc)

	assert.Equal(t, generated, report.GeneratedAt)
	assert.Equal(t, testNow, report.AsOf)
	require.Len(t, report.Goals, 2)

	house := report.Goals[0]
	assert.Equal(t, "house", house.Goal.ID)
	assert.True(t, house.Rule72OK)
	assert.InDelta(t, 12, house.Rule72Years, 1e-9)
	assert.Equal(t, domain.ROIOk, house.Rule72Class)
	assert.Greater(t, house.ROI, 0.0)
	assert.Equal(t, domain.ClassifyROI(house.ROI), house.ROIClass)

	car := report.Goals[1]
	assert.False(t, car.Rule72OK)
	assert.Empty(t, car.Rule72Class)
	assert.InDelta(t, 0, car.ROI, 1e-9)
	assert.Equal(t, 834.0, car.ViewModel.DisplayPayment)

	assert.Equal(t, 150000.0, report.Totals.GoalAmount)
	assert.Equal(t, 10000.0, report.Totals.ExistingCapital)
	assert.Equal(t, house.ViewModel.DisplayPayment+car.ViewModel.DisplayPayment, report.Totals.MonthlyPayments)
	assert.Equal(t, 2, report.Totals.Achievable)

	engine := calculation.NewProjectionEngine()
	assert.Equal(t, engine.FreeMonthlyDeposit(plan.Goals, plan.Settings, sc), report.FreeMonthlyDeposit)
	assert.Equal(t, 36, report.GeneralMonths)
	assert.NotNil(t, report.Warnings)
}

func TestPlanner_BuildReportRateChangeMovesRule72(t *testing.T) {
	p := NewPlanner(nil, time.Minute)
	plan := testPlan()

	report := p.BuildReport(plan, domain.NewScenarioContext(testNow).WithRateChange(3))
	assert.InDelta(t, 8, report.Goals[0].Rule72Years, 1e-9)
	assert.Equal(t, domain.ROIExcellent, report.Goals[0].Rule72Class)
	assert.True(t, report.Goals[1].Rule72OK)
	assert.InDelta(t, 24, report.Goals[1].Rule72Years, 1e-9)
}
