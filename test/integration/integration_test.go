package integration

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/goalplan/internal/breakeven"
	"github.com/rgehrsitz/goalplan/internal/compare"
	"github.com/rgehrsitz/goalplan/internal/config"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/output"
	"github.com/rgehrsitz/goalplan/internal/planner"
	"github.com/rgehrsitz/goalplan/internal/store"
)

const planFile = "../testdata/plan.yaml"

var asOf = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func loadPlan(t *testing.T) *domain.Plan {
	t.Helper()
	plan, err := config.NewInputParser().LoadFromFile(planFile)
	require.NoError(t, err, "Should load the plan file")
	require.NotNil(t, plan)
	return plan
}

// TestEndToEnd walks a plan from file through the store, every report format and the analyses
func TestEndToEnd(t *testing.T) {
	plan := loadPlan(t)
	sc := domain.NewScenarioContext(asOf)
	p := planner.NewPlanner(nil, time.Minute)

	t.Run("plan_loading", func(t *testing.T) {
		assert.Len(t, plan.Goals, 4)
		assert.InDelta(t, 8000, plan.Settings.GeneralMonthlyDeposit, 1e-9)

		trip, ok := plan.FindGoal("Trip")
		require.True(t, ok, "Goals are found by name")
		assert.True(t, trip.IsProgressive())

		wedding, ok := plan.FindGoal("wedding")
		require.True(t, ok)
		assert.True(t, wedding.HasPinnedPayment())
	})

	t.Run("store_round_trip", func(t *testing.T) {
		s, err := store.Open(filepath.Join(t.TempDir(), "goals.db"))
		require.NoError(t, err)
		defer s.Close()

		_, err = s.Import(plan.Goals, true)
		require.NoError(t, err)
		require.NoError(t, s.SaveSettings(plan.Settings))

		stored, err := s.LoadPlan()
		require.NoError(t, err)
		assert.Equal(t, plan.Settings, stored.Settings)
		require.Len(t, stored.Goals, len(plan.Goals))

		for _, want := range plan.Goals {
			got, ok := stored.FindGoal(want.ID)
			require.True(t, ok, want.ID)
			assert.Equal(t, want.Name, got.Name)
			assert.InDelta(t, want.Amount, got.Amount, 1e-9)
			assert.True(t, want.TargetDate.Equal(got.TargetDate), "target date of %s", want.ID)
			assert.Equal(t, len(want.Bonuses), len(got.Bonuses))
		}

		// the stored plan reports exactly like the file
		fromFile := p.BuildReport(*plan, sc)
		fromStore := p.BuildReport(*stored, sc)
		assert.InDelta(t, fromFile.Totals.MonthlyPayments, fromStore.Totals.MonthlyPayments, 1e-9)
		assert.Equal(t, fromFile.Totals.Achievable, fromStore.Totals.Achievable)
	})

	t.Run("report_formats", func(t *testing.T) {
		report := p.BuildReport(*plan, sc)
		for _, name := range output.AvailableFormatterNames() {
			var buf bytes.Buffer
			require.NoError(t, output.GenerateReport(&buf, &report, name), name)
			assert.NotEmpty(t, buf.String(), name)
		}
	})

	t.Run("compare", func(t *testing.T) {
		set, err := compare.NewCompareEngine(p).Compare(context.Background(), *plan, sc, compare.CompareOptions{
			Templates: []string{"postpone_1yr", "conservative"},
		})
		require.NoError(t, err)
		require.Len(t, set.AlternativeResults, 2)
		assert.Equal(t, 4, set.BaseResult.GoalCount)
		assert.Equal(t, 12, set.AlternativeResults[0].LatestMonthsDiff)
	})

	t.Run("breakeven", func(t *testing.T) {
		solver := breakeven.NewDefaultSolver(p.Engine())
		for _, g := range plan.Goals {
			multi, err := solver.SolveAll(context.Background(), breakeven.SolveRequest{
				Goal:     g,
				Settings: plan.Settings,
				Scenario: sc,
			})
			require.NoError(t, err, g.ID)
			assert.Len(t, multi.Results, 3)
			assert.NotEmpty(t, multi.Recommendations)
		}
	})
}

// TestDataConsistency checks that report totals agree with the per-goal rows
func TestDataConsistency(t *testing.T) {
	plan := loadPlan(t)
	sc := domain.NewScenarioContext(asOf)
	report := planner.NewPlanner(nil, 0).BuildReport(*plan, sc)

	var amount, payments, interest float64
	achievable := 0
	for _, g := range report.Goals {
		amount += g.ViewModel.GoalAmount
		payments += g.ViewModel.DisplayPayment
		interest += g.ViewModel.ExpectedInterest
		if g.ViewModel.Achievable {
			achievable++
		}
		assert.GreaterOrEqual(t, g.ViewModel.DisplayPayment, g.ViewModel.BasePayment, g.Goal.ID)
		assert.Less(t, g.ViewModel.DisplayPayment-g.ViewModel.BasePayment, 1.0, g.Goal.ID)
	}

	assert.InDelta(t, amount, report.Totals.GoalAmount, 1e-6)
	assert.InDelta(t, payments, report.Totals.MonthlyPayments, 1e-6)
	assert.InDelta(t, interest, report.Totals.ExpectedInterest, 1e-6)
	assert.Equal(t, achievable, report.Totals.Achievable)

	wedding := report.Goals[3]
	require.Equal(t, "wedding", wedding.Goal.ID)
	assert.False(t, wedding.ViewModel.Achievable, "a pinned payment that is too small leaves a shortfall")
	assert.Positive(t, wedding.ViewModel.Shortfall)
	assert.Equal(t, 3, report.Totals.Achievable)
}

// TestPerformance keeps a full report well under interactive latency
func TestPerformance(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping performance test in short mode")
	}

	plan := loadPlan(t)
	sc := domain.NewScenarioContext(asOf)
	p := planner.NewPlanner(nil, 0)

	start := time.Now()
	for i := 0; i < 50; i++ {
		p.BuildReport(*plan, sc)
	}
	assert.Less(t, time.Since(start), 5*time.Second, "50 reports should finish well within 5s")
}

// TestErrorHandling covers missing and invalid plan files
func TestErrorHandling(t *testing.T) {
	parser := config.NewInputParser()

	_, err := parser.LoadFromFile("../testdata/does_not_exist.yaml")
	assert.Error(t, err)

	dup := []byte("goals:\n  - {id: a, name: A, amount: 100, target_date: 2030-01-01}\n  - {id: a, name: B, amount: 200, target_date: 2030-01-01}\n")
	plan, err := parser.Parse(dup, config.FormatFromPath("dup.yaml"))
	require.NoError(t, err, "Parsing only sanitizes")
	err = parser.ValidateConfiguration(plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}
