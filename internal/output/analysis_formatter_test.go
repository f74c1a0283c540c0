package output

import (
	"strings"
	"testing"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSensitivity(delta float64) domain.SensitivityAnalysis {
	return domain.SensitivityAnalysis{
		Delta:     delta,
		Timestamp: testNow,
		Differences: []domain.GoalTimeDifference{
			{GoalID: "house", GoalName: "House", BaseMonths: 24, NewMonths: 23, TimeDifferenceMonths: -1},
			{GoalID: "car", GoalName: "Car", BaseMonths: 36, NewMonths: 36, TimeDifferenceMonths: 0},
		},
	}
}

func TestNewSensitivityFormatter(t *testing.T) {
	assert.Equal(t, "console", NewSensitivityFormatter("table").Name())
	assert.Equal(t, "console", NewSensitivityFormatter("").Name())
	assert.Equal(t, "csv", NewSensitivityFormatter("CSV").Name())
	assert.Equal(t, "json", NewSensitivityFormatter("json").Name())
}

func TestSensitivityConsoleFormatter(t *testing.T) {
	out, err := SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(testSensitivity(1))
	require.NoError(t, err)
	assert.Contains(t, out, "RATE SENSITIVITY: +1.00 PERCENTAGE POINTS")
	assert.Contains(t, out, "-1 months")
	assert.Contains(t, out, "no change")
	assert.Contains(t, out, "Faster: 1  Slower: 0  Unchanged: 1")

	sweep := []domain.SensitivityAnalysis{testSensitivity(-1), testSensitivity(1)}
	out, err = SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(sweep)
	require.NoError(t, err)
	assert.Contains(t, out, "SWEEP: -1.00 TO +1.00")

	_, err = SensitivityConsoleFormatter{}.FormatSensitivityAnalysis("nope")
	assert.Error(t, err)
	_, err = SensitivityConsoleFormatter{}.FormatSensitivityAnalysis([]domain.SensitivityAnalysis{})
	assert.Error(t, err)
}

func TestSensitivityCSVFormatter(t *testing.T) {
	sa := testSensitivity(0.5)
	out, err := SensitivityCSVFormatter{}.FormatSensitivityAnalysis(&sa)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "delta_pp,goal_id,goal_name,base_months,new_months,time_difference_months", lines[0])
	assert.Equal(t, "0.50,house,House,24,23,-1", lines[1])
}

func TestSensitivityJSONFormatter(t *testing.T) {
	out, err := SensitivityJSONFormatter{}.FormatSensitivityAnalysis(testSensitivity(1))
	require.NoError(t, err)
	assert.Contains(t, out, `"timeDifferenceMonths": -1`)
	assert.True(t, strings.HasPrefix(out, "{"))

	out, err = SensitivityJSONFormatter{}.FormatSensitivityAnalysis([]domain.SensitivityAnalysis{testSensitivity(1)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "["))
}

func testAllocation() *domain.AllocationResult {
	alloc := []domain.Allocation{
		{GoalID: "a", GoalName: "Low", PaymentNew: 2000},
		{GoalID: "b", GoalName: "High", PaymentNew: 2000},
	}
	return &domain.AllocationResult{
		Feasible:    true,
		BudgetMode:  domain.BudgetGeneral,
		Mode:        domain.AllocateSurplus,
		Budget:      4000,
		SumMinimum:  3000,
		Leftover:    1000,
		TargetIndex: 1,
		Allocations: alloc,
		Diagnostics: []domain.AllocationDiagnostic{
			{Allocation: alloc[0], InterestRate: 3, CurrentPayment: 2000, ProjectedFutureValue: 48000, GoalAmount: 48000, MonthsCurrent: 24, MonthsNew: 24, ReachableNew: true},
			{Allocation: alloc[1], InterestRate: 7, CurrentPayment: 1000, ProjectedFutureValue: 51000, GoalAmount: 25000, Surplus: 26000, MonthsCurrent: 24, MonthsNew: 13, ReachableNew: true},
		},
	}
}

func TestAllocationTableFormatter(t *testing.T) {
	out, err := NewAllocationFormatter("table").FormatAllocation(testAllocation())
	require.NoError(t, err)
	assert.Contains(t, out, "Budget (general):")
	assert.Contains(t, out, "Surplus strategy:      surplus")
	assert.Contains(t, out, "₪2,000 ← surplus")
	assert.Contains(t, out, "+₪26,000.00")
	assert.Contains(t, out, "24 months (2y 0m) → 13 months (1y 1m)")

	infeasible := &domain.AllocationResult{Feasible: false, Budget: 5000, SumMinimum: 6000, Shortfall: 1000, TargetIndex: -1}
	out, err = NewAllocationFormatter("table").FormatAllocation(infeasible)
	require.NoError(t, err)
	assert.Contains(t, out, "NOT FEASIBLE: the budget is short by ₪1,000.00.")

	_, err = NewAllocationFormatter("table").FormatAllocation(nil)
	assert.Error(t, err)
}

func TestAllocationCSVAndJSON(t *testing.T) {
	res := testAllocation()
	res.Allocations = append(res.Allocations, domain.Allocation{GoalID: domain.GeneralAllocationID, GoalName: "General savings", PaymentNew: 500, General: true})

	out, err := NewAllocationFormatter("csv").FormatAllocation(res)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "b,High,2000.00,7.00,1000.00,51000.00,26000.00,24,13,true", lines[2])
	assert.Equal(t, "general,General savings,500.00,,,,,,,", lines[3])

	out, err = NewAllocationFormatter("json").FormatAllocation(res)
	require.NoError(t, err)
	assert.Contains(t, out, `"budgetMode": "general"`)
	assert.Contains(t, out, `"mode": "surplus"`)
	assert.Contains(t, out, `"paymentNew": 500`)
}

func TestSeriesConsoleFormatter(t *testing.T) {
	goal := domain.Goal{ID: "g", Name: "Trip", Amount: 1200}
	traj := domain.Trajectory{
		Months:      []int{1, 2, 3},
		Values:      []float64{400, 800, 1200},
		FinalAmount: 1200,
		SumPayments: 1200,
		BasePayment: 400,
	}
	out, err := NewSeriesFormatter("console").FormatTrajectory(goal, traj)
	require.NoError(t, err)
	assert.Contains(t, out, "TRAJECTORY: Trip")
	assert.Contains(t, out, "100.00%")

	series := domain.GoalSeries{
		GoalID: "g", MonthsToGoal: 2, GoalAmount: 1200, BasePayment: 600,
		Capped:      []float64{0, 600, 1200},
		Uncapped:    []float64{0, 600, 1200, 1800},
		Pessimistic: []float64{0, 590, 1180},
		Optimistic:  []float64{0, 610, 1220},
		HitMonth:    2,
	}
	out, err = NewSeriesFormatter("").FormatGoalSeries(goal, series)
	require.NoError(t, err)
	assert.Contains(t, out, "Target reached:       month 2")
	assert.Contains(t, out, "Final band:           ₪1,180 to ₪1,220")
	assert.Contains(t, out, "1 more months")

	general := domain.GeneralSavingsProjection{
		Months:             2,
		Global:             []float64{100, 101, 102},
		Unassigned:         []float64{0, 50, 100},
		BaselineNoRate:     []float64{100, 150, 200},
		CumulativeInterest: []float64{0, 1, 2},
	}
	out, err = NewSeriesFormatter("console").FormatGeneralSavings(general)
	require.NoError(t, err)
	assert.Contains(t, out, "GENERAL SAVINGS (2 months)")
	assert.Contains(t, out, "Interest earned:      ₪2")
}

func TestSeriesCSVFormatter(t *testing.T) {
	goal := domain.Goal{ID: "g", Name: "Trip", Amount: 1200}
	f := NewSeriesFormatter("csv")
	assert.Equal(t, "csv", f.Name())

	out, err := f.FormatTrajectory(goal, domain.Trajectory{Months: []int{1, 2}, Values: []float64{400, 800}})
	require.NoError(t, err)
	assert.Equal(t, "goal_id,month,balance\ng,1,400.00\ng,2,800.00\n", out)

	series := domain.GoalSeries{
		MonthsToGoal: 1,
		Capped:       []float64{0, 600},
		Uncapped:     []float64{0, 600, 1200},
		Pessimistic:  []float64{0, 590},
		Optimistic:   []float64{0, 610},
	}
	out, err = f.FormatGoalSeries(goal, series)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "g,1,600.00,600.00,590.00,610.00", lines[2])
	assert.Equal(t, "g,2,1200.00,,,", lines[3])
}
