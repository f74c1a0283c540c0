package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPlan = `
settings:
  general_monthly_deposit: 8000
  general_interest_rate: 2
  monthly_income: 20000
goals:
  - id: house
    name: House
    amount: 120000
    rate_annual: 6
    target_date: 2027-03-10
    existing_capital: 10000
  - id: car
    name: Car
    amount: 30000
    rate_annual: 0
    target_date: 2028-03-10
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs a fresh command tree and returns what it printed to stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := rootCmd
	require.NotNil(t, cmd)
	assert.Equal(t, "goalplan", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"validate", "report", "project", "general", "sensitivity", "optimize", "breakeven", "compare", "montecarlo", "goals", "settings", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCommand_Execute(t *testing.T) {
	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "goalplan")
	assert.Contains(t, out, "Available Commands")
}

func TestRootCommand_Help(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--log-level")
	assert.Contains(t, out, "--db")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "goalplan dev"))
}

func TestValidate(t *testing.T) {
	plan := writeFile(t, "plan.yaml", testPlan)

	out, err := execute(t, "validate", plan)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid (2 goals)")

	_, err = execute(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plan file not found")
}

func TestValidate_DuplicateIDs(t *testing.T) {
	plan := writeFile(t, "dup.yaml", `
goals:
  - id: a
    name: One
    amount: 100
    target_date: 2030-01-01
  - id: a
    name: Two
    amount: 200
    target_date: 2030-01-01
`)
	_, err := execute(t, "validate", plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate id")
}

func TestReport_JSON(t *testing.T) {
	plan := writeFile(t, "plan.yaml", testPlan)

	out, err := execute(t, "report", plan, "--format", "json", "--as-of", "2025-03-10")
	require.NoError(t, err)

	var report struct {
		RateChange float64 `json:"rateChange"`
		Goals      []struct {
			Goal struct {
				ID string `json:"id"`
			} `json:"goal"`
			ViewModel struct {
				MonthsUntil    int     `json:"monthsUntil"`
				DisplayPayment float64 `json:"displayPayment"`
			} `json:"viewModel"`
		} `json:"goals"`
	}
	require.NoError(t, gojson.Unmarshal([]byte(out), &report))
	require.Len(t, report.Goals, 2)
	assert.Equal(t, "house", report.Goals[0].Goal.ID)
	assert.Equal(t, 24, report.Goals[0].ViewModel.MonthsUntil)
	assert.Equal(t, "car", report.Goals[1].Goal.ID)
	assert.Equal(t, 36, report.Goals[1].ViewModel.MonthsUntil)
	assert.InDelta(t, 834, report.Goals[1].ViewModel.DisplayPayment, 1e-9)
	assert.Zero(t, report.RateChange)
}

func TestReport_Transforms(t *testing.T) {
	plan := writeFile(t, "plan.yaml", testPlan)

	out, err := execute(t, "report", plan, "--format", "json", "--as-of", "2025-03-10",
		"--transform", "add_bonus:month=1,amount=1000",
		"--transform", "set_existing_capital:amount=30000")
	require.NoError(t, err)

	var report struct {
		Goals []struct {
			Goal struct {
				ExistingCapital float64 `json:"existingCapital"`
				Bonuses         []any   `json:"bonuses"`
			} `json:"goal"`
			ViewModel struct {
				DisplayPayment float64 `json:"displayPayment"`
			} `json:"viewModel"`
		} `json:"goals"`
	}
	require.NoError(t, gojson.Unmarshal([]byte(out), &report))
	require.Len(t, report.Goals, 2)
	for _, g := range report.Goals {
		assert.InDelta(t, 30000, g.Goal.ExistingCapital, 1e-9)
		assert.Len(t, g.Goal.Bonuses, 1)
	}
	assert.Zero(t, report.Goals[1].ViewModel.DisplayPayment)
}

func TestReport_Errors(t *testing.T) {
	plan := writeFile(t, "plan.yaml", testPlan)

	_, err := execute(t, "report", plan, "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")

	_, err = execute(t, "report", plan, "--as-of", "31/02/2025")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--as-of")

	_, err = execute(t, "report", plan, "--transform", "no_such:x=1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transform")
}

func TestReport_OutputDir(t *testing.T) {
	plan := writeFile(t, "plan.yaml", testPlan)
	dir := t.TempDir()

	out, err := execute(t, "report", plan, "--format", "csv", "--output-dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	matches, err := filepath.Glob(filepath.Join(dir, "goalplan_report_*.csv"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestSensitivity_CSV(t *testing.T) {
	plan := writeFile(t, "plan.yaml", testPlan)

	out, err := execute(t, "sensitivity", plan, "--delta", "1", "--output", "csv", "--as-of", "2025-03-10")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "delta_pp,goal_id,goal_name,base_months,new_months,time_difference_months", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "1.00,house,House,"))
	assert.True(t, strings.HasPrefix(lines[2], "1.00,car,Car,"))
}

func TestSensitivity_Sweep(t *testing.T) {
	plan := writeFile(t, "plan.yaml", testPlan)

	out, err := execute(t, "sensitivity", plan, "--sweep-min", "-1", "--sweep-max", "1", "--steps", "3", "--output", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 1+3*2)

	_, err = execute(t, "sensitivity", plan, "--sweep-min", "1", "--sweep-max", "-1")
	require.Error(t, err)
}

func TestOptimize(t *testing.T) {
	plan := writeFile(t, "plan.yaml", testPlan)

	out, err := execute(t, "optimize", plan, "--mode", "time", "--as-of", "2025-03-10")
	require.NoError(t, err)
	assert.Contains(t, out, "BUDGET ALLOCATION")

	_, err = execute(t, "optimize", plan, "--budget", "everything")
	require.Error(t, err)
}

func TestCompare(t *testing.T) {
	plan := writeFile(t, "plan.yaml", testPlan)

	out, err := execute(t, "compare", plan, "--with", "postpone_1yr,rate_down_1", "--as-of", "2025-03-10")
	require.NoError(t, err)
	assert.Contains(t, out, "SAVINGS SCENARIO COMPARISON")
	assert.Contains(t, out, "base (base)")
	assert.Contains(t, out, "postpone_1yr")
	assert.Contains(t, out, "rate_down_1")
	assert.Contains(t, out, "Plan:          "+plan)

	out, err = execute(t, "compare", plan, "--scenario", "lump=set_existing_capital:amount=20000;shift_rate:points=1", "--output", "csv", "--as-of", "2025-03-10")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "base,base,"))
	assert.True(t, strings.HasPrefix(lines[2], "lump,alternative,"))

	out, err = execute(t, "compare", "--list-templates")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Templates:")
}

func TestCompare_Errors(t *testing.T) {
	plan := writeFile(t, "plan.yaml", testPlan)

	_, err := execute(t, "compare", plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to compare")

	_, err = execute(t, "compare", plan, "--with", "no_such_template")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template no_such_template not found")

	_, err = execute(t, "compare", plan, "--scenario", "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid --scenario")

	_, err = execute(t, "compare", plan, "--with", "rate_up_1", "--output", "pdf")
	require.Error(t, err)
}

func TestMonteCarlo(t *testing.T) {
	plan := writeFile(t, "plan.yaml", testPlan)

	out, err := execute(t, "montecarlo", plan, "--goal", "house", "--sims", "200", "--seed", "7", "--as-of", "2025-03-10")
	require.NoError(t, err)
	assert.Contains(t, out, "MONTE CARLO SIMULATION")
	assert.Contains(t, out, "Goal:              House (house)")
	assert.Contains(t, out, "Simulations:       200 (seed 7)")
	assert.Contains(t, out, "Median")

	out, err = execute(t, "montecarlo", plan, "--goal", "car", "--stddev", "0", "--payment", "2000", "--sims", "10", "--output", "json", "--as-of", "2025-03-10")
	require.NoError(t, err)
	var res struct {
		SuccessRate    float64 `json:"successRate"`
		NumSimulations int     `json:"numSimulations"`
		MonthsUntil    int     `json:"monthsUntil"`
	}
	require.NoError(t, gojson.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 1.0, res.SuccessRate, 1e-12)
	assert.Equal(t, 10, res.NumSimulations)
	assert.Equal(t, 36, res.MonthsUntil)

	_, err = execute(t, "montecarlo", plan, "--goal", "nope")
	require.Error(t, err)
	_, err = execute(t, "montecarlo", plan, "--goal", "house", "--sims", "0")
	require.Error(t, err)
}

func TestProject(t *testing.T) {
	plan := writeFile(t, "plan.yaml", testPlan)

	out, err := execute(t, "project", plan, "--goal", "House", "--format", "csv", "--as-of", "2025-03-10")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	out, err = execute(t, "project", plan, "--goal", "car", "--bands", "--horizon", "48", "--format", "csv", "--as-of", "2025-03-10")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = execute(t, "project", plan, "--goal", "boat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `goal "boat" not found`)
}

func TestBreakeven(t *testing.T) {
	plan := writeFile(t, "plan.yaml", testPlan)

	out, err := execute(t, "breakeven", plan, "--goal", "car", "--payment", "700", "--as-of", "2025-03-10")
	require.NoError(t, err)
	assert.Contains(t, out, "BREAK-EVEN ANALYSIS")
	assert.Contains(t, out, "Car (car)")

	out, err = execute(t, "breakeven", plan, "--goal", "car", "--target", "date", "--payment", "1000", "--output", "json", "--as-of", "2025-03-10")
	require.NoError(t, err)
	var result struct {
		Target       string `json:"target"`
		Success      bool   `json:"success"`
		MonthsNeeded int    `json:"months_needed"`
	}
	require.NoError(t, gojson.Unmarshal([]byte(out), &result))
	assert.Equal(t, "date", result.Target)
	assert.True(t, result.Success)
	assert.Equal(t, 30, result.MonthsNeeded)

	_, err = execute(t, "breakeven", plan, "--goal", "car", "--target", "payment")
	require.Error(t, err)
}

func TestGeneral(t *testing.T) {
	plan := writeFile(t, "plan.yaml", testPlan)

	out, err := execute(t, "general", plan, "--years", "2")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = execute(t, "general", plan, "--years", "-1")
	require.Error(t, err)
}

func TestGoals_ImportListExport(t *testing.T) {
	db := filepath.Join(t.TempDir(), "goals.db")
	plan := writeFile(t, "plan.yaml", testPlan)

	out, err := execute(t, "--db", db, "goals", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No goals stored")

	out, err = execute(t, "--db", db, "goals", "import", plan)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 goals (2 stored)")

	// importing again overwrites by id instead of duplicating
	out, err = execute(t, "--db", db, "goals", "import", plan)
	require.NoError(t, err)
	assert.Contains(t, out, "(2 stored)")

	out, err = execute(t, "--db", db, "goals", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "house")
	assert.Contains(t, out, "₪120,000")
	assert.Contains(t, out, "10/03/2027")

	exported := filepath.Join(t.TempDir(), "goals.json")
	_, err = execute(t, "--db", db, "goals", "export", "--out", exported)
	require.NoError(t, err)
	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	var goals []map[string]any
	require.NoError(t, gojson.Unmarshal(data, &goals))
	require.Len(t, goals, 2)
	assert.Equal(t, "house", goals[0]["id"])

	// plan commands read the store when no file is given
	out, err = execute(t, "--db", db, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "stored goals is valid (2 goals)")

	out, err = execute(t, "--db", db, "goals", "remove", "car", "boat")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed car")
	assert.Contains(t, out, `No goal "boat"`)

	_, err = execute(t, "--db", db, "goals", "clear")
	require.NoError(t, err)
	out, err = execute(t, "--db", db, "goals", "list", "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestSettings(t *testing.T) {
	db := filepath.Join(t.TempDir(), "goals.db")

	out, err := execute(t, "--db", db, "settings", "set", "generalMonthlyDeposit=5000", "general_interest_rate=3")
	require.NoError(t, err)
	var settings map[string]any
	require.NoError(t, gojson.Unmarshal([]byte(out), &settings))
	assert.EqualValues(t, 5000, settings["generalMonthlyDeposit"])
	assert.EqualValues(t, 3, settings["generalInterestRate"])

	_, err = execute(t, "--db", db, "settings", "set", "broken")
	require.Error(t, err)

	_, err = execute(t, "--db", db, "settings", "clear")
	require.NoError(t, err)
	out, err = execute(t, "--db", db, "settings", "show")
	require.NoError(t, err)
	require.NoError(t, gojson.Unmarshal([]byte(out), &settings))
	assert.EqualValues(t, 0, settings["generalMonthlyDeposit"])
}
