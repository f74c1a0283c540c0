package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/goalplan/internal/allocation"
	"github.com/rgehrsitz/goalplan/internal/config"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/planner"
	"github.com/rgehrsitz/goalplan/internal/tui/components"
	"github.com/rgehrsitz/goalplan/internal/tui/scenes"
	"github.com/rgehrsitz/goalplan/internal/tui/tuistyles"
)

// Model represents the entire application state
type Model struct {
	currentScene  Scene
	previousScene Scene

	width  int
	height int

	planPath string
	plan     *domain.Plan
	planner  *planner.Planner
	now      func() time.Time

	// rateSlider is shared with the dashboard and sensitivity scenes
	rateSlider   *components.ParameterSlider
	report       *domain.PlanReport
	sensitivity  *domain.SensitivityAnalysis
	selectedGoal int

	dashboardModel   *scenes.DashboardModel
	goalModel        *scenes.GoalModel
	sensitivityModel *scenes.SensitivityModel
	optimizeModel    *scenes.OptimizeModel

	spinner spinner.Model

	err error

	loading        bool
	loadingMessage string
}

// NewModel creates the dashboard for the plan file at planPath. A nil planner gets a
// default one.
func NewModel(planPath string, p *planner.Planner) Model {
	if p == nil {
		p = planner.NewPlanner(nil, 0)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(tuistyles.ColorAccent)

	slider := components.NewRateShiftSlider()
	return Model{
		currentScene:     SceneDashboard,
		previousScene:    SceneDashboard,
		planPath:         planPath,
		planner:          p,
		now:              time.Now,
		rateSlider:       slider,
		dashboardModel:   scenes.NewDashboardModel(slider),
		goalModel:        scenes.NewGoalModel(),
		sensitivityModel: scenes.NewSensitivityModel(slider),
		optimizeModel:    scenes.NewOptimizeModel(),
		spinner:          sp,
		loading:          true,
		loadingMessage:   "Loading plan...",
		width:            100,
		height:           30,
	}
}

// WithClock fixes the evaluation instant, for reproducible sessions
func (m Model) WithClock(now func() time.Time) Model {
	if now != nil {
		m.now = now
	}
	return m
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadPlanCmd(m.planPath))
}

// RateChange returns the current rate shift in percentage points
func (m Model) RateChange() float64 {
	return m.rateSlider.Value
}

// loadPlanCmd loads and validates the plan file
func loadPlanCmd(path string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		plan, err := parser.LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		if err := parser.ValidateConfiguration(plan); err != nil {
			return ErrorMsg{Err: err}
		}
		return PlanLoadedMsg{Plan: plan}
	}
}

// scenario returns the base context (no rate shift) at the model's clock
func (m Model) scenario() domain.ScenarioContext {
	return domain.NewScenarioContext(m.now())
}

// recalculateCmd rebuilds the report at the current shift and re-times every goal
// against the unshifted plan
func (m Model) recalculateCmd() tea.Cmd {
	if m.plan == nil {
		return nil
	}
	plan := *m.plan
	p := m.planner
	base := m.scenario()
	delta := m.rateSlider.Value

	return func() tea.Msg {
		report := p.BuildReport(plan, base.WithRateChange(delta))
		sens := p.Sensitivity(plan.Goals, plan.Settings, base, delta)
		return PlanRecalculatedMsg{
			RateChange:  delta,
			Report:      &report,
			Sensitivity: &sens,
		}
	}
}

// optimizeCmd runs the budget allocation at the current shift
func (m Model) optimizeCmd(opts allocation.Options) tea.Cmd {
	if m.plan == nil {
		return nil
	}
	plan := *m.plan
	p := m.planner
	delta := m.rateSlider.Value
	sc := m.scenario().WithRateChange(delta)

	return func() tea.Msg {
		res, err := p.Optimize(context.Background(), plan.Goals, plan.Settings, sc, opts)
		return AllocationCompleteMsg{RateChange: delta, Result: res, Err: err}
	}
}

// refreshGoal rebuilds the detail scene for the selected goal from the current report
func (m *Model) refreshGoal() {
	if m.report == nil || m.plan == nil || m.selectedGoal < 0 || m.selectedGoal >= len(m.report.Goals) {
		return
	}
	gr := m.report.Goals[m.selectedGoal]
	sc := m.scenario().WithRateChange(m.rateSlider.Value)
	series := m.planner.Engine().GoalSeries(gr.Goal, m.plan.Settings, sc, 0)
	m.goalModel.SetGoal(gr, series)
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneDashboard:
		return "Goals"
	case SceneGoal:
		return "Goal"
	case SceneSensitivity:
		return "Sensitivity"
	case SceneOptimize:
		return "Allocation"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
