package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/goalplan/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dashboardModel.SetSize(msg.Width, msg.Height)
		m.goalModel.SetSize(msg.Width, msg.Height)
		m.sensitivityModel.SetSize(msg.Width, msg.Height)
		m.optimizeModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case PlanLoadedMsg:
		m.plan = msg.Plan
		m.loading = false
		m.err = nil
		m.planner.Invalidate()
		return m, tea.Batch(m.recalculateCmd(), m.optimizeCmd(m.optimizeModel.Options()))

	case PlanRecalculatedMsg:
		// a newer slider position is already on its way
		if msg.RateChange != m.rateSlider.Value {
			return m, nil
		}
		m.report = msg.Report
		m.sensitivity = msg.Sensitivity
		m.dashboardModel.SetData(msg.Report, msg.Sensitivity)
		m.sensitivityModel.SetAnalysis(msg.Sensitivity)
		if m.currentScene == SceneGoal {
			m.refreshGoal()
		}
		return m, nil

	case AllocationCompleteMsg:
		if msg.RateChange != m.rateSlider.Value {
			return m, nil
		}
		m.optimizeModel.SetResult(msg.Result, msg.Err)
		return m, nil

	case tuimsg.GoalSelectedMsg:
		m.selectedGoal = msg.Index
		m.refreshGoal()
		m.previousScene = m.currentScene
		m.currentScene = SceneGoal
		return m, nil

	case tuimsg.OptimizeRequestMsg:
		return m, m.optimizeCmd(msg.Options)
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	// any other key dismisses an error; reload also retries
	if m.err != nil {
		m.err = nil
		if !key.Matches(msg, keys.Reload) {
			return m, nil
		}
	}
	if m.loading {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.RateUp):
		return m.shiftRate(m.rateSlider.Increment())
	case key.Matches(msg, keys.RateDown):
		return m.shiftRate(m.rateSlider.Decrement())
	case key.Matches(msg, keys.RateReset):
		return m.shiftRate(m.rateSlider.Reset())
	case key.Matches(msg, keys.Reload):
		m.loading = true
		m.loadingMessage = "Reloading plan..."
		return m, tea.Batch(m.spinner.Tick, loadPlanCmd(m.planPath))
	case key.Matches(msg, keys.Help):
		return m, navigate(SceneHelp)
	case key.Matches(msg, keys.Dashboard):
		return m, navigate(SceneDashboard)
	case key.Matches(msg, keys.Sensitivity):
		return m, navigate(SceneSensitivity)
	case key.Matches(msg, keys.Optimize):
		return m, navigate(SceneOptimize)
	case key.Matches(msg, keys.Back):
		if m.currentScene == SceneDashboard {
			return m, nil
		}
		target := m.previousScene
		if target == m.currentScene || target == SceneHelp {
			target = SceneDashboard
		}
		return m, navigate(target)
	}

	return m.updateCurrentScene(msg)
}

// shiftRate recomputes everything that depends on the rate shift when the slider moved
func (m Model) shiftRate(moved bool) (tea.Model, tea.Cmd) {
	if !moved {
		return m, nil
	}
	return m, tea.Batch(m.recalculateCmd(), m.optimizeCmd(m.optimizeModel.Options()))
}

func navigate(s Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: s} }
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneDashboard:
		m.dashboardModel, cmd = m.dashboardModel.Update(msg)
	case SceneGoal:
		m.goalModel, cmd = m.goalModel.Update(msg)
	case SceneSensitivity:
		m.sensitivityModel, cmd = m.sensitivityModel.Update(msg)
	case SceneOptimize:
		m.optimizeModel, cmd = m.optimizeModel.Update(msg)
	}
	return m, cmd
}
