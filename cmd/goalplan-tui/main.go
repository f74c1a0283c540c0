package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/goalplan/internal/logging"
	"github.com/rgehrsitz/goalplan/internal/planner"
	"github.com/rgehrsitz/goalplan/internal/tui"
)

func main() {
	// Get plan file path from arguments
	planPath := ""
	if len(os.Args) > 1 {
		planPath = os.Args[1]
	} else {
		fmt.Println("Usage: goalplan-tui <plan-file>")
		os.Exit(1)
	}

	if _, err := os.Stat(planPath); os.IsNotExist(err) {
		fmt.Printf("Error: Plan file not found: %s\n", planPath)
		os.Exit(1)
	}

	// The alternate screen owns the terminal, so engine logs go to a file when asked for
	var logOut io.Writer = io.Discard
	if path := os.Getenv("GOALPLAN_TUI_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Printf("Error: opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	log := logging.New(logging.Config{Level: os.Getenv("GOALPLAN_LOG_LEVEL"), Output: logOut})

	p := planner.NewPlanner(nil, 0)
	p.Engine().SetLogger(logging.NewEngineLogger(log, "engine"))

	program := tea.NewProgram(
		tui.NewModel(planPath, p),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
