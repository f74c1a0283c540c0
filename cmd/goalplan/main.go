package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/goalplan/internal/logging"
	"github.com/rgehrsitz/goalplan/internal/planner"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	envDB       = "GOALPLAN_DB"
	envLogLevel = "GOALPLAN_LOG_LEVEL"
)

// app carries what every subcommand shares once the root flags are parsed
type app struct {
	log      zerolog.Logger
	planner  *planner.Planner
	dbPath   string
	logLevel string
	pretty   bool
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "goalplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

// fileExists checks if a file exists
func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return !os.IsNotExist(err)
}

// defaultDBPath resolves the goal store location: flag, then environment, then home
func defaultDBPath() string {
	if p := os.Getenv(envDB); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".goalplan", "goals.db")
	}
	return filepath.Join(home, ".goalplan", "goals.db")
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "goalplan",
		Short: "Savings goals planner CLI",
		Long: "Projects savings goals month by month, solves the monthly payment each goal needs,\n" +
			"measures how sensitive goal timing is to interest rates and splits a monthly budget across goals.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("loading .env: %w", err)
			}
			if !cmd.Flags().Changed("log-level") {
				if lvl := os.Getenv(envLogLevel); lvl != "" {
					a.logLevel = lvl
				}
			}
			if a.dbPath == "" {
				a.dbPath = defaultDBPath()
			}

			a.log = logging.New(logging.Config{Level: a.logLevel, Pretty: a.pretty, Output: cmd.ErrOrStderr()})
			a.planner = planner.NewPlanner(nil, 0)
			a.planner.Engine().SetLogger(logging.NewEngineLogger(a.log, "engine"))
			a.log.Debug().Str("command", cmd.Name()).Str("db", a.dbPath).Msg("starting")
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().BoolVar(&a.pretty, "pretty-log", false, "Human-readable log output")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "Goal store database (default $GOALPLAN_DB or ~/.goalplan/goals.db)")

	root.AddCommand(
		validateCmd(a),
		reportCmd(a),
		projectCmd(a),
		generalCmd(a),
		sensitivityCmd(a),
		optimizeCmd(a),
		breakevenCmd(a),
		compareCmd(a),
		monteCarloCmd(a),
		goalsCmd(a),
		settingsCmd(a),
		versionCmd(),
	)
	return root
}

var rootCmd = newRootCmd()

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
