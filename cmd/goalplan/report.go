package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/goalplan/internal/output"
)

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan-file]",
		Short: "Validate a plan file (or the stored goals)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args, nil)
			if err != nil {
				return err
			}
			source := "stored goals"
			if len(args) > 0 {
				source = args[0]
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (%d goals)\n", source, len(plan.Goals))
			return nil
		},
	}
}

func reportCmd(a *app) *cobra.Command {
	var (
		pf        planFlags
		format    string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "report [plan-file]",
		Short: "Report every goal's payment, ROI and the plan's health",
		Long: "Builds the per-goal view (required payment, balance at target, interest, ROI, doubling time),\n" +
			"the plan totals, health warnings and the free monthly deposit.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.GetFormatterByName(format)
			if f == nil {
				return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			plan, err := a.loadPlan(args, &pf)
			if err != nil {
				return err
			}
			sc, err := pf.scenario()
			if err != nil {
				return err
			}

			report := a.planner.BuildReport(*plan, sc)

			if outputDir != "" {
				path, err := output.WriteFormatted(f, &report, outputDir, output.ExtensionFor(f.Name()))
				if err != nil {
					return err
				}
				a.log.Info().Str("path", path).Msg("report written")
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			}
			return output.GenerateReport(cmd.OutOrStdout(), &report, format)
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Write the report to a timestamped file in this directory")
	return cmd
}

func projectCmd(a *app) *cobra.Command {
	var (
		pf      planFlags
		goalKey string
		bands   bool
		horizon int
		format  string
	)

	cmd := &cobra.Command{
		Use:   "project [plan-file]",
		Short: "Project one goal month by month",
		Long: "Prints the goal's balance trajectory from today to its target date. With --bands it prints\n" +
			"the target line with optimistic, expected and pessimistic balances instead.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args, &pf)
			if err != nil {
				return err
			}
			goal, ok := plan.FindGoal(goalKey)
			if !ok {
				return fmt.Errorf("goal %q not found", goalKey)
			}
			sc, err := pf.scenario()
			if err != nil {
				return err
			}

			engine := a.planner.Engine()
			formatter := output.NewSeriesFormatter(format)
			var out string
			if bands {
				out, err = formatter.FormatGoalSeries(goal, engine.GoalSeries(goal, plan.Settings, sc, horizon))
			} else {
				out, err = formatter.FormatTrajectory(goal, engine.ProjectTrajectory(goal, plan.Settings, sc))
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVarP(&goalKey, "goal", "g", "", "Goal id or name")
	cmd.Flags().BoolVar(&bands, "bands", false, "Show optimistic, expected and pessimistic balance bands")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "Chart months for --bands (at least the months to target)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, csv)")
	_ = cmd.MarkFlagRequired("goal")
	return cmd
}

func generalCmd(a *app) *cobra.Command {
	var (
		pf     planFlags
		years  int
		format string
	)

	cmd := &cobra.Command{
		Use:   "general [plan-file]",
		Short: "Project the general savings account",
		Long: "Projects the general monthly deposit net of goal payments, with interest,\n" +
			"alongside the combined balance of every goal.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if years < 0 {
				return fmt.Errorf("--years must not be negative")
			}
			plan, err := a.loadPlan(args, &pf)
			if err != nil {
				return err
			}
			sc, err := pf.scenario()
			if err != nil {
				return err
			}

			projection := a.planner.Engine().GeneralSavings(plan.Goals, plan.Settings, sc, years*12)
			out, err := output.NewSeriesFormatter(format).FormatGeneralSavings(projection)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	pf.register(cmd)
	cmd.Flags().IntVar(&years, "years", 0, "Projection horizon in years (default: until the last goal)")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Output format (console, csv)")
	return cmd
}
