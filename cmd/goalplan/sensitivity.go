package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/goalplan/internal/allocation"
	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/output"
)

func sensitivityCmd(a *app) *cobra.Command {
	var (
		pf           planFlags
		delta        float64
		sweepMin     float64
		sweepMax     float64
		steps        int
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "sensitivity [plan-file]",
		Short: "Show how goal timing responds to a change in interest rates",
		Long: `Keeps every goal's current monthly payment and recomputes how many months it needs to
reach its amount when the annual rate moves by --delta percentage points.

With --sweep-min and --sweep-max the analysis runs at --steps evenly spaced deltas.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := a.loadPlan(args, &pf)
			if err != nil {
				return err
			}
			sc, err := pf.scenario()
			if err != nil {
				return err
			}

			var result interface{}
			if cmd.Flags().Changed("sweep-min") || cmd.Flags().Changed("sweep-max") {
				if steps < 2 {
					return fmt.Errorf("--steps must be at least 2")
				}
				if sweepMax < sweepMin {
					return fmt.Errorf("--sweep-max must not be below --sweep-min")
				}
				analyzer := calculation.NewSensitivityAnalyzer(a.planner.Engine())
				result = analyzer.AnalyzeSweep(plan.Goals, plan.Settings, sc, sweepMin, sweepMax, steps)
			} else {
				result = a.planner.Sensitivity(plan.Goals, plan.Settings, sc, delta)
			}

			out, err := output.NewSensitivityFormatter(outputFormat).FormatSensitivityAnalysis(result)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	pf.register(cmd)
	cmd.Flags().Float64VarP(&delta, "delta", "d", 1, "Rate change in percentage points")
	cmd.Flags().Float64Var(&sweepMin, "sweep-min", -2, "Lowest delta of a sweep")
	cmd.Flags().Float64Var(&sweepMax, "sweep-max", 2, "Highest delta of a sweep")
	cmd.Flags().IntVar(&steps, "steps", 5, "Number of deltas in a sweep")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, csv, json)")
	return cmd
}

func optimizeCmd(a *app) *cobra.Command {
	var (
		pf            planFlags
		budget        string
		mode          string
		noDiagnostics bool
		outputFormat  string
	)

	cmd := &cobra.Command{
		Use:   "optimize [plan-file]",
		Short: "Split a monthly budget across the goals",
		Long: `Funds every goal's minimum payment from the budget, then places the surplus either
on the goal with the best rate (--mode surplus) or where it shortens time to target
the most (--mode time). Whatever is left stays in the general bucket.

The budget is the general monthly deposit (--budget general) or the sum of the goals'
current payments (--budget sumOfGoals).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := allocation.DefaultOptions()
			var err error
			if opts.BudgetMode, err = domain.ParseBudgetMode(budget); err != nil {
				return err
			}
			if opts.Mode, err = domain.ParseAllocationMode(mode); err != nil {
				return err
			}
			opts.Diagnostics = !noDiagnostics

			plan, err := a.loadPlan(args, &pf)
			if err != nil {
				return err
			}
			sc, err := pf.scenario()
			if err != nil {
				return err
			}

			result, err := a.planner.Optimize(cmd.Context(), plan.Goals, plan.Settings, sc, opts)
			if err != nil {
				return fmt.Errorf("allocation failed: %w", err)
			}
			out, err := output.NewAllocationFormatter(outputFormat).FormatAllocation(result)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVar(&budget, "budget", "general", "Budget source (general, sumOfGoals)")
	cmd.Flags().StringVar(&mode, "mode", "surplus", "Surplus strategy (surplus, time)")
	cmd.Flags().BoolVar(&noDiagnostics, "no-diagnostics", false, "Skip the per-goal time-to-goal diagnostics")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, csv, json)")
	return cmd
}
