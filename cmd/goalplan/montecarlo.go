package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/goalplan/internal/calculation"
	"github.com/rgehrsitz/goalplan/internal/output"
)

func monteCarloCmd(a *app) *cobra.Command {
	var (
		pf           planFlags
		goalKey      string
		cfg          = calculation.DefaultMonteCarloConfig()
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "montecarlo [plan-file]",
		Short: "Estimate the chance of reaching a goal when rates vary",
		Long: `Runs the goal many times, drawing a new annual rate for every year from a normal
distribution around the goal's rate, and reports how often the amount is reached along
with the spread of balances at the target date.`,
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

			result, err := a.planner.Engine().MonteCarlo(cmd.Context(), goal, plan.Settings, sc, cfg)
			if err != nil {
				return err
			}
			a.log.Info().Str("goal", goal.ID).Float64("success", result.SuccessRate).Msg("simulation complete")

			out, err := output.NewMonteCarloFormatter(outputFormat).FormatMonteCarlo(result)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVarP(&goalKey, "goal", "g", "", "Goal id or name")
	cmd.Flags().IntVarP(&cfg.NumSimulations, "sims", "n", cfg.NumSimulations, "Number of simulations")
	cmd.Flags().Float64Var(&cfg.RateStdDev, "stddev", cfg.RateStdDev, "Standard deviation of the yearly rate, in percentage points")
	cmd.Flags().Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed")
	cmd.Flags().IntVar(&cfg.Workers, "workers", cfg.Workers, "Parallel workers")
	cmd.Flags().Float64Var(&cfg.Payment, "payment", 0, "Monthly payment (default: the goal's required payment)")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json)")
	_ = cmd.MarkFlagRequired("goal")
	return cmd
}
