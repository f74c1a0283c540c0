package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/goalplan/internal/breakeven"
)

func breakevenCmd(a *app) *cobra.Command {
	var (
		pf           planFlags
		goalKey      string
		target       string
		payment      float64
		minRate      float64
		maxRate      float64
		maxCapital   float64
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "breakeven [plan-file]",
		Short: "Solve what a goal needs for a given monthly payment",
		Long: `Keeps the goal's monthly payment fixed (--payment, or the goal's current payment) and solves:

  rate     the lowest annual rate that reaches the amount by the target date
  capital  the smallest lump sum today that reaches the amount by the target date
  date     the earliest month the amount is reached
  all      every one of the above, with recommendations`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := breakeven.ParseSolveTarget(target)
			if err != nil {
				return err
			}

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

			constraints := breakeven.DefaultConstraints()
			constraints.MinRate = &minRate
			constraints.MaxRate = &maxRate
			if cmd.Flags().Changed("max-capital") {
				constraints.MaxCapital = &maxCapital
			}

			req := breakeven.SolveRequest{
				Goal:        goal,
				Settings:    plan.Settings,
				Scenario:    sc,
				Target:      t,
				Payment:     payment,
				Constraints: constraints,
			}
			solver := breakeven.NewDefaultSolver(a.planner.Engine())
			table := &breakeven.TableFormatter{}
			jsonOut := &breakeven.JSONFormatter{Pretty: true}

			var out string
			if t == breakeven.SolveAll {
				multi, err := solver.SolveAll(cmd.Context(), req)
				if err != nil {
					return err
				}
				if outputFormat == "json" {
					if out, err = jsonOut.FormatMulti(multi); err != nil {
						return err
					}
				} else {
					out = table.FormatMulti(multi)
				}
			} else {
				result, err := solver.Solve(cmd.Context(), req)
				if err != nil {
					return err
				}
				if outputFormat == "json" {
					if out, err = jsonOut.Format(result); err != nil {
						return err
					}
				} else {
					out = table.Format(result)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	def := breakeven.DefaultConstraints()
	pf.register(cmd)
	cmd.Flags().StringVarP(&goalKey, "goal", "g", "", "Goal id or name")
	cmd.Flags().StringVarP(&target, "target", "t", "all", "What to solve for (rate, capital, date, all)")
	cmd.Flags().Float64Var(&payment, "payment", 0, "Monthly payment to keep (default: the goal's current payment)")
	cmd.Flags().Float64Var(&minRate, "min-rate", *def.MinRate, "Lowest annual rate searched, percent")
	cmd.Flags().Float64Var(&maxRate, "max-rate", *def.MaxRate, "Highest annual rate searched, percent")
	cmd.Flags().Float64Var(&maxCapital, "max-capital", 0, "Largest lump sum searched")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, json)")
	_ = cmd.MarkFlagRequired("goal")
	return cmd
}
