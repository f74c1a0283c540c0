package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/goalplan/internal/compare"
	"github.com/rgehrsitz/goalplan/internal/transform"
)

func compareCmd(a *app) *cobra.Command {
	var (
		pf            planFlags
		with          string
		scenarios     []string
		baseName      string
		listTemplates bool
		outputFormat  string
	)

	cmd := &cobra.Command{
		Use:   "compare [plan-file]",
		Short: "Compare the plan with what-if scenarios",
		Long: `Reports the plan as given and once per scenario, then lists how monthly payments,
interest and reachable goals change against the plan as given.

Built-in templates are selected with --with; ad-hoc scenarios use
--scenario "name=transform;transform", e.g. "lump=set_existing_capital:amount=5000".`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := compare.NewCompareEngine(a.planner)

			if listTemplates {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(engine.TemplateRegistry))
				return nil
			}

			plan, err := a.loadPlan(args, &pf)
			if err != nil {
				return err
			}
			sc, err := pf.scenario()
			if err != nil {
				return err
			}

			opts := compare.CompareOptions{
				BaseScenarioName: baseName,
				Templates:        transform.ParseTemplateList(with),
			}
			registry := transform.NewTransformRegistry()
			for _, s := range scenarios {
				tmpl, err := registry.ParseTemplate(s)
				if err != nil {
					return fmt.Errorf("invalid --scenario: %w", err)
				}
				opts.Scenarios = append(opts.Scenarios, tmpl)
			}
			if len(opts.Templates) == 0 && len(opts.Scenarios) == 0 {
				return fmt.Errorf("nothing to compare: use --with or --scenario (see --list-templates)")
			}

			set, err := engine.Compare(cmd.Context(), *plan, sc, opts)
			if err != nil {
				return err
			}
			if len(args) > 0 {
				set.PlanPath = args[0]
			}
			a.log.Info().Int("scenarios", len(set.AlternativeResults)).Msg("comparison complete")

			var out string
			switch outputFormat {
			case "table", "console":
				out = (&compare.TableFormatter{}).Format(set)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(set) + "\n"
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(set)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(set)
				out += "\n"
			default:
				return fmt.Errorf("unsupported output format: %s (table, compact, csv, json)", outputFormat)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVar(&with, "with", "", "Comma-separated template names, e.g. postpone_1yr,rate_down_1")
	cmd.Flags().StringArrayVar(&scenarios, "scenario", nil, "Ad-hoc scenario 'name=transform;transform' (repeatable)")
	cmd.Flags().StringVar(&baseName, "base-name", compare.DefaultBaseName, "Label of the plan as given")
	cmd.Flags().BoolVar(&listTemplates, "list-templates", false, "List the built-in templates and exit")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table, compact, csv, json)")
	return cmd
}
