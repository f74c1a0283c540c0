package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	gojson "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/goalplan/internal/config"
	"github.com/rgehrsitz/goalplan/internal/dateutil"
	"github.com/rgehrsitz/goalplan/internal/output"
	"github.com/rgehrsitz/goalplan/internal/store"
)

func goalsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage the stored goal list",
		Long: "Stored goals are used by every plan command when no plan file is given.\n" +
			"The store lives at --db, $GOALPLAN_DB or ~/.goalplan/goals.db.",
	}
	cmd.AddCommand(
		goalsListCmd(a),
		goalsImportCmd(a),
		goalsExportCmd(a),
		goalsRemoveCmd(a),
		goalsClearCmd(a),
	)
	return cmd
}

func goalsListCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if asJSON {
				data, err := s.Export()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			goals, err := s.List()
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No goals stored")
				return nil
			}
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "NAME", "AMOUNT", "RATE", "TARGET", "TYPE")
			for _, g := range goals {
				t.Row(g.ID, g.Name, output.FormatWhole(g.Amount), output.FormatPercentage(g.RateAnnual),
					dateutil.FormatDayFirst(g.TargetDate), g.SavingsType.String())
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the goals as JSON")
	return cmd
}

func goalsImportCmd(a *app) *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import goals from a plan or goal-list file (YAML, JSON or TOML)",
		Long: "Appends the file's goals to the store. A goal whose id is already stored is overwritten.\n" +
			"With --replace the stored list is swapped for the file's goals.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			goals, err := config.NewInputParser().ParseGoals(data, config.FormatFromPath(args[0]))
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			stored, err := s.Import(goals, replace)
			if err != nil {
				return fmt.Errorf("importing goals: %w", err)
			}
			a.log.Info().Int("imported", len(goals)).Int("stored", len(stored)).Bool("replace", replace).Msg("goals imported")
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d goals (%d stored)\n", len(goals), len(stored))
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace the stored goals instead of appending")
	return cmd
}

func goalsExportCmd(a *app) *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored goals as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			data, err := s.Export()
			if err != nil {
				return err
			}
			if outFile == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := os.WriteFile(outFile, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outFile, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Goals exported to %s\n", outFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}

func goalsRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>...",
		Short: "Remove stored goals by id",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			for _, id := range args {
				_, found, err := s.Get(id)
				if err != nil {
					return err
				}
				if !found {
					fmt.Fprintf(cmd.OutOrStdout(), "No goal %q\n", store.NormalizeID(id))
					continue
				}
				if err := s.Remove(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", store.NormalizeID(id))
			}
			return nil
		},
	}
}

func goalsClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All goals removed")
			return nil
		},
	}
}

func settingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the stored settings",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the stored settings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			settings, err := s.Settings()
			if err != nil {
				return err
			}
			data, err := gojson.MarshalIndent(settings, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <key=value>...",
		Short: "Change stored settings, e.g. generalMonthlyDeposit=5000",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := make(map[string]any, len(args))
			for _, arg := range args {
				k, v, ok := strings.Cut(arg, "=")
				if !ok || strings.TrimSpace(k) == "" {
					return fmt.Errorf("invalid setting %q, expected key=value", arg)
				}
				patch[strings.TrimSpace(k)] = strings.TrimSpace(v)
			}

			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			settings, err := s.PatchSettings(patch)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(patch))
			for k := range patch {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			a.log.Info().Strs("keys", keys).Msg("settings updated")

			data, err := gojson.MarshalIndent(settings, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	reset := &cobra.Command{
		Use:   "clear",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.ClearSettings(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Settings reset to defaults")
			return nil
		},
	}

	cmd.AddCommand(show, set, reset)
	return cmd
}
