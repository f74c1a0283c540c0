package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/goalplan/internal/config"
	"github.com/rgehrsitz/goalplan/internal/dateutil"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/store"
	"github.com/rgehrsitz/goalplan/internal/transform"
)

// planFlags are the inputs shared by every command that evaluates a plan
type planFlags struct {
	rateChange float64
	asOf       string
	transforms []string
}

func (f *planFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.rateChange, "rate-change", 0, "Percentage points added to every goal's annual rate")
	cmd.Flags().StringVar(&f.asOf, "as-of", "", "Evaluate as of this date (YYYY-MM-DD or DD/MM/YYYY, default today)")
	cmd.Flags().StringArrayVar(&f.transforms, "transform", nil, "Goal transforms to apply, e.g. 'add_bonus:month=12,amount=5000' (repeatable)")
}

// scenario builds the evaluation context from the flags
func (f *planFlags) scenario() (domain.ScenarioContext, error) {
	now := time.Now()
	if f.asOf != "" {
		t, err := dateutil.ParseDate(f.asOf, time.Local)
		if err != nil {
			return domain.ScenarioContext{}, fmt.Errorf("invalid --as-of: %w", err)
		}
		now = dateutil.Midday(t)
	}
	return domain.NewScenarioContext(now).WithRateChange(f.rateChange), nil
}

// loadPlan reads the plan file named in args, or the goal store when args is empty,
// validates it and applies the requested transforms to every goal.
func (a *app) loadPlan(args []string, f *planFlags) (*domain.Plan, error) {
	var (
		plan *domain.Plan
		err  error
	)
	parser := config.NewInputParser()

	if len(args) > 0 {
		if !fileExists(args[0]) {
			return nil, fmt.Errorf("plan file not found: %s", args[0])
		}
		plan, err = parser.LoadFromFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to load plan: %w", err)
		}
	} else {
		plan, err = a.storedPlan()
		if err != nil {
			return nil, err
		}
	}

	if err := parser.ValidateConfiguration(plan); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}

	if f != nil && len(f.transforms) > 0 {
		ts, err := transform.NewTransformRegistry().ParseTransformSpecs(f.transforms)
		if err != nil {
			return nil, fmt.Errorf("invalid --transform: %w", err)
		}
		goals, err := transform.ApplyToAll(plan.Goals, ts)
		if err != nil {
			return nil, fmt.Errorf("applying transforms: %w", err)
		}
		plan.Goals = goals
		a.log.Debug().Int("transforms", len(ts)).Int("goals", len(goals)).Msg("applied transforms")
	}

	a.log.Info().Int("goals", len(plan.Goals)).Msg("plan loaded")
	return plan, nil
}

func (a *app) storedPlan() (*domain.Plan, error) {
	s, err := a.openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	plan, err := s.LoadPlan()
	if err != nil {
		return nil, fmt.Errorf("reading goal store: %w", err)
	}
	return plan, nil
}

func (a *app) openStore() (*store.Store, error) {
	s, err := store.Open(a.dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening goal store %s: %w", a.dbPath, err)
	}
	return s, nil
}
