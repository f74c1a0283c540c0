package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/dateutil"
	"github.com/rgehrsitz/goalplan/internal/output"
)

// SolveAll runs the rate, capital and date searches for one goal and compares them
// with the goal as given
func (s *Solver) SolveAll(ctx context.Context, req SolveRequest) (*MultiResult, error) {
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}

	targets := []SolveTarget{SolveRate, SolveCapital, SolveDate}

	multi := &MultiResult{
		GoalID:   req.Goal.ID,
		GoalName: req.Goal.Name,
		Results:  make([]SolveResult, 0, len(targets)),
	}
	for _, target := range targets {
		r := req
		r.Target = target
		result, err := s.Solve(ctx, r)
		if err != nil {
			return nil, err
		}
		multi.Payment = result.Payment
		multi.Results = append(multi.Results, *result)
	}

	multi.Recommendations = s.recommendations(multi)
	return multi, nil
}

// recommendations turns the solved parameters into short suggestions
func (s *Solver) recommendations(m *MultiResult) []string {
	var recs []string
	pay := output.FormatCurrency(m.Payment)

	for _, r := range m.Results {
		if !r.Success {
			continue
		}
		switch r.Target {
		case SolveRate:
			if r.RequiredRate != nil && *r.RequiredRate > r.BaseRate {
				recs = append(recs, fmt.Sprintf("At %s / month the goal needs %s a year instead of %s",
					pay, output.FormatPercentage(*r.RequiredRate), output.FormatPercentage(r.BaseRate)))
			}
		case SolveCapital:
			if r.RequiredCapital != nil && *r.RequiredCapital > r.BaseCapital {
				recs = append(recs, fmt.Sprintf("Add %s today to stay on %s / month",
					output.FormatCurrency(*r.RequiredCapital-r.BaseCapital), pay))
			}
		case SolveDate:
			if r.MonthsNeeded == nil || r.ReachDate == nil {
				continue
			}
			switch {
			case *r.MonthsNeeded > r.BaseMonths:
				recs = append(recs, fmt.Sprintf("At %s / month the amount is reached on %s, %s later than planned",
					pay, dateutil.FormatDayFirst(*r.ReachDate), output.FormatMonths(*r.MonthsNeeded-r.BaseMonths)))
			case *r.MonthsNeeded < r.BaseMonths:
				recs = append(recs, fmt.Sprintf("At %s / month the amount is reached on %s, %s early",
					pay, dateutil.FormatDayFirst(*r.ReachDate), output.FormatMonths(r.BaseMonths-*r.MonthsNeeded)))
			}
		}
	}

	if len(recs) == 0 {
		recs = append(recs, fmt.Sprintf("%s / month keeps the goal on track", pay))
	}
	return recs
}
