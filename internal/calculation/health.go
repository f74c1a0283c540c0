package calculation

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

const (
	dangerSavingsRatio  = 0.5
	warningSavingsRatio = 0.3
	urgentGoalMonths    = 6
)

// ValidateFinancialHealth checks the plan's savings load against income, goals earning
// less than inflation, and goals due within six months.
func (pe *ProjectionEngine) ValidateFinancialHealth(goals []domain.Goal, settings domain.Settings, sc domain.ScenarioContext) []domain.HealthWarning {
	warnings := []domain.HealthWarning{}
	if len(goals) == 0 {
		return warnings
	}

	total := 0.0
	for _, g := range goals {
		total += math.Max(0, pe.RequiredPayment(g, settings, sc))
	}

	if income := settings.MonthlyIncome; income > 0 {
		ratio := total / income
		switch {
		case ratio > dangerSavingsRatio:
			warnings = append(warnings, domain.HealthWarning{
				Type:       domain.WarningDanger,
				Severity:   domain.SeverityHigh,
				Title:      "Extreme savings load",
				Message:    fmt.Sprintf("Monthly savings of %.0f are %.1f%% of income.", total, ratio*100),
				Suggestion: "This is not sustainable. Extend target dates or reduce goal amounts.",
			})
		case ratio > warningSavingsRatio:
			warnings = append(warnings, domain.HealthWarning{
				Type:       domain.WarningWarning,
				Severity:   domain.SeverityMedium,
				Title:      "High savings load",
				Message:    fmt.Sprintf("Monthly savings are %.1f%% of income.", ratio*100),
				Suggestion: "Check that this is sustainable. Progressive goals grow the load over time.",
			})
		}
	}

	infl := settings.InflationAnnualPct
	for _, g := range goals {
		if g.RateAnnual > 0 && infl > 0 && g.RateAnnual < infl {
			warnings = append(warnings, domain.HealthWarning{
				Type:       domain.WarningWarning,
				Severity:   domain.SeverityMedium,
				GoalID:     g.ID,
				Title:      fmt.Sprintf("Rate below inflation: %s", goalLabel(g)),
				Message:    fmt.Sprintf("Rate %.2f%% is below inflation %.2f%%.", g.RateAnnual, infl),
				Suggestion: "Money loses real value here. Consider a higher-yield option or switch to real mode.",
			})
		}
	}

	for _, g := range goals {
		m := MonthsToTarget(g, sc)
		if m > urgentGoalMonths {
			continue
		}
		remaining := math.Max(0, math.Max(0, g.Amount)-math.Max(0, g.ExistingCapital))
		warnings = append(warnings, domain.HealthWarning{
			Type:       domain.WarningInfo,
			Severity:   domain.SeverityLow,
			GoalID:     g.ID,
			Title:      fmt.Sprintf("Urgent goal: %s", goalLabel(g)),
			Message:    fmt.Sprintf("Requires saving %.0f per month for %d months.", remaining/float64(m), m),
			Suggestion: "Consider extending the target date if the amount is too high.",
		})
	}

	return warnings
}

func goalLabel(g domain.Goal) string {
	if g.Name == "" {
		return "Goal"
	}
	return g.Name
}
