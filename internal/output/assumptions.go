package output

import (
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// PlanAssumptions lists the modeling assumptions rendered in detailed outputs
func PlanAssumptions(report *domain.PlanReport) []string {
	s := report.Settings
	mode := "Nominal returns (no inflation adjustment)"
	if s.ComputeReal {
		mode = fmt.Sprintf("Real returns: goal rates reduced by %s inflation (Fisher)", FormatPercentage(s.InflationAnnualPct))
	}
	out := []string{
		mode,
		"Payments at the end of each month; bonuses credited at the end of their month",
		"Required payments are rounded up to a whole unit for display only",
	}
	if report.RateChange != 0 {
		out = append(out, fmt.Sprintf("Every goal rate shifted by %+.2f percentage points", report.RateChange))
	}
	if s.GeneralMonthlyDeposit > 0 {
		out = append(out, fmt.Sprintf("General monthly deposit %s at %s", FormatCurrency(s.GeneralMonthlyDeposit), FormatPercentage(s.GeneralInterestRate)))
	}
	return out
}
