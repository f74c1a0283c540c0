package domain

// WarningType is the visual category of a health warning
type WarningType string

const (
	WarningDanger  WarningType = "danger"
	WarningWarning WarningType = "warning"
	WarningInfo    WarningType = "info"
)

// Severity ranks health warnings
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// HealthWarning is one finding of the financial health check
type HealthWarning struct {
	Type       WarningType `json:"type"`
	Severity   Severity    `json:"severity"`
	GoalID     string      `json:"goalId,omitempty"`
	Title      string      `json:"title"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion"`
}

// ROIClass buckets an annualized return
type ROIClass string

const (
	ROIBad       ROIClass = "bad"
	ROIWeak      ROIClass = "weak"
	ROIOk        ROIClass = "ok"
	ROIGood      ROIClass = "good"
	ROIExcellent ROIClass = "excellent"
)

// ClassifyROI maps an annualized return percentage to its band: <0 bad, [0,2) weak,
// [2,5) ok, [5,8) good, >=8 excellent
func ClassifyROI(roiPct float64) ROIClass {
	switch {
	case roiPct < 0:
		return ROIBad
	case roiPct < 2:
		return ROIWeak
	case roiPct < 5:
		return ROIOk
	case roiPct < 8:
		return ROIGood
	default:
		return ROIExcellent
	}
}

// Rule72Class buckets a doubling time in years: <=8 excellent, <=15 ok, <=30 weak, else bad
func Rule72Class(years float64) ROIClass {
	switch {
	case years <= 8:
		return ROIExcellent
	case years <= 15:
		return ROIOk
	case years <= 30:
		return ROIWeak
	default:
		return ROIBad
	}
}
