package domain

// GoalViewModel is the derived-metrics record every rendering surface consumes for a goal
type GoalViewModel struct {
	GoalID          string  `json:"goalId"`
	GoalName        string  `json:"goalName"`
	GoalAmount      float64 `json:"goalAmount"`
	ExistingCapital float64 `json:"existingCapital"`
	MonthsUntil     int     `json:"monthsUntil"`
	MonthlyRate     float64 `json:"monthlyRate"`

	FVExisting float64 `json:"fvExisting"`
	FVBonuses  float64 `json:"fvBonuses"`
	FVPayments float64 `json:"fvPayments"`

	BasePayment    float64 `json:"basePayment"`    // raw, unrounded
	DisplayPayment float64 `json:"displayPayment"` // ceil(BasePayment)

	BonusesSum             float64 `json:"bonusesSum"`
	TotalNominalInvestment float64 `json:"totalNominalInvestment"`
	ExpectedInterest       float64 `json:"expectedInterest"`
	CalculatedFutureValue  float64 `json:"calculatedFutureValue"`
	Achievable             bool    `json:"achievable"`
	Shortfall              float64 `json:"shortfall"`
	MonthlyIncrease        float64 `json:"monthlyIncrease"`
	Progressive            bool    `json:"progressive"`
}

// Trajectory is a month-by-month balance simulation over the goal horizon
type Trajectory struct {
	Months []int     `json:"months"`
	Values []float64 `json:"values"`

	FinalAmount           float64 `json:"finalAmount"`
	SumPayments           float64 `json:"sumPayments"`
	AverageMonthlyPayment float64 `json:"averageMonthlyPayment"`
	BonusesSum            float64 `json:"bonusesSum"`
	FVExisting            float64 `json:"fvExisting"`
	FVBonuses             float64 `json:"fvBonuses"`
	MonthlyRate           float64 `json:"monthlyRate"`
	BasePayment           float64 `json:"basePayment"`
}

// GoalSeries holds the chart series for a goal: index 0 is "now", index k is the end of month k.
// Pessimistic, Optimistic and Capped cover the goal horizon only; Uncapped covers the full chart.
type GoalSeries struct {
	GoalID       string    `json:"goalId"`
	MonthsToGoal int       `json:"monthsToGoal"`
	GoalAmount   float64   `json:"goalAmount"`
	BasePayment  float64   `json:"basePayment"`
	Capped       []float64 `json:"capped"`
	Uncapped     []float64 `json:"uncapped"`
	Pessimistic  []float64 `json:"pessimistic"`
	Optimistic   []float64 `json:"optimistic"`
	HitMonth     int       `json:"hitMonth"` // -1 when the target is never reached on the chart
}

// GeneralSavingsProjection is the portfolio-level series outside any specific goal
type GeneralSavingsProjection struct {
	Months             int       `json:"months"`
	MonthlyRate        float64   `json:"monthlyRate"`
	NetStart           float64   `json:"netStart"` // globalSaved minus capital already allocated to goals
	Global             []float64 `json:"global"`
	Unassigned         []float64 `json:"unassigned"`
	BaselineNoRate     []float64 `json:"baselineNoRate"`
	CumulativeInterest []float64 `json:"cumulativeInterest"`
}

// Final returns the last value of a series, or 0 when it is empty
func Final(series []float64) float64 {
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}
