package domain

// Percentiles holds the 10th to 90th percentile of a simulated quantity
type Percentiles struct {
	P10 float64 `json:"p10"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P90 float64 `json:"p90"`
}

// MonteCarloResult summarizes many runs of one goal under randomly drawn yearly rates
type MonteCarloResult struct {
	GoalID         string  `json:"goalId"`
	GoalName       string  `json:"goalName"`
	GoalAmount     float64 `json:"goalAmount"`
	Payment        float64 `json:"payment"`
	MonthsUntil    int     `json:"monthsUntil"`
	MeanRate       float64 `json:"meanRate"`   // annual percent
	RateStdDev     float64 `json:"rateStdDev"` // annual percentage points
	NumSimulations int     `json:"numSimulations"`
	Seed           uint64  `json:"seed"`

	SuccessRate     float64     `json:"successRate"` // share of runs reaching the amount, 0..1
	MeanFinal       float64     `json:"meanFinal"`
	FinalBalance    Percentiles `json:"finalBalance"`
	MeanShortfall   float64     `json:"meanShortfall"` // over the failed runs only
	DeterministicFV float64     `json:"deterministicFv"`
}
