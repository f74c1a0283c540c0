package domain

import "time"

// Settings holds the single-profile configuration shared by every goal
type Settings struct {
	ComputeReal           bool    `yaml:"compute_real" json:"computeReal" toml:"compute_real"`
	InflationAnnualPct    float64 `yaml:"inflation_annual_pct" json:"inflationAnnualPct" toml:"inflation_annual_pct"`
	GeneralMonthlyDeposit float64 `yaml:"general_monthly_deposit" json:"generalMonthlyDeposit" toml:"general_monthly_deposit"`
	GeneralInterestRate   float64 `yaml:"general_interest_rate" json:"generalInterestRate" toml:"general_interest_rate"`
	MonthlyIncome         float64 `yaml:"monthly_income" json:"monthlyIncome" toml:"monthly_income"`
	GlobalSaved           float64 `yaml:"global_saved" json:"globalSaved" toml:"global_saved"`
	GlobalAnnualRate      float64 `yaml:"global_annual_rate" json:"globalAnnualRate" toml:"global_annual_rate"`
}

// DefaultSettings returns the settings used when none are stored
func DefaultSettings() Settings {
	return Settings{
		ComputeReal:        false,
		InflationAnnualPct: 2.5,
	}
}

// ScenarioContext carries the per-call scenario knobs that are not persisted with
// Settings: the evaluation instant and a global rate shift in percentage points
// added to every goal's annual rate.
type ScenarioContext struct {
	Now        time.Time `json:"now"`
	RateChange float64   `json:"rateChange"`
}

// NewScenarioContext returns a context evaluated at now with no rate shift
func NewScenarioContext(now time.Time) ScenarioContext {
	return ScenarioContext{Now: now}
}

// WithRateChange returns a copy of the context with the given rate shift
func (sc ScenarioContext) WithRateChange(pp float64) ScenarioContext {
	sc.RateChange = pp
	return sc
}

// Plan is the unit persisted in plan files: settings plus an ordered list of goals
type Plan struct {
	Settings Settings `yaml:"settings" json:"settings" toml:"settings"`
	Goals    []Goal   `yaml:"goals" json:"goals" toml:"goals"`
}

// FindGoal looks a goal up by ID first, then by name
func (p *Plan) FindGoal(key string) (Goal, bool) {
	for _, g := range p.Goals {
		if g.ID == key {
			return g, true
		}
	}
	for _, g := range p.Goals {
		if g.Name == key {
			return g, true
		}
	}
	return Goal{}, false
}
