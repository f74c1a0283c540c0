package domain

import (
	"fmt"
	"strings"
	"time"
)

// SavingsType selects how a goal's monthly contribution evolves over time
type SavingsType int

const (
	// SavingsFixed pays the same amount every month
	SavingsFixed SavingsType = iota
	// SavingsProgressive pays a base amount that grows by MonthlyIncrease each month
	SavingsProgressive
)

// String returns the persisted name of the savings type
func (s SavingsType) String() string {
	switch s {
	case SavingsFixed:
		return "fixed"
	case SavingsProgressive:
		return "progressive"
	default:
		return fmt.Sprintf("SavingsType(%d)", int(s))
	}
}

// ParseSavingsType maps a persisted name to a SavingsType. Unknown names fall back to fixed.
func ParseSavingsType(s string) (SavingsType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed", "":
		return SavingsFixed, true
	case "progressive":
		return SavingsProgressive, true
	default:
		return SavingsFixed, false
	}
}

// MarshalText implements encoding.TextMarshaler
func (s SavingsType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *SavingsType) UnmarshalText(text []byte) error {
	v, ok := ParseSavingsType(string(text))
	if !ok {
		return fmt.Errorf("unknown savings type %q", string(text))
	}
	*s = v
	return nil
}

// CalculationMode says whether the engine solves the monthly payment or honors a pinned one
type CalculationMode int

const (
	// ModeStandard always computes the required payment
	ModeStandard CalculationMode = iota
	// ModeAmountPayment pins MonthlyPayment for a fixed target amount
	ModeAmountPayment
	// ModeDatePayment pins MonthlyPayment for a fixed target date
	ModeDatePayment
)

// String returns the persisted name of the calculation mode
func (m CalculationMode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModeAmountPayment:
		return "amount_payment"
	case ModeDatePayment:
		return "date_payment"
	default:
		return fmt.Sprintf("CalculationMode(%d)", int(m))
	}
}

// ParseCalculationMode maps a persisted name to a CalculationMode. Unknown names fall back to standard.
func ParseCalculationMode(s string) (CalculationMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "":
		return ModeStandard, true
	case "amount_payment":
		return ModeAmountPayment, true
	case "date_payment":
		return ModeDatePayment, true
	default:
		return ModeStandard, false
	}
}

// MarshalText implements encoding.TextMarshaler
func (m CalculationMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *CalculationMode) UnmarshalText(text []byte) error {
	v, ok := ParseCalculationMode(string(text))
	if !ok {
		return fmt.Errorf("unknown calculation mode %q", string(text))
	}
	*m = v
	return nil
}

// IsUserFixed reports whether the mode lets the user pin the monthly payment
func (m CalculationMode) IsUserFixed() bool {
	switch m {
	case ModeAmountPayment, ModeDatePayment:
		return true
	case ModeStandard:
		return false
	default:
		return false
	}
}

// Bonus is a one-time cash injection at the end of Month (1 = end of the first month)
type Bonus struct {
	Month       int     `yaml:"month" json:"month" toml:"month"`
	Amount      float64 `yaml:"amount" json:"amount" toml:"amount"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty" toml:"description,omitempty"`
}

// Goal is a savings objective. Values are already sanitized: money is finite and
// non-negative, bonus months are >= 1.
type Goal struct {
	ID              string          `yaml:"id" json:"id" toml:"id"`
	Name            string          `yaml:"name" json:"name" toml:"name"`
	Amount          float64         `yaml:"amount" json:"amount" toml:"amount"`
	RateAnnual      float64         `yaml:"rate_annual" json:"rateAnnual" toml:"rate_annual"` // percent, 5.0 = 5%
	TargetDate      time.Time       `yaml:"target_date" json:"targetDate" toml:"target_date"`
	ExistingCapital float64         `yaml:"existing_capital" json:"existingCapital" toml:"existing_capital"`
	SavingsType     SavingsType     `yaml:"savings_type" json:"savingsType" toml:"savings_type"`
	MonthlyIncrease float64         `yaml:"monthly_increase" json:"monthlyIncrease" toml:"monthly_increase"`
	CalculationMode CalculationMode `yaml:"calculation_mode" json:"calculationMode" toml:"calculation_mode"`
	MonthlyPayment  float64         `yaml:"monthly_payment" json:"monthlyPayment" toml:"monthly_payment"`
	// InitialAmount overrides the solved base payment of a progressive goal when > 0
	InitialAmount float64 `yaml:"initial_amount,omitempty" json:"initialAmount,omitempty" toml:"initial_amount,omitempty"`
	Bonuses       []Bonus `yaml:"bonuses" json:"bonuses" toml:"bonuses"`
}

// IsProgressive reports whether the goal uses a growing payment schedule
func (g Goal) IsProgressive() bool {
	return g.SavingsType == SavingsProgressive
}

// HasPinnedPayment reports whether the user-fixed monthly payment must be honored verbatim
func (g Goal) HasPinnedPayment() bool {
	return g.CalculationMode.IsUserFixed() && g.MonthlyPayment > 0
}

// Clone returns a copy of the goal that shares no slices with the original
func (g Goal) Clone() Goal {
	out := g
	if g.Bonuses != nil {
		out.Bonuses = make([]Bonus, len(g.Bonuses))
		copy(out.Bonuses, g.Bonuses)
	}
	return out
}
