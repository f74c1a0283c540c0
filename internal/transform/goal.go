package transform

import (
	"fmt"
	"math"
	"time"

	"github.com/rgehrsitz/goalplan/internal/dateutil"
	"github.com/rgehrsitz/goalplan/internal/domain"
)

func validateBase(name string, base *domain.Goal) error {
	if base == nil {
		return NewTransformError(name, "validate", "base goal cannot be nil", nil)
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// ShiftRate moves a goal's annual rate by a number of percentage points.
type ShiftRate struct {
	Points float64
}

func (sr *ShiftRate) Name() string {
	return "shift_rate"
}

func (sr *ShiftRate) Description() string {
	return fmt.Sprintf("Shift annual rate by %+.2f percentage points", sr.Points)
}

func (sr *ShiftRate) Validate(base *domain.Goal) error {
	if !finite(sr.Points) {
		return NewTransformError(sr.Name(), "validate", "points must be a finite number", nil)
	}
	return validateBase(sr.Name(), base)
}

func (sr *ShiftRate) Apply(base *domain.Goal) (*domain.Goal, error) {
	modified := base.Clone()
	modified.RateAnnual += sr.Points
	return &modified, nil
}

// PinPayment fixes the monthly payment so the engine honors it instead of solving.
type PinPayment struct {
	Payment float64
	Mode    domain.CalculationMode // defaults to amount_payment
}

func (pp *PinPayment) Name() string {
	return "pin_payment"
}

func (pp *PinPayment) Description() string {
	return fmt.Sprintf("Pin monthly payment to %.2f (%s)", pp.Payment, pp.mode())
}

func (pp *PinPayment) mode() domain.CalculationMode {
	if pp.Mode.IsUserFixed() {
		return pp.Mode
	}
	return domain.ModeAmountPayment
}

func (pp *PinPayment) Validate(base *domain.Goal) error {
	if !finite(pp.Payment) || pp.Payment <= 0 {
		return NewTransformError(pp.Name(), "validate", fmt.Sprintf("payment must be positive, got %v", pp.Payment), nil)
	}
	return validateBase(pp.Name(), base)
}

func (pp *PinPayment) Apply(base *domain.Goal) (*domain.Goal, error) {
	modified := base.Clone()
	modified.CalculationMode = pp.mode()
	modified.MonthlyPayment = pp.Payment
	return &modified, nil
}

// PostponeTarget moves a goal's target date later by a number of months.
type PostponeTarget struct {
	Months int
}

func (pt *PostponeTarget) Name() string {
	return "postpone_target"
}

func (pt *PostponeTarget) Description() string {
	return fmt.Sprintf("Postpone target date by %d months", pt.Months)
}

func (pt *PostponeTarget) Validate(base *domain.Goal) error {
	if pt.Months < 0 {
		return NewTransformError(pt.Name(), "validate", fmt.Sprintf("months must be non-negative, got %d", pt.Months), nil)
	}
	if err := validateBase(pt.Name(), base); err != nil {
		return err
	}
	if base.TargetDate.IsZero() {
		return NewTransformError(pt.Name(), "validate", fmt.Sprintf("goal %s has no target date", base.ID), nil)
	}
	return nil
}

func (pt *PostponeTarget) Apply(base *domain.Goal) (*domain.Goal, error) {
	modified := base.Clone()
	modified.TargetDate = dateutil.AddMonths(base.TargetDate, pt.Months)
	return &modified, nil
}

// SetTargetDate sets a goal's target date to an absolute date.
type SetTargetDate struct {
	Date time.Time
}

func (st *SetTargetDate) Name() string {
	return "set_target_date"
}

func (st *SetTargetDate) Description() string {
	return fmt.Sprintf("Set target date to %s", st.Date.Format("2006-01-02"))
}

func (st *SetTargetDate) Validate(base *domain.Goal) error {
	if st.Date.IsZero() {
		return NewTransformError(st.Name(), "validate", "date cannot be empty", nil)
	}
	return validateBase(st.Name(), base)
}

func (st *SetTargetDate) Apply(base *domain.Goal) (*domain.Goal, error) {
	modified := base.Clone()
	modified.TargetDate = dateutil.Midday(st.Date)
	return &modified, nil
}

// AddBonus schedules an extra one-time deposit.
type AddBonus struct {
	Month  int
	Amount float64
	Note   string
}

func (ab *AddBonus) Name() string {
	return "add_bonus"
}

func (ab *AddBonus) Description() string {
	return fmt.Sprintf("Add bonus of %.2f at month %d", ab.Amount, ab.Month)
}

func (ab *AddBonus) Validate(base *domain.Goal) error {
	if ab.Month < 1 {
		return NewTransformError(ab.Name(), "validate", fmt.Sprintf("month must be at least 1, got %d", ab.Month), nil)
	}
	if !finite(ab.Amount) || ab.Amount <= 0 {
		return NewTransformError(ab.Name(), "validate", fmt.Sprintf("amount must be positive, got %v", ab.Amount), nil)
	}
	return validateBase(ab.Name(), base)
}

func (ab *AddBonus) Apply(base *domain.Goal) (*domain.Goal, error) {
	modified := base.Clone()
	modified.Bonuses = append(modified.Bonuses, domain.Bonus{
		Month:       ab.Month,
		Amount:      ab.Amount,
		Description: ab.Note,
	})
	return &modified, nil
}

// SetExistingCapital replaces the capital already allocated to a goal.
type SetExistingCapital struct {
	Amount float64
}

func (se *SetExistingCapital) Name() string {
	return "set_existing_capital"
}

func (se *SetExistingCapital) Description() string {
	return fmt.Sprintf("Set existing capital to %.2f", se.Amount)
}

func (se *SetExistingCapital) Validate(base *domain.Goal) error {
	if !finite(se.Amount) || se.Amount < 0 {
		return NewTransformError(se.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %v", se.Amount), nil)
	}
	return validateBase(se.Name(), base)
}

func (se *SetExistingCapital) Apply(base *domain.Goal) (*domain.Goal, error) {
	modified := base.Clone()
	modified.ExistingCapital = se.Amount
	return &modified, nil
}

// SetProgressive switches a goal to a growing payment schedule.
type SetProgressive struct {
	Increase float64
}

func (sp *SetProgressive) Name() string {
	return "set_progressive"
}

func (sp *SetProgressive) Description() string {
	return fmt.Sprintf("Switch to progressive savings growing %.2f per month", sp.Increase)
}

func (sp *SetProgressive) Validate(base *domain.Goal) error {
	if !finite(sp.Increase) || sp.Increase < 0 {
		return NewTransformError(sp.Name(), "validate", fmt.Sprintf("increase must be non-negative, got %v", sp.Increase), nil)
	}
	return validateBase(sp.Name(), base)
}

func (sp *SetProgressive) Apply(base *domain.Goal) (*domain.Goal, error) {
	modified := base.Clone()
	modified.SavingsType = domain.SavingsProgressive
	modified.MonthlyIncrease = sp.Increase
	return &modified, nil
}
