package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rgehrsitz/goalplan/internal/dateutil"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (GoalTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("shift_rate", createShiftRate)
	registry.Register("pin_payment", createPinPayment)
	registry.Register("postpone_target", createPostponeTarget)
	registry.Register("set_target_date", createSetTargetDate)
	registry.Register("add_bonus", createAddBonus)
	registry.Register("set_existing_capital", createSetExistingCapital)
	registry.Register("set_progressive", createSetProgressive)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (GoalTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms in alphabetical order.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a single transform string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "add_bonus:month=12,amount=5000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (GoalTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// ParseTransformSpecs parses several specs in order
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]GoalTransform, error) {
	out := make([]GoalTransform, 0, len(specs))
	for _, s := range specs {
		t, err := r.ParseTransformSpec(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func requireParam(transform string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	return v, nil
}

func parseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount value: %w", err)
	}
	return d.InexactFloat64(), nil
}

// Factory functions for each transform

func createShiftRate(params map[string]string) (GoalTransform, error) {
	s, err := requireParam("shift_rate", params, "points")
	if err != nil {
		return nil, err
	}
	points, err := parseAmount(s)
	if err != nil {
		return nil, err
	}
	return &ShiftRate{Points: points}, nil
}

func createPinPayment(params map[string]string) (GoalTransform, error) {
	s, err := requireParam("pin_payment", params, "amount")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(s)
	if err != nil {
		return nil, err
	}

	mode := domain.ModeAmountPayment
	if m, ok := params["mode"]; ok {
		parsed, valid := domain.ParseCalculationMode(m)
		if !valid || !parsed.IsUserFixed() {
			return nil, fmt.Errorf("pin_payment mode must be amount_payment or date_payment, got %s", m)
		}
		mode = parsed
	}

	return &PinPayment{Payment: amount, Mode: mode}, nil
}

func createPostponeTarget(params map[string]string) (GoalTransform, error) {
	s, err := requireParam("postpone_target", params, "months")
	if err != nil {
		return nil, err
	}
	months, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("invalid months value: %w", err)
	}
	return &PostponeTarget{Months: months}, nil
}

func createSetTargetDate(params map[string]string) (GoalTransform, error) {
	s, err := requireParam("set_target_date", params, "date")
	if err != nil {
		return nil, err
	}
	date, err := dateutil.ParseDate(s, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}
	return &SetTargetDate{Date: date}, nil
}

func createAddBonus(params map[string]string) (GoalTransform, error) {
	ms, err := requireParam("add_bonus", params, "month")
	if err != nil {
		return nil, err
	}
	month, err := strconv.Atoi(ms)
	if err != nil {
		return nil, fmt.Errorf("invalid month value: %w", err)
	}
	as, err := requireParam("add_bonus", params, "amount")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(as)
	if err != nil {
		return nil, err
	}
	return &AddBonus{Month: month, Amount: amount, Note: params["description"]}, nil
}

func createSetExistingCapital(params map[string]string) (GoalTransform, error) {
	s, err := requireParam("set_existing_capital", params, "amount")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(s)
	if err != nil {
		return nil, err
	}
	return &SetExistingCapital{Amount: amount}, nil
}

func createSetProgressive(params map[string]string) (GoalTransform, error) {
	s, err := requireParam("set_progressive", params, "increase")
	if err != nil {
		return nil, err
	}
	inc, err := parseAmount(s)
	if err != nil {
		return nil, err
	}
	return &SetProgressive{Increase: inc}, nil
}
