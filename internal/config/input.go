package config

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	gojson "github.com/goccy/go-json"
	"github.com/rgehrsitz/goalplan/internal/domain"
	"gopkg.in/yaml.v3"
)

// Format identifies a plan file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the encoding from a file extension, defaulting to YAML
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// InputParser handles parsing of plan files
type InputParser struct {
	// Now supplies the instant used for goals without a valid target date
	Now func() time.Time
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{Now: time.Now}
}

func (ip *InputParser) now() time.Time {
	if ip.Now == nil {
		return time.Now()
	}
	return ip.Now()
}

// LoadFromFile loads a plan from a YAML, JSON or TOML file and validates it
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	plan, err := ip.Parse(data, FormatFromPath(filename))
	if err != nil {
		return nil, err
	}

	if err := ip.ValidateConfiguration(plan); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return plan, nil
}

// Parse decodes and sanitizes a plan document without validating it
func (ip *InputParser) Parse(data []byte, format Format) (*domain.Plan, error) {
	raw, err := decodeRaw(data, format)
	if err != nil {
		return nil, err
	}
	plan := SanitizePlan(raw, ip.now())
	return &plan, nil
}

// ParseGoals decodes a goal list (or a full plan) and returns only its sanitized goals
func (ip *InputParser) ParseGoals(data []byte, format Format) ([]domain.Goal, error) {
	plan, err := ip.Parse(data, format)
	if err != nil {
		return nil, err
	}
	return plan.Goals, nil
}

func decodeRaw(data []byte, format Format) (any, error) {
	var raw any
	switch format {
	case FormatJSON:
		dec := gojson.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	case FormatTOML:
		m := map[string]any{}
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
		raw = m
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	return raw, nil
}

// ValidationError describes one structural problem in a plan
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateConfiguration checks structural rules the sanitizer cannot repair. The engine
// accepts any sanitized plan; these rules exist for the CLI.
func (ip *InputParser) ValidateConfiguration(plan *domain.Plan) error {
	if plan == nil {
		return &ValidationError{Field: "plan", Message: "plan is required"}
	}
	if err := ip.validateSettings(&plan.Settings); err != nil {
		return fmt.Errorf("settings validation failed: %w", err)
	}

	seen := make(map[string]int, len(plan.Goals))
	for i := range plan.Goals {
		g := &plan.Goals[i]
		if prev, dup := seen[g.ID]; dup {
			return &ValidationError{
				Field:   fmt.Sprintf("goals[%d].id", i),
				Message: fmt.Sprintf("duplicate id %q (also goals[%d])", g.ID, prev),
			}
		}
		seen[g.ID] = i
		if err := ip.validateGoal(i, g); err != nil {
			return fmt.Errorf("goal %d (%s) validation failed: %w", i, g.Name, err)
		}
	}
	return nil
}

func (ip *InputParser) validateSettings(s *domain.Settings) error {
	if s.ComputeReal && s.InflationAnnualPct < 0 {
		return &ValidationError{Field: "inflation_annual_pct", Message: "must be non-negative when compute_real is set"}
	}
	if s.GeneralInterestRate <= -100 {
		return &ValidationError{Field: "general_interest_rate", Message: "must be greater than -100"}
	}
	if s.GlobalAnnualRate <= -100 {
		return &ValidationError{Field: "global_annual_rate", Message: "must be greater than -100"}
	}
	return nil
}

func (ip *InputParser) validateGoal(index int, g *domain.Goal) error {
	if strings.TrimSpace(g.ID) == "" {
		return &ValidationError{Field: "id", Message: "is required"}
	}
	if strings.TrimSpace(g.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if g.Amount <= 0 {
		return &ValidationError{Field: "amount", Message: "must be positive"}
	}
	if g.RateAnnual <= -100 || math.IsNaN(g.RateAnnual) {
		return &ValidationError{Field: "rate_annual", Message: "must be greater than -100"}
	}
	if g.TargetDate.IsZero() {
		return &ValidationError{Field: "target_date", Message: "is required"}
	}
	for j, b := range g.Bonuses {
		if b.Month < 1 {
			return &ValidationError{Field: fmt.Sprintf("bonuses[%d].month", j), Message: "must be at least 1"}
		}
	}
	return nil
}

// SavePlan writes a plan in the encoding chosen by the file extension
func (ip *InputParser) SavePlan(plan *domain.Plan, filename string) error {
	data, err := EncodePlan(plan, FormatFromPath(filename))
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// EncodePlan serializes a plan; dates are written as RFC 3339
func EncodePlan(plan *domain.Plan, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := gojson.MarshalIndent(plan, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return data, nil
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(plan); err != nil {
			return nil, fmt.Errorf("failed to encode TOML: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		data, err := yaml.Marshal(plan)
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
