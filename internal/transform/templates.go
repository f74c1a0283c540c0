package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// TemplateRegistry manages named what-if scenarios
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms applied to every goal of a plan
type Template struct {
	Name        string
	Description string
	Transforms  []GoalTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if scenarios
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	// Target timing
	registry.Register(Template{
		Name:        "postpone_6mo",
		Description: "Postpone every target date by 6 months",
		Transforms:  []GoalTransform{&PostponeTarget{Months: 6}},
	})
	registry.Register(Template{
		Name:        "postpone_1yr",
		Description: "Postpone every target date by 1 year (12 months)",
		Transforms:  []GoalTransform{&PostponeTarget{Months: 12}},
	})
	registry.Register(Template{
		Name:        "postpone_2yr",
		Description: "Postpone every target date by 2 years (24 months)",
		Transforms:  []GoalTransform{&PostponeTarget{Months: 24}},
	})

	// Interest rates
	registry.Register(Template{
		Name:        "rate_up_1",
		Description: "Every goal earns 1 point more a year",
		Transforms:  []GoalTransform{&ShiftRate{Points: 1}},
	})
	registry.Register(Template{
		Name:        "rate_down_1",
		Description: "Every goal earns 1 point less a year",
		Transforms:  []GoalTransform{&ShiftRate{Points: -1}},
	})
	registry.Register(Template{
		Name:        "rate_down_2",
		Description: "Every goal earns 2 points less a year",
		Transforms:  []GoalTransform{&ShiftRate{Points: -2}},
	})

	// Savings schedule
	registry.Register(Template{
		Name:        "progressive_50",
		Description: "Switch every goal to progressive savings growing 50 per month",
		Transforms:  []GoalTransform{&SetProgressive{Increase: 50}},
	})
	registry.Register(Template{
		Name:        "progressive_100",
		Description: "Switch every goal to progressive savings growing 100 per month",
		Transforms:  []GoalTransform{&SetProgressive{Increase: 100}},
	})

	// Combination strategies
	registry.Register(Template{
		Name:        "conservative",
		Description: "Rates 2 points lower, targets postponed by 6 months",
		Transforms: []GoalTransform{
			&ShiftRate{Points: -2},
			&PostponeTarget{Months: 6},
		},
	})
	registry.Register(Template{
		Name:        "patient",
		Description: "Rates 1 point lower, targets postponed by 1 year",
		Transforms: []GoalTransform{
			&ShiftRate{Points: -1},
			&PostponeTarget{Months: 12},
		},
	})

	return registry
}

// ApplyTemplate applies a template to every goal of a plan; the base plan is not modified
func ApplyTemplate(base domain.Plan, template Template) (domain.Plan, error) {
	goals, err := ApplyToAll(base.Goals, template.Transforms)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("template %s: %w", template.Name, err)
	}
	out := base
	out.Goals = goals
	return out, nil
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// ParseTemplate builds an ad-hoc template from "name=spec;spec", where each spec
// uses the transform syntax "shift_rate:points=-1"
func (r *TransformRegistry) ParseTemplate(s string) (Template, error) {
	name, specs, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Template{}, fmt.Errorf("invalid scenario %q, expected name=transform;transform", s)
	}

	var parts []string
	for _, p := range strings.Split(specs, ";") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return Template{}, fmt.Errorf("scenario %s has no transforms", name)
	}

	transforms, err := r.ParseTransformSpecs(parts)
	if err != nil {
		return Template{}, fmt.Errorf("scenario %s: %w", name, err)
	}

	descs := make([]string, len(transforms))
	for i, t := range transforms {
		descs[i] = t.Description()
	}
	return Template{Name: name, Description: strings.Join(descs, ", "), Transforms: transforms}, nil
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	order := []string{"Target Timing", "Interest Rates", "Savings Schedule", "Combination Strategies"}
	categories := make(map[string][]Template, len(order))

	for _, name := range registry.List() {
		template := registry.templates[name]
		switch {
		case strings.HasPrefix(name, "postpone_"):
			categories["Target Timing"] = append(categories["Target Timing"], template)
		case strings.HasPrefix(name, "rate_"):
			categories["Interest Rates"] = append(categories["Interest Rates"], template)
		case strings.HasPrefix(name, "progressive_"):
			categories["Savings Schedule"] = append(categories["Savings Schedule"], template)
		default:
			categories["Combination Strategies"] = append(categories["Combination Strategies"], template)
		}
	}

	for _, category := range order {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-20s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  goalplan compare plan.yaml --with postpone_1yr,rate_down_1\n")
	sb.WriteString("  goalplan compare plan.yaml --scenario \"lump=set_existing_capital:amount=5000\"\n")

	return sb.String()
}
