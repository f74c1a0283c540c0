package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
	"github.com/rgehrsitz/goalplan/internal/planner"
	"github.com/rgehrsitz/goalplan/internal/transform"
)

// DefaultBaseName labels the unmodified plan
const DefaultBaseName = "base"

// CompareEngine orchestrates what-if comparison of a plan
type CompareEngine struct {
	Planner           *planner.Planner
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine with the built-in templates
func NewCompareEngine(p *planner.Planner) *CompareEngine {
	if p == nil {
		p = planner.NewPlanner(nil, 0)
	}
	return &CompareEngine{
		Planner:           p,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string               // Label of the unmodified plan
	Templates        []string             // Registered template names to apply
	Scenarios        []transform.Template // Ad-hoc scenarios, applied after the templates
}

// Compare reports the base plan and every requested scenario at sc
func (ce *CompareEngine) Compare(
	ctx context.Context,
	plan domain.Plan,
	sc domain.ScenarioContext,
	options CompareOptions,
) (*ComparisonSet, error) {

	scenarios := make([]transform.Template, 0, len(options.Templates)+len(options.Scenarios))
	for _, name := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(name)
		if !ok {
			return nil, fmt.Errorf("template %s not found", name)
		}
		scenarios = append(scenarios, template)
	}
	scenarios = append(scenarios, options.Scenarios...)
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios to compare")
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = DefaultBaseName
	}

	baseReport := ce.Planner.BuildReport(plan, sc)
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, &baseReport)
	baseResult.Description = "Plan as given"

	alternatives := make([]ComparisonResult, 0, len(scenarios))
	for _, template := range scenarios {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		modified, err := transform.ApplyTemplate(plan, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", template.Name, err)
		}

		report := ce.Planner.BuildReport(modified, sc)
		altResult := ce.MetricsCalculator.CalculateMetrics(template.Name, &report)
		altResult.Description = template.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)

		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
