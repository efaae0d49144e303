package compare

import "github.com/mycotrack/mycotrack/pkg/models"

// SectionKind identifies one collection of a comparison result.
type SectionKind string

const (
	SectionYield      SectionKind = "yield_comparison"
	SectionConditions SectionKind = "average_conditions"
	SectionInsights   SectionKind = "insights"
)

// EmptyMessage is shown when a comparison has nothing to display.
const EmptyMessage = "comparison produced no distinguishing data"

// Section is one non-empty collection of a comparison, ready to render.
type Section struct {
	Kind       SectionKind
	Title      string
	Yields     []models.YieldTotal
	Conditions []models.AverageConditions
	Insights   []string
}

// Sections returns the non-empty collections of result in display order:
// yield totals, average conditions, insights.
func Sections(result *models.Comparison) []Section {
	if result == nil {
		return nil
	}

	var sections []Section
	if len(result.YieldComparison) > 0 {
		sections = append(sections, Section{Kind: SectionYield, Title: "Total Yield", Yields: result.YieldComparison})
	}
	if len(result.AverageConditions) > 0 {
		sections = append(sections, Section{Kind: SectionConditions, Title: "Average Conditions", Conditions: result.AverageConditions})
	}
	if len(result.Insights) > 0 {
		sections = append(sections, Section{Kind: SectionInsights, Title: "Insights", Insights: result.Insights})
	}
	return sections
}

// IsEmpty reports whether result has no collection worth rendering.
func IsEmpty(result *models.Comparison) bool {
	return len(Sections(result)) == 0
}
