// Package insights turns the service's sparse insight payload into displayable sections
// and tracks the load state of an insight view.
package insights

import "github.com/mycotrack/mycotrack/pkg/models"

// Kind identifies an insight section.
type Kind string

const (
	KindWarnings    Kind = "warnings"
	KindAnomalies   Kind = "anomalies"
	KindSuggestions Kind = "suggestions"
	KindTrends      Kind = "trends"
	KindSummary     Kind = "summary"
)

// Placeholders shown instead of sections.
const (
	NoInsightsMessage = "No insights yet. Keep logging observations and harvests."
	NoDataMessage     = "No data logged yet. Add observations or harvests to generate insights."
)

// Section is one present part of an insight payload.
// List sections carry Items; the summary section carries Text.
type Section struct {
	Kind  Kind     `json:"kind"`
	Title string   `json:"title"`
	Items []string `json:"items,omitempty"`
	Text  string   `json:"text,omitempty"`
}

// Rendering is either a list of sections or a single placeholder, never both.
type Rendering struct {
	Sections    []Section `json:"sections,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
}

// IsPlaceholder reports whether the rendering shows a placeholder.
func (r Rendering) IsPlaceholder() bool {
	return r.Placeholder != ""
}

var listSections = []struct {
	kind  Kind
	title string
	field func(*models.Insights) models.Optional[[]string]
}{
	{KindWarnings, "Warnings", func(p *models.Insights) models.Optional[[]string] { return p.Warnings }},
	{KindAnomalies, "Anomalies", func(p *models.Insights) models.Optional[[]string] { return p.Anomalies }},
	{KindSuggestions, "Suggestions", func(p *models.Insights) models.Optional[[]string] { return p.Suggestions }},
	{KindTrends, "Trends", func(p *models.Insights) models.Optional[[]string] { return p.Trends }},
}

// Sections returns the present sections of p in the order warnings, anomalies,
// suggestions, trends, summary. Empty lists and an empty summary are left out.
func Sections(p *models.Insights) []Section {
	if p == nil {
		return nil
	}

	var sections []Section
	for _, ls := range listSections {
		items, ok := ls.field(p).Get()
		if !ok || len(items) == 0 {
			continue
		}
		sections = append(sections, Section{Kind: ls.kind, Title: ls.title, Items: items})
	}

	if summary, ok := p.Summary.Get(); ok && summary != "" {
		sections = append(sections, Section{Kind: KindSummary, Title: "Summary", Text: summary})
	}
	return sections
}

// Render returns the sections of p, or the "no insights yet" placeholder when none are present.
func Render(p *models.Insights) Rendering {
	sections := Sections(p)
	if len(sections) == 0 {
		return Rendering{Placeholder: NoInsightsMessage}
	}
	return Rendering{Sections: sections}
}
