package insights

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mycotrack/mycotrack/pkg/models"
)

func decode(t *testing.T, raw string) *models.Insights {
	t.Helper()
	var p models.Insights
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return &p
}

func kinds(sections []Section) []Kind {
	var out []Kind
	for _, s := range sections {
		out = append(out, s.Kind)
	}
	return out
}

func TestSections_EmptyListIsOmitted(t *testing.T) {
	r := Render(decode(t, `{"warnings": [], "summary": "ok"}`))

	require.False(t, r.IsPlaceholder())
	require.Len(t, r.Sections, 1)
	assert.Equal(t, Section{Kind: KindSummary, Title: "Summary", Text: "ok"}, r.Sections[0])
}

func TestSections_FixedOrder(t *testing.T) {
	p := decode(t, `{
		"summary": "Steady growth",
		"trends": ["Humidity rising"],
		"suggestions": ["Increase fresh air exchange"],
		"anomalies": ["Temperature spike on Jan 4"],
		"warnings": ["CO2 high"]
	}`)

	got := Sections(p)

	assert.Equal(t, []Kind{KindWarnings, KindAnomalies, KindSuggestions, KindTrends, KindSummary}, kinds(got))
	assert.Equal(t, []string{"CO2 high"}, got[0].Items)
	assert.Equal(t, "Steady growth", got[4].Text)
}

func TestRender_Placeholder(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty object", raw: `{}`},
		{name: "explicit nulls", raw: `{"warnings": null, "summary": null}`},
		{name: "empty values", raw: `{"warnings": [], "anomalies": [], "suggestions": [], "trends": [], "summary": ""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Render(decode(t, tt.raw))
			assert.True(t, r.IsPlaceholder())
			assert.Equal(t, NoInsightsMessage, r.Placeholder)
			assert.Empty(t, r.Sections)
		})
	}

	assert.Equal(t, NoInsightsMessage, Render(nil).Placeholder)
}

func TestSections_PartialPayload(t *testing.T) {
	p := &models.Insights{
		Anomalies: models.Some([]string{"Yield dropped 40% between flushes"}),
		Trends:    models.Some([]string{}),
	}

	assert.Equal(t, []Kind{KindAnomalies}, kinds(Sections(p)))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "success", StateSuccess.String())
	assert.Equal(t, "failure", StateFailure.String())
	assert.Equal(t, "unknown", State(99).String())
}
