package models

// Insights is the server-computed analysis of a batch.
// Every field may be absent; all absent means "no insights yet".
type Insights struct {
	Warnings    Optional[[]string] `json:"warnings,omitzero"`
	Anomalies   Optional[[]string] `json:"anomalies,omitzero"`
	Suggestions Optional[[]string] `json:"suggestions,omitzero"`
	Trends      Optional[[]string] `json:"trends,omitzero"`
	Summary     Optional[string]   `json:"summary,omitzero"`
}
