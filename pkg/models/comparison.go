package models

import "encoding/json"

// YieldTotal is the total yield of one batch in a comparison.
type YieldTotal struct {
	BatchID    int     `json:"batch_id"`
	TotalYield float64 `json:"total_yield"`
}

// UnmarshalJSON accepts string-encoded numbers.
func (y *YieldTotal) UnmarshalJSON(data []byte) error {
	var aux struct {
		BatchID    json.RawMessage `json:"batch_id"`
		TotalYield json.RawMessage `json:"total_yield"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if y.BatchID, err = decodeInt(aux.BatchID, "batch_id"); err != nil {
		return err
	}
	if y.TotalYield, err = decodeFloat(aux.TotalYield, "total_yield"); err != nil {
		return err
	}
	return nil
}

// AverageConditions are the mean environmental readings of one batch.
// Averages are absent for batches without matching observations.
type AverageConditions struct {
	BatchID        int               `json:"batch_id"`
	AvgTemperature Optional[float64] `json:"avg_temperature,omitzero"`
	AvgHumidity    Optional[float64] `json:"avg_humidity,omitzero"`
}

// Comparison is the server-computed aggregate across selected batches.
type Comparison struct {
	YieldComparison   []YieldTotal        `json:"yield_comparison,omitempty"`
	AverageConditions []AverageConditions `json:"average_conditions,omitempty"`
	Insights          []string            `json:"insights,omitempty"`
}
