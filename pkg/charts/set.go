package charts

import (
	"slices"

	"github.com/mycotrack/mycotrack/pkg/models"
)

// Status classifies what a chart view should show.
type Status int

const (
	// StatusNoData means nothing has been logged for the batch yet.
	StatusNoData Status = iota
	// StatusInsufficient means data exists but every series came out empty.
	StatusInsufficient
	// StatusReady means at least one series has points.
	StatusReady
)

// String returns a human-readable string for the status.
func (s Status) String() string {
	switch s {
	case StatusNoData:
		return "no-data"
	case StatusInsufficient:
		return "insufficient"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Set holds the collected series for one batch.
type Set struct {
	YieldPerFlush    []FlushPoint       `json:"yield_per_flush"`
	HumidityYield    []CorrelationPoint `json:"humidity_yield"`
	TemperatureYield []CorrelationPoint `json:"temperature_yield"`
	Status           Status             `json:"status"`
}

// Build collects all three series and classifies the result.
// The join needs both sides: when either input is empty every series is empty,
// including yield-per-flush.
func Build(observations []models.Observation, harvests []models.Harvest) Set {
	set := Set{
		YieldPerFlush:    []FlushPoint{},
		HumidityYield:    []CorrelationPoint{},
		TemperatureYield: []CorrelationPoint{},
	}

	if len(observations) > 0 && len(harvests) > 0 {
		set.YieldPerFlush = slices.AppendSeq(set.YieldPerFlush, YieldPerFlush(harvests))
		set.HumidityYield = slices.AppendSeq(set.HumidityYield, HumidityYield(observations, harvests))
		set.TemperatureYield = slices.AppendSeq(set.TemperatureYield, TemperatureYield(observations, harvests))
	}

	switch {
	case len(observations) == 0 && len(harvests) == 0:
		set.Status = StatusNoData
	case set.IsEmpty():
		set.Status = StatusInsufficient
	default:
		set.Status = StatusReady
	}
	return set
}

// IsEmpty reports whether every series is empty.
func (s Set) IsEmpty() bool {
	return len(s.YieldPerFlush) == 0 && len(s.HumidityYield) == 0 && len(s.TemperatureYield) == 0
}
