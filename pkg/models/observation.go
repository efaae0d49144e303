package models

import (
	"encoding/json"

	"github.com/mycotrack/mycotrack/pkg/apperrors"
)

// CO2Level is the categorical CO2 reading of an observation.
type CO2Level string

const (
	CO2Low    CO2Level = "low"
	CO2Medium CO2Level = "medium"
	CO2High   CO2Level = "high"
)

// Valid reports whether l is one of the known levels.
func (l CO2Level) Valid() bool {
	switch l {
	case CO2Low, CO2Medium, CO2High:
		return true
	}
	return false
}

// Observation is a dated environmental measurement for a batch.
type Observation struct {
	ID                        int                `json:"observation_id"`
	BatchID                   int                `json:"batch_id"`
	Date                      Date               `json:"date"`
	AmbientTemperatureCelsius Optional[float64]  `json:"ambient_temperature_celsius,omitzero"`
	RelativeHumidityPercent   Optional[float64]  `json:"relative_humidity_percent,omitzero"`
	CO2Level                  Optional[CO2Level] `json:"CO2_level,omitzero"`
	LightHoursPerDay          Optional[float64]  `json:"light_hours_per_day,omitzero"`
}

// UnmarshalJSON accepts string-encoded identifiers.
func (o *Observation) UnmarshalJSON(data []byte) error {
	type alias Observation
	aux := struct {
		*alias
		ID      json.RawMessage `json:"observation_id"`
		BatchID json.RawMessage `json:"batch_id"`
	}{alias: (*alias)(o)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if o.ID, err = decodeInt(aux.ID, "observation_id"); err != nil {
		return err
	}
	if o.BatchID, err = decodeInt(aux.BatchID, "batch_id"); err != nil {
		return err
	}
	return nil
}

// NewObservation is the payload for logging an observation.
type NewObservation struct {
	Date                      Date               `json:"date"`
	AmbientTemperatureCelsius Optional[float64]  `json:"ambient_temperature_celsius,omitzero"`
	RelativeHumidityPercent   Optional[float64]  `json:"relative_humidity_percent,omitzero"`
	CO2Level                  Optional[CO2Level] `json:"CO2_level,omitzero"`
	LightHoursPerDay          Optional[float64]  `json:"light_hours_per_day,omitzero"`
}

// Validate checks the payload before it is sent.
func (n NewObservation) Validate() error {
	const op = "create observation"
	if n.Date.IsZero() {
		return apperrors.Validation(op, "date is required")
	}
	if h, ok := n.RelativeHumidityPercent.Get(); ok {
		if err := checkPercent(op, "relative humidity", h); err != nil {
			return err
		}
	}
	if l, ok := n.LightHoursPerDay.Get(); ok && (l < 0 || l > 24) {
		return apperrors.Validationf(op, "light hours must be between 0 and 24, got %g", l)
	}
	if c, ok := n.CO2Level.Get(); ok && !c.Valid() {
		return apperrors.Validationf(op, "CO2 level must be low, medium or high, got %q", c)
	}
	return nil
}
