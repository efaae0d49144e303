// Package models contains domain types for mycotrack.
package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mycotrack/mycotrack/pkg/apperrors"
	"github.com/mycotrack/mycotrack/pkg/jsonutil"
)

// Batch is one cultivation run being tracked.
type Batch struct {
	ID                       int     `json:"batch_id"`
	Username                 string  `json:"username,omitempty"`
	SubstrateType            string  `json:"substrate_type"`
	SubstrateMoisturePercent float64 `json:"substrate_moisture_percent"`
	SpawnRatePercent         float64 `json:"spawn_rate_percent"`
	StartDate                Date    `json:"start_date"`
}

// DisplayName returns "{username} - Batch #{id}", or "Batch #{id}" when no owner is recorded.
func (b Batch) DisplayName() string {
	if b.Username != "" {
		return fmt.Sprintf("%s - Batch #%d", b.Username, b.ID)
	}
	return fmt.Sprintf("Batch #%d", b.ID)
}

// UnmarshalJSON accepts string-encoded percentages.
func (b *Batch) UnmarshalJSON(data []byte) error {
	type alias Batch
	aux := struct {
		*alias
		ID       json.RawMessage `json:"batch_id"`
		Moisture json.RawMessage `json:"substrate_moisture_percent"`
		Spawn    json.RawMessage `json:"spawn_rate_percent"`
	}{alias: (*alias)(b)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if b.ID, err = decodeInt(aux.ID, "batch_id"); err != nil {
		return err
	}
	if b.SubstrateMoisturePercent, err = decodeFloat(aux.Moisture, "substrate_moisture_percent"); err != nil {
		return err
	}
	if b.SpawnRatePercent, err = decodeFloat(aux.Spawn, "spawn_rate_percent"); err != nil {
		return err
	}
	return nil
}

// NewBatch is the payload for creating a batch.
type NewBatch struct {
	Username                 string  `json:"username,omitempty"`
	SubstrateType            string  `json:"substrate_type"`
	SubstrateMoisturePercent float64 `json:"substrate_moisture_percent"`
	SpawnRatePercent         float64 `json:"spawn_rate_percent"`
	StartDate                Date    `json:"start_date"`
}

// Validate checks the payload before it is sent.
func (n NewBatch) Validate() error {
	const op = "create batch"
	if strings.TrimSpace(n.SubstrateType) == "" {
		return apperrors.Validation(op, "substrate type is required")
	}
	if err := checkPercent(op, "substrate moisture", n.SubstrateMoisturePercent); err != nil {
		return err
	}
	if err := checkPercent(op, "spawn rate", n.SpawnRatePercent); err != nil {
		return err
	}
	if n.StartDate.IsZero() {
		return apperrors.Validation(op, "start date is required")
	}
	return nil
}

func checkPercent(op, field string, v float64) error {
	if v < 0 || v > 100 {
		return apperrors.Validationf(op, "%s must be between 0 and 100, got %g", field, v)
	}
	return nil
}

func decodeFloat(raw json.RawMessage, field string) (float64, error) {
	f, _, err := jsonutil.FlexibleFloat(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return f, nil
}

func decodeInt(raw json.RawMessage, field string) (int, error) {
	n, _, err := jsonutil.FlexibleInt(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return n, nil
}
