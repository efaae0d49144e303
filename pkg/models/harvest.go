package models

import (
	"encoding/json"

	"github.com/mycotrack/mycotrack/pkg/apperrors"
)

// Harvest is one flush collected from a batch.
// Flush numbers are assigned by the grower and are neither contiguous nor unique.
type Harvest struct {
	ID                int               `json:"harvest_id"`
	BatchID           int               `json:"batch_id"`
	FlushNumber       int               `json:"flush_number"`
	FlushYieldKg      float64           `json:"flush_yield_kg"`
	TotalBatchYieldKg Optional[float64] `json:"total_batch_yield_kg,omitzero"`
	Date              Optional[Date]    `json:"date,omitzero"`
}

// UnmarshalJSON accepts string-encoded numbers.
func (h *Harvest) UnmarshalJSON(data []byte) error {
	type alias Harvest
	aux := struct {
		*alias
		ID          json.RawMessage `json:"harvest_id"`
		BatchID     json.RawMessage `json:"batch_id"`
		FlushNumber json.RawMessage `json:"flush_number"`
		FlushYield  json.RawMessage `json:"flush_yield_kg"`
	}{alias: (*alias)(h)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	var err error
	if h.ID, err = decodeInt(aux.ID, "harvest_id"); err != nil {
		return err
	}
	if h.BatchID, err = decodeInt(aux.BatchID, "batch_id"); err != nil {
		return err
	}
	if h.FlushNumber, err = decodeInt(aux.FlushNumber, "flush_number"); err != nil {
		return err
	}
	if h.FlushYieldKg, err = decodeFloat(aux.FlushYield, "flush_yield_kg"); err != nil {
		return err
	}
	return nil
}

// NextFlushNumber returns the highest recorded flush number plus one, or 1 when
// nothing has been harvested. Gaps are kept; duplicates are not detected.
func NextFlushNumber(harvests []Harvest) int {
	next := 1
	for _, h := range harvests {
		if h.FlushNumber+1 > next {
			next = h.FlushNumber + 1
		}
	}
	return next
}

// NewHarvest is the payload for recording a flush.
type NewHarvest struct {
	FlushNumber       int               `json:"flush_number"`
	FlushYieldKg      float64           `json:"flush_yield_kg"`
	TotalBatchYieldKg Optional[float64] `json:"total_batch_yield_kg,omitzero"`
	Date              Optional[Date]    `json:"date,omitzero"`
}

// Validate checks the payload before it is sent.
func (n NewHarvest) Validate() error {
	const op = "create harvest"
	if n.FlushNumber < 1 {
		return apperrors.Validationf(op, "flush number must be at least 1, got %d", n.FlushNumber)
	}
	if n.FlushYieldKg < 0 {
		return apperrors.Validationf(op, "flush yield must not be negative, got %g", n.FlushYieldKg)
	}
	if total, ok := n.TotalBatchYieldKg.Get(); ok && total < 0 {
		return apperrors.Validationf(op, "total batch yield must not be negative, got %g", total)
	}
	return nil
}
