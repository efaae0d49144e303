package compare

import (
	"context"

	"go.uber.org/zap"

	"github.com/mycotrack/mycotrack/pkg/apperrors"
	"github.com/mycotrack/mycotrack/pkg/client"
	"github.com/mycotrack/mycotrack/pkg/models"
)

const opCompare = "compare batches"

// Comparer requests comparisons for a selection.
type Comparer struct {
	api    client.API
	logger *zap.Logger
}

// NewComparer creates a Comparer backed by api.
func NewComparer(api client.API, logger *zap.Logger) *Comparer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparer{api: api, logger: logger.Named("compare")}
}

// Compare fetches the comparison for the selected batches.
// A selection with fewer than two batches is rejected without contacting the service.
func (c *Comparer) Compare(ctx context.Context, sel *Selection) (*models.Comparison, error) {
	if sel == nil || !sel.Ready() {
		n := 0
		if sel != nil {
			n = sel.Len()
		}
		return nil, apperrors.Validationf(opCompare, "select at least %d batches to compare (have %d)", MinBatches, n)
	}

	ids := sel.IDs()
	result, err := c.api.CompareBatches(ctx, ids)
	if err != nil {
		c.logger.Warn("Comparison failed", zap.Ints("batch_ids", ids), zap.Error(err))
		return nil, err
	}

	c.logger.Debug("Comparison loaded",
		zap.Ints("batch_ids", ids),
		zap.Int("yield_rows", len(result.YieldComparison)),
		zap.Int("condition_rows", len(result.AverageConditions)),
	)
	return result, nil
}
