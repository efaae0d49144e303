package views

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mycotrack/mycotrack/pkg/apperrors"
	"github.com/mycotrack/mycotrack/pkg/client"
	"github.com/mycotrack/mycotrack/pkg/compare"
	"github.com/mycotrack/mycotrack/pkg/models"
)

// Comparison is the compare screen: a selection of batches and the latest result.
type Comparison struct {
	comparer *compare.Comparer

	logger   *zap.Logger

	mu         sync.Mutex
	generation uint64
	selection  *compare.Selection
	result     *models.Comparison
	err        error
}

// NewComparison creates a compare screen with an empty selection.
func NewComparison(api client.API, logger *zap.Logger) *Comparison {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Comparison{
		comparer:  compare.NewComparer(api, logger),
		logger:    logger.Named("comparison"),
		selection: compare.NewSelection(),
	}
}

// Toggle selects or deselects a batch and reports whether it is now selected.
func (c *Comparison) Toggle(batchID int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Toggle(batchID)
}

// Select adds a batch to the selection. Selecting a batch twice has no effect.
func (c *Comparison) Select(batchID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection.Add(batchID)
}

// Selected returns the selected batch ids in selection order.
func (c *Comparison) Selected() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.IDs()
}

// Ready reports whether the compare action is available.
func (c *Comparison) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection.Ready()
}

// Run compares the selected batches. The previous result is cleared first.
// If another Run starts before this one completes, its result is discarded
// and ErrSuperseded is returned.
func (c *Comparison) Run(ctx context.Context) (*models.Comparison, error) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	sel := compare.NewSelection(c.selection.IDs()...)
	c.result = nil
	c.err = nil
	c.mu.Unlock()

	result, err := c.comparer.Compare(ctx, sel)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("Discarding stale comparison",
			zap.Ints("batch_ids", sel.IDs()),
			zap.Uint64("generation", gen),
			zap.Uint64("current", c.generation),
		)
		return nil, ErrSuperseded
	}

	c.result, c.err = result, err
	return result, err
}

// Sections returns the renderable parts of the latest result.
func (c *Comparison) Sections() []compare.Section {
	c.mu.Lock()
	defer c.mu.Unlock()
	return compare.Sections(c.result)
}

// Empty reports whether a comparison ran successfully but produced nothing to show.
func (c *Comparison) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result != nil && compare.IsEmpty(c.result)
}

// Message returns the displayable failure message, or "".
func (c *Comparison) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return apperrors.UserMessage(c.err)
}
