// Package views holds the per-screen state of the dashboard. Each view owns
// its fetched snapshot and reports failures as displayable messages.
package views

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/mycotrack/mycotrack/pkg/apperrors"
	"github.com/mycotrack/mycotrack/pkg/client"
	"github.com/mycotrack/mycotrack/pkg/models"
)

// BatchList is the list of batches on the home screen.
type BatchList struct {
	api    client.API
	logger *zap.Logger

	mu      sync.Mutex
	batches []models.Batch
	err     error
}

// NewBatchList creates an empty batch list.
func NewBatchList(api client.API, logger *zap.Logger) *BatchList {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchList{api: api, logger: logger.Named("batch_list")}
}

// Load fetches the batches. The list is replaced only on success; on failure
// the previous list is kept and the error is recorded.
func (l *BatchList) Load(ctx context.Context) error {
	batches, err := l.api.ListBatches(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		l.err = err
		l.logger.Warn("Failed to load batches", zap.Error(err))
		return err
	}
	if batches == nil {
		batches = []models.Batch{}
	}
	l.batches = batches
	l.err = nil
	return nil
}

// Create adds a batch and reloads the list.
func (l *BatchList) Create(ctx context.Context, batch models.NewBatch) (*models.Batch, error) {
	created, err := l.api.CreateBatch(ctx, batch)
	if err != nil {
		return nil, err
	}
	l.logger.Info("Batch created", zap.Int("batch_id", created.ID))

	// The batch exists; a failed refresh is recorded on the list, not returned.
	_ = l.Load(ctx)
	return created, nil
}

// Batches returns a copy of the loaded batches.
func (l *BatchList) Batches() []models.Batch {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.batches)
}

// Err returns the error of the latest load, if it failed.
func (l *BatchList) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Message returns the displayable failure message, or "".
func (l *BatchList) Message() string {
	return apperrors.UserMessage(l.Err())
}
