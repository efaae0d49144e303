package views

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mycotrack/mycotrack/pkg/apperrors"
	"github.com/mycotrack/mycotrack/pkg/charts"
	"github.com/mycotrack/mycotrack/pkg/client"
	"github.com/mycotrack/mycotrack/pkg/insights"
	"github.com/mycotrack/mycotrack/pkg/models"
)

// ErrSuperseded is returned by a load whose result arrived after a newer load started.
var ErrSuperseded = errors.New("load superseded by a newer request")

// Detail is everything the batch screen shows, fetched together.
type Detail struct {
	Batch        models.Batch         `json:"batch"`
	Observations []models.Observation `json:"observations"`
	Harvests     []models.Harvest     `json:"harvests"`
	Charts       charts.Set           `json:"charts"`
	NextFlush    int                  `json:"next_flush_number"`
}

// ObservationsNewestFirst returns the observations ordered by date, latest first.
func (d *Detail) ObservationsNewestFirst() []models.Observation {
	out := slices.Clone(d.Observations)
	slices.SortStableFunc(out, func(a, b models.Observation) int {
		return b.Date.Compare(a.Date.Time)
	})
	return out
}

// HarvestsByFlush returns the harvests ordered by flush number.
func (d *Detail) HarvestsByFlush() []models.Harvest {
	out := slices.Clone(d.Harvests)
	slices.SortStableFunc(out, func(a, b models.Harvest) int {
		return cmp.Compare(a.FlushNumber, b.FlushNumber)
	})
	return out
}

// InsightKey returns the key an insight view should be synced to for this detail.
func (d *Detail) InsightKey() insights.Key {
	return insights.Key{
		BatchID:      d.Batch.ID,
		Observations: len(d.Observations),
		Harvests:     len(d.Harvests),
	}
}

// BatchDetail is the batch screen. It loads the batch, its observations and
// its harvests in parallel and shows them only when all three arrive.
type BatchDetail struct {
	api    client.API
	logger *zap.Logger

	mu         sync.Mutex
	generation uint64
	batchID    int
	detail     *Detail
	err        error
}

// NewBatchDetail creates a batch screen with nothing loaded.
func NewBatchDetail(api client.API, logger *zap.Logger) *BatchDetail {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BatchDetail{api: api, logger: logger.Named("batch_detail")}
}

// Open loads batchID. A failure in any of the three fetches fails the load
// and clears the screen. If another Open or Reload starts before this one
// completes, its result is discarded and ErrSuperseded is returned.
func (v *BatchDetail) Open(ctx context.Context, batchID int) (*Detail, error) {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	if v.batchID != batchID {
		v.detail = nil
	}
	v.batchID = batchID
	v.mu.Unlock()

	detail, err := v.fetch(ctx, batchID)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		v.logger.Debug("Discarding stale batch load",
			zap.Int("batch_id", batchID),
			zap.Uint64("generation", gen),
			zap.Uint64("current", v.generation),
		)
		return nil, ErrSuperseded
	}

	if err != nil {
		v.detail = nil
		v.err = err
		v.logger.Warn("Failed to load batch", zap.Int("batch_id", batchID), zap.Error(err))
		return nil, err
	}

	v.detail = detail
	v.err = nil
	return detail, nil
}

// Reload fetches the current batch again.
func (v *BatchDetail) Reload(ctx context.Context) (*Detail, error) {
	v.mu.Lock()
	id := v.batchID
	v.mu.Unlock()

	if id == 0 {
		return nil, apperrors.Validation("reload batch", "no batch is open")
	}
	return v.Open(ctx, id)
}

// AddObservation records an observation for the open batch and reloads it.
func (v *BatchDetail) AddObservation(ctx context.Context, obs models.NewObservation) (*models.Observation, error) {
	id, err := v.openID("create observation")
	if err != nil {
		return nil, err
	}

	created, err := v.api.CreateObservation(ctx, id, obs)
	if err != nil {
		return nil, err
	}
	v.logger.Info("Observation created", zap.Int("batch_id", id), zap.Int("observation_id", created.ID))

	_, _ = v.Reload(ctx)
	return created, nil
}

// AddHarvest records a harvest for the open batch and reloads it.
// A zero flush number is replaced by the next flush number of the open batch.
func (v *BatchDetail) AddHarvest(ctx context.Context, harvest models.NewHarvest) (*models.Harvest, error) {
	id, err := v.openID("create harvest")
	if err != nil {
		return nil, err
	}

	if harvest.FlushNumber == 0 {
		if detail, _ := v.Current(); detail != nil {
			harvest.FlushNumber = detail.NextFlush
		}
	}

	created, err := v.api.CreateHarvest(ctx, id, harvest)
	if err != nil {
		return nil, err
	}
	v.logger.Info("Harvest created",
		zap.Int("batch_id", id),
		zap.Int("harvest_id", created.ID),
		zap.Int("flush_number", created.FlushNumber),
	)

	_, _ = v.Reload(ctx)
	return created, nil
}

// Current returns the loaded detail and the error of the latest load.
func (v *BatchDetail) Current() (*Detail, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.detail, v.err
}

// Message returns the displayable failure message, or "".
func (v *BatchDetail) Message() string {
	_, err := v.Current()
	return apperrors.UserMessage(err)
}

func (v *BatchDetail) openID(op string) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.batchID == 0 {
		return 0, apperrors.Validation(op, "no batch is open")
	}
	return v.batchID, nil
}

func (v *BatchDetail) fetch(ctx context.Context, batchID int) (*Detail, error) {
	var (
		batch        *models.Batch
		observations []models.Observation
		harvests     []models.Harvest
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		batch, err = v.api.GetBatch(egCtx, batchID)
		return err
	})
	eg.Go(func() error {
		var err error
		observations, err = v.api.ListObservations(egCtx, batchID)
		return err
	})
	eg.Go(func() error {
		var err error
		harvests, err = v.api.ListHarvests(egCtx, batchID)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if observations == nil {
		observations = []models.Observation{}
	}
	if harvests == nil {
		harvests = []models.Harvest{}
	}

	return &Detail{
		Batch:        *batch,
		Observations: observations,
		Harvests:     harvests,
		Charts:       charts.Build(observations, harvests),
		NextFlush:    models.NextFlushNumber(harvests),
	}, nil
}
