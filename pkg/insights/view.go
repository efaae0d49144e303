package insights

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mycotrack/mycotrack/pkg/apperrors"
	"github.com/mycotrack/mycotrack/pkg/models"
)

// Fetcher loads the insight payload of a batch.
type Fetcher func(ctx context.Context, batchID int) (*models.Insights, error)

// Key identifies the inputs an insight view was loaded for.
// A change in any field invalidates the current state.
type Key struct {
	BatchID      int
	Observations int
	Harvests     int
}

// HasData reports whether anything has been logged for the batch.
func (k Key) HasData() bool {
	return k.Observations > 0 || k.Harvests > 0
}

// Snapshot is a consistent copy of a view's state.
type Snapshot struct {
	State   State
	Key     Key
	Payload *models.Insights
	Err     error
	// NoData is set when the view short-circuited because nothing was logged.
	NoData bool
}

// Message returns the displayable failure message, if any.
func (s Snapshot) Message() string {
	return apperrors.UserMessage(s.Err)
}

// Rendering returns what a successful view displays. It is the zero Rendering
// in any other state.
func (s Snapshot) Rendering() Rendering {
	if s.State != StateSuccess {
		return Rendering{}
	}
	if s.NoData {
		return Rendering{Placeholder: NoDataMessage}
	}
	return Render(s.Payload)
}

// View tracks the insight load for one batch as it changes over time.
//
// Each load is tagged with a generation. A response arriving after the key
// has changed belongs to a superseded generation and is dropped.
type View struct {
	fetch  Fetcher
	logger *zap.Logger

	mu         sync.Mutex
	generation uint64
	synced     bool
	snap       Snapshot
}

// NewView creates an idle view that loads payloads with fetch.
func NewView(fetch Fetcher, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &View{fetch: fetch, logger: logger.Named("insights")}
}

// Snapshot returns the current state.
func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snap
}

// Sync brings the view up to date with key. When key differs from the key
// of the current state, the view restarts at loading and fetches again;
// otherwise the current state is returned unchanged.
// A key with no observations and no harvests succeeds with the no-data
// placeholder without fetching.
func (v *View) Sync(ctx context.Context, key Key) Snapshot {
	v.mu.Lock()
	if v.synced && v.snap.Key == key {
		snap := v.snap
		v.mu.Unlock()
		return snap
	}
	v.synced = true
	gen := v.begin(key)

	if !key.HasData() {
		v.snap = Snapshot{State: StateSuccess, Key: key, NoData: true}
		snap := v.snap
		v.mu.Unlock()
		v.logger.Debug("Skipping insight fetch, nothing logged", zap.Int("batch_id", key.BatchID))
		return snap
	}
	v.mu.Unlock()

	return v.load(ctx, gen, key)
}

// Retry re-runs a failed load. In any state other than failure it is a no-op.
func (v *View) Retry(ctx context.Context) Snapshot {
	v.mu.Lock()
	if v.snap.State != StateFailure {
		snap := v.snap
		v.mu.Unlock()
		return snap
	}
	key := v.snap.Key
	gen := v.begin(key)
	v.mu.Unlock()

	return v.load(ctx, gen, key)
}

// Refresh fetches the current key again from success or failure.
// A view showing the no-data placeholder has nothing to fetch and is left
// as is, as is a view that is idle or already loading.
func (v *View) Refresh(ctx context.Context) Snapshot {
	v.mu.Lock()
	switch {
	case v.snap.State == StateFailure,
		v.snap.State == StateSuccess && !v.snap.NoData:
	default:
		snap := v.snap
		v.mu.Unlock()
		return snap
	}
	key := v.snap.Key
	gen := v.begin(key)
	v.mu.Unlock()

	return v.load(ctx, gen, key)
}

// begin moves to loading for key and returns the new generation. Callers hold mu.
func (v *View) begin(key Key) uint64 {
	v.generation++
	v.snap = Snapshot{State: StateLoading, Key: key}
	return v.generation
}

func (v *View) load(ctx context.Context, gen uint64, key Key) Snapshot {
	payload, err := v.fetch(ctx, key.BatchID)

	v.mu.Lock()
	defer v.mu.Unlock()

	if gen != v.generation {
		v.logger.Debug("Discarding stale insight response",
			zap.Int("batch_id", key.BatchID),
			zap.Uint64("generation", gen),
			zap.Uint64("current", v.generation),
		)
		return v.snap
	}

	if err != nil {
		v.logger.Warn("Failed to load insights", zap.Int("batch_id", key.BatchID), zap.Error(err))
		v.snap = Snapshot{State: StateFailure, Key: key, Err: err}
		return v.snap
	}
	if payload == nil {
		payload = &models.Insights{}
	}
	v.snap = Snapshot{State: StateSuccess, Key: key, Payload: payload}
	return v.snap
}
