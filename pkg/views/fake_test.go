package views

import (
	"context"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/mycotrack/mycotrack/pkg/client"
	"github.com/mycotrack/mycotrack/pkg/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeAPI is an in-memory client.API. Per-operation errors are returned verbatim.
type fakeAPI struct {
	mu           sync.Mutex
	batches      []models.Batch
	observations map[int][]models.Observation
	harvests     map[int][]models.Harvest
	insights     map[int]*models.Insights
	comparison   *models.Comparison

	errs  map[string]error
	calls map[string]int

	// gate, when set for a batch id, blocks GetBatch and comparisons led by that id until closed.
	gate map[int]chan struct{}
}

var _ client.API = (*fakeAPI)(nil)

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		observations: map[int][]models.Observation{},
		harvests:     map[int][]models.Harvest{},
		insights:     map[int]*models.Insights{},
		errs:         map[string]error{},
		calls:        map[string]int{},
		gate:         map[int]chan struct{}{},
	}
}

func (f *fakeAPI) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.errs[op]
}

func (f *fakeAPI) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeAPI) setErr(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[op] = err
}

func (f *fakeAPI) ListBatches(_ context.Context) ([]models.Batch, error) {
	if err := f.record("ListBatches"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Batch(nil), f.batches...), nil
}

func (f *fakeAPI) GetBatch(ctx context.Context, batchID int) (*models.Batch, error) {
	f.mu.Lock()
	gate := f.gate[batchID]
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := f.record("GetBatch"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.batches {
		if b.ID == batchID {
			return &b, nil
		}
	}
	return &models.Batch{ID: batchID}, nil
}

func (f *fakeAPI) CreateBatch(_ context.Context, batch models.NewBatch) (*models.Batch, error) {
	if err := f.record("CreateBatch"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	created := models.Batch{
		ID:                       len(f.batches) + 1,
		Username:                 batch.Username,
		SubstrateType:            batch.SubstrateType,
		SubstrateMoisturePercent: batch.SubstrateMoisturePercent,
		SpawnRatePercent:         batch.SpawnRatePercent,
		StartDate:                batch.StartDate,
	}
	f.batches = append(f.batches, created)
	return &created, nil
}

func (f *fakeAPI) ListObservations(_ context.Context, batchID int) ([]models.Observation, error) {
	if err := f.record("ListObservations"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Observation(nil), f.observations[batchID]...), nil
}

func (f *fakeAPI) CreateObservation(_ context.Context, batchID int, obs models.NewObservation) (*models.Observation, error) {
	if err := f.record("CreateObservation"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	created := models.Observation{
		ID:                        len(f.observations[batchID]) + 1,
		BatchID:                   batchID,
		Date:                      obs.Date,
		AmbientTemperatureCelsius: obs.AmbientTemperatureCelsius,
		RelativeHumidityPercent:   obs.RelativeHumidityPercent,
	}
	f.observations[batchID] = append(f.observations[batchID], created)
	return &created, nil
}

func (f *fakeAPI) ListHarvests(_ context.Context, batchID int) ([]models.Harvest, error) {
	if err := f.record("ListHarvests"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Harvest(nil), f.harvests[batchID]...), nil
}

func (f *fakeAPI) CreateHarvest(_ context.Context, batchID int, harvest models.NewHarvest) (*models.Harvest, error) {
	if err := f.record("CreateHarvest"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	created := models.Harvest{
		ID:           len(f.harvests[batchID]) + 1,
		BatchID:      batchID,
		FlushNumber:  harvest.FlushNumber,
		FlushYieldKg: harvest.FlushYieldKg,
	}
	f.harvests[batchID] = append(f.harvests[batchID], created)
	return &created, nil
}

func (f *fakeAPI) GetInsights(_ context.Context, batchID int) (*models.Insights, error) {
	if err := f.record("GetInsights"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insights[batchID], nil
}

// CompareBatches returns the canned comparison, or one yield row per id when none is set.
// A gate registered for the first id blocks the call until closed.
func (f *fakeAPI) CompareBatches(ctx context.Context, ids []int) (*models.Comparison, error) {
	if len(ids) > 0 {
		f.mu.Lock()
		gate := f.gate[ids[0]]
		f.mu.Unlock()
		if gate != nil {
			select {
			case <-gate:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	if err := f.record("CompareBatches"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.comparison != nil {
		return f.comparison, nil
	}
	result := &models.Comparison{}
	for _, id := range ids {
		result.YieldComparison = append(result.YieldComparison, models.YieldTotal{BatchID: id, TotalYield: float64(id)})
	}
	return result, nil
}
