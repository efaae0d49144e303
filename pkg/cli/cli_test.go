package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// fakeService is an in-memory tracking service.
type fakeService struct {
	mu           sync.Mutex
	batches      []map[string]any
	observations map[string][]map[string]any
	harvests     map[string][]map[string]any
	insights     map[string]any
	failList     bool
	usernames    []string
	compareIDs   []int
}

func newFakeService(t *testing.T) (*fakeService, string) {
	t.Helper()
	svc := &fakeService{
		observations: map[string][]map[string]any{},
		harvests:     map[string][]map[string]any{},
		insights:     map[string]any{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/batches", func(w http.ResponseWriter, r *http.Request) {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		svc.usernames = append(svc.usernames, r.Header.Get("X-Username"))
		if svc.failList {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"internal","message":"database unavailable"}`))
			return
		}
		writeJSON(w, svc.batches)
	})
	mux.HandleFunc("POST /api/batches", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		svc.mu.Lock()
		defer svc.mu.Unlock()
		body["batch_id"] = len(svc.batches) + 1
		svc.batches = append(svc.batches, body)
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, body)
	})
	mux.HandleFunc("GET /api/batches/{id}", func(w http.ResponseWriter, r *http.Request) {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		for _, b := range svc.batches {
			if strconv.Itoa(toInt(b["batch_id"])) == r.PathValue("id") {
				writeJSON(w, b)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Batch not found"}`))
	})
	mux.HandleFunc("GET /api/batches/{id}/observations", func(w http.ResponseWriter, r *http.Request) {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		writeJSON(w, orEmpty(svc.observations[r.PathValue("id")]))
	})
	mux.HandleFunc("POST /api/batches/{id}/observations", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		svc.mu.Lock()
		defer svc.mu.Unlock()
		id := r.PathValue("id")
		body["observation_id"] = len(svc.observations[id]) + 1
		body["batch_id"] = id
		svc.observations[id] = append(svc.observations[id], body)
		writeJSON(w, body)
	})
	mux.HandleFunc("GET /api/batches/{id}/harvests", func(w http.ResponseWriter, r *http.Request) {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		writeJSON(w, orEmpty(svc.harvests[r.PathValue("id")]))
	})
	mux.HandleFunc("POST /api/batches/{id}/harvests", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		svc.mu.Lock()
		defer svc.mu.Unlock()
		id := r.PathValue("id")
		body["harvest_id"] = len(svc.harvests[id]) + 1
		body["batch_id"] = id
		svc.harvests[id] = append(svc.harvests[id], body)
		writeJSON(w, body)
	})
	mux.HandleFunc("GET /api/batches/{id}/insights", func(w http.ResponseWriter, r *http.Request) {
		svc.mu.Lock()
		defer svc.mu.Unlock()
		writeJSON(w, svc.insights[r.PathValue("id")])
	})
	mux.HandleFunc("POST /api/batches/compare", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			BatchIDs []int `json:"batch_ids"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		svc.mu.Lock()
		defer svc.mu.Unlock()
		svc.compareIDs = body.BatchIDs
		var totals []map[string]any
		for _, id := range body.BatchIDs {
			totals = append(totals, map[string]any{"batch_id": id, "total_yield": float64(id) * 1.5})
		}
		writeJSON(w, map[string]any{
			"yield_comparison": totals,
			"insights":         []string{"Batch 2 outperformed batch 1"},
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return svc, srv.URL + "/api"
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func orEmpty(v []map[string]any) []map[string]any {
	if v == nil {
		return []map[string]any{}
	}
	return v
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func seed(svc *fakeService) {
	svc.batches = []map[string]any{
		{"batch_id": 1, "username": "ana", "substrate_type": "straw", "substrate_moisture_percent": 65, "spawn_rate_percent": 10, "start_date": "2024-01-01"},
		{"batch_id": 2, "username": "ana", "substrate_type": "hardwood", "substrate_moisture_percent": "60", "spawn_rate_percent": 12, "start_date": "2024-02-01"},
	}
	svc.observations["1"] = []map[string]any{
		{"observation_id": 1, "batch_id": 1, "date": "2024-01-01", "relative_humidity_percent": 80},
		{"observation_id": 2, "batch_id": 1, "date": "2024-01-10", "relative_humidity_percent": 82, "ambient_temperature_celsius": 23, "CO2_level": "low"},
	}
	svc.harvests["1"] = []map[string]any{
		{"harvest_id": 1, "batch_id": 1, "flush_number": 1, "flush_yield_kg": 2.5, "date": "2024-01-02"},
	}
}

// run executes the CLI against apiURL and returns stdout.
func run(t *testing.T, apiURL string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MYCOTRACK_ENV", "test")
	t.Setenv("MYCOTRACK_LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := NewRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--api-url", apiURL, "--user", "ana"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestBatchesList(t *testing.T) {
	svc, url := newFakeService(t)
	seed(svc)

	out, err := run(t, url, "batches", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "straw")
	assert.Contains(t, out, "hardwood")
	assert.Contains(t, out, "2 batches")
	assert.Equal(t, []string{"ana"}, svc.usernames)
}

func TestBatchesList_ServiceError(t *testing.T) {
	svc, url := newFakeService(t)
	svc.failList = true

	out, err := run(t, url, "batches", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unavailable")
	assert.Empty(t, out)
}

func TestBatchesList_JSON(t *testing.T) {
	svc, url := newFakeService(t)
	seed(svc)

	out, err := run(t, url, "-o", "json", "batches", "list")

	require.NoError(t, err)
	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, 60.0, got[1]["substrate_moisture_percent"])
}

func TestBatchesShow(t *testing.T) {
	svc, url := newFakeService(t)
	seed(svc)

	out, err := run(t, url, "batches", "show", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "ana - Batch #1")
	assert.Contains(t, out, "2 observations")
	assert.Contains(t, out, "1 harvest")
	assert.Contains(t, out, "Next flush: 2")
	observations := out[strings.Index(out, "Observations"):strings.Index(out, "Harvests")]
	assert.Less(t, strings.Index(observations, "2024-01-10"), strings.Index(observations, "2024-01-01"),
		"observations are listed newest first")
}

func TestBatchesShow_YAML(t *testing.T) {
	svc, url := newFakeService(t)
	seed(svc)

	out, err := run(t, url, "-o", "yaml", "batches", "show", "1")

	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got["next_flush_number"])
	charts := got["charts"].(map[string]any)
	assert.Equal(t, "ready", charts["status"])
	assert.Len(t, charts["humidity_yield"], 1)
}

func TestBatchesShow_NotFound(t *testing.T) {
	_, url := newFakeService(t)

	_, err := run(t, url, "batches", "show", "9")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Batch not found")
}

func TestBatchesCreate(t *testing.T) {
	svc, url := newFakeService(t)

	out, err := run(t, url, "batches", "create", "--substrate", "coir", "--moisture", "70", "--spawn-rate", "15", "--start-date", "2024-03-01")

	require.NoError(t, err)
	assert.Contains(t, out, "Created ana - Batch #1")
	require.Len(t, svc.batches, 1)
	assert.Equal(t, "ana", svc.batches[0]["username"])
	assert.Equal(t, "2024-03-01", svc.batches[0]["start_date"])
}

func TestBatchesCreate_ValidationBeforeDispatch(t *testing.T) {
	svc, url := newFakeService(t)

	_, err := run(t, url, "batches", "create", "--substrate", "coir", "--moisture", "140")

	require.Error(t, err)
	assert.Empty(t, svc.batches)
}

func TestObserve(t *testing.T) {
	svc, url := newFakeService(t)
	seed(svc)

	_, err := run(t, url, "observe", "1", "--date", "2024-01-12", "--humidity", "88", "--co2", "medium")

	require.NoError(t, err)
	require.Len(t, svc.observations["1"], 3)
	created := svc.observations["1"][2]
	assert.Equal(t, 88.0, created["relative_humidity_percent"])
	assert.Equal(t, "medium", created["CO2_level"])
	assert.NotContains(t, created, "ambient_temperature_celsius", "unset readings are not sent")
}

func TestObserve_DefaultsCO2ToMedium(t *testing.T) {
	svc, url := newFakeService(t)
	seed(svc)

	_, err := run(t, url, "observe", "1", "--date", "2024-01-12", "--humidity", "88")

	require.NoError(t, err)
	require.Len(t, svc.observations["1"], 3)
	assert.Equal(t, "medium", svc.observations["1"][2]["CO2_level"])
}

func TestObserve_InvalidCO2(t *testing.T) {
	svc, url := newFakeService(t)
	seed(svc)

	_, err := run(t, url, "observe", "1", "--co2", "extreme")

	require.Error(t, err)
	assert.Len(t, svc.observations["1"], 2)
}

func TestHarvest_DefaultsToNextFlush(t *testing.T) {
	svc, url := newFakeService(t)
	seed(svc)

	out, err := run(t, url, "harvest", "1", "--yield", "1.25")

	require.NoError(t, err)
	assert.Contains(t, out, "Recorded flush 2 for batch #1: 1.25 kg")
	require.Len(t, svc.harvests["1"], 2)
	assert.Equal(t, 2.0, svc.harvests["1"][1]["flush_number"])
	assert.NotContains(t, svc.harvests["1"][1], "date")
}

func TestCharts(t *testing.T) {
	svc, url := newFakeService(t)
	seed(svc)
	dir := t.TempDir()

	out, err := run(t, url, "charts", "1", "--out", dir, "--format", "svg")

	require.NoError(t, err)
	assert.Contains(t, out, "batch-1-yield-per-flush.svg")
	assert.Contains(t, out, "batch-1-temperature-vs-yield: insufficient data")
	assert.FileExists(t, filepath.Join(dir, "batch-1-humidity-vs-yield.svg"))
	_, statErr := os.Stat(filepath.Join(dir, "batch-1-temperature-vs-yield.svg"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCharts_NoData(t *testing.T) {
	svc, url := newFakeService(t)
	seed(svc)
	dir := filepath.Join(t.TempDir(), "out")

	out, err := run(t, url, "charts", "2", "--out", dir)

	require.NoError(t, err)
	assert.Contains(t, out, "No data logged yet.")
	assert.NoDirExists(t, dir)
}

func TestInsights(t *testing.T) {
	svc, url := newFakeService(t)
	seed(svc)
	svc.insights["1"] = map[string]any{"warnings": []string{}, "summary": "ok"}

	out, err := run(t, url, "insights", "1")

	require.NoError(t, err)
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "ok")
	assert.NotContains(t, out, "Warnings")
}

func TestInsights_NoDataSkipsFetch(t *testing.T) {
	svc, url := newFakeService(t)
	seed(svc)
	svc.insights["2"] = map[string]any{"summary": "should not be fetched"}

	out, err := run(t, url, "insights", "2")

	require.NoError(t, err)
	assert.Contains(t, out, "No data logged yet.")
	assert.NotContains(t, out, "should not be fetched")
}

func TestCompare(t *testing.T) {
	svc, url := newFakeService(t)
	seed(svc)
	dir := t.TempDir()

	out, err := run(t, url, "compare", "2", "1", "2", "--out", dir)

	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, svc.compareIDs)
	assert.Contains(t, out, "Total Yield")
	assert.Contains(t, out, "Batch 2 outperformed batch 1")
	assert.FileExists(t, filepath.Join(dir, "comparison-total-yield.png"))
}

func TestCompare_SingleBatchRejected(t *testing.T) {
	svc, url := newFakeService(t)

	_, err := run(t, url, "compare", "1", "1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2")
	assert.Nil(t, svc.compareIDs)
}

func TestInvalidOutputFormat(t *testing.T) {
	_, url := newFakeService(t)

	_, err := run(t, url, "-o", "xml", "batches", "list")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestCount(t *testing.T) {
	assert.Equal(t, "1 batch", count(1, "batch"))
	assert.Equal(t, "0 batches", count(0, "batch"))
	assert.Equal(t, "3 harvests", count(3, "harvest"))
}
