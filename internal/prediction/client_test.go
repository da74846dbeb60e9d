package prediction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOracle(t *testing.T, handler http.HandlerFunc) *HTTPOracle {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewHTTPOracle(server.URL, 3*time.Second, 10*time.Second)
}

func sampleInputs() []Input {
	return []Input{
		{SpotID: "spot-1", SlotType: "car", Hour: 14, Weekday: 2, Weather: "sunny", EventType: "none"},
		{SpotID: "spot-2", SlotType: "car", Hour: 14, Weekday: 2, Weather: "sunny", EventType: "none"},
	}
}

func TestHealthCheckHealthy(t *testing.T) {
	oracle := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	assert.True(t, oracle.HealthCheck(context.Background()))
}

func TestHealthCheckDegraded(t *testing.T) {
	oracle := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "degraded"})
	})

	assert.False(t, oracle.HealthCheck(context.Background()))
}

func TestHealthCheckUnreachable(t *testing.T) {
	oracle := NewHTTPOracle("http://127.0.0.1:1", 100*time.Millisecond, time.Second)
	assert.False(t, oracle.HealthCheck(context.Background()))
}

func TestHealthCheckServerError(t *testing.T) {
	oracle := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	assert.False(t, oracle.HealthCheck(context.Background()))
}

func TestPredictBatchSuccess(t *testing.T) {
	oracle := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict/batch", r.URL.Path)

		var req batchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 14, req.Hour)
		assert.Equal(t, 2, req.Weekday)
		require.Len(t, req.Spots, 2)

		json.NewEncoder(w).Encode(batchResponse{
			Success: true,
			Predictions: []Result{
				{SpotID: "spot-1", ProbFree: 0.8, ProbOccupied: 0.2, Prediction: LabelFree, Confidence: 0.9},
				{SpotID: "spot-2", ProbFree: 0.3, ProbOccupied: 0.7, Prediction: LabelOccupied, Confidence: 0.75},
			},
		})
	})

	results := oracle.PredictBatch(context.Background(), sampleInputs(), 14, 2)

	require.Len(t, results, 2)
	assert.Equal(t, LabelFree, results[0].Prediction)
	assert.InDelta(t, 0.8, results[0].ProbFree, 0.001)
	assert.Equal(t, LabelOccupied, results[1].Prediction)
}

func TestPredictBatchServerErrorFallsBackNeutral(t *testing.T) {
	oracle := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	inputs := sampleInputs()
	results := oracle.PredictBatch(context.Background(), inputs, 14, 2)

	require.Len(t, results, len(inputs))
	for i, res := range results {
		assert.Equal(t, inputs[i].SpotID, res.SpotID)
		assert.Equal(t, LabelUnknown, res.Prediction)
		assert.InDelta(t, 0.5, res.ProbFree, 0.001)
		assert.InDelta(t, 0.5, res.ProbOccupied, 0.001)
		assert.Equal(t, 0.0, res.Confidence)
	}
}

func TestPredictBatchUnreachableFallsBackNeutral(t *testing.T) {
	oracle := NewHTTPOracle("http://127.0.0.1:1", time.Second, 200*time.Millisecond)

	inputs := sampleInputs()
	results := oracle.PredictBatch(context.Background(), inputs, 14, 2)

	require.Len(t, results, len(inputs))
	assert.Equal(t, LabelUnknown, results[0].Prediction)
}

func TestPredictBatchRealignsBySpotID(t *testing.T) {
	oracle := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
		// Reversed order, and spot-2 missing entirely.
		json.NewEncoder(w).Encode(batchResponse{
			Success: true,
			Predictions: []Result{
				{SpotID: "spot-2", ProbFree: 0.3, Prediction: LabelOccupied, Confidence: 0.7},
			},
		})
	})

	results := oracle.PredictBatch(context.Background(), sampleInputs(), 14, 2)

	require.Len(t, results, 2)
	// spot-1 got no answer; padded with the neutral prediction.
	assert.Equal(t, "spot-1", results[0].SpotID)
	assert.Equal(t, LabelUnknown, results[0].Prediction)
	assert.Equal(t, "spot-2", results[1].SpotID)
	assert.Equal(t, LabelOccupied, results[1].Prediction)
}

func TestPredictBatchEmptyInputs(t *testing.T) {
	oracle := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an empty batch")
	})

	results := oracle.PredictBatch(context.Background(), nil, 14, 2)
	assert.Empty(t, results)
}

func TestPredictOne(t *testing.T) {
	oracle := newTestOracle(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		json.NewEncoder(w).Encode(singleResponse{
			Success:    true,
			Prediction: Result{SpotID: "spot-1", ProbFree: 0.9, Prediction: LabelFree, Confidence: 0.95},
		})
	})

	result := oracle.PredictOne(context.Background(), Input{SpotID: "spot-1", SlotType: "car"})
	assert.Equal(t, LabelFree, result.Prediction)
	assert.InDelta(t, 0.9, result.ProbFree, 0.001)
}

func TestNeutralResultsPreserveOrder(t *testing.T) {
	inputs := []Input{{SpotID: "c"}, {SpotID: "a"}, {SpotID: "b"}}
	results := NeutralResults(inputs)

	require.Len(t, results, 3)
	assert.Equal(t, "c", results[0].SpotID)
	assert.Equal(t, "a", results[1].SpotID)
	assert.Equal(t, "b", results[2].SpotID)
}

func TestNeutralOracle(t *testing.T) {
	oracle := NeutralOracle{}
	assert.False(t, oracle.HealthCheck(context.Background()))

	results := oracle.PredictBatch(context.Background(), sampleInputs(), 10, 1)
	require.Len(t, results, 2)
	assert.Equal(t, LabelUnknown, results[0].Prediction)
}
