package prediction

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/parkpilot/parkpilot/pkg/httpclient"
	"github.com/parkpilot/parkpilot/pkg/logger"
	"github.com/parkpilot/parkpilot/pkg/resilience"
)

// HTTPOracle talks to the prediction service over HTTP. It never surfaces
// transport errors to callers: any failure degrades to neutral predictions.
type HTTPOracle struct {
	client         *httpclient.Client
	breaker        *resilience.CircuitBreaker
	healthTimeout  time.Duration
	predictTimeout time.Duration
}

// NewHTTPOracle creates an oracle client for the given base URL.
func NewHTTPOracle(baseURL string, healthTimeout, predictTimeout time.Duration) *HTTPOracle {
	return &HTTPOracle{
		// The client-level timeout is a hard ceiling; per-call deadlines
		// below are tighter.
		client:         httpclient.NewClient(baseURL, predictTimeout+time.Second),
		healthTimeout:  healthTimeout,
		predictTimeout: predictTimeout,
	}
}

// SetCircuitBreaker enables circuit breaker protection for prediction calls.
func (o *HTTPOracle) SetCircuitBreaker(cb *resilience.CircuitBreaker) {
	o.breaker = cb
}

// HealthCheck reports whether the prediction service answers its health
// endpoint with status "healthy" within the health timeout.
func (o *HTTPOracle) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, o.healthTimeout)
	defer cancel()

	body, err := o.client.Get(ctx, "/health")
	if err != nil {
		logger.WarnContext(ctx, "prediction service health check failed", zap.Error(err))
		return false
	}

	var health healthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		logger.WarnContext(ctx, "prediction service health response malformed", zap.Error(err))
		return false
	}

	return health.Status == "healthy"
}

// PredictBatch requests predictions for all inputs in a single call. On any
// failure it returns neutral predictions for the whole batch; on a partial
// or misordered response it realigns by spot ID and fills the gaps with
// neutral predictions.
func (o *HTTPOracle) PredictBatch(ctx context.Context, inputs []Input, hour, weekday int) []Result {
	if len(inputs) == 0 {
		return []Result{}
	}

	ctx, cancel := context.WithTimeout(ctx, o.predictTimeout)
	defer cancel()

	body, err := o.callBatch(ctx, batchRequest{
		Spots:   inputs,
		Hour:    hour,
		Weekday: weekday,
	})
	if err != nil {
		logger.WarnContext(ctx, "batch prediction failed, using neutral fallback",
			zap.Int("batch_size", len(inputs)),
			zap.Error(err))
		fallbacksTotal.Add(float64(len(inputs)))
		return NeutralResults(inputs)
	}

	var resp batchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		logger.WarnContext(ctx, "batch prediction response malformed, using neutral fallback",
			zap.Error(err))
		fallbacksTotal.Add(float64(len(inputs)))
		return NeutralResults(inputs)
	}
	if !resp.Success {
		logger.WarnContext(ctx, "batch prediction rejected, using neutral fallback",
			zap.String("service_error", resp.Error))
		fallbacksTotal.Add(float64(len(inputs)))
		return NeutralResults(inputs)
	}

	return alignResults(inputs, resp.Predictions)
}

// PredictOne requests a prediction for a single spot. Degrades to a neutral
// prediction on any failure.
func (o *HTTPOracle) PredictOne(ctx context.Context, input Input) Result {
	ctx, cancel := context.WithTimeout(ctx, o.predictTimeout)
	defer cancel()

	body, err := o.callSingle(ctx, input)
	if err != nil {
		logger.WarnContext(ctx, "prediction failed, using neutral fallback",
			zap.String("spot_id", input.SpotID),
			zap.Error(err))
		fallbacksTotal.Inc()
		return NeutralResult(input.SpotID)
	}

	var resp singleResponse
	if err := json.Unmarshal(body, &resp); err != nil || !resp.Success {
		fallbacksTotal.Inc()
		return NeutralResult(input.SpotID)
	}
	return resp.Prediction
}

func (o *HTTPOracle) callBatch(ctx context.Context, req batchRequest) ([]byte, error) {
	return o.post(ctx, "/predict/batch", req)
}

func (o *HTTPOracle) callSingle(ctx context.Context, input Input) ([]byte, error) {
	return o.post(ctx, "/predict", input)
}

func (o *HTTPOracle) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	call := func(callCtx context.Context) (interface{}, error) {
		return o.client.Post(callCtx, path, payload)
	}

	if o.breaker != nil {
		result, err := o.breaker.Execute(ctx, call)
		if err != nil {
			return nil, fmt.Errorf("prediction call failed: %w", err)
		}
		return result.([]byte), nil
	}

	result, err := call(ctx)
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

// alignResults matches service results to inputs by spot ID, falling back to
// positional matching and then to neutral predictions. The returned slice
// always has the same length and order as inputs.
func alignResults(inputs []Input, predictions []Result) []Result {
	bySpot := make(map[string]Result, len(predictions))
	for _, p := range predictions {
		if p.SpotID != "" {
			bySpot[p.SpotID] = p
		}
	}

	aligned := make([]Result, len(inputs))
	for i, in := range inputs {
		if p, ok := bySpot[in.SpotID]; ok {
			aligned[i] = p
		} else if i < len(predictions) && predictions[i].SpotID == "" {
			aligned[i] = predictions[i]
			aligned[i].SpotID = in.SpotID
		} else {
			aligned[i] = NeutralResult(in.SpotID)
		}
	}
	return aligned
}
