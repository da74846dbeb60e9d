package prediction

import "context"

// Oracle is the boundary to the occupancy prediction service. Implementations
// must be total: PredictBatch always returns one result per input, in input
// order, degrading to neutral predictions instead of failing.
type Oracle interface {
	// HealthCheck reports whether the prediction service is reachable and
	// claims to be healthy. Never returns an error; unreachable means false.
	HealthCheck(ctx context.Context) bool

	// PredictBatch returns one prediction per input, aligned with the input
	// slice. hour and weekday describe the instant being predicted for.
	PredictBatch(ctx context.Context, inputs []Input, hour, weekday int) []Result
}

// NeutralResult is the fallback prediction used when the service cannot
// answer: maximum uncertainty, zero confidence.
func NeutralResult(spotID string) Result {
	return Result{
		SpotID:       spotID,
		ProbFree:     0.5,
		ProbOccupied: 0.5,
		Prediction:   LabelUnknown,
		Confidence:   0,
	}
}

// NeutralResults returns a neutral prediction for every input, preserving
// cardinality and order.
func NeutralResults(inputs []Input) []Result {
	results := make([]Result, len(inputs))
	for i, in := range inputs {
		results[i] = NeutralResult(in.SpotID)
	}
	return results
}

// NeutralOracle always reports the service down and answers every batch with
// neutral predictions. Useful as a stand-in when no service is configured.
type NeutralOracle struct{}

func (NeutralOracle) HealthCheck(ctx context.Context) bool {
	return false
}

func (NeutralOracle) PredictBatch(ctx context.Context, inputs []Input, hour, weekday int) []Result {
	return NeutralResults(inputs)
}
