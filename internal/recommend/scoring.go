package recommend

import "math"

// Sub-score weights. The five factors sum to at most 100.
const (
	maxDistanceScore     = 30.0
	maxAvailabilityScore = 25.0
	maxMLScore           = 25.0
	maxPriceScore        = 10.0
	maxAmenitiesScore    = 10.0

	fullDistanceKm  = 0.5 // full distance credit inside this radius
	zeroDistanceKm  = 3.0 // no distance credit beyond this
	priceFloorEUR   = 10.0
	priceCeilingEUR = 50.0
)

// scoreFactors are the raw inputs to the composite score
type scoreFactors struct {
	DistanceFromDestKm    float64
	CurrentAvailability   float64 // free/total, in [0,1]
	PredictedAvailability float64 // probability free, in [0,1]
	Confidence            float64 // oracle confidence, in [0,1]
	PricePerHour          float64
	HasAmenities          bool
}

// computeScore combines the five factors into a 0-100 integer with a
// per-factor breakdown. Sub-scores are rounded independently of the total.
func computeScore(f scoreFactors) (int, ScoreBreakdown) {
	// Closer is better: full credit within 500 m, linear decay to 3 km.
	distanceScore := 0.0
	switch {
	case f.DistanceFromDestKm <= fullDistanceKm:
		distanceScore = maxDistanceScore
	case f.DistanceFromDestKm <= zeroDistanceKm:
		distanceScore = maxDistanceScore -
			((f.DistanceFromDestKm-fullDistanceKm)/(zeroDistanceKm-fullDistanceKm))*maxDistanceScore
	}

	availabilityScore := f.CurrentAvailability * maxAvailabilityScore

	// Confidence-weighted: a zero-confidence (fallback) prediction
	// contributes nothing.
	mlPredictionScore := f.PredictedAvailability * f.Confidence * maxMLScore

	// Cheaper is better across an assumed 10-50 per hour range.
	priceScore := maxPriceScore -
		((f.PricePerHour-priceFloorEUR)/(priceCeilingEUR-priceFloorEUR))*maxPriceScore
	priceScore = math.Max(0, math.Min(maxPriceScore, priceScore))

	amenitiesScore := maxAmenitiesScore / 2
	if f.HasAmenities {
		amenitiesScore = maxAmenitiesScore
	}

	total := distanceScore + availabilityScore + mlPredictionScore + priceScore + amenitiesScore

	return int(math.Round(total)), ScoreBreakdown{
		DistanceScore:     int(math.Round(distanceScore)),
		AvailabilityScore: int(math.Round(availabilityScore)),
		MLPredictionScore: int(math.Round(mlPredictionScore)),
		PriceScore:        int(math.Round(priceScore)),
		AmenitiesScore:    int(math.Round(amenitiesScore)),
	}
}
