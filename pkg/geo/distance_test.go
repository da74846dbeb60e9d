package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineZeroForSamePoint(t *testing.T) {
	assert.Equal(t, 0.0, Haversine(18.5204, 73.8567, 18.5204, 73.8567))
}

func TestHaversineSymmetric(t *testing.T) {
	ab := Haversine(18.5204, 73.8567, 19.0760, 72.8777)
	ba := Haversine(19.0760, 72.8777, 18.5204, 73.8567)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestHaversineHalfDegreeLatitudeNearEquator(t *testing.T) {
	// 0.5° of latitude is ~55.5 km regardless of longitude.
	d := Haversine(0, 0, 0.5, 0)
	assert.InDelta(t, 55.5, d, 55.5*0.01)
}

func TestHaversineKnownDistance(t *testing.T) {
	// Pune city center to Mumbai city center, ~120 km.
	d := Haversine(18.5204, 73.8567, 19.0760, 72.8777)
	assert.InDelta(t, 120, d, 5)
}

func TestHaversineNonNegative(t *testing.T) {
	points := [][4]float64{
		{-90, -180, 90, 180},
		{45.0, 120.0, -45.0, -120.0},
		{0.0001, 0.0001, 0.0002, 0.0002},
	}
	for _, p := range points {
		assert.GreaterOrEqual(t, Haversine(p[0], p[1], p[2], p[3]), 0.0)
	}
}

func TestEstimateTravelTime(t *testing.T) {
	tests := []struct {
		name       string
		distanceKm float64
		expected   int
	}{
		{"zero distance", 0, 0},
		{"half kilometre rounds up", 0.5, 1},
		{"exactly one minute", 0.5, 1},
		{"five km", 5, 10},
		{"partial minute rounds up", 5.1, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, EstimateTravelTime(tt.distanceKm))
		})
	}
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.23, Round2(1.2345))
	assert.Equal(t, 2.68, Round2(2.6789))
	assert.Equal(t, 0.0, Round2(0))
}
