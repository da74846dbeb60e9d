// Package occupancy provides heuristic occupancy estimates for facilities
// without live slot telemetry. These are fixed time-of-day curves, not model
// output; the prediction service remains the authoritative source.
package occupancy

import (
	"math"
	"strings"
	"time"
)

// profileMultipliers skew the base curve by facility character, keyed by
// name substring.
var profileMultipliers = []struct {
	keyword    string
	multiplier float64
}{
	{"gate", 1.2},
	{"hostel", 1.1},
	{"auditorium", 0.9},
	{"sports", 0.8},
	{"library", 0.7},
}

// availabilityAdjustments shift the fallback availability estimate, keyed by
// name substring.
var availabilityAdjustments = []struct {
	keyword string
	delta   int
}{
	{"gate", -10},
	{"hostel", -5},
	{"auditorium", 0},
	{"sports", 5},
	{"library", 10},
}

// EstimateOccupancyRate estimates the occupancy rate for a facility at the
// given instant, in [0.05, 0.95]. Name keywords skew the time-of-day curve.
func EstimateOccupancyRate(name string, t time.Time) float64 {
	rate := baseRate(t.Hour())

	lower := strings.ToLower(name)
	for _, p := range profileMultipliers {
		if strings.Contains(lower, p.keyword) {
			rate *= p.multiplier
			break
		}
	}

	return math.Min(0.95, math.Max(0.05, rate))
}

func baseRate(hour int) float64 {
	switch {
	case hour >= 8 && hour <= 10:
		return 0.8 // morning rush
	case hour >= 10 && hour <= 16:
		return 0.7 // peak hours
	case hour >= 17 && hour <= 19:
		return 0.6 // evening
	default:
		return 0.3 // off hours
	}
}

// EstimateAvailabilityPercent estimates free capacity as a percentage in
// [10, 90], for callers that want a coarse availability figure rather than a
// rate.
func EstimateAvailabilityPercent(name string, t time.Time) int {
	availability := 70

	hour := t.Hour()
	switch {
	case (hour >= 8 && hour <= 10) || (hour >= 17 && hour <= 19):
		availability -= 25
	case hour >= 10 && hour <= 16:
		availability -= 15
	}

	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		availability += 20
	}

	lower := strings.ToLower(name)
	for _, a := range availabilityAdjustments {
		if strings.Contains(lower, a.keyword) {
			availability += a.delta
			break
		}
	}

	if availability < 10 {
		availability = 10
	}
	if availability > 90 {
		availability = 90
	}
	return availability
}
