package geo

import "math"

const (
	earthRadiusKm   = 6371.0
	averageSpeedKmh = 30.0 // city traffic average
)

// Haversine calculates the great-circle distance in kilometres between two
// coordinates.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180.0)*math.Cos(lat2*math.Pi/180.0)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// EstimateTravelTime returns the estimated travel time in whole minutes for a
// given distance in kilometres, assuming an average city speed of 30 km/h.
// Partial minutes round up.
func EstimateTravelTime(distanceKm float64) int {
	return int(math.Ceil((distanceKm / averageSpeedKmh) * 60))
}

// Round2 rounds a value to two decimal places for API responses.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
