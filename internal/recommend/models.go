package recommend

// Request is the recommendation request body. Coordinates are pointers so a
// missing field is distinguishable from a legitimate zero value.
type Request struct {
	UserLatitude         *float64 `json:"userLatitude" binding:"required"`
	UserLongitude        *float64 `json:"userLongitude" binding:"required"`
	DestinationLatitude  *float64 `json:"destinationLatitude" binding:"required"`
	DestinationLongitude *float64 `json:"destinationLongitude" binding:"required"`
	VehicleType          string   `json:"vehicleType" binding:"required"`
	RadiusKm             *float64 `json:"radiusKm"`
	ArrivalTimeMinutes   *int     `json:"arrivalTimeMinutes"`
}

// ScoreBreakdown itemizes the factors behind a recommendation score. Each
// sub-score is rounded independently, so the parts may differ from the
// rounded total by one.
type ScoreBreakdown struct {
	DistanceScore     int `json:"distanceScore"`
	AvailabilityScore int `json:"availabilityScore"`
	MLPredictionScore int `json:"mlPredictionScore"`
	PriceScore        int `json:"priceScore"`
	AmenitiesScore    int `json:"amenitiesScore"`
}

// Recommendation is one ranked parking facility
type Recommendation struct {
	SpotID                  string  `json:"spotId"`
	Name                    string  `json:"name"`
	Address                 string  `json:"address"`
	Latitude                float64 `json:"latitude"`
	Longitude               float64 `json:"longitude"`
	DistanceFromDestination float64 `json:"distanceFromDestination"`
	DistanceFromUser        float64 `json:"distanceFromUser"`
	EstimatedTravelTime     int     `json:"estimatedTravelTime"`

	TotalSlots           int     `json:"totalSlots"`
	CurrentFreeSlots     int     `json:"currentFreeSlots"`
	CurrentOccupancyRate float64 `json:"currentOccupancyRate"`

	PredictedOccupancyProbability float64 `json:"predictedOccupancyProbability"`
	PredictedAvailability         float64 `json:"predictedAvailability"`
	MLConfidence                  float64 `json:"mlConfidence"`

	RecommendationScore int `json:"recommendationScore"`

	PricePerHour  float64 `json:"pricePerHour"`
	IsCovered     bool    `json:"isCovered"`
	HasSecurity   bool    `json:"hasSecurity"`
	HasEVCharging bool    `json:"hasEVCharging"`
	Rating        float64 `json:"rating"`

	ScoreBreakdown ScoreBreakdown `json:"scoreBreakdown"`
}

// Response is the recommendation response body
type Response struct {
	Success            bool             `json:"success"`
	Recommendations    []Recommendation `json:"recommendations"`
	MLServiceAvailable bool             `json:"mlServiceAvailable"`
	Message            string           `json:"message,omitempty"`
}
