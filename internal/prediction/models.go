package prediction

// Label is the categorical prediction for a parking spot
type Label string

const (
	LabelFree     Label = "FREE"
	LabelOccupied Label = "OCCUPIED"
	LabelUnknown  Label = "UNKNOWN"
)

// Input is the feature vector sent to the prediction service for one spot
type Input struct {
	SpotID             string `json:"spot_id"`
	SlotType           string `json:"slot_type"`
	Hour               int    `json:"hour"`
	Weekday            int    `json:"weekday"`
	Weather            string `json:"weather"`
	EventType          string `json:"event_type"`
	POIOfficeCount     int    `json:"poi_office_count"`
	POIRestaurantCount int    `json:"poi_restaurant_count"`
	POIStoreCount      int    `json:"poi_store_count"`
}

// Result is the prediction for one spot
type Result struct {
	SpotID       string  `json:"spot_id"`
	ProbFree     float64 `json:"prob_free"`
	ProbOccupied float64 `json:"prob_occupied"`
	Prediction   Label   `json:"prediction"`
	Confidence   float64 `json:"confidence"`
	Error        string  `json:"error,omitempty"`
}

// batchRequest is the /predict/batch request body
type batchRequest struct {
	Spots   []Input `json:"spots"`
	Hour    int     `json:"hour"`
	Weekday int     `json:"weekday"`
}

// batchResponse is the /predict/batch response body
type batchResponse struct {
	Success     bool     `json:"success"`
	Predictions []Result `json:"predictions"`
	Error       string   `json:"error,omitempty"`
}

// singleResponse is the /predict response body
type singleResponse struct {
	Success    bool   `json:"success"`
	Prediction Result `json:"prediction"`
	Error      string `json:"error,omitempty"`
}

// healthResponse is the /health response body
type healthResponse struct {
	Status string `json:"status"`
}
