package recommend

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/parkpilot/parkpilot/internal/areameta"
	"github.com/parkpilot/parkpilot/internal/facility"
	"github.com/parkpilot/parkpilot/internal/prediction"
	"github.com/parkpilot/parkpilot/pkg/common"
	"github.com/parkpilot/parkpilot/pkg/geo"
	"github.com/parkpilot/parkpilot/pkg/logger"
)

// Config holds the engine's tunables. Passed at construction so tests and
// concurrent deployments can run with independent settings.
type Config struct {
	DefaultRadiusKm             float64
	DefaultArrivalOffsetMinutes int
	MaxResults                  int
	SlotStatusConcurrency       int
}

// DefaultConfig returns the production defaults
func DefaultConfig() Config {
	return Config{
		DefaultRadiusKm:             3,
		DefaultArrivalOffsetMinutes: 15,
		MaxResults:                  3,
		SlotStatusConcurrency:       8,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DefaultRadiusKm <= 0 {
		c.DefaultRadiusKm = d.DefaultRadiusKm
	}
	if c.DefaultArrivalOffsetMinutes <= 0 {
		c.DefaultArrivalOffsetMinutes = d.DefaultArrivalOffsetMinutes
	}
	if c.MaxResults <= 0 {
		c.MaxResults = d.MaxResults
	}
	if c.SlotStatusConcurrency <= 0 {
		c.SlotStatusConcurrency = d.SlotStatusConcurrency
	}
	return c
}

// Service is the recommendation engine: it orchestrates the geospatial
// lookup, the area heuristics and the prediction oracle into a ranked list.
type Service struct {
	facilities FacilityFinder
	oracle     prediction.Oracle
	cfg        Config
	now        func() time.Time
}

// NewService creates a new recommendation engine
func NewService(facilities FacilityFinder, oracle prediction.Oracle, cfg Config) *Service {
	return &Service{
		facilities: facilities,
		oracle:     oracle,
		cfg:        cfg.withDefaults(),
		now:        time.Now,
	}
}

// GetRecommendations returns the top-ranked parking facilities near the
// destination. Oracle and per-facility read failures degrade gracefully; only
// the candidate search itself can fail the request.
func (s *Service) GetRecommendations(ctx context.Context, req *Request) (*Response, error) {
	radiusKm := s.cfg.DefaultRadiusKm
	if req.RadiusKm != nil && *req.RadiusKm > 0 {
		radiusKm = *req.RadiusKm
	}
	arrivalOffset := s.cfg.DefaultArrivalOffsetMinutes
	if req.ArrivalTimeMinutes != nil && *req.ArrivalTimeMinutes > 0 {
		arrivalOffset = *req.ArrivalTimeMinutes
	}

	destLat, destLng := *req.DestinationLatitude, *req.DestinationLongitude
	userLat, userLng := *req.UserLatitude, *req.UserLongitude

	candidates, err := s.facilities.FindNearby(ctx, destLat, destLng, radiusKm)
	if err != nil {
		return nil, common.NewInternalError("failed to search parking facilities", err)
	}

	if len(candidates) == 0 {
		return &Response{
			Success:            true,
			Recommendations:    []Recommendation{},
			MLServiceAvailable: false,
			Message:            fmt.Sprintf("No parking spots found within %gkm of destination", radiusKm),
		}, nil
	}

	oracleUp := s.oracle.HealthCheck(ctx)

	now := s.now()
	arrival := now.Add(time.Duration(arrivalOffset) * time.Minute)
	arrivalHour := arrival.Hour()
	arrivalWeekday := int(arrival.Weekday())
	weather := areameta.WeatherBucket(now)
	eventType := areameta.EventTypeBucket(now)

	inputs := make([]prediction.Input, len(candidates))
	for i, c := range candidates {
		poi := areameta.DeriveFeatures(c.Name, c.Address)
		inputs[i] = prediction.Input{
			SpotID:             c.ID.String(),
			SlotType:           req.VehicleType,
			Hour:               arrivalHour,
			Weekday:            arrivalWeekday,
			Weather:            weather,
			EventType:          eventType,
			POIOfficeCount:     poi.OfficeCount,
			POIRestaurantCount: poi.RestaurantCount,
			POIStoreCount:      poi.StoreCount,
		}
	}

	var predictions []prediction.Result
	if oracleUp {
		predictions = s.oracle.PredictBatch(ctx, inputs, arrivalHour, arrivalWeekday)
	} else {
		predictions = prediction.NeutralResults(inputs)
	}

	statuses := s.fetchSlotStatuses(ctx, candidates)

	recommendations := make([]Recommendation, len(candidates))
	for i, c := range candidates {
		recommendations[i] = s.buildRecommendation(c, predictions[i], statuses[i], userLat, userLng)
	}

	// Stable sort keeps the distance-ascending input order on score ties.
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].RecommendationScore > recommendations[j].RecommendationScore
	})
	if len(recommendations) > s.cfg.MaxResults {
		recommendations = recommendations[:s.cfg.MaxResults]
	}

	requestsTotal.WithLabelValues(oracleLabel(oracleUp)).Inc()

	return &Response{
		Success:            true,
		Recommendations:    recommendations,
		MLServiceAvailable: oracleUp,
		Message:            fmt.Sprintf("Found %d recommended parking spots", len(recommendations)),
	}, nil
}

// fetchSlotStatuses reads slot summaries for all candidates with bounded
// concurrency. A failed read degrades that facility to zero availability
// instead of failing the request.
func (s *Service) fetchSlotStatuses(ctx context.Context, candidates []facility.NearbyFacility) []*facility.SlotStatusSummary {
	statuses := make([]*facility.SlotStatusSummary, len(candidates))

	sem := make(chan struct{}, s.cfg.SlotStatusConcurrency)
	var wg sync.WaitGroup
	for i := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()

			summary, err := s.facilities.GetSlotStatus(ctx, candidates[i].ID)
			if err != nil {
				logger.WarnContext(ctx, "slot status read failed, treating facility as full",
					zap.String("facility_id", candidates[i].ID.String()),
					zap.Error(err))
				summary = &facility.SlotStatusSummary{}
			}
			statuses[i] = summary
		}(i)
	}
	wg.Wait()

	return statuses
}

func (s *Service) buildRecommendation(c facility.NearbyFacility, pred prediction.Result, status *facility.SlotStatusSummary, userLat, userLng float64) Recommendation {
	distanceFromUser := geo.Haversine(userLat, userLng, c.Latitude, c.Longitude)

	currentAvailability := 0.0
	if status.TotalSlots > 0 {
		currentAvailability = float64(status.FreeSlots) / float64(status.TotalSlots)
	}

	hasAmenities := c.IsCovered || c.HasSecurity || c.HasEVCharging

	score, breakdown := computeScore(scoreFactors{
		DistanceFromDestKm:    c.DistanceKm,
		CurrentAvailability:   currentAvailability,
		PredictedAvailability: pred.ProbFree,
		Confidence:            pred.Confidence,
		PricePerHour:          c.PricePerHour,
		HasAmenities:          hasAmenities,
	})

	return Recommendation{
		SpotID:                  c.ID.String(),
		Name:                    c.Name,
		Address:                 c.Address,
		Latitude:                c.Latitude,
		Longitude:               c.Longitude,
		DistanceFromDestination: geo.Round2(c.DistanceKm),
		DistanceFromUser:        geo.Round2(distanceFromUser),
		EstimatedTravelTime:     geo.EstimateTravelTime(distanceFromUser),

		TotalSlots:           status.TotalSlots,
		CurrentFreeSlots:     status.FreeSlots,
		CurrentOccupancyRate: geo.Round2(status.OccupancyRate),

		PredictedOccupancyProbability: geo.Round2(pred.ProbOccupied),
		PredictedAvailability:         geo.Round2(pred.ProbFree),
		MLConfidence:                  geo.Round2(pred.Confidence),

		RecommendationScore: score,

		PricePerHour:  c.PricePerHour,
		IsCovered:     c.IsCovered,
		HasSecurity:   c.HasSecurity,
		HasEVCharging: c.HasEVCharging,
		Rating:        c.Rating,

		ScoreBreakdown: breakdown,
	}
}

func oracleLabel(up bool) string {
	if up {
		return "available"
	}
	return "degraded"
}
