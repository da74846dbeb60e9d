package recommend

import (
	"context"

	"github.com/google/uuid"

	"github.com/parkpilot/parkpilot/internal/facility"
)

// FacilityFinder is the slice of the facility service the engine needs
type FacilityFinder interface {
	FindNearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]facility.NearbyFacility, error)
	GetSlotStatus(ctx context.Context, facilityID uuid.UUID) (*facility.SlotStatusSummary, error)
}

// ServiceInterface defines the contract for the recommendation engine
type ServiceInterface interface {
	GetRecommendations(ctx context.Context, req *Request) (*Response, error)
}
