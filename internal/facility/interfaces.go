package facility

import (
	"context"

	"github.com/google/uuid"
)

// RepositoryInterface defines the contract for facility repository operations
type RepositoryInterface interface {
	ListActive(ctx context.Context) ([]Facility, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Facility, error)
	CountSlotsByStatus(ctx context.Context, facilityID uuid.UUID) (SlotCounts, error)
}

// ServiceInterface defines the contract for facility service operations
type ServiceInterface interface {
	FindNearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]NearbyFacility, error)
	GetSlotStatus(ctx context.Context, facilityID uuid.UUID) (*SlotStatusSummary, error)
	ZoneOccupancy(ctx context.Context, latitude, longitude float64, rings int) ([]ZoneOccupancy, error)
}
