package occupancy

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/parkpilot/parkpilot/internal/facility"
	"github.com/parkpilot/parkpilot/pkg/common"
)

// AreaStatus is the estimated live status of one facility
type AreaStatus struct {
	FacilityID           uuid.UUID `json:"facilityId"`
	Name                 string    `json:"name"`
	TotalSlots           int       `json:"totalSlots"`
	OccupiedSlots        int       `json:"occupiedSlots"`
	FreeSlots            int       `json:"freeSlots"`
	OccupancyRatePercent int       `json:"occupancyRatePercent"`
	Latitude             float64   `json:"latitude"`
	Longitude            float64   `json:"longitude"`
	Status               string    `json:"status"`
	LastUpdated          time.Time `json:"lastUpdated"`
}

// StatusReport aggregates estimated statuses across all facilities
type StatusReport struct {
	Timestamp      time.Time    `json:"timestamp"`
	Areas          []AreaStatus `json:"areas"`
	TotalAreas     int          `json:"totalAreas"`
	TotalSlots     int          `json:"totalSlots"`
	TotalFreeSlots int          `json:"totalFreeSlots"`
}

// FacilityLister is the slice of the facility repository this service needs
type FacilityLister interface {
	ListActive(ctx context.Context) ([]facility.Facility, error)
	GetByID(ctx context.Context, id uuid.UUID) (*facility.Facility, error)
}

// Service estimates facility occupancy from fixed time-of-day heuristics
type Service struct {
	repo FacilityLister
	now  func() time.Time
}

// NewService creates a new occupancy estimation service
func NewService(repo FacilityLister) *Service {
	return &Service{repo: repo, now: time.Now}
}

// CurrentStatus estimates the status of every active facility
func (s *Service) CurrentStatus(ctx context.Context) (*StatusReport, error) {
	facilities, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active facilities: %w", err)
	}

	now := s.now()
	report := &StatusReport{
		Timestamp:  now,
		Areas:      make([]AreaStatus, 0, len(facilities)),
		TotalAreas: len(facilities),
	}

	for _, f := range facilities {
		area := estimateArea(f, now)
		report.Areas = append(report.Areas, area)
		report.TotalSlots += area.TotalSlots
		report.TotalFreeSlots += area.FreeSlots
	}

	return report, nil
}

// FacilityStatus estimates the status of a single facility
func (s *Service) FacilityStatus(ctx context.Context, id uuid.UUID) (*AreaStatus, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !f.IsActive {
		return nil, common.ErrNotFound
	}

	area := estimateArea(*f, s.now())
	return &area, nil
}

func estimateArea(f facility.Facility, now time.Time) AreaStatus {
	rate := EstimateOccupancyRate(f.Name, now)
	occupied := int(math.Floor(float64(f.TotalSlots) * rate))
	free := f.TotalSlots - occupied

	status := "available"
	switch {
	case free == 0:
		status = "full"
	case free <= 10:
		status = "limited"
	}

	return AreaStatus{
		FacilityID:           f.ID,
		Name:                 f.Name,
		TotalSlots:           f.TotalSlots,
		OccupiedSlots:        occupied,
		FreeSlots:            free,
		OccupancyRatePercent: int(math.Round(rate * 100)),
		Latitude:             f.Latitude,
		Longitude:            f.Longitude,
		Status:               status,
		LastUpdated:          now,
	}
}
