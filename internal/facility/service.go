package facility

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parkpilot/parkpilot/pkg/cache"
	"github.com/parkpilot/parkpilot/pkg/geo"
	"github.com/parkpilot/parkpilot/pkg/logger"
)

const slotStatusCacheTTL = 10 * time.Second

// Service handles facility business logic
type Service struct {
	repo  RepositoryInterface
	cache *cache.Manager
}

// NewService creates a new facility service. The cache manager may be nil,
// in which case slot status reads always hit the repository.
func NewService(repo RepositoryInterface, cacheManager *cache.Manager) *Service {
	return &Service{
		repo:  repo,
		cache: cacheManager,
	}
}

// FindNearby returns all active facilities within radiusKm of the given
// point, sorted by distance ascending
func (s *Service) FindNearby(ctx context.Context, latitude, longitude, radiusKm float64) ([]NearbyFacility, error) {
	facilities, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active facilities: %w", err)
	}

	nearby := make([]NearbyFacility, 0, len(facilities))
	for _, f := range facilities {
		distance := geo.Haversine(latitude, longitude, f.Latitude, f.Longitude)
		if distance <= radiusKm {
			nearby = append(nearby, NearbyFacility{Facility: f, DistanceKm: distance})
		}
	}

	sort.SliceStable(nearby, func(i, j int) bool {
		return nearby[i].DistanceKm < nearby[j].DistanceKm
	})

	return nearby, nil
}

// GetSlotStatus returns the live slot availability summary for a facility.
// Results are cached briefly to absorb bursts of recommendation requests.
func (s *Service) GetSlotStatus(ctx context.Context, facilityID uuid.UUID) (*SlotStatusSummary, error) {
	cacheKey := fmt.Sprintf("facility:slots:%s", facilityID)

	if s.cache != nil {
		var cached SlotStatusSummary
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	counts, err := s.repo.CountSlotsByStatus(ctx, facilityID)
	if err != nil {
		return nil, fmt.Errorf("failed to count slots for facility %s: %w", facilityID, err)
	}

	summary := summarize(counts)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, summary, slotStatusCacheTTL); err != nil {
			logger.Warn("failed to cache slot status",
				zap.String("facility_id", facilityID.String()),
				zap.Error(err))
		}
	}

	return summary, nil
}

// InvalidateSlotStatus drops the cached availability snapshot, e.g. after a
// slot changes state
func (s *Service) InvalidateSlotStatus(ctx context.Context, facilityID uuid.UUID) {
	if s.cache == nil {
		return
	}
	cacheKey := fmt.Sprintf("facility:slots:%s", facilityID)
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		logger.Warn("failed to invalidate slot status cache",
			zap.String("facility_id", facilityID.String()),
			zap.Error(err))
	}
}

func summarize(counts SlotCounts) *SlotStatusSummary {
	total := counts.Total()
	rate := 0.0
	if total > 0 {
		rate = float64(counts.Occupied) / float64(total)
	}
	return &SlotStatusSummary{
		TotalSlots:    total,
		FreeSlots:     counts.Free,
		OccupiedSlots: counts.Occupied,
		BlockedSlots:  counts.Blocked,
		OccupancyRate: math.Round(rate*100) / 100,
	}
}
