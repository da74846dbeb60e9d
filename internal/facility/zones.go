package facility

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/parkpilot/parkpilot/pkg/geo"
	"github.com/parkpilot/parkpilot/pkg/logger"
)

// ZoneOccupancy aggregates live slot availability over the H3 cells within
// `rings` of the given point. Facilities whose slot counts cannot be read are
// skipped rather than failing the whole aggregation.
func (s *Service) ZoneOccupancy(ctx context.Context, latitude, longitude float64, rings int) ([]ZoneOccupancy, error) {
	if rings < 0 {
		rings = 0
	}

	cells := geo.KRingCells(latitude, longitude, geo.H3ResolutionZone, rings)
	wanted := make(map[string]bool, len(cells))
	for _, cell := range cells {
		wanted[cell.String()] = true
	}

	facilities, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active facilities: %w", err)
	}

	type zoneAccum struct {
		facilityCount int
		totalSlots    int
		freeSlots     int
	}
	zones := make(map[string]*zoneAccum)

	for _, f := range facilities {
		cell := geo.LatLngToCell(f.Latitude, f.Longitude, geo.H3ResolutionZone).String()
		if !wanted[cell] {
			continue
		}

		summary, err := s.GetSlotStatus(ctx, f.ID)
		if err != nil {
			logger.Warn("skipping facility in zone aggregation",
				zap.String("facility_id", f.ID.String()),
				zap.Error(err))
			continue
		}

		acc := zones[cell]
		if acc == nil {
			acc = &zoneAccum{}
			zones[cell] = acc
		}
		acc.facilityCount++
		acc.totalSlots += summary.TotalSlots
		acc.freeSlots += summary.FreeSlots
	}

	result := make([]ZoneOccupancy, 0, len(zones))
	for cell, acc := range zones {
		rate := 0.0
		if acc.totalSlots > 0 {
			rate = float64(acc.totalSlots-acc.freeSlots) / float64(acc.totalSlots)
		}
		result = append(result, ZoneOccupancy{
			Cell:          cell,
			FacilityCount: acc.facilityCount,
			TotalSlots:    acc.totalSlots,
			FreeSlots:     acc.freeSlots,
			OccupancyRate: math.Round(rate*100) / 100,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Cell < result[j].Cell
	})

	return result, nil
}
