package geo

import (
	"github.com/uber/h3-go/v4"
)

// H3 resolution levels used by the service.
// See: https://h3geo.org/docs/core-library/restable
const (
	// H3ResolutionZone is used for zone-level occupancy aggregation
	// (~1.2 km edge, ~5.16 km²).
	H3ResolutionZone = 7
)

// LatLngToCell converts latitude/longitude to an H3 cell index at the given
// resolution. Coordinates are validated upstream; invalid input yields the
// zero cell.
func LatLngToCell(lat, lng float64, resolution int) h3.Cell {
	latLng := h3.NewLatLng(lat, lng)
	cell, err := h3.LatLngToCell(latLng, resolution)
	if err != nil {
		return 0
	}
	return cell
}

// CellToLatLng returns the center coordinates of an H3 cell.
func CellToLatLng(cell h3.Cell) (lat, lng float64) {
	latLng, err := cell.LatLng()
	if err != nil {
		return 0, 0
	}
	return latLng.Lat, latLng.Lng
}

// KRingCells returns the H3 cells within k rings of the origin point.
func KRingCells(lat, lng float64, resolution, k int) []h3.Cell {
	origin := LatLngToCell(lat, lng, resolution)
	cells, err := origin.GridDisk(k)
	if err != nil {
		return []h3.Cell{origin}
	}
	return cells
}
