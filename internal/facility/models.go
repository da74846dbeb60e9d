package facility

import (
	"time"

	"github.com/google/uuid"
)

// SlotStatus represents the state of an individual parking slot
type SlotStatus string

const (
	SlotStatusFree     SlotStatus = "FREE"
	SlotStatusOccupied SlotStatus = "OCCUPIED"
	SlotStatusBlocked  SlotStatus = "BLOCKED"
)

// SlotType categorizes what kind of vehicle a slot accepts
type SlotType string

const (
	SlotTypeCar          SlotType = "car"
	SlotTypeBike         SlotType = "bike"
	SlotTypeLargeVehicle SlotType = "large_vehicle"
	SlotTypeDisabled     SlotType = "disabled"
)

// Facility represents a parking facility
type Facility struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	PricePerHour  float64   `json:"pricePerHour"`
	IsCovered     bool      `json:"isCovered"`
	HasSecurity   bool      `json:"hasSecurity"`
	HasEVCharging bool      `json:"hasEVCharging"`
	Rating        float64   `json:"rating"`
	TotalSlots    int       `json:"totalSlots"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NearbyFacility is a facility annotated with its distance from a search point
type NearbyFacility struct {
	Facility
	DistanceKm float64 `json:"distanceKm"`
}

// SlotCounts holds per-status slot counts for a facility
type SlotCounts struct {
	Free     int
	Occupied int
	Blocked  int
}

// Total returns the number of active slots across all statuses
func (c SlotCounts) Total() int {
	return c.Free + c.Occupied + c.Blocked
}

// SlotStatusSummary is the live availability snapshot for a facility
type SlotStatusSummary struct {
	TotalSlots    int     `json:"totalSlots"`
	FreeSlots     int     `json:"freeSlots"`
	OccupiedSlots int     `json:"occupiedSlots"`
	BlockedSlots  int     `json:"blockedSlots"`
	OccupancyRate float64 `json:"occupancyRate"`
}

// ZoneOccupancy aggregates facility availability over an H3 cell
type ZoneOccupancy struct {
	Cell          string  `json:"cell"`
	FacilityCount int     `json:"facilityCount"`
	TotalSlots    int     `json:"totalSlots"`
	FreeSlots     int     `json:"freeSlots"`
	OccupancyRate float64 `json:"occupancyRate"`
}
