package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCoordinates(t *testing.T) {
	assert.NoError(t, ValidateCoordinates(18.5204, 73.8567))
	assert.NoError(t, ValidateCoordinates(-90, -180))
	assert.NoError(t, ValidateCoordinates(90, 180))

	assert.Error(t, ValidateCoordinates(90.1, 0))
	assert.Error(t, ValidateCoordinates(-90.1, 0))
	assert.Error(t, ValidateCoordinates(0, 180.1))
	assert.Error(t, ValidateCoordinates(0, -180.1))
}

func TestValidateStructCustomTags(t *testing.T) {
	type req struct {
		Latitude    float64 `validate:"latitude"`
		Longitude   float64 `validate:"longitude"`
		VehicleType string  `validate:"vehicle_type"`
	}

	assert.NoError(t, ValidateStruct(req{Latitude: 18.5, Longitude: 73.8, VehicleType: "car"}))
	assert.NoError(t, ValidateStruct(req{Latitude: 0, Longitude: 0, VehicleType: "large_vehicle"}))

	err := ValidateStruct(req{Latitude: 123, Longitude: 73.8, VehicleType: "car"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Latitude")

	err = ValidateStruct(req{Latitude: 18.5, Longitude: 73.8, VehicleType: "submarine"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "VehicleType")
}
