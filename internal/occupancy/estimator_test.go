package occupancy

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/parkpilot/parkpilot/internal/facility"
)

func at(hour int) time.Time {
	// A Wednesday.
	return time.Date(2025, time.March, 12, hour, 0, 0, 0, time.UTC)
}

func TestEstimateOccupancyRateByHour(t *testing.T) {
	tests := []struct {
		name     string
		hour     int
		expected float64
	}{
		{"morning rush", 9, 0.8},
		{"peak hours", 13, 0.7},
		{"evening", 18, 0.6},
		{"off hours", 2, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, EstimateOccupancyRate("Central Lot", at(tt.hour)), 0.001)
		})
	}
}

func TestEstimateOccupancyRateProfileMultiplier(t *testing.T) {
	// 0.7 base at 13:00, ×1.2 for gate lots.
	assert.InDelta(t, 0.84, EstimateOccupancyRate("Main Gate Parking", at(13)), 0.001)
	// ×0.7 for library lots.
	assert.InDelta(t, 0.49, EstimateOccupancyRate("Library Parking", at(13)), 0.001)
}

func TestEstimateOccupancyRateClamped(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		rate := EstimateOccupancyRate("Main Gate Parking", at(hour))
		assert.GreaterOrEqual(t, rate, 0.05)
		assert.LessOrEqual(t, rate, 0.95)
	}
}

func TestEstimateOccupancyRateDeterministic(t *testing.T) {
	instant := at(13)
	first := EstimateOccupancyRate("Main Gate Parking", instant)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, EstimateOccupancyRate("Main Gate Parking", instant))
	}
}

func TestEstimateAvailabilityPercent(t *testing.T) {
	// Weekday peak: 70 - 25 = 45.
	assert.Equal(t, 45, EstimateAvailabilityPercent("Central Lot", at(9)))
	// Weekday normal hours: 70 - 15 = 55.
	assert.Equal(t, 55, EstimateAvailabilityPercent("Central Lot", at(13)))
	// Weekend off hours: 70 + 20 = 90 (clamped ceiling).
	saturday := time.Date(2025, time.March, 15, 2, 0, 0, 0, time.UTC)
	assert.Equal(t, 90, EstimateAvailabilityPercent("Central Lot", saturday))
	// Gate adjustment: 45 - 10 = 35.
	assert.Equal(t, 35, EstimateAvailabilityPercent("Main Gate Parking", at(9)))
	// Library adjustment: 45 + 10 = 55.
	assert.Equal(t, 55, EstimateAvailabilityPercent("Library Parking", at(9)))
}

func TestEstimateAvailabilityPercentBounds(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for _, name := range []string{"Main Gate", "Library", "Central Lot"} {
			pct := EstimateAvailabilityPercent(name, at(hour))
			assert.GreaterOrEqual(t, pct, 10)
			assert.LessOrEqual(t, pct, 90)
		}
	}
}

type mockLister struct {
	mock.Mock
}

func (m *mockLister) ListActive(ctx context.Context) ([]facility.Facility, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]facility.Facility), args.Error(1)
}

func (m *mockLister) GetByID(ctx context.Context, id uuid.UUID) (*facility.Facility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.Facility), args.Error(1)
}

func TestCurrentStatusReport(t *testing.T) {
	repo := new(mockLister)
	svc := NewService(repo)
	svc.now = func() time.Time { return at(13) }

	repo.On("ListActive", mock.Anything).Return([]facility.Facility{
		{ID: uuid.New(), Name: "Main Gate Parking", TotalSlots: 150, IsActive: true},
		{ID: uuid.New(), Name: "Library Parking", TotalSlots: 60, IsActive: true},
	}, nil)

	report, err := svc.CurrentStatus(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalAreas)
	require.Len(t, report.Areas, 2)

	// Main Gate at 13:00: rate 0.84, 126 occupied of 150.
	gate := report.Areas[0]
	assert.Equal(t, 126, gate.OccupiedSlots)
	assert.Equal(t, 24, gate.FreeSlots)
	assert.Equal(t, 84, gate.OccupancyRatePercent)
	assert.Equal(t, "available", gate.Status)

	assert.Equal(t, 210, report.TotalSlots)

	// Library at 13:00: rate 0.49, 29 occupied of 60.
	library := report.Areas[1]
	assert.Equal(t, 31, library.FreeSlots)
	assert.Equal(t, report.TotalFreeSlots, gate.FreeSlots+library.FreeSlots)
}

func TestFacilityStatusInactive(t *testing.T) {
	repo := new(mockLister)
	svc := NewService(repo)

	id := uuid.New()
	repo.On("GetByID", mock.Anything, id).
		Return(&facility.Facility{ID: id, Name: "Closed Lot", IsActive: false}, nil)

	_, err := svc.FacilityStatus(context.Background(), id)
	assert.Error(t, err)
}
