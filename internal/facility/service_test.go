package facility

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/parkpilot/parkpilot/pkg/cache"
	redisclient "github.com/parkpilot/parkpilot/pkg/redis"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) ListActive(ctx context.Context) ([]Facility, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Facility), args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id uuid.UUID) (*Facility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Facility), args.Error(1)
}

func (m *mockRepo) CountSlotsByStatus(ctx context.Context, facilityID uuid.UUID) (SlotCounts, error) {
	args := m.Called(ctx, facilityID)
	return args.Get(0).(SlotCounts), args.Error(1)
}

func testFacility(name string, lat, lng float64) Facility {
	return Facility{
		ID:        uuid.New(),
		Name:      name,
		Latitude:  lat,
		Longitude: lng,
		IsActive:  true,
	}
}

func TestFindNearbyFiltersAndSorts(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)

	// Destination: Pune city center. Distances below are approximate.
	destLat, destLng := 18.5204, 73.8567
	near := testFacility("near", 18.5210, 73.8570)    // well under 1 km
	mid := testFacility("mid", 18.5300, 73.8700)      // ~1.7 km
	far := testFacility("far", 18.6000, 73.9500)      // ~13 km, outside radius
	repo.On("ListActive", mock.Anything).Return([]Facility{mid, far, near}, nil)

	result, err := svc.FindNearby(context.Background(), destLat, destLng, 3)
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, "near", result[0].Name)
	assert.Equal(t, "mid", result[1].Name)
	assert.Less(t, result[0].DistanceKm, result[1].DistanceKm)
	assert.LessOrEqual(t, result[1].DistanceKm, 3.0)
}

func TestFindNearbyEmptyRadius(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)

	repo.On("ListActive", mock.Anything).Return([]Facility{
		testFacility("far", 19.0, 74.5),
	}, nil)

	result, err := svc.FindNearby(context.Background(), 18.5204, 73.8567, 3)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestFindNearbyRepositoryError(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)

	repo.On("ListActive", mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := svc.FindNearby(context.Background(), 18.5204, 73.8567, 3)
	assert.Error(t, err)
}

func TestGetSlotStatusSummary(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)

	facilityID := uuid.New()
	repo.On("CountSlotsByStatus", mock.Anything, facilityID).
		Return(SlotCounts{Free: 30, Occupied: 60, Blocked: 10}, nil)

	summary, err := svc.GetSlotStatus(context.Background(), facilityID)
	require.NoError(t, err)

	assert.Equal(t, 100, summary.TotalSlots)
	assert.Equal(t, 30, summary.FreeSlots)
	assert.Equal(t, 60, summary.OccupiedSlots)
	assert.Equal(t, 10, summary.BlockedSlots)
	assert.InDelta(t, 0.6, summary.OccupancyRate, 0.001)
}

func TestGetSlotStatusZeroSlots(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)

	facilityID := uuid.New()
	repo.On("CountSlotsByStatus", mock.Anything, facilityID).
		Return(SlotCounts{}, nil)

	summary, err := svc.GetSlotStatus(context.Background(), facilityID)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalSlots)
	assert.Equal(t, 0.0, summary.OccupancyRate)
}

func TestGetSlotStatusCacheHit(t *testing.T) {
	db, redisMock := redismock.NewClientMock()
	cacheManager := cache.NewManager(redisclient.NewFromExisting(db))

	repo := new(mockRepo)
	svc := NewService(repo, cacheManager)

	facilityID := uuid.New()
	cacheKey := "facility:slots:" + facilityID.String()
	redisMock.ExpectGet(cacheKey).
		SetVal(`{"totalSlots":50,"freeSlots":20,"occupiedSlots":28,"blockedSlots":2,"occupancyRate":0.56}`)

	summary, err := svc.GetSlotStatus(context.Background(), facilityID)
	require.NoError(t, err)

	assert.Equal(t, 50, summary.TotalSlots)
	assert.Equal(t, 20, summary.FreeSlots)
	// Repository never touched on a cache hit.
	repo.AssertNotCalled(t, "CountSlotsByStatus", mock.Anything, mock.Anything)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestZoneOccupancyAggregatesByCell(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)

	// Two facilities a few hundred meters apart share a resolution-7 cell.
	a := testFacility("a", 18.5204, 73.8567)
	b := testFacility("b", 18.5215, 73.8580)
	repo.On("ListActive", mock.Anything).Return([]Facility{a, b}, nil)
	repo.On("CountSlotsByStatus", mock.Anything, a.ID).
		Return(SlotCounts{Free: 10, Occupied: 10}, nil)
	repo.On("CountSlotsByStatus", mock.Anything, b.ID).
		Return(SlotCounts{Free: 5, Occupied: 15}, nil)

	zones, err := svc.ZoneOccupancy(context.Background(), 18.5204, 73.8567, 1)
	require.NoError(t, err)

	require.Len(t, zones, 1)
	assert.Equal(t, 2, zones[0].FacilityCount)
	assert.Equal(t, 40, zones[0].TotalSlots)
	assert.Equal(t, 15, zones[0].FreeSlots)
	assert.InDelta(t, 0.63, zones[0].OccupancyRate, 0.001)
}

func TestZoneOccupancySkipsFailingFacility(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, nil)

	a := testFacility("a", 18.5204, 73.8567)
	b := testFacility("b", 18.5215, 73.8580)
	repo.On("ListActive", mock.Anything).Return([]Facility{a, b}, nil)
	repo.On("CountSlotsByStatus", mock.Anything, a.ID).
		Return(SlotCounts{Free: 10, Occupied: 10}, nil)
	repo.On("CountSlotsByStatus", mock.Anything, b.ID).
		Return(SlotCounts{}, errors.New("timeout"))

	zones, err := svc.ZoneOccupancy(context.Background(), 18.5204, 73.8567, 1)
	require.NoError(t, err)

	require.Len(t, zones, 1)
	assert.Equal(t, 1, zones[0].FacilityCount)
	assert.Equal(t, 20, zones[0].TotalSlots)
}
