package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/parkpilot/parkpilot/pkg/common"
)

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) GetRecommendations(ctx context.Context, req *Request) (*Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Response), args.Error(1)
}

func setupRouter(engine ServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(engine)
	handler.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func postRecommendations(t *testing.T, router *gin.Engine, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"userLatitude":         18.5100,
		"userLongitude":        73.8500,
		"destinationLatitude":  18.5204,
		"destinationLongitude": 73.8567,
		"vehicleType":          "car",
	}
}

func TestHandlerSuccess(t *testing.T) {
	engine := new(mockEngine)
	engine.On("GetRecommendations", mock.Anything, mock.Anything).Return(&Response{
		Success:            true,
		Recommendations:    []Recommendation{},
		MLServiceAvailable: true,
		Message:            "Found 0 recommended parking spots",
	}, nil)

	w := postRecommendations(t, setupRouter(engine), validBody())

	assert.Equal(t, http.StatusOK, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.True(t, resp.MLServiceAvailable)
	assert.NotNil(t, resp.Recommendations)
}

func TestHandlerMissingCoordinates(t *testing.T) {
	engine := new(mockEngine)
	router := setupRouter(engine)

	body := validBody()
	delete(body, "destinationLatitude")

	w := postRecommendations(t, router, body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	engine.AssertNotCalled(t, "GetRecommendations", mock.Anything, mock.Anything)
}

func TestHandlerMissingVehicleType(t *testing.T) {
	engine := new(mockEngine)
	body := validBody()
	delete(body, "vehicleType")

	w := postRecommendations(t, setupRouter(engine), body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerInvalidVehicleType(t *testing.T) {
	engine := new(mockEngine)
	body := validBody()
	body["vehicleType"] = "spaceship"

	w := postRecommendations(t, setupRouter(engine), body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerOutOfRangeCoordinates(t *testing.T) {
	engine := new(mockEngine)
	body := validBody()
	body["userLatitude"] = 123.0

	w := postRecommendations(t, setupRouter(engine), body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerServiceAppError(t *testing.T) {
	engine := new(mockEngine)
	engine.On("GetRecommendations", mock.Anything, mock.Anything).
		Return(nil, common.NewInternalError("failed to search parking facilities", nil))

	w := postRecommendations(t, setupRouter(engine), validBody())

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "failed to search parking facilities")
}

func TestHandlerDefaultsPassedThrough(t *testing.T) {
	engine := new(mockEngine)
	engine.On("GetRecommendations", mock.Anything, mock.MatchedBy(func(req *Request) bool {
		// Optional fields absent from the body arrive as nil.
		return req.RadiusKm == nil && req.ArrivalTimeMinutes == nil
	})).Return(&Response{Success: true, Recommendations: []Recommendation{}}, nil)

	w := postRecommendations(t, setupRouter(engine), validBody())
	assert.Equal(t, http.StatusOK, w.Code)
	engine.AssertExpectations(t)
}
