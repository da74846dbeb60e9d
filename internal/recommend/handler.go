package recommend

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkpilot/parkpilot/pkg/common"
	"github.com/parkpilot/parkpilot/pkg/validation"
)

// Handler handles HTTP requests for parking recommendations
type Handler struct {
	service ServiceInterface
}

// NewHandler creates a new recommendation handler
func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires recommendation endpoints onto the API group
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/recommendations", h.GetRecommendations)
}

// GetRecommendations handles POST /recommendations
func (h *Handler) GetRecommendations(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "userLatitude, userLongitude, destinationLatitude, destinationLongitude and vehicleType are required")
		return
	}

	if err := validation.ValidateCoordinates(*req.UserLatitude, *req.UserLongitude); err != nil {
		badRequest(c, "invalid user coordinates: "+err.Error())
		return
	}
	if err := validation.ValidateCoordinates(*req.DestinationLatitude, *req.DestinationLongitude); err != nil {
		badRequest(c, "invalid destination coordinates: "+err.Error())
		return
	}
	if !validVehicleType(req.VehicleType) {
		badRequest(c, "vehicleType must be one of car, bike, large_vehicle, disabled")
		return
	}

	resp, err := h.service.GetRecommendations(c.Request.Context(), &req)
	if err != nil {
		var appErr *common.AppError
		if errors.As(err, &appErr) {
			c.JSON(appErr.Code, Response{Success: false, Message: appErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Message: "Failed to generate recommendations: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: message})
}

func validVehicleType(vt string) bool {
	switch vt {
	case "car", "bike", "large_vehicle", "disabled":
		return true
	}
	return false
}
