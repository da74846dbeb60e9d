package facility

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parkpilot/parkpilot/pkg/common"
	"github.com/parkpilot/parkpilot/pkg/validation"
)

// Handler handles HTTP requests for parking facilities
type Handler struct {
	service         ServiceInterface
	defaultRadiusKm float64
}

// NewHandler creates a new facility handler
func NewHandler(service ServiceInterface, defaultRadiusKm float64) *Handler {
	return &Handler{service: service, defaultRadiusKm: defaultRadiusKm}
}

// RegisterRoutes wires facility endpoints onto the API group
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	facilities := api.Group("/facilities")
	{
		facilities.GET("/nearby", h.FindNearby)
		facilities.GET("/:id/slots", h.GetSlotStatus)
	}
	api.GET("/zones/occupancy", h.ZoneOccupancy)
}

// FindNearby handles GET /facilities/nearby?lat=&lng=&radius=
func (h *Handler) FindNearby(c *gin.Context) {
	lat, lng, ok := parseCoordinates(c)
	if !ok {
		return
	}

	radius := h.defaultRadiusKm
	if raw := c.Query("radius"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			common.ErrorResponse(c, http.StatusBadRequest, "radius must be a positive number")
			return
		}
		radius = parsed
	}

	nearby, err := h.service.FindNearby(c.Request.Context(), lat, lng, radius)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to search nearby facilities")
		return
	}

	common.SuccessResponse(c, gin.H{
		"facilities": nearby,
		"count":      len(nearby),
		"radiusKm":   radius,
	})
}

// GetSlotStatus handles GET /facilities/:id/slots
func (h *Handler) GetSlotStatus(c *gin.Context) {
	facilityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid facility id")
		return
	}

	summary, err := h.service.GetSlotStatus(c.Request.Context(), facilityID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to read slot status")
		return
	}

	common.SuccessResponse(c, summary)
}

// ZoneOccupancy handles GET /zones/occupancy?lat=&lng=&rings=
func (h *Handler) ZoneOccupancy(c *gin.Context) {
	lat, lng, ok := parseCoordinates(c)
	if !ok {
		return
	}

	rings := 1
	if raw := c.Query("rings"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > 5 {
			common.ErrorResponse(c, http.StatusBadRequest, "rings must be between 0 and 5")
			return
		}
		rings = parsed
	}

	zones, err := h.service.ZoneOccupancy(c.Request.Context(), lat, lng, rings)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to aggregate zone occupancy")
		return
	}

	common.SuccessResponse(c, gin.H{
		"zones": zones,
		"count": len(zones),
	})
}

func parseCoordinates(c *gin.Context) (lat, lng float64, ok bool) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "lat is required and must be a number")
		return 0, 0, false
	}
	lng, err = strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "lng is required and must be a number")
		return 0, 0, false
	}
	if err := validation.ValidateCoordinates(lat, lng); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return 0, 0, false
	}
	return lat, lng, true
}
