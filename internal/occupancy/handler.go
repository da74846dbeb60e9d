package occupancy

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parkpilot/parkpilot/pkg/common"
)

// Handler handles HTTP requests for estimated parking status
type Handler struct {
	service *Service
}

// NewHandler creates a new occupancy handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires occupancy endpoints onto the API group
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	parking := api.Group("/parking")
	{
		parking.GET("/status", h.CurrentStatus)
		parking.GET("/status/:id", h.FacilityStatus)
	}
}

// CurrentStatus handles GET /parking/status
func (h *Handler) CurrentStatus(c *gin.Context) {
	report, err := h.service.CurrentStatus(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to estimate parking status")
		return
	}

	common.SuccessResponse(c, report)
}

// FacilityStatus handles GET /parking/status/:id
func (h *Handler) FacilityStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid facility id")
		return
	}

	area, err := h.service.FacilityStatus(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "facility not found")
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to estimate facility status")
		return
	}

	common.SuccessResponse(c, area)
}
