package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harvesthub/agrismart-backend/internal/service"
	"go.uber.org/zap"
)

// IrrigationHandler implements irrigation zone endpoints
type IrrigationHandler struct {
	service *service.IrrigationService
	logger  *zap.Logger
}

// NewIrrigationHandler creates a new IrrigationHandler
func NewIrrigationHandler(service *service.IrrigationService, logger *zap.Logger) *IrrigationHandler {
	return &IrrigationHandler{
		service: service,
		logger:  logger,
	}
}

// ListZones returns the farmer's watering zones
func (h *IrrigationHandler) ListZones(c *gin.Context) {
	zones, err := h.service.Zones(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to load zones")
		return
	}

	c.JSON(http.StatusOK, zones)
}

// ToggleZone flips one zone's pump on or off
func (h *IrrigationHandler) ToggleZone(c *gin.Context) {
	userID := currentUserID(c)

	zoneID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Zone ID must be a number",
		})
		return
	}

	zone, err := h.service.Toggle(c.Request.Context(), userID, zoneID)
	if err != nil {
		respondServiceError(c, err, "Failed to toggle zone")
		return
	}

	h.logger.Info("zone toggled",
		zap.String("user_id", userID),
		zap.Int("zone_id", zoneID),
		zap.Bool("active", zone.Active),
	)

	c.JSON(http.StatusOK, zone)
}

// ApplyRainDelay pushes back automatic schedules when rain is forecast
func (h *IrrigationHandler) ApplyRainDelay(c *gin.Context) {
	userID := currentUserID(c)

	zones, err := h.service.ApplyRainDelay(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to apply rain delay")
		return
	}

	h.logger.Info("rain delay applied",
		zap.String("user_id", userID),
		zap.Int("zones", len(zones)),
	)

	c.JSON(http.StatusOK, zones)
}
