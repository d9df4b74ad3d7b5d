package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harvesthub/agrismart-backend/internal/audit"
	"github.com/harvesthub/agrismart-backend/internal/service"
	"github.com/harvesthub/agrismart-backend/pkg/model"
	"go.uber.org/zap"
)

// ProfileHandler implements farmer profile endpoints
type ProfileHandler struct {
	service *service.ProfileService
	audit   *audit.Logger
	logger  *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(service *service.ProfileService, auditLogger *audit.Logger, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		audit:   auditLogger,
		logger:  logger,
	}
}

// GetProfile returns the authenticated farmer's profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := currentUserID(c)

	profile, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to get profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SaveProfile creates or replaces the farmer's profile
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	userID := currentUserID(c)

	var profile model.FarmerProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	if err := h.service.Save(c.Request.Context(), userID, &profile); err != nil {
		h.logger.Error("failed to save profile",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	if err := h.audit.LogUpdate(c.Request.Context(), userID, audit.ResourceFarmerProfile,
		userID, c.ClientIP(), c.Request.UserAgent()); err != nil {
		h.logger.Warn("failed to write audit log", zap.Error(err))
	}

	h.logger.Info("profile saved",
		zap.String("user_id", userID),
		zap.String("village", profile.Village),
	)

	c.JSON(http.StatusOK, profile)
}

type activeCropRequest struct {
	Crop *string `json:"crop"`
}

// SetActiveCrop selects (or clears) the farmer's active crop
func (h *ProfileHandler) SetActiveCrop(c *gin.Context) {
	userID := currentUserID(c)

	var req activeCropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	if err := h.service.SetActiveCrop(c.Request.Context(), userID, req.Crop); err != nil {
		respondServiceError(c, err, "Failed to set active crop")
		return
	}

	crop := "none"
	if req.Crop != nil {
		crop = *req.Crop
	}
	h.logger.Info("active crop set",
		zap.String("user_id", userID),
		zap.String("crop", crop),
	)

	c.JSON(http.StatusOK, gin.H{
		"active_crop": req.Crop,
	})
}
