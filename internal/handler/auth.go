package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harvesthub/agrismart-backend/internal/metrics"
	"github.com/harvesthub/agrismart-backend/internal/service"
	"go.uber.org/zap"
)

// AuthHandler implements the OTP login endpoints
type AuthHandler struct {
	service *service.AuthService
	logger  *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger,
	}
}

type requestOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// RequestOTP sends a login code to the given phone number
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req requestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	if err := h.service.RequestOTP(c.Request.Context(), req.Phone); err != nil {
		h.logger.Warn("failed to request OTP", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
		return
	}

	metrics.OTPsIssued.Inc()

	c.JSON(http.StatusOK, gin.H{
		"message": "Code sent",
	})
}

// VerifyOTP exchanges a valid code for a bearer token
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	token, user, err := h.service.VerifyOTP(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		respondServiceError(c, err, "Failed to verify code")
		return
	}

	h.logger.Info("user logged in", zap.String("user_id", user.ID))

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}
