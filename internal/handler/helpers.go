package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harvesthub/agrismart-backend/internal/service"
)

// ErrorResponse is the JSON error envelope returned by every endpoint
type ErrorResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

// stringPtr creates a pointer to a string
func stringPtr(s string) *string {
	return &s
}

// currentUserID reads the authenticated user ID set by the auth middleware
func currentUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

// respondServiceError translates service sentinel errors to HTTP responses
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrProfileRequired):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "PROFILE_NOT_FOUND",
			Message: "Farmer profile not found, complete onboarding first",
		})
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrZoneNotFound),
		errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, service.ErrNotificationNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Code:    "NOT_FOUND",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrCropNotFound):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "UNKNOWN_CROP",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrEmptyContent):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
	case errors.Is(err, service.ErrInvalidOTP):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    "INVALID_OTP",
			Message: "Invalid or expired code",
		})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: fallback,
			Details: stringPtr(err.Error()),
		})
	}
}
