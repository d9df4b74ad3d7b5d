package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harvesthub/agrismart-backend/internal/service"
	"go.uber.org/zap"
)

// NotificationHandler implements notification tray endpoints
type NotificationHandler struct {
	service *service.NotificationService
	logger  *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(service *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		service: service,
		logger:  logger,
	}
}

// List returns the farmer's notifications, newest first, with the count
// the unread badge should show
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.service.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to load notifications")
		return
	}

	unread := 0
	for _, n := range notifications {
		if !n.Read {
			unread++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread":        unread,
	})
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := currentUserID(c)
	notificationID := c.Param("id")

	if err := h.service.MarkRead(c.Request.Context(), userID, notificationID); err != nil {
		respondServiceError(c, err, "Failed to mark notification read")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Marked read"})
}

// MarkAllRead clears the farmer's unread badge
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := currentUserID(c)

	if err := h.service.MarkAllRead(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err, "Failed to mark notifications read")
		return
	}

	h.logger.Info("notifications marked read", zap.String("user_id", userID))

	c.JSON(http.StatusOK, gin.H{"message": "All marked read"})
}

// Remove deletes one notification from the tray
func (h *NotificationHandler) Remove(c *gin.Context) {
	userID := currentUserID(c)
	notificationID := c.Param("id")

	if err := h.service.Remove(c.Request.Context(), userID, notificationID); err != nil {
		respondServiceError(c, err, "Failed to remove notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification removed"})
}

// Clear empties the farmer's notification tray
func (h *NotificationHandler) Clear(c *gin.Context) {
	userID := currentUserID(c)

	if err := h.service.Clear(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err, "Failed to clear notifications")
		return
	}

	h.logger.Info("notifications cleared", zap.String("user_id", userID))

	c.JSON(http.StatusOK, gin.H{"message": "Notifications cleared"})
}
