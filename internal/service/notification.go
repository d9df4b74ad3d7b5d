package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harvesthub/agrismart-backend/pkg/model"
)

// NotificationRepository persists per-user notifications.
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
	ListNotifications(ctx context.Context, userID string) ([]model.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) error
	DeleteNotification(ctx context.Context, userID, notificationID string) (bool, error)
	DeleteAllNotifications(ctx context.Context, userID string) error
}

// NotificationService fans app events out to the notification tray.
type NotificationService struct {
	repo   NotificationRepository
	logger *zap.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo NotificationRepository, logger *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, logger: logger}
}

// Notify records a notification for a user.
func (s *NotificationService) Notify(ctx context.Context, userID string, nType model.NotificationType, title, message string) (*model.Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	switch nType {
	case model.NotifSystem, model.NotifLike, model.NotifComment, model.NotifPost:
	default:
		return nil, fmt.Errorf("unknown notification type: %s", nType)
	}

	n := &model.Notification{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      nType,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateNotification(ctx, n); err != nil {
		s.logger.Error("failed to create notification",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return n, nil
}

// List returns a user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]model.Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	return s.repo.ListNotifications(ctx, userID)
}

// MarkRead flags one notification as seen.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) error {
	if userID == "" || notificationID == "" {
		return fmt.Errorf("user ID and notification ID are required")
	}
	found, err := s.repo.MarkRead(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotificationNotFound, notificationID)
	}
	return nil
}

// MarkAllRead clears the unread badge in one shot.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	return s.repo.MarkAllRead(ctx, userID)
}

// Remove deletes one notification from the tray.
func (s *NotificationService) Remove(ctx context.Context, userID, notificationID string) error {
	if userID == "" || notificationID == "" {
		return fmt.Errorf("user ID and notification ID are required")
	}
	found, err := s.repo.DeleteNotification(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrNotificationNotFound, notificationID)
	}
	return nil
}

// Clear empties the tray entirely.
func (s *NotificationService) Clear(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	return s.repo.DeleteAllNotifications(ctx, userID)
}
