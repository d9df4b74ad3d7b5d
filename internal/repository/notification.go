package repository

import (
	"context"
	"fmt"

	"github.com/harvesthub/agrismart-backend/pkg/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// NotificationRepository manages user notifications
type NotificationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool, logger *zap.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:     db,
		logger: logger,
	}
}

// CreateNotification creates a new notification
func (r *NotificationRepository) CreateNotification(ctx context.Context, n *model.Notification) error {
	query := `
		INSERT INTO notifications (id, user_id, type, title, message, avatar, read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		n.ID,
		n.UserID,
		n.Type,
		n.Title,
		n.Message,
		n.Avatar,
		n.Read,
		n.CreatedAt,
	)

	if err != nil {
		r.logger.Error("failed to create notification",
			zap.Error(err),
			zap.String("user_id", n.UserID),
		)
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

// ListNotifications retrieves a user's notifications, newest first
func (r *NotificationRepository) ListNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	query := `
		SELECT id, user_id, type, title, message, avatar, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to list notifications", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.Type,
			&n.Title,
			&n.Message,
			&n.Avatar,
			&n.Read,
			&n.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan notification", zap.Error(err))
			continue
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating notifications", zap.Error(err))
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// MarkRead marks one notification as read. The boolean reports whether a
// matching notification existed.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) (bool, error) {
	query := `
		UPDATE notifications
		SET read = TRUE
		WHERE id = $1 AND user_id = $2
	`

	result, err := r.db.Exec(ctx, query, notificationID, userID)
	if err != nil {
		r.logger.Error("failed to mark notification read",
			zap.Error(err),
			zap.String("notification_id", notificationID),
		)
		return false, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// MarkAllRead marks all of a user's notifications as read
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	query := `UPDATE notifications SET read = TRUE WHERE user_id = $1`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to mark notifications read",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return nil
}

// DeleteNotification removes one notification. The boolean reports whether a
// matching notification existed.
func (r *NotificationRepository) DeleteNotification(ctx context.Context, userID, notificationID string) (bool, error) {
	query := `DELETE FROM notifications WHERE id = $1 AND user_id = $2`

	result, err := r.db.Exec(ctx, query, notificationID, userID)
	if err != nil {
		r.logger.Error("failed to delete notification",
			zap.Error(err),
			zap.String("notification_id", notificationID),
		)
		return false, fmt.Errorf("failed to delete notification: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// DeleteAllNotifications empties a user's tray
func (r *NotificationRepository) DeleteAllNotifications(ctx context.Context, userID string) error {
	query := `DELETE FROM notifications WHERE user_id = $1`

	_, err := r.db.Exec(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to delete notifications",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("failed to delete notifications: %w", err)
	}

	return nil
}
