package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harvesthub/agrismart-backend/pkg/model"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) CreateNotification(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, userID, notificationID string) (bool, error) {
	args := m.Called(ctx, userID, notificationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationRepository) DeleteNotification(ctx context.Context, userID, notificationID string) (bool, error) {
	args := m.Called(ctx, userID, notificationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepository) DeleteAllNotifications(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestNotify(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)

	svc := NewNotificationService(repo, zap.NewNop())
	n, err := svc.Notify(context.Background(), "user-1", model.NotifSystem, "Task Done", "Task marked as completed. Progress updated!")
	require.NoError(t, err)

	assert.NotEmpty(t, n.ID)
	assert.Equal(t, model.NotifSystem, n.Type)
	assert.False(t, n.Read)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestNotifyValidation(t *testing.T) {
	svc := NewNotificationService(new(MockNotificationRepository), zap.NewNop())
	ctx := context.Background()

	_, err := svc.Notify(ctx, "", model.NotifSystem, "Title", "msg")
	assert.Error(t, err)

	_, err = svc.Notify(ctx, "user-1", model.NotifSystem, "", "msg")
	assert.Error(t, err)

	_, err = svc.Notify(ctx, "user-1", model.NotificationType("broadcast"), "Title", "msg")
	assert.Error(t, err)
}

func TestMarkReadValidation(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("MarkRead", mock.Anything, "user-1", "n1").Return(true, nil)
	repo.On("MarkAllRead", mock.Anything, "user-1").Return(nil)

	svc := NewNotificationService(repo, zap.NewNop())
	ctx := context.Background()

	assert.Error(t, svc.MarkRead(ctx, "user-1", ""))
	assert.NoError(t, svc.MarkRead(ctx, "user-1", "n1"))
	assert.NoError(t, svc.MarkAllRead(ctx, "user-1"))
}

func TestMarkReadUnknown(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("MarkRead", mock.Anything, "user-1", "missing").Return(false, nil)

	svc := NewNotificationService(repo, zap.NewNop())
	err := svc.MarkRead(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestRemove(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("DeleteNotification", mock.Anything, "user-1", "n1").Return(true, nil)

	svc := NewNotificationService(repo, zap.NewNop())
	assert.NoError(t, svc.Remove(context.Background(), "user-1", "n1"))
	repo.AssertExpectations(t)
}

func TestRemoveUnknown(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("DeleteNotification", mock.Anything, "user-1", "missing").Return(false, nil)

	svc := NewNotificationService(repo, zap.NewNop())
	err := svc.Remove(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestClear(t *testing.T) {
	repo := new(MockNotificationRepository)
	repo.On("DeleteAllNotifications", mock.Anything, "user-1").Return(nil)

	svc := NewNotificationService(repo, zap.NewNop())
	assert.NoError(t, svc.Clear(context.Background(), "user-1"))
	assert.Error(t, svc.Clear(context.Background(), ""))
	repo.AssertExpectations(t)
}
