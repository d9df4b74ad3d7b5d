package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/harvesthub/agrismart-backend/pkg/model"
)

// TaskRepository persists the task list for a (user, crop) pair.
type TaskRepository interface {
	GetTasks(ctx context.Context, userID, crop string) ([]model.FarmTask, error)
	SaveTasks(ctx context.Context, userID, crop string, tasks []model.FarmTask) error
}

// TaskService owns the farm task lifecycle. A task list is generated once per
// (user, crop) and only its statuses change afterwards.
type TaskService struct {
	repo   TaskRepository
	plans  *PlanService
	logger *zap.Logger
}

// NewTaskService creates a new TaskService
func NewTaskService(repo TaskRepository, plans *PlanService, logger *zap.Logger) *TaskService {
	return &TaskService{
		repo:   repo,
		plans:  plans,
		logger: logger,
	}
}

// allowedTransitions restricts status changes to actionable states. Generated
// statuses (upcoming, and the terminal completed/missed) never move again.
var allowedTransitions = map[model.TaskStatus][]model.TaskStatus{
	model.TaskPending: {model.TaskCompleted, model.TaskMissed, model.TaskRemind},
	model.TaskRemind:  {model.TaskCompleted, model.TaskMissed, model.TaskPending},
}

// LoadOrGenerate returns the stored task list for the crop, generating and
// persisting a fresh one only when nothing usable is stored. A stored
// non-empty list always wins, so completed work survives restarts.
func (s *TaskService) LoadOrGenerate(ctx context.Context, userID, crop string, now time.Time) ([]model.FarmTask, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if crop == "" {
		return nil, fmt.Errorf("crop is required")
	}

	stored, err := s.repo.GetTasks(ctx, userID, crop)
	if err != nil {
		// A broken store should not leave the farmer without a plan.
		s.logger.Warn("failed to load stored tasks, regenerating",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("crop", crop),
		)
	}
	if len(stored) > 0 {
		return stored, nil
	}

	generated := s.plans.GenerateTasks(crop, now)
	if len(generated) > 0 {
		if err := s.repo.SaveTasks(ctx, userID, crop, generated); err != nil {
			s.logger.Error("failed to persist generated tasks",
				zap.Error(err),
				zap.String("user_id", userID),
				zap.String("crop", crop),
			)
			return nil, fmt.Errorf("failed to persist generated tasks: %w", err)
		}
	}

	s.logger.Info("task list generated",
		zap.String("user_id", userID),
		zap.String("crop", crop),
		zap.Int("count", len(generated)),
	)
	return generated, nil
}

// UpdateStatus applies a status change to one task and persists the whole
// list. Transitions outside the allowed set return ErrInvalidTransition.
func (s *TaskService) UpdateStatus(ctx context.Context, userID, crop, taskID string, status model.TaskStatus) ([]model.FarmTask, error) {
	tasks, err := s.repo.GetTasks(ctx, userID, crop)
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	idx := -1
	for i := range tasks {
		if tasks[i].ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrTaskNotFound
	}

	if !transitionAllowed(tasks[idx].Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, tasks[idx].Status, status)
	}
	tasks[idx].Status = status

	if err := s.repo.SaveTasks(ctx, userID, crop, tasks); err != nil {
		return nil, fmt.Errorf("failed to persist task update: %w", err)
	}

	s.logger.Info("task status updated",
		zap.String("user_id", userID),
		zap.String("crop", crop),
		zap.String("task_id", taskID),
		zap.String("status", string(status)),
	)
	return tasks, nil
}

// TodayView filters to the tasks a farmer can act on right now.
func TodayView(tasks []model.FarmTask) []model.FarmTask {
	return filterTasks(tasks, model.TaskPending, model.TaskRemind)
}

// HistoryView filters to tasks already resolved one way or the other.
func HistoryView(tasks []model.FarmTask) []model.FarmTask {
	return filterTasks(tasks, model.TaskCompleted, model.TaskMissed)
}

func filterTasks(tasks []model.FarmTask, statuses ...model.TaskStatus) []model.FarmTask {
	out := make([]model.FarmTask, 0, len(tasks))
	for _, t := range tasks {
		for _, st := range statuses {
			if t.Status == st {
				out = append(out, t)
				break
			}
		}
	}
	return out
}

func transitionAllowed(from, to model.TaskStatus) bool {
	for _, allowed := range allowedTransitions[from] {
		if to == allowed {
			return true
		}
	}
	return false
}
