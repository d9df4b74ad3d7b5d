package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harvesthub/agrismart-backend/pkg/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// TaskRepository stores the generated task list per (user, crop). The list is
// written as one JSONB document since it is always read and rewritten whole.
type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{
		db:     db,
		logger: logger,
	}
}

// GetTasks retrieves the stored task list for a user and crop. Returns an
// empty list without error when nothing has been generated yet.
func (r *TaskRepository) GetTasks(ctx context.Context, userID, crop string) ([]model.FarmTask, error) {
	query := `
		SELECT tasks
		FROM plan_tasks
		WHERE user_id = $1 AND crop_name = $2
	`

	var raw []byte
	err := r.db.QueryRow(ctx, query, userID, crop).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("failed to get tasks",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("crop", crop),
		)
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}

	var tasks []model.FarmTask
	if err := json.Unmarshal(raw, &tasks); err != nil {
		r.logger.Error("failed to decode stored tasks",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("crop", crop),
		)
		return nil, fmt.Errorf("failed to decode stored tasks: %w", err)
	}

	return tasks, nil
}

// SaveTasks stores the full task list for a user and crop
func (r *TaskRepository) SaveTasks(ctx context.Context, userID, crop string, tasks []model.FarmTask) error {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("failed to encode tasks: %w", err)
	}

	query := `
		INSERT INTO plan_tasks (user_id, crop_name, tasks, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, crop_name) DO UPDATE SET
			tasks = EXCLUDED.tasks,
			updated_at = NOW()
	`

	_, err = r.db.Exec(ctx, query, userID, crop, raw)
	if err != nil {
		r.logger.Error("failed to save tasks",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("crop", crop),
		)
		return fmt.Errorf("failed to save tasks: %w", err)
	}

	return nil
}
