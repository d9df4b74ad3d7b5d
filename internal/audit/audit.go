// Package audit records who changed what, when and from where. Entries go to
// the audit_logs table and to the application log; losing the table write is
// reported but never fails the request that triggered it.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Op is the kind of change being recorded.
type Op string

const (
	OpCreate Op = "CREATE"
	OpUpdate Op = "UPDATE"
)

// Resource names the aggregate a change applies to.
type Resource string

const (
	ResourceFarmerProfile Resource = "farmer_profile"
	ResourceFarmTask      Resource = "farm_task"
	ResourceReport        Resource = "report"
)

// Logger writes the audit trail.
type Logger struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewLogger creates a new audit Logger
func NewLogger(db *pgxpool.Pool, logger *zap.Logger) *Logger {
	return &Logger{
		db:     db,
		logger: logger,
	}
}

// LogCreate records the creation of a resource by a user.
func (l *Logger) LogCreate(ctx context.Context, userID string, resource Resource, resourceID, ip, userAgent string) error {
	return l.record(ctx, OpCreate, userID, resource, resourceID, ip, userAgent)
}

// LogUpdate records a change to an existing resource.
func (l *Logger) LogUpdate(ctx context.Context, userID string, resource Resource, resourceID, ip, userAgent string) error {
	return l.record(ctx, OpUpdate, userID, resource, resourceID, ip, userAgent)
}

func (l *Logger) record(ctx context.Context, op Op, userID string, resource Resource, resourceID, ip, userAgent string) error {
	now := time.Now()

	l.logger.Info("audit",
		zap.String("user_id", userID),
		zap.String("op", string(op)),
		zap.String("resource", string(resource)),
		zap.String("resource_id", resourceID),
		zap.String("ip", ip),
	)

	query := `
		INSERT INTO audit_logs (user_id, operation_type, resource_type, resource_id, timestamp, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if _, err := l.db.Exec(ctx, query, userID, op, resource, resourceID, now, ip, userAgent); err != nil {
		l.logger.Error("failed to persist audit entry",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("op", string(op)),
			zap.String("resource", string(resource)),
		)
		return fmt.Errorf("failed to persist audit entry: %w", err)
	}
	return nil
}
