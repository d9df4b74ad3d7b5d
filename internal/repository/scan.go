package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harvesthub/agrismart-backend/pkg/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ScanRepository stores crop health scan records. The diagnosis is kept as a
// JSONB document mirroring the model's shape.
type ScanRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewScanRepository creates a new ScanRepository
func NewScanRepository(db *pgxpool.Pool, logger *zap.Logger) *ScanRepository {
	return &ScanRepository{
		db:     db,
		logger: logger,
	}
}

// CreateScan creates a new scan record
func (r *ScanRepository) CreateScan(ctx context.Context, scan *model.ScanRecord) error {
	result, err := json.Marshal(scan.Result)
	if err != nil {
		return fmt.Errorf("failed to encode scan result: %w", err)
	}

	query := `
		INSERT INTO scans (id, user_id, image_path, result, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = r.db.Exec(ctx, query,
		scan.ID,
		scan.UserID,
		scan.ImagePath,
		result,
		scan.CreatedAt,
	)

	if err != nil {
		r.logger.Error("failed to create scan record",
			zap.Error(err),
			zap.String("scan_id", scan.ID),
			zap.String("user_id", scan.UserID),
		)
		return fmt.Errorf("failed to create scan record: %w", err)
	}

	return nil
}

// ListScans retrieves a user's scan history, newest first
func (r *ScanRepository) ListScans(ctx context.Context, userID string) ([]model.ScanRecord, error) {
	query := `
		SELECT id, user_id, image_path, result, created_at
		FROM scans
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to list scans", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var scans []model.ScanRecord
	for rows.Next() {
		var (
			scan model.ScanRecord
			raw  []byte
		)
		err := rows.Scan(
			&scan.ID,
			&scan.UserID,
			&scan.ImagePath,
			&raw,
			&scan.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan scan record", zap.Error(err))
			continue
		}
		if err := json.Unmarshal(raw, &scan.Result); err != nil {
			r.logger.Error("failed to decode scan result", zap.Error(err), zap.String("scan_id", scan.ID))
			continue
		}
		scans = append(scans, scan)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating scans", zap.Error(err))
		return nil, fmt.Errorf("error iterating scans: %w", err)
	}

	return scans, nil
}
