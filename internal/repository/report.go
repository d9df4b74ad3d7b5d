package repository

import (
	"context"
	"fmt"

	"github.com/harvesthub/agrismart-backend/pkg/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ReportRepository manages generated report metadata
type ReportRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool, logger *zap.Logger) *ReportRepository {
	return &ReportRepository{
		db:     db,
		logger: logger,
	}
}

// CreateReport creates a new report record
func (r *ReportRepository) CreateReport(ctx context.Context, report *model.Report) error {
	query := `
		INSERT INTO reports (id, user_id, crop, file_path, generated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		report.ID,
		report.UserID,
		report.Crop,
		report.FilePath,
		report.GeneratedAt,
	)

	if err != nil {
		r.logger.Error("failed to create report record",
			zap.Error(err),
			zap.String("report_id", report.ID),
			zap.String("user_id", report.UserID),
		)
		return fmt.Errorf("failed to create report record: %w", err)
	}

	return nil
}

// ListReports retrieves a user's reports, newest first
func (r *ReportRepository) ListReports(ctx context.Context, userID string) ([]model.Report, error) {
	query := `
		SELECT id, user_id, crop, file_path, generated_at
		FROM reports
		WHERE user_id = $1
		ORDER BY generated_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to list reports", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []model.Report
	for rows.Next() {
		var report model.Report
		err := rows.Scan(
			&report.ID,
			&report.UserID,
			&report.Crop,
			&report.FilePath,
			&report.GeneratedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan report", zap.Error(err))
			continue
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating reports", zap.Error(err))
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}

// GetReport retrieves one report owned by the user
func (r *ReportRepository) GetReport(ctx context.Context, userID, reportID string) (*model.Report, error) {
	query := `
		SELECT id, user_id, crop, file_path, generated_at
		FROM reports
		WHERE id = $1 AND user_id = $2
	`

	var report model.Report
	err := r.db.QueryRow(ctx, query, reportID, userID).Scan(
		&report.ID,
		&report.UserID,
		&report.Crop,
		&report.FilePath,
		&report.GeneratedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("failed to get report", zap.Error(err), zap.String("report_id", reportID))
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	return &report, nil
}
