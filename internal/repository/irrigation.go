package repository

import (
	"context"
	"fmt"

	"github.com/harvesthub/agrismart-backend/pkg/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// IrrigationRepository manages irrigation zones
type IrrigationRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewIrrigationRepository creates a new IrrigationRepository
func NewIrrigationRepository(db *pgxpool.Pool, logger *zap.Logger) *IrrigationRepository {
	return &IrrigationRepository{
		db:     db,
		logger: logger,
	}
}

// ListZones retrieves a user's irrigation zones ordered by zone id
func (r *IrrigationRepository) ListZones(ctx context.Context, userID string) ([]model.IrrigationZone, error) {
	query := `
		SELECT zone_id, user_id, name, moisture, active, next_schedule, image, updated_at
		FROM irrigation_zones
		WHERE user_id = $1
		ORDER BY zone_id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to list irrigation zones", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to list irrigation zones: %w", err)
	}
	defer rows.Close()

	var zones []model.IrrigationZone
	for rows.Next() {
		var zone model.IrrigationZone
		err := rows.Scan(
			&zone.ID,
			&zone.UserID,
			&zone.Name,
			&zone.Moisture,
			&zone.Active,
			&zone.NextSchedule,
			&zone.Image,
			&zone.UpdatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan irrigation zone", zap.Error(err))
			continue
		}
		zones = append(zones, zone)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating irrigation zones", zap.Error(err))
		return nil, fmt.Errorf("error iterating irrigation zones: %w", err)
	}

	return zones, nil
}

// UpsertZone inserts or replaces an irrigation zone
func (r *IrrigationRepository) UpsertZone(ctx context.Context, zone *model.IrrigationZone) error {
	query := `
		INSERT INTO irrigation_zones (
			zone_id, user_id, name, moisture, active, next_schedule, image, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, zone_id) DO UPDATE SET
			name = EXCLUDED.name,
			moisture = EXCLUDED.moisture,
			active = EXCLUDED.active,
			next_schedule = EXCLUDED.next_schedule,
			image = EXCLUDED.image,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		zone.ID,
		zone.UserID,
		zone.Name,
		zone.Moisture,
		zone.Active,
		zone.NextSchedule,
		zone.Image,
		zone.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("failed to upsert irrigation zone",
			zap.Error(err),
			zap.String("user_id", zone.UserID),
			zap.Int("zone_id", zone.ID),
		)
		return fmt.Errorf("failed to upsert irrigation zone: %w", err)
	}

	return nil
}
