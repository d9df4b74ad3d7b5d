package repository

import (
	"context"
	"fmt"

	"github.com/harvesthub/agrismart-backend/pkg/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ProfileRepository manages farmer profiles
type ProfileRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:     db,
		logger: logger,
	}
}

// GetByUserID retrieves a farmer profile. Returns nil without error when the
// user has not completed onboarding yet.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.FarmerProfile, error) {
	query := `
		SELECT
			user_id, name, village, land_size, land_unit,
			irrigation_type, water_source, latitude, longitude,
			soil_n, soil_p, soil_k, soil_ph, soil_card_image,
			active_crop, created_at, updated_at
		FROM farmer_profiles
		WHERE user_id = $1
	`

	var (
		profile   model.FarmerProfile
		soil      model.SoilReading
		soilN     *string
		soilP     *string
		soilK     *string
		soilPH    *string
		cardImage *string
	)
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Name,
		&profile.Village,
		&profile.LandSize,
		&profile.LandUnit,
		&profile.IrrigationType,
		&profile.WaterSource,
		&profile.Latitude,
		&profile.Longitude,
		&soilN,
		&soilP,
		&soilK,
		&soilPH,
		&cardImage,
		&profile.ActiveCrop,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("failed to get farmer profile", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("failed to get farmer profile: %w", err)
	}

	if soilN != nil || soilP != nil || soilK != nil || soilPH != nil || cardImage != nil {
		soil.N = deref(soilN)
		soil.P = deref(soilP)
		soil.K = deref(soilK)
		soil.PH = deref(soilPH)
		soil.CardImage = cardImage
		profile.Soil = &soil
	}

	return &profile, nil
}

// Upsert inserts or replaces a farmer profile
func (r *ProfileRepository) Upsert(ctx context.Context, profile *model.FarmerProfile) error {
	query := `
		INSERT INTO farmer_profiles (
			user_id, name, village, land_size, land_unit,
			irrigation_type, water_source, latitude, longitude,
			soil_n, soil_p, soil_k, soil_ph, soil_card_image,
			active_crop, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			village = EXCLUDED.village,
			land_size = EXCLUDED.land_size,
			land_unit = EXCLUDED.land_unit,
			irrigation_type = EXCLUDED.irrigation_type,
			water_source = EXCLUDED.water_source,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			soil_n = EXCLUDED.soil_n,
			soil_p = EXCLUDED.soil_p,
			soil_k = EXCLUDED.soil_k,
			soil_ph = EXCLUDED.soil_ph,
			soil_card_image = EXCLUDED.soil_card_image,
			updated_at = EXCLUDED.updated_at
	`

	var soilN, soilP, soilK, soilPH, cardImage *string
	if profile.Soil != nil {
		soilN = &profile.Soil.N
		soilP = &profile.Soil.P
		soilK = &profile.Soil.K
		soilPH = &profile.Soil.PH
		cardImage = profile.Soil.CardImage
	}

	_, err := r.db.Exec(ctx, query,
		profile.UserID,
		profile.Name,
		profile.Village,
		profile.LandSize,
		profile.LandUnit,
		profile.IrrigationType,
		profile.WaterSource,
		profile.Latitude,
		profile.Longitude,
		soilN,
		soilP,
		soilK,
		soilPH,
		cardImage,
		profile.ActiveCrop,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		r.logger.Error("failed to upsert farmer profile",
			zap.Error(err),
			zap.String("user_id", profile.UserID),
		)
		return fmt.Errorf("failed to upsert farmer profile: %w", err)
	}

	return nil
}

// SetActiveCrop updates the farmer's selected crop. A nil crop clears the selection.
func (r *ProfileRepository) SetActiveCrop(ctx context.Context, userID string, crop *string) error {
	query := `
		UPDATE farmer_profiles
		SET active_crop = $1, updated_at = NOW()
		WHERE user_id = $2
	`

	result, err := r.db.Exec(ctx, query, crop, userID)
	if err != nil {
		r.logger.Error("failed to set active crop",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("failed to set active crop: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("farmer profile not found: %s", userID)
	}

	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
