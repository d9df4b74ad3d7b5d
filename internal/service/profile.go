package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/harvesthub/agrismart-backend/internal/catalog"
	"github.com/harvesthub/agrismart-backend/pkg/model"
)

// ProfileRepository persists farmer profiles.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*model.FarmerProfile, error)
	Upsert(ctx context.Context, profile *model.FarmerProfile) error
	SetActiveCrop(ctx context.Context, userID string, crop *string) error
}

// ProfileService handles onboarding and profile management.
type ProfileService struct {
	repo     ProfileRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(repo ProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		repo:     repo,
		validate: validator.New(),
		logger:   logger,
	}
}

// Save validates and stores a farmer profile. Incomplete profiles are
// rejected before they can poison the recommendation engine.
func (s *ProfileService) Save(ctx context.Context, userID string, profile *model.FarmerProfile) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if profile == nil {
		return ErrProfileRequired
	}

	if err := s.validate.Struct(profile); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	profile.UserID = userID
	now := time.Now()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	if err := s.repo.Upsert(ctx, profile); err != nil {
		s.logger.Error("failed to save profile",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.Info("profile saved",
		zap.String("user_id", userID),
		zap.String("village", profile.Village),
		zap.Float64("land_size", profile.LandSize),
	)
	return nil
}

// Get retrieves a farmer's profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.FarmerProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// SetActiveCrop records the crop the farmer committed to growing. The crop
// must exist in the catalog; nil clears the selection.
func (s *ProfileService) SetActiveCrop(ctx context.Context, userID string, crop *string) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if crop != nil {
		if _, ok := catalog.CropByName(*crop); !ok {
			return fmt.Errorf("%w: %s", ErrCropNotFound, *crop)
		}
	}

	if err := s.repo.SetActiveCrop(ctx, userID, crop); err != nil {
		s.logger.Error("failed to set active crop",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return fmt.Errorf("failed to set active crop: %w", err)
	}

	if crop != nil {
		s.logger.Info("active crop selected",
			zap.String("user_id", userID),
			zap.String("crop", *crop),
		)
	} else {
		s.logger.Info("active crop cleared", zap.String("user_id", userID))
	}
	return nil
}
