package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/harvesthub/agrismart-backend/internal/catalog"
	"github.com/harvesthub/agrismart-backend/pkg/model"
)

// rainDelaySchedule replaces the schedule of outdoor zones when rain is due.
const rainDelaySchedule = "Delayed (Rain)"

// IrrigationRepository persists irrigation zones per farm.
type IrrigationRepository interface {
	ListZones(ctx context.Context, userID string) ([]model.IrrigationZone, error)
	UpsertZone(ctx context.Context, zone *model.IrrigationZone) error
}

// IrrigationService manages watering zones and weather-driven scheduling.
type IrrigationService struct {
	repo   IrrigationRepository
	logger *zap.Logger
}

// NewIrrigationService creates a new IrrigationService
func NewIrrigationService(repo IrrigationRepository, logger *zap.Logger) *IrrigationService {
	return &IrrigationService{repo: repo, logger: logger}
}

// Zones lists a farm's zones, creating the default layout on first access.
func (s *IrrigationService) Zones(ctx context.Context, userID string) ([]model.IrrigationZone, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	zones, err := s.repo.ListZones(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load zones: %w", err)
	}
	if len(zones) > 0 {
		return zones, nil
	}

	seeded := catalog.SeedZones(userID)
	for i := range seeded {
		seeded[i].UpdatedAt = time.Now()
		if err := s.repo.UpsertZone(ctx, &seeded[i]); err != nil {
			return nil, fmt.Errorf("failed to seed zones: %w", err)
		}
	}

	s.logger.Info("irrigation zones seeded",
		zap.String("user_id", userID),
		zap.Int("count", len(seeded)),
	)
	return seeded, nil
}

// Toggle flips a zone's pump on or off and returns the updated zone.
func (s *IrrigationService) Toggle(ctx context.Context, userID string, zoneID int) (*model.IrrigationZone, error) {
	zones, err := s.Zones(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range zones {
		if zones[i].ID != zoneID {
			continue
		}
		zones[i].Active = !zones[i].Active
		zones[i].UpdatedAt = time.Now()
		if err := s.repo.UpsertZone(ctx, &zones[i]); err != nil {
			return nil, fmt.Errorf("failed to update zone: %w", err)
		}

		s.logger.Info("irrigation zone toggled",
			zap.String("user_id", userID),
			zap.Int("zone_id", zoneID),
			zap.Bool("active", zones[i].Active),
		)
		return &zones[i], nil
	}
	return nil, fmt.Errorf("%w: %d", ErrZoneNotFound, zoneID)
}

// ApplyRainDelay pushes back the schedule of field zones ahead of forecast
// rain. Greenhouse and manual zones keep their schedules.
func (s *IrrigationService) ApplyRainDelay(ctx context.Context, userID string) ([]model.IrrigationZone, error) {
	zones, err := s.Zones(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated := 0
	for i := range zones {
		if zones[i].NextSchedule == "Manual" {
			continue
		}
		zones[i].NextSchedule = rainDelaySchedule
		zones[i].UpdatedAt = time.Now()
		if err := s.repo.UpsertZone(ctx, &zones[i]); err != nil {
			return nil, fmt.Errorf("failed to update zone: %w", err)
		}
		updated++
	}

	s.logger.Info("rain delay applied",
		zap.String("user_id", userID),
		zap.Int("zones_updated", updated),
	)
	return zones, nil
}
