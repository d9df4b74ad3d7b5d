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

// MarketRepository stores the latest mandi price snapshot. The snapshot is a
// single JSONB row replaced wholesale on every refresh.
type MarketRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewMarketRepository creates a new MarketRepository
func NewMarketRepository(db *pgxpool.Pool, logger *zap.Logger) *MarketRepository {
	return &MarketRepository{
		db:     db,
		logger: logger,
	}
}

// GetSnapshot retrieves the stored price snapshot. Returns nil without error
// when no snapshot has been saved yet.
func (r *MarketRepository) GetSnapshot(ctx context.Context) ([]model.MarketPrice, error) {
	query := `SELECT quotes FROM market_snapshot WHERE id = 1`

	var raw []byte
	err := r.db.QueryRow(ctx, query).Scan(&raw)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error("failed to get market snapshot", zap.Error(err))
		return nil, fmt.Errorf("failed to get market snapshot: %w", err)
	}

	var quotes []model.MarketPrice
	if err := json.Unmarshal(raw, &quotes); err != nil {
		r.logger.Error("failed to decode market snapshot", zap.Error(err))
		return nil, fmt.Errorf("failed to decode market snapshot: %w", err)
	}

	return quotes, nil
}

// SaveSnapshot replaces the stored price snapshot
func (r *MarketRepository) SaveSnapshot(ctx context.Context, quotes []model.MarketPrice) error {
	raw, err := json.Marshal(quotes)
	if err != nil {
		return fmt.Errorf("failed to encode market snapshot: %w", err)
	}

	query := `
		INSERT INTO market_snapshot (id, quotes, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET
			quotes = EXCLUDED.quotes,
			updated_at = NOW()
	`

	_, err = r.db.Exec(ctx, query, raw)
	if err != nil {
		r.logger.Error("failed to save market snapshot", zap.Error(err))
		return fmt.Errorf("failed to save market snapshot: %w", err)
	}

	return nil
}
