package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/harvesthub/agrismart-backend/internal/catalog"
	"github.com/harvesthub/agrismart-backend/pkg/model"
)

const marketSnapshotKey = "latest"

// MarketRepository persists the most recent market snapshot.
type MarketRepository interface {
	GetSnapshot(ctx context.Context) ([]model.MarketPrice, error)
	SaveSnapshot(ctx context.Context, quotes []model.MarketPrice) error
}

// MandiOpportunity points at a nearby market paying more than the home mandi.
type MandiOpportunity struct {
	Mandi     string  `json:"mandi"`
	Price     float64 `json:"price"`
	Distance  string  `json:"distance"`
	ExtraGain int     `json:"extra_gain"` // rupees per quintal over the home mandi
}

// MarketService serves commodity quotes and the sell/wait advisor. Reads go
// through a short-lived cache so the hot path skips the database.
type MarketService struct {
	repo   MarketRepository
	cache  *expirable.LRU[string, []model.MarketPrice]
	logger *zap.Logger
}

// NewMarketService creates a new MarketService
func NewMarketService(repo MarketRepository, cacheTTL time.Duration, logger *zap.Logger) *MarketService {
	return &MarketService{
		repo:   repo,
		cache:  expirable.NewLRU[string, []model.MarketPrice](8, nil, cacheTTL),
		logger: logger,
	}
}

// Quotes returns the current market snapshot: cache, then store, then the
// bundled quotes. A cold store is seeded so later reads have data.
func (s *MarketService) Quotes(ctx context.Context) ([]model.MarketPrice, error) {
	if cached, ok := s.cache.Get(marketSnapshotKey); ok {
		return cached, nil
	}

	stored, err := s.repo.GetSnapshot(ctx)
	if err != nil {
		s.logger.Warn("failed to load market snapshot, serving bundled quotes", zap.Error(err))
		return catalog.MarketQuotes(), nil
	}
	if len(stored) > 0 {
		s.cache.Add(marketSnapshotKey, stored)
		return stored, nil
	}

	seed := catalog.MarketQuotes()
	if err := s.repo.SaveSnapshot(ctx, seed); err != nil {
		s.logger.Warn("failed to seed market snapshot", zap.Error(err))
	} else {
		s.cache.Add(marketSnapshotKey, seed)
	}
	return seed, nil
}

// QuoteFor matches the farmer's active crop against the snapshot the way the
// app does, by loose name containment. Falls back to the first quote.
func (s *MarketService) QuoteFor(ctx context.Context, activeCrop string) (model.MarketPrice, error) {
	quotes, err := s.Quotes(ctx)
	if err != nil {
		return model.MarketPrice{}, err
	}
	if len(quotes) == 0 {
		return model.MarketPrice{}, ErrCropNotFound
	}

	if activeCrop != "" {
		needle := strings.ToLower(activeCrop)
		for _, q := range quotes {
			if strings.Contains(needle, strings.ToLower(q.Name)) {
				return q, nil
			}
		}
	}
	return quotes[0], nil
}

// BestMandi finds the highest-paying alternative market for a quote. Returns
// nil when the home mandi already has the best price.
func BestMandi(quote model.MarketPrice) *MandiOpportunity {
	best := MandiOpportunity{Mandi: quote.Mandi, Price: quote.Price, Distance: "0km"}
	for _, alt := range quote.Alternatives {
		if alt.Price > best.Price {
			best = MandiOpportunity{Mandi: alt.Mandi, Price: alt.Price, Distance: alt.Distance}
		}
	}
	if best.Mandi == quote.Mandi {
		return nil
	}
	best.ExtraGain = int(math.Round(best.Price - quote.Price))
	return &best
}

// RefreshSnapshot replaces the stored snapshot and invalidates the cache.
func (s *MarketService) RefreshSnapshot(ctx context.Context, quotes []model.MarketPrice) error {
	if err := s.repo.SaveSnapshot(ctx, quotes); err != nil {
		return err
	}
	s.cache.Remove(marketSnapshotKey)

	s.logger.Info("market snapshot refreshed", zap.Int("quotes", len(quotes)))
	return nil
}
