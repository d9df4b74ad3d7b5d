package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harvesthub/agrismart-backend/internal/service"
	"github.com/harvesthub/agrismart-backend/pkg/model"
	"go.uber.org/zap"
)

// MarketHandler implements mandi price endpoints
type MarketHandler struct {
	market   *service.MarketService
	profiles *service.ProfileService
	logger   *zap.Logger
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(market *service.MarketService, profiles *service.ProfileService, logger *zap.Logger) *MarketHandler {
	return &MarketHandler{
		market:   market,
		profiles: profiles,
		logger:   logger,
	}
}

// ListQuotes returns all tracked commodity quotes
func (h *MarketHandler) ListQuotes(c *gin.Context) {
	quotes, err := h.market.Quotes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to load market quotes")
		return
	}

	c.JSON(http.StatusOK, quotes)
}

// GetActiveQuote returns the quote matching the farmer's active crop plus the
// best nearby mandi opportunity, if any.
func (h *MarketHandler) GetActiveQuote(c *gin.Context) {
	userID := currentUserID(c)

	activeCrop := ""
	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err == nil && profile.ActiveCrop != nil {
		activeCrop = *profile.ActiveCrop
	}

	quote, err := h.market.QuoteFor(c.Request.Context(), activeCrop)
	if err != nil {
		respondServiceError(c, err, "Failed to load market quote")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quote":      quote,
		"best_mandi": service.BestMandi(quote),
	})
}

// RefreshSnapshot replaces the stored price snapshot with fresh quotes
func (h *MarketHandler) RefreshSnapshot(c *gin.Context) {
	var quotes []model.MarketPrice
	if err := c.ShouldBindJSON(&quotes); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	if err := h.market.RefreshSnapshot(c.Request.Context(), quotes); err != nil {
		respondServiceError(c, err, "Failed to refresh market snapshot")
		return
	}

	h.logger.Info("market snapshot refreshed", zap.Int("quotes", len(quotes)))

	c.JSON(http.StatusOK, gin.H{
		"message": "Snapshot refreshed",
		"count":   len(quotes),
	})
}
