package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harvesthub/agrismart-backend/internal/catalog"
	"github.com/harvesthub/agrismart-backend/internal/metrics"
	"github.com/harvesthub/agrismart-backend/internal/service"
	"go.uber.org/zap"
)

// RecommendationHandler implements crop catalog and recommendation endpoints
type RecommendationHandler struct {
	profiles *service.ProfileService
	engine   *service.RecommendationService
	logger   *zap.Logger
}

// NewRecommendationHandler creates a new RecommendationHandler
func NewRecommendationHandler(profiles *service.ProfileService, engine *service.RecommendationService, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		profiles: profiles,
		engine:   engine,
		logger:   logger,
	}
}

// ListCrops returns the static crop catalog
func (h *RecommendationHandler) ListCrops(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.Crops())
}

// Recommend scores the catalog against the farmer's profile for the current month
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	userID := currentUserID(c)

	profile, err := h.profiles.Get(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to get profile")
		return
	}

	recommendations, err := h.engine.Recommend(profile, time.Now())
	if err != nil {
		respondServiceError(c, err, "Failed to compute recommendations")
		return
	}

	metrics.RecommendationsServed.Inc()

	h.logger.Info("recommendations served",
		zap.String("user_id", userID),
		zap.Int("count", len(recommendations)),
	)

	c.JSON(http.StatusOK, recommendations)
}
