package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harvesthub/agrismart-backend/internal/gesture"
	"github.com/harvesthub/agrismart-backend/internal/metrics"
	"github.com/harvesthub/agrismart-backend/internal/service"
	"github.com/harvesthub/agrismart-backend/pkg/model"
	"go.uber.org/zap"
)

// CommunityHandler implements community feed endpoints
type CommunityHandler struct {
	community     *service.CommunityService
	profiles      *service.ProfileService
	notifications *service.NotificationService
	refreshDelay  time.Duration
	logger        *zap.Logger
}

// NewCommunityHandler creates a new CommunityHandler
func NewCommunityHandler(
	community *service.CommunityService,
	profiles *service.ProfileService,
	notifications *service.NotificationService,
	refreshDelay time.Duration,
	logger *zap.Logger,
) *CommunityHandler {
	return &CommunityHandler{
		community:     community,
		profiles:      profiles,
		notifications: notifications,
		refreshDelay:  refreshDelay,
		logger:        logger,
	}
}

// activeCrop resolves the farmer's selected crop, empty when none is set
func (h *CommunityHandler) activeCrop(c *gin.Context) string {
	profile, err := h.profiles.Get(c.Request.Context(), currentUserID(c))
	if err != nil || profile.ActiveCrop == nil {
		return ""
	}
	return *profile.ActiveCrop
}

// GetFeed returns the feed for a tab, narrowed to the farmer's active crop
func (h *CommunityHandler) GetFeed(c *gin.Context) {
	tab := service.TabAdvisory
	if c.Query("tab") == "qa" {
		tab = service.TabQA
	}

	activeCrop := h.activeCrop(c)

	posts, err := h.community.Feed(c.Request.Context(), tab, activeCrop)
	if err != nil {
		respondServiceError(c, err, "Failed to load feed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"group":   service.GroupName(activeCrop),
		"insight": service.InsightAt(time.Now().Minute()),
		"posts":   posts,
	})
}

type createPostRequest struct {
	Content string `json:"content" binding:"required"`
}

// CreatePost publishes a question from the farmer
func (h *CommunityHandler) CreatePost(c *gin.Context) {
	userID := currentUserID(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	post, err := h.community.CreatePost(c.Request.Context(), userID, req.Content, h.activeCrop(c))
	if err != nil {
		respondServiceError(c, err, "Failed to create post")
		return
	}

	c.JSON(http.StatusOK, post)
}

// LikePost bumps a post's like count
func (h *CommunityHandler) LikePost(c *gin.Context) {
	likes, err := h.community.LikePost(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to like post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"likes": likes,
	})
}

type refreshFeedRequest struct {
	PullDistance float64 `json:"pull_distance" binding:"required"`
	AtTop        *bool   `json:"at_top" binding:"required"`
}

// RefreshFeed runs the pull-to-refresh cycle for the reported drag. A pull
// that falls short of the threshold snaps back without a sync.
func (h *CommunityHandler) RefreshFeed(c *gin.Context) {
	userID := currentUserID(c)

	var req refreshFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("invalid request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Invalid request body",
			Details: stringPtr(err.Error()),
		})
		return
	}

	ctrl := gesture.NewController(
		func(ctx context.Context) error {
			return h.community.EnsureSeeded(ctx)
		},
		h.logger,
		gesture.WithDelay(h.refreshDelay),
		gesture.WithUpdatedCallback(func() {
			metrics.FeedRefreshes.Inc()
			if _, err := h.notifications.Notify(c.Request.Context(), userID, model.NotifSystem,
				"Feed updated", "Latest advisories and questions are in"); err != nil {
				h.logger.Warn("failed to notify feed refresh", zap.Error(err))
			}
		}),
	)

	if !ctrl.Begin(*req.AtTop) {
		c.JSON(http.StatusOK, gin.H{"refreshed": false})
		return
	}
	ctrl.Drag(req.PullDistance)

	refreshed, err := ctrl.Release(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to refresh feed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"refreshed": refreshed})
}
