package integration_tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harvesthub/agrismart-backend/internal/handler"
	"github.com/harvesthub/agrismart-backend/internal/repository"
	"github.com/harvesthub/agrismart-backend/internal/service"
	"github.com/harvesthub/agrismart-backend/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestCommunityFeedIntegration covers the community feed: pull-to-refresh,
// posting a question, liking posts and managing the notification tray
func TestCommunityFeedIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	logger := zap.NewNop()

	db, cleanup := setupTestDatabase(t, ctx)
	defer cleanup()

	profileRepo := repository.NewProfileRepository(db, logger)
	communityRepo := repository.NewCommunityRepository(db, logger)
	notificationRepo := repository.NewNotificationRepository(db, logger)

	profileService := service.NewProfileService(profileRepo, logger)
	communityService := service.NewCommunityService(communityRepo, logger)
	notificationService := service.NewNotificationService(notificationRepo, logger)

	communityHandler := handler.NewCommunityHandler(communityService, profileService, notificationService, 0, logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, logger)

	userID := createTestUser(t, ctx, db)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := router.Group("/api/v1")
	api.Use(authStub(userID))
	{
		api.GET("/community/feed", communityHandler.GetFeed)
		api.POST("/community/feed/refresh", communityHandler.RefreshFeed)
		api.POST("/community/posts", communityHandler.CreatePost)
		api.POST("/community/posts/:id/like", communityHandler.LikePost)
		api.GET("/notifications", notificationHandler.List)
		api.POST("/notifications/:id/read", notificationHandler.MarkRead)
		api.DELETE("/notifications/:id", notificationHandler.Remove)
		api.DELETE("/notifications", notificationHandler.Clear)
	}

	type refreshResponse struct {
		Refreshed bool `json:"refreshed"`
	}

	type trayResponse struct {
		Notifications []model.Notification `json:"notifications"`
		Unread        int                  `json:"unread"`
	}

	t.Run("Pull to refresh flow", func(t *testing.T) {
		t.Log("Step 1: A short pull snaps back without refreshing")
		w := doJSON(t, router, http.MethodPost, "/api/v1/community/feed/refresh",
			gin.H{"pull_distance": 100, "at_top": true}, "")
		require.Equal(t, http.StatusOK, w.Code, "Refresh call should succeed: %s", w.Body.String())

		var refresh refreshResponse
		decodeJSON(t, w, &refresh)
		assert.False(t, refresh.Refreshed, "Damped pull of 50pt should stay under the threshold")

		w = doJSON(t, router, http.MethodGet, "/api/v1/notifications", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		var tray trayResponse
		decodeJSON(t, w, &tray)
		assert.Empty(t, tray.Notifications, "A snapped-back pull should not notify")
		assert.Zero(t, tray.Unread)

		t.Log("Step 2: Pulling while scrolled down is ignored")
		w = doJSON(t, router, http.MethodPost, "/api/v1/community/feed/refresh",
			gin.H{"pull_distance": 400, "at_top": false}, "")
		require.Equal(t, http.StatusOK, w.Code)
		decodeJSON(t, w, &refresh)
		assert.False(t, refresh.Refreshed, "The gesture should only arm at the top of the feed")

		t.Log("Step 3: A full pull refreshes the feed")
		w = doJSON(t, router, http.MethodPost, "/api/v1/community/feed/refresh",
			gin.H{"pull_distance": 200, "at_top": true}, "")
		require.Equal(t, http.StatusOK, w.Code, "Refresh call should succeed: %s", w.Body.String())
		decodeJSON(t, w, &refresh)
		assert.True(t, refresh.Refreshed, "Damped pull of 100pt should cross the threshold")

		t.Log("Step 4: The refresh leaves an unread notification")
		w = doJSON(t, router, http.MethodGet, "/api/v1/notifications", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		decodeJSON(t, w, &tray)
		require.Len(t, tray.Notifications, 1)
		assert.Equal(t, "Feed updated", tray.Notifications[0].Title)
		assert.False(t, tray.Notifications[0].Read)
		assert.Equal(t, 1, tray.Unread)

		t.Log("Step 5: Reading it drops the unread count to zero")
		w = doJSON(t, router, http.MethodPost, "/api/v1/notifications/"+tray.Notifications[0].ID+"/read", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodGet, "/api/v1/notifications", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		decodeJSON(t, w, &tray)
		require.Len(t, tray.Notifications, 1)
		assert.True(t, tray.Notifications[0].Read)
		assert.Zero(t, tray.Unread)

		t.Log("Step 6: Removing it empties the tray")
		w = doJSON(t, router, http.MethodDelete, "/api/v1/notifications/"+tray.Notifications[0].ID, nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodDelete, "/api/v1/notifications/"+uuid.New().String(), nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code, "Removing an unknown notification should 404")

		w = doJSON(t, router, http.MethodGet, "/api/v1/notifications", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		decodeJSON(t, w, &tray)
		assert.Empty(t, tray.Notifications)

		t.Log("Step 7: The refreshed feed has posts")
		w = doJSON(t, router, http.MethodGet, "/api/v1/community/feed", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var feed struct {
			Group   string       `json:"group"`
			Insight string       `json:"insight"`
			Posts   []model.Post `json:"posts"`
		}
		decodeJSON(t, w, &feed)
		assert.NotEmpty(t, feed.Group)
		assert.NotEmpty(t, feed.Posts, "Seeded advisories should be in the feed")
	})

	t.Run("Posting and liking", func(t *testing.T) {
		t.Log("Step 1: Posting a question")
		w := doJSON(t, router, http.MethodPost, "/api/v1/community/posts",
			gin.H{"content": "Yellow spots on my soybean leaves, what should I spray?"}, "")
		require.Equal(t, http.StatusOK, w.Code, "Post creation should succeed: %s", w.Body.String())

		var post model.Post
		decodeJSON(t, w, &post)
		require.NotEmpty(t, post.ID)
		assert.Equal(t, 0, post.Likes)

		t.Log("Step 2: The question shows up in the Q&A tab")
		w = doJSON(t, router, http.MethodGet, "/api/v1/community/feed?tab=qa", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var feed struct {
			Posts []model.Post `json:"posts"`
		}
		decodeJSON(t, w, &feed)
		found := false
		for _, p := range feed.Posts {
			if p.ID == post.ID {
				found = true
			}
		}
		assert.True(t, found, "New question should appear in the Q&A feed")

		t.Log("Step 3: Liking the post bumps its count")
		w = doJSON(t, router, http.MethodPost, "/api/v1/community/posts/"+post.ID+"/like", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var liked struct {
			Likes int `json:"likes"`
		}
		decodeJSON(t, w, &liked)
		assert.Equal(t, 1, liked.Likes)

		t.Log("Step 4: Liking an unknown post is a 404")
		w = doJSON(t, router, http.MethodPost, "/api/v1/community/posts/"+uuid.New().String()+"/like", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		t.Log("Step 5: Empty questions are rejected")
		w = doJSON(t, router, http.MethodPost, "/api/v1/community/posts", gin.H{"content": ""}, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Clearing the notification tray", func(t *testing.T) {
		t.Log("Step 1: A refresh leaves a fresh notification")
		w := doJSON(t, router, http.MethodPost, "/api/v1/community/feed/refresh",
			gin.H{"pull_distance": 200, "at_top": true}, "")
		require.Equal(t, http.StatusOK, w.Code)

		var tray trayResponse
		w = doJSON(t, router, http.MethodGet, "/api/v1/notifications", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		decodeJSON(t, w, &tray)
		require.NotEmpty(t, tray.Notifications)

		t.Log("Step 2: Clearing the tray removes everything")
		w = doJSON(t, router, http.MethodDelete, "/api/v1/notifications", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodGet, "/api/v1/notifications", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		decodeJSON(t, w, &tray)
		assert.Empty(t, tray.Notifications)
		assert.Zero(t, tray.Unread)
	})
}
