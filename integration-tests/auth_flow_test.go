package integration_tests

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/harvesthub/agrismart-backend/internal/audit"
	"github.com/harvesthub/agrismart-backend/internal/handler"
	"github.com/harvesthub/agrismart-backend/internal/middleware"
	"github.com/harvesthub/agrismart-backend/internal/repository"
	"github.com/harvesthub/agrismart-backend/internal/security"
	"github.com/harvesthub/agrismart-backend/internal/service"
	"github.com/harvesthub/agrismart-backend/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestAuthenticationIntegration covers phone OTP login end to end: requesting
// a code, verifying it, and using the issued token against a protected route
func TestAuthenticationIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	logger := zap.NewNop()

	db, cleanup := setupTestDatabase(t, ctx)
	defer cleanup()

	encryptor, err := security.NewEncryptor([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	sender := &captureOTPSender{}

	userRepo := repository.NewUserRepository(db, logger)
	profileRepo := repository.NewProfileRepository(db, logger)

	authService := service.NewAuthService(userRepo, sender, encryptor, []byte("integration-test-secret"), time.Hour, logger)
	profileService := service.NewProfileService(profileRepo, logger)

	auditLogger := audit.NewLogger(db, logger)

	authHandler := handler.NewAuthHandler(authService, logger)
	profileHandler := handler.NewProfileHandler(profileService, auditLogger, logger)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/otp/request", authHandler.RequestOTP)
		auth.POST("/otp/verify", authHandler.VerifyOTP)
	}

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(authService))
	{
		api.GET("/profile", profileHandler.GetProfile)
		api.PUT("/profile", profileHandler.SaveProfile)
	}

	const phone = "9876543210"

	t.Run("Complete OTP login flow", func(t *testing.T) {
		t.Log("Step 1: Requesting a one-time code")
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/otp/request", gin.H{"phone": phone}, "")
		require.Equal(t, http.StatusOK, w.Code, "OTP request should succeed: %s", w.Body.String())

		sentPhone, code := sender.last()
		assert.Equal(t, phone, sentPhone, "Code should go to the requested phone")
		require.Len(t, code, 4, "Code should be four digits")

		t.Log("Step 2: Verifying the code")
		w = doJSON(t, router, http.MethodPost, "/api/v1/auth/otp/verify", gin.H{"phone": phone, "code": code}, "")
		require.Equal(t, http.StatusOK, w.Code, "Verification should succeed: %s", w.Body.String())

		var verified struct {
			Token string     `json:"token"`
			User  model.User `json:"user"`
		}
		decodeJSON(t, w, &verified)
		require.NotEmpty(t, verified.Token, "A session token should be issued")
		require.NotEmpty(t, verified.User.ID, "A user record should be created")
		firstUserID := verified.User.ID

		t.Log("Step 3: Rejecting unauthenticated access")
		w = doJSON(t, router, http.MethodGet, "/api/v1/profile", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "Protected route should require a token")

		t.Log("Step 4: Using the token on a protected route")
		profile := model.FarmerProfile{
			Name:        "Ramesh",
			Village:     "Khandwa",
			LandSize:    2.5,
			LandUnit:    "Acres",
			WaterSource: model.WaterSourceCanal,
		}
		w = doJSON(t, router, http.MethodPut, "/api/v1/profile", profile, verified.Token)
		require.Equal(t, http.StatusOK, w.Code, "Profile save should succeed: %s", w.Body.String())

		w = doJSON(t, router, http.MethodGet, "/api/v1/profile", nil, verified.Token)
		require.Equal(t, http.StatusOK, w.Code)

		var stored model.FarmerProfile
		decodeJSON(t, w, &stored)
		assert.Equal(t, "Khandwa", stored.Village)
		assert.Equal(t, firstUserID, stored.UserID, "Profile should belong to the logged-in user")

		t.Log("Step 5: Logging in again resolves to the same user")
		w = doJSON(t, router, http.MethodPost, "/api/v1/auth/otp/request", gin.H{"phone": phone}, "")
		require.Equal(t, http.StatusOK, w.Code)

		_, code = sender.last()
		w = doJSON(t, router, http.MethodPost, "/api/v1/auth/otp/verify", gin.H{"phone": phone, "code": code}, "")
		require.Equal(t, http.StatusOK, w.Code)

		decodeJSON(t, w, &verified)
		assert.Equal(t, firstUserID, verified.User.ID, "Repeat login should not create a second account")
	})

	t.Run("Code cannot be replayed", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/otp/request", gin.H{"phone": phone}, "")
		require.Equal(t, http.StatusOK, w.Code)

		_, code := sender.last()
		w = doJSON(t, router, http.MethodPost, "/api/v1/auth/otp/verify", gin.H{"phone": phone, "code": code}, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodPost, "/api/v1/auth/otp/verify", gin.H{"phone": phone, "code": code}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "A consumed code should not verify twice")
	})

	t.Run("Wrong code burns the pending entry", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/otp/request", gin.H{"phone": phone}, "")
		require.Equal(t, http.StatusOK, w.Code)

		_, code := sender.last()
		wrong := "0000"
		if wrong == code {
			wrong = "1111"
		}

		w = doJSON(t, router, http.MethodPost, "/api/v1/auth/otp/verify", gin.H{"phone": phone, "code": wrong}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "Wrong code should be rejected")

		w = doJSON(t, router, http.MethodPost, "/api/v1/auth/otp/verify", gin.H{"phone": phone, "code": code}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "Real code should be invalid after a failed attempt")
	})
}
