package integration_tests

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harvesthub/agrismart-backend/internal/audit"
	"github.com/harvesthub/agrismart-backend/internal/azure"
	"github.com/harvesthub/agrismart-backend/internal/handler"
	"github.com/harvesthub/agrismart-backend/internal/pdf"
	"github.com/harvesthub/agrismart-backend/internal/repository"
	"github.com/harvesthub/agrismart-backend/internal/service"
	"github.com/harvesthub/agrismart-backend/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestReportGenerationIntegration covers the seasonal report: generating the
// PDF, archiving it in blob storage and downloading it back
func TestReportGenerationIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	logger := zap.NewNop()

	db, cleanup := setupTestDatabase(t, ctx)
	defer cleanup()

	blob := azure.NewMockBlobStorageClient(logger)

	profileRepo := repository.NewProfileRepository(db, logger)
	taskRepo := repository.NewTaskRepository(db, logger)
	marketRepo := repository.NewMarketRepository(db, logger)
	reportRepo := repository.NewReportRepository(db, logger)

	profileService := service.NewProfileService(profileRepo, logger)
	recommendationService := service.NewRecommendationService(logger)
	planService := service.NewPlanService(logger)
	taskService := service.NewTaskService(taskRepo, planService, logger)
	marketService := service.NewMarketService(marketRepo, 0, logger)
	reportService := service.NewReportService(
		reportRepo, profileService, planService, taskService,
		recommendationService, marketService, pdf.NewPDFGenerator(logger), blob, logger)

	auditLogger := audit.NewLogger(db, logger)

	profileHandler := handler.NewProfileHandler(profileService, auditLogger, logger)
	reportHandler := handler.NewReportHandler(reportService, auditLogger, logger)

	userID := createTestUser(t, ctx, db)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	api := router.Group("/api/v1")
	api.Use(authStub(userID))
	{
		api.PUT("/profile", profileHandler.SaveProfile)
		api.PUT("/profile/active-crop", profileHandler.SetActiveCrop)
		api.POST("/reports", reportHandler.Generate)
		api.GET("/reports", reportHandler.List)
		api.GET("/reports/:id/download", reportHandler.Download)
	}

	t.Run("Generate and download flow", func(t *testing.T) {
		t.Log("Step 1: Reports need an onboarded farmer with an active crop")
		w := doJSON(t, router, http.MethodPost, "/api/v1/reports", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code, "No profile yet, generation should fail")

		profile := model.FarmerProfile{
			Name:        "Suresh",
			Village:     "Barwani",
			LandSize:    5,
			LandUnit:    "Acres",
			WaterSource: model.WaterSourceCanal,
		}
		w = doJSON(t, router, http.MethodPut, "/api/v1/profile", profile, "")
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, router, http.MethodPost, "/api/v1/reports", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, "No active crop yet, generation should fail")

		w = doJSON(t, router, http.MethodPut, "/api/v1/profile/active-crop", gin.H{"crop": "Wheat"}, "")
		require.Equal(t, http.StatusOK, w.Code)

		t.Log("Step 2: Generating the report")
		w = doJSON(t, router, http.MethodPost, "/api/v1/reports", nil, "")
		require.Equal(t, http.StatusOK, w.Code, "Report generation should succeed: %s", w.Body.String())

		var report model.Report
		decodeJSON(t, w, &report)
		require.NotEmpty(t, report.ID)
		assert.Equal(t, "Wheat", report.Crop)
		assert.Equal(t, userID, report.UserID)

		t.Log("Step 3: The PDF landed in blob storage")
		blobs := blob.ListBlobs()
		require.Len(t, blobs, 1)
		assert.True(t, strings.HasPrefix(blobs[0], "reports/"), "PDF should be archived under reports/")

		t.Log("Step 4: The report shows up in the history")
		w = doJSON(t, router, http.MethodGet, "/api/v1/reports", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var reports []model.Report
		decodeJSON(t, w, &reports)
		require.Len(t, reports, 1)
		assert.Equal(t, report.ID, reports[0].ID)

		t.Log("Step 5: Downloading the PDF")
		w = doJSON(t, router, http.MethodGet, "/api/v1/reports/"+report.ID+"/download", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Header().Get("Content-Disposition"), report.ID)
		assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF"), "Download should be a PDF document")

		t.Log("Step 6: Unknown reports are a 404")
		w = doJSON(t, router, http.MethodGet, "/api/v1/reports/"+uuid.New().String()+"/download", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
