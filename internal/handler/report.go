package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harvesthub/agrismart-backend/internal/audit"
	"github.com/harvesthub/agrismart-backend/internal/metrics"
	"github.com/harvesthub/agrismart-backend/internal/service"
	"go.uber.org/zap"
)

// ReportHandler implements farm report endpoints
type ReportHandler struct {
	service *service.ReportService
	audit   *audit.Logger
	logger  *zap.Logger
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(service *service.ReportService, auditLogger *audit.Logger, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		audit:   auditLogger,
		logger:  logger,
	}
}

// Generate builds a seasonal report PDF for the farmer's active crop
func (h *ReportHandler) Generate(c *gin.Context) {
	userID := currentUserID(c)

	report, err := h.service.Generate(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to generate report")
		return
	}

	metrics.ReportsGenerated.Inc()

	if err := h.audit.LogCreate(c.Request.Context(), userID, audit.ResourceReport,
		report.ID, c.ClientIP(), c.Request.UserAgent()); err != nil {
		h.logger.Warn("failed to write audit log", zap.Error(err))
	}

	h.logger.Info("report generated",
		zap.String("report_id", report.ID),
		zap.String("user_id", userID),
		zap.String("crop", report.Crop),
	)

	c.JSON(http.StatusOK, report)
}

// List returns the farmer's generated reports
func (h *ReportHandler) List(c *gin.Context) {
	reports, err := h.service.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to list reports")
		return
	}

	c.JSON(http.StatusOK, reports)
}

// Download streams a report PDF
func (h *ReportHandler) Download(c *gin.Context) {
	userID := currentUserID(c)
	reportID := c.Param("id")

	pdf, err := h.service.Download(c.Request.Context(), userID, reportID)
	if err != nil {
		respondServiceError(c, err, "Failed to download report")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, reportID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
