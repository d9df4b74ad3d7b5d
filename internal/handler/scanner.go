package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harvesthub/agrismart-backend/internal/metrics"
	"github.com/harvesthub/agrismart-backend/internal/service"
	"go.uber.org/zap"
)

// maxScanImageSize caps uploads at 10 MiB
const maxScanImageSize = 10 << 20

// ScannerHandler implements crop health scan endpoints
type ScannerHandler struct {
	service *service.ScannerService
	logger  *zap.Logger
}

// NewScannerHandler creates a new ScannerHandler
func NewScannerHandler(service *service.ScannerService, logger *zap.Logger) *ScannerHandler {
	return &ScannerHandler{
		service: service,
		logger:  logger,
	}
}

// Analyze diagnoses a field photo uploaded as multipart form data
func (h *ScannerHandler) Analyze(c *gin.Context) {
	userID := currentUserID(c)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "An image file is required",
		})
		return
	}
	defer file.Close()

	if header.Size > maxScanImageSize {
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Code:    "IMAGE_TOO_LARGE",
			Message: "Image must be under 10 MB",
		})
		return
	}

	image, err := io.ReadAll(io.LimitReader(file, maxScanImageSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Failed to read image",
			Details: stringPtr(err.Error()),
		})
		return
	}

	scan, err := h.service.Analyze(c.Request.Context(), userID, image, header.Header.Get("Content-Type"))
	if err != nil {
		metrics.ScansAnalyzed.WithLabelValues("error").Inc()
		respondServiceError(c, err, "Failed to analyze image")
		return
	}

	metrics.ScansAnalyzed.WithLabelValues("ok").Inc()

	h.logger.Info("scan analyzed",
		zap.String("scan_id", scan.ID),
		zap.String("user_id", userID),
		zap.String("diagnosis", scan.Result.Diagnosis),
	)

	c.JSON(http.StatusOK, scan)
}

// History returns the farmer's past scans
func (h *ScannerHandler) History(c *gin.Context) {
	scans, err := h.service.History(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to load scan history")
		return
	}

	c.JSON(http.StatusOK, scans)
}
