package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harvesthub/agrismart-backend/internal/azure"
	"github.com/harvesthub/agrismart-backend/pkg/model"
)

const scanPrompt = `Analyze this plant image for diseases or nutrient deficiencies. ` +
	`Provide a professional diagnosis, confidence level (0-1), a list of recommendations, ` +
	`and specific treatment instructions. ` +
	`Respond with JSON only, using the fields: diagnosis (string), confidence (number), ` +
	`recommendations (array of strings), treatment (string).`

// VisionClient is the multimodal completion surface the scanner needs.
type VisionClient interface {
	CompleteVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// ScanRepository persists scan records.
type ScanRepository interface {
	CreateScan(ctx context.Context, scan *model.ScanRecord) error
	ListScans(ctx context.Context, userID string) ([]model.ScanRecord, error)
}

// ScannerService diagnoses crop health from field photos. The image is
// archived in blob storage and the diagnosis stored alongside it.
type ScannerService struct {
	vision VisionClient
	blob   azure.BlobStorage
	repo   ScanRepository
	logger *zap.Logger
}

// NewScannerService creates a new ScannerService
func NewScannerService(vision VisionClient, blob azure.BlobStorage, repo ScanRepository, logger *zap.Logger) *ScannerService {
	return &ScannerService{
		vision: vision,
		blob:   blob,
		repo:   repo,
		logger: logger,
	}
}

// Analyze runs the AI diagnosis on an uploaded image and records the result.
func (s *ScannerService) Analyze(ctx context.Context, userID string, image []byte, mimeType string) (*model.ScanRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if len(image) == 0 {
		return nil, fmt.Errorf("image data is required")
	}

	response, err := s.vision.CompleteVision(ctx, scanPrompt, image, mimeType)
	if err != nil {
		s.logger.Error("crop scan analysis failed",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("failed to analyze crop health: %w", err)
	}

	result, err := parseAnalysis(response)
	if err != nil {
		s.logger.Error("unparseable scan analysis",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, err
	}

	scanID := uuid.New().String()
	imagePath, err := s.blob.UploadImage(ctx, scanID+".jpg", image, mimeType)
	if err != nil {
		// The diagnosis is still useful without the archived image.
		s.logger.Warn("failed to archive scan image",
			zap.Error(err),
			zap.String("scan_id", scanID),
		)
		imagePath = ""
	}

	scan := &model.ScanRecord{
		ID:        scanID,
		UserID:    userID,
		ImagePath: imagePath,
		Result:    *result,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateScan(ctx, scan); err != nil {
		return nil, fmt.Errorf("failed to store scan: %w", err)
	}

	s.logger.Info("crop scan completed",
		zap.String("scan_id", scanID),
		zap.String("user_id", userID),
		zap.String("diagnosis", result.Diagnosis),
		zap.Float64("confidence", result.Confidence),
	)
	return scan, nil
}

// History lists a farmer's past scans.
func (s *ScannerService) History(ctx context.Context, userID string) ([]model.ScanRecord, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	return s.repo.ListScans(ctx, userID)
}

// parseAnalysis parses the AI response into an AnalysisResult
func parseAnalysis(response string) (*model.AnalysisResult, error) {
	// Clean up response - sometimes AI adds markdown code blocks
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	var result model.AnalysisResult
	if err := json.Unmarshal([]byte(response), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}

	if result.Diagnosis == "" {
		return nil, fmt.Errorf("analysis missing diagnosis")
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}
	return &result, nil
}
