package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harvesthub/agrismart-backend/internal/azure"
	"github.com/harvesthub/agrismart-backend/internal/pdf"
	"github.com/harvesthub/agrismart-backend/pkg/model"
)

// ReportRepository persists report metadata.
type ReportRepository interface {
	CreateReport(ctx context.Context, report *model.Report) error
	ListReports(ctx context.Context, userID string) ([]model.Report, error)
	GetReport(ctx context.Context, userID, reportID string) (*model.Report, error)
}

// ReportService assembles the seasonal farm report, renders it to PDF and
// archives it in blob storage.
type ReportService struct {
	repo            ReportRepository
	profiles        *ProfileService
	plans           *PlanService
	tasks           *TaskService
	recommendations *RecommendationService
	market          *MarketService
	generator       *pdf.PDFGenerator
	blob            azure.BlobStorage
	logger          *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(
	repo ReportRepository,
	profiles *ProfileService,
	plans *PlanService,
	tasks *TaskService,
	recommendations *RecommendationService,
	market *MarketService,
	generator *pdf.PDFGenerator,
	blob azure.BlobStorage,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		repo:            repo,
		profiles:        profiles,
		plans:           plans,
		tasks:           tasks,
		recommendations: recommendations,
		market:          market,
		generator:       generator,
		blob:            blob,
		logger:          logger,
	}
}

// Generate builds a report for the farmer's active crop. The profile and an
// active crop are required; everything else degrades to empty sections.
func (s *ReportService) Generate(ctx context.Context, userID string) (*model.Report, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.ActiveCrop == nil || *profile.ActiveCrop == "" {
		return nil, fmt.Errorf("%w: no active crop selected", ErrCropNotFound)
	}
	crop := *profile.ActiveCrop
	now := time.Now()

	data := &pdf.ReportData{
		FarmerName: profile.Name,
		Village:    profile.Village,
		Crop:       crop,
		LandSize:   profile.LandSize,
		LandUnit:   profile.LandUnit,
		Stages:     s.plans.Stages(crop, now),
	}

	if tasks, err := s.tasks.LoadOrGenerate(ctx, userID, crop, now); err == nil {
		data.Tasks = tasks
	} else {
		s.logger.Warn("report missing task section", zap.Error(err), zap.String("user_id", userID))
	}

	if recs, err := s.recommendations.Recommend(profile, now); err == nil {
		data.Recommendations = recs
	}

	if quote, err := s.market.QuoteFor(ctx, crop); err == nil {
		data.MarketQuote = &quote
	} else {
		s.logger.Warn("report missing market section", zap.Error(err), zap.String("user_id", userID))
	}

	rendered, err := s.generator.Generate(data)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	reportID := uuid.New().String()
	blobPath, err := s.blob.UploadPDF(ctx, reportID+".pdf", rendered)
	if err != nil {
		return nil, fmt.Errorf("failed to archive report: %w", err)
	}

	report := &model.Report{
		ID:          reportID,
		UserID:      userID,
		Crop:        crop,
		FilePath:    blobPath,
		GeneratedAt: now,
	}
	if err := s.repo.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to store report metadata: %w", err)
	}

	s.logger.Info("farm report generated",
		zap.String("report_id", reportID),
		zap.String("user_id", userID),
		zap.String("crop", crop),
		zap.Int("size_bytes", len(rendered)),
	)
	return report, nil
}

// Download fetches a report's PDF bytes.
func (s *ReportService) Download(ctx context.Context, userID, reportID string) ([]byte, error) {
	report, err := s.repo.GetReport(ctx, userID, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}
	if report == nil {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, reportID)
	}
	return s.blob.DownloadPDF(ctx, report.FilePath)
}

// List returns a farmer's report history.
func (s *ReportService) List(ctx context.Context, userID string) ([]model.Report, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	return s.repo.ListReports(ctx, userID)
}
