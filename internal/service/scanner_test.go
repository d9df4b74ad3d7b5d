package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harvesthub/agrismart-backend/internal/azure"
	"github.com/harvesthub/agrismart-backend/pkg/model"
)

type MockVisionClient struct {
	mock.Mock
}

func (m *MockVisionClient) CompleteVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	args := m.Called(ctx, prompt, image, mimeType)
	return args.String(0), args.Error(1)
}

type MockScanRepository struct {
	mock.Mock
}

func (m *MockScanRepository) CreateScan(ctx context.Context, scan *model.ScanRecord) error {
	args := m.Called(ctx, scan)
	return args.Error(0)
}

func (m *MockScanRepository) ListScans(ctx context.Context, userID string) ([]model.ScanRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ScanRecord), args.Error(1)
}

const validAnalysis = `{"diagnosis":"Early leaf rust","confidence":0.87,` +
	`"recommendations":["Remove affected leaves","Improve air circulation"],` +
	`"treatment":"Spray Mancozeb 2g/L at 10-day intervals"}`

func TestAnalyzeHappyPath(t *testing.T) {
	vision := new(MockVisionClient)
	vision.On("CompleteVision", mock.Anything, mock.Anything, mock.Anything, "image/jpeg").
		Return(validAnalysis, nil)

	repo := new(MockScanRepository)
	repo.On("CreateScan", mock.Anything, mock.Anything).Return(nil)

	blob := azure.NewMockBlobStorageClient(zap.NewNop())
	svc := NewScannerService(vision, blob, repo, zap.NewNop())

	scan, err := svc.Analyze(context.Background(), "user-1", []byte("jpeg bytes"), "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "Early leaf rust", scan.Result.Diagnosis)
	assert.InDelta(t, 0.87, scan.Result.Confidence, 0.001)
	assert.Len(t, scan.Result.Recommendations, 2)
	assert.NotEmpty(t, scan.ImagePath)
	assert.Len(t, blob.ListBlobs(), 1)
}

func TestAnalyzeStripsMarkdownFences(t *testing.T) {
	vision := new(MockVisionClient)
	vision.On("CompleteVision", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("```json\n"+validAnalysis+"\n```", nil)

	repo := new(MockScanRepository)
	repo.On("CreateScan", mock.Anything, mock.Anything).Return(nil)

	svc := NewScannerService(vision, azure.NewMockBlobStorageClient(zap.NewNop()), repo, zap.NewNop())
	scan, err := svc.Analyze(context.Background(), "user-1", []byte("img"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "Early leaf rust", scan.Result.Diagnosis)
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	svc := NewScannerService(new(MockVisionClient), azure.NewMockBlobStorageClient(zap.NewNop()), new(MockScanRepository), zap.NewNop())

	_, err := svc.Analyze(context.Background(), "", []byte("img"), "image/jpeg")
	assert.Error(t, err)

	_, err = svc.Analyze(context.Background(), "user-1", nil, "image/jpeg")
	assert.Error(t, err)
}

func TestAnalyzeVisionFailure(t *testing.T) {
	vision := new(MockVisionClient)
	vision.On("CompleteVision", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("rate limited"))

	svc := NewScannerService(vision, azure.NewMockBlobStorageClient(zap.NewNop()), new(MockScanRepository), zap.NewNop())
	_, err := svc.Analyze(context.Background(), "user-1", []byte("img"), "image/jpeg")
	assert.Error(t, err)
}

func TestAnalyzeGarbageResponse(t *testing.T) {
	vision := new(MockVisionClient)
	vision.On("CompleteVision", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("The plant looks sick.", nil)

	svc := NewScannerService(vision, azure.NewMockBlobStorageClient(zap.NewNop()), new(MockScanRepository), zap.NewNop())
	_, err := svc.Analyze(context.Background(), "user-1", []byte("img"), "image/jpeg")
	assert.Error(t, err)
}

func TestParseAnalysisClampsConfidence(t *testing.T) {
	result, err := parseAnalysis(`{"diagnosis":"Healthy","confidence":1.4,"recommendations":[],"treatment":"None"}`)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Confidence)

	result, err = parseAnalysis(`{"diagnosis":"Healthy","confidence":-0.2,"recommendations":[],"treatment":"None"}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestParseAnalysisRequiresDiagnosis(t *testing.T) {
	_, err := parseAnalysis(`{"confidence":0.5,"recommendations":[],"treatment":"None"}`)
	assert.Error(t, err)
}
