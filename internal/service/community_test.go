package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harvesthub/agrismart-backend/internal/catalog"
	"github.com/harvesthub/agrismart-backend/pkg/model"
)

type MockCommunityRepository struct {
	mock.Mock
}

func (m *MockCommunityRepository) ListPosts(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockCommunityRepository) CreatePost(ctx context.Context, post *model.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockCommunityRepository) IncrementLikes(ctx context.Context, postID string) (int, error) {
	args := m.Called(ctx, postID)
	return args.Int(0), args.Error(1)
}

func (m *MockCommunityRepository) CountPosts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func seedFeed(t *testing.T) []model.Post {
	t.Helper()
	return catalog.SeedPosts(june())
}

func TestEnsureSeededOnlyOnEmptyFeed(t *testing.T) {
	repo := new(MockCommunityRepository)
	repo.On("CountPosts", mock.Anything).Return(0, nil)
	repo.On("CreatePost", mock.Anything, mock.Anything).Return(nil)

	svc := NewCommunityService(repo, zap.NewNop())
	require.NoError(t, svc.EnsureSeeded(context.Background()))
	repo.AssertNumberOfCalls(t, "CreatePost", 5)

	populated := new(MockCommunityRepository)
	populated.On("CountPosts", mock.Anything).Return(12, nil)

	svc = NewCommunityService(populated, zap.NewNop())
	require.NoError(t, svc.EnsureSeeded(context.Background()))
	populated.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
}

func TestFeedTabs(t *testing.T) {
	repo := new(MockCommunityRepository)
	repo.On("ListPosts", mock.Anything).Return(seedFeed(t), nil)

	svc := NewCommunityService(repo, zap.NewNop())
	ctx := context.Background()

	advisory, err := svc.Feed(ctx, TabAdvisory, "")
	require.NoError(t, err)
	for _, p := range advisory {
		assert.NotEqual(t, model.PostFarmer, p.Type, p.ID)
	}
	assert.Len(t, advisory, 3)

	qa, err := svc.Feed(ctx, TabQA, "")
	require.NoError(t, err)
	for _, p := range qa {
		assert.Equal(t, model.PostFarmer, p.Type, p.ID)
	}
	assert.Len(t, qa, 2)
}

func TestFeedActiveCropFilter(t *testing.T) {
	repo := new(MockCommunityRepository)
	repo.On("ListPosts", mock.Anything).Return(seedFeed(t), nil)

	svc := NewCommunityService(repo, zap.NewNop())
	ctx := context.Background()

	// Wheat grower: sees Wheat-tagged and All-tagged advisories.
	advisory, err := svc.Feed(ctx, TabAdvisory, "Wheat")
	require.NoError(t, err)
	assert.Len(t, advisory, 3)

	// Basmati grower: the "Rice" tag matches by containment.
	qa, err := svc.Feed(ctx, TabQA, "Rice (Basmati)")
	require.NoError(t, err)
	require.Len(t, qa, 1)
	assert.Equal(t, "Vikram Singh", qa[0].Author)
}

func TestCreatePost(t *testing.T) {
	repo := new(MockCommunityRepository)
	repo.On("CreatePost", mock.Anything, mock.Anything).Return(nil)

	svc := NewCommunityService(repo, zap.NewNop())
	post, err := svc.CreatePost(context.Background(), "user-1", "  How deep to sow wheat?  ", "Wheat")
	require.NoError(t, err)

	assert.Equal(t, "How deep to sow wheat?", post.Content)
	assert.Equal(t, model.PostFarmer, post.Type)
	assert.Equal(t, "Wheat Farmer", post.Role)
	assert.Equal(t, []string{"Wheat"}, post.CropTags)
	assert.NotEmpty(t, post.ID)
}

func TestCreatePostRejectsBlank(t *testing.T) {
	svc := NewCommunityService(new(MockCommunityRepository), zap.NewNop())

	_, err := svc.CreatePost(context.Background(), "user-1", "   ", "Wheat")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestCreatePostWithoutActiveCrop(t *testing.T) {
	repo := new(MockCommunityRepository)
	repo.On("CreatePost", mock.Anything, mock.Anything).Return(nil)

	svc := NewCommunityService(repo, zap.NewNop())
	post, err := svc.CreatePost(context.Background(), "user-1", "General question", "")
	require.NoError(t, err)
	assert.Equal(t, "Farmer", post.Role)
	assert.Equal(t, []string{"General"}, post.CropTags)
}

func TestLikePost(t *testing.T) {
	repo := new(MockCommunityRepository)
	repo.On("IncrementLikes", mock.Anything, "post-1").Return(5, nil)

	svc := NewCommunityService(repo, zap.NewNop())
	likes, err := svc.LikePost(context.Background(), "post-1")
	require.NoError(t, err)
	assert.Equal(t, 5, likes)
}

func TestLikePostUnknown(t *testing.T) {
	repo := new(MockCommunityRepository)
	repo.On("IncrementLikes", mock.Anything, "ghost").Return(0, nil)

	svc := NewCommunityService(repo, zap.NewNop())
	_, err := svc.LikePost(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestGroupName(t *testing.T) {
	assert.Equal(t, "General Agri Hub", GroupName(""))
	assert.Equal(t, "Wheat Farmers Group", GroupName("Wheat"))
}

func TestInsightRotation(t *testing.T) {
	first := InsightAt(0)
	assert.NotEmpty(t, first)
	assert.Equal(t, first, InsightAt(3))
	assert.NotEqual(t, first, InsightAt(1))
}
