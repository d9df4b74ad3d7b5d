package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harvesthub/agrismart-backend/internal/catalog"
	"github.com/harvesthub/agrismart-backend/pkg/model"
)

// FeedTab selects which slice of the community feed to show.
type FeedTab string

const (
	TabAdvisory FeedTab = "advisory"
	TabQA       FeedTab = "qa"
)

// CommunityRepository persists community posts.
type CommunityRepository interface {
	ListPosts(ctx context.Context) ([]model.Post, error)
	CreatePost(ctx context.Context, post *model.Post) error
	IncrementLikes(ctx context.Context, postID string) (int, error)
	CountPosts(ctx context.Context) (int, error)
}

// CommunityService runs the farmer community feed.
type CommunityService struct {
	repo   CommunityRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewCommunityService creates a new CommunityService
func NewCommunityService(repo CommunityRepository, logger *zap.Logger) *CommunityService {
	return &CommunityService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// EnsureSeeded populates an empty feed with the bundled posts so a fresh
// install is not a blank page.
func (s *CommunityService) EnsureSeeded(ctx context.Context) error {
	count, err := s.repo.CountPosts(ctx)
	if err != nil {
		return fmt.Errorf("failed to count posts: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, post := range catalog.SeedPosts(s.now()) {
		p := post
		if err := s.repo.CreatePost(ctx, &p); err != nil {
			return fmt.Errorf("failed to seed posts: %w", err)
		}
	}
	s.logger.Info("community feed seeded")
	return nil
}

// Feed returns posts for a tab, newest first. The advisory tab carries
// expert and official posts; the Q&A tab carries farmer posts. An active
// crop narrows the feed to posts tagged for it or for everyone.
func (s *CommunityService) Feed(ctx context.Context, tab FeedTab, activeCrop string) ([]model.Post, error) {
	posts, err := s.repo.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}

	out := make([]model.Post, 0, len(posts))
	for _, p := range posts {
		if !tabMatches(tab, p.Type) {
			continue
		}
		if activeCrop != "" && !cropTagMatches(p.CropTags, activeCrop) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// CreatePost publishes a farmer post tagged with their active crop.
func (s *CommunityService) CreatePost(ctx context.Context, userID, content, activeCrop string) (*model.Post, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	role := "Farmer"
	tags := []string{"General"}
	if activeCrop != "" {
		role = activeCrop + " Farmer"
		tags = []string{activeCrop}
	}

	post := &model.Post{
		ID:        uuid.New().String(),
		Author:    "You",
		Role:      role,
		Type:      model.PostFarmer,
		Content:   strings.TrimSpace(content),
		Tag:       "Question",
		CropTags:  tags,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		s.logger.Error("failed to create post",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("post created",
		zap.String("post_id", post.ID),
		zap.String("user_id", userID),
	)
	return post, nil
}

// LikePost bumps a post's like count and returns the new total.
func (s *CommunityService) LikePost(ctx context.Context, postID string) (int, error) {
	likes, err := s.repo.IncrementLikes(ctx, postID)
	if err != nil {
		return 0, err
	}
	if likes == 0 {
		return 0, fmt.Errorf("%w: %s", ErrPostNotFound, postID)
	}
	return likes, nil
}

// GroupName labels the feed after the farmer's active crop.
func GroupName(activeCrop string) string {
	if activeCrop == "" {
		return "General Agri Hub"
	}
	return activeCrop + " Farmers Group"
}

// InsightAt returns the rotating advisory one-liner for a tick counter.
func InsightAt(tick int) string {
	insights := catalog.Insights()
	if tick < 0 {
		tick = -tick
	}
	return insights[tick%len(insights)]
}

func tabMatches(tab FeedTab, pt model.PostType) bool {
	switch tab {
	case TabQA:
		return pt == model.PostFarmer
	default:
		return pt == model.PostExpert || pt == model.PostOfficial
	}
}

func cropTagMatches(tags []string, crop string) bool {
	for _, tag := range tags {
		if tag == "All" || tag == "General" || strings.EqualFold(tag, crop) {
			return true
		}
		// "Rice" tags match "Rice (Basmati)" growers.
		if strings.Contains(strings.ToLower(crop), strings.ToLower(tag)) {
			return true
		}
	}
	return false
}
