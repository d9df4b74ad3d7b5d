package repository

import (
	"context"
	"fmt"

	"github.com/harvesthub/agrismart-backend/pkg/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// CommunityRepository manages community feed posts
type CommunityRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

// NewCommunityRepository creates a new CommunityRepository
func NewCommunityRepository(db *pgxpool.Pool, logger *zap.Logger) *CommunityRepository {
	return &CommunityRepository{
		db:     db,
		logger: logger,
	}
}

// ListPosts retrieves all posts, newest first
func (r *CommunityRepository) ListPosts(ctx context.Context) ([]model.Post, error) {
	query := `
		SELECT id, author, role, type, content, likes, comments,
		       tag, avatar, crop_tags, created_at
		FROM posts
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("failed to list posts", zap.Error(err))
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var post model.Post
		err := rows.Scan(
			&post.ID,
			&post.Author,
			&post.Role,
			&post.Type,
			&post.Content,
			&post.Likes,
			&post.Comments,
			&post.Tag,
			&post.Avatar,
			&post.CropTags,
			&post.CreatedAt,
		)
		if err != nil {
			r.logger.Error("failed to scan post", zap.Error(err))
			continue
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating posts", zap.Error(err))
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, nil
}

// CreatePost creates a new post
func (r *CommunityRepository) CreatePost(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (
			id, author, role, type, content, likes, comments,
			tag, avatar, crop_tags, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		post.ID,
		post.Author,
		post.Role,
		post.Type,
		post.Content,
		post.Likes,
		post.Comments,
		post.Tag,
		post.Avatar,
		post.CropTags,
		post.CreatedAt,
	)

	if err != nil {
		r.logger.Error("failed to create post",
			zap.Error(err),
			zap.String("post_id", post.ID),
		)
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// IncrementLikes bumps a post's like count and returns the new total
func (r *CommunityRepository) IncrementLikes(ctx context.Context, postID string) (int, error) {
	query := `
		UPDATE posts
		SET likes = likes + 1
		WHERE id = $1
		RETURNING likes
	`

	// Likes are never zero after an increment, so zero means no such post.
	var likes int
	err := r.db.QueryRow(ctx, query, postID).Scan(&likes)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, nil
		}
		r.logger.Error("failed to increment likes",
			zap.Error(err),
			zap.String("post_id", postID),
		)
		return 0, fmt.Errorf("failed to increment likes: %w", err)
	}

	return likes, nil
}

// CountPosts returns the total number of posts
func (r *CommunityRepository) CountPosts(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM posts`

	var count int
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.logger.Error("failed to count posts", zap.Error(err))
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}
