package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"blog/app/models"
)

// GormCommentRepository implements CommentRepository using gorm
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create creates a new comment
func (r *GormCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", translate(err))
	}
	return nil
}

// ListByPost retrieves all comments for a post with their authors, oldest first
func (r *GormCommentRepository) ListByPost(ctx context.Context, postID uint) ([]*models.CommentView, error) {
	var comments []*models.CommentView
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("comments.id, comments.content, comments.post_id, comments.user_id, comments.created_at, users.username AS author").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.post_id = ?", postID).
		Order("comments.id ASC").
		Scan(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	for _, comment := range comments {
		comment.Author = authorOrUnknown(comment.Author)
	}
	return comments, nil
}

// DeleteByPost removes every comment on a post
func (r *GormCommentRepository) DeleteByPost(ctx context.Context, postID uint) error {
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Comment{}).Error; err != nil {
		return fmt.Errorf("delete comments: %w", err)
	}
	return nil
}
