package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"blog/app/models"
)

// GormPostRepository implements PostRepository using gorm
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// Create creates a new post
func (r *GormPostRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("User", "Category", "Comments").Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", translate(err))
	}
	return nil
}

// GetByID retrieves a post by ID with its author and category loaded
func (r *GormPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Category").
		First(&post, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

// ListSummaries returns every post with its author name and comment count, oldest first
func (r *GormPostRepository) ListSummaries(ctx context.Context) ([]*models.PostSummary, error) {
	return r.listSummaries(r.summaryQuery(ctx))
}

// ListSummariesByCategory is ListSummaries restricted to one category
func (r *GormPostRepository) ListSummariesByCategory(ctx context.Context, categoryID uint) ([]*models.PostSummary, error) {
	return r.listSummaries(r.summaryQuery(ctx).Where("posts.category_id = ?", categoryID))
}

// Delete deletes a post by ID
func (r *GormPostRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormPostRepository) summaryQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Select("posts.id, posts.title, posts.content, posts.user_id, posts.category_id, posts.created_at, " +
			"users.username AS author, COUNT(comments.id) AS comments_amount").
		Joins("LEFT JOIN users ON users.id = posts.user_id").
		Joins("LEFT JOIN comments ON comments.post_id = posts.id").
		Group("posts.id, posts.title, posts.content, posts.user_id, posts.category_id, posts.created_at, users.username").
		Order("posts.id ASC")
}

func (r *GormPostRepository) listSummaries(query *gorm.DB) ([]*models.PostSummary, error) {
	var posts []*models.PostSummary
	if err := query.Scan(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	for _, post := range posts {
		post.Author = authorOrUnknown(post.Author)
	}
	return posts, nil
}
