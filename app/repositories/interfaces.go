package repositories

import (
	"context"

	"blog/app/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	FirstOrCreate(ctx context.Context, name string) (*models.Category, bool, error)
	GetByID(ctx context.Context, id uint) (*models.Category, error)
	List(ctx context.Context) ([]*models.Category, error)
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	ListSummaries(ctx context.Context) ([]*models.PostSummary, error)
	ListSummariesByCategory(ctx context.Context, categoryID uint) ([]*models.PostSummary, error)
	Delete(ctx context.Context, id uint) error
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID uint) ([]*models.CommentView, error)
	DeleteByPost(ctx context.Context, postID uint) error
}

var (
	_ UserRepository     = (*GormUserRepository)(nil)
	_ CategoryRepository = (*GormCategoryRepository)(nil)
	_ PostRepository     = (*GormPostRepository)(nil)
	_ CommentRepository  = (*GormCommentRepository)(nil)
)
