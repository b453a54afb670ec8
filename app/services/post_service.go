package services

import (
	"context"
	"fmt"

	"blog/app/models"
	"blog/app/repositories"
)

// PostService handles business logic for blog posts
type PostService struct {
	postRepo     repositories.PostRepository
	commentRepo  repositories.CommentRepository
	categoryRepo repositories.CategoryRepository
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, commentRepo repositories.CommentRepository, categoryRepo repositories.CategoryRepository) *PostService {
	return &PostService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
	}
}

// CreatePost validates the post and stores it under an existing category
func (s *PostService) CreatePost(ctx context.Context, post *models.Post) error {
	if err := post.Validate(); err != nil {
		return fmt.Errorf("invalid post: %w", err)
	}

	if _, err := s.categoryRepo.GetByID(ctx, post.CategoryID); err != nil {
		return fmt.Errorf("category %d: %w", post.CategoryID, err)
	}

	return s.postRepo.Create(ctx, post)
}

// GetPost retrieves a post by ID with its comments
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, []*models.CommentView, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get comments: %w", err)
	}

	return post, comments, nil
}

// ListPosts returns every post with author name and comment count
func (s *PostService) ListPosts(ctx context.Context) ([]*models.PostSummary, error) {
	return s.postRepo.ListSummaries(ctx)
}

// ListPostsByCategory returns the category and its posts
func (s *PostService) ListPostsByCategory(ctx context.Context, categoryID uint) (*models.Category, []*models.PostSummary, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.postRepo.ListSummariesByCategory(ctx, categoryID)
	if err != nil {
		return nil, nil, err
	}
	return category, posts, nil
}

// DeletePost deletes a post and all its comments on behalf of userID
func (s *PostService) DeletePost(ctx context.Context, id, userID uint) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !post.IsAuthoredBy(userID) {
		return ErrForbidden
	}

	if err := s.commentRepo.DeleteByPost(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	return s.postRepo.Delete(ctx, id)
}
