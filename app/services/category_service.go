package services

import (
	"context"
	"fmt"
	"strings"

	"blog/app/models"
	"blog/app/repositories"
)

// CategoryService exposes the fixed category list
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// List returns every category, oldest first
func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	return s.categoryRepo.List(ctx)
}

// Get retrieves a category by ID
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	return s.categoryRepo.GetByID(ctx, id)
}

// SeedDefaults inserts the named categories that do not exist yet and
// returns how many were created.
func (s *CategoryService) SeedDefaults(ctx context.Context, names []string) (int, error) {
	created := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		category := &models.Category{Name: name}
		if err := category.Validate(); err != nil {
			return created, fmt.Errorf("invalid category %q: %w", name, err)
		}
		_, isNew, err := s.categoryRepo.FirstOrCreate(ctx, name)
		if err != nil {
			return created, fmt.Errorf("seed category %q: %w", name, err)
		}
		if isNew {
			created++
		}
	}
	return created, nil
}
