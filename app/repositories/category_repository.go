package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"blog/app/models"
)

// GormCategoryRepository implements CategoryRepository using gorm
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FirstOrCreate returns the category called name, creating it when absent.
// The boolean reports whether a row was inserted.
func (r *GormCategoryRepository) FirstOrCreate(ctx context.Context, name string) (*models.Category, bool, error) {
	var category models.Category
	db := r.db.WithContext(ctx)
	err := db.Where("name = ?", name).First(&category).Error
	switch {
	case err == nil:
		return &category, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		category = models.Category{Name: name}
		if err := db.Create(&category).Error; err != nil {
			return nil, false, fmt.Errorf("create category: %w", translate(err))
		}
		return &category, true, nil
	default:
		return nil, false, fmt.Errorf("find category: %w", err)
	}
}

// GetByID retrieves a category by ID
func (r *GormCategoryRepository) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// List returns every category in id order
func (r *GormCategoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
