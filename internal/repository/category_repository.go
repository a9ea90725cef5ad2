package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ticket-board-api/internal/domain"
)

// CategoryRepository defines the interface for board column data access
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	UpdatePosition(ctx context.Context, id uuid.UUID, position int) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

// categoryRepositoryImpl is the GORM implementation of CategoryRepository
type categoryRepositoryImpl struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepositoryImpl{db: db}
}

// Create creates a new category
func (r *categoryRepositoryImpl) Create(ctx context.Context, category *domain.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a category by its ID
func (r *categoryRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByUserID returns the user's columns ordered by position
func (r *categoryRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	var categories []*domain.Category
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Update persists changed category fields
func (r *categoryRepositoryImpl) Update(ctx context.Context, category *domain.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return err
	}
	return nil
}

// UpdatePosition writes only the position column
func (r *categoryRepositoryImpl) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("id = ?", id).
		Update("position", position)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete soft deletes a category by ID
func (r *categoryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Category{}, id).Error; err != nil {
		return err
	}
	return nil
}

// CountByUserID counts the user's columns
func (r *categoryRepositoryImpl) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
