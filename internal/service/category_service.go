package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ticket-board-api/internal/cache"
	"ticket-board-api/internal/domain"
	"ticket-board-api/internal/dto"
	"ticket-board-api/internal/metrics"
	"ticket-board-api/internal/ordering"
	"ticket-board-api/internal/repository"
	"ticket-board-api/internal/response"
)

// CategoryService defines the interface for board column business logic
type CategoryService interface {
	ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error)
	CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	UpdateCategory(ctx context.Context, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	DeleteCategory(ctx context.Context, categoryID uuid.UUID) error
	ReorderCategories(ctx context.Context, req *dto.ReorderCategoriesRequest) ([]*dto.CategoryResponse, error)
}

// categoryServiceImpl is the implementation of CategoryService
type categoryServiceImpl struct {
	categoryRepo repository.CategoryRepository
	historySvc   HistoryService
	boardCache   *cache.BoardCache
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(
	categoryRepo repository.CategoryRepository,
	historySvc HistoryService,
	boardCache *cache.BoardCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) CategoryService {
	return &categoryServiceImpl{
		categoryRepo: categoryRepo,
		historySvc:   historySvc,
		boardCache:   boardCache,
		metrics:      m,
		logger:       logger,
	}
}

// ListCategories returns the caller's columns in board order
func (s *categoryServiceImpl) ListCategories(ctx context.Context) ([]*dto.CategoryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load categories", err.Error())
	}

	responses := make([]*dto.CategoryResponse, len(categories))
	for i, category := range categories {
		resp := toCategoryResponse(category, nil, domain.DefaultNotifyDaysBefore)
		responses[i] = &resp
	}
	return responses, nil
}

// CreateCategory appends a new column to the end of the board
func (s *categoryServiceImpl) CreateCategory(ctx context.Context, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	count, err := s.categoryRepo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count categories", err.Error())
	}

	category := &domain.Category{
		UserID:   userID,
		Name:     req.Name,
		Position: int(count),
	}
	if req.Color != "" {
		category.Color = req.Color
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to create category", err.Error())
	}

	s.boardCache.Invalidate(ctx, userID)
	s.historySvc.AppendBoardEntry(ctx, userID, domain.ActionCategoryCreated, map[string]interface{}{
		"category_id":   category.ID.String(),
		"category_name": category.Name,
		"position":      category.Position,
	})
	s.metrics.IncrementCategoryCreated()

	resp := toCategoryResponse(category, nil, domain.DefaultNotifyDaysBefore)
	return &resp, nil
}

// UpdateCategory renames or recolors a column
func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	category, err := s.findOwnedCategory(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}

	oldName := category.Name
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to update category", err.Error())
	}

	s.boardCache.Invalidate(ctx, userID)
	s.historySvc.AppendBoardEntry(ctx, userID, domain.ActionCategoryUpdated, map[string]interface{}{
		"category_id": category.ID.String(),
		"old_name":    oldName,
		"new_name":    category.Name,
	})

	resp := toCategoryResponse(category, nil, domain.DefaultNotifyDaysBefore)
	return &resp, nil
}

// DeleteCategory removes a column and compacts the surviving columns'
// positions. Tickets of the deleted column are left in place; the
// cleanup job collects them later.
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	category, err := s.findOwnedCategory(ctx, categoryID, userID)
	if err != nil {
		return err
	}

	categories, err := s.categoryRepo.FindByUserID(ctx, userID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load categories", err.Error())
	}

	if err := s.categoryRepo.Delete(ctx, categoryID); err != nil {
		return response.NewAppError(response.ErrCodePersistence, "Failed to delete category", err.Error())
	}

	// Compact the survivors to dense positions
	before := toOrderingItems(categories)
	after := ordering.RemoveID(before, categoryID)
	s.persistPositions(ctx, ordering.Diff(before, after))

	s.boardCache.Invalidate(ctx, userID)
	s.historySvc.AppendBoardEntry(ctx, userID, domain.ActionCategoryDeleted, map[string]interface{}{
		"category_id":   categoryID.String(),
		"category_name": category.Name,
	})
	return nil
}

// ReorderCategories drops a dragged column at a target index. The whole
// move is a no-op when the column is already there.
func (s *categoryServiceImpl) ReorderCategories(ctx context.Context, req *dto.ReorderCategoriesRequest) ([]*dto.CategoryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.categoryRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load categories", err.Error())
	}

	items := toOrderingItems(categories)
	from := ordering.IndexOf(items, req.CategoryID)
	if from < 0 {
		return nil, response.NewAppError(response.ErrCodeNotFound, "Category not found", "")
	}
	if req.TargetIndex >= len(items) {
		return nil, response.NewValidationError("Target index out of range", "")
	}

	// Dropping a column onto its own slot changes nothing
	if from == req.TargetIndex {
		return s.ListCategories(ctx)
	}

	after := ordering.MoveWithin(items, from, req.TargetIndex)
	changed := ordering.Diff(items, after)

	// The dragged column's own write is the primary one; a failure there
	// fails the whole reorder
	if err := s.categoryRepo.UpdatePosition(ctx, req.CategoryID, req.TargetIndex); err != nil {
		s.boardCache.Invalidate(ctx, userID)
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to persist column reorder", err.Error())
	}

	for _, item := range changed {
		if item.ID == req.CategoryID {
			continue
		}
		if err := s.categoryRepo.UpdatePosition(ctx, item.ID, item.Position); err != nil {
			// Sibling failures self-heal on the next normalize
			s.logger.Warn("Failed to persist sibling column position",
				zap.String("category_id", item.ID.String()),
				zap.Int("position", item.Position),
				zap.Error(err))
		}
	}

	s.boardCache.Invalidate(ctx, userID)
	s.historySvc.AppendBoardEntry(ctx, userID, domain.ActionCategoriesReordered, map[string]interface{}{
		"category_id": req.CategoryID.String(),
		"from_index":  from,
		"to_index":    req.TargetIndex,
	})
	s.metrics.IncrementCategoriesReordered()

	return s.ListCategories(ctx)
}

func (s *categoryServiceImpl) findOwnedCategory(ctx context.Context, categoryID, userID uuid.UUID) (*domain.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Category not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load category", err.Error())
	}
	if category.UserID != userID {
		return nil, response.NewAppError(response.ErrCodeNotFound, "Category not found", "")
	}
	return category, nil
}

func (s *categoryServiceImpl) persistPositions(ctx context.Context, changed []ordering.Item) {
	for _, item := range changed {
		if err := s.categoryRepo.UpdatePosition(ctx, item.ID, item.Position); err != nil {
			s.logger.Warn("Failed to persist column position",
				zap.String("category_id", item.ID.String()),
				zap.Int("position", item.Position),
				zap.Error(err))
		}
	}
}

func toOrderingItems(categories []*domain.Category) []ordering.Item {
	items := make([]ordering.Item, len(categories))
	for i, category := range categories {
		items[i] = ordering.Item{ID: category.ID, Position: category.Position}
	}
	return items
}
