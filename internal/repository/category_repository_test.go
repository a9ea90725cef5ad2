package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ticket-board-api/internal/domain"
)

func createCategory(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, position int) *domain.Category {
	t.Helper()
	category := &domain.Category{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		UserID:    userID,
		Name:      name,
		Color:     "#6B7280",
		Position:  position,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return category
}

func TestCategoryRepository_FindByUserID_OrderedByPosition(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	done := createCategory(t, db, userID, "Done", 2)
	todo := createCategory(t, db, userID, "To Do", 0)
	doing := createCategory(t, db, userID, "In Progress", 1)
	createCategory(t, db, uuid.New(), "Someone else's", 0)

	categories, err := repo.FindByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("FindByUserID() error = %v", err)
	}

	if len(categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(categories))
	}
	want := []uuid.UUID{todo.ID, doing.ID, done.ID}
	for i, id := range want {
		if categories[i].ID != id {
			t.Errorf("index %d: expected %v, got %v", i, id, categories[i].ID)
		}
	}
}

func TestCategoryRepository_UpdatePosition(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	category := createCategory(t, db, uuid.New(), "To Do", 0)

	if err := repo.UpdatePosition(ctx, category.ID, 4); err != nil {
		t.Fatalf("UpdatePosition() error = %v", err)
	}

	var got domain.Category
	db.First(&got, category.ID)
	if got.Position != 4 {
		t.Errorf("expected position 4, got %d", got.Position)
	}
}

func TestCategoryRepository_UpdatePosition_NotFound(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	err := repo.UpdatePosition(ctx, uuid.New(), 1)
	if err != gorm.ErrRecordNotFound {
		t.Errorf("UpdatePosition() error = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestCategoryRepository_Delete_SoftDeletes(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	category := createCategory(t, db, userID, "Doomed", 0)
	createCategory(t, db, userID, "Kept", 1)

	if err := repo.Delete(ctx, category.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := repo.FindByID(ctx, category.ID); err == nil {
		t.Error("expected deleted category to be invisible")
	}

	count, err := repo.CountByUserID(ctx, userID)
	if err != nil {
		t.Fatalf("CountByUserID() error = %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 remaining category, got %d", count)
	}
}
