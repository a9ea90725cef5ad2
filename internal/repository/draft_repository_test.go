package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ticket-board-api/internal/domain"
)

func createDraft(t *testing.T, db *gorm.DB, ticketID, userID uuid.UUID, title string) *domain.Draft {
	t.Helper()
	draft := &domain.Draft{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		TicketID:  ticketID,
		UserID:    userID,
		Title:     title,
		Priority:  domain.PriorityMedium,
	}
	if err := db.Create(draft).Error; err != nil {
		t.Fatalf("failed to create draft: %v", err)
	}
	return draft
}

func TestDraftRepository_FindByTicketAndUser(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewDraftRepository(db)
	ctx := context.Background()

	ticketID := uuid.New()
	userID := uuid.New()
	draft := createDraft(t, db, ticketID, userID, "my draft")
	createDraft(t, db, ticketID, uuid.New(), "someone else's draft")

	found, err := repo.FindByTicketAndUser(ctx, ticketID, userID)
	if err != nil {
		t.Fatalf("FindByTicketAndUser() error = %v", err)
	}

	if found.ID != draft.ID {
		t.Errorf("expected draft %v, got %v", draft.ID, found.ID)
	}
	if found.Title != "my draft" {
		t.Errorf("expected title 'my draft', got %q", found.Title)
	}
}

func TestDraftRepository_FindByTicketAndUser_NotFound(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewDraftRepository(db)
	ctx := context.Background()

	_, err := repo.FindByTicketAndUser(ctx, uuid.New(), uuid.New())
	if err != gorm.ErrRecordNotFound {
		t.Errorf("expected gorm.ErrRecordNotFound, got %v", err)
	}
}

func TestDraftRepository_FindTicketIDsByUser(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewDraftRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	first := createDraft(t, db, uuid.New(), userID, "one")
	second := createDraft(t, db, uuid.New(), userID, "two")
	createDraft(t, db, uuid.New(), uuid.New(), "not mine")

	ids, err := repo.FindTicketIDsByUser(ctx, userID)
	if err != nil {
		t.Fatalf("FindTicketIDsByUser() error = %v", err)
	}

	if len(ids) != 2 {
		t.Fatalf("expected 2 ticket IDs, got %d", len(ids))
	}
	want := map[uuid.UUID]bool{first.TicketID: true, second.TicketID: true}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("unexpected ticket ID %v", id)
		}
	}
}

func TestDraftRepository_DeleteByTicketAndUser(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewDraftRepository(db)
	ctx := context.Background()

	ticketID := uuid.New()
	userID := uuid.New()
	createDraft(t, db, ticketID, userID, "doomed")
	kept := createDraft(t, db, ticketID, uuid.New(), "kept")

	if err := repo.DeleteByTicketAndUser(ctx, ticketID, userID); err != nil {
		t.Fatalf("DeleteByTicketAndUser() error = %v", err)
	}

	if _, err := repo.FindByTicketAndUser(ctx, ticketID, userID); err == nil {
		t.Error("expected draft to be deleted")
	}
	if _, err := repo.FindByID(ctx, kept.ID); err != nil {
		t.Errorf("other user's draft should survive: %v", err)
	}
}

func TestDraftRepository_DeleteByTicketAndUser_MissingIsNoError(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewDraftRepository(db)
	ctx := context.Background()

	if err := repo.DeleteByTicketAndUser(ctx, uuid.New(), uuid.New()); err != nil {
		t.Fatalf("deleting a missing draft should not error: %v", err)
	}
}

func TestDraftRepository_DeleteByTicketIDs(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewDraftRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	doomed1 := createDraft(t, db, uuid.New(), userID, "one")
	doomed2 := createDraft(t, db, uuid.New(), userID, "two")
	kept := createDraft(t, db, uuid.New(), userID, "three")

	err := repo.DeleteByTicketIDs(ctx, []uuid.UUID{doomed1.TicketID, doomed2.TicketID})
	if err != nil {
		t.Fatalf("DeleteByTicketIDs() error = %v", err)
	}

	ids, err := repo.FindTicketIDsByUser(ctx, userID)
	if err != nil {
		t.Fatalf("FindTicketIDsByUser() error = %v", err)
	}
	if len(ids) != 1 || ids[0] != kept.TicketID {
		t.Errorf("expected only %v to survive, got %v", kept.TicketID, ids)
	}
}

func TestDraftRepository_DeleteByTicketIDs_EmptyList(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewDraftRepository(db)
	ctx := context.Background()

	if err := repo.DeleteByTicketIDs(ctx, []uuid.UUID{}); err != nil {
		t.Fatalf("DeleteByTicketIDs() with empty list error = %v", err)
	}
}

func TestDraftRepository_UpdateBumpsUpdatedAt(t *testing.T) {
	db := setupBoardTestDB(t)
	repo := NewDraftRepository(db)
	ctx := context.Background()

	draft := createDraft(t, db, uuid.New(), uuid.New(), "before")
	created := draft.UpdatedAt

	draft.Title = "after"
	if err := repo.Update(ctx, draft); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := repo.FindByID(ctx, draft.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Title != "after" {
		t.Errorf("expected updated title, got %q", found.Title)
	}
	if found.UpdatedAt.Before(created) {
		t.Errorf("UpdatedAt went backwards")
	}
}
