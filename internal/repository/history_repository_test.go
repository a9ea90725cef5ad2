package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ticket-board-api/internal/domain"
)

func setupHistoryTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}

	// Create the table by hand for SQLite compatibility
	db.Exec(`CREATE TABLE history_entries (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		deleted_at DATETIME,
		entry_type TEXT NOT NULL,
		action TEXT NOT NULL,
		ticket_id TEXT,
		user_id TEXT NOT NULL,
		details TEXT
	)`)

	return db
}

func appendEntry(t *testing.T, db *gorm.DB, entryType, action string, ticketID *uuid.UUID, userID uuid.UUID, createdAt time.Time) *domain.HistoryEntry {
	t.Helper()
	entry := &domain.HistoryEntry{
		BaseModel: domain.BaseModel{ID: uuid.New(), CreatedAt: createdAt, UpdatedAt: createdAt},
		EntryType: entryType,
		Action:    action,
		TicketID:  ticketID,
		UserID:    userID,
		Details:   []byte("{}"),
	}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create history entry: %v", err)
	}
	return entry
}

func TestHistoryRepository_FindByTicketID_ScopedToOwner(t *testing.T) {
	db := setupHistoryTestDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	other := uuid.New()
	ticketID := uuid.New()
	now := time.Now()

	appendEntry(t, db, domain.HistoryTypeCard, domain.ActionTicketCreated, &ticketID, owner, now.Add(-2*time.Minute))
	appendEntry(t, db, domain.HistoryTypeCard, domain.ActionTicketMoved, &ticketID, owner, now.Add(-time.Minute))

	// A signed-in stranger querying the owner's ticket gets nothing
	entries, err := repo.FindByTicketID(ctx, ticketID, other, 100)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = repo.FindByTicketID(ctx, ticketID, owner, 100)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, domain.ActionTicketMoved, entries[0].Action, "newest entry first")
}

func TestHistoryRepository_FindByTicketID_ExcludesBoardEntries(t *testing.T) {
	db := setupHistoryTestDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	ticketID := uuid.New()
	now := time.Now()

	appendEntry(t, db, domain.HistoryTypeCard, domain.ActionTicketUpdated, &ticketID, userID, now)
	appendEntry(t, db, domain.HistoryTypeBoard, domain.ActionCategoryCreated, &ticketID, userID, now)

	entries, err := repo.FindByTicketID(ctx, ticketID, userID, 100)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.HistoryTypeCard, entries[0].EntryType)
}

func TestHistoryRepository_FindBoardHistory_PerUser(t *testing.T) {
	db := setupHistoryTestDB(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	userA := uuid.New()
	userB := uuid.New()
	now := time.Now()

	appendEntry(t, db, domain.HistoryTypeBoard, domain.ActionCategoryCreated, nil, userA, now)
	appendEntry(t, db, domain.HistoryTypeBoard, domain.ActionCategoriesReordered, nil, userB, now)

	entries, err := repo.FindBoardHistory(ctx, userA, 100)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, userA, entries[0].UserID)
}
