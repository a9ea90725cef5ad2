package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ticket-board-api/internal/domain"
)

// HistoryRepository defines the interface for the append-only audit log
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.HistoryEntry) error
	FindBoardHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.HistoryEntry, error)
	FindByTicketID(ctx context.Context, ticketID, userID uuid.UUID, limit int) ([]*domain.HistoryEntry, error)
}

// historyRepositoryImpl is the GORM implementation of HistoryRepository
type historyRepositoryImpl struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new instance of HistoryRepository
func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepositoryImpl{db: db}
}

// Create appends an entry. Entries are never updated or deleted.
func (r *historyRepositoryImpl) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return err
	}
	return nil
}

// FindBoardHistory returns the user's board-level entries, newest first
func (r *historyRepositoryImpl) FindBoardHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.HistoryEntry, error) {
	var entries []*domain.HistoryEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND entry_type = ?", userID, domain.HistoryTypeBoard).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByTicketID returns a ticket's card-level entries, newest first.
// Entries are scoped to the owning user; a ticket identifier alone never
// exposes another user's audit lines.
func (r *historyRepositoryImpl) FindByTicketID(ctx context.Context, ticketID, userID uuid.UUID, limit int) ([]*domain.HistoryEntry, error) {
	var entries []*domain.HistoryEntry
	if err := r.db.WithContext(ctx).
		Where("ticket_id = ? AND user_id = ? AND entry_type = ?", ticketID, userID, domain.HistoryTypeCard).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
