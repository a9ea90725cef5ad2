package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ticket-board-api/internal/domain"
)

// DraftRepository defines the interface for draft data access
type DraftRepository interface {
	Create(ctx context.Context, draft *domain.Draft) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Draft, error)
	FindByTicketAndUser(ctx context.Context, ticketID, userID uuid.UUID) (*domain.Draft, error)
	FindTicketIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Update(ctx context.Context, draft *domain.Draft) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByTicketAndUser(ctx context.Context, ticketID, userID uuid.UUID) error
	DeleteByTicketIDs(ctx context.Context, ticketIDs []uuid.UUID) error
}

// draftRepositoryImpl is the GORM implementation of DraftRepository
type draftRepositoryImpl struct {
	db *gorm.DB
}

// NewDraftRepository creates a new instance of DraftRepository
func NewDraftRepository(db *gorm.DB) DraftRepository {
	return &draftRepositoryImpl{db: db}
}

// Create creates a new draft
func (r *draftRepositoryImpl) Create(ctx context.Context, draft *domain.Draft) error {
	if err := r.db.WithContext(ctx).Create(draft).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a draft by its ID
func (r *draftRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	var draft domain.Draft
	if err := r.db.WithContext(ctx).First(&draft, id).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

// FindByTicketAndUser finds the draft keyed by (ticket, user)
func (r *draftRepositoryImpl) FindByTicketAndUser(ctx context.Context, ticketID, userID uuid.UUID) (*domain.Draft, error) {
	var draft domain.Draft
	if err := r.db.WithContext(ctx).
		Where("ticket_id = ? AND user_id = ?", ticketID, userID).
		First(&draft).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

// FindTicketIDsByUser lists the tickets the user has drafts for
func (r *draftRepositoryImpl) FindTicketIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ticketIDs []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&domain.Draft{}).
		Where("user_id = ?", userID).
		Pluck("ticket_id", &ticketIDs).Error; err != nil {
		return nil, err
	}
	return ticketIDs, nil
}

// Update persists changed draft fields
func (r *draftRepositoryImpl) Update(ctx context.Context, draft *domain.Draft) error {
	if err := r.db.WithContext(ctx).Save(draft).Error; err != nil {
		return err
	}
	return nil
}

// Delete soft deletes a draft by ID
func (r *draftRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Draft{}, id).Error; err != nil {
		return err
	}
	return nil
}

// DeleteByTicketAndUser removes the draft keyed by (ticket, user), if any
func (r *draftRepositoryImpl) DeleteByTicketAndUser(ctx context.Context, ticketID, userID uuid.UUID) error {
	if err := r.db.WithContext(ctx).
		Where("ticket_id = ? AND user_id = ?", ticketID, userID).
		Delete(&domain.Draft{}).Error; err != nil {
		return err
	}
	return nil
}

// DeleteByTicketIDs removes every draft for the given tickets
func (r *draftRepositoryImpl) DeleteByTicketIDs(ctx context.Context, ticketIDs []uuid.UUID) error {
	if len(ticketIDs) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).
		Where("ticket_id IN ?", ticketIDs).
		Delete(&domain.Draft{}).Error; err != nil {
		return err
	}
	return nil
}
