package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ticket-board-api/internal/domain"
)

// PositionUpdate is one entity's new position in a batch write
type PositionUpdate struct {
	ID       uuid.UUID
	Position int
}

// TicketRepository defines the interface for ticket data access
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error)
	FindByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	Move(ctx context.Context, id, categoryID uuid.UUID, position int) error
	UpdatePositions(ctx context.Context, updates []PositionUpdate) []error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error)
	FindOrphaned(ctx context.Context) ([]*domain.Ticket, error)
	FindExpiring(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error)
}

// ticketRepositoryImpl is the GORM implementation of TicketRepository
type ticketRepositoryImpl struct {
	db *gorm.DB
}

// NewTicketRepository creates a new instance of TicketRepository
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepositoryImpl{db: db}
}

// Create creates a new ticket
func (r *ticketRepositoryImpl) Create(ctx context.Context, ticket *domain.Ticket) error {
	if err := r.db.WithContext(ctx).Create(ticket).Error; err != nil {
		return err
	}
	return nil
}

// FindByID finds a ticket by its ID
func (r *ticketRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := r.db.WithContext(ctx).First(&ticket, id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// FindByUserID returns all of the user's tickets ordered by column and
// position
func (r *ticketRepositoryImpl) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error) {
	var tickets []*domain.Ticket
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category_id ASC, position ASC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// FindByCategoryID returns a column's tickets ordered by position
func (r *ticketRepositoryImpl) FindByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Ticket, error) {
	var tickets []*domain.Ticket
	if err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("position ASC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// Update persists changed ticket fields
func (r *ticketRepositoryImpl) Update(ctx context.Context, ticket *domain.Ticket) error {
	if err := r.db.WithContext(ctx).Save(ticket).Error; err != nil {
		return err
	}
	return nil
}

// Move writes the ticket's column reference and position in one update
func (r *ticketRepositoryImpl) Move(ctx context.Context, id, categoryID uuid.UUID, position int) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"category_id": categoryID,
			"position":    position,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdatePositions issues the position writes concurrently, one per
// entity, and returns whatever errors occurred. Callers decide whether
// sibling failures are fatal.
func (r *ticketRepositoryImpl) UpdatePositions(ctx context.Context, updates []PositionUpdate) []error {
	if len(updates) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, len(updates))

	for i, u := range updates {
		wg.Add(1)
		go func(i int, u PositionUpdate) {
			defer wg.Done()
			errs[i] = r.db.WithContext(ctx).
				Model(&domain.Ticket{}).
				Where("id = ?", u.ID).
				Update("position", u.Position).Error
		}(i, u)
	}
	wg.Wait()

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	return failed
}

// Delete soft deletes a ticket by ID
func (r *ticketRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Ticket{}, id).Error; err != nil {
		return err
	}
	return nil
}

// CountByCategoryID counts a column's tickets
func (r *ticketRepositoryImpl) CountByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Ticket{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindOrphaned returns tickets whose category no longer exists. The
// cleanup job collects these after column deletions.
func (r *ticketRepositoryImpl) FindOrphaned(ctx context.Context) ([]*domain.Ticket, error) {
	var tickets []*domain.Ticket
	if err := r.db.WithContext(ctx).
		Where("category_id NOT IN (?)", r.db.Model(&domain.Category{}).Select("id")).
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

// FindExpiring returns the user's tickets that have an expiry date
func (r *ticketRepositoryImpl) FindExpiring(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error) {
	var tickets []*domain.Ticket
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND expiry_date IS NOT NULL", userID).
		Order("expiry_date ASC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}
