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

// TicketService defines the interface for ticket business logic
type TicketService interface {
	CreateTicket(ctx context.Context, req *dto.CreateTicketRequest) (*dto.TicketResponse, error)
	GetTicket(ctx context.Context, ticketID uuid.UUID) (*dto.TicketResponse, error)
	UpdateTicket(ctx context.Context, ticketID uuid.UUID, req *dto.UpdateTicketRequest) (*dto.TicketResponse, error)
	MoveTicket(ctx context.Context, ticketID uuid.UUID, req *dto.MoveTicketRequest) (*dto.MoveTicketResponse, error)
	DeleteTicket(ctx context.Context, ticketID uuid.UUID) error
}

// ticketServiceImpl is the implementation of TicketService
type ticketServiceImpl struct {
	ticketRepo   repository.TicketRepository
	categoryRepo repository.CategoryRepository
	draftRepo    repository.DraftRepository
	userRepo     repository.UserRepository
	historySvc   HistoryService
	boardCache   *cache.BoardCache
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// NewTicketService creates a new instance of TicketService
func NewTicketService(
	ticketRepo repository.TicketRepository,
	categoryRepo repository.CategoryRepository,
	draftRepo repository.DraftRepository,
	userRepo repository.UserRepository,
	historySvc HistoryService,
	boardCache *cache.BoardCache,
	m *metrics.Metrics,
	logger *zap.Logger,
) TicketService {
	return &ticketServiceImpl{
		ticketRepo:   ticketRepo,
		categoryRepo: categoryRepo,
		draftRepo:    draftRepo,
		userRepo:     userRepo,
		historySvc:   historySvc,
		boardCache:   boardCache,
		metrics:      m,
		logger:       logger,
	}
}

// CreateTicket appends a new ticket to the end of its column
func (s *ticketServiceImpl) CreateTicket(ctx context.Context, req *dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.ownedCategory(ctx, req.CategoryID, userID); err != nil {
		return nil, err
	}

	count, err := s.ticketRepo.CountByCategoryID(ctx, req.CategoryID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count tickets", err.Error())
	}

	ticket := &domain.Ticket{
		CategoryID:  req.CategoryID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		ExpiryDate:  req.ExpiryDate,
		Position:    int(count),
	}
	if req.Priority != "" {
		if !domain.ValidPriority(req.Priority) {
			return nil, response.NewValidationError("Invalid priority", req.Priority)
		}
		ticket.Priority = req.Priority
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to create ticket", err.Error())
	}

	s.boardCache.Invalidate(ctx, userID)
	s.historySvc.AppendCardEntry(ctx, userID, ticket.ID, domain.ActionTicketCreated, map[string]interface{}{
		"title":       ticket.Title,
		"category_id": ticket.CategoryID.String(),
		"position":    ticket.Position,
	})
	s.metrics.IncrementTicketCreated()

	resp := toTicketResponse(ticket, expiryLeadDays(ctx, s.userRepo, userID, s.logger))
	return &resp, nil
}

// GetTicket returns one ticket with its derived expiry info
func (s *ticketServiceImpl) GetTicket(ctx context.Context, ticketID uuid.UUID) (*dto.TicketResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ticket, err := s.ownedTicket(ctx, ticketID, userID)
	if err != nil {
		return nil, err
	}

	resp := toTicketResponse(ticket, expiryLeadDays(ctx, s.userRepo, userID, s.logger))
	return &resp, nil
}

// UpdateTicket edits a ticket's fields. When no field actually changes
// the write is skipped entirely.
func (s *ticketServiceImpl) UpdateTicket(ctx context.Context, ticketID uuid.UUID, req *dto.UpdateTicketRequest) (*dto.TicketResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ticket, err := s.ownedTicket(ctx, ticketID, userID)
	if err != nil {
		return nil, err
	}

	changed := false
	changes := map[string]interface{}{}

	if req.Title != nil && *req.Title != ticket.Title {
		changes["title"] = map[string]string{"old": ticket.Title, "new": *req.Title}
		ticket.Title = *req.Title
		changed = true
	}
	if req.Description != nil && *req.Description != ticket.Description {
		ticket.Description = *req.Description
		changes["description"] = "updated"
		changed = true
	}
	if req.Priority != nil && *req.Priority != ticket.Priority {
		if !domain.ValidPriority(*req.Priority) {
			return nil, response.NewValidationError("Invalid priority", *req.Priority)
		}
		changes["priority"] = map[string]string{"old": ticket.Priority, "new": *req.Priority}
		ticket.Priority = *req.Priority
		changed = true
	}
	if req.ClearExpiryDate {
		if ticket.ExpiryDate != nil {
			ticket.ExpiryDate = nil
			changes["expiry_date"] = "cleared"
			changed = true
		}
	} else if req.ExpiryDate != nil {
		if ticket.ExpiryDate == nil || !ticket.ExpiryDate.Equal(*req.ExpiryDate) {
			ticket.ExpiryDate = req.ExpiryDate
			changes["expiry_date"] = req.ExpiryDate
			changed = true
		}
	}

	if changed {
		if err := s.ticketRepo.Update(ctx, ticket); err != nil {
			return nil, response.NewAppError(response.ErrCodePersistence, "Failed to update ticket", err.Error())
		}
		s.boardCache.Invalidate(ctx, userID)
		s.historySvc.AppendCardEntry(ctx, userID, ticket.ID, domain.ActionTicketUpdated, changes)
	}

	resp := toTicketResponse(ticket, expiryLeadDays(ctx, s.userRepo, userID, s.logger))
	return &resp, nil
}

// MoveTicket drops a ticket at a position inside a column. Position is
// the insertion index counted without the moved ticket, so it is the
// ticket's index in the resulting column.
//
// Only entities whose position actually changes are written. The moved
// ticket's own write is the primary one; when it fails the cached board
// is dropped so the caller refetches authoritative state. Sibling write
// failures are logged and swallowed.
func (s *ticketServiceImpl) MoveTicket(ctx context.Context, ticketID uuid.UUID, req *dto.MoveTicketRequest) (*dto.MoveTicketResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ticket, err := s.ownedTicket(ctx, ticketID, userID)
	if err != nil {
		return nil, err
	}
	target, err := s.ownedCategory(ctx, req.TargetCategoryID, userID)
	if err != nil {
		return nil, err
	}

	sourceTickets, err := s.ticketRepo.FindByCategoryID(ctx, ticket.CategoryID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load column tickets", err.Error())
	}
	source := toTicketItems(sourceTickets)
	from := ordering.IndexOf(source, ticketID)
	if from < 0 {
		return nil, response.NewAppError(response.ErrCodeInternal, "Ticket missing from its column", "")
	}

	daysBefore := expiryLeadDays(ctx, s.userRepo, userID, s.logger)

	if ticket.CategoryID == req.TargetCategoryID {
		// Dropping a ticket back onto its own slot changes nothing
		if from == req.Position {
			resp := toTicketResponse(ticket, daysBefore)
			return &dto.MoveTicketResponse{Ticket: resp, Moved: false}, nil
		}
		if req.Position >= len(source) {
			return nil, response.NewValidationError("Position out of range", "")
		}

		after := ordering.MoveWithin(source, from, req.Position)
		return s.commitMove(ctx, userID, ticket, target, req.Position, ordering.Diff(source, after), daysBefore, from)
	}

	targetTickets, err := s.ticketRepo.FindByCategoryID(ctx, req.TargetCategoryID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load column tickets", err.Error())
	}
	dst := toTicketItems(targetTickets)
	if req.Position > len(dst) {
		return nil, response.NewValidationError("Position out of range", "")
	}

	srcAfter, dstAfter := ordering.MoveAcross(source, dst, from, req.Position)
	changed := append(ordering.Diff(source, srcAfter), ordering.Diff(dst, dstAfter)...)
	return s.commitMove(ctx, userID, ticket, target, req.Position, changed, daysBefore, from)
}

// commitMove persists a computed move: primary write for the dragged
// ticket, then best-effort sibling position writes, then the audit line
func (s *ticketServiceImpl) commitMove(
	ctx context.Context,
	userID uuid.UUID,
	ticket *domain.Ticket,
	target *domain.Category,
	position int,
	changed []ordering.Item,
	daysBefore int,
	fromIndex int,
) (*dto.MoveTicketResponse, error) {
	oldCategoryID := ticket.CategoryID

	if err := s.ticketRepo.Move(ctx, ticket.ID, target.ID, position); err != nil {
		// The board cache may hold the optimistic arrangement; drop it so
		// the next read returns authoritative state
		s.boardCache.Invalidate(ctx, userID)
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to persist ticket move", err.Error())
	}

	updates := make([]repository.PositionUpdate, 0, len(changed))
	for _, item := range changed {
		if item.ID == ticket.ID {
			continue
		}
		updates = append(updates, repository.PositionUpdate{ID: item.ID, Position: item.Position})
	}
	for _, err := range s.ticketRepo.UpdatePositions(ctx, updates) {
		// Sibling failures self-heal on the next normalize
		s.logger.Warn("Failed to persist sibling ticket position",
			zap.String("ticket_id", ticket.ID.String()),
			zap.Error(err))
	}

	s.boardCache.Invalidate(ctx, userID)

	details := map[string]interface{}{
		"from_category_id": oldCategoryID.String(),
		"to_category_id":   target.ID.String(),
		"to_category_name": target.Name,
		"from_index":       fromIndex,
		"to_index":         position,
	}
	if oldCategory, err := s.categoryRepo.FindByID(ctx, oldCategoryID); err == nil {
		details["from_category_name"] = oldCategory.Name
	}
	s.historySvc.AppendCardEntry(ctx, userID, ticket.ID, domain.ActionTicketMoved, details)
	s.metrics.IncrementTicketMoved()

	ticket.CategoryID = target.ID
	ticket.Position = position
	resp := toTicketResponse(ticket, daysBefore)
	return &dto.MoveTicketResponse{Ticket: resp, Moved: true}, nil
}

// DeleteTicket removes a ticket, compacts its column and clears any
// drafts left behind
func (s *ticketServiceImpl) DeleteTicket(ctx context.Context, ticketID uuid.UUID) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	ticket, err := s.ownedTicket(ctx, ticketID, userID)
	if err != nil {
		return err
	}

	siblings, err := s.ticketRepo.FindByCategoryID(ctx, ticket.CategoryID)
	if err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to load column tickets", err.Error())
	}

	if err := s.ticketRepo.Delete(ctx, ticketID); err != nil {
		return response.NewAppError(response.ErrCodePersistence, "Failed to delete ticket", err.Error())
	}

	// Draft removal is best effort; a leftover draft is collected by the
	// cleanup job
	if err := s.draftRepo.DeleteByTicketIDs(ctx, []uuid.UUID{ticketID}); err != nil {
		s.logger.Warn("Failed to delete drafts for removed ticket",
			zap.String("ticket_id", ticketID.String()),
			zap.Error(err))
	}

	before := toTicketItems(siblings)
	after := ordering.RemoveID(before, ticketID)
	updates := make([]repository.PositionUpdate, 0)
	for _, item := range ordering.Diff(before, after) {
		updates = append(updates, repository.PositionUpdate{ID: item.ID, Position: item.Position})
	}
	for _, err := range s.ticketRepo.UpdatePositions(ctx, updates) {
		s.logger.Warn("Failed to compact column after ticket delete",
			zap.String("category_id", ticket.CategoryID.String()),
			zap.Error(err))
	}

	s.boardCache.Invalidate(ctx, userID)
	s.historySvc.AppendCardEntry(ctx, userID, ticketID, domain.ActionTicketDeleted, map[string]interface{}{
		"title":       ticket.Title,
		"category_id": ticket.CategoryID.String(),
	})
	return nil
}

func findOwnedTicket(ctx context.Context, ticketRepo repository.TicketRepository, ticketID, userID uuid.UUID) (*domain.Ticket, error) {
	ticket, err := ticketRepo.FindByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Ticket not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load ticket", err.Error())
	}
	if ticket.UserID != userID {
		return nil, response.NewAppError(response.ErrCodeNotFound, "Ticket not found", "")
	}
	return ticket, nil
}

func (s *ticketServiceImpl) ownedTicket(ctx context.Context, ticketID, userID uuid.UUID) (*domain.Ticket, error) {
	return findOwnedTicket(ctx, s.ticketRepo, ticketID, userID)
}

func (s *ticketServiceImpl) ownedCategory(ctx context.Context, categoryID, userID uuid.UUID) (*domain.Category, error) {
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

func toTicketItems(tickets []*domain.Ticket) []ordering.Item {
	items := make([]ordering.Item, len(tickets))
	for i, ticket := range tickets {
		items[i] = ordering.Item{ID: ticket.ID, Position: ticket.Position}
	}
	return items
}
