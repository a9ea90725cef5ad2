package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ticket-board-api/internal/domain"
	"ticket-board-api/internal/dto"
	"ticket-board-api/internal/editor"
	"ticket-board-api/internal/metrics"
	"ticket-board-api/internal/repository"
	"ticket-board-api/internal/response"
)

// DraftService defines the interface for per-ticket draft recovery
type DraftService interface {
	// OpenEditor loads a ticket for editing and restores its draft when
	// the draft is newer than the ticket's last save
	OpenEditor(ctx context.Context, ticketID uuid.UUID) (*dto.EditorStateResponse, error)
	GetDraft(ctx context.Context, ticketID uuid.UUID) (*dto.DraftResponse, error)
	SaveDraft(ctx context.Context, req *dto.SaveDraftRequest) (*dto.DraftResponse, error)
	DeleteDraft(ctx context.Context, ticketID uuid.UUID) error
	TicketIDsWithDrafts(ctx context.Context) (*dto.DraftedTicketsResponse, error)
}

// draftServiceImpl is the implementation of DraftService
type draftServiceImpl struct {
	draftRepo  repository.DraftRepository
	ticketRepo repository.TicketRepository
	userRepo   repository.UserRepository
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewDraftService creates a new instance of DraftService
func NewDraftService(
	draftRepo repository.DraftRepository,
	ticketRepo repository.TicketRepository,
	userRepo repository.UserRepository,
	m *metrics.Metrics,
	logger *zap.Logger,
) DraftService {
	return &draftServiceImpl{
		draftRepo:  draftRepo,
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		metrics:    m,
		logger:     logger,
	}
}

// OpenEditor returns the editor's opening state for a ticket
func (s *draftServiceImpl) OpenEditor(ctx context.Context, ticketID uuid.UUID) (*dto.EditorStateResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ticket, err := findOwnedTicket(ctx, s.ticketRepo, ticketID, userID)
	if err != nil {
		return nil, err
	}

	session := editor.NewSession(ticketToFields(ticket))

	draft, err := s.draftRepo.FindByTicketAndUser(ctx, ticketID, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load draft", err.Error())
	}

	var draftResp *dto.DraftResponse
	if draft != nil {
		session.ApplyDraft(draft.ID, draftToFields(draft), draft.UpdatedAt, ticket.UpdatedAt)
		draftResp = toDraftResponse(draft)
	}

	ticketResp := toTicketResponse(ticket, expiryLeadDays(ctx, s.userRepo, userID, s.logger))
	return &dto.EditorStateResponse{
		Ticket:        ticketResp,
		Draft:         draftResp,
		DraftRestored: session.Restored(),
		Dirty:         session.Dirty(),
	}, nil
}

// GetDraft returns the caller's draft for a ticket
func (s *draftServiceImpl) GetDraft(ctx context.Context, ticketID uuid.UUID) (*dto.DraftResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	draft, err := s.draftRepo.FindByTicketAndUser(ctx, ticketID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewAppError(response.ErrCodeNotFound, "Draft not found", "")
		}
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load draft", err.Error())
	}
	return toDraftResponse(draft), nil
}

// SaveDraft upserts the caller's draft for a ticket. The row is located
// by the cached draft identifier when the client still has one, falling
// back to the (ticket, user) key, and created otherwise.
func (s *draftServiceImpl) SaveDraft(ctx context.Context, req *dto.SaveDraftRequest) (*dto.DraftResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := findOwnedTicket(ctx, s.ticketRepo, req.TicketID, userID); err != nil {
		return nil, err
	}
	if req.Priority != "" && !domain.ValidPriority(req.Priority) {
		return nil, response.NewValidationError("Invalid priority", req.Priority)
	}

	draft := s.locateDraft(ctx, req, userID)
	if draft != nil {
		draft.Title = req.Title
		draft.Description = req.Description
		if req.Priority != "" {
			draft.Priority = req.Priority
		}
		draft.ExpiryDate = req.ExpiryDate
		draft.CategoryID = req.CategoryID

		if err := s.draftRepo.Update(ctx, draft); err != nil {
			return nil, response.NewAppError(response.ErrCodePersistence, "Failed to save draft", err.Error())
		}
		s.metrics.IncrementDraftSaved()
		return toDraftResponse(draft), nil
	}

	draft = &domain.Draft{
		TicketID:    req.TicketID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		ExpiryDate:  req.ExpiryDate,
		CategoryID:  req.CategoryID,
	}
	if req.Priority != "" {
		draft.Priority = req.Priority
	}
	if err := s.draftRepo.Create(ctx, draft); err != nil {
		return nil, response.NewAppError(response.ErrCodePersistence, "Failed to save draft", err.Error())
	}
	s.metrics.IncrementDraftSaved()
	return toDraftResponse(draft), nil
}

// DeleteDraft discards the caller's draft for a ticket. Deleting a
// draft that does not exist succeeds; the editor clears its local copy
// first and the server follows.
func (s *draftServiceImpl) DeleteDraft(ctx context.Context, ticketID uuid.UUID) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.draftRepo.DeleteByTicketAndUser(ctx, ticketID, userID); err != nil {
		return response.NewAppError(response.ErrCodePersistence, "Failed to delete draft", err.Error())
	}
	return nil
}

// TicketIDsWithDrafts lists the tickets the caller has pending drafts
// for, so the board can badge them
func (s *draftServiceImpl) TicketIDsWithDrafts(ctx context.Context) (*dto.DraftedTicketsResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	ticketIDs, err := s.draftRepo.FindTicketIDsByUser(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list drafts", err.Error())
	}
	return &dto.DraftedTicketsResponse{TicketIDs: ticketIDs}, nil
}

// locateDraft resolves the row a save should land on: the cached
// identifier first, the (ticket, user) key second, nil when the save
// must insert
func (s *draftServiceImpl) locateDraft(ctx context.Context, req *dto.SaveDraftRequest, userID uuid.UUID) *domain.Draft {
	if req.ID != nil {
		draft, err := s.draftRepo.FindByID(ctx, *req.ID)
		if err == nil && draft.TicketID == req.TicketID && draft.UserID == userID {
			return draft
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("Draft lookup by cached id failed",
				zap.String("draft_id", req.ID.String()),
				zap.Error(err))
		}
	}

	draft, err := s.draftRepo.FindByTicketAndUser(ctx, req.TicketID, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("Draft lookup by ticket failed",
				zap.String("ticket_id", req.TicketID.String()),
				zap.Error(err))
		}
		return nil
	}
	return draft
}

func ticketToFields(ticket *domain.Ticket) editor.Fields {
	return editor.Fields{
		Title:       ticket.Title,
		Description: ticket.Description,
		Priority:    ticket.Priority,
		ExpiryDate:  ticket.ExpiryDate,
	}
}

func draftToFields(draft *domain.Draft) editor.Fields {
	return editor.Fields{
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		ExpiryDate:  draft.ExpiryDate,
		CategoryID:  draft.CategoryID,
	}
}

func toDraftResponse(draft *domain.Draft) *dto.DraftResponse {
	return &dto.DraftResponse{
		ID:          draft.ID,
		TicketID:    draft.TicketID,
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		ExpiryDate:  draft.ExpiryDate,
		CategoryID:  draft.CategoryID,
		UpdatedAt:   draft.UpdatedAt,
	}
}
