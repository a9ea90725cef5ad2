package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ticket-board-api/internal/cache"
	"ticket-board-api/internal/domain"
	"ticket-board-api/internal/dto"
	"ticket-board-api/internal/expiry"
	"ticket-board-api/internal/repository"
	"ticket-board-api/internal/response"
)

// BoardService assembles the caller's full board: every column with its
// tickets in display order
type BoardService interface {
	GetBoard(ctx context.Context) (*dto.BoardResponse, error)
	// RefreshBoard bypasses the cache and rebuilds from the database
	RefreshBoard(ctx context.Context) (*dto.BoardResponse, error)
}

// boardServiceImpl is the implementation of BoardService
type boardServiceImpl struct {
	categoryRepo repository.CategoryRepository
	ticketRepo   repository.TicketRepository
	userRepo     repository.UserRepository
	boardCache   *cache.BoardCache
	logger       *zap.Logger
}

// NewBoardService creates a new instance of BoardService
func NewBoardService(
	categoryRepo repository.CategoryRepository,
	ticketRepo repository.TicketRepository,
	userRepo repository.UserRepository,
	boardCache *cache.BoardCache,
	logger *zap.Logger,
) BoardService {
	return &boardServiceImpl{
		categoryRepo: categoryRepo,
		ticketRepo:   ticketRepo,
		userRepo:     userRepo,
		boardCache:   boardCache,
		logger:       logger,
	}
}

// userIDFromContext extracts the authenticated user set by the auth
// middleware
func userIDFromContext(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value("user_id").(uuid.UUID)
	if !ok {
		return uuid.Nil, response.NewAppError(response.ErrCodeUnauthorized, "User ID not found in context", "")
	}
	return userID, nil
}

// GetBoard returns the caller's board, served from cache when possible
func (s *boardServiceImpl) GetBoard(ctx context.Context) (*dto.BoardResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if board, ok := s.boardCache.Get(ctx, userID); ok {
		return board, nil
	}

	board, err := s.buildBoard(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.boardCache.Set(ctx, userID, board)
	return board, nil
}

// RefreshBoard rebuilds the board from the database and recaches it.
// Used after a failed move to hand the caller authoritative state.
func (s *boardServiceImpl) RefreshBoard(ctx context.Context) (*dto.BoardResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.boardCache.Invalidate(ctx, userID)
	board, err := s.buildBoard(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.boardCache.Set(ctx, userID, board)
	return board, nil
}

func (s *boardServiceImpl) buildBoard(ctx context.Context, userID uuid.UUID) (*dto.BoardResponse, error) {
	categories, err := s.categoryRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load board columns", err.Error())
	}

	tickets, err := s.ticketRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load tickets", err.Error())
	}

	daysBefore := expiryLeadDays(ctx, s.userRepo, userID, s.logger)

	byCategory := make(map[uuid.UUID][]*domain.Ticket, len(categories))
	for _, ticket := range tickets {
		byCategory[ticket.CategoryID] = append(byCategory[ticket.CategoryID], ticket)
	}

	board := &dto.BoardResponse{
		Categories: make([]dto.CategoryResponse, len(categories)),
	}
	for i, category := range categories {
		board.Categories[i] = toCategoryResponse(category, byCategory[category.ID], daysBefore)
	}
	return board, nil
}

// expiryLeadDays returns the user's notification lead in days, falling
// back to the default when the user cannot be loaded
func expiryLeadDays(ctx context.Context, userRepo repository.UserRepository, userID uuid.UUID, logger *zap.Logger) int {
	user, err := userRepo.FindByID(ctx, userID)
	if err != nil {
		logger.Warn("Failed to load user for expiry lead, using default",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return domain.DefaultNotifyDaysBefore
	}
	return user.NotifyDaysBefore
}

func toCategoryResponse(category *domain.Category, tickets []*domain.Ticket, daysBefore int) dto.CategoryResponse {
	resp := dto.CategoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		Color:     category.Color,
		Position:  category.Position,
		Tickets:   make([]dto.TicketResponse, len(tickets)),
		CreatedAt: category.CreatedAt,
		UpdatedAt: category.UpdatedAt,
	}
	for i, ticket := range tickets {
		resp.Tickets[i] = toTicketResponse(ticket, daysBefore)
	}
	return resp
}

func toTicketResponse(ticket *domain.Ticket, daysBefore int) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:          ticket.ID,
		CategoryID:  ticket.CategoryID,
		Title:       ticket.Title,
		Description: ticket.Description,
		Priority:    ticket.Priority,
		ExpiryDate:  ticket.ExpiryDate,
		Position:    ticket.Position,
		CreatedAt:   ticket.CreatedAt,
		UpdatedAt:   ticket.UpdatedAt,
	}
	if ticket.ExpiryDate != nil {
		info := expiry.Evaluate(*ticket.ExpiryDate, time.Now(), daysBefore)
		resp.Expiry = &info
	}
	return resp
}
