package service

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ticket-board-api/internal/domain"
	"ticket-board-api/internal/dto"
	"ticket-board-api/internal/repository"
	"ticket-board-api/internal/response"
)

const defaultHistoryLimit = 100

// HistoryService defines the interface for the audit log
type HistoryService interface {
	AppendBoardEntry(ctx context.Context, userID uuid.UUID, action string, details map[string]interface{})
	AppendCardEntry(ctx context.Context, userID, ticketID uuid.UUID, action string, details map[string]interface{})
	GetBoardHistory(ctx context.Context) ([]*dto.HistoryEntryResponse, error)
	GetCardHistory(ctx context.Context, ticketID uuid.UUID) ([]*dto.HistoryEntryResponse, error)
}

// historyServiceImpl is the implementation of HistoryService
type historyServiceImpl struct {
	historyRepo repository.HistoryRepository
	logger      *zap.Logger
}

// NewHistoryService creates a new instance of HistoryService
func NewHistoryService(historyRepo repository.HistoryRepository, logger *zap.Logger) HistoryService {
	return &historyServiceImpl{
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// AppendBoardEntry appends a board-level audit line. Append failures are
// logged and swallowed; history must never fail the operation it records.
func (s *historyServiceImpl) AppendBoardEntry(ctx context.Context, userID uuid.UUID, action string, details map[string]interface{}) {
	s.append(ctx, domain.HistoryTypeBoard, action, nil, userID, details)
}

// AppendCardEntry appends a card-level audit line for one ticket
func (s *historyServiceImpl) AppendCardEntry(ctx context.Context, userID, ticketID uuid.UUID, action string, details map[string]interface{}) {
	s.append(ctx, domain.HistoryTypeCard, action, &ticketID, userID, details)
}

func (s *historyServiceImpl) append(ctx context.Context, entryType, action string, ticketID *uuid.UUID, userID uuid.UUID, details map[string]interface{}) {
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		s.logger.Warn("Failed to marshal history details",
			zap.String("action", action),
			zap.Error(err))
		detailsJSON = []byte("{}")
	}

	entry := &domain.HistoryEntry{
		EntryType: entryType,
		Action:    action,
		TicketID:  ticketID,
		UserID:    userID,
		Details:   detailsJSON,
	}
	if err := s.historyRepo.Create(ctx, entry); err != nil {
		s.logger.Warn("Failed to append history entry",
			zap.String("action", action),
			zap.Error(err))
	}
}

// GetBoardHistory returns the caller's board-level audit lines
func (s *historyServiceImpl) GetBoardHistory(ctx context.Context) ([]*dto.HistoryEntryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.FindBoardHistory(ctx, userID, defaultHistoryLimit)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load board history", err.Error())
	}
	return toHistoryResponses(entries), nil
}

// GetCardHistory returns one ticket's audit lines for the caller
func (s *historyServiceImpl) GetCardHistory(ctx context.Context, ticketID uuid.UUID) ([]*dto.HistoryEntryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.historyRepo.FindByTicketID(ctx, ticketID, userID, defaultHistoryLimit)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to load card history", err.Error())
	}
	return toHistoryResponses(entries), nil
}

func toHistoryResponses(entries []*domain.HistoryEntry) []*dto.HistoryEntryResponse {
	responses := make([]*dto.HistoryEntryResponse, len(entries))
	for i, entry := range entries {
		responses[i] = &dto.HistoryEntryResponse{
			ID:        entry.ID,
			EntryType: entry.EntryType,
			Action:    entry.Action,
			TicketID:  entry.TicketID,
			Details:   json.RawMessage(entry.Details),
			CreatedAt: entry.CreatedAt,
		}
	}
	return responses
}
