package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"ticket-board-api/internal/cache"
	"ticket-board-api/internal/domain"
	"ticket-board-api/internal/dto"
	"ticket-board-api/internal/metrics"
	"ticket-board-api/internal/repository"
)

// testContext returns a context carrying the authenticated user the way
// the auth middleware sets it
func testContext(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), "user_id", userID)
}

// testMetrics returns a metrics instance on a private registry so tests
// never collide on registration
func testMetrics() *metrics.Metrics {
	return metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
}

// nopBoardCache returns a cache with no backing client; every read
// misses and writes are dropped
func nopBoardCache() *cache.BoardCache {
	return cache.NewBoardCache(nil, zap.NewNop())
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	CreateFunc         func(ctx context.Context, category *domain.Category) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindByUserIDFunc   func(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
	UpdateFunc         func(ctx context.Context, category *domain.Category) error
	UpdatePositionFunc func(ctx context.Context, id uuid.UUID, position int) error
	DeleteFunc         func(ctx context.Context, id uuid.UUID) error
	CountByUserIDFunc  func(ctx context.Context, userID uuid.UUID) (int64, error)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	return nil
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCategoryRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, category)
	}
	return nil
}

func (m *MockCategoryRepository) UpdatePosition(ctx context.Context, id uuid.UUID, position int) error {
	if m.UpdatePositionFunc != nil {
		return m.UpdatePositionFunc(ctx, id, position)
	}
	return nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCategoryRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.CountByUserIDFunc != nil {
		return m.CountByUserIDFunc(ctx, userID)
	}
	return 0, nil
}

// MockTicketRepository is a mock implementation of TicketRepository
type MockTicketRepository struct {
	CreateFunc            func(ctx context.Context, ticket *domain.Ticket) error
	FindByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)
	FindByUserIDFunc      func(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error)
	FindByCategoryIDFunc  func(ctx context.Context, categoryID uuid.UUID) ([]*domain.Ticket, error)
	UpdateFunc            func(ctx context.Context, ticket *domain.Ticket) error
	MoveFunc              func(ctx context.Context, id, categoryID uuid.UUID, position int) error
	UpdatePositionsFunc   func(ctx context.Context, updates []repository.PositionUpdate) []error
	DeleteFunc            func(ctx context.Context, id uuid.UUID) error
	CountByCategoryIDFunc func(ctx context.Context, categoryID uuid.UUID) (int64, error)
	FindOrphanedFunc      func(ctx context.Context) ([]*domain.Ticket, error)
	FindExpiringFunc      func(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error)
}

func (m *MockTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, ticket)
	}
	return nil
}

func (m *MockTicketRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTicketRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockTicketRepository) FindByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Ticket, error) {
	if m.FindByCategoryIDFunc != nil {
		return m.FindByCategoryIDFunc(ctx, categoryID)
	}
	return nil, nil
}

func (m *MockTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, ticket)
	}
	return nil
}

func (m *MockTicketRepository) Move(ctx context.Context, id, categoryID uuid.UUID, position int) error {
	if m.MoveFunc != nil {
		return m.MoveFunc(ctx, id, categoryID, position)
	}
	return nil
}

func (m *MockTicketRepository) UpdatePositions(ctx context.Context, updates []repository.PositionUpdate) []error {
	if m.UpdatePositionsFunc != nil {
		return m.UpdatePositionsFunc(ctx, updates)
	}
	return nil
}

func (m *MockTicketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTicketRepository) CountByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	if m.CountByCategoryIDFunc != nil {
		return m.CountByCategoryIDFunc(ctx, categoryID)
	}
	return 0, nil
}

func (m *MockTicketRepository) FindOrphaned(ctx context.Context) ([]*domain.Ticket, error) {
	if m.FindOrphanedFunc != nil {
		return m.FindOrphanedFunc(ctx)
	}
	return nil, nil
}

func (m *MockTicketRepository) FindExpiring(ctx context.Context, userID uuid.UUID) ([]*domain.Ticket, error) {
	if m.FindExpiringFunc != nil {
		return m.FindExpiringFunc(ctx, userID)
	}
	return nil, nil
}

// MockDraftRepository is a mock implementation of DraftRepository
type MockDraftRepository struct {
	CreateFunc                func(ctx context.Context, draft *domain.Draft) error
	FindByIDFunc              func(ctx context.Context, id uuid.UUID) (*domain.Draft, error)
	FindByTicketAndUserFunc   func(ctx context.Context, ticketID, userID uuid.UUID) (*domain.Draft, error)
	FindTicketIDsByUserFunc   func(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	UpdateFunc                func(ctx context.Context, draft *domain.Draft) error
	DeleteFunc                func(ctx context.Context, id uuid.UUID) error
	DeleteByTicketAndUserFunc func(ctx context.Context, ticketID, userID uuid.UUID) error
	DeleteByTicketIDsFunc     func(ctx context.Context, ticketIDs []uuid.UUID) error
}

func (m *MockDraftRepository) Create(ctx context.Context, draft *domain.Draft) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, draft)
	}
	return nil
}

func (m *MockDraftRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockDraftRepository) FindByTicketAndUser(ctx context.Context, ticketID, userID uuid.UUID) (*domain.Draft, error) {
	if m.FindByTicketAndUserFunc != nil {
		return m.FindByTicketAndUserFunc(ctx, ticketID, userID)
	}
	return nil, nil
}

func (m *MockDraftRepository) FindTicketIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if m.FindTicketIDsByUserFunc != nil {
		return m.FindTicketIDsByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockDraftRepository) Update(ctx context.Context, draft *domain.Draft) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, draft)
	}
	return nil
}

func (m *MockDraftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockDraftRepository) DeleteByTicketAndUser(ctx context.Context, ticketID, userID uuid.UUID) error {
	if m.DeleteByTicketAndUserFunc != nil {
		return m.DeleteByTicketAndUserFunc(ctx, ticketID, userID)
	}
	return nil
}

func (m *MockDraftRepository) DeleteByTicketIDs(ctx context.Context, ticketIDs []uuid.UUID) error {
	if m.DeleteByTicketIDsFunc != nil {
		return m.DeleteByTicketIDsFunc(ctx, ticketIDs)
	}
	return nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	CreateFunc                     func(ctx context.Context, user *domain.User) error
	FindByIDFunc                   func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmailFunc                func(ctx context.Context, email string) (*domain.User, error)
	UpdateFunc                     func(ctx context.Context, user *domain.User) error
	FindAllWithExpiringTicketsFunc func(ctx context.Context) ([]*domain.User, error)
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindAllWithExpiringTickets(ctx context.Context) ([]*domain.User, error) {
	if m.FindAllWithExpiringTicketsFunc != nil {
		return m.FindAllWithExpiringTicketsFunc(ctx)
	}
	return nil, nil
}

// recordedHistoryEntry is one audit line captured by MockHistoryService
type recordedHistoryEntry struct {
	Action   string
	TicketID *uuid.UUID
	Details  map[string]interface{}
}

// MockHistoryService captures appended audit entries instead of
// persisting them
type MockHistoryService struct {
	Entries []recordedHistoryEntry
}

func (m *MockHistoryService) AppendBoardEntry(ctx context.Context, userID uuid.UUID, action string, details map[string]interface{}) {
	m.Entries = append(m.Entries, recordedHistoryEntry{Action: action, Details: details})
}

func (m *MockHistoryService) AppendCardEntry(ctx context.Context, userID, ticketID uuid.UUID, action string, details map[string]interface{}) {
	id := ticketID
	m.Entries = append(m.Entries, recordedHistoryEntry{Action: action, TicketID: &id, Details: details})
}

func (m *MockHistoryService) GetBoardHistory(ctx context.Context) ([]*dto.HistoryEntryResponse, error) {
	return nil, nil
}

func (m *MockHistoryService) GetCardHistory(ctx context.Context, ticketID uuid.UUID) ([]*dto.HistoryEntryResponse, error) {
	return nil, nil
}

// MockHistoryRepository is a mock implementation of HistoryRepository
type MockHistoryRepository struct {
	CreateFunc           func(ctx context.Context, entry *domain.HistoryEntry) error
	FindBoardHistoryFunc func(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.HistoryEntry, error)
	FindByTicketIDFunc   func(ctx context.Context, ticketID, userID uuid.UUID, limit int) ([]*domain.HistoryEntry, error)
}

func (m *MockHistoryRepository) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, entry)
	}
	return nil
}

func (m *MockHistoryRepository) FindBoardHistory(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.HistoryEntry, error) {
	if m.FindBoardHistoryFunc != nil {
		return m.FindBoardHistoryFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *MockHistoryRepository) FindByTicketID(ctx context.Context, ticketID, userID uuid.UUID, limit int) ([]*domain.HistoryEntry, error) {
	if m.FindByTicketIDFunc != nil {
		return m.FindByTicketIDFunc(ctx, ticketID, userID, limit)
	}
	return nil, nil
}
