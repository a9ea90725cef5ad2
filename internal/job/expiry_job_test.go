package job

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"ticket-board-api/internal/domain"
	"ticket-board-api/internal/metrics"
)

func newExpiryTestJob(userRepo *MockUserRepository, ticketRepo *MockTicketRepository, sender *MockToastSender) *ExpiryJob {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), zap.NewNop())
	return NewExpiryJob(userRepo, ticketRepo, sender, m, zap.NewNop())
}

func expiringTicket(userID uuid.UUID, title string, daysFromNow int) *domain.Ticket {
	expiry := time.Now().AddDate(0, 0, daysFromNow)
	return &domain.Ticket{
		BaseModel:  domain.BaseModel{ID: uuid.New()},
		CategoryID: uuid.New(),
		UserID:     userID,
		Title:      title,
		ExpiryDate: &expiry,
	}
}

func TestExpiryJob_Run_SendsToastWithinLead(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTickets := new(MockTicketRepository)
	sender := &MockToastSender{connected: true}

	user := &domain.User{
		BaseModel:        domain.BaseModel{ID: uuid.New()},
		Email:            "alice@example.com",
		NotifyDaysBefore: 3,
	}

	// 2 days out with a 3 day lead: warning territory
	ticket := expiringTicket(user.ID, "renew certificate", 2)

	mockUsers.On("FindAllWithExpiringTickets", mock.Anything).Return([]*domain.User{user}, nil)
	mockTickets.On("FindExpiring", mock.Anything, user.ID).Return([]*domain.Ticket{ticket}, nil)

	job := newExpiryTestJob(mockUsers, mockTickets, sender)
	job.Run()

	mockUsers.AssertExpectations(t)
	mockTickets.AssertExpectations(t)

	if assert.Len(t, sender.sent, 1) {
		toast := sender.sent[0]
		assert.Equal(t, user.ID, toast.userID)
		assert.Equal(t, "expiry", toast.payload["type"])
		assert.Equal(t, ticket.ID.String(), toast.payload["ticket_id"])
		assert.Equal(t, "warning", toast.payload["status"])
	}
}

func TestExpiryJob_Run_SafeTicketsNotNotified(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTickets := new(MockTicketRepository)
	sender := &MockToastSender{connected: true}

	user := &domain.User{
		BaseModel:        domain.BaseModel{ID: uuid.New()},
		Email:            "bob@example.com",
		NotifyDaysBefore: 3,
	}

	// 10 days out is beyond the 3 day lead
	ticket := expiringTicket(user.ID, "quarterly report", 10)

	mockUsers.On("FindAllWithExpiringTickets", mock.Anything).Return([]*domain.User{user}, nil)
	mockTickets.On("FindExpiring", mock.Anything, user.ID).Return([]*domain.Ticket{ticket}, nil)

	job := newExpiryTestJob(mockUsers, mockTickets, sender)
	job.Run()

	assert.Empty(t, sender.sent)
}

func TestExpiryJob_Run_LeadIsPerUser(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTickets := new(MockTicketRepository)
	sender := &MockToastSender{connected: true}

	// Same distance to expiry, different leads: only the 7 day lead fires
	shortLead := &domain.User{
		BaseModel:        domain.BaseModel{ID: uuid.New()},
		Email:            "short@example.com",
		NotifyDaysBefore: 3,
	}
	longLead := &domain.User{
		BaseModel:        domain.BaseModel{ID: uuid.New()},
		Email:            "long@example.com",
		NotifyDaysBefore: 7,
	}

	shortTicket := expiringTicket(shortLead.ID, "five days out", 5)
	longTicket := expiringTicket(longLead.ID, "five days out", 5)

	mockUsers.On("FindAllWithExpiringTickets", mock.Anything).Return([]*domain.User{shortLead, longLead}, nil)
	mockTickets.On("FindExpiring", mock.Anything, shortLead.ID).Return([]*domain.Ticket{shortTicket}, nil)
	mockTickets.On("FindExpiring", mock.Anything, longLead.ID).Return([]*domain.Ticket{longTicket}, nil)

	job := newExpiryTestJob(mockUsers, mockTickets, sender)
	job.Run()

	if assert.Len(t, sender.sent, 1) {
		assert.Equal(t, longLead.ID, sender.sent[0].userID)
	}
}

func TestExpiryJob_Run_OverdueAndDueToday(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTickets := new(MockTicketRepository)
	sender := &MockToastSender{connected: true}

	user := &domain.User{
		BaseModel:        domain.BaseModel{ID: uuid.New()},
		Email:            "carol@example.com",
		NotifyDaysBefore: 3,
	}

	overdue := expiringTicket(user.ID, "was due yesterday", -1)
	dueToday := expiringTicket(user.ID, "due today", 0)

	mockUsers.On("FindAllWithExpiringTickets", mock.Anything).Return([]*domain.User{user}, nil)
	mockTickets.On("FindExpiring", mock.Anything, user.ID).Return([]*domain.Ticket{overdue, dueToday}, nil)

	job := newExpiryTestJob(mockUsers, mockTickets, sender)
	job.Run()

	if assert.Len(t, sender.sent, 2) {
		assert.Equal(t, "overdue", sender.sent[0].payload["status"])
		assert.Equal(t, "danger", sender.sent[1].payload["status"])
	}
}

func TestExpiryJob_Run_SameStatusNotifiedOnce(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTickets := new(MockTicketRepository)
	sender := &MockToastSender{connected: true}

	user := &domain.User{
		BaseModel:        domain.BaseModel{ID: uuid.New()},
		Email:            "dave@example.com",
		NotifyDaysBefore: 3,
	}

	ticket := expiringTicket(user.ID, "due soon", 2)

	mockUsers.On("FindAllWithExpiringTickets", mock.Anything).Return([]*domain.User{user}, nil)
	mockTickets.On("FindExpiring", mock.Anything, user.ID).Return([]*domain.Ticket{ticket}, nil)

	job := newExpiryTestJob(mockUsers, mockTickets, sender)

	// Back-to-back scans on the same minute schedule
	job.Run()
	job.Run()

	assert.Len(t, sender.sent, 1, "same (ticket, status) pair should only toast once")
}

func TestExpiryJob_Run_DisconnectedUserRetriedNextScan(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTickets := new(MockTicketRepository)
	sender := &MockToastSender{connected: false}

	user := &domain.User{
		BaseModel:        domain.BaseModel{ID: uuid.New()},
		Email:            "erin@example.com",
		NotifyDaysBefore: 3,
	}

	ticket := expiringTicket(user.ID, "due soon", 2)

	mockUsers.On("FindAllWithExpiringTickets", mock.Anything).Return([]*domain.User{user}, nil)
	mockTickets.On("FindExpiring", mock.Anything, user.ID).Return([]*domain.Ticket{ticket}, nil)

	job := newExpiryTestJob(mockUsers, mockTickets, sender)

	// First scan finds nobody listening
	job.Run()
	assert.Empty(t, sender.sent)

	// The user reconnects before the next scan
	sender.connected = true
	job.Run()

	assert.Len(t, sender.sent, 1, "undelivered toast should be retried once the user connects")
}

func TestExpiryJob_Run_UserQueryError(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTickets := new(MockTicketRepository)
	sender := &MockToastSender{connected: true}

	mockUsers.On("FindAllWithExpiringTickets", mock.Anything).Return(nil, errors.New("database error"))

	job := newExpiryTestJob(mockUsers, mockTickets, sender)
	job.Run()

	mockTickets.AssertNotCalled(t, "FindExpiring")
	assert.Empty(t, sender.sent)
}

func TestExpiryJob_Run_TicketQueryErrorSkipsUser(t *testing.T) {
	mockUsers := new(MockUserRepository)
	mockTickets := new(MockTicketRepository)
	sender := &MockToastSender{connected: true}

	broken := &domain.User{
		BaseModel:        domain.BaseModel{ID: uuid.New()},
		Email:            "broken@example.com",
		NotifyDaysBefore: 3,
	}
	healthy := &domain.User{
		BaseModel:        domain.BaseModel{ID: uuid.New()},
		Email:            "healthy@example.com",
		NotifyDaysBefore: 3,
	}

	ticket := expiringTicket(healthy.ID, "still works", 1)

	mockUsers.On("FindAllWithExpiringTickets", mock.Anything).Return([]*domain.User{broken, healthy}, nil)
	mockTickets.On("FindExpiring", mock.Anything, broken.ID).Return(nil, errors.New("database error"))
	mockTickets.On("FindExpiring", mock.Anything, healthy.ID).Return([]*domain.Ticket{ticket}, nil)

	job := newExpiryTestJob(mockUsers, mockTickets, sender)
	job.Run()

	if assert.Len(t, sender.sent, 1) {
		assert.Equal(t, healthy.ID, sender.sent[0].userID)
	}
}
