package job

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ticket-board-api/internal/expiry"
	"ticket-board-api/internal/metrics"
	"ticket-board-api/internal/repository"
)

// ToastSender delivers a toast payload to a connected user. It reports
// false when the user has no open connection.
type ToastSender interface {
	SendToastToUser(userID uuid.UUID, payload map[string]interface{}) bool
}

// ExpiryJob scans tickets with expiry dates and pushes toast
// notifications to their owners when a ticket enters the warning,
// danger or overdue bucket
type ExpiryJob struct {
	userRepo   repository.UserRepository
	ticketRepo repository.TicketRepository
	sender     ToastSender
	metrics    *metrics.Metrics
	logger     *zap.Logger

	// notified tracks which (ticket, status) pairs have already been
	// toasted, so the per-minute schedule does not repeat itself. A
	// status change (warning -> danger -> overdue) notifies again.
	mu       sync.Mutex
	notified map[string]bool
}

// NewExpiryJob creates a new ExpiryJob instance
func NewExpiryJob(
	userRepo repository.UserRepository,
	ticketRepo repository.TicketRepository,
	sender ToastSender,
	m *metrics.Metrics,
	logger *zap.Logger,
) *ExpiryJob {
	return &ExpiryJob{
		userRepo:   userRepo,
		ticketRepo: ticketRepo,
		sender:     sender,
		metrics:    m,
		logger:     logger,
		notified:   make(map[string]bool),
	}
}

// Run executes one scan over all users with expiring tickets
func (j *ExpiryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	users, err := j.userRepo.FindAllWithExpiringTickets(ctx)
	if err != nil {
		j.logger.Error("Failed to find users with expiring tickets",
			zap.Error(err),
		)
		return
	}

	if len(users) == 0 {
		return
	}

	now := time.Now()
	sent := 0

	for _, user := range users {
		tickets, err := j.ticketRepo.FindExpiring(ctx, user.ID)
		if err != nil {
			j.logger.Error("Failed to find expiring tickets",
				zap.String("user_id", user.ID.String()),
				zap.Error(err),
			)
			continue
		}

		for _, ticket := range tickets {
			if ticket.ExpiryDate == nil {
				continue
			}

			info := expiry.Evaluate(*ticket.ExpiryDate, now, user.NotifyDaysBefore)
			if !info.Notify() {
				continue
			}

			if j.notifyTicket(user.ID, ticket.ID, ticket.Title, info) {
				sent++
			}
		}
	}

	if sent > 0 {
		j.logger.Info("Expiry scan sent notifications",
			zap.Int("toasts_sent", sent),
			zap.Int("users_scanned", len(users)),
		)
	}
}

// notifyTicket sends one toast unless the same (ticket, status) pair was
// already delivered. Delivery to a disconnected user is not recorded, so
// the next scan retries.
func (j *ExpiryJob) notifyTicket(userID, ticketID uuid.UUID, title string, info expiry.Info) bool {
	key := fmt.Sprintf("%s:%s", ticketID, info.Status)

	j.mu.Lock()
	already := j.notified[key]
	j.mu.Unlock()
	if already {
		return false
	}

	payload := map[string]interface{}{
		"type":      "expiry",
		"ticket_id": ticketID.String(),
		"title":     title,
		"status":    string(info.Status),
		"days_left": info.DaysLeft,
		"message":   toastMessage(title, info),
	}

	if !j.sender.SendToastToUser(userID, payload) {
		return false
	}

	j.mu.Lock()
	j.notified[key] = true
	j.mu.Unlock()

	j.metrics.IncrementToastSent()
	return true
}

// toastMessage formats the user-facing notification text
func toastMessage(title string, info expiry.Info) string {
	switch info.Status {
	case expiry.StatusOverdue:
		return fmt.Sprintf("\"%s\" is overdue", title)
	case expiry.StatusDanger:
		if info.DaysLeft == 0 {
			return fmt.Sprintf("\"%s\" is due today", title)
		}
		return fmt.Sprintf("\"%s\" is due tomorrow", title)
	default:
		return fmt.Sprintf("\"%s\" is due in %d days", title, info.DaysLeft)
	}
}
