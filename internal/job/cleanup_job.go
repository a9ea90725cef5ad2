package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ticket-board-api/internal/repository"
)

// CleanupJob removes tickets left behind by column deletions, along
// with any drafts attached to them
type CleanupJob struct {
	ticketRepo repository.TicketRepository
	draftRepo  repository.DraftRepository
	logger     *zap.Logger
}

// NewCleanupJob creates a new CleanupJob instance
func NewCleanupJob(
	ticketRepo repository.TicketRepository,
	draftRepo repository.DraftRepository,
	logger *zap.Logger,
) *CleanupJob {
	return &CleanupJob{
		ticketRepo: ticketRepo,
		draftRepo:  draftRepo,
		logger:     logger,
	}
}

// Run finds orphaned tickets and deletes them together with their drafts
func (j *CleanupJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	j.logger.Info("Starting cleanup job for orphaned tickets")

	orphaned, err := j.ticketRepo.FindOrphaned(ctx)
	if err != nil {
		j.logger.Error("Failed to find orphaned tickets",
			zap.Error(err),
		)
		return
	}

	if len(orphaned) == 0 {
		j.logger.Info("No orphaned tickets found")
		return
	}

	j.logger.Info("Found orphaned tickets",
		zap.Int("count", len(orphaned)),
	)

	var deletedIDs []uuid.UUID
	successCount := 0
	failCount := 0

	for _, ticket := range orphaned {
		if err := j.ticketRepo.Delete(ctx, ticket.ID); err != nil {
			j.logger.Error("Failed to delete orphaned ticket",
				zap.String("ticket_id", ticket.ID.String()),
				zap.Error(err),
			)
			failCount++
			continue
		}

		deletedIDs = append(deletedIDs, ticket.ID)
		successCount++

		j.logger.Debug("Deleted orphaned ticket",
			zap.String("ticket_id", ticket.ID.String()),
			zap.String("category_id", ticket.CategoryID.String()),
		)
	}

	// Drafts for deleted tickets go in one batch
	if len(deletedIDs) > 0 {
		if err := j.draftRepo.DeleteByTicketIDs(ctx, deletedIDs); err != nil {
			j.logger.Error("Failed to delete drafts of orphaned tickets",
				zap.Int("count", len(deletedIDs)),
				zap.Error(err),
			)
		}
	}

	j.logger.Info("Cleanup job completed",
		zap.Int("total_orphaned", len(orphaned)),
		zap.Int("success", successCount),
		zap.Int("failed", failCount),
	)
}
