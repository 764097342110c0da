package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"barbertime/internal/repository"
)

type JobService struct {
	Repo *repository.JobRepository
}

func NewJobService(repo *repository.JobRepository) *JobService {
	return &JobService{Repo: repo}
}

// ExpirePanelSessions deletes panel sessions past their expiry so revoked
// and stale ids don't accumulate.
func (s *JobService) ExpirePanelSessions(ctx context.Context) error {
	log.Println("Cron Job: Checking for expired panel sessions...")

	ids, err := s.Repo.GetExpiredPanelSessionIDs(ctx)
	if err != nil {
		return fmt.Errorf("cron job: failed to get expired panel sessions: %w", err)
	}
	if len(ids) == 0 {
		log.Println("Cron Job: No expired panel sessions found.")
		return nil
	}

	log.Printf("Cron Job: Found %d expired panel sessions.", len(ids))
	if err := s.Repo.DeletePanelSessions(ctx, ids); err != nil {
		return fmt.Errorf("cron job: failed to delete expired panel sessions: %w", err)
	}
	return nil
}

// PurgeStalePayments deletes deposit checkouts that stayed pending longer
// than the given age (abandoned at the payment page).
func (s *JobService) PurgeStalePayments(ctx context.Context, olderThan time.Duration) (int64, error) {
	return s.Repo.DeletePendingPaymentsOlderThan(ctx, time.Now().UTC().Add(-olderThan))
}
