package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetExpiredPanelSessionIDs lists panel sessions past their expiry.
func (r *JobRepository) GetExpiredPanelSessionIDs(ctx context.Context) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id FROM panel_sessions WHERE expires_at < NOW()`)
	if err != nil {
		return nil, fmt.Errorf("error querying expired panel sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning panel session ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

func (r *JobRepository) DeletePanelSessions(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM panel_sessions WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error deleting panel sessions: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Deleted %d expired panel sessions", affected)
	}
	return nil
}

// DeletePendingPaymentsOlderThan purges checkouts that were opened but never
// completed; Stripe sessions abandoned at the payment page.
func (r *JobRepository) DeletePendingPaymentsOlderThan(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.DB.ExecContext(ctx,
		`DELETE FROM payments WHERE status = 'pending' AND created_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("error deleting stale pending payments: %w", err)
	}
	return result.RowsAffected()
}
