package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"barbertime/internal/db"
)

// PanelSessionRepository records issued panel JWT ids so tokens can be
// revoked (logout) ahead of their natural expiry.
type PanelSessionRepository struct {
	DB *sql.DB
}

func NewPanelSessionRepository(database *sql.DB) *PanelSessionRepository {
	return &PanelSessionRepository{DB: database}
}

func (r *PanelSessionRepository) Create(ctx context.Context, s db.PanelSession) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO panel_sessions (id, subject, expires_at) VALUES ($1, $2, $3)`,
		s.ID, s.Subject, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("creating panel session: %w", err)
	}
	return nil
}

// Active reports whether the session id exists and has not expired.
func (r *PanelSessionRepository) Active(ctx context.Context, id string) (bool, error) {
	var expiresAt time.Time
	err := r.DB.QueryRowContext(ctx,
		`SELECT expires_at FROM panel_sessions WHERE id = $1`, id).Scan(&expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("reading panel session: %w", err)
	}
	return time.Now().Before(expiresAt), nil
}

// DeleteAllForSubject revokes every session of a subject (used on logout so
// a stolen panel token dies with the upstream session).
func (r *PanelSessionRepository) DeleteAllForSubject(ctx context.Context, subject string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM panel_sessions WHERE subject = $1`, subject)
	if err != nil {
		return fmt.Errorf("deleting panel sessions for %s: %w", subject, err)
	}
	return nil
}
