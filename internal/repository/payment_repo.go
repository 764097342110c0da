package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"barbertime/internal/db"
)

type PaymentRepository struct {
	DB *sql.DB
}

func NewPaymentRepository(database *sql.DB) *PaymentRepository {
	return &PaymentRepository{DB: database}
}

func (r *PaymentRepository) Create(ctx context.Context, p *db.Payment) error {
	now := time.Now().UTC()
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO payments (booking_code, stripe_session_id, amount_cents, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING id`,
		p.BookingCode, p.StripeSessionID, p.AmountCents, p.Status, now).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("creating payment for booking %s: %w", p.BookingCode, err)
	}
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (r *PaymentRepository) GetByStripeSessionID(ctx context.Context, sessionID string) (*db.Payment, error) {
	var p db.Payment
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, booking_code, stripe_session_id, amount_cents, status, created_at, updated_at
		FROM payments WHERE stripe_session_id = $1`, sessionID).
		Scan(&p.ID, &p.BookingCode, &p.StripeSessionID, &p.AmountCents, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading payment for session %s: %w", sessionID, err)
	}
	return &p, nil
}

func (r *PaymentRepository) UpdateStatusBySessionID(ctx context.Context, sessionID, status string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE payments SET status = $1, updated_at = NOW() WHERE stripe_session_id = $2`,
		status, sessionID)
	if err != nil {
		return fmt.Errorf("updating payment status for session %s: %w", sessionID, err)
	}
	affected, err := res.RowsAffected()
	if err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
