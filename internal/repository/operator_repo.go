package repository

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"barbertime/internal/db"
)

// OperatorRepository stores local break-glass panel accounts. These exist
// so the panel stays reachable when the SSO surface is down.
type OperatorRepository interface {
	GetByEmail(ctx context.Context, email string) (*db.Operator, error)
	Create(ctx context.Context, email, password string) error
}

type operatorRepository struct {
	db *sql.DB
}

func NewOperatorRepository(database *sql.DB) OperatorRepository {
	return &operatorRepository{db: database}
}

func (r *operatorRepository) GetByEmail(ctx context.Context, email string) (*db.Operator, error) {
	var op db.Operator
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash FROM operators WHERE email = $1`, email).
		Scan(&op.ID, &op.Email, &op.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &op, nil
}

func (r *operatorRepository) Create(ctx context.Context, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO operators (email, password_hash) VALUES ($1, $2)`, email, hashed)
	return err
}
