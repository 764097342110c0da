package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"barbertime/internal/entities"
)

// tokenKey is the canonical storage key for the session token. Earlier
// iterations of the panel used token_sso and acess_token; auth_token is the
// one kept.
const tokenKey = "auth_token"

type TokenRepository struct {
	DB *sql.DB
}

func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

func (r *TokenRepository) GetToken(ctx context.Context) (string, error) {
	var value string
	err := r.DB.QueryRowContext(ctx,
		`SELECT value FROM stored_tokens WHERE key = $1`, tokenKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("reading stored token: %w", err)
	}
	return value, nil
}

func (r *TokenRepository) SaveToken(ctx context.Context, token string, profile entities.Profile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO stored_tokens (key, value, profile, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE SET value = $2, profile = $3, updated_at = $4`,
		tokenKey, token, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	return nil
}

func (r *TokenRepository) DeleteToken(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM stored_tokens WHERE key = $1`, tokenKey)
	if err != nil {
		return fmt.Errorf("deleting token: %w", err)
	}
	return nil
}

// Theme preference, light or dark.

func (r *TokenRepository) GetPreference(ctx context.Context, key string) (string, error) {
	var value string
	err := r.DB.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("reading preference %s: %w", key, err)
	}
	return value, nil
}

func (r *TokenRepository) SavePreference(ctx context.Context, key, value string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO preferences (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2`, key, value)
	if err != nil {
		return fmt.Errorf("saving preference %s: %w", key, err)
	}
	return nil
}
