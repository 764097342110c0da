package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"barbertime/internal/db"
	"barbertime/internal/repository"
)

// Claims is the panel JWT payload handed to the browser once the upstream
// session is established (or a local operator signs in).
type Claims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Local bool   `json:"local,omitempty"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies panel tokens. Every issued token id is recorded
// so logout can revoke it ahead of its natural expiry.
type Issuer struct {
	secret   []byte
	ttl      time.Duration
	sessions *repository.PanelSessionRepository
}

func NewIssuer(secret string, ttl time.Duration, sessions *repository.PanelSessionRepository) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, sessions: sessions}
}

func (i *Issuer) Issue(ctx context.Context, subject, name, email string, local bool) (string, error) {
	now := time.Now()
	claims := Claims{
		Name:  name,
		Email: email,
		Local: local,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	if err := i.sessions.Create(ctx, db.PanelSession{
		ID:        claims.ID,
		Subject:   subject,
		ExpiresAt: claims.ExpiresAt.Time,
	}); err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

func (i *Issuer) Verify(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid panel token")
	}
	active, err := i.sessions.Active(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, errors.New("panel session revoked")
	}
	return claims, nil
}

// Revoke kills every live panel token for a subject.
func (i *Issuer) Revoke(ctx context.Context, subject string) error {
	return i.sessions.DeleteAllForSubject(ctx, subject)
}
