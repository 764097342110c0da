package db

import "time"

// Operator is a local break-glass panel account, usable when the SSO
// surface is unreachable.
type Operator struct {
	ID           int
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Payment tracks a Stripe checkout opened for a booking deposit.
type Payment struct {
	ID              int
	BookingCode     string
	StripeSessionID string
	AmountCents     int64
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PanelSession is an issued panel JWT id with its expiry, so logout and the
// sweeper can revoke tokens before their natural expiry.
type PanelSession struct {
	ID        string
	Subject   string
	ExpiresAt time.Time
	CreatedAt time.Time
}
