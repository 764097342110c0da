package db

import "database/sql"

const schema = `
CREATE TABLE IF NOT EXISTS stored_tokens (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	profile    JSONB,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS preferences (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS operators (
	id            SERIAL PRIMARY KEY,
	email         TEXT UNIQUE NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS payments (
	id                SERIAL PRIMARY KEY,
	booking_code      TEXT NOT NULL,
	stripe_session_id TEXT UNIQUE NOT NULL,
	amount_cents      BIGINT NOT NULL,
	status            TEXT NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS panel_sessions (
	id         TEXT PRIMARY KEY,
	subject    TEXT NOT NULL,
	expires_at TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the gateway's local tables. The local database only
// holds what the browser held (token, preferences) plus operator and
// payment records; all domain entities live upstream.
func EnsureSchema(database *sql.DB) error {
	_, err := database.Exec(schema)
	return err
}
