package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Registered Telegram users. One row per telegram_id, created on first
-- interaction. Display fields are whatever the platform supplied at that
-- moment and are not refreshed afterwards.
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    telegram_id BIGINT UNIQUE NOT NULL,
    username VARCHAR(255),
    first_name VARCHAR(255),
    last_name VARCHAR(255),
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Append-only decision log. Rows are never updated or deleted, and
-- redelivered updates may legitimately produce duplicates.
CREATE TABLE IF NOT EXISTS choice_events (
    id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id),
    value INTEGER NOT NULL CHECK (value >= 0 AND value < 37),
    status VARCHAR(50) NOT NULL CHECK (status IN ('affirmed', 'declined')),
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_choice_events_user_id ON choice_events(user_id);
CREATE INDEX IF NOT EXISTS idx_choice_events_status ON choice_events(status);
CREATE INDEX IF NOT EXISTS idx_choice_events_created_at ON choice_events(created_at DESC);
`
