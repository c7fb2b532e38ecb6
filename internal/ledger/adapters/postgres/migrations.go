package postgres

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the ledger tables when they do not exist yet. Called
// once at startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS user_durations (
    id             BIGSERIAL PRIMARY KEY,
    name           TEXT NOT NULL UNIQUE,
    notify_name    TEXT,
    total_duration BIGINT NOT NULL DEFAULT 0,
    last_timestamp BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS seen_events (
    message_id TEXT PRIMARY KEY,
    seen_at    TIMESTAMPTZ NOT NULL
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}
