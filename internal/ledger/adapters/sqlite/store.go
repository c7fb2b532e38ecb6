package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/NKTechDev/wma-backend/internal/ledger/core/domain"
	"github.com/NKTechDev/wma-backend/internal/ledger/core/ports"

	_ "modernc.org/sqlite"
)

// Store backs the duration ledger with a single local SQLite file, for
// deployments without a Postgres server. The driver reports SQLITE_BUSY to
// concurrent writers instead of queueing them, so the pool is pinned to one
// connection: all statements flow through a single writer in submission
// order, which together with the one-statement upsert gives the per-key
// ordering the aggregator relies on.
type Store struct {
	db *sql.DB
}

var (
	_ ports.LedgerStorePort = (*Store)(nil)
	_ ports.SeenEventsPort  = (*Store)(nil)
)

func NewStore(db *sql.DB) (*Store, error) {
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate sqlite ledger: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	const schema = `
CREATE TABLE IF NOT EXISTS user_durations (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    name           TEXT NOT NULL UNIQUE,
    notify_name    TEXT,
    total_duration INTEGER NOT NULL DEFAULT 0,
    last_timestamp INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS seen_events (
    message_id TEXT PRIMARY KEY,
    seen_at    INTEGER NOT NULL
);
`
	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

func (s *Store) UpsertAdd(ctx context.Context, key, displayName string, deltaSeconds, eventTimestamp int64) error {
	const query = `
INSERT INTO user_durations (name, notify_name, total_duration, last_timestamp)
VALUES (?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
    total_duration = total_duration + excluded.total_duration,
    notify_name    = excluded.notify_name,
    last_timestamp = excluded.last_timestamp;
`
	_, err := s.db.ExecContext(ctx, query, key, displayName, deltaSeconds, eventTimestamp)
	if err != nil {
		return fmt.Errorf("upsert ledger row for %s: %w", key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (*domain.LedgerRecord, error) {
	const query = `
SELECT id, name, notify_name, total_duration, last_timestamp
FROM user_durations
WHERE name = ?;
`
	var rec domain.LedgerRecord
	var notifyName sql.NullString
	err := s.db.QueryRowContext(ctx, query, key).Scan(
		&rec.ID, &rec.Key, &notifyName, &rec.TotalDurationSeconds, &rec.LastEventTimestamp,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.DisplayName = notifyName.String
	return &rec, nil
}

func (s *Store) ListAll(ctx context.Context) ([]domain.LedgerRecord, error) {
	const query = `
SELECT id, name, notify_name, total_duration, last_timestamp
FROM user_durations
ORDER BY id;
`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LedgerRecord
	for rows.Next() {
		var rec domain.LedgerRecord
		var notifyName sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Key, &notifyName, &rec.TotalDurationSeconds, &rec.LastEventTimestamp); err != nil {
			return nil, err
		}
		rec.DisplayName = notifyName.String
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Store) MarkSeen(ctx context.Context, messageID string) (bool, error) {
	const query = `
INSERT INTO seen_events (message_id, seen_at)
VALUES (?, ?)
ON CONFLICT(message_id) DO NOTHING;
`
	res, err := s.db.ExecContext(ctx, query, messageID, time.Now().Unix())
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (s *Store) Forget(ctx context.Context, messageID string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM seen_events WHERE message_id = ?;`, messageID)
	return err
}
