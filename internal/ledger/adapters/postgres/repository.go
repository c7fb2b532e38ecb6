package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/NKTechDev/wma-backend/internal/ledger/core/domain"
	"github.com/NKTechDev/wma-backend/internal/ledger/core/ports"
)

type LedgerRepository struct {
	db DB
}

func NewLedgerRepository(db DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

var _ ports.LedgerStorePort = (*LedgerRepository)(nil)

// SQL templates
const upsertAddSQL = `
INSERT INTO user_durations (
    name,
    notify_name,
    total_duration,
    last_timestamp
) VALUES (
    $1, $2, $3, $4
)
ON CONFLICT (name) DO UPDATE SET
    total_duration = user_durations.total_duration + EXCLUDED.total_duration,
    notify_name    = EXCLUDED.notify_name,
    last_timestamp = EXCLUDED.last_timestamp;
`

const getRecordSQL = `
SELECT id, name, notify_name, total_duration, last_timestamp
FROM user_durations
WHERE name = $1;
`

const listRecordsSQL = `
SELECT id, name, notify_name, total_duration, last_timestamp
FROM user_durations
ORDER BY id;
`

// UpsertAdd is a single statement, so the read-add-write is atomic per key
// and concurrent events for one sender cannot lose an update.
func (r *LedgerRepository) UpsertAdd(ctx context.Context, key, displayName string, deltaSeconds, eventTimestamp int64) error {
	_, err := r.db.ExecContext(ctx, upsertAddSQL, key, displayName, deltaSeconds, eventTimestamp)
	if err != nil {
		return fmt.Errorf("upsert ledger row for %s: %w", key, err)
	}
	return nil
}

func (r *LedgerRepository) Get(ctx context.Context, key string) (*domain.LedgerRecord, error) {
	rows, err := r.db.QueryContext(ctx, getRecordSQL, key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var rec domain.LedgerRecord
	var notifyName sql.NullString
	if err := rows.Scan(&rec.ID, &rec.Key, &notifyName, &rec.TotalDurationSeconds, &rec.LastEventTimestamp); err != nil {
		return nil, err
	}
	rec.DisplayName = notifyName.String

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *LedgerRepository) ListAll(ctx context.Context) ([]domain.LedgerRecord, error) {
	rows, err := r.db.QueryContext(ctx, listRecordsSQL)
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

type SeenEventsRepository struct {
	db DB
}

func NewSeenEventsRepository(db DB) *SeenEventsRepository {
	return &SeenEventsRepository{db: db}
}

var _ ports.SeenEventsPort = (*SeenEventsRepository)(nil)

const markSeenSQL = `
INSERT INTO seen_events (message_id, seen_at)
VALUES ($1, $2)
ON CONFLICT (message_id) DO NOTHING;
`

const forgetSeenSQL = `
DELETE FROM seen_events WHERE message_id = $1;
`

func (r *SeenEventsRepository) MarkSeen(ctx context.Context, messageID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, markSeenSQL, messageID, time.Now().UTC())
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 1 -> first sighting
	// rows == 0 -> repeat delivery (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}

func (r *SeenEventsRepository) Forget(ctx context.Context, messageID string) error {
	_, err := r.db.ExecContext(ctx, forgetSeenSQL, messageID)
	return err
}
