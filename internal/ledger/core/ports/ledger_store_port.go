package ports

import (
	"context"

	"github.com/NKTechDev/wma-backend/internal/ledger/core/domain"
)

type LedgerStorePort interface {
	// Get returns the record for key, or (nil, nil) when absent.
	Get(ctx context.Context, key string) (*domain.LedgerRecord, error)

	// UpsertAdd inserts a record with total = deltaSeconds when key is
	// absent, otherwise adds deltaSeconds to the existing total. DisplayName
	// and last timestamp are overwritten unconditionally in both branches.
	// Implementations must make the add atomic per key: concurrent calls for
	// the same key may not lose an update.
	UpsertAdd(ctx context.Context, key, displayName string, deltaSeconds, eventTimestamp int64) error

	// ListAll returns every record in insertion order.
	ListAll(ctx context.Context) ([]domain.LedgerRecord, error)
}

type SeenEventsPort interface {
	// MarkSeen:
	//   first = true,  err = nil  -> first sighting of messageID
	//   first = false, err = nil  -> repeat delivery (idempotent)
	//   first = false, err != nil -> DB error
	MarkSeen(ctx context.Context, messageID string) (first bool, err error)

	// Forget removes a previously marked id so a redelivery can retry after
	// a failed ledger write. Best effort.
	Forget(ctx context.Context, messageID string) error
}
