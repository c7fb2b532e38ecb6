package domain

// LedgerRecord is one row of the per-sender voice-duration ledger. A record
// is created on the first voice event for a phone key and mutated in place
// afterwards; TotalDurationSeconds never decreases.
type LedgerRecord struct {
	ID                   int64
	Key                  string // canonical phone key, unique
	DisplayName          string // last-seen display name
	TotalDurationSeconds int64
	LastEventTimestamp   int64 // epoch seconds of the last event, overwritten
}
