package usecase

import (
	"context"
	"errors"

	"github.com/NKTechDev/wma-backend/internal/ledger/core/ports"
	"github.com/NKTechDev/wma-backend/internal/phone"

	"github.com/google/uuid"
)

var ErrInvalidEvent = errors.New("invalid voice event")

// Outcome reports what happened to a single delivery.
type Outcome int

const (
	// OutcomeRecorded means the ledger total was increased.
	OutcomeRecorded Outcome = iota
	// OutcomeDuplicate means the message id was already accounted.
	OutcomeDuplicate
	// OutcomeIgnored means the event failed the eligibility filter.
	OutcomeIgnored
)

type RecordVoiceEventInput struct {
	MessageID       string
	SenderRawID     string
	DisplayNameHint string
	DurationSeconds int64
	Timestamp       int64
	FromMe          bool
	Type            string
}

// ContactNameResolver looks up a sender's display name at the messaging
// account. Satisfied by the gateway client; nil disables lookups.
type ContactNameResolver interface {
	GetContactDisplayName(ctx context.Context, senderID string) (string, error)
}

type RecordVoiceEventUseCase struct {
	store ports.LedgerStorePort
	seen  ports.SeenEventsPort
	names ContactNameResolver
	norm  *phone.Normalizer
}

func NewRecordVoiceEventUseCase(store ports.LedgerStorePort, seen ports.SeenEventsPort, names ContactNameResolver, norm *phone.Normalizer) *RecordVoiceEventUseCase {
	return &RecordVoiceEventUseCase{store: store, seen: seen, names: names, norm: norm}
}

func (uc *RecordVoiceEventUseCase) Execute(ctx context.Context, in RecordVoiceEventInput) (Outcome, error) {
	// Upstream already filters to received voice messages; re-check here so
	// a misbehaving source cannot inflate anyone's total.
	if !eligible(in) {
		return OutcomeIgnored, nil
	}

	if err := uc.validateInput(in); err != nil {
		return OutcomeIgnored, err
	}

	n := uc.norm.Normalize(in.SenderRawID)
	name := uc.resolveDisplayName(ctx, in, n)

	messageID := in.MessageID
	if messageID == "" {
		// Source could not supply a platform id. A fresh id means every
		// delivery counts, which matches sources without redelivery
		// detection.
		messageID = uuid.NewString()
	}

	first, err := uc.seen.MarkSeen(ctx, messageID)
	if err != nil {
		return OutcomeIgnored, err
	}
	if !first {
		return OutcomeDuplicate, nil
	}

	if err := uc.store.UpsertAdd(ctx, n.Key, name, in.DurationSeconds, in.Timestamp); err != nil {
		// Unmark so a redelivery of this id is not silently dropped.
		_ = uc.seen.Forget(ctx, messageID)
		return OutcomeIgnored, err
	}

	return OutcomeRecorded, nil
}

// resolveDisplayName prefers the upstream hint, then a gateway contact
// lookup, then the normalized national format, then the raw id. A failed
// lookup degrades to the next fallback instead of aborting the event.
func (uc *RecordVoiceEventUseCase) resolveDisplayName(ctx context.Context, in RecordVoiceEventInput, n phone.Normalized) string {
	if in.DisplayNameHint != "" {
		return in.DisplayNameHint
	}

	if uc.names != nil {
		if name, err := uc.names.GetContactDisplayName(ctx, in.SenderRawID); err == nil && name != "" {
			return name
		}
	}

	if n.Display != "" {
		return n.Display
	}
	return in.SenderRawID
}

func eligible(in RecordVoiceEventInput) bool {
	if in.FromMe {
		return false
	}
	return in.Type == "voice" || in.Type == "ptt"
}

func (uc *RecordVoiceEventUseCase) validateInput(in RecordVoiceEventInput) error {
	if in.SenderRawID == "" {
		return ErrInvalidEvent
	}
	if in.DurationSeconds < 0 {
		return ErrInvalidEvent
	}
	return nil
}

type BulkRecordEventsInput struct {
	Events []RecordVoiceEventInput
}

type BulkRecordEventsResult struct {
	Recorded   int
	Duplicates int
	Ignored    int
}

// BulkRecordEvents processes a backlog flush from a reconnecting source.
// Everything is validated up front; events are then applied sequentially so
// per-sender ordering within the batch is preserved.
func (uc *RecordVoiceEventUseCase) BulkRecordEvents(ctx context.Context, in BulkRecordEventsInput) (BulkRecordEventsResult, error) {
	var res BulkRecordEventsResult

	for _, ev := range in.Events {
		if eligible(ev) {
			if err := uc.validateInput(ev); err != nil {
				return res, err
			}
		}
	}

	for _, ev := range in.Events {
		outcome, err := uc.Execute(ctx, ev)
		if err != nil {
			return res, err
		}

		switch outcome {
		case OutcomeRecorded:
			res.Recorded++
		case OutcomeDuplicate:
			res.Duplicates++
		default:
			res.Ignored++
		}
	}

	return res, nil
}
