package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/NKTechDev/wma-backend/internal/ledger/core/domain"
	"github.com/NKTechDev/wma-backend/internal/ledger/core/usecase"
	"github.com/NKTechDev/wma-backend/internal/phone"
)

// fakeLedgerStore implements LedgerStorePort with an in-memory map so
// accumulation behavior can be checked end to end.
type fakeLedgerStore struct {
	records   map[string]*domain.LedgerRecord
	order     []string
	UpsertErr error
	upserts   int
}

func newFakeLedgerStore() *fakeLedgerStore {
	return &fakeLedgerStore{records: map[string]*domain.LedgerRecord{}}
}

func (f *fakeLedgerStore) Get(ctx context.Context, key string) (*domain.LedgerRecord, error) {
	r, ok := f.records[key]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeLedgerStore) UpsertAdd(ctx context.Context, key, displayName string, deltaSeconds, eventTimestamp int64) error {
	if f.UpsertErr != nil {
		return f.UpsertErr
	}
	f.upserts++
	r, ok := f.records[key]
	if !ok {
		f.records[key] = &domain.LedgerRecord{
			ID:                   int64(len(f.order) + 1),
			Key:                  key,
			DisplayName:          displayName,
			TotalDurationSeconds: deltaSeconds,
			LastEventTimestamp:   eventTimestamp,
		}
		f.order = append(f.order, key)
		return nil
	}
	r.TotalDurationSeconds += deltaSeconds
	r.DisplayName = displayName
	r.LastEventTimestamp = eventTimestamp
	return nil
}

func (f *fakeLedgerStore) ListAll(ctx context.Context) ([]domain.LedgerRecord, error) {
	out := make([]domain.LedgerRecord, 0, len(f.order))
	for _, k := range f.order {
		out = append(out, *f.records[k])
	}
	return out, nil
}

// fakeSeenEvents implements SeenEventsPort.
type fakeSeenEvents struct {
	seen      map[string]bool
	MarkErr   error
	forgotten []string
	lastID    string
}

func newFakeSeenEvents() *fakeSeenEvents {
	return &fakeSeenEvents{seen: map[string]bool{}}
}

func (f *fakeSeenEvents) MarkSeen(ctx context.Context, messageID string) (bool, error) {
	if f.MarkErr != nil {
		return false, f.MarkErr
	}
	f.lastID = messageID
	if f.seen[messageID] {
		return false, nil
	}
	f.seen[messageID] = true
	return true, nil
}

func (f *fakeSeenEvents) Forget(ctx context.Context, messageID string) error {
	delete(f.seen, messageID)
	f.forgotten = append(f.forgotten, messageID)
	return nil
}

// fakeNameResolver implements ContactNameResolver.
type fakeNameResolver struct {
	Names map[string]string
	Err   error
}

func (f *fakeNameResolver) GetContactDisplayName(ctx context.Context, senderID string) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	return f.Names[senderID], nil
}

func newUC(store *fakeLedgerStore, seen *fakeSeenEvents) *usecase.RecordVoiceEventUseCase {
	return usecase.NewRecordVoiceEventUseCase(store, seen, nil, phone.NewNormalizer("PK"))
}

func voiceEvent(id, sender, hint string, dur, ts int64) usecase.RecordVoiceEventInput {
	return usecase.RecordVoiceEventInput{
		MessageID:       id,
		SenderRawID:     sender,
		DisplayNameHint: hint,
		DurationSeconds: dur,
		Timestamp:       ts,
		Type:            "voice",
	}
}

// ------------------------------------------------------------
// ACCUMULATION
// ------------------------------------------------------------

func TestRecordVoiceEvent_AccumulatesPerSender(t *testing.T) {
	store := newFakeLedgerStore()
	uc := newUC(store, newFakeSeenEvents())

	out1, err := uc.Execute(context.Background(), voiceEvent("m1", "923001234567@c.us", "Ali", 12, 1000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out1 != usecase.OutcomeRecorded {
		t.Fatalf("expected OutcomeRecorded, got %v", out1)
	}

	out2, err := uc.Execute(context.Background(), voiceEvent("m2", "923001234567@c.us", "Ali K.", 8, 2000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out2 != usecase.OutcomeRecorded {
		t.Fatalf("expected OutcomeRecorded, got %v", out2)
	}

	rows, _ := store.ListAll(context.Background())
	if len(rows) != 1 {
		t.Fatalf("expected one ledger row, got %d", len(rows))
	}

	r := rows[0]
	if r.Key != "923001234567" {
		t.Errorf("expected key 923001234567, got %q", r.Key)
	}
	if r.TotalDurationSeconds != 20 {
		t.Errorf("expected total 20, got %d", r.TotalDurationSeconds)
	}
	if r.DisplayName != "Ali K." {
		t.Errorf("expected display name 'Ali K.', got %q", r.DisplayName)
	}
	if r.LastEventTimestamp != 2000 {
		t.Errorf("expected last timestamp 2000, got %d", r.LastEventTimestamp)
	}
}

func TestRecordVoiceEvent_KeysAreIsolated(t *testing.T) {
	store := newFakeLedgerStore()
	uc := newUC(store, newFakeSeenEvents())

	if _, err := uc.Execute(context.Background(), voiceEvent("m1", "923001234567@c.us", "A", 10, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Execute(context.Background(), voiceEvent("m2", "923009999999@c.us", "B", 5, 2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a, _ := store.Get(context.Background(), "923001234567")
	b, _ := store.Get(context.Background(), "923009999999")
	if a == nil || b == nil {
		t.Fatalf("expected two records")
	}
	if a.TotalDurationSeconds != 10 || b.TotalDurationSeconds != 5 {
		t.Fatalf("cross-key mutation: a=%d b=%d", a.TotalDurationSeconds, b.TotalDurationSeconds)
	}
}

func TestRecordVoiceEvent_MalformedSenderStillRecorded(t *testing.T) {
	store := newFakeLedgerStore()
	uc := newUC(store, newFakeSeenEvents())

	out, err := uc.Execute(context.Background(), voiceEvent("m1", "abc", "", 7, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != usecase.OutcomeRecorded {
		t.Fatalf("expected OutcomeRecorded, got %v", out)
	}

	r, _ := store.Get(context.Background(), "abc")
	if r == nil {
		t.Fatalf("expected fallback row for key 'abc'")
	}
	if r.DisplayName != "abc" {
		t.Errorf("expected display fallback to raw id, got %q", r.DisplayName)
	}
}

// ------------------------------------------------------------
// ELIGIBILITY FILTER
// ------------------------------------------------------------

func TestRecordVoiceEvent_IgnoresOwnMessages(t *testing.T) {
	store := newFakeLedgerStore()
	uc := newUC(store, newFakeSeenEvents())

	in := voiceEvent("m1", "923001234567@c.us", "Ali", 12, 1000)
	in.FromMe = true

	out, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != usecase.OutcomeIgnored {
		t.Fatalf("expected OutcomeIgnored, got %v", out)
	}
	if store.upserts != 0 {
		t.Fatalf("expected no ledger write, got %d", store.upserts)
	}
}

func TestRecordVoiceEvent_IgnoresNonVoiceTypes(t *testing.T) {
	store := newFakeLedgerStore()
	uc := newUC(store, newFakeSeenEvents())

	in := voiceEvent("m1", "923001234567@c.us", "Ali", 12, 1000)
	in.Type = "chat"

	out, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != usecase.OutcomeIgnored {
		t.Fatalf("expected OutcomeIgnored, got %v", out)
	}
}

func TestRecordVoiceEvent_AcceptsPttAlias(t *testing.T) {
	store := newFakeLedgerStore()
	uc := newUC(store, newFakeSeenEvents())

	in := voiceEvent("m1", "923001234567@c.us", "Ali", 12, 1000)
	in.Type = "ptt"

	out, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != usecase.OutcomeRecorded {
		t.Fatalf("expected OutcomeRecorded, got %v", out)
	}
}

func TestRecordVoiceEvent_RejectsInvalidInput(t *testing.T) {
	uc := newUC(newFakeLedgerStore(), newFakeSeenEvents())

	cases := []usecase.RecordVoiceEventInput{
		{MessageID: "m1", SenderRawID: "", DurationSeconds: 5, Type: "voice"},
		{MessageID: "m2", SenderRawID: "923001234567@c.us", DurationSeconds: -1, Type: "voice"},
	}

	for _, in := range cases {
		_, err := uc.Execute(context.Background(), in)
		if !errors.Is(err, usecase.ErrInvalidEvent) {
			t.Fatalf("expected ErrInvalidEvent for %+v, got %v", in, err)
		}
	}
}

// ------------------------------------------------------------
// IDEMPOTENCY
// ------------------------------------------------------------

func TestRecordVoiceEvent_RedeliveryCountedOnce(t *testing.T) {
	store := newFakeLedgerStore()
	uc := newUC(store, newFakeSeenEvents())

	in := voiceEvent("m1", "923001234567@c.us", "Ali", 12, 1000)

	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != usecase.OutcomeDuplicate {
		t.Fatalf("expected OutcomeDuplicate, got %v", out)
	}

	r, _ := store.Get(context.Background(), "923001234567")
	if r.TotalDurationSeconds != 12 {
		t.Fatalf("duplicate double-counted: total %d", r.TotalDurationSeconds)
	}
}

func TestRecordVoiceEvent_MissingMessageIDAlwaysCounts(t *testing.T) {
	store := newFakeLedgerStore()
	seen := newFakeSeenEvents()
	uc := newUC(store, seen)

	in := voiceEvent("", "923001234567@c.us", "Ali", 10, 1000)

	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen.lastID == "" {
		t.Fatalf("expected a synthesized message id")
	}
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, _ := store.Get(context.Background(), "923001234567")
	if r.TotalDurationSeconds != 20 {
		t.Fatalf("expected both deliveries counted, total %d", r.TotalDurationSeconds)
	}
}

// ------------------------------------------------------------
// STORE FAILURE
// ------------------------------------------------------------

func TestRecordVoiceEvent_StoreErrorPropagates(t *testing.T) {
	store := newFakeLedgerStore()
	store.UpsertErr = errors.New("disk full")
	seen := newFakeSeenEvents()
	uc := newUC(store, seen)

	_, err := uc.Execute(context.Background(), voiceEvent("m1", "923001234567@c.us", "Ali", 12, 1000))
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if len(seen.forgotten) != 1 || seen.forgotten[0] != "m1" {
		t.Fatalf("expected m1 to be forgotten after failed write, got %v", seen.forgotten)
	}
}

func TestRecordVoiceEvent_SeenErrorPropagates(t *testing.T) {
	store := newFakeLedgerStore()
	seen := newFakeSeenEvents()
	seen.MarkErr = errors.New("db down")
	uc := newUC(store, seen)

	_, err := uc.Execute(context.Background(), voiceEvent("m1", "923001234567@c.us", "Ali", 12, 1000))
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if store.upserts != 0 {
		t.Fatalf("expected no ledger write")
	}
}

// ------------------------------------------------------------
// DISPLAY NAME RESOLUTION
// ------------------------------------------------------------

func TestRecordVoiceEvent_ContactLookupFillsMissingHint(t *testing.T) {
	store := newFakeLedgerStore()
	resolver := &fakeNameResolver{Names: map[string]string{"923001234567@c.us": "Ali (saved)"}}
	uc := usecase.NewRecordVoiceEventUseCase(store, newFakeSeenEvents(), resolver, phone.NewNormalizer("PK"))

	if _, err := uc.Execute(context.Background(), voiceEvent("m1", "923001234567@c.us", "", 5, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, _ := store.Get(context.Background(), "923001234567")
	if r.DisplayName != "Ali (saved)" {
		t.Fatalf("expected contact lookup name, got %q", r.DisplayName)
	}
}

func TestRecordVoiceEvent_HintBeatsContactLookup(t *testing.T) {
	store := newFakeLedgerStore()
	resolver := &fakeNameResolver{Names: map[string]string{"923001234567@c.us": "Ali (saved)"}}
	uc := usecase.NewRecordVoiceEventUseCase(store, newFakeSeenEvents(), resolver, phone.NewNormalizer("PK"))

	if _, err := uc.Execute(context.Background(), voiceEvent("m1", "923001234567@c.us", "Ali", 5, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, _ := store.Get(context.Background(), "923001234567")
	if r.DisplayName != "Ali" {
		t.Fatalf("expected hint to win, got %q", r.DisplayName)
	}
}

func TestRecordVoiceEvent_ContactLookupFailureDegrades(t *testing.T) {
	store := newFakeLedgerStore()
	resolver := &fakeNameResolver{Err: errors.New("session not ready")}
	uc := usecase.NewRecordVoiceEventUseCase(store, newFakeSeenEvents(), resolver, phone.NewNormalizer("PK"))

	out, err := uc.Execute(context.Background(), voiceEvent("m1", "923001234567@c.us", "", 5, 1))
	if err != nil {
		t.Fatalf("lookup failure must not abort the event: %v", err)
	}
	if out != usecase.OutcomeRecorded {
		t.Fatalf("expected OutcomeRecorded, got %v", out)
	}

	r, _ := store.Get(context.Background(), "923001234567")
	if r == nil || r.DisplayName == "" {
		t.Fatalf("expected fallback display name, got %+v", r)
	}
}

func TestRecordVoiceEvent_DisplayNameFallsBackToFormat(t *testing.T) {
	store := newFakeLedgerStore()
	uc := newUC(store, newFakeSeenEvents())

	if _, err := uc.Execute(context.Background(), voiceEvent("m1", "923001234567@c.us", "", 5, 1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r, _ := store.Get(context.Background(), "923001234567")
	if r.DisplayName == "" {
		t.Fatalf("expected a resolved display name")
	}
	if r.DisplayName == "923001234567@c.us" {
		t.Fatalf("raw id used despite formattable number")
	}
}
