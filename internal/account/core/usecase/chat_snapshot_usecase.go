package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/NKTechDev/wma-backend/internal/account/core/domain"
	"github.com/NKTechDev/wma-backend/internal/account/core/ports"
	ledgerUsecase "github.com/NKTechDev/wma-backend/internal/ledger/core/usecase"
)

var ErrGatewayUnavailable = errors.New("gateway unavailable")

const snapshotTimeLayout = "Mon, 02 Jan 2006, 03:04:05 PM"

// VoiceRecorder is the primary accounting path; the snapshot only feeds it
// when catch-up accounting is enabled.
type VoiceRecorder interface {
	Execute(ctx context.Context, in ledgerUsecase.RecordVoiceEventInput) (ledgerUsecase.Outcome, error)
}

// ChatSnapshotUseCase folds the gateway's live chat listing with each chat's
// last message. The query is read-only unless a recorder is attached, in
// which case observed voice messages are routed through the same
// deduplicated path as stream deliveries, so catch-up cannot double-count.
type ChatSnapshotUseCase struct {
	gateway  ports.GatewayPort
	recorder VoiceRecorder // nil disables catch-up accounting
	loc      *time.Location
	log      *zap.SugaredLogger
}

func NewChatSnapshotUseCase(gateway ports.GatewayPort, recorder VoiceRecorder, loc *time.Location, log *zap.SugaredLogger) *ChatSnapshotUseCase {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ChatSnapshotUseCase{gateway: gateway, recorder: recorder, loc: loc, log: log}
}

func (uc *ChatSnapshotUseCase) Execute(ctx context.Context) ([]domain.ChatSnapshotEntry, error) {
	chats, err := uc.gateway.ListChatsWithLastMessage(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	out := make([]domain.ChatSnapshotEntry, 0, len(chats))
	for _, chat := range chats {
		entry := domain.ChatSnapshotEntry{Name: chat.Name}

		lm := chat.LastMessage
		if lm != nil && isReceivedVoice(lm) {
			entry.TotalDuration = lm.DurationSeconds
			entry.Timestamp = time.Unix(lm.Timestamp, 0).In(uc.loc).Format(snapshotTimeLayout)

			if uc.recorder != nil {
				uc.catchUp(ctx, lm)
			}
		}

		out = append(out, entry)
	}

	return out, nil
}

func isReceivedVoice(lm *domain.LastMessage) bool {
	if lm.FromMe {
		return false
	}
	return lm.Type == "voice" || lm.Type == "ptt"
}

// catchUp feeds a snapshot-observed voice message into the ledger. Failures
// degrade the accounting, not the read, so they are logged and swallowed
// here; the event remains unmarked and a later delivery can still count it.
func (uc *ChatSnapshotUseCase) catchUp(ctx context.Context, lm *domain.LastMessage) {
	in := ledgerUsecase.RecordVoiceEventInput{
		MessageID:       lm.MessageID,
		SenderRawID:     lm.SenderID,
		DisplayNameHint: lm.DisplayName,
		DurationSeconds: lm.DurationSeconds,
		Timestamp:       lm.Timestamp,
		FromMe:          lm.FromMe,
		Type:            lm.Type,
	}

	if _, err := uc.recorder.Execute(ctx, in); err != nil {
		uc.log.Warnw("catch-up accounting failed",
			"sender", lm.SenderID,
			"message_id", lm.MessageID,
			"error", err,
		)
	}
}
