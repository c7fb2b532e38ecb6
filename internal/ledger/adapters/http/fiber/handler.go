package fiber

import (
	"context"
	"errors"
	"net/http"

	"github.com/NKTechDev/wma-backend/internal/ledger/core/domain"
	"github.com/NKTechDev/wma-backend/internal/ledger/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type RecordVoiceEventUseCase interface {
	Execute(ctx context.Context, in usecase.RecordVoiceEventInput) (usecase.Outcome, error)
	BulkRecordEvents(ctx context.Context, in usecase.BulkRecordEventsInput) (usecase.BulkRecordEventsResult, error)
}

type ListLedgerUseCase interface {
	Execute(ctx context.Context) ([]domain.LedgerRecord, error)
}

type LedgerHandler struct {
	recordUC RecordVoiceEventUseCase
	listUC   ListLedgerUseCase
}

func NewLedgerHandler(recordUC RecordVoiceEventUseCase, listUC ListLedgerUseCase) *LedgerHandler {
	return &LedgerHandler{recordUC: recordUC, listUC: listUC}
}

// RecordEvent godoc
// @Summary Ingest a voice-message event
// @Description Adds the event's duration to the sender's ledger total, deduplicating by message id
// @Tags Ledger
// @Accept json
// @Produce json
// @Param request body VoiceEventRequest true "Voice event payload"
// @Success 201 {object} VoiceEventResponse
// @Success 200 {object} VoiceEventResponse "Duplicate or ignored event"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /gateway/events [post]
func (h *LedgerHandler) RecordEvent(c *fiber.Ctx) error {
	var req VoiceEventRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	outcome, err := h.recordUC.Execute(c.UserContext(), toInput(req))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidEvent):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_event",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	switch outcome {
	case usecase.OutcomeRecorded:
		return c.Status(http.StatusCreated).JSON(VoiceEventResponse{Status: "recorded"})
	case usecase.OutcomeDuplicate:
		return c.Status(http.StatusOK).JSON(VoiceEventResponse{Status: "duplicate"})
	default:
		return c.Status(http.StatusOK).JSON(VoiceEventResponse{Status: "ignored"})
	}
}

// BulkRecordEvents godoc
// @Summary Bulk ingest voice-message events
// @Description Accepts a backlog of events from a reconnecting gateway and applies them in order
// @Tags Ledger
// @Accept json
// @Produce json
// @Param request body BulkVoiceEventsRequest true "Bulk event payload"
// @Success 201 {object} BulkVoiceEventsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /gateway/events/bulk [post]
func (h *LedgerHandler) BulkRecordEvents(c *fiber.Ctx) error {
	var req BulkVoiceEventsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	if len(req.Events) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "events_list_required",
		})
	}

	inputs := make([]usecase.RecordVoiceEventInput, len(req.Events))
	for i, e := range req.Events {
		inputs[i] = toInput(e)
	}

	result, err := h.recordUC.BulkRecordEvents(
		c.UserContext(),
		usecase.BulkRecordEventsInput{Events: inputs},
	)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidEvent):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_event",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(BulkVoiceEventsResponse{
		Recorded:   result.Recorded,
		Duplicates: result.Duplicates,
		Ignored:    result.Ignored,
	})
}

// ListDurations godoc
// @Summary List the per-sender duration ledger
// @Description Returns every ledger row in insertion order
// @Tags Ledger
// @Produce json
// @Success 200 {array} LedgerRowResponse
// @Failure 500 {object} ErrorResponse
// @Router /user_durations [get]
func (h *LedgerHandler) ListDurations(c *fiber.Ctx) error {
	rows, err := h.listUC.Execute(c.UserContext())
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	resp := make([]LedgerRowResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, LedgerRowResponse{
			ID:            r.ID,
			Name:          r.Key,
			NotifyName:    r.DisplayName,
			TotalDuration: r.TotalDurationSeconds,
			LastTimestamp: r.LastEventTimestamp,
		})
	}

	return c.Status(http.StatusOK).JSON(resp)
}

func toInput(req VoiceEventRequest) usecase.RecordVoiceEventInput {
	return usecase.RecordVoiceEventInput{
		MessageID:       req.MessageID,
		SenderRawID:     req.SenderID,
		DisplayNameHint: req.DisplayName,
		DurationSeconds: req.Duration,
		Timestamp:       req.Timestamp,
		FromMe:          req.FromMe,
		Type:            req.Type,
	}
}
