package fiber

import (
	"context"
	"errors"
	"net/http"

	"github.com/NKTechDev/wma-backend/internal/account/core/domain"
	"github.com/NKTechDev/wma-backend/internal/account/core/state"
	"github.com/NKTechDev/wma-backend/internal/account/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type ChatSnapshotUseCase interface {
	Execute(ctx context.Context) ([]domain.ChatSnapshotEntry, error)
}

type AccountHandler struct {
	snapshotUC ChatSnapshotUseCase
	session    *state.SessionState
}

func NewAccountHandler(snapshotUC ChatSnapshotUseCase, session *state.SessionState) *AccountHandler {
	return &AccountHandler{snapshotUC: snapshotUC, session: session}
}

// GetMessages godoc
// @Summary Live chat snapshot
// @Description Folds the gateway's chat listing with each chat's last voice message
// @Tags Account
// @Produce json
// @Success 200 {array} ChatSnapshotResponse
// @Failure 502 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /messages [get]
func (h *AccountHandler) GetMessages(c *fiber.Ctx) error {
	entries, err := h.snapshotUC.Execute(c.UserContext())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrGatewayUnavailable):
			return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
				Error: "gateway_unavailable",
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	resp := make([]ChatSnapshotResponse, 0, len(entries))
	for _, e := range entries {
		item := ChatSnapshotResponse{
			Name:          e.Name,
			TotalDuration: e.TotalDuration,
		}
		if e.Timestamp != "" {
			ts := e.Timestamp
			item.Timestamp = &ts
		}
		resp = append(resp, item)
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// WhatsappStatus godoc
// @Summary Account session readiness
// @Tags Account
// @Produce json
// @Success 200 {object} StatusResponse
// @Router /whatsapp-status [get]
func (h *AccountHandler) WhatsappStatus(c *fiber.Ctx) error {
	if h.session.Ready() {
		return c.Status(http.StatusOK).JSON(StatusResponse{Status: "ready"})
	}
	return c.Status(http.StatusOK).JSON(StatusResponse{Status: "not_ready"})
}

// QRCode godoc
// @Summary Current QR challenge
// @Tags Account
// @Produce json
// @Success 200 {object} QRResponse
// @Failure 404 {object} ErrorResponse
// @Router /qrcode [get]
func (h *AccountHandler) QRCode(c *fiber.Ctx) error {
	qr, ok := h.session.QR()
	if !ok {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error: "qr_not_generated",
		})
	}
	return c.Status(http.StatusOK).JSON(QRResponse{QR: qr})
}

// SessionUpdate godoc
// @Summary Session lifecycle webhook
// @Description Called by the gateway on QR issuance, session ready and auth failure
// @Tags Account
// @Accept json
// @Produce json
// @Param request body SessionUpdateRequest true "Lifecycle payload"
// @Success 200 {object} SessionUpdateResponse
// @Failure 400 {object} ErrorResponse
// @Router /gateway/session [post]
func (h *AccountHandler) SessionUpdate(c *fiber.Ctx) error {
	var req SessionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	switch req.Event {
	case "qr":
		if req.QR == "" {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error: "qr_payload_required",
			})
		}
		h.session.SetQR(req.QR)
	case "ready":
		h.session.SetReady()
	case "auth_failure":
		h.session.SetAuthFailed()
	default:
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "unknown_event",
		})
	}

	return c.Status(http.StatusOK).JSON(SessionUpdateResponse{Status: "ok"})
}
