package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NKTechDev/wma-backend/internal/account/core/domain"
	"github.com/NKTechDev/wma-backend/internal/account/core/ports"

	"github.com/google/uuid"
)

// Client talks to the gateway bridge: the separate process that owns the
// account session and answers contact and chat lookups.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

var _ ports.GatewayPort = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

type contactResponse struct {
	DisplayName string `json:"display_name"`
}

type lastMessagePayload struct {
	MessageID   string `json:"message_id"`
	Type        string `json:"type"`
	FromMe      bool   `json:"from_me"`
	SenderID    string `json:"sender_id"`
	DisplayName string `json:"display_name"`
	Duration    int64  `json:"duration"`
	Timestamp   int64  `json:"timestamp"`
}

type chatPayload struct {
	Name        string              `json:"name"`
	LastMessage *lastMessagePayload `json:"last_message"`
}

func (c *Client) GetContactDisplayName(ctx context.Context, senderID string) (string, error) {
	endpoint := c.BaseURL + "/contacts/" + url.PathEscape(senderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("gateway contact lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// Unknown contact is not an error; callers fall back to the number.
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gateway contact lookup: status %d", resp.StatusCode)
	}

	var body contactResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("gateway contact lookup: %w", err)
	}

	return body.DisplayName, nil
}

func (c *Client) ListChatsWithLastMessage(ctx context.Context) ([]domain.Chat, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/chats", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway chat listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway chat listing: status %d", resp.StatusCode)
	}

	var payload []chatPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("gateway chat listing: %w", err)
	}

	chats := make([]domain.Chat, 0, len(payload))
	for _, p := range payload {
		chat := domain.Chat{Name: p.Name}
		if p.LastMessage != nil {
			chat.LastMessage = &domain.LastMessage{
				MessageID:       p.LastMessage.MessageID,
				Type:            p.LastMessage.Type,
				FromMe:          p.LastMessage.FromMe,
				SenderID:        p.LastMessage.SenderID,
				DisplayName:     p.LastMessage.DisplayName,
				DurationSeconds: p.LastMessage.Duration,
				Timestamp:       p.LastMessage.Timestamp,
			}
		}
		chats = append(chats, chat)
	}

	return chats, nil
}
