package ports

import (
	"context"

	"github.com/NKTechDev/wma-backend/internal/account/core/domain"
)

// GatewayPort is the outbound side of the messaging-account collaborator:
// the process that owns the actual account session.
type GatewayPort interface {
	// GetContactDisplayName returns the contact's display name, or "" when
	// the gateway does not know the contact.
	GetContactDisplayName(ctx context.Context, senderID string) (string, error)

	ListChatsWithLastMessage(ctx context.Context) ([]domain.Chat, error)
}
