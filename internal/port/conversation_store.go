package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// ConversationStore owns conversation lifecycle: create, append, status
// changes and idle expiry. Appends within one conversation are strictly
// ordered; no ordering is guaranteed across conversations.
type ConversationStore interface {
	Create(ctx context.Context, companyID uuid.UUID) (*domain.Conversation, error)
	Get(ctx context.Context, id string) (*domain.Conversation, error)
	Append(ctx context.Context, id string, msg domain.ConversationMessage) error
	SetStatus(ctx context.Context, id string, status domain.ConversationStatus) error
}
