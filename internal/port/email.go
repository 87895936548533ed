package port

import (
	"context"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// EmailSender defines the contract for sending review notifications.
type EmailSender interface {
	SendSuggestionDecision(ctx context.Context, toEmail string, s *domain.SuggestedEntity) error
}
