package noop

import (
	"context"
	"log"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs decisions to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendSuggestionDecision(_ context.Context, toEmail string, sg *domain.SuggestedEntity) error {
	log.Printf("[NOOP EMAIL] Suggestion decision for %s: %s %q -> %s", toEmail, sg.Kind, sg.SuggestedName, sg.Status)
	return nil
}
