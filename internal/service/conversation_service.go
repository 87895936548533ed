package service

import (
	"context"
	"fmt"

	"github.com/pil1/IngridProduction-sub001/internal/conversation"
	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/guardrail"
	"github.com/pil1/IngridProduction-sub001/internal/port"
)

// ConversationService is the thin conversational front end. It detects
// intent, routes to canned guidance, and redacts every outbound reply.
// All real work still flows through the pipeline and card services.
type ConversationService struct {
	store    port.ConversationStore
	cardRepo port.ActionCardRepository
	filter   *guardrail.Filter
}

// NewConversationService wires the conversational layer.
func NewConversationService(store port.ConversationStore, cardRepo port.ActionCardRepository, filter *guardrail.Filter) *ConversationService {
	return &ConversationService{store: store, cardRepo: cardRepo, filter: filter}
}

// Start opens a new conversation for the caller's company.
func (s *ConversationService) Start(ctx context.Context, sec domain.SecurityContext) (*domain.Conversation, error) {
	return s.store.Create(ctx, sec.CompanyID)
}

// Get returns the conversation transcript, scoped to the caller's company.
func (s *ConversationService) Get(ctx context.Context, sec domain.SecurityContext, id string) (*domain.Conversation, error) {
	conv, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv.CompanyID != sec.CompanyID {
		return nil, domain.ErrNotFound
	}
	return conv, nil
}

// HandleMessage appends the user message, detects intent, and replies.
// The reply passes through the guardrail filter before it is stored or
// returned.
func (s *ConversationService) HandleMessage(ctx context.Context, sec domain.SecurityContext, id, message string) (string, domain.Intent, error) {
	conv, err := s.Get(ctx, sec, id)
	if err != nil {
		return "", domain.Intent{}, err
	}
	if conv.Status != domain.ConversationActive {
		return "", domain.Intent{}, domain.ErrConversationClosed
	}

	if err := s.store.Append(ctx, id, domain.ConversationMessage{Role: "user", Content: message}); err != nil {
		return "", domain.Intent{}, err
	}

	intent := conversation.DetectIntent(message)
	reply, err := s.replyFor(ctx, sec, intent)
	if err != nil {
		return "", intent, err
	}

	reply, _ = s.filter.Redact(reply)

	if err := s.store.Append(ctx, id, domain.ConversationMessage{Role: "assistant", Content: reply}); err != nil {
		return "", intent, err
	}
	return reply, intent, nil
}

// Close ends the conversation.
func (s *ConversationService) Close(ctx context.Context, sec domain.SecurityContext, id string) error {
	if _, err := s.Get(ctx, sec, id); err != nil {
		return err
	}
	return s.store.SetStatus(ctx, id, domain.ConversationClosed)
}

func (s *ConversationService) replyFor(ctx context.Context, sec domain.SecurityContext, intent domain.Intent) (string, error) {
	switch intent.Primary {
	case domain.IntentProcessDocument:
		return "Upload a receipt, invoice, or business card (PDF, JPG, or PNG) and I will extract it for review.", nil
	case domain.IntentCreateExpense:
		if !sec.Can(domain.CapCreateExpense) {
			return "You do not have permission to create expenses.", nil
		}
		return "Upload the receipt and I will draft an expense card for your approval.", nil
	case domain.IntentQueryStatus:
		return s.statusReply(ctx, sec)
	case domain.IntentHelp:
		return "I can process documents, draft expenses, and track pending action cards. Try uploading a receipt.", nil
	default:
		return "I did not catch that. Try 'help' to see what I can do.", nil
	}
}

func (s *ConversationService) statusReply(ctx context.Context, sec domain.SecurityContext) (string, error) {
	pending := domain.CardStatusPending
	_, total, err := s.cardRepo.ListByCompany(ctx, sec.CompanyID, &pending, 0, 1)
	if err != nil {
		return "", err
	}
	if total == 0 {
		return "Nothing is waiting on you. All action cards are resolved.", nil
	}
	return fmt.Sprintf("You have %d pending action card(s) awaiting review.", total), nil
}
