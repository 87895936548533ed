package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pil1/IngridProduction-sub001/internal/cards"
	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/normalize"
	"github.com/pil1/IngridProduction-sub001/internal/port"
)

// CardService drives action cards through their state machine and performs
// the approved mutation. The system of record changes only here.
type CardService struct {
	cardRepo    port.ActionCardRepository
	expenseRepo port.ExpenseRepository
	vendorRepo  port.VendorRepository
	contactRepo port.ContactRepository
}

// NewCardService wires the card execution service.
func NewCardService(
	cardRepo port.ActionCardRepository,
	expenseRepo port.ExpenseRepository,
	vendorRepo port.VendorRepository,
	contactRepo port.ContactRepository,
) *CardService {
	return &CardService{
		cardRepo:    cardRepo,
		expenseRepo: expenseRepo,
		vendorRepo:  vendorRepo,
		contactRepo: contactRepo,
	}
}

// Get returns one card scoped to the caller's company.
func (s *CardService) Get(ctx context.Context, sec domain.SecurityContext, cardID uuid.UUID) (*domain.ActionCard, error) {
	return s.cardRepo.GetByID(ctx, sec.CompanyID, cardID)
}

// List pages through the company's cards, optionally filtered by status.
func (s *CardService) List(ctx context.Context, sec domain.SecurityContext, status *domain.ActionCardStatus, offset, limit int) ([]domain.ActionCard, int, error) {
	return s.cardRepo.ListByCompany(ctx, sec.CompanyID, status, offset, limit)
}

// Approve moves a pending card to approved and then executes it. Only one
// caller can win each transition; a concurrent approval surfaces as
// domain.ErrCardTransition.
func (s *CardService) Approve(ctx context.Context, sec domain.SecurityContext, cardID uuid.UUID) (*domain.ActionCard, error) {
	card, err := s.cardRepo.GetByID(ctx, sec.CompanyID, cardID)
	if err != nil {
		return nil, err
	}
	if card.ExpiresAt != nil && time.Now().After(*card.ExpiresAt) {
		return nil, domain.ErrCardTransition
	}
	if !s.canAct(sec, card.Type) {
		return nil, domain.ErrPermissionDenied
	}

	if err := s.cardRepo.TransitionStatus(ctx, sec.CompanyID, cardID, domain.CardStatusPending, domain.CardStatusApproved); err != nil {
		return nil, err
	}
	if err := s.execute(ctx, sec, card); err != nil {
		return nil, err
	}
	return s.cardRepo.GetByID(ctx, sec.CompanyID, cardID)
}

// Reject closes a pending card without side effects.
func (s *CardService) Reject(ctx context.Context, sec domain.SecurityContext, cardID uuid.UUID) (*domain.ActionCard, error) {
	if err := s.cardRepo.TransitionStatus(ctx, sec.CompanyID, cardID, domain.CardStatusPending, domain.CardStatusRejected); err != nil {
		return nil, err
	}
	return s.cardRepo.GetByID(ctx, sec.CompanyID, cardID)
}

// execute performs the card's mutation inside the executing state. A card
// that fails mid-execution stays in executing for operator attention rather
// than silently rolling back.
func (s *CardService) execute(ctx context.Context, sec domain.SecurityContext, card *domain.ActionCard) error {
	if err := s.cardRepo.TransitionStatus(ctx, sec.CompanyID, card.ID, domain.CardStatusApproved, domain.CardStatusExecuting); err != nil {
		return err
	}

	var err error
	switch card.Type {
	case domain.ActionCardCreateExpense:
		err = s.createExpense(ctx, sec, card)
	case domain.ActionCardCreateVendor:
		err = s.createVendor(ctx, sec, card)
	case domain.ActionCardCreateContact:
		err = s.createContact(ctx, sec, card)
	default:
		err = fmt.Errorf("unknown card type %q", card.Type)
	}
	if err != nil {
		return fmt.Errorf("executing card %s: %w", card.ID, err)
	}

	return s.cardRepo.TransitionStatus(ctx, sec.CompanyID, card.ID, domain.CardStatusExecuting, domain.CardStatusCompleted)
}

func (s *CardService) createExpense(ctx context.Context, sec domain.SecurityContext, card *domain.ActionCard) error {
	// Re-approval after a crash must not double-write.
	if existing, err := s.expenseRepo.GetBySourceCard(ctx, sec.CompanyID, card.ID); err == nil && existing != nil {
		return nil
	} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	var data cards.ExpenseCardData
	if err := json.Unmarshal(card.Data, &data); err != nil {
		return fmt.Errorf("decoding expense card data: %w", err)
	}

	exp := &domain.Expense{
		ID:          uuid.New(),
		CompanyID:   sec.CompanyID,
		VendorID:    data.VendorID,
		CategoryID:  data.CategoryID,
		VendorName:  data.VendorName,
		Description: data.Description,
		Amount:      data.Amount,
		Currency:    data.Currency,
		TaxAmount:   data.TaxAmount,
		SourceCard:  card.ID,
		CreatedBy:   sec.UserID,
	}
	if data.ExpenseDate != "" {
		if t, ok := normalize.ParseDate(data.ExpenseDate); ok {
			exp.ExpenseDate = &t
		}
	}
	return s.expenseRepo.Create(ctx, exp)
}

func (s *CardService) createVendor(ctx context.Context, sec domain.SecurityContext, card *domain.ActionCard) error {
	var data cards.VendorCardData
	if err := json.Unmarshal(card.Data, &data); err != nil {
		return fmt.Errorf("decoding vendor card data: %w", err)
	}
	return s.vendorRepo.Create(ctx, &domain.Vendor{
		ID:        uuid.New(),
		CompanyID: sec.CompanyID,
		Name:      data.Name,
		Email:     data.Email,
		Phone:     data.Phone,
		Website:   data.Website,
		Address:   data.Address,
	})
}

func (s *CardService) createContact(ctx context.Context, sec domain.SecurityContext, card *domain.ActionCard) error {
	var data cards.ContactCardData
	if err := json.Unmarshal(card.Data, &data); err != nil {
		return fmt.Errorf("decoding contact card data: %w", err)
	}
	return s.contactRepo.Create(ctx, &domain.Contact{
		ID:        uuid.New(),
		CompanyID: sec.CompanyID,
		FullName:  data.FullName,
		Title:     data.Title,
		Email:     data.Email,
		Phone:     data.Phone,
		Employer:  data.Employer,
		CreatedBy: sec.UserID,
	})
}

func (s *CardService) canAct(sec domain.SecurityContext, t domain.ActionCardType) bool {
	switch t {
	case domain.ActionCardCreateExpense:
		return sec.Can(domain.CapCreateExpense)
	case domain.ActionCardCreateVendor:
		return sec.Can(domain.CapCreateVendor)
	case domain.ActionCardCreateContact:
		return sec.Can(domain.CapCreateContact)
	}
	return false
}
