package cards

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/normalize"
)

// ExpenseCardData is the payload of a create_expense card.
type ExpenseCardData struct {
	VendorID     *uuid.UUID `json:"vendor_id,omitempty"`
	VendorName   string     `json:"vendor_name"`
	CategoryID   *uuid.UUID `json:"category_id,omitempty"`
	CategoryName string     `json:"category_name,omitempty"`
	Amount       float64    `json:"amount"`
	Currency     string     `json:"currency"`
	TaxAmount    float64    `json:"tax_amount"`
	ExpenseDate  string     `json:"expense_date,omitempty"`
	GLAccount    string     `json:"gl_account,omitempty"`
	Description  string     `json:"description,omitempty"`
}

// VendorCardData is the payload of a create_vendor card.
type VendorCardData struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
	Address string `json:"address,omitempty"`
}

// ContactCardData is the payload of a create_contact card.
type ContactCardData struct {
	FullName string `json:"full_name"`
	Title    string `json:"title,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Employer string `json:"employer,omitempty"`
}

// Generator assembles action cards from pipeline output. It owns the
// optional expiry stamp; resolvers never set one.
type Generator struct {
	acceptanceThreshold float64
	cardTTL             time.Duration
	nowFn               func() time.Time
}

// NewGenerator builds a Generator. A zero cardTTL disables expiry metadata.
func NewGenerator(acceptanceThreshold float64, cardTTL time.Duration) *Generator {
	return &Generator{
		acceptanceThreshold: acceptanceThreshold,
		cardTTL:             cardTTL,
		nowFn:               time.Now,
	}
}

// WithClock overrides the generator clock (tests).
func (g *Generator) WithClock(nowFn func() time.Time) *Generator {
	g.nowFn = nowFn
	return g
}

// Generate produces one card per plausible system action, filtered to the
// actions the caller's capability set permits. approvalRequired is the OR of
// any contributing match needing approval, overall confidence below the
// acceptance threshold, and the action being inherently sensitive.
func (g *Generator) Generate(analysis *domain.DocumentAnalysis, matches []domain.EntityMatch, sec domain.SecurityContext) ([]domain.ActionCard, error) {
	var out []domain.ActionCard

	anyApproval := false
	for _, m := range matches {
		if m.NeedsApproval {
			anyApproval = true
		}
	}
	lowConfidence := analysis.Confidence < g.acceptanceThreshold

	switch analysis.DocumentType {
	case domain.DocumentTypeReceipt, domain.DocumentTypeInvoice, domain.DocumentTypeUnknown:
		if sec.Can(domain.CapCreateExpense) {
			card, err := g.expenseCard(analysis, matches, sec)
			if err != nil {
				return nil, err
			}
			// Financial-record creation is inherently sensitive.
			card.ApprovalRequired = true
			out = append(out, *card)
		}
		if vendor := vendorMatch(matches); vendor != nil && vendor.EntityID == nil && sec.Can(domain.CapCreateVendor) {
			card, err := g.vendorCard(analysis, vendor, sec)
			if err != nil {
				return nil, err
			}
			card.ApprovalRequired = anyApproval || lowConfidence || vendor.NeedsApproval
			out = append(out, *card)
		}
	case domain.DocumentTypeBusinessCard:
		if sec.Can(domain.CapCreateContact) {
			card, err := g.contactCard(analysis, sec)
			if err != nil {
				return nil, err
			}
			card.ApprovalRequired = anyApproval || lowConfidence
			out = append(out, *card)
		}
	}

	return out, nil
}

func (g *Generator) newCard(cardType domain.ActionCardType, title string, data interface{}, confidence float64, priority int, sec domain.SecurityContext) (*domain.ActionCard, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshaling card data: %w", err)
	}
	card := &domain.ActionCard{
		ID:         uuid.New(),
		CompanyID:  sec.CompanyID,
		Type:       cardType,
		Title:      title,
		Data:       raw,
		Confidence: confidence,
		Priority:   priority,
		Status:     domain.CardStatusPending,
		CreatedBy:  sec.UserID,
	}
	if g.cardTTL > 0 {
		exp := g.nowFn().Add(g.cardTTL)
		card.ExpiresAt = &exp
	}
	return card, nil
}

func (g *Generator) expenseCard(analysis *domain.DocumentAnalysis, matches []domain.EntityMatch, sec domain.SecurityContext) (*domain.ActionCard, error) {
	amount, _ := normalize.ParseAmount(analysis.Field(domain.FieldTotalAmount).Value)
	tax, _ := normalize.ParseAmount(analysis.Field(domain.FieldTaxAmount).Value)

	data := ExpenseCardData{
		VendorName: analysis.Field(domain.FieldVendorName).Value,
		Amount:     amount,
		Currency:   analysis.Field(domain.FieldCurrency).Value,
		TaxAmount:  tax,
	}
	if d := analysis.Field(domain.FieldTransactionDate).Value; d != "" {
		data.ExpenseDate = d
	} else {
		data.ExpenseDate = analysis.Field(domain.FieldInvoiceDate).Value
	}
	if n := analysis.Field(domain.FieldInvoiceNumber).Value; n != "" {
		data.Description = "Invoice " + n
	}

	for i := range matches {
		m := &matches[i]
		switch m.Kind {
		case domain.EntityKindVendor:
			data.VendorID = m.EntityID
			if m.EntityID != nil {
				data.VendorName = m.EntityName
			}
		case domain.EntityKindCategory:
			data.CategoryID = m.EntityID
			data.CategoryName = m.EntityName
		}
	}

	// GL accounts are visible only to callers holding the capability.
	if sec.Can(domain.CapViewGLAccounts) {
		data.GLAccount = analysis.Field(domain.FieldGLAccount).Value
	}

	title := fmt.Sprintf("Create expense: %s %s", data.VendorName, normalize.FormatMoney(amount))
	return g.newCard(domain.ActionCardCreateExpense, title, data, analysis.Confidence, 1, sec)
}

func (g *Generator) vendorCard(analysis *domain.DocumentAnalysis, match *domain.EntityMatch, sec domain.SecurityContext) (*domain.ActionCard, error) {
	data := VendorCardData{Name: match.EntityName}
	if p := match.Enrichment; p != nil {
		data.Email = p.Email
		data.Phone = p.Phone
		data.Website = p.Website
		data.Address = p.Address
	}
	title := fmt.Sprintf("Create vendor: %s", data.Name)
	return g.newCard(domain.ActionCardCreateVendor, title, data, match.Confidence, 2, sec)
}

func (g *Generator) contactCard(analysis *domain.DocumentAnalysis, sec domain.SecurityContext) (*domain.ActionCard, error) {
	data := ContactCardData{
		FullName: analysis.Field(domain.FieldFullName).Value,
		Title:    analysis.Field(domain.FieldTitle).Value,
		Email:    analysis.Field(domain.FieldEmail).Value,
		Phone:    analysis.Field(domain.FieldPhone).Value,
		Employer: analysis.Field(domain.FieldCompanyName).Value,
	}
	title := fmt.Sprintf("Create contact: %s", data.FullName)
	return g.newCard(domain.ActionCardCreateContact, title, data, analysis.Confidence, 3, sec)
}

func vendorMatch(matches []domain.EntityMatch) *domain.EntityMatch {
	for i := range matches {
		if matches[i].Kind == domain.EntityKindVendor {
			return &matches[i]
		}
	}
	return nil
}
