package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Category is a reference-data expense category scoped to a company.
type Category struct {
	ID          uuid.UUID `db:"id" json:"id"`
	CompanyID   uuid.UUID `db:"company_id" json:"company_id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	GLAccount   string    `db:"gl_account" json:"gl_account,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Vendor is a reference-data vendor scoped to a company.
type Vendor struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CompanyID uuid.UUID `db:"company_id" json:"company_id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email,omitempty"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Website   string    `db:"website" json:"website,omitempty"`
	Address   string    `db:"address" json:"address,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Contact is a person record extracted from a business card.
type Contact struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CompanyID uuid.UUID `db:"company_id" json:"company_id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Title     string    `db:"title" json:"title,omitempty"`
	Email     string    `db:"email" json:"email,omitempty"`
	Phone     string    `db:"phone" json:"phone,omitempty"`
	Employer  string    `db:"employer" json:"employer,omitempty"`
	CreatedBy uuid.UUID `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Expense is the system-of-record row an approved create_expense card produces.
type Expense struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	CompanyID   uuid.UUID  `db:"company_id" json:"company_id"`
	VendorID    *uuid.UUID `db:"vendor_id" json:"vendor_id,omitempty"`
	CategoryID  *uuid.UUID `db:"category_id" json:"category_id,omitempty"`
	VendorName  string     `db:"vendor_name" json:"vendor_name"`
	Description string     `db:"description" json:"description"`
	Amount      float64    `db:"amount" json:"amount"`
	Currency    string     `db:"currency" json:"currency"`
	TaxAmount   float64    `db:"tax_amount" json:"tax_amount"`
	ExpenseDate *time.Time `db:"expense_date" json:"expense_date,omitempty"`
	SourceCard  uuid.UUID  `db:"source_card" json:"source_card"`
	CreatedBy   uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

// ExtractedField is one typed candidate field after normalization.
type ExtractedField struct {
	Name       string      `json:"name"`
	Value      string      `json:"value"`
	Confidence float64     `json:"confidence"`
	Source     FieldSource `json:"source"`
}

// DocumentAnalysis is the per-document result consumed by downstream stages.
// It lives only for the request unless attached to a conversation.
type DocumentAnalysis struct {
	DocumentType DocumentType              `json:"document_type"`
	Fields       map[string]ExtractedField `json:"fields"`
	Confidence   float64                   `json:"confidence"`
	Warnings     []string                  `json:"warnings,omitempty"`
	Enrichment   *CompanyProfile           `json:"enrichment,omitempty"`
}

// Field returns the named field, or a zero ExtractedField if absent.
func (a *DocumentAnalysis) Field(name string) ExtractedField {
	if a == nil || a.Fields == nil {
		return ExtractedField{}
	}
	return a.Fields[name]
}

// CompanyProfile holds externally sourced company data from web enrichment.
type CompanyProfile struct {
	Name        string `json:"name"`
	Website     string `json:"website,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
}

// EntityMatch is the outcome of resolving a free-text name against reference data.
type EntityMatch struct {
	Kind          EntityKind      `json:"kind"`
	EntityID      *uuid.UUID      `json:"entity_id,omitempty"`
	EntityName    string          `json:"entity_name"`
	Confidence    float64         `json:"confidence"`
	MatchType     MatchType       `json:"match_type"`
	Reason        string          `json:"reason"`
	NeedsApproval bool            `json:"needs_approval"`
	Enrichment    *CompanyProfile `json:"enrichment,omitempty"`
}

// SuggestedEntity is a persisted, deduplicated proposal for a new reference row.
type SuggestedEntity struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	CompanyID        uuid.UUID        `db:"company_id" json:"company_id"`
	Kind             EntityKind       `db:"kind" json:"kind"`
	SuggestedName    string           `db:"suggested_name" json:"suggested_name"`
	NormalizedName   string           `db:"normalized_name" json:"normalized_name"`
	Confidence       float64          `db:"confidence" json:"confidence"`
	UsageCount       int              `db:"usage_count" json:"usage_count"`
	Status           SuggestionStatus `db:"status" json:"status"`
	Context          string           `db:"context" json:"context,omitempty"`
	Enrichment       json.RawMessage  `db:"enrichment" json:"enrichment,omitempty"`
	CreatedBy        uuid.UUID        `db:"created_by" json:"created_by"`
	CreatedEntityID  *uuid.UUID       `db:"created_entity_id" json:"created_entity_id,omitempty"`
	ReviewedBy       *uuid.UUID       `db:"reviewed_by" json:"reviewed_by,omitempty"`
	ReviewNotes      string           `db:"review_notes" json:"review_notes,omitempty"`
	FirstSuggestedAt time.Time        `db:"first_suggested_at" json:"first_suggested_at"`
	LastSuggestedAt  time.Time        `db:"last_suggested_at" json:"last_suggested_at"`
}

// ActionCard is a proposed, approval-gated mutation to the system of record.
type ActionCard struct {
	ID               uuid.UUID        `db:"id" json:"id"`
	CompanyID        uuid.UUID        `db:"company_id" json:"company_id"`
	ConversationID   *string          `db:"conversation_id" json:"conversation_id,omitempty"`
	Type             ActionCardType   `db:"type" json:"type"`
	Title            string           `db:"title" json:"title"`
	Data             json.RawMessage  `db:"data" json:"data"`
	Confidence       float64          `db:"confidence" json:"confidence"`
	Priority         int              `db:"priority" json:"priority"`
	Status           ActionCardStatus `db:"status" json:"status"`
	ApprovalRequired bool             `db:"approval_required" json:"approval_required"`
	ExpiresAt        *time.Time       `db:"expires_at" json:"expires_at,omitempty"`
	CreatedBy        uuid.UUID        `db:"created_by" json:"created_by"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// Intent is the detected purpose of a conversational message.
type Intent struct {
	Primary    IntentType `json:"primary"`
	Confidence float64    `json:"confidence"`
}

// ConversationMessage is one entry in a conversation transcript.
type ConversationMessage struct {
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation holds the ordered transcript and status for one conversation id.
type Conversation struct {
	ID           string                `json:"id"`
	CompanyID    uuid.UUID             `json:"company_id"`
	Messages     []ConversationMessage `json:"messages"`
	Status       ConversationStatus    `json:"status"`
	LastActivity time.Time             `json:"last_activity"`
}

// SecurityContext is the opaque capability set the caller operates under.
type SecurityContext struct {
	CompanyID    uuid.UUID
	UserID       uuid.UUID
	Capabilities map[Capability]bool
}

// Can reports whether the context grants a capability. A nil capability map
// denies everything.
func (s SecurityContext) Can(c Capability) bool {
	return s.Capabilities[c]
}
