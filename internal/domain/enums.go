package domain

// FileType represents the allowed document types for processing.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// DocumentType classifies an ingested document.
type DocumentType string

const (
	DocumentTypeReceipt      DocumentType = "receipt"
	DocumentTypeInvoice      DocumentType = "invoice"
	DocumentTypeBusinessCard DocumentType = "business_card"
	DocumentTypeUnknown      DocumentType = "unknown"
)

// FieldSource records where an extracted field value came from.
// Structured provider output outranks pattern matches, which outrank defaults.
type FieldSource string

const (
	FieldSourceStructured FieldSource = "structured"
	FieldSourcePattern    FieldSource = "pattern"
	FieldSourceDefault    FieldSource = "default"
)

// MatchType identifies which resolution stage produced an EntityMatch.
type MatchType string

const (
	MatchTypeExact       MatchType = "exact"
	MatchTypeFuzzy       MatchType = "fuzzy"
	MatchTypeSemantic    MatchType = "semantic"
	MatchTypeNew         MatchType = "new"
	MatchTypeWebEnriched MatchType = "web_enriched"
)

// EntityKind distinguishes the two resolver instances.
type EntityKind string

const (
	EntityKindCategory EntityKind = "category"
	EntityKindVendor   EntityKind = "vendor"
)

// SuggestionStatus is the lifecycle of a suggested reference entity.
type SuggestionStatus string

const (
	SuggestionStatusPending  SuggestionStatus = "pending"
	SuggestionStatusApproved SuggestionStatus = "approved"
	SuggestionStatusRejected SuggestionStatus = "rejected"
	SuggestionStatusMerged   SuggestionStatus = "merged"
)

// ActionCardType identifies the system mutation a card proposes.
type ActionCardType string

const (
	ActionCardCreateExpense ActionCardType = "create_expense"
	ActionCardCreateVendor  ActionCardType = "create_vendor"
	ActionCardCreateContact ActionCardType = "create_contact"
)

// ActionCardStatus tracks an action card through its forward-only state machine.
type ActionCardStatus string

const (
	CardStatusPending   ActionCardStatus = "pending"
	CardStatusApproved  ActionCardStatus = "approved"
	CardStatusRejected  ActionCardStatus = "rejected"
	CardStatusExecuting ActionCardStatus = "executing"
	CardStatusCompleted ActionCardStatus = "completed"
)

// cardTransitions is the closed set of legal status transitions.
var cardTransitions = map[ActionCardStatus][]ActionCardStatus{
	CardStatusPending:   {CardStatusApproved, CardStatusRejected},
	CardStatusApproved:  {CardStatusExecuting},
	CardStatusExecuting: {CardStatusCompleted},
	CardStatusRejected:  {},
	CardStatusCompleted: {},
}

// CanTransition reports whether a card may move from one status to another.
func CanTransition(from, to ActionCardStatus) bool {
	for _, next := range cardTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ConversationStatus is the lifecycle of a conversation session.
type ConversationStatus string

const (
	ConversationActive          ConversationStatus = "active"
	ConversationWaitingApproval ConversationStatus = "waiting_approval"
	ConversationClosed          ConversationStatus = "closed"
)

// IntentType classifies a free-text message from the conversational front end.
type IntentType string

const (
	IntentProcessDocument IntentType = "process_document"
	IntentCreateExpense   IntentType = "create_expense"
	IntentQueryStatus     IntentType = "query_status"
	IntentHelp            IntentType = "help"
	IntentUnknown         IntentType = "unknown"
)

// Capability names a single permission in the caller's security context.
type Capability string

const (
	CapCreateExpense  Capability = "can_create_expense"
	CapCreateVendor   Capability = "can_create_vendor"
	CapCreateContact  Capability = "can_create_contact"
	CapViewGLAccounts Capability = "can_view_gl_accounts"
)
