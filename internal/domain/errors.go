package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrEmptyDocument       = errors.New("document is empty")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrVendorNotFound      = errors.New("vendor not found")
	ErrSuggestionNotFound  = errors.New("suggestion not found")
	ErrSuggestionClosed    = errors.New("suggestion already rejected or merged")
	ErrCardNotFound        = errors.New("action card not found")
	ErrCardTransition      = errors.New("illegal action card status transition")
	ErrConversationClosed  = errors.New("conversation is closed")
	ErrNoEnrichmentResult  = errors.New("no enrichment result for name")
)
