package port

import (
	"context"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// ExtractInput carries the data needed for document extraction.
type ExtractInput struct {
	FileBytes    []byte
	ContentType  string
	DocumentType domain.DocumentType
}

// FieldCandidate is a provider-reported field with its own confidence.
type FieldCandidate struct {
	Name       string
	Value      string
	Confidence float64
}

// TableCell is one cell in an itemized table.
type TableCell struct {
	Row, Col int
	Text     string
}

// Table is an optional itemized table reported by a provider.
type Table struct {
	Rows  int
	Cols  int
	Cells []TableCell
}

// RawExtraction is the provider-neutral result of a single extraction call.
// It is produced once per document and never mutated afterwards.
type RawExtraction struct {
	Text       string
	Confidence float64
	Fields     []FieldCandidate
	Tables     []Table
	Provider   string
}

// DocumentExtractor abstracts a document-understanding backend.
type DocumentExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*RawExtraction, error)
}
