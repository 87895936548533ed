package extractor

import (
	"fmt"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// fieldHints lists the field names a vision-language provider should extract
// per document type. Names match the normalizer's field families.
var fieldHints = map[domain.DocumentType][]string{
	domain.DocumentTypeReceipt: {
		"vendor_name", "transaction_date", "subtotal", "tax_amount", "total_amount", "currency", "payment_method",
	},
	domain.DocumentTypeInvoice: {
		"vendor_name", "invoice_number", "invoice_date", "due_date", "subtotal", "tax_amount", "total_amount", "currency",
	},
	domain.DocumentTypeBusinessCard: {
		"full_name", "title", "company_name", "email", "phone", "website", "address",
	},
}

// BuildExtractionPrompt builds the instruction sent to vision-language
// providers. The response contract is a single JSON object with the full text,
// an overall confidence, and per-field candidates.
func BuildExtractionPrompt(documentType domain.DocumentType) string {
	hints, ok := fieldHints[documentType]
	if !ok {
		hints = fieldHints[domain.DocumentTypeReceipt]
	}

	fields := ""
	for _, h := range hints {
		fields += fmt.Sprintf("  - %s\n", h)
	}

	return fmt.Sprintf(`You are a document data extraction system. The attached document is a %s.

Extract the following fields:
%s
Respond with ONLY a JSON object, no prose, in this exact shape:
{
  "text": "<full text content of the document>",
  "confidence": <overall extraction confidence between 0 and 1>,
  "fields": [
    {"name": "<field name>", "value": "<string value>", "confidence": <0..1>}
  ]
}

Rules:
- Omit fields that are not present in the document; never invent values.
- Dates must be copied exactly as printed.
- Amounts must be plain decimal numbers without currency symbols.
- Confidence must reflect legibility and ambiguity, not optimism.`, documentType, fields)
}
