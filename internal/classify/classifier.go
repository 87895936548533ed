package classify

import (
	"path/filepath"
	"strings"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// keyword weights per document type. Filename hits count double: a user
// naming a file "invoice.pdf" is a stronger signal than the word appearing
// once in body text.
var typeKeywords = map[domain.DocumentType][]string{
	domain.DocumentTypeReceipt: {
		"receipt", "subtotal", "cash", "change due", "cashier", "pos", "terminal", "thank you for shopping",
	},
	domain.DocumentTypeInvoice: {
		"invoice", "invoice number", "bill to", "due date", "payment terms", "net 30", "remit", "po number",
	},
	domain.DocumentTypeBusinessCard: {
		"business card", "mobile", "cell", "direct", "linkedin", "www.", "@",
	},
}

// Detect classifies a document from its filename and extracted text.
// It returns DocumentTypeUnknown with low confidence when nothing scores,
// which downstream stages treat as a receipt-shaped degraded path.
func Detect(filename, contentType, text string) (domain.DocumentType, float64) {
	name := strings.ToLower(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	body := strings.ToLower(text)

	scores := map[domain.DocumentType]int{}
	for docType, words := range typeKeywords {
		for _, w := range words {
			if strings.Contains(name, w) {
				scores[docType] += 2
			}
			if strings.Contains(body, w) {
				scores[docType]++
			}
		}
	}

	best := domain.DocumentTypeUnknown
	bestScore := 0
	// Fixed iteration order keeps ties deterministic.
	for _, docType := range []domain.DocumentType{
		domain.DocumentTypeInvoice,
		domain.DocumentTypeReceipt,
		domain.DocumentTypeBusinessCard,
	} {
		if scores[docType] > bestScore {
			best = docType
			bestScore = scores[docType]
		}
	}

	if bestScore == 0 {
		return domain.DocumentTypeUnknown, 0.3
	}

	confidence := 0.5 + 0.1*float64(bestScore)
	if confidence > 0.95 {
		confidence = 0.95
	}
	return best, confidence
}
