package classify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pil1/IngridProduction-sub001/internal/classify"
	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

func TestDetect_InvoiceFromText(t *testing.T) {
	text := "INVOICE\nInvoice Number: 1042\nBill To: Acme Inc\nPayment Terms: Net 30"

	docType, conf := classify.Detect("scan001.pdf", "application/pdf", text)

	assert.Equal(t, domain.DocumentTypeInvoice, docType)
	assert.Greater(t, conf, 0.7)
}

func TestDetect_ReceiptFromText(t *testing.T) {
	text := "Corner Cafe\nSubtotal: 10.00\nCash: 20.00\nChange Due: 8.70\nThank you for shopping"

	docType, conf := classify.Detect("img_2231.jpg", "image/jpeg", text)

	assert.Equal(t, domain.DocumentTypeReceipt, docType)
	assert.Greater(t, conf, 0.7)
}

func TestDetect_FilenameCountsDouble(t *testing.T) {
	// Body text is empty; the filename alone decides.
	docType, conf := classify.Detect("invoice-march.pdf", "application/pdf", "")

	assert.Equal(t, domain.DocumentTypeInvoice, docType)
	assert.InDelta(t, 0.7, conf, 1e-9)
}

func TestDetect_BusinessCard(t *testing.T) {
	text := "Dana Smith\nMobile: 555-0100\nLinkedIn: /in/danasmith\ndana@acme.example"

	docType, _ := classify.Detect("card.jpg", "image/jpeg", text)

	assert.Equal(t, domain.DocumentTypeBusinessCard, docType)
}

func TestDetect_NothingScores_Unknown(t *testing.T) {
	docType, conf := classify.Detect("document.pdf", "application/pdf", "lorem ipsum dolor sit amet")

	assert.Equal(t, domain.DocumentTypeUnknown, docType)
	assert.Equal(t, 0.3, conf)
}

func TestDetect_ConfidenceCapped(t *testing.T) {
	text := "invoice invoice number bill to due date payment terms net 30 remit po number"

	_, conf := classify.Detect("invoice.pdf", "application/pdf", text)

	assert.LessOrEqual(t, conf, 0.95)
}

func TestDetect_Deterministic(t *testing.T) {
	text := "invoice receipt"
	first, firstConf := classify.Detect("doc.pdf", "application/pdf", text)
	for i := 0; i < 10; i++ {
		got, conf := classify.Detect("doc.pdf", "application/pdf", text)
		assert.Equal(t, first, got)
		assert.Equal(t, firstConf, conf)
	}
}
