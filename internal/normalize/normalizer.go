package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/port"
)

var (
	emailRe   = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe   = regexp.MustCompile(`\+?\d{1,3}?[\s.\-]?\(?\d{3}\)?[\s.\-]?\d{3}[\s.\-]?\d{4}`)
	websiteRe = regexp.MustCompile(`(?i)\b(?:https?://)?(?:www\.)[A-Za-z0-9\-]+\.[A-Za-z]{2,}\b`)
)

// Normalize turns a RawExtraction into typed candidate fields. Structured
// provider candidates pass through first; pattern heuristics fill the gaps;
// anything still missing that the pipeline needs gets a default-source value.
func Normalize(raw *port.RawExtraction, docType domain.DocumentType) map[string]domain.ExtractedField {
	fields := make(map[string]domain.ExtractedField)

	// Structured candidates outrank everything. Keep the higher-confidence
	// candidate when a provider repeats a field.
	for _, c := range raw.Fields {
		existing, ok := fields[c.Name]
		if ok && existing.Confidence >= c.Confidence {
			continue
		}
		fields[c.Name] = domain.ExtractedField{
			Name:       c.Name,
			Value:      strings.TrimSpace(c.Value),
			Confidence: c.Confidence,
			Source:     domain.FieldSourceStructured,
		}
	}

	switch docType {
	case domain.DocumentTypeBusinessCard:
		normalizeBusinessCard(raw.Text, fields)
	case domain.DocumentTypeReceipt, domain.DocumentTypeInvoice, domain.DocumentTypeUnknown:
		normalizeFinancial(raw.Text, docType, fields)
	}

	adjustTaxPlausibility(fields)
	inferCurrencyField(raw.Text, fields)
	normalizeDates(fields)

	return fields
}

func setIfMissing(fields map[string]domain.ExtractedField, f domain.ExtractedField) {
	if _, ok := fields[f.Name]; !ok && f.Value != "" {
		fields[f.Name] = f
	}
}

func normalizeFinancial(text string, docType domain.DocumentType, fields map[string]domain.ExtractedField) {
	if v, conf, ok := findAmount(text, totalPatterns); ok {
		setIfMissing(fields, domain.ExtractedField{Name: domain.FieldTotalAmount, Value: v, Confidence: conf, Source: domain.FieldSourcePattern})
	} else if v, ok := findLargestAmount(text); ok {
		setIfMissing(fields, domain.ExtractedField{Name: domain.FieldTotalAmount, Value: v, Confidence: 0.4, Source: domain.FieldSourceDefault})
	}

	if v, conf, ok := findAmount(text, subtotalPatterns); ok {
		setIfMissing(fields, domain.ExtractedField{Name: domain.FieldSubtotal, Value: v, Confidence: conf, Source: domain.FieldSourcePattern})
	}
	if v, conf, ok := findAmount(text, taxPatterns); ok {
		setIfMissing(fields, domain.ExtractedField{Name: domain.FieldTaxAmount, Value: v, Confidence: conf, Source: domain.FieldSourcePattern})
	}

	dateField := domain.FieldTransactionDate
	if docType == domain.DocumentTypeInvoice {
		dateField = domain.FieldInvoiceDate
	}
	if t, _, ok := FindDate(text); ok {
		conf := 0.7
		if strings.Contains(strings.ToLower(text), "date") {
			conf = 0.8
		}
		setIfMissing(fields, domain.ExtractedField{Name: dateField, Value: t.Format("2006-01-02"), Confidence: conf, Source: domain.FieldSourcePattern})
	}

	if v, ok := firstPlausibleVendorLine(text); ok {
		setIfMissing(fields, domain.ExtractedField{Name: domain.FieldVendorName, Value: v, Confidence: 0.5, Source: domain.FieldSourcePattern})
	}
}

func normalizeBusinessCard(text string, fields map[string]domain.ExtractedField) {
	if m := emailRe.FindString(text); m != "" {
		setIfMissing(fields, domain.ExtractedField{Name: domain.FieldEmail, Value: m, Confidence: 0.9, Source: domain.FieldSourcePattern})
	}
	if m := phoneRe.FindString(text); m != "" {
		setIfMissing(fields, domain.ExtractedField{Name: domain.FieldPhone, Value: strings.TrimSpace(m), Confidence: 0.8, Source: domain.FieldSourcePattern})
	}
	if m := websiteRe.FindString(text); m != "" {
		setIfMissing(fields, domain.ExtractedField{Name: domain.FieldWebsite, Value: m, Confidence: 0.8, Source: domain.FieldSourcePattern})
	}
	if v, ok := firstPlausibleVendorLine(text); ok {
		setIfMissing(fields, domain.ExtractedField{Name: domain.FieldFullName, Value: v, Confidence: 0.4, Source: domain.FieldSourceDefault})
	}
}

// firstPlausibleVendorLine picks the first line that is not a date, amount or
// address-looking fragment. Receipts usually open with the merchant name.
func firstPlausibleVendorLine(text string) (string, bool) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || len(line) < 3 || len(line) > 60 {
			continue
		}
		if bareAmountRe.MatchString(line) && len(line) < 12 {
			continue
		}
		if _, ok := ParseDate(line); ok {
			continue
		}
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "tel") || strings.HasPrefix(lower, "fax") || strings.HasPrefix(lower, "http") {
			continue
		}
		return line, true
	}
	return "", false
}

// adjustTaxPlausibility cross-checks the tax/subtotal ratio against known
// jurisdiction bands: inside a band the tax field is trustworthy, outside
// every band its confidence is capped at 0.6.
func adjustTaxPlausibility(fields map[string]domain.ExtractedField) {
	tax, hasTax := fields[domain.FieldTaxAmount]
	sub, hasSub := fields[domain.FieldSubtotal]
	if !hasTax || !hasSub {
		return
	}
	taxVal, ok1 := ParseAmount(tax.Value)
	subVal, ok2 := ParseAmount(sub.Value)
	if !ok1 || !ok2 || subVal <= 0 {
		return
	}

	rate := taxVal / subVal * 100
	if TaxRateInKnownBand(rate) {
		if tax.Confidence < 0.85 {
			tax.Confidence = 0.85
		}
	} else if tax.Confidence > 0.6 {
		tax.Confidence = 0.6
	}
	fields[domain.FieldTaxAmount] = tax
}

func inferCurrencyField(text string, fields map[string]domain.ExtractedField) {
	if cur, ok := fields[domain.FieldCurrency]; ok && cur.Value != "" {
		// Provider already gave us a currency; keep it.
		fields[domain.FieldCurrency] = domain.ExtractedField{
			Name:       domain.FieldCurrency,
			Value:      strings.ToUpper(cur.Value),
			Confidence: cur.Confidence,
			Source:     cur.Source,
		}
		return
	}

	rate := -1.0
	if tax, ok1 := ParseAmount(fields[domain.FieldTaxAmount].Value); ok1 {
		if sub, ok2 := ParseAmount(fields[domain.FieldSubtotal].Value); ok2 && sub > 0 {
			rate = tax / sub * 100
		}
	}

	code, conf, reason := InferCurrency(text, fields[domain.FieldVendorName].Value, rate)
	source := domain.FieldSourcePattern
	if reason == "default" {
		source = domain.FieldSourceDefault
	}
	fields[domain.FieldCurrency] = domain.ExtractedField{
		Name:       domain.FieldCurrency,
		Value:      code,
		Confidence: conf,
		Source:     source,
	}
}

// normalizeDates rewrites any recognizable date field value into ISO form.
func normalizeDates(fields map[string]domain.ExtractedField) {
	for _, name := range []string{domain.FieldTransactionDate, domain.FieldInvoiceDate, domain.FieldDueDate} {
		f, ok := fields[name]
		if !ok {
			continue
		}
		if t, ok := ParseDate(f.Value); ok {
			f.Value = t.Format("2006-01-02")
			fields[name] = f
		}
	}
}

// OverallConfidence is the mean confidence of the extracted fields, weighted
// nothing fancier than equally; an empty map scores zero.
func OverallConfidence(fields map[string]domain.ExtractedField) float64 {
	if len(fields) == 0 {
		return 0
	}
	var sum float64
	for _, f := range fields {
		sum += f.Confidence
	}
	return sum / float64(len(fields))
}

// FieldTime parses a normalized date field back into a time, if present.
func FieldTime(f domain.ExtractedField) (time.Time, bool) {
	if f.Value == "" {
		return time.Time{}, false
	}
	return ParseDate(f.Value)
}
