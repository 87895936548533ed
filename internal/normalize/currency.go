package normalize

import (
	"math"
	"regexp"
	"strings"
)

// taxRateBand is a known jurisdiction tax rate in percent.
type taxRateBand struct {
	rate     float64
	currency string
}

// Known sales-tax bands. Matching is ±0.5 percentage points.
var taxRateBands = []taxRateBand{
	{5, "CAD"},  // GST
	{13, "CAD"}, // HST (ON)
	{15, "CAD"}, // HST (Atlantic)
	{20, "GBP"}, // VAT
	{19, "EUR"}, // VAT (DE)
	{21, "EUR"}, // VAT (NL/BE)
	{7.25, "USD"},
	{8.875, "USD"},
}

const taxBandTolerance = 0.5

var currencyCodeRe = regexp.MustCompile(`\b(USD|CAD|EUR|GBP|AUD|INR)\b`)

// Whole words only: "PSTN" or "MAGSTRIPE" must not read as tax keywords.
var canadianTaxRe = regexp.MustCompile(`\b(HST|GST|PST)\b`)

type vendorChain struct {
	name     string
	currency string
}

// Vendor chains whose home currency is unambiguous. Ordered so a name
// matching more than one chain resolves the same way every run.
var vendorChains = []vendorChain{
	{"tim hortons", "CAD"},
	{"canadian tire", "CAD"},
	{"loblaws", "CAD"},
	{"shoppers drug mart", "CAD"},
	{"tesco", "GBP"},
	{"sainsbury", "GBP"},
	{"walmart", "USD"},
	{"target", "USD"},
	{"home depot", "USD"},
}

// InferCurrency applies the fixed priority order: explicit code/symbol >
// tax-type keyword > tax-rate band > known vendor chain > default USD.
// taxRate is tax/subtotal in percent, or negative when unknown.
func InferCurrency(text, vendorName string, taxRate float64) (code string, confidence float64, reason string) {
	upper := strings.ToUpper(text)
	lower := strings.ToLower(text)

	if m := currencyCodeRe.FindString(upper); m != "" {
		return m, 0.95, "explicit currency code"
	}
	if strings.Contains(text, "€") {
		return "EUR", 0.9, "euro symbol"
	}
	if strings.Contains(text, "£") {
		return "GBP", 0.9, "pound symbol"
	}
	// "$" alone is ambiguous between USD and CAD; fall through.

	if canadianTaxRe.MatchString(upper) {
		return "CAD", 0.85, "canadian tax keyword"
	}
	if strings.Contains(upper, "VAT") {
		return "EUR", 0.7, "vat keyword"
	}
	if strings.Contains(lower, "sales tax") {
		return "USD", 0.75, "us sales tax keyword"
	}

	if taxRate >= 0 {
		if band, ok := matchTaxBand(taxRate); ok {
			return band.currency, 0.65, "tax rate band match"
		}
	}

	vendor := strings.ToLower(vendorName)
	for _, chain := range vendorChains {
		if strings.Contains(vendor, chain.name) {
			return chain.currency, 0.6, "known vendor chain"
		}
	}

	return "USD", 0.3, "default"
}

// matchTaxBand reports the first known band within tolerance of the rate.
func matchTaxBand(ratePercent float64) (taxRateBand, bool) {
	for _, b := range taxRateBands {
		if math.Abs(ratePercent-b.rate) <= taxBandTolerance {
			return b, true
		}
	}
	return taxRateBand{}, false
}

// TaxRateInKnownBand reports whether a tax/subtotal ratio (percent) sits in
// any known jurisdiction band.
func TaxRateInKnownBand(ratePercent float64) bool {
	_, ok := matchTaxBand(ratePercent)
	return ok
}
