package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// amountPatterns are evaluated in order per field family; the first hit wins.
// More specific labels carry higher base confidence.
type amountPattern struct {
	re         *regexp.Regexp
	confidence float64
}

const moneyRe = `[\$€£]?\s*([0-9][0-9,]*\.?[0-9]{0,2})`

func labeled(label string, conf float64) amountPattern {
	return amountPattern{
		re:         regexp.MustCompile(`(?im)` + label + `\s*:?\s*` + moneyRe),
		confidence: conf,
	}
}

var totalPatterns = []amountPattern{
	labeled(`grand\s+total`, 0.9),
	labeled(`amount\s+due`, 0.9),
	labeled(`balance\s+due`, 0.85),
	labeled(`^total`, 0.8),
	labeled(`total`, 0.7),
}

var subtotalPatterns = []amountPattern{
	labeled(`sub[\s\-]?total`, 0.85),
	labeled(`net\s+amount`, 0.75),
}

var taxPatterns = []amountPattern{
	labeled(`(?:hst|gst|pst|vat)(?:\s*\(?[0-9.]{1,5}%?\)?)?`, 0.85),
	labeled(`sales\s+tax`, 0.8),
	labeled(`tax`, 0.7),
}

// bareAmountRe matches any money-looking number, used as a last resort.
var bareAmountRe = regexp.MustCompile(moneyRe)

// ParseAmount parses a money string into a float, tolerating thousands
// separators and currency symbols.
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$€£ ")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// findAmount applies a pattern family to text, returning the formatted value
// and pattern confidence. Context corroboration (a currency symbol adjacent
// to the match) earns a small boost.
func findAmount(text string, patterns []amountPattern) (string, float64, bool) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		v, ok := ParseAmount(m[1])
		if !ok {
			continue
		}
		conf := p.confidence
		if strings.ContainsAny(m[0], "$€£") {
			conf += 0.05
		}
		if conf > 0.95 {
			conf = 0.95
		}
		return formatAmount(v), conf, true
	}
	return "", 0, false
}

// findLargestAmount returns the largest bare number in the text. Used only
// as a default-source fallback for the total.
func findLargestAmount(text string) (string, bool) {
	var best float64
	found := false
	for _, m := range bareAmountRe.FindAllStringSubmatch(text, -1) {
		if v, ok := ParseAmount(m[1]); ok && v > best {
			best = v
			found = true
		}
	}
	if !found {
		return "", false
	}
	return formatAmount(best), true
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatMoney renders an amount with two decimals for messages.
func FormatMoney(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
