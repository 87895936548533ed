package guardrail

import (
	"regexp"
	"strings"
)

// Patterns that must never appear in assistant-visible output. Card numbers
// are matched as 13-19 digit runs with optional separators, which also
// catches most account numbers printed on receipts.
var (
	apiKeyRe = regexp.MustCompile(`\b(?:sk|pk|rk|key|tok|bearer)[-_][A-Za-z0-9_\-]{16,}\b`)
	emailRe  = regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`)
	cardRe   = regexp.MustCompile(`\b(?:\d[ \-]?){13,19}\b`)
)

const (
	redactedSecret = "[REDACTED]"
	redactedEmail  = "[EMAIL REDACTED]"
	redactedNumber = "[NUMBER REDACTED]"
)

// Filter redacts sensitive values from outbound conversational text.
type Filter struct {
	allowEmails bool
}

// NewFilter builds a Filter. allowEmails keeps email addresses intact, which
// the contact-card flow needs when the user asked for them explicitly.
func NewFilter(allowEmails bool) *Filter {
	return &Filter{allowEmails: allowEmails}
}

// Redact returns text with secrets, emails, and card-shaped digit runs
// replaced. The second return reports whether anything was redacted.
func (f *Filter) Redact(text string) (string, bool) {
	out := apiKeyRe.ReplaceAllString(text, redactedSecret)
	if !f.allowEmails {
		out = emailRe.ReplaceAllString(out, redactedEmail)
	}
	out = cardRe.ReplaceAllStringFunc(out, func(m string) string {
		digits := strings.Count(m, "0") + strings.Count(m, "1") + strings.Count(m, "2") +
			strings.Count(m, "3") + strings.Count(m, "4") + strings.Count(m, "5") +
			strings.Count(m, "6") + strings.Count(m, "7") + strings.Count(m, "8") +
			strings.Count(m, "9")
		if digits < 13 {
			return m
		}
		return redactedNumber
	})
	return out, out != text
}
