package validator

import (
	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// Severity classifies a finding.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding is one validation observation. A non-zero CapConfidence caps the
// named field's confidence; validation never removes data.
type Finding struct {
	RuleKey       string
	FieldName     string
	Message       string
	CapConfidence float64
}

// Rule is the interface for a single built-in validation rule.
type Rule interface {
	RuleKey() string
	RuleName() string
	Severity() Severity
	Check(a *domain.DocumentAnalysis) []Finding
}
