package validator

import (
	"time"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
)

// Outcome is the result of validating an analysis: adjusted fields plus
// human-readable warnings. Input fields are never removed.
type Outcome struct {
	Fields   map[string]domain.ExtractedField
	Warnings []string
}

// Engine runs every registered rule against a document analysis and folds
// the findings into adjusted confidences and warnings.
type Engine struct {
	registry *Registry
}

// NewEngine builds an engine with the builtin rule set.
func NewEngine(largeAmountThreshold float64) *Engine {
	return NewEngineWithClock(largeAmountThreshold, nil)
}

// NewEngineWithClock builds an engine with an injectable clock for tests.
func NewEngineWithClock(largeAmountThreshold float64, nowFn func() time.Time) *Engine {
	reg := NewRegistry()
	for _, r := range BuiltinRules(largeAmountThreshold, nowFn) {
		reg.Register(r)
	}
	return &Engine{registry: reg}
}

// Validate cross-checks the analysis and returns adjusted fields and
// warnings. The input analysis is not mutated.
func (e *Engine) Validate(a *domain.DocumentAnalysis) Outcome {
	out := Outcome{Fields: make(map[string]domain.ExtractedField, len(a.Fields))}
	for k, v := range a.Fields {
		out.Fields[k] = v
	}

	for _, rule := range e.registry.All() {
		for _, finding := range rule.Check(a) {
			out.Warnings = append(out.Warnings, finding.Message)
			if finding.CapConfidence <= 0 {
				continue
			}
			f, ok := out.Fields[finding.FieldName]
			if !ok {
				continue
			}
			if f.Confidence > finding.CapConfidence {
				f.Confidence = finding.CapConfidence
				out.Fields[finding.FieldName] = f
			}
		}
	}
	return out
}
