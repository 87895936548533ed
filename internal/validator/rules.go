package validator

import (
	"fmt"
	"math"
	"time"

	"github.com/pil1/IngridProduction-sub001/internal/domain"
	"github.com/pil1/IngridProduction-sub001/internal/normalize"
)

const (
	mathEpsilon       = 0.02
	taxMismatchCap    = 0.6
	dateWindowCap     = 0.7
	vendorLengthCap   = 0.5
	pastWindow        = 365 * 24 * time.Hour
	futureWindow      = 31 * 24 * time.Hour
	minVendorNameLen  = 3
	maxVendorNameLen  = 50
)

// builtinRule implements Rule with a closure, mirroring how the rule set is
// assembled in BuiltinRules.
type builtinRule struct {
	ruleKey  string
	ruleName string
	severity Severity
	check    func(a *domain.DocumentAnalysis) []Finding
}

func (r *builtinRule) RuleKey() string  { return r.ruleKey }
func (r *builtinRule) RuleName() string { return r.ruleName }
func (r *builtinRule) Severity() Severity { return r.severity }
func (r *builtinRule) Check(a *domain.DocumentAnalysis) []Finding {
	return r.check(a)
}

// BuiltinRules returns the standard rule set. largeAmountThreshold comes from
// configuration; nowFn is injectable for tests.
func BuiltinRules(largeAmountThreshold float64, nowFn func() time.Time) []Rule {
	if nowFn == nil {
		nowFn = time.Now
	}
	return []Rule{
		&builtinRule{
			ruleKey: "math.totals", ruleName: "Math: Subtotal + Tax = Total",
			severity: SeverityError,
			check: func(a *domain.DocumentAnalysis) []Finding {
				sub, ok1 := normalize.ParseAmount(a.Field(domain.FieldSubtotal).Value)
				tax, ok2 := normalize.ParseAmount(a.Field(domain.FieldTaxAmount).Value)
				total, ok3 := normalize.ParseAmount(a.Field(domain.FieldTotalAmount).Value)
				if !ok1 || !ok2 || !ok3 {
					return nil
				}
				if math.Abs(sub+tax-total) <= mathEpsilon {
					return nil
				}
				return []Finding{{
					RuleKey:       "math.totals",
					FieldName:     domain.FieldTaxAmount,
					Message:       fmt.Sprintf("subtotal %.2f + tax %.2f does not match total %.2f", sub, tax, total),
					CapConfidence: taxMismatchCap,
				}}
			},
		},
		&builtinRule{
			ruleKey: "date.window", ruleName: "Date: Plausible Window",
			severity: SeverityWarning,
			check: func(a *domain.DocumentAnalysis) []Finding {
				now := nowFn()
				var findings []Finding
				for _, name := range []string{domain.FieldTransactionDate, domain.FieldInvoiceDate} {
					f := a.Field(name)
					t, ok := normalize.FieldTime(f)
					if !ok {
						continue
					}
					if t.Before(now.Add(-pastWindow)) || t.After(now.Add(futureWindow)) {
						findings = append(findings, Finding{
							RuleKey:       "date.window",
							FieldName:     name,
							Message:       fmt.Sprintf("%s %s is outside the expected window", name, f.Value),
							CapConfidence: dateWindowCap,
						})
					}
				}
				return findings
			},
		},
		&builtinRule{
			ruleKey: "amount.large", ruleName: "Amount: Large Value Review",
			severity: SeverityWarning,
			check: func(a *domain.DocumentAnalysis) []Finding {
				total, ok := normalize.ParseAmount(a.Field(domain.FieldTotalAmount).Value)
				if !ok || total <= largeAmountThreshold {
					return nil
				}
				// Flag only; large amounts are legitimate but deserve a human look.
				return []Finding{{
					RuleKey:   "amount.large",
					FieldName: domain.FieldTotalAmount,
					Message:   fmt.Sprintf("total %.2f exceeds the large-amount threshold; review recommended", total),
				}}
			},
		},
		&builtinRule{
			ruleKey: "vendor.name_length", ruleName: "Vendor: Name Length",
			severity: SeverityWarning,
			check: func(a *domain.DocumentAnalysis) []Finding {
				f := a.Field(domain.FieldVendorName)
				if f.Value == "" {
					return nil
				}
				if len(f.Value) >= minVendorNameLen && len(f.Value) <= maxVendorNameLen {
					return nil
				}
				return []Finding{{
					RuleKey:       "vendor.name_length",
					FieldName:     domain.FieldVendorName,
					Message:       fmt.Sprintf("vendor name length %d is outside %d..%d", len(f.Value), minVendorNameLen, maxVendorNameLen),
					CapConfidence: vendorLengthCap,
				}}
			},
		},
	}
}
