// Package pricing models a subscription plan's price tiers and the
// derived queries shown to buyers: per-cycle amounts, per-month
// equivalents, free detection and the licensed site count.
package pricing

import (
	"fmt"
	"strings"

	"plan-pricing/core/numeric"
	"plan-pricing/internal/errors"
)

// BillingCycle is a billing period code. Its value is the number of months
// the period covers; Lifetime is 0 because it never renews.
type BillingCycle int

const (
	Lifetime BillingCycle = 0
	Monthly  BillingCycle = 1
	Annual   BillingCycle = 12
)

const (
	periodMonthly  = "monthly"
	periodAnnual   = "annual"
	periodLifetime = "lifetime"
)

var billingCycles = map[string]BillingCycle{
	"MONTHLY":  Monthly,
	"ANNUAL":   Annual,
	"LIFETIME": Lifetime,
}

// BillingCycles returns the enumeration name -> code table.
func BillingCycles() map[string]BillingCycle {
	out := make(map[string]BillingCycle, len(billingCycles))
	for k, v := range billingCycles {
		out[k] = v
	}
	return out
}

// Months returns the month multiplier for the cycle.
func (c BillingCycle) Months() int {
	return int(c)
}

// Period returns the lower-case period name. Unrecognised codes are
// reported as monthly.
func (c BillingCycle) Period() string {
	switch c {
	case Annual:
		return periodAnnual
	case Lifetime:
		return periodLifetime
	default:
		return periodMonthly
	}
}

// String returns the period name
func (c BillingCycle) String() string {
	return c.Period()
}

// ParseBillingCycle accepts a period name ("annual") or an enumeration
// name ("ANNUAL"), case-insensitively.
func ParseBillingCycle(name string) (BillingCycle, error) {
	c, ok := billingCycles[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.Newf(errors.TypeInput, "unknown billing cycle %q", name).
			WithContext("accepted", []string{periodMonthly, periodAnnual, periodLifetime})
	}
	return c, nil
}

// BillingCyclePeriod maps a numeric cycle code to its period name and
// returns non-numeric values unchanged, so already-symbolic names pass
// through. A numeric string such as "12" is not a cycle code and maps to
// monthly like any other unknown code.
func BillingCyclePeriod(v any) string {
	if !numeric.IsNumeric(v) {
		switch x := v.(type) {
		case nil:
			return ""
		case string:
			return x
		default:
			return fmt.Sprint(x)
		}
	}

	if _, isString := v.(string); isString {
		return periodMonthly
	}

	switch numeric.ToNumber(v) {
	case float64(Annual):
		return periodAnnual
	case float64(Lifetime):
		return periodLifetime
	default:
		return periodMonthly
	}
}

// priceKey returns the record key holding the price for a period name.
func priceKey(period string) string {
	return period + "_price"
}
