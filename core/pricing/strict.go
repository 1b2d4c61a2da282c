package pricing

import (
	"bytes"
	"encoding/json"
	"regexp"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"plan-pricing/core/numeric"
	"plan-pricing/internal/errors"
)

var currencyCode = regexp.MustCompile(`^[A-Za-z]{3}$`)

var twelve = decimal.NewFromInt(12)

func decodeRecord(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var source map[string]any
	if err := dec.Decode(&source); err != nil {
		return nil, errors.Parsing("invalid plan record", err)
	}
	return source, nil
}

// Parse builds a Pricing like New and then validates it.
func Parse(source map[string]any) (*Pricing, error) {
	p := New(source)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the record against the stricter schema: prices must be
// absent or non-negative numbers, licenses a positive integer, the currency
// a three-letter code and the remaining known keys well typed. Every
// violation is reported; use multierr.Errors to list them.
func (p *Pricing) Validate() error {
	var err error

	for _, key := range []string{KeyPlanID, KeyLicenses, KeyCurrency, KeyIsHidden} {
		if v, ok := p.Extra[key]; ok {
			err = multierr.Append(err, invalidField(key, v, "unexpected value type"))
		}
	}

	prices := []struct {
		key   string
		value any
	}{
		{KeyMonthlyPrice, p.MonthlyPrice},
		{KeyAnnualPrice, p.AnnualPrice},
		{KeyLifetimePrice, p.LifetimePrice},
	}
	for _, price := range prices {
		if price.value == nil {
			continue
		}
		if !numeric.IsNumeric(price.value) {
			err = multierr.Append(err, invalidField(price.key, price.value, "price is not numeric"))
			continue
		}
		if numeric.ToNumber(price.value) < 0 {
			err = multierr.Append(err, invalidField(price.key, price.value, "price is negative"))
		}
	}

	if p.Licenses != nil && *p.Licenses < 1 {
		err = multierr.Append(err, invalidField(KeyLicenses, *p.Licenses, "licenses must be a positive integer"))
	}

	if !p.Currency.IsZero() && !currencyCode.MatchString(string(p.Currency)) {
		err = multierr.Append(err, invalidField(KeyCurrency, p.Currency, "currency must be a three-letter code"))
	}

	return err
}

func invalidField(key string, value any, reason string) *errors.Error {
	return errors.Newf(errors.TypeInput, "%s: %s", key, reason).
		WithContext("field", key).
		WithContext("value", value)
}

// MonthlyCost is the exact counterpart of MonthlyAmount: it applies the
// same fallbacks using decimal arithmetic and reports an error instead of
// degrading to NaN or 0.
func (p *Pricing) MonthlyCost(cycle BillingCycle) (decimal.Decimal, error) {
	monthly, hasMonthly := positiveDecimal(p.MonthlyPrice)
	annual, hasAnnual := positiveDecimal(p.AnnualPrice)

	switch cycle {
	case Monthly:
		if hasMonthly {
			return monthly, nil
		}
		if hasAnnual {
			return annual.Div(twelve), nil
		}
	case Annual:
		if hasAnnual {
			return annual.Div(twelve), nil
		}
		if hasMonthly {
			return monthly, nil
		}
	default:
		return decimal.Zero, errors.NotSupported("per-month cost of a " + cycle.Period() + " cycle")
	}

	return decimal.Zero, errors.Pricing("plan has neither a monthly nor an annual price").
		WithContext("plan_id", p.PlanID.String()).
		WithContext("cycle", cycle.Period())
}

// Price returns the exact price for a cycle, or false when it is not offered.
func (p *Pricing) Price(cycle BillingCycle) (decimal.Decimal, bool) {
	switch cycle {
	case Monthly:
		return positiveDecimal(p.MonthlyPrice)
	case Annual:
		return positiveDecimal(p.AnnualPrice)
	case Lifetime:
		return positiveDecimal(p.LifetimePrice)
	}
	return decimal.Zero, false
}

func positiveDecimal(v any) (decimal.Decimal, bool) {
	d, ok := numeric.Decimal(v)
	if !ok || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}
