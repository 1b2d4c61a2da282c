package pricing

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"plan-pricing/core/numeric"
	"plan-pricing/core/types"
	"plan-pricing/internal/logging"
)

// Record keys understood by New.
const (
	KeyPlanID        = "plan_id"
	KeyLicenses      = "licenses"
	KeyMonthlyPrice  = "monthly_price"
	KeyAnnualPrice   = "annual_price"
	KeyLifetimePrice = "lifetime_price"
	KeyCurrency      = "currency"
	KeyIsHidden      = "is_hidden"
)

// Pricing is a plan's price tiers, licensing scope and currency.
//
// Prices keep the raw value the upstream record carried. A price counts as
// offered only when it is numeric and greater than zero; nil, zero, negative
// and non-numeric values all mean "not offered at this cycle".
type Pricing struct {
	// PlanID identifies the plan
	PlanID types.PlanID

	// Licenses is the number of licensed sites (nil = unlimited)
	Licenses *int

	// MonthlyPrice is the raw monthly price
	MonthlyPrice any

	// AnnualPrice is the raw annual price
	AnnualPrice any

	// LifetimePrice is the raw one-off lifetime price
	LifetimePrice any

	// Currency is the price currency (empty = DefaultCurrency)
	Currency types.Currency

	// IsHidden is a display hint only
	IsHidden *bool

	// Extra holds source keys that have no typed field, verbatim
	Extra map[string]any

	// numericID is set when the source carried plan_id as a number
	numericID bool
}

// New builds a Pricing from a decoded key-value record. A nil record yields
// a plan with every field absent. Unknown keys are kept in Extra. A known
// key whose value does not fit its typed field is also kept in Extra under
// its own name, so nothing from the source is lost; New never fails.
func New(source map[string]any) *Pricing {
	p := &Pricing{}
	if source == nil {
		return p
	}

	for key, value := range source {
		if !p.assign(key, value) {
			p.setExtra(key, value)
		}
	}
	return p
}

// assign stores value into the typed field for key. It reports false when
// key has no typed field or value cannot be represented by it.
func (p *Pricing) assign(key string, value any) bool {
	switch key {
	case KeyPlanID:
		id, ok := types.PlanIDFrom(value)
		if !ok {
			logDropped(key, value)
			return false
		}
		p.PlanID = id
		switch value.(type) {
		case nil, string, types.PlanID:
			p.numericID = false
		default:
			p.numericID = true
		}
	case KeyLicenses:
		if value == nil {
			p.Licenses = nil
			return true
		}
		n, ok := numeric.IsInteger(value)
		if !ok {
			logDropped(key, value)
			return false
		}
		p.Licenses = &n
	case KeyMonthlyPrice:
		p.MonthlyPrice = value
	case KeyAnnualPrice:
		p.AnnualPrice = value
	case KeyLifetimePrice:
		p.LifetimePrice = value
	case KeyCurrency:
		switch c := value.(type) {
		case nil:
			p.Currency = ""
		case string:
			p.Currency = types.Currency(c)
		case types.Currency:
			p.Currency = c
		default:
			logDropped(key, value)
			return false
		}
	case KeyIsHidden:
		switch b := value.(type) {
		case nil:
			p.IsHidden = nil
		case bool:
			p.IsHidden = &b
		default:
			logDropped(key, value)
			return false
		}
	default:
		return false
	}
	return true
}

func (p *Pricing) setExtra(key string, value any) {
	if p.Extra == nil {
		p.Extra = make(map[string]any)
	}
	p.Extra[key] = value
}

func logDropped(key string, value any) {
	logging.Debug("plan field kept as extra: unexpected value type",
		zap.String("field", key),
		zap.String("type", fmt.Sprintf("%T", value)),
	)
}

// Field returns the value the record holds under key. Known keys always
// exist (their value may be nil); other keys exist only if the source
// carried them.
func (p *Pricing) Field(key string) (any, bool) {
	if v, ok := p.Extra[key]; ok {
		return v, true
	}

	switch key {
	case KeyPlanID:
		if p.PlanID.IsZero() {
			return nil, true
		}
		if p.numericID {
			return json.Number(p.PlanID), true
		}
		return p.PlanID, true
	case KeyLicenses:
		if p.Licenses == nil {
			return nil, true
		}
		return *p.Licenses, true
	case KeyMonthlyPrice:
		return p.MonthlyPrice, true
	case KeyAnnualPrice:
		return p.AnnualPrice, true
	case KeyLifetimePrice:
		return p.LifetimePrice, true
	case KeyCurrency:
		if p.Currency.IsZero() {
			return nil, true
		}
		return p.Currency, true
	case KeyIsHidden:
		if p.IsHidden == nil {
			return nil, true
		}
		return *p.IsHidden, true
	}
	return nil, false
}

// Record returns the plan as a key-value record: every non-nil known field
// plus Extra. A plan_id that arrived as a number is returned as a
// json.Number so it encodes as a JSON number again. New(p.Record())
// reproduces p.
func (p *Pricing) Record() map[string]any {
	out := make(map[string]any, len(p.Extra)+7)
	for k, v := range p.Extra {
		out[k] = v
	}
	for _, key := range []string{KeyPlanID, KeyLicenses, KeyMonthlyPrice, KeyAnnualPrice, KeyLifetimePrice, KeyCurrency, KeyIsHidden} {
		if _, isExtra := p.Extra[key]; isExtra {
			continue
		}
		if v, _ := p.Field(key); v != nil {
			out[key] = v
		}
	}
	return out
}

// MarshalJSON encodes the plan as its flat record.
func (p *Pricing) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Record())
}

// UnmarshalJSON decodes a flat JSON object through New. Numbers are kept as
// json.Number so prices do not lose precision before decimal arithmetic.
func (p *Pricing) UnmarshalJSON(data []byte) error {
	source, err := decodeRecord(data)
	if err != nil {
		return err
	}
	*p = *New(source)
	return nil
}

// CurrencyCode returns the plan currency or the default currency.
func (p *Pricing) CurrencyCode() types.Currency {
	return p.Currency.OrDefault()
}

// CurrencySymbol returns the display glyph for the plan currency.
func (p *Pricing) CurrencySymbol() string {
	return p.CurrencyCode().Symbol()
}

// Amount returns the price for a cycle parsed as a float. Absent or
// non-numeric prices yield NaN; a cycle with no price field yields 0.
func (p *Pricing) Amount(cycle BillingCycle) float64 {
	var amount any = 0.0

	switch cycle {
	case Monthly:
		amount = p.MonthlyPrice
	case Annual:
		amount = p.AnnualPrice
	case Lifetime:
		amount = p.LifetimePrice
	}

	return numeric.ParseFloat(amount)
}

// FormattedAmount returns Amount rendered by the number formatter.
func (p *Pricing) FormattedAmount(cycle BillingCycle) string {
	return numeric.FormatNumber(p.Amount(cycle))
}

// MonthlyAmount returns the per-month cost of a cycle. A monthly cycle
// falls back to annual/12 and an annual cycle falls back to the monthly
// price. Other cycles have no per-month equivalent and yield 0.
//
// With format set the amount is rendered and the rendered text parsed
// back, so grouped values lose everything after the first separator
// ("1,234.50" becomes 1). Callers that need the exact value should use
// MonthlyCost.
func (p *Pricing) MonthlyAmount(cycle BillingCycle, format bool) float64 {
	var amount any = 0.0

	switch cycle {
	case Monthly:
		if p.HasMonthlyPrice() {
			amount = p.MonthlyPrice
		} else {
			amount = numeric.ToNumber(p.AnnualPrice) / 12
		}
	case Annual:
		if p.HasAnnualPrice() {
			amount = numeric.ToNumber(p.AnnualPrice) / 12
		} else {
			amount = p.MonthlyPrice
		}
	}

	if format {
		amount = numeric.FormatNumber(amount)
	}

	return numeric.ParseFloat(amount)
}

func isPositivePrice(v any) bool {
	return numeric.IsNumeric(v) && numeric.ToNumber(v) > 0
}

// HasMonthlyPrice reports whether a monthly price is offered.
func (p *Pricing) HasMonthlyPrice() bool {
	return isPositivePrice(p.MonthlyPrice)
}

// HasAnnualPrice reports whether an annual price is offered.
func (p *Pricing) HasAnnualPrice() bool {
	return isPositivePrice(p.AnnualPrice)
}

// HasLifetimePrice reports whether a lifetime price is offered.
func (p *Pricing) HasLifetimePrice() bool {
	return isPositivePrice(p.LifetimePrice)
}

// IsFree reports whether no cycle carries a price.
func (p *Pricing) IsFree() bool {
	return !p.HasMonthlyPrice() &&
		!p.HasAnnualPrice() &&
		!p.HasLifetimePrice()
}

// IsSingleSite reports whether the plan licenses exactly one site.
func (p *Pricing) IsSingleSite() bool {
	return p.Licenses != nil && *p.Licenses == 1
}

// IsUnlimited reports whether the plan has no license limit. Only an
// absent or null licenses value is unlimited; a mistyped one is not.
func (p *Pricing) IsUnlimited() bool {
	if _, ok := p.rawLicenses(); ok {
		return false
	}
	return p.Licenses == nil
}

// rawLicenses returns a licenses value New could not store as an integer.
func (p *Pricing) rawLicenses() (any, bool) {
	v, ok := p.Extra[KeyLicenses]
	return v, ok && v != nil
}

// SitesLabel returns "Single Site", "Unlimited Sites" or "<n> Sites".
// A non-integer licenses value is shown as given ("many Sites").
func (p *Pricing) SitesLabel() string {
	switch {
	case p.IsSingleSite():
		return "Single Site"
	case p.IsUnlimited():
		return "Unlimited Sites"
	}
	if raw, ok := p.rawLicenses(); ok {
		return fmt.Sprint(raw) + " Sites"
	}
	return fmt.Sprintf("%d Sites", *p.Licenses)
}

// SupportsBillingCycle reports whether the record has a non-nil
// "<period>_price" field. period is the lower-case name ("monthly"), not
// a BillingCycle code.
func (p *Pricing) SupportsBillingCycle(period string) bool {
	v, ok := p.Field(priceKey(period))
	return ok && v != nil
}

// OfferedCycles returns the cycles that carry a price, in display order.
func (p *Pricing) OfferedCycles() []BillingCycle {
	var cycles []BillingCycle
	if p.HasMonthlyPrice() {
		cycles = append(cycles, Monthly)
	}
	if p.HasAnnualPrice() {
		cycles = append(cycles, Annual)
	}
	if p.HasLifetimePrice() {
		cycles = append(cycles, Lifetime)
	}
	return cycles
}
