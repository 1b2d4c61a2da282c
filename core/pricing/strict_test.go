package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"plan-pricing/internal/errors"
)

func TestParseAcceptsValidRecord(t *testing.T) {
	p, err := Parse(map[string]any{
		"plan_id":       "pro",
		"licenses":      3,
		"monthly_price": "9.99",
		"annual_price":  0,
		"currency":      "usd",
		"is_hidden":     false,
	})
	require.NoError(t, err)
	assert.Equal(t, "3 Sites", p.SitesLabel())
}

func TestValidateReportsEveryViolation(t *testing.T) {
	p := New(map[string]any{
		"licenses":       0,
		"monthly_price":  "abc",
		"annual_price":   -5,
		"lifetime_price": 10,
		"currency":       "dollars",
		"is_hidden":      "no",
	})

	err := p.Validate()
	require.Error(t, err)

	errs := multierr.Errors(err)
	assert.Len(t, errs, 5)

	fields := make([]any, 0, len(errs))
	for _, e := range errs {
		assert.True(t, errors.IsType(e, errors.TypeInput), e.Error())
		fields = append(fields, e.(*errors.Error).Context["field"])
	}
	assert.ElementsMatch(t, []any{"is_hidden", "monthly_price", "annual_price", "licenses", "currency"}, fields)
}

func TestParseRejectsMistypedLicenses(t *testing.T) {
	_, err := Parse(map[string]any{"licenses": 2.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "licenses")
}

func TestMonthlyCost(t *testing.T) {
	tests := []struct {
		name  string
		p     *Pricing
		cycle BillingCycle
		want  string
	}{
		{name: "monthly", p: &Pricing{MonthlyPrice: "9.99"}, cycle: Monthly, want: "9.99"},
		{name: "monthly from annual", p: &Pricing{AnnualPrice: "119.88"}, cycle: Monthly, want: "9.99"},
		{name: "annual", p: &Pricing{MonthlyPrice: 15, AnnualPrice: 144}, cycle: Annual, want: "12"},
		{name: "annual from monthly", p: &Pricing{MonthlyPrice: 15}, cycle: Annual, want: "15"},
		{name: "large amount keeps precision", p: &Pricing{MonthlyPrice: 1234.5}, cycle: Monthly, want: "1234.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.p.MonthlyCost(tt.cycle)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestMonthlyCostErrors(t *testing.T) {
	_, err := (&Pricing{PlanID: "free"}).MonthlyCost(Monthly)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypePricing))

	_, err = (&Pricing{LifetimePrice: 99}).MonthlyCost(Lifetime)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeNotSupported))
}

func TestPrice(t *testing.T) {
	p := &Pricing{MonthlyPrice: 0, LifetimePrice: "299"}

	_, ok := p.Price(Monthly)
	assert.False(t, ok)

	d, ok := p.Price(Lifetime)
	require.True(t, ok)
	assert.Equal(t, "299", d.String())
}
