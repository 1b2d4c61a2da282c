package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrencySymbol(t *testing.T) {
	tests := []struct {
		in     Currency
		want   string
		wantOK bool
	}{
		{in: "USD", want: "$", wantOK: true},
		{in: "usd", want: "$", wantOK: true},
		{in: "GBP", want: "£", wantOK: true},
		{in: "eur", want: "€", wantOK: true},
		{in: "JPY", want: "", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := CurrencySymbol(tt.in)
		assert.Equal(t, tt.wantOK, ok, "CurrencySymbol(%q)", tt.in)
		assert.Equal(t, tt.want, got, "CurrencySymbol(%q)", tt.in)
	}
}

func TestCurrencySymbolFallsBackToCode(t *testing.T) {
	assert.Equal(t, "JPY", Currency("jpy").Symbol())
	assert.Equal(t, "$", Currency("usd").Symbol())
}

func TestCurrencyOrDefault(t *testing.T) {
	assert.Equal(t, DefaultCurrency, Currency("").OrDefault())
	assert.Equal(t, Currency("gbp"), Currency("gbp").OrDefault())
}

func TestKnownCurrenciesIsACopy(t *testing.T) {
	known := KnownCurrencies()
	known[0] = "XXX"

	s, ok := CurrencySymbol(CurrencyUSD)
	assert.True(t, ok)
	assert.Equal(t, "$", s)
}

func TestPlanIDFrom(t *testing.T) {
	tests := []struct {
		in   any
		want PlanID
	}{
		{in: "p1", want: "p1"},
		{in: 42, want: "42"},
		{in: float64(7), want: "7"},
		{in: json.Number("1001"), want: "1001"},
		{in: nil, want: ""},
	}

	for _, tt := range tests {
		got, ok := PlanIDFrom(tt.in)
		require.True(t, ok, "PlanIDFrom(%v)", tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, ok := PlanIDFrom([]string{"x"})
	assert.False(t, ok)
}

func TestPlanIDUnmarshalJSON(t *testing.T) {
	var ids []PlanID
	require.NoError(t, json.Unmarshal([]byte(`["pro", 12, null]`), &ids))
	assert.Equal(t, []PlanID{"pro", "12", ""}, ids)

	var bad PlanID
	assert.Error(t, json.Unmarshal([]byte(`{"id":1}`), &bad))
}
