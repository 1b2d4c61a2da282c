package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := Input("licenses must be a positive integer")
	assert.Equal(t, "[INPUT_ERROR] licenses must be a positive integer", err.Error())

	wrapped := Parsing("failed to read plans.json", fmt.Errorf("permission denied"))
	assert.Equal(t, "[PARSING_ERROR] failed to read plans.json: permission denied", wrapped.Error())
}

func TestIsTypeFollowsWrapping(t *testing.T) {
	inner := Pricing("no monthly or annual price")
	outer := fmt.Errorf("plan p1: %w", inner)

	assert.True(t, IsType(outer, TypePricing))
	assert.False(t, IsType(outer, TypeInput))
	assert.False(t, IsType(nil, TypePricing))
}

func TestWithContext(t *testing.T) {
	err := Input("bad price").WithContext("field", "monthly_price").WithContext("value", -5)

	assert.Equal(t, "monthly_price", err.Context["field"])
	assert.Equal(t, -5, err.Context["value"])
	assert.True(t, err.Is(TypeInput))
}
