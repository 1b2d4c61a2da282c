// Package numeric provides the number checks and coercions used by plan
// pricing. Upstream plan records are loosely typed (prices may arrive as
// numbers, numeric strings, garbage or nothing), so every function here
// accepts any value and never fails; invalid input degrades to NaN or false.
package numeric

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// floatPrefix matches the longest prefix a lenient float parser accepts.
var floatPrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// IsNumeric reports whether v can be interpreted as a finite number.
// Booleans and nil are not numeric; numeric strings are.
func IsNumeric(v any) bool {
	switch x := v.(type) {
	case nil, bool:
		return false
	case string:
		return isNumericString(x)
	case json.Number:
		return isNumericString(x.String())
	case float64:
		return !math.IsNaN(x) && !math.IsInf(x, 0)
	case float32:
		return IsNumeric(float64(x))
	case decimal.Decimal:
		return !math.IsInf(x.InexactFloat64(), 0)
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func isNumericString(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
	if err != nil {
		return false
	}
	// "1e400" is a valid decimal but overflows float64.
	return !math.IsInf(d.InexactFloat64(), 0)
}

// ToNumber coerces v the way an arithmetic operator would: nil and blank
// strings become 0, booleans 0 or 1, and anything unparsable NaN.
func ToNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		return stringToNumber(x)
	case json.Number:
		return stringToNumber(x.String())
	case decimal.Decimal:
		return x.InexactFloat64()
	}

	if f, ok := asFloat(v); ok {
		return f
	}
	return math.NaN()
}

func stringToNumber(s string) float64 {
	s = strings.TrimSpace(s)
	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	d, err := decimal.NewFromString(strings.TrimPrefix(s, "+"))
	if err != nil {
		return math.NaN()
	}
	return d.InexactFloat64()
}

// ParseFloat parses the longest numeric prefix of v's textual form, so
// "12abc" is 12 and "1,234.50" is 1. nil, booleans and strings without a
// numeric prefix yield NaN. Numbers pass through unchanged.
func ParseFloat(v any) float64 {
	switch x := v.(type) {
	case nil, bool:
		return math.NaN()
	case string:
		return parseFloatPrefix(x)
	case json.Number:
		return parseFloatPrefix(x.String())
	case decimal.Decimal:
		return x.InexactFloat64()
	}

	if f, ok := asFloat(v); ok {
		return f
	}
	return parseFloatPrefix(fmt.Sprint(v))
}

func parseFloatPrefix(s string) float64 {
	m := floatPrefix.FindString(strings.TrimLeft(s, " \t\n\r\v\f"))
	if m == "" {
		return math.NaN()
	}
	switch strings.TrimLeft(m, "+-") {
	case "Infinity":
		if strings.HasPrefix(m, "-") {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}
	// Out-of-range input still yields ±Inf, which is what we want.
	f, _ := strconv.ParseFloat(m, 64)
	return f
}

// asFloat converts Go numeric kinds to float64.
func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// IsInteger reports whether v is numeric and has no fractional part.
func IsInteger(v any) (int, bool) {
	if !IsNumeric(v) {
		return 0, false
	}
	f := ToNumber(v)
	if f != math.Trunc(f) || f > math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}

// Decimal converts a numeric value into an exact decimal. Strings are parsed
// directly so "9.99" does not pick up binary rounding noise.
func Decimal(v any) (decimal.Decimal, bool) {
	if !IsNumeric(v) {
		return decimal.Zero, false
	}
	switch x := v.(type) {
	case decimal.Decimal:
		return x, true
	case string:
		d, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(x), "+"))
		return d, err == nil
	case json.Number:
		d, err := decimal.NewFromString(x.String())
		return d, err == nil
	}
	f, _ := asFloat(v)
	return decimal.NewFromFloat(f), true
}
