package numeric

import (
	"math"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultPrecision is the number of fraction digits used for display.
const DefaultPrecision = 2

// Formatter renders amounts for display using locale digit grouping.
type Formatter struct {
	printer   *message.Printer
	locale    language.Tag
	precision int
}

// NewFormatter creates a formatter for a BCP 47 locale. Unknown or empty
// locales fall back to English; negative precision falls back to the default.
func NewFormatter(locale string, precision int) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.English
	}
	if precision < 0 {
		precision = DefaultPrecision
	}
	return &Formatter{
		printer:   message.NewPrinter(tag),
		locale:    tag,
		precision: precision,
	}
}

// Locale returns the formatter's language tag.
func (f *Formatter) Locale() language.Tag {
	return f.locale
}

// Precision returns the number of fraction digits rendered.
func (f *Formatter) Precision() int {
	return f.precision
}

// Format renders v with grouping separators and a fixed number of fraction
// digits. v is coerced with ToNumber first, so numeric strings are accepted.
func (f *Formatter) Format(v any) string {
	x := ToNumber(v)
	switch {
	case math.IsNaN(x):
		return "NaN"
	case math.IsInf(x, 1):
		return "Infinity"
	case math.IsInf(x, -1):
		return "-Infinity"
	}

	rounded := decimal.NewFromFloat(x).Round(int32(f.precision)).InexactFloat64()
	return f.printer.Sprint(number.Decimal(rounded, number.Scale(f.precision)))
}

var defaultFormatter atomic.Pointer[Formatter]

func init() {
	defaultFormatter.Store(NewFormatter("en", DefaultPrecision))
}

// Default returns the process-wide formatter.
func Default() *Formatter {
	return defaultFormatter.Load()
}

// SetDefault replaces the process-wide formatter.
func SetDefault(f *Formatter) {
	if f != nil {
		defaultFormatter.Store(f)
	}
}

// FormatNumber renders v with the process-wide formatter.
func FormatNumber(v any) string {
	return Default().Format(v)
}
