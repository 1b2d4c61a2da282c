// Package output renders plan summaries for humans and machines.
package output

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"plan-pricing/core/pricing"
	"plan-pricing/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render writes the summaries to w
	Render(w io.Writer, summaries []Summary) error
}

// Summary is the display row for one plan at one billing cycle.
type Summary struct {
	// PlanID identifies the plan
	PlanID string `json:"plan_id"`

	// Sites is the licensed site label
	Sites string `json:"sites"`

	// Currency is the effective currency code
	Currency string `json:"currency"`

	// Symbol is the currency display glyph
	Symbol string `json:"symbol"`

	// Cycle is the billing period shown
	Cycle string `json:"cycle"`

	// Amount is the formatted price at Cycle ("" when not offered)
	Amount string `json:"amount,omitempty"`

	// Monthly is the exact per-month equivalent ("" when none)
	Monthly string `json:"monthly,omitempty"`

	// Free is set when no cycle carries a price
	Free bool `json:"free"`

	// Hidden mirrors the plan's display hint
	Hidden bool `json:"hidden,omitempty"`

	// Offered lists the periods the plan is sold at
	Offered []string `json:"offered,omitempty"`
}

// Summarize builds the display row for p at cycle. Amounts that are not
// offered are left empty rather than shown as NaN.
func Summarize(p *pricing.Pricing, cycle pricing.BillingCycle) Summary {
	s := Summary{
		PlanID:   p.PlanID.String(),
		Sites:    p.SitesLabel(),
		Currency: string(p.CurrencyCode().Upper()),
		Symbol:   p.CurrencySymbol(),
		Cycle:    cycle.Period(),
		Free:     p.IsFree(),
		Hidden:   p.IsHidden != nil && *p.IsHidden,
	}

	if _, ok := p.Price(cycle); ok {
		s.Amount = p.FormattedAmount(cycle)
	}
	if monthly, err := p.MonthlyCost(cycle); err == nil {
		s.Monthly = monthly.StringFixed(2)
	}
	for _, c := range p.OfferedCycles() {
		s.Offered = append(s.Offered, c.Period())
	}
	return s
}

// SummarizeAll summarizes every plan at the same cycle.
func SummarizeAll(plans []*pricing.Pricing, cycle pricing.BillingCycle) []Summary {
	out := make([]Summary, 0, len(plans))
	for _, p := range plans {
		out = append(out, Summarize(p, cycle))
	}
	return out
}

// Registry manages formatter registration
type Registry struct {
	mu         sync.RWMutex
	formatters map[Format]Formatter
}

// NewRegistry creates a registry holding the built-in formatters.
func NewRegistry() *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	_ = r.Register(&CLIFormatter{})
	_ = r.Register(&JSONFormatter{Indent: "  "})
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.formatters[f.Format()]; exists {
		return errors.Newf(errors.TypeInternal, "formatter already registered: %s", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// Get returns the formatter for a format name.
func (r *Registry) Get(format Format) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.NotSupported(fmt.Sprintf("output format %q", format))
	}
	return f, nil
}

// Formats returns the registered format names, sorted.
func (r *Registry) Formats() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Format, 0, len(r.formatters))
	for f := range r.formatters {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
