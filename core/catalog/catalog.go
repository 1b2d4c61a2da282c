// Package catalog loads plan pricing records from catalog files.
// JSON catalogs hold an array of plan objects (or {"plans": [...]});
// HCL catalogs hold labelled plan blocks.
package catalog

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"plan-pricing/core/pricing"
	"plan-pricing/core/types"
	"plan-pricing/internal/errors"
	"plan-pricing/internal/logging"
)

// Catalog is an ordered set of plans.
type Catalog struct {
	// Source is the file the catalog was loaded from
	Source string

	// Plans are kept in file order
	Plans []*pricing.Pricing

	byID map[types.PlanID]*pricing.Pricing
}

// Option configures a Loader
type Option func(*Loader)

// WithStrict validates every plan after loading.
func WithStrict(strict bool) Option {
	return func(l *Loader) {
		l.strict = strict
	}
}

// Loader reads catalogs from disk.
type Loader struct {
	strict bool
}

// NewLoader creates a loader
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the catalog at path using a default loader.
func Load(path string) (*Catalog, error) {
	return NewLoader().Load(path)
}

// Load reads and parses the catalog at path. The format is chosen by file
// extension: .hcl for HCL, anything else is treated as JSON.
func (l *Loader) Load(path string) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Parsing("failed to read catalog", err).WithContext("file", path)
	}
	return l.Parse(path, src)
}

// Parse parses catalog source. filename selects the format and is used in
// error messages.
func (l *Loader) Parse(filename string, src []byte) (*Catalog, error) {
	var (
		plans []*pricing.Pricing
		err   error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".hcl":
		plans, err = parseHCL(filename, src)
	default:
		plans, err = parseJSON(filename, src)
	}
	if err != nil {
		return nil, err
	}

	if l.strict {
		var verr error
		for _, p := range plans {
			if err := p.Validate(); err != nil {
				verr = multierr.Append(verr, errors.Wrapf(errors.TypeInput, err, "plan %q", p.PlanID))
			}
		}
		if verr != nil {
			return nil, verr
		}
	}

	c := newCatalog(filename, plans)
	logging.Debug("catalog loaded",
		zap.String("file", filename),
		zap.Int("plans", len(c.Plans)),
	)
	return c, nil
}

func newCatalog(source string, plans []*pricing.Pricing) *Catalog {
	c := &Catalog{
		Source: source,
		Plans:  plans,
		byID:   make(map[types.PlanID]*pricing.Pricing, len(plans)),
	}
	for _, p := range plans {
		if p.PlanID.IsZero() {
			continue
		}
		if _, dup := c.byID[p.PlanID]; dup {
			logging.Warn("duplicate plan id in catalog, keeping the first",
				zap.String("file", source),
				zap.String("plan_id", p.PlanID.String()),
			)
			continue
		}
		c.byID[p.PlanID] = p
	}
	return c
}

// Find returns the plan with the given id.
func (c *Catalog) Find(id types.PlanID) (*pricing.Pricing, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Visible returns the plans not flagged as hidden.
func (c *Catalog) Visible() []*pricing.Pricing {
	out := make([]*pricing.Pricing, 0, len(c.Plans))
	for _, p := range c.Plans {
		if p.IsHidden != nil && *p.IsHidden {
			continue
		}
		out = append(out, p)
	}
	return out
}

type jsonEnvelope struct {
	Plans []*pricing.Pricing `json:"plans"`
}

func parseJSON(filename string, src []byte) ([]*pricing.Pricing, error) {
	trimmed := bytes.TrimSpace(src)
	if len(trimmed) == 0 {
		return nil, errors.Parsing("catalog is empty", nil).WithContext("file", filename)
	}

	var plans []*pricing.Pricing
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &plans); err != nil {
			return nil, errors.Parsing("invalid JSON catalog", err).WithContext("file", filename)
		}
	case '{':
		var env jsonEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return nil, errors.Parsing("invalid JSON catalog", err).WithContext("file", filename)
		}
		plans = env.Plans
	default:
		return nil, errors.Parsing("JSON catalog must be an array or an object with a plans key", nil).
			WithContext("file", filename)
	}

	for i, p := range plans {
		if p == nil {
			return nil, errors.Newf(errors.TypeParsing, "plan at index %d is null", i).WithContext("file", filename)
		}
	}
	return plans, nil
}
