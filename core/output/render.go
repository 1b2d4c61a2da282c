package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// CLIFormatter renders an aligned table.
type CLIFormatter struct{}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes one row per summary.
func (f *CLIFormatter) Render(w io.Writer, summaries []Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "PLAN\tSITES\tCYCLE\tPRICE\tPER MONTH\tOFFERED")
	for _, s := range summaries {
		plan := s.PlanID
		if plan == "" {
			plan = "-"
		}
		if s.Hidden {
			plan += " (hidden)"
		}

		price := "-"
		switch {
		case s.Free:
			price = "Free"
		case s.Amount != "":
			price = s.Symbol + s.Amount
		}

		monthly := "-"
		if s.Monthly != "" {
			monthly = s.Symbol + s.Monthly
		}

		offered := "-"
		if len(s.Offered) > 0 {
			offered = strings.Join(s.Offered, ", ")
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", plan, s.Sites, s.Cycle, price, monthly, offered)
	}

	return tw.Flush()
}

// JSONFormatter renders a JSON array.
type JSONFormatter struct {
	// Indent is used per nesting level; empty means compact output
	Indent string
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the summaries as a JSON array.
func (f *JSONFormatter) Render(w io.Writer, summaries []Summary) error {
	if summaries == nil {
		summaries = []Summary{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", f.Indent)
	return enc.Encode(summaries)
}
