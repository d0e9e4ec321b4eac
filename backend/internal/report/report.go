package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JustUsingaWebsite/nric-compare/backend/internal/csvops"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ErrUnknownFormat is returned for a format other than text, json or yaml.
var ErrUnknownFormat = errors.New("unknown report format")

// Input describes one side of the comparison as the user selected it.
type Input struct {
	File  string `json:"file" yaml:"file"`
	Sheet string `json:"sheet" yaml:"sheet"`
}

// Report is what a comparison run presents back to the user.
type Report struct {
	Old         Input                 `json:"old" yaml:"old"`
	New         Input                 `json:"new" yaml:"new"`
	Summary     csvops.CompareSummary `json:"summary" yaml:"summary"`
	Added       []string              `json:"added,omitempty" yaml:"added,omitempty"`
	Removed     []string              `json:"removed,omitempty" yaml:"removed,omitempty"`
	Output      string                `json:"output,omitempty" yaml:"output,omitempty"`
	OutputBytes int                   `json:"output_bytes,omitempty" yaml:"output_bytes,omitempty"`
	Preview     bool                  `json:"-" yaml:"-"`
}

var heading = color.New(color.Bold)

// SummaryLine renders the one-line count summary.
func SummaryLine(s csvops.CompareSummary) string {
	return fmt.Sprintf("Rows A: %s | Rows B: %s | New in Excel B: %s | Removed from Excel A: %s",
		humanize.Comma(int64(s.OldRows)),
		humanize.Comma(int64(s.NewRows)),
		humanize.Comma(int64(s.Added)),
		humanize.Comma(int64(s.Removed)),
	)
}

// Write renders r to w in the requested format.
func Write(w io.Writer, r Report, format string) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return writeText(w, r)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeText(w io.Writer, r Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Compare: %s [%s] -> %s [%s]\n", r.Old.File, r.Old.Sheet, r.New.File, r.New.Sheet)
	heading.Fprintln(&b, "Summary")
	b.WriteString(SummaryLine(r.Summary) + "\n")

	if r.Preview {
		writeList(&b, "New in Excel B", r.Added, "No new names found in Excel B.")
		writeList(&b, "Removed from Excel A", r.Removed, "No names removed from Excel A.")
	}

	if r.Output != "" {
		fmt.Fprintf(&b, "Wrote %s (%s)\n", r.Output, humanize.Bytes(uint64(r.OutputBytes)))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, title string, names []string, empty string) {
	heading.Fprintln(b, title)
	if len(names) == 0 {
		b.WriteString("  " + empty + "\n")
		return
	}
	for i, n := range names {
		fmt.Fprintf(b, "  %d. %s\n", i+1, n)
	}
}
