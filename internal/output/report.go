package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/firebird-suite/nest/internal/schema"
	"github.com/simonhull/firebird-suite/nest/internal/structure"
)

// Format is a rendering mode
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ResolveFormat turns a configured output value into a Format.
// "auto" (or anything unknown) selects text on a terminal and JSON otherwise.
func ResolveFormat(setting string, w io.Writer) Format {
	switch strings.ToLower(setting) {
	case string(FormatJSON):
		return FormatJSON
	case string(FormatText):
		return FormatText
	}
	if IsTerminal(w) {
		return FormatText
	}
	return FormatJSON
}

// Reporter renders results and failures in one format
type Reporter struct {
	out     io.Writer
	format  Format
	printer *Printer
}

// NewReporter creates a Reporter writing to out
func NewReporter(out io.Writer, format Format, verbose bool) *Reporter {
	return &Reporter{
		out:     out,
		format:  format,
		printer: NewPrinter(out, verbose),
	}
}

// Format returns the rendering mode
func (r *Reporter) Format() Format {
	return r.format
}

// Info prints a progress message. JSON output stays a single payload, so
// it is dropped there.
func (r *Reporter) Info(msg string) {
	if r.format == FormatText {
		r.printer.Info(msg)
	}
}

// Verbose prints a debug message in text output when verbose mode is on.
func (r *Reporter) Verbose(msg string) {
	if r.format == FormatText {
		r.printer.Verbose(msg)
	}
}

// Result renders a validation result
func (r *Reporter) Result(result *schema.Result) error {
	if r.format == FormatJSON {
		return r.writeJSON(result)
	}

	if result.Valid() {
		r.printer.Success("Valid structure")
		return nil
	}

	r.printer.Error(fmt.Sprintf("Invalid structure: %d error(s)", len(result.Errors)))
	for i := range result.Errors {
		fmt.Fprintln(r.out)
		for _, line := range strings.Split(result.Errors[i].Printable(), "\n") {
			r.printer.Step(line)
		}
	}
	return nil
}

// Failure renders a fatal run error
func (r *Reporter) Failure(err error) error {
	failure := structure.Describe(err)

	if r.format == FormatJSON {
		return r.writeJSON(struct {
			Valid bool              `json:"valid"`
			Error structure.Failure `json:"error"`
		}{Error: failure})
	}

	r.printer.Error(fmt.Sprintf("%s error: %s", strings.ReplaceAll(failure.Kind, "_", " "), failure.Message))
	if failure.Path != "" {
		r.printer.Step("Path: " + failure.Path)
	}
	return nil
}

func (r *Reporter) writeJSON(v any) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}
