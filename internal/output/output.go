package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Printer writes styled messages to one writer
type Printer struct {
	out     io.Writer
	verbose bool

	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	infoStyle    lipgloss.Style
	stepStyle    lipgloss.Style
}

// NewPrinter creates a Printer. Colors are only emitted when out is a terminal.
func NewPrinter(out io.Writer, verbose bool) *Printer {
	renderer := lipgloss.NewRenderer(out)

	return &Printer{
		out:          out,
		verbose:      verbose,
		successStyle: renderer.NewStyle().Foreground(lipgloss.Color("green")).Bold(true),
		errorStyle:   renderer.NewStyle().Foreground(lipgloss.Color("red")).Bold(true),
		infoStyle:    renderer.NewStyle().Foreground(lipgloss.Color("cyan")),
		stepStyle:    renderer.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Success prints a success message with ✅ in green.
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.out, p.successStyle.Render("✅ "+msg))
}

// Error prints an error message with ❌ in red.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.out, p.errorStyle.Render("❌ "+msg))
}

// Info prints an informational message in cyan.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.out, p.infoStyle.Render("ℹ️  "+msg))
}

// Step prints an indented step message in gray.
func (p *Printer) Step(msg string) {
	fmt.Fprintln(p.out, p.stepStyle.Render("   "+msg))
}

// Verbose prints a debug message only if verbose mode is enabled.
func (p *Printer) Verbose(msg string) {
	if p.verbose {
		fmt.Fprintln(p.out, p.stepStyle.Render("🔍 "+msg))
	}
}

// IsTerminal reports whether w is a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
