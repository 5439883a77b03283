// Package printer renders styled console output for notices and summaries.
package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Printer writes styled lines to a single writer.
type Printer struct {
	out io.Writer

	faintStyle   lipgloss.Style
	boldStyle    lipgloss.Style
	successStyle lipgloss.Style
	errorStyle   lipgloss.Style
	warningStyle lipgloss.Style
	infoStyle    lipgloss.Style
}

// New creates a Printer for w. When noColor is set every style renders
// plain text.
func New(w io.Writer, noColor bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		out:          w,
		faintStyle:   r.NewStyle().Faint(true),
		boldStyle:    r.NewStyle().Bold(true),
		successStyle: r.NewStyle().Foreground(lipgloss.Color("2")), // Green
		errorStyle:   r.NewStyle().Foreground(lipgloss.Color("1")), // Red
		warningStyle: r.NewStyle().Foreground(lipgloss.Color("3")), // Yellow
		infoStyle:    r.NewStyle().Foreground(lipgloss.Color("6")), // Cyan
	}
}

// IsTTY reports whether f is a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Render functions return styled strings without printing.

// Faint returns text with faint styling.
func (p *Printer) Faint(text string) string {
	return p.faintStyle.Render(text)
}

// Bold returns text with bold styling.
func (p *Printer) Bold(text string) string {
	return p.boldStyle.Render(text)
}

// Success returns text with success (green) styling.
func (p *Printer) Success(text string) string {
	return p.successStyle.Render(text)
}

// Error returns text with error (red) styling.
func (p *Printer) Error(text string) string {
	return p.errorStyle.Render(text)
}

// Warning returns text with warning (yellow) styling.
func (p *Printer) Warning(text string) string {
	return p.warningStyle.Render(text)
}

// Info returns text with info (cyan) styling.
func (p *Printer) Info(text string) string {
	return p.infoStyle.Render(text)
}

// Print functions write styled text followed by a newline.

// PrintFaint prints text with faint styling.
func (p *Printer) PrintFaint(text string) {
	fmt.Fprintln(p.out, p.Faint(text))
}

// PrintWarning prints text with warning (yellow) styling.
func (p *Printer) PrintWarning(text string) {
	fmt.Fprintln(p.out, p.Warning(text))
}
