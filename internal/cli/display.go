package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Status line symbols
const (
	SymbolOK     = "✓"
	SymbolFailed = "✗"
	SymbolStep   = "●"
)

// Styles contains the lipgloss styles for status output
type Styles struct {
	OK     lipgloss.Style
	Failed lipgloss.Style
	Step   lipgloss.Style
	Dim    lipgloss.Style
}

// DefaultStyles returns the default status styles
func DefaultStyles() Styles {
	return Styles{
		OK:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Failed: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Step:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// Printer writes colored status lines. Color is disabled when the
// destination is not a terminal.
type Printer struct {
	Out      io.Writer
	UseColor bool
	styles   Styles
}

// NewPrinter creates a Printer for stdout, enabling color only when
// stdout is a terminal.
func NewPrinter() *Printer {
	return &Printer{
		Out:      os.Stdout,
		UseColor: term.IsTerminal(int(os.Stdout.Fd())),
		styles:   DefaultStyles(),
	}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.UseColor {
		return s
	}
	return style.Render(s)
}

// Stepf prints a pipeline step status line.
func (p *Printer) Stepf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(p.Out, "%s %s\n", p.render(p.styles.Step, SymbolStep), msg)
}

// OKf prints a passing case line.
func (p *Printer) OKf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(p.Out, "%s %s\n", p.render(p.styles.OK, SymbolOK), msg)
}

// Failf prints a failing case line.
func (p *Printer) Failf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(p.Out, "%s %s\n", p.render(p.styles.Failed, SymbolFailed), msg)
}

// Dimf prints a secondary detail line, indented under its parent.
func (p *Printer) Dimf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(p.Out, "  %s\n", p.render(p.styles.Dim, msg))
}
