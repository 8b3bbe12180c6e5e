package report

import (
	"fmt"
	"io"
	"os"
)

// Printer writes progress messages during fetching and analysis. Results go
// to stdout; progress goes through the Printer to stderr so piped output
// stays clean.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to stderr.
func NewPrinter() *Printer {
	return &Printer{out: os.Stderr}
}

// NewPrinterTo creates a Printer writing to w.
func NewPrinterTo(w io.Writer) *Printer {
	return &Printer{out: w}
}

// Stepf prints a progress line.
func (p *Printer) Stepf(format string, args ...any) {
	fmt.Fprintln(p.out, styleMuted.Render(fmt.Sprintf(format, args...)))
}

// Warnf prints a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintln(p.out, styleWarning.Render(fmt.Sprintf(format, args...)))
}

// Errorf prints an error line.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintln(p.out, styleCritical.Render("error: ")+fmt.Sprintf(format, args...))
}
