package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

var (
	colorSuccess = color.New(color.FgGreen, color.Bold)
	colorError   = color.New(color.FgRed, color.Bold)
	colorWarning = color.New(color.FgYellow, color.Bold)
	colorInfo    = color.New(color.FgCyan)
	colorStep    = color.New(color.FgMagenta, color.Bold)
)

const separator = "────────────────────────────────────────────────────────"

// isTerminal is swapped in tests.
var isTerminal = func(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printer writes status lines for the non-interactive commands.
type printer struct {
	out io.Writer
	err io.Writer
}

func newPrinter(out, errOut io.Writer) *printer {
	return &printer{out: out, err: errOut}
}

func (p *printer) Success(format string, args ...any) {
	colorSuccess.Fprint(p.out, "✓ ")
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) Error(format string, args ...any) {
	colorError.Fprint(p.err, "✗ ")
	fmt.Fprintf(p.err, format+"\n", args...)
}

func (p *printer) Warning(format string, args ...any) {
	colorWarning.Fprint(p.out, "⚠ ")
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) Info(format string, args ...any) {
	colorInfo.Fprint(p.out, "ℹ ")
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *printer) Step(format string, args ...any) {
	fmt.Fprintln(p.out)
	colorStep.Fprintf(p.out, "▶ "+format+"\n", args...)
	fmt.Fprintln(p.out, separator)
}

func (p *printer) Line(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}
