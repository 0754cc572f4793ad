package command

import (
	"fmt"
	"io"
	"os"
)

// Printer is the user-facing output sink, STDERR by default. Usage text and
// prompts go through it, keeping STDOUT clean for actual results. A Printer
// is shared down a command tree, so redirecting the root redirects every
// subcommand with it.
type Printer struct {
	out io.Writer
}

func NewPrinter() *Printer {
	return &Printer{out: os.Stderr}
}

// Redirect points the printer at another writer, usually a buffer in tests.
func (p *Printer) Redirect(w io.Writer) {
	p.out = w
}

// Write lets the Printer stand in wherever an io.Writer is wanted, so
// collaborating layers (pflag's error output, renderers) follow redirects.
func (p *Printer) Write(b []byte) (int, error) {
	return p.out.Write(b)
}

func (p *Printer) Print(msg ...any) {
	_, _ = fmt.Fprint(p.out, msg...)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) Println(msg ...any) {
	_, _ = fmt.Fprintln(p.out, msg...)
}
