package flagform

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/Sorcerio/flagform/command"
	"github.com/Sorcerio/flagform/internal/fault"
)

// DefaultFormFlag is the reserved destination that routes a parse into the
// interactive form when no other name is configured.
const DefaultFormFlag = "form"

// ErrNoRenderer is returned when the form was requested but the Wrapper has
// no [Renderer] to drive it.
var ErrNoRenderer = errors.New("no renderer configured")

// isTerminalFn is swapped out in tests.
var isTerminalFn = term.IsTerminal

// Option configures a [Wrapper].
type Option func(*Wrapper)

// WithRenderer sets the render adapter that drives the interactive form.
func WithRenderer(r Renderer) Option {
	return func(w *Wrapper) {
		w.renderer = r
	}
}

// WithFormFlag renames the reserved trigger flag. Leading dashes are
// stripped, so "--gui" and "gui" declare the same flag.
func WithFormFlag(name string) Option {
	return func(w *Wrapper) {
		name = strings.TrimLeft(name, "-")
		if name != "" {
			w.formFlag = name
		}
	}
}

// WithLogger sets the logger shared by the wrapper and its form sessions.
func WithLogger(log *slog.Logger) Option {
	return func(w *Wrapper) {
		if log != nil {
			w.log = log
		}
	}
}

// WithTTYGuard makes the wrapper fall back to the native parse when stdin is
// not a terminal, even if the trigger flag is set. Scripted environments
// keep working when someone hardcodes the flag into an invocation.
func WithTTYGuard() Option {
	return func(w *Wrapper) {
		w.ttyGuard = true
	}
}

// Wrapper attaches the interactive escape hatch to one command definition
// and routes each invocation down the native or the form path.
type Wrapper struct {
	cmd      *command.Command
	renderer Renderer
	formFlag string
	log      *slog.Logger
	ttyGuard bool
}

// Wrap registers the trigger flag on cmd as a reserved control flag: it
// parses cleanly on the native path and never shows up in results or in the
// form schema.
func Wrap(cmd *command.Command, opts ...Option) *Wrapper {
	fault.Truef(cmd != nil, "wrap requires a command")
	w := &Wrapper{
		cmd:      cmd,
		formFlag: DefaultFormFlag,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.cmd.ReserveBool(w.formFlag, "", "Fill the arguments in an interactive form")
	return w
}

// ParseArgs routes one invocation. With the trigger flag absent or false,
// the command parses argv natively and no form machinery is built. With it
// present, the rest of argv is ignored and the renderer drives a fresh
// session whose snapshot becomes the result; both paths produce the same
// flat destination-to-value shape.
func (w *Wrapper) ParseArgs(ctx context.Context, argv []string) (map[string]any, error) {
	if !w.formRequested(argv) {
		w.log.Debug("parsing the command line directly")
		return w.cmd.Parse(argv)
	}
	if w.ttyGuard && !isTerminalFn(int(os.Stdin.Fd())) {
		w.log.Warn("form requested without a terminal, parsing directly")
		return w.cmd.Parse(argv)
	}
	if w.renderer == nil {
		return nil, ErrNoRenderer
	}
	w.log.Info("starting the form session")
	return w.runForm(ctx)
}

// formRequested scans argv for the trigger flag alone, tolerating every
// other token. Unknown flags and positionals pass through unparsed, so a
// malformed command line still reaches the native parse and gets a proper
// error there.
func (w *Wrapper) formRequested(argv []string) bool {
	scan := flag.NewFlagSet(w.cmd.Name(), flag.ContinueOnError)
	scan.ParseErrorsWhitelist.UnknownFlags = true
	scan.SetInterspersed(true)
	scan.SetOutput(io.Discard)
	scan.Usage = func() {}
	requested := scan.Bool(w.formFlag, false, "")
	// Registered so a help request does not short-circuit the scan; the
	// native parse owns responding to it.
	scan.BoolP("help", "h", false, "")
	if err := scan.Parse(argv); err != nil {
		return false
	}
	return *requested
}

// runForm owns the session lifecycle: derive the schema, resolve the
// layout, run the renderer, reduce the state to its snapshot. A recovered
// internal-consistency fault is fatal for the session and comes back as the
// error; any other panic is not ours and keeps flying.
func (w *Wrapper) runForm(ctx context.Context) (result map[string]any, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		f, ok := fault.From(r)
		if !ok {
			panic(r)
		}
		w.log.Error("form session broke an internal contract", "fault", f.Error())
		result, err = nil, f
	}()
	session := NewSession(w.cmd.BuildScope(), w.log)
	if err := w.renderer.Run(ctx, session); err != nil {
		return nil, err
	}
	return session.Snapshot(), nil
}
