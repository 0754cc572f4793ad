package flagform

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sorcerio/flagform/argmap"
	"github.com/Sorcerio/flagform/command"
	"github.com/Sorcerio/flagform/internal/fault"
)

// materializeScope draws one scope the way a real adapter would: every
// member of every group.
func materializeScope(s *Session, sc *argmap.Scope) {
	for _, g := range s.Groups(sc) {
		for _, sp := range g.Members() {
			s.Engine().Materialize(sp)
		}
	}
}

// materializeTree draws every scope in the tree, active or not, the way an
// adapter that builds all subcommand panes up front would.
func materializeTree(s *Session, sc *argmap.Scope) {
	materializeScope(s, sc)
	for _, sp := range sc.Specs {
		for _, sub := range sp.SubScopes {
			materializeTree(s, sub.Scope)
		}
	}
}

func TestWrap_RequiresCommand(t *testing.T) {
	assert.Panics(t, func() { Wrap(nil) })
}

func TestWrap_RegistersReservedTriggerFlag(t *testing.T) {
	cmd := sessionCommand()
	Wrap(cmd)

	assert.Contains(t, cmd.Usage(), "--form")

	scope := cmd.BuildScope()
	assert.Nil(t, scope.Spec("form"), "the trigger flag stays out of the schema")
}

func TestParseArgs_NativePathWhenFlagAbsent(t *testing.T) {
	ran := false
	w := Wrap(sessionCommand(), WithRenderer(RendererFunc(func(context.Context, *Session) error {
		ran = true
		return nil
	})))

	args, err := w.ParseArgs(context.Background(), []string{"--string", "hello", "7"})
	require.NoError(t, err)
	assert.False(t, ran, "the renderer must not run on the native path")
	assert.Equal(t, 7, args["magicNumber"])
	assert.Equal(t, "hello", args["string"])
	_, present := args["form"]
	assert.False(t, present, "reserved flags stay out of results")
}

func TestParseArgs_NativeErrorsPassThrough(t *testing.T) {
	w := Wrap(sessionCommand())
	_, err := w.ParseArgs(context.Background(), []string{"--string", "hello"})
	assert.ErrorIs(t, err, &command.UsageError{}, "missing positional surfaces as a usage error")
}

func TestParseArgs_HelpStaysOnNativePath(t *testing.T) {
	cmd := sessionCommand()
	var buf bytes.Buffer
	cmd.Printer().Redirect(&buf)
	w := Wrap(cmd, WithRenderer(RendererFunc(func(context.Context, *Session) error {
		t.Error("renderer must not run for --help")
		return nil
	})))

	_, err := w.ParseArgs(context.Background(), []string{"--help"})
	assert.ErrorIs(t, err, command.ErrHelp)
	assert.Contains(t, buf.String(), "USAGE:")
}

func TestParseArgs_FormPathRunsRenderer(t *testing.T) {
	w := Wrap(sessionCommand(), WithRenderer(RendererFunc(func(_ context.Context, s *Session) error {
		e := s.Engine()
		e.Materialize(s.Root().Spec("magicNumber"))
		e.SetScalar("magicNumber", "7")
		return nil
	})))

	args, err := w.ParseArgs(context.Background(), []string{"--form"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"magicNumber": 7}, args)
}

func TestParseArgs_FormFlagFoundAmongOtherTokens(t *testing.T) {
	ran := false
	w := Wrap(sessionCommand(), WithRenderer(RendererFunc(func(context.Context, *Session) error {
		ran = true
		return nil
	})))

	// The scan tolerates positionals and flags it does not know, including
	// ones the command itself would reject.
	_, err := w.ParseArgs(context.Background(), []string{"7", "--no-such-flag", "--string", "hello", "--form"})
	require.NoError(t, err)
	assert.True(t, ran, "the rest of argv is ignored once the form is requested")
}

func TestParseArgs_NoRenderer(t *testing.T) {
	w := Wrap(sessionCommand())
	_, err := w.ParseArgs(context.Background(), []string{"--form"})
	assert.ErrorIs(t, err, ErrNoRenderer)
}

func TestParseArgs_RendererErrorPropagates(t *testing.T) {
	boom := errors.New("dismissed")
	w := Wrap(sessionCommand(), WithRenderer(RendererFunc(func(context.Context, *Session) error {
		return boom
	})))
	_, err := w.ParseArgs(context.Background(), []string{"--form"})
	assert.ErrorIs(t, err, boom)
}

func TestParseArgs_FaultRecoveredAsError(t *testing.T) {
	w := Wrap(sessionCommand(), WithRenderer(RendererFunc(func(_ context.Context, s *Session) error {
		// Contract violation: mutating a destination that was never
		// materialized.
		s.Engine().SetScalar("magicNumber", "7")
		return nil
	})))

	args, err := w.ParseArgs(context.Background(), []string{"--form"})
	assert.Nil(t, args)
	require.Error(t, err)
	var f *fault.Fault
	assert.ErrorAs(t, err, &f)
	assert.Contains(t, err.Error(), "internal consistency fault")
}

func TestParseArgs_ForeignPanicsKeepFlying(t *testing.T) {
	w := Wrap(sessionCommand(), WithRenderer(RendererFunc(func(context.Context, *Session) error {
		panic("widget toolkit exploded")
	})))
	assert.PanicsWithValue(t, "widget toolkit exploded", func() {
		_, _ = w.ParseArgs(context.Background(), []string{"--form"})
	})
}

func TestParseArgs_TTYGuard(t *testing.T) {
	restore := isTerminalFn
	t.Cleanup(func() { isTerminalFn = restore })

	ran := false
	renderer := RendererFunc(func(_ context.Context, s *Session) error {
		ran = true
		materializeScope(s, s.Root())
		s.Engine().SetScalar("magicNumber", "3")
		return nil
	})

	isTerminalFn = func(int) bool { return false }
	w := Wrap(sessionCommand(), WithRenderer(renderer), WithTTYGuard())
	_, err := w.ParseArgs(context.Background(), []string{"--form"})
	assert.ErrorIs(t, err, &command.UsageError{}, "fell back to the native parse, which wants the positional")
	assert.False(t, ran)

	isTerminalFn = func(int) bool { return true }
	w = Wrap(sessionCommand(), WithRenderer(renderer), WithTTYGuard())
	_, err = w.ParseArgs(context.Background(), []string{"--form"})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestWithFormFlag(t *testing.T) {
	cmd := sessionCommand()
	ran := false
	w := Wrap(cmd, WithFormFlag("--gui"), WithRenderer(RendererFunc(func(context.Context, *Session) error {
		ran = true
		return nil
	})))

	assert.Contains(t, cmd.Usage(), "--gui")
	assert.False(t, strings.Contains(cmd.Usage(), "--form"))

	_, err := w.ParseArgs(context.Background(), []string{"--gui"})
	require.NoError(t, err)
	assert.True(t, ran)
}
