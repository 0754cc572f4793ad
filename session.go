package flagform

import (
	"log/slog"

	"github.com/Sorcerio/flagform/argmap"
	"github.com/Sorcerio/flagform/formstate"
	"github.com/Sorcerio/flagform/internal/fault"
)

// Session is one live interactive run over a command's argument schema: the
// derived scope tree, the resolved layout groups of every scope in it, and
// the engine holding whatever the user has entered so far.
type Session struct {
	root   *argmap.Scope
	groups map[*argmap.Scope][]*argmap.Group
	engine *formstate.Engine
}

// NewSession resolves the layout of every scope in the tree up front and
// builds the form state engine over it. [Wrapper.ParseArgs] creates one per
// form run; building one directly suits renderer development and tests. A
// nil log falls back to [slog.Default].
func NewSession(root *argmap.Scope, log *slog.Logger) *Session {
	fault.Truef(root != nil, "a session requires a root scope")
	if log == nil {
		log = slog.Default()
	}
	s := &Session{
		root:   root,
		groups: map[*argmap.Scope][]*argmap.Group{},
		engine: formstate.New(root, formstate.WithLogger(log)),
	}
	s.resolve(root)
	return s
}

// resolve computes the layout for sc and every scope nested under it. Each
// scope resolves independently; nothing in one branch alters another.
func (s *Session) resolve(sc *argmap.Scope) {
	s.groups[sc] = argmap.Resolve(sc)
	for _, sp := range sc.Specs {
		for _, sub := range sp.SubScopes {
			s.resolve(sub.Scope)
		}
	}
}

// Root returns the root scope of the schema tree.
func (s *Session) Root() *argmap.Scope {
	return s.root
}

// Groups returns the resolved layout of one scope in the tree. Asking about
// a scope outside the tree is a render adapter bug and faults.
func (s *Session) Groups(sc *argmap.Scope) []*argmap.Group {
	groups, ok := s.groups[sc]
	fault.Truef(ok, "scope %q is not part of this session", scopeName(sc))
	return groups
}

// Engine exposes the form state engine a renderer applies edits to.
func (s *Session) Engine() *formstate.Engine {
	return s.engine
}

// Snapshot reduces the session to its final flat result map. See
// [formstate.Engine.Snapshot].
func (s *Session) Snapshot() map[string]any {
	return s.engine.Snapshot()
}

func scopeName(sc *argmap.Scope) string {
	if sc == nil {
		return ""
	}
	return sc.Prog
}
