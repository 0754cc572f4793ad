// Package formstate tracks the live value of every argument a user edits in
// an interactive form, across the scope tree a command definition derives.
//
// The engine is deliberately single-threaded. A render adapter applies edits
// in the order the user made them, from one goroutine, and exclusive access
// is structural rather than locked. Ill-typed user input is absorbed (a
// numeric field holding "12x" is simply unset); broken structural contracts
// (mutating a destination that was never materialized, mismatching a kind)
// panic with an internal-consistency fault.
package formstate

import (
	"log/slog"
	"slices"

	"github.com/Sorcerio/flagform/argmap"
	"github.com/Sorcerio/flagform/internal/fault"
)

// Option configures an [Engine].
type Option func(*Engine)

// WithLogger sets the logger used for schema warnings and absorbed-input
// diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// Engine holds the form state for one session over a scope tree. Entries
// come into being when a render adapter materializes them and live until the
// session ends; switching subcommands never discards the inactive branch.
type Engine struct {
	root   *argmap.Scope
	log    *slog.Logger
	scopes map[*argmap.Scope]*scopeState
	owners map[*argmap.Spec]*scopeState
}

type scopeState struct {
	scope      *argmap.Scope
	parent     *scopeState
	entries    map[string]*entry
	exclusives [][]string
}

type entry struct {
	spec    *argmap.Spec
	scope   *scopeState
	value   any
	items   *itemArena
	touched bool
}

// New builds an engine over a scope tree. Every scope is registered up
// front; entries stay unmaterialized until [Engine.Materialize] asks for
// them.
func New(root *argmap.Scope, opts ...Option) *Engine {
	fault.Truef(root != nil, "engine requires a root scope")
	e := &Engine{
		root:   root,
		log:    slog.Default(),
		scopes: map[*argmap.Scope]*scopeState{},
		owners: map[*argmap.Spec]*scopeState{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.register(root, nil)
	return e
}

func (e *Engine) register(sc *argmap.Scope, parent *scopeState) {
	ss := &scopeState{scope: sc, parent: parent, entries: map[string]*entry{}}
	for _, x := range sc.ExclusiveDecls {
		ss.exclusives = append(ss.exclusives, x.Dests)
	}
	e.scopes[sc] = ss
	for _, sp := range sc.Specs {
		e.owners[sp] = ss
		for _, sub := range sp.SubScopes {
			e.register(sub.Scope, ss)
		}
	}
}

// Materialize returns the render data for a spec, creating and seeding its
// entry on first use. Later calls reflect the current state. Materializing
// is how a destination joins the session; every mutation requires it first.
func (e *Engine) Materialize(spec *argmap.Spec) Rendering {
	fault.Truef(spec != nil, "materialize requires a spec")
	ss := e.owners[spec]
	fault.Truef(ss != nil, "destination %q is not part of this engine's scope tree", destOf(spec))
	ent := ss.entries[spec.Dest]
	if ent == nil {
		ent = e.seed(spec, ss)
		ss.entries[spec.Dest] = ent
	}
	return ent.rendering()
}

func destOf(spec *argmap.Spec) string {
	if spec == nil {
		return ""
	}
	return spec.Dest
}

func (e *Engine) seed(spec *argmap.Spec, ss *scopeState) *entry {
	ent := &entry{spec: spec, scope: ss}
	switch spec.Kind {
	case argmap.KindList:
		switch seeds := spec.Default.(type) {
		case nil:
		case []any:
			ent.items = newItemArena()
			for _, v := range seeds {
				ent.items.add(v)
			}
		default:
			e.log.Warn("list default is not a value sequence, ignoring",
				"dest", spec.Dest, "scope", ss.scope.Prog)
		}
	case argmap.KindUnknown:
		ent.value = spec.Default
		e.log.Warn("unrecognized argument kind, degrading to a text value",
			"dest", spec.Dest, "scope", ss.scope.Prog)
	default:
		ent.value = spec.Default
	}
	return ent
}

// SetScalar applies raw text to a scalar destination. Numeric kinds coerce
// forgivingly: text that does not parse unsets the value, so half-typed
// input never wedges the form. String-shaped kinds store the text verbatim.
func (e *Engine) SetScalar(dest, raw string) {
	ent := e.entryFor(dest)
	k := ent.spec.Kind
	fault.Truef(k.Scalar(), "SetScalar on %s destination %q", k, dest)
	v, ok := argmap.CoerceScalar(k, raw)
	if !ok {
		e.log.Debug("scalar input does not parse, unsetting",
			"dest", dest, "kind", k.String(), "raw", raw)
		v = nil
	}
	ent.value = v
	e.touch(ent)
}

// SetBool flips a flag destination.
func (e *Engine) SetBool(dest string, v bool) {
	ent := e.entryFor(dest)
	fault.Truef(ent.spec.Kind.Boolean(), "SetBool on %s destination %q", ent.spec.Kind, dest)
	ent.value = v
	e.touch(ent)
}

// SetChoice applies one of the declared choices, coerced to the element
// kind. Values outside the declared set are ignored: a well-behaved adapter
// only offers declared choices, and a misbehaving one must not corrupt
// state.
func (e *Engine) SetChoice(dest, raw string) {
	ent := e.entryFor(dest)
	fault.Truef(ent.spec.Kind == argmap.KindChoice, "SetChoice on %s destination %q", ent.spec.Kind, dest)
	elem := elemKind(ent.spec)
	v, ok := argmap.CoerceScalar(elem, raw)
	if ok {
		for _, c := range ent.spec.Choices {
			cv, cok := argmap.CoerceScalar(elem, c)
			if cok && cv == v {
				ent.value = cv
				e.touch(ent)
				return
			}
		}
	}
	e.log.Debug("choice outside the declared set ignored", "dest", dest, "raw", raw)
}

// AddListItem appends an unset item and returns its id. It reports false
// without adding when the destination's fixed arity is already reached.
func (e *Engine) AddListItem(dest string) (string, bool) {
	ent := e.entryFor(dest)
	fault.Truef(ent.spec.Kind == argmap.KindList, "AddListItem on %s destination %q", ent.spec.Kind, dest)
	if ent.spec.Arity > 0 && ent.items.size() >= ent.spec.Arity {
		e.log.Debug("list is at its fixed size", "dest", dest, "arity", ent.spec.Arity)
		return "", false
	}
	if ent.items == nil {
		ent.items = newItemArena()
	}
	id := ent.items.add(nil)
	e.touch(ent)
	return id, true
}

// RemoveListItem drops an item by id. Unknown ids are ignored; the ids of
// the remaining items do not change.
func (e *Engine) RemoveListItem(dest, id string) {
	ent := e.entryFor(dest)
	fault.Truef(ent.spec.Kind == argmap.KindList, "RemoveListItem on %s destination %q", ent.spec.Kind, dest)
	if !ent.items.remove(id) {
		e.log.Debug("remove of unknown list item ignored", "dest", dest, "item", id)
		return
	}
	e.touch(ent)
}

// SetListItem applies raw text to one item, with the same forgiving scalar
// coercion as [Engine.SetScalar] applied per the list's element kind.
// Unknown ids are ignored.
func (e *Engine) SetListItem(dest, id, raw string) {
	ent := e.entryFor(dest)
	fault.Truef(ent.spec.Kind == argmap.KindList, "SetListItem on %s destination %q", ent.spec.Kind, dest)
	v, ok := argmap.CoerceScalar(elemKind(ent.spec), raw)
	if !ok {
		e.log.Debug("list item input does not parse, unsetting",
			"dest", dest, "item", id, "raw", raw)
		v = nil
	}
	if !ent.items.set(id, v) {
		e.log.Debug("edit of unknown list item ignored", "dest", dest, "item", id)
		return
	}
	e.touch(ent)
}

// SelectSubcommand records the active nested scope for a selector
// destination. Unknown names are ignored. Switching away and back never
// discards the state accumulated under either branch.
func (e *Engine) SelectSubcommand(dest, name string) {
	ent := e.entryFor(dest)
	fault.Truef(ent.spec.Kind == argmap.KindSelector, "SelectSubcommand on %s destination %q", ent.spec.Kind, dest)
	if ent.spec.SubScope(name) == nil {
		e.log.Debug("unknown subcommand ignored", "dest", dest, "name", name)
		return
	}
	ent.value = name
	e.touch(ent)
}

// entryFor resolves a destination to its materialized entry. Scopes on the
// active selector chain win, deepest first, so a nested destination shadows
// a root one of the same name while its subcommand is selected. Otherwise a
// single materialized entry anywhere is unambiguous. Anything else is a
// broken contract.
func (e *Engine) entryFor(dest string) *entry {
	active := e.activeScopes()
	for i := len(active) - 1; i >= 0; i-- {
		if ent := active[i].entries[dest]; ent != nil {
			return ent
		}
	}
	var found *entry
	matches := 0
	for _, ss := range e.scopes {
		if ent := ss.entries[dest]; ent != nil {
			found = ent
			matches++
		}
	}
	fault.Truef(matches > 0, "mutation of destination %q before it was materialized", dest)
	fault.Truef(matches == 1, "destination %q is materialized in %d inactive scopes", dest, matches)
	return found
}

// activeScopes lists the root scope and every nested scope reachable
// through current selector values, shallow to deep.
func (e *Engine) activeScopes() []*scopeState {
	var out []*scopeState
	var visit func(ss *scopeState)
	visit = func(ss *scopeState) {
		out = append(out, ss)
		for _, sp := range ss.scope.Specs {
			if sp.Kind != argmap.KindSelector {
				continue
			}
			ent := ss.entries[sp.Dest]
			if ent == nil {
				continue
			}
			name, _ := ent.value.(string)
			if name == "" {
				continue
			}
			if sub := sp.SubScope(name); sub != nil {
				visit(e.scopes[sub])
			}
		}
	}
	visit(e.scopes[e.root])
	return out
}

// touch marks an entry as user-set and unsets the other user-set members of
// every declared exclusive set containing it. Last touch wins. Siblings
// holding nothing but a seeded default are left alone, the same way a parse
// leaves the defaults of unsupplied members in place.
func (e *Engine) touch(ent *entry) {
	ent.touched = true
	for _, dests := range ent.scope.exclusives {
		if !slices.Contains(dests, ent.spec.Dest) {
			continue
		}
		for _, d := range dests {
			if d == ent.spec.Dest {
				continue
			}
			sib := ent.scope.entries[d]
			if sib == nil || !sib.touched {
				continue
			}
			sib.value = nil
			sib.items = nil
			sib.touched = false
			e.log.Debug("cleared exclusive sibling", "dest", d, "touched", ent.spec.Dest)
		}
	}
}

func elemKind(sp *argmap.Spec) argmap.Kind {
	if sp.Elem == argmap.KindUnknown {
		return argmap.KindString
	}
	return sp.Elem
}

func (ent *entry) currentValue() any {
	if ent.spec.Kind == argmap.KindList {
		if ent.items == nil {
			return nil
		}
		return ent.items.values()
	}
	return ent.value
}

func (ent *entry) rendering() Rendering {
	sp := ent.spec
	r := Rendering{
		Dest:        sp.Dest,
		Kind:        sp.Kind,
		Label:       sp.Meta.DisplayLabel(sp.Dest),
		Help:        sp.Meta.Help,
		Placeholder: sp.Meta.Placeholder,
		Required:    sp.Required || sp.Positional,
		Value:       ent.currentValue(),
		Choices:     slices.Clone(sp.Choices),
	}
	if r.Placeholder == "" {
		r.Placeholder = sp.Dest
	}
	switch sp.Kind {
	case argmap.KindList:
		r.Items = ent.items.rendered()
		r.CanAdd = sp.Arity == 0 || ent.items.size() < sp.Arity
	case argmap.KindSelector:
		r.Subcommands = sp.SubNames()
		r.Selected, _ = ent.value.(string)
	}
	return r
}
