package argmap

import (
	"fmt"
	"slices"

	"github.com/Sorcerio/flagform/internal/fault"
	"github.com/Sorcerio/flagform/internal/set"
)

// Group is one resolved section of the form layout. Untitled groups carry a
// positional tag instead of generated text so adapters can render their own
// placeholder.
type Group struct {
	Title       string
	Description string
	Index       int  // position within the resolved layout
	Untitled    bool // no declared title; render a positional placeholder
	Exclusive   bool
	Required    bool // declared-required exclusive set

	members  []*Spec
	required []*Spec
	optional []*Spec
}

// Label returns the declared title, or a numbered section placeholder for
// untitled groups.
func (g *Group) Label() string {
	if g.Untitled {
		return fmt.Sprintf("Section %d", g.Index+1)
	}
	return g.Title
}

// Members returns every member in declaration order, regardless of
// delineation.
func (g *Group) Members() []*Spec {
	return slices.Clone(g.members)
}

// RequiredMembers returns the members the user must supply. For a
// declared-required exclusive group that is every member; for other
// exclusive groups it is empty.
func (g *Group) RequiredMembers() []*Spec {
	return slices.Clone(g.required)
}

// OptionalMembers returns the members the user may leave alone. Always empty
// for exclusive groups.
func (g *Group) OptionalMembers() []*Spec {
	return slices.Clone(g.optional)
}

// Resolve folds a scope's declarations into the ordered group layout:
//
//  1. The default bucket comes first (always present, even empty), then every
//     declared titled group in declaration order, each holding its claimed
//     specs in declaration order.
//  2. Each exclusive declaration becomes a group, pulling in only the members
//     that still sit in the default bucket. Members claimed by a titled group
//     stay where they are; the exclusivity still binds at the value level,
//     but the layout keeps the author's grouping.
//  3. An exclusive group that pulled in nobody is dropped from the layout. A
//     single surviving member still renders as an exclusive group.
//  4. Non-exclusive groups delineate members into required (declared
//     required, or positional) and optional.
//  5. Exclusive groups do not delineate: a declared-required set reports all
//     members required, any other set reports members only through
//     [Group.Members].
//
// Resolution is pure and deterministic. Malformed declarations (duplicate
// destinations, references to unknown destinations, double membership) are
// definition bugs and fail fast.
func Resolve(scope *Scope) []*Group {
	fault.Truef(scope != nil, "resolve requires a scope")

	def := &Group{Untitled: true}
	groups := []*Group{def}
	claims := map[string]*Group{}
	for _, d := range scope.GroupDecls {
		g := &Group{Title: d.Title, Description: d.Description, Untitled: d.Title == ""}
		groups = append(groups, g)
		for _, dest := range d.Dests {
			fault.Truef(scope.Spec(dest) != nil, "group %q references unknown destination %q", d.Title, dest)
			_, dup := claims[dest]
			fault.Truef(!dup, "destination %q is claimed by more than one group", dest)
			claims[dest] = g
		}
	}

	owner := map[string]*Group{}
	seen := set.New[string]()
	for _, sp := range scope.Specs {
		fault.Truef(!seen.Has(sp.Dest), "duplicate destination %q in scope %q", sp.Dest, scope.Prog)
		seen.Add(sp.Dest)
		g := claims[sp.Dest]
		if g == nil {
			g = def
		}
		g.members = append(g.members, sp)
		owner[sp.Dest] = g
	}

	exclusive := set.New[string]()
	for _, x := range scope.ExclusiveDecls {
		xg := &Group{Title: x.Title, Untitled: x.Title == "", Exclusive: true, Required: x.Required}
		for _, dest := range x.Dests {
			sp := scope.Spec(dest)
			fault.Truef(sp != nil, "exclusive set references unknown destination %q", dest)
			fault.Truef(!exclusive.Has(dest), "destination %q is in more than one exclusive set", dest)
			exclusive.Add(dest)
			if owner[dest] != def {
				continue
			}
			def.members = slices.DeleteFunc(def.members, func(m *Spec) bool { return m == sp })
			xg.members = append(xg.members, sp)
			owner[dest] = xg
		}
		if len(xg.members) == 0 {
			continue
		}
		groups = append(groups, xg)
	}

	for i, g := range groups {
		g.Index = i
		if g.Exclusive {
			if g.Required {
				g.required = slices.Clone(g.members)
			}
			continue
		}
		for _, sp := range g.members {
			if sp.Required || sp.Positional {
				g.required = append(g.required, sp)
			} else {
				g.optional = append(g.optional, sp)
			}
		}
	}
	return groups
}
