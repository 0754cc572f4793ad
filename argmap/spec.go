package argmap

import (
	"strings"
	"unicode"
)

// Metadata carries the presentation details of one argument. The engine
// passes it through untouched; only render adapters interpret it.
type Metadata struct {
	Label       string
	Help        string
	Placeholder string
	// Hints are opaque adapter-specific key/value pairs, for shapes the
	// kind system deliberately does not model (a file picker hint, say).
	Hints map[string]string
}

// DisplayLabel returns the declared label, falling back to a humanized form
// of the destination: "magicNumber" and "magic_number" both become
// "Magic Number".
func (m Metadata) DisplayLabel(dest string) string {
	if m.Label != "" {
		return m.Label
	}
	return humanizeDest(dest)
}

func humanizeDest(dest string) string {
	var (
		words []string
		cur   strings.Builder
		prev  rune
	)
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for _, r := range dest {
		switch {
		case r == '_' || r == '-' || r == '.' || r == ' ':
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
		prev = r
	}
	flush()
	if len(words) == 0 {
		return dest
	}
	for i, w := range words {
		rs := []rune(w)
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	return strings.Join(words, " ")
}

// SubScope names one subcommand scope reachable from a selector spec.
type SubScope struct {
	Name  string
	Scope *Scope
}

// Spec describes a single argument destination within one scope.
type Spec struct {
	// Dest is the destination name, unique within its scope. Sibling
	// subcommand scopes may reuse it.
	Dest       string
	Kind       Kind
	Elem       Kind // element kind for KindList items and KindChoice values
	Required   bool
	Positional bool // declared without an invocation flag; always required
	// Default is the typed value held before the user touches the
	// argument: bool, int, float64, string, or []any for lists. nil means
	// the destination starts unset.
	Default any
	// Choices are the declared values in raw command-line form, in
	// declaration order.
	Choices []string
	// Arity fixes the exact item count for KindList; 0 means unbounded.
	Arity int
	Meta  Metadata
	// SubScopes holds the nested scopes of a KindSelector spec in
	// declaration order.
	SubScopes []SubScope
}

// SubScope resolves a nested scope by subcommand name.
func (s *Spec) SubScope(name string) *Scope {
	for _, sub := range s.SubScopes {
		if sub.Name == name {
			return sub.Scope
		}
	}
	return nil
}

// SubNames lists the subcommand names in declaration order.
func (s *Spec) SubNames() []string {
	if len(s.SubScopes) == 0 {
		return nil
	}
	names := make([]string, len(s.SubScopes))
	for i, sub := range s.SubScopes {
		names[i] = sub.Name
	}
	return names
}

// GroupDecl is a titled layout group as declared by the definition layer.
type GroupDecl struct {
	Title       string
	Description string
	Dests       []string
}

// ExclusiveDecl is a declared mutually exclusive set of destinations.
// Exclusivity is a value constraint, not just layout: it binds even when the
// resolver leaves the members inside a titled group.
type ExclusiveDecl struct {
	Title    string
	Required bool
	Dests    []string
}

// Scope is the flattened argument surface of one command or subcommand.
type Scope struct {
	Prog           string
	Description    string
	Specs          []*Spec // declaration order
	GroupDecls     []GroupDecl
	ExclusiveDecls []ExclusiveDecl
}

// Spec finds a destination's spec within this scope, nil when absent.
func (s *Scope) Spec(dest string) *Spec {
	for _, sp := range s.Specs {
		if sp.Dest == dest {
			return sp
		}
	}
	return nil
}
