// Package argmap models a command definition as render-ready data: typed
// argument specs arranged in a tree of scopes, and a resolver that folds
// declared layout groups and mutual-exclusion sets into ordered, delineated
// groups a render adapter can walk top to bottom.
package argmap

import (
	"strconv"
	"strings"
)

// Kind classifies how an argument's value behaves. The set is closed:
// anything a definition layer cannot map lands on [KindUnknown], and
// consumers degrade it to free text instead of guessing.
type Kind int

const (
	KindUnknown  Kind = iota // unmapped value type, treated as text
	KindFlagTrue             // presence turns the value true, defaults false
	KindFlagFalse            // presence turns the value false, defaults true
	KindChoice               // one value out of a declared set
	KindList                 // ordered collection of scalar items
	KindInt
	KindFloat
	KindString
	KindSelector // records which subcommand scope is active
)

func (k Kind) String() string {
	switch k {
	case KindFlagTrue:
		return "flag"
	case KindFlagFalse:
		return "inverted flag"
	case KindChoice:
		return "choice"
	case KindList:
		return "list"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindSelector:
		return "subcommand"
	default:
		return "unknown"
	}
}

// Scalar reports whether raw text edits apply directly to values of this
// kind.
func (k Kind) Scalar() bool {
	switch k {
	case KindInt, KindFloat, KindString, KindUnknown:
		return true
	default:
		return false
	}
}

// Boolean reports whether the kind holds a flag-style bool.
func (k Kind) Boolean() bool {
	return k == KindFlagTrue || k == KindFlagFalse
}

// CoerceScalar converts raw text to the typed value for a scalar kind.
// Numeric kinds trim surrounding space and report ok=false when the text
// does not parse; string-shaped kinds (including [KindUnknown]) accept
// anything verbatim, the empty string included.
func CoerceScalar(k Kind, raw string) (any, bool) {
	switch k {
	case KindInt:
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, false
		}
		return v, true
	case KindFloat:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, false
		}
		return v, true
	default:
		return raw, true
	}
}
