package formstate

import "github.com/Sorcerio/flagform/argmap"

// Item is the visible identity and current value of one list slot.
type Item struct {
	ID    string
	Value any
}

// Rendering is everything a render adapter needs to draw one destination.
// It exposes no engine internals beyond the item ids that list widgets must
// bind edits to.
type Rendering struct {
	Dest        string
	Kind        argmap.Kind
	Label       string
	Help        string
	Placeholder string
	Required    bool

	// Value is the current typed value, nil when unset. Lists flatten to
	// []any in item order.
	Value any

	// Choices carries the declared choice values for KindChoice, in raw
	// command-line form.
	Choices []string

	// Items and CanAdd describe KindList state: the bound item slots, and
	// whether another slot fits under the declared arity.
	Items  []Item
	CanAdd bool

	// Subcommands and Selected describe KindSelector state.
	Subcommands []string
	Selected    string
}
