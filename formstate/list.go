package formstate

import (
	"slices"

	"github.com/google/uuid"
)

// listItem is one slot of a list entry. An item keeps its identity for the
// life of the entry so a render adapter can bind a widget to it once.
type listItem struct {
	id    string
	value any
}

// itemArena owns list items in creation order. Ids are opaque, unique, and
// never reused, so removing an item can never make a neighbor's widget point
// at the wrong slot.
type itemArena struct {
	order []*listItem
	index map[string]*listItem
}

func newItemArena() *itemArena {
	return &itemArena{index: map[string]*listItem{}}
}

func newItemID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (a *itemArena) add(value any) string {
	it := &listItem{id: newItemID(), value: value}
	a.order = append(a.order, it)
	a.index[it.id] = it
	return it.id
}

func (a *itemArena) set(id string, value any) bool {
	if a == nil {
		return false
	}
	it, ok := a.index[id]
	if !ok {
		return false
	}
	it.value = value
	return true
}

func (a *itemArena) remove(id string) bool {
	if a == nil {
		return false
	}
	it, ok := a.index[id]
	if !ok {
		return false
	}
	delete(a.index, id)
	a.order = slices.DeleteFunc(a.order, func(o *listItem) bool { return o == it })
	return true
}

func (a *itemArena) size() int {
	if a == nil {
		return 0
	}
	return len(a.order)
}

// values flattens the arena to plain values in creation order.
func (a *itemArena) values() []any {
	vals := make([]any, len(a.order))
	for i, it := range a.order {
		vals[i] = it.value
	}
	return vals
}

func (a *itemArena) rendered() []Item {
	if a == nil {
		return nil
	}
	items := make([]Item, len(a.order))
	for i, it := range a.order {
		items[i] = Item{ID: it.id, Value: it.value}
	}
	return items
}
