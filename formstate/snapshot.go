package formstate

import "github.com/Sorcerio/flagform/argmap"

// Snapshot flattens the current form state into one destination-to-value
// map, the shape a non-interactive parse of the same definition would
// produce. Only materialized entries appear. Selector destinations carry
// the selected name, and the selected branch's destinations are merged in
// after the owning scope's own; unselected branches are unreachable and
// contribute nothing. Calling Snapshot never changes state.
func (e *Engine) Snapshot() map[string]any {
	out := map[string]any{}
	e.snapshotScope(e.scopes[e.root], out)
	return out
}

func (e *Engine) snapshotScope(ss *scopeState, out map[string]any) {
	var nested []*scopeState
	for _, sp := range ss.scope.Specs {
		ent := ss.entries[sp.Dest]
		if ent == nil {
			continue
		}
		if sp.Kind == argmap.KindSelector {
			name, _ := ent.value.(string)
			if name == "" {
				continue
			}
			sub := sp.SubScope(name)
			if sub == nil {
				continue
			}
			mergeValue(out, sp.Dest, name)
			nested = append(nested, e.scopes[sub])
			continue
		}
		mergeValue(out, sp.Dest, ent.currentValue())
	}
	for _, sub := range nested {
		e.snapshotScope(sub, out)
	}
}

// mergeValue writes dest into out unless the incoming value is unset and a
// prior scope already supplied one. A nested scope's untouched default must
// not wipe out a value the outer scope set for the same destination.
func mergeValue(out map[string]any, dest string, v any) {
	if v == nil {
		if _, ok := out[dest]; ok {
			return
		}
	}
	out[dest] = v
}
