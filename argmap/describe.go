package argmap

import (
	"fmt"
	"strings"
)

// Describe renders a resolved layout as indented text, one line per member.
// It exists for debugging command definitions and demo output; render
// adapters should walk the groups directly.
func Describe(groups []*Group) string {
	var buf strings.Builder
	for _, g := range groups {
		buf.WriteString(g.Label())
		if g.Exclusive {
			if g.Required {
				buf.WriteString(" [exclusive, required]")
			} else {
				buf.WriteString(" [exclusive]")
			}
		}
		buf.WriteString("\n")
		if g.Exclusive && !g.Required {
			writeMembers(&buf, "one of", g.Members())
			continue
		}
		writeMembers(&buf, "required", g.RequiredMembers())
		writeMembers(&buf, "optional", g.OptionalMembers())
	}
	return buf.String()
}

func writeMembers(buf *strings.Builder, header string, members []*Spec) {
	if len(members) == 0 {
		return
	}
	fmt.Fprintf(buf, "  %s:\n", header)
	for _, sp := range members {
		fmt.Fprintf(buf, "    %s (%s)\n", sp.Dest, sp.Kind)
	}
}
