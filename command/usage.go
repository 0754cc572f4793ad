package command

import (
	"fmt"
	"slices"
	"strings"
)

// Usage renders the full usage text: a synopsis line, the description,
// positional arguments, flags, and subcommands.
func (c *Command) Usage() string {
	var buf strings.Builder
	buf.WriteString("USAGE:\n  " + c.synopsis() + "\n")
	if c.description != "" {
		buf.WriteString("\n" + c.description + "\n")
	}
	if len(c.positionals) > 0 {
		buf.WriteString("\nARGUMENTS\n")
		rows := make([][2]string, len(c.positionals))
		for i, p := range c.positionals {
			rows[i] = [2]string{p.displayName(), p.usage}
		}
		buf.WriteString(tableString(rows))
	}
	buf.WriteString("\nFLAGS\n")
	buf.WriteString(c.flags.FlagUsages())
	if c.selector != nil && len(c.selector.subs) > 0 {
		buf.WriteString("\nCOMMANDS\n")
		buf.WriteString(c.selector.commandUsages())
	}
	return buf.String()
}

// PrintUsage writes the usage text to the command's printer. pflag calls it
// on flag errors, and Parse calls it when help is requested.
func (c *Command) PrintUsage() {
	c.printer.Print(c.Usage())
}

func (c *Command) synopsis() string {
	parts := []string{c.Path(), "[FLAGS]"}
	for _, p := range c.positionals {
		parts = append(parts, p.displayName())
	}
	if c.selector != nil && len(c.selector.subs) > 0 {
		if c.selector.conf.required {
			parts = append(parts, "COMMAND")
		} else {
			parts = append(parts, "[COMMAND]")
		}
	}
	return strings.Join(parts, " ")
}

func (p *positionalArg) displayName() string {
	if p.conf.metavar != "" {
		return p.conf.metavar
	}
	return p.dest
}

// commandUsages lists the subcommands sorted by name, aliases included.
func (s *Selector) commandUsages() string {
	names := s.names()
	slices.Sort(names)
	rows := make([][2]string, len(names))
	for i, name := range names {
		sub := s.lookup(name)
		label := name
		if len(sub.aliases) > 0 {
			label = strings.Join(append([]string{name}, sub.aliases...), ", ")
		}
		rows[i] = [2]string{label, sub.description}
	}
	return tableString(rows)
}

func tableString(rows [][2]string) string {
	var maxLen int
	for _, row := range rows {
		if len(row[0]) > maxLen {
			maxLen = len(row[0])
		}
	}
	var buf strings.Builder
	for _, row := range rows {
		buf.WriteString(fmt.Sprintf("  %-*s\t%s\n", maxLen, row[0], row[1]))
	}
	return buf.String()
}
