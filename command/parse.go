package command

import (
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/Sorcerio/flagform/argmap"
)

// ErrHelp is returned by [Command.Parse] after usage was requested and
// printed. Callers should treat it as a clean exit.
var ErrHelp = flag.ErrHelp

// Parse runs the native, non-interactive path: flags first, then
// positionals in registration order, then an optional subcommand token
// whose remaining arguments parse recursively. The result maps every data
// destination to its typed value, nil meaning unset, with the selected
// subcommand's destinations merged in at the same flat level. Reserved
// control flags never appear. Validation failures return a [UsageError].
func (c *Command) Parse(args []string) (map[string]any, error) {
	if err := c.flags.Parse(args); err != nil {
		return nil, NewUsageError("%v", err)
	}
	if MustGet(c.flags.GetBool("help")) {
		c.PrintUsage()
		return nil, ErrHelp
	}

	posVals := map[string]any{}
	rest, err := c.consumePositionals(c.flags.Args(), posVals)
	if err != nil {
		return nil, err
	}

	var (
		subName   string
		subResult map[string]any
	)
	switch {
	case len(rest) > 0 && c.selector != nil:
		sub := c.selector.lookup(rest[0])
		if sub == nil {
			return nil, NewUsageError("%w: %s", ErrUnknownCommand, rest[0])
		}
		subName = sub.name
		subResult, err = sub.Parse(rest[1:])
		if err != nil {
			return nil, err
		}
	case len(rest) > 0:
		return nil, NewUsageError("unexpected argument %q", rest[0])
	}
	if c.selector != nil && c.selector.conf.required && subName == "" {
		return nil, NewUsageError("a subcommand is required: one of %s", strings.Join(c.selector.names(), ", "))
	}

	if err := c.enforceFlags(); err != nil {
		return nil, err
	}
	if err := c.enforceExclusives(); err != nil {
		return nil, err
	}

	result := map[string]any{}
	c.flags.VisitAll(func(f *flag.Flag) {
		if len(f.Annotations[annoReserved]) > 0 {
			return
		}
		result[f.Name] = c.flagValue(f)
	})
	for d, v := range posVals {
		result[d] = v
	}
	if subName != "" {
		result[c.selector.dest] = subName
		for k, v := range subResult {
			if v == nil {
				if _, ok := result[k]; ok {
					continue
				}
			}
			result[k] = v
		}
	}
	return result, nil
}

func (c *Command) consumePositionals(rest []string, out map[string]any) ([]string, error) {
	for _, p := range c.positionals {
		if len(rest) == 0 {
			return nil, NewUsageError("missing required argument %q", p.dest)
		}
		raw := rest[0]
		rest = rest[1:]
		v, ok := argmap.CoerceScalar(p.kind, raw)
		if !ok {
			return nil, NewUsageError("argument %q expects %s, got %q", p.dest, p.kind, raw)
		}
		if len(p.conf.choices) > 0 && !choiceAllowed(p.kind, p.conf.choices, v) {
			return nil, NewUsageError("argument %q must be one of %s, got %q",
				p.dest, strings.Join(p.conf.choices, ", "), raw)
		}
		out[p.dest] = v
	}
	return rest, nil
}

func (c *Command) enforceFlags() error {
	var err error
	c.flags.VisitAll(func(f *flag.Flag) {
		if err != nil || len(f.Annotations[annoReserved]) > 0 {
			return
		}
		if len(f.Annotations[annoRequired]) > 0 && !f.Changed {
			err = NewUsageError("flag --%s is required", f.Name)
			return
		}
		if !f.Changed {
			return
		}
		if choices := f.Annotations[annoChoices]; len(choices) > 0 {
			if err = c.checkChoiceValues(f, choices); err != nil {
				return
			}
		}
		if raw := first(f.Annotations[annoArity]); raw != "" {
			err = c.checkArityValue(f, raw)
		}
	})
	return err
}

func (c *Command) checkChoiceValues(f *flag.Flag, choices []string) error {
	kind, elem := kindOf(f)
	v := c.flagValue(f)
	if kind == argmap.KindList {
		items, _ := v.([]any)
		for _, item := range items {
			if !choiceAllowed(textFallback(elem), choices, item) {
				return NewUsageError("flag --%s values must be one of %s, got %v",
					f.Name, strings.Join(choices, ", "), item)
			}
		}
		return nil
	}
	if !choiceAllowed(textFallback(kind), choices, v) {
		return NewUsageError("flag --%s must be one of %s, got %v",
			f.Name, strings.Join(choices, ", "), v)
	}
	return nil
}

func (c *Command) checkArityValue(f *flag.Flag, raw string) error {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return nil
	}
	items, _ := c.flagValue(f).([]any)
	if len(items) != n {
		return NewUsageError("flag --%s takes exactly %d values, got %d", f.Name, n, len(items))
	}
	return nil
}

func (c *Command) enforceExclusives() error {
	for _, x := range c.exclusives {
		var supplied []string
		for _, d := range x.dests {
			if f := c.flags.Lookup(d); f != nil && f.Changed {
				supplied = append(supplied, "--"+d)
			}
		}
		if len(supplied) > 1 {
			return NewUsageError("%s is not allowed with %s", supplied[1], supplied[0])
		}
		if x.required && len(supplied) == 0 {
			flagged := make([]string, len(x.dests))
			for i, d := range x.dests {
				flagged[i] = "--" + d
			}
			return NewUsageError("one of the flags %s is required", strings.Join(flagged, ", "))
		}
	}
	return nil
}

// choiceAllowed compares a typed value against the declared raw choices,
// coercing each raw the same way the value was.
func choiceAllowed(elem argmap.Kind, choices []string, v any) bool {
	for _, raw := range choices {
		cv, ok := argmap.CoerceScalar(elem, raw)
		if ok && cv == v {
			return true
		}
	}
	return false
}

// flagValue extracts the typed value of one flag. Unsupplied flags without
// a declared default read as nil. Value types outside the mapped set fall
// back to their string form.
func (c *Command) flagValue(f *flag.Flag) any {
	if !f.Changed && len(f.Annotations[annoDefault]) == 0 {
		return nil
	}
	switch f.Value.Type() {
	case "bool":
		return MustGet(c.flags.GetBool(f.Name))
	case "int":
		return MustGet(c.flags.GetInt(f.Name))
	case "float64":
		return MustGet(c.flags.GetFloat64(f.Name))
	case "string":
		return MustGet(c.flags.GetString(f.Name))
	case "intSlice":
		return anySlice(MustGet(c.flags.GetIntSlice(f.Name)))
	case "float64Slice":
		return anySlice(MustGet(c.flags.GetFloat64Slice(f.Name)))
	case "stringSlice":
		return anySlice(MustGet(c.flags.GetStringSlice(f.Name)))
	case "stringArray":
		return anySlice(MustGet(c.flags.GetStringArray(f.Name)))
	default:
		return f.Value.String()
	}
}
