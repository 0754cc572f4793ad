package command

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/Sorcerio/flagform/argmap"
	"github.com/Sorcerio/flagform/internal/fault"
)

// Flag annotations carry the form metadata pflag has no field for. They are
// the single source the schema derivation reads for flags.
const (
	annoRequired = "flagform_required"
	annoChoices  = "flagform_choices"
	annoDefault  = "flagform_default"
	annoArity    = "flagform_arity"
	annoMetavar  = "flagform_metavar"
	annoLabel    = "flagform_label"
	annoHints    = "flagform_hints"
	annoReserved = "flagform_reserved"
)

var nameCleansePattern = regexp.MustCompile(`\s`)

func cleanseName(name string) string {
	return nameCleansePattern.ReplaceAllString(strings.ToLower(name), "")
}

// Command is one level of a CLI definition: a named set of flags,
// positionals, layout groups, exclusive sets, and optionally a selector for
// nested subcommands. Destinations keep their registration order, which is
// the order forms and usage text present them in.
type Command struct {
	name        string
	description string
	flags       *flag.FlagSet
	printer     *Printer
	parent      *Command
	aliases     []string

	order       []string
	dests       map[string]struct{}
	positionals []*positionalArg
	groups      []*groupDecl
	exclusives  []*Exclusive
	selector    *Selector
}

type positionalArg struct {
	dest  string
	kind  argmap.Kind
	usage string
	conf  regConf
}

type groupDecl struct {
	title       string
	description string
	dests       []string
}

// New starts a top-level command definition. The command carries a pflag
// set with posix-style flags, does not intersperse flags with arguments,
// and reserves --help/-h.
func New(name, description string) *Command {
	return newCommand(name, description, nil)
}

func newCommand(name, description string, parent *Command) *Command {
	name = cleanseName(name)
	fault.Truef(name != "", "a command needs a name")
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SortFlags = false
	fs.SetInterspersed(false)
	cmd := &Command{
		name:        name,
		description: description,
		flags:       fs,
		parent:      parent,
		dests:       map[string]struct{}{},
	}
	if parent != nil {
		cmd.printer = parent.printer
	} else {
		cmd.printer = NewPrinter()
	}
	fs.SetOutput(cmd.printer)
	fs.Usage = cmd.PrintUsage
	cmd.ReserveBool("help", "h", "Prints this usage information")
	return cmd
}

// Name returns the cleansed command name.
func (c *Command) Name() string {
	return c.name
}

// Description returns the long description given at creation.
func (c *Command) Description() string {
	return c.description
}

// Path returns the invocation chain from the root command to this one.
func (c *Command) Path() string {
	if c.parent == nil {
		return c.name
	}
	return c.parent.Path() + " " + c.name
}

// Flags exposes the underlying [flag.FlagSet] for parse-time reads. Flags
// registered on it directly still parse, but are invisible to the form
// schema; register through the typed methods instead.
func (c *Command) Flags() *flag.FlagSet {
	return c.flags
}

// Printer returns the user-facing output sink shared by this command tree.
func (c *Command) Printer() *Printer {
	return c.printer
}

// ReserveBool registers a control flag that parses normally but never
// appears in the form schema or in parse results. The help flag is reserved
// this way, and the interactive wrapper reserves its trigger flag too.
func (c *Command) ReserveBool(name, shorthand, usage string) *Command {
	c.claimDest(name)
	c.flags.BoolP(name, shorthand, false, usage)
	c.setAnno(name, annoReserved, "true")
	return c
}

func (c *Command) claimDest(dest string) {
	fault.Truef(strings.TrimSpace(dest) != "", "a destination name must not be blank")
	fault.Truef(!strings.ContainsAny(dest, " \t\n"), "destination %q must not contain whitespace", dest)
	_, taken := c.dests[dest]
	fault.Truef(!taken, "destination %q is already registered on command %q", dest, c.name)
	c.dests[dest] = struct{}{}
}

func (c *Command) claimData(dest string) {
	c.claimDest(dest)
	c.order = append(c.order, dest)
}

func (c *Command) setAnno(name, key string, values ...string) {
	err := c.flags.SetAnnotation(name, key, values)
	fault.Truef(err == nil, "annotating flag %q: %v", name, err)
}

func (c *Command) finishFlag(name string, conf regConf, defaultRaws []string) {
	if conf.required {
		c.setAnno(name, annoRequired, "true")
	}
	if len(conf.choices) > 0 {
		c.setAnno(name, annoChoices, conf.choices...)
	}
	if len(defaultRaws) > 0 {
		c.setAnno(name, annoDefault, defaultRaws...)
	}
	if conf.arity > 0 {
		c.setAnno(name, annoArity, strconv.Itoa(conf.arity))
	}
	if conf.metavar != "" {
		c.setAnno(name, annoMetavar, conf.metavar)
	}
	if conf.label != "" {
		c.setAnno(name, annoLabel, conf.label)
	}
	if len(conf.hints) > 0 {
		keys := make([]string, 0, len(conf.hints))
		for k := range conf.hints {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + "=" + conf.hints[k]
		}
		c.setAnno(name, annoHints, pairs...)
	}
	c.placeInGroup(name, conf.group)
}

func (c *Command) placeInGroup(dest, title string) {
	if title == "" {
		return
	}
	for _, g := range c.groups {
		if g.title == title {
			g.dests = append(g.dests, dest)
			return
		}
	}
	fault.Truef(false, "layout group %q is not declared on command %q", title, c.name)
}

func (c *Command) checkChoices(name string, elem argmap.Kind, choices []string) {
	for _, raw := range choices {
		_, ok := argmap.CoerceScalar(elem, raw)
		fault.Truef(ok, "choice %q for %q is not a valid %s", raw, name, elem)
	}
}

// Bool registers a flag whose presence turns the value true. Give it
// Default(true) for the inverted form where presence turns it false.
func (c *Command) Bool(name, shorthand, usage string, opts ...Option) *Command {
	conf := buildConf(opts)
	fault.Truef(len(conf.choices) == 0, "choices do not apply to bool flag %q", name)
	fault.Truef(conf.arity == 0, "arity does not apply to bool flag %q", name)
	c.claimData(name)
	def, _ := mustDefault[bool](name, conf)
	c.flags.BoolP(name, shorthand, def, usage)
	if def {
		// pflag treats a bare bool flag as true; the inverted form must
		// store false instead.
		c.flags.Lookup(name).NoOptDefVal = "false"
	}
	c.finishFlag(name, conf, []string{strconv.FormatBool(def)})
	return c
}

// Int registers an integer flag.
func (c *Command) Int(name, shorthand, usage string, opts ...Option) *Command {
	conf := buildConf(opts)
	fault.Truef(conf.arity == 0, "arity does not apply to scalar flag %q", name)
	c.claimData(name)
	c.checkChoices(name, argmap.KindInt, conf.choices)
	def, has := mustDefault[int](name, conf)
	c.flags.IntP(name, shorthand, def, usage)
	var raws []string
	if has {
		raws = []string{strconv.Itoa(def)}
	}
	c.finishFlag(name, conf, raws)
	return c
}

// Float64 registers a floating point flag.
func (c *Command) Float64(name, shorthand, usage string, opts ...Option) *Command {
	conf := buildConf(opts)
	fault.Truef(conf.arity == 0, "arity does not apply to scalar flag %q", name)
	c.claimData(name)
	c.checkChoices(name, argmap.KindFloat, conf.choices)
	def, has := mustDefault[float64](name, conf)
	c.flags.Float64P(name, shorthand, def, usage)
	var raws []string
	if has {
		raws = []string{strconv.FormatFloat(def, 'g', -1, 64)}
	}
	c.finishFlag(name, conf, raws)
	return c
}

// String registers a string flag.
func (c *Command) String(name, shorthand, usage string, opts ...Option) *Command {
	conf := buildConf(opts)
	fault.Truef(conf.arity == 0, "arity does not apply to scalar flag %q", name)
	c.claimData(name)
	def, has := mustDefault[string](name, conf)
	c.flags.StringP(name, shorthand, def, usage)
	var raws []string
	if has {
		raws = []string{def}
	}
	c.finishFlag(name, conf, raws)
	return c
}

// IntSlice registers an integer list flag, supplied repeated or
// comma-separated. Arity fixes the exact count it accepts.
func (c *Command) IntSlice(name, shorthand, usage string, opts ...Option) *Command {
	conf := buildConf(opts)
	c.claimData(name)
	c.checkChoices(name, argmap.KindInt, conf.choices)
	def, has := mustDefault[[]int](name, conf)
	c.flags.IntSliceP(name, shorthand, def, usage)
	var raws []string
	if has {
		raws = make([]string, len(def))
		for i, v := range def {
			raws[i] = strconv.Itoa(v)
		}
	}
	c.finishFlag(name, conf, raws)
	return c
}

// Float64Slice registers a float list flag.
func (c *Command) Float64Slice(name, shorthand, usage string, opts ...Option) *Command {
	conf := buildConf(opts)
	c.claimData(name)
	c.checkChoices(name, argmap.KindFloat, conf.choices)
	def, has := mustDefault[[]float64](name, conf)
	c.flags.Float64SliceP(name, shorthand, def, usage)
	var raws []string
	if has {
		raws = make([]string, len(def))
		for i, v := range def {
			raws[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
	}
	c.finishFlag(name, conf, raws)
	return c
}

// StringSlice registers a string list flag.
func (c *Command) StringSlice(name, shorthand, usage string, opts ...Option) *Command {
	conf := buildConf(opts)
	c.claimData(name)
	def, has := mustDefault[[]string](name, conf)
	c.flags.StringSliceP(name, shorthand, def, usage)
	var raws []string
	if has {
		raws = slices.Clone(def)
	}
	c.finishFlag(name, conf, raws)
	return c
}

// Var registers a flag backed by a caller-supplied [flag.Value]
// implementation. The schema cannot classify arbitrary value types, so the
// derived spec degrades to the unknown kind and renders as free text, with
// the value's own String form as its seed. Parse results carry the String
// form too, keeping the two paths equivalent.
func (c *Command) Var(value flag.Value, name, shorthand, usage string, opts ...Option) *Command {
	fault.Truef(value != nil, "custom flag %q needs a value implementation", name)
	conf := buildConf(opts)
	fault.Truef(!conf.defaultSet, "custom flag %q carries its default in its value", name)
	fault.Truef(len(conf.choices) == 0, "choices do not apply to custom flag %q", name)
	fault.Truef(conf.arity == 0, "arity does not apply to custom flag %q", name)
	c.claimData(name)
	c.flags.VarP(value, name, shorthand, usage)
	var raws []string
	if s := value.String(); s != "" {
		raws = []string{s}
	}
	c.finishFlag(name, conf, raws)
	return c
}

// IntArg registers a required positional integer argument. Positionals are
// consumed in registration order, after flags.
func (c *Command) IntArg(dest, usage string, opts ...Option) *Command {
	c.addPositional(dest, argmap.KindInt, usage, opts)
	return c
}

// Float64Arg registers a required positional float argument.
func (c *Command) Float64Arg(dest, usage string, opts ...Option) *Command {
	c.addPositional(dest, argmap.KindFloat, usage, opts)
	return c
}

// StringArg registers a required positional string argument.
func (c *Command) StringArg(dest, usage string, opts ...Option) *Command {
	c.addPositional(dest, argmap.KindString, usage, opts)
	return c
}

func (c *Command) addPositional(dest string, kind argmap.Kind, usage string, opts []Option) {
	conf := buildConf(opts)
	fault.Truef(!conf.defaultSet, "positional %q cannot carry a default", dest)
	fault.Truef(conf.arity == 0, "arity does not apply to positional %q", dest)
	c.claimData(dest)
	c.checkChoices(dest, kind, conf.choices)
	c.positionals = append(c.positionals, &positionalArg{dest: dest, kind: kind, usage: usage, conf: conf})
	c.placeInGroup(dest, conf.group)
}

func (c *Command) positionalFor(dest string) *positionalArg {
	for _, p := range c.positionals {
		if p.dest == dest {
			return p
		}
	}
	return nil
}

func (c *Command) hasDataDest(dest string) bool {
	if f := c.flags.Lookup(dest); f != nil {
		return len(f.Annotations[annoReserved]) == 0
	}
	return c.positionalFor(dest) != nil
}

// Group declares a titled layout group. Flags registered through the
// returned handle, or through InGroup, land in it instead of the default
// section.
func (c *Command) Group(title, description string) *Group {
	fault.Truef(strings.TrimSpace(title) != "", "a layout group needs a title")
	for _, g := range c.groups {
		fault.Truef(g.title != title, "layout group %q is already declared", title)
	}
	decl := &groupDecl{title: title, description: description}
	c.groups = append(c.groups, decl)
	return &Group{cmd: c, decl: decl}
}

// Group is a registration handle bound to one titled layout group.
type Group struct {
	cmd  *Command
	decl *groupDecl
}

func (g *Group) into(opts []Option) []Option {
	return append(slices.Clone(opts), InGroup(g.decl.title))
}

func (g *Group) Bool(name, shorthand, usage string, opts ...Option) *Group {
	g.cmd.Bool(name, shorthand, usage, g.into(opts)...)
	return g
}

func (g *Group) Int(name, shorthand, usage string, opts ...Option) *Group {
	g.cmd.Int(name, shorthand, usage, g.into(opts)...)
	return g
}

func (g *Group) Float64(name, shorthand, usage string, opts ...Option) *Group {
	g.cmd.Float64(name, shorthand, usage, g.into(opts)...)
	return g
}

func (g *Group) String(name, shorthand, usage string, opts ...Option) *Group {
	g.cmd.String(name, shorthand, usage, g.into(opts)...)
	return g
}

func (g *Group) IntSlice(name, shorthand, usage string, opts ...Option) *Group {
	g.cmd.IntSlice(name, shorthand, usage, g.into(opts)...)
	return g
}

func (g *Group) Float64Slice(name, shorthand, usage string, opts ...Option) *Group {
	g.cmd.Float64Slice(name, shorthand, usage, g.into(opts)...)
	return g
}

func (g *Group) StringSlice(name, shorthand, usage string, opts ...Option) *Group {
	g.cmd.StringSlice(name, shorthand, usage, g.into(opts)...)
	return g
}

// Exclusive declares that at most one of the named destinations may be
// supplied. The destinations must already be registered. The constraint
// binds regardless of which layout group the members sit in.
func (c *Command) Exclusive(dests ...string) *Exclusive {
	fault.Truef(len(dests) > 0, "an exclusive set needs at least one destination")
	for _, d := range dests {
		fault.Truef(c.hasDataDest(d), "exclusive set references unknown destination %q on command %q", d, c.name)
		fault.Truef(c.positionalFor(d) == nil, "exclusive set member %q must be optional, not positional", d)
	}
	x := &Exclusive{dests: slices.Clone(dests)}
	c.exclusives = append(c.exclusives, x)
	return x
}

// Exclusive is a declared mutually exclusive set of destinations.
type Exclusive struct {
	title    string
	required bool
	dests    []string
}

// Require marks the set required: a parse must supply exactly one member.
func (x *Exclusive) Require() *Exclusive {
	x.required = true
	return x
}

// Titled names the set for layout purposes. Untitled sets render with a
// positional section label.
func (x *Exclusive) Titled(title string) *Exclusive {
	x.title = title
	return x
}

// Subcommands declares the selector destination for nested commands. A
// command holds at most one selector; the subcommand token is consumed
// after this command's positionals.
func (c *Command) Subcommands(dest, usage string, opts ...Option) *Selector {
	fault.Truef(c.selector == nil, "command %q already declares subcommands", c.name)
	conf := buildConf(opts)
	fault.Truef(!conf.defaultSet, "selector %q cannot carry a default", dest)
	c.claimData(dest)
	c.selector = &Selector{
		owner:   c,
		dest:    dest,
		usage:   usage,
		conf:    conf,
		aliases: map[string]*Command{},
	}
	return c.selector
}

// Selector owns the nested subcommands of one Command and the destination
// that records which of them was chosen.
type Selector struct {
	owner   *Command
	dest    string
	usage   string
	conf    regConf
	subs    []*Command
	aliases map[string]*Command
}

// AddCommand declares a subcommand. The name and aliases are cleansed to
// lower case with whitespace removed.
func (s *Selector) AddCommand(name, description string, aliases ...string) *Command {
	cleansed := cleanseName(name)
	fault.Truef(cleansed != "", "a subcommand needs a name")
	fault.Truef(s.lookup(cleansed) == nil, "subcommand %q is already declared", cleansed)
	sub := newCommand(cleansed, description, s.owner)
	s.subs = append(s.subs, sub)
	for _, alias := range aliases {
		alias = cleanseName(alias)
		if alias == "" {
			continue
		}
		fault.Truef(s.lookup(alias) == nil, "subcommand alias %q is already taken", alias)
		s.aliases[alias] = sub
		sub.aliases = append(sub.aliases, alias)
	}
	slices.Sort(sub.aliases)
	return sub
}

func (s *Selector) lookup(token string) *Command {
	token = cleanseName(token)
	for _, sub := range s.subs {
		if sub.name == token {
			return sub
		}
	}
	return s.aliases[token]
}

func (s *Selector) names() []string {
	names := make([]string, len(s.subs))
	for i, sub := range s.subs {
		names[i] = sub.name
	}
	return names
}
