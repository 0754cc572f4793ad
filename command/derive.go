package command

import (
	"maps"
	"slices"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/Sorcerio/flagform/argmap"
	"github.com/Sorcerio/flagform/internal/fault"
)

// BuildScope flattens the definition into the schema the resolver and form
// engine consume. Destinations appear in registration order; reserved
// control flags are left out. Nested subcommands derive recursively, so the
// root scope carries the whole tree.
func (c *Command) BuildScope() *argmap.Scope {
	sc := &argmap.Scope{Prog: c.name, Description: c.description}
	for _, dest := range c.order {
		if c.selector != nil && dest == c.selector.dest {
			sc.Specs = append(sc.Specs, c.selector.buildSpec())
			continue
		}
		if f := c.flags.Lookup(dest); f != nil {
			sc.Specs = append(sc.Specs, specFromFlag(f))
			continue
		}
		p := c.positionalFor(dest)
		fault.Truef(p != nil, "destination %q has no registration on command %q", dest, c.name)
		sc.Specs = append(sc.Specs, specFromPositional(p))
	}
	for _, g := range c.groups {
		sc.GroupDecls = append(sc.GroupDecls, argmap.GroupDecl{
			Title:       g.title,
			Description: g.description,
			Dests:       slices.Clone(g.dests),
		})
	}
	for _, x := range c.exclusives {
		sc.ExclusiveDecls = append(sc.ExclusiveDecls, argmap.ExclusiveDecl{
			Title:    x.title,
			Required: x.required,
			Dests:    slices.Clone(x.dests),
		})
	}
	return sc
}

// kindOf maps a pflag value type onto the schema kind, with the list
// element kind as the second return. Types outside the mapped set degrade
// to [argmap.KindUnknown].
func kindOf(f *flag.Flag) (argmap.Kind, argmap.Kind) {
	switch f.Value.Type() {
	case "bool":
		if first(f.Annotations[annoDefault]) == "true" {
			return argmap.KindFlagFalse, argmap.KindUnknown
		}
		return argmap.KindFlagTrue, argmap.KindUnknown
	case "int":
		return argmap.KindInt, argmap.KindUnknown
	case "float64":
		return argmap.KindFloat, argmap.KindUnknown
	case "string":
		return argmap.KindString, argmap.KindUnknown
	case "intSlice":
		return argmap.KindList, argmap.KindInt
	case "float64Slice":
		return argmap.KindList, argmap.KindFloat
	case "stringSlice", "stringArray":
		return argmap.KindList, argmap.KindString
	default:
		return argmap.KindUnknown, argmap.KindUnknown
	}
}

func specFromFlag(f *flag.Flag) *argmap.Spec {
	kind, elem := kindOf(f)
	sp := &argmap.Spec{
		Dest:     f.Name,
		Kind:     kind,
		Elem:     elem,
		Required: len(f.Annotations[annoRequired]) > 0,
		Choices:  slices.Clone(f.Annotations[annoChoices]),
		Meta: argmap.Metadata{
			Label:       first(f.Annotations[annoLabel]),
			Help:        f.Usage,
			Placeholder: first(f.Annotations[annoMetavar]),
			Hints:       parseHints(f.Annotations[annoHints]),
		},
	}
	if n, err := strconv.Atoi(first(f.Annotations[annoArity])); err == nil {
		sp.Arity = n
	}
	if len(sp.Choices) > 0 && sp.Kind.Scalar() {
		sp.Elem = sp.Kind
		sp.Kind = argmap.KindChoice
	}
	sp.Default = typedDefault(sp, f.Annotations[annoDefault])
	return sp
}

func specFromPositional(p *positionalArg) *argmap.Spec {
	sp := &argmap.Spec{
		Dest:       p.dest,
		Kind:       p.kind,
		Required:   true,
		Positional: true,
		Choices:    slices.Clone(p.conf.choices),
		Meta: argmap.Metadata{
			Label:       p.conf.label,
			Help:        p.usage,
			Placeholder: p.conf.metavar,
			Hints:       maps.Clone(p.conf.hints),
		},
	}
	if len(sp.Choices) > 0 {
		sp.Elem = sp.Kind
		sp.Kind = argmap.KindChoice
	}
	return sp
}

func (s *Selector) buildSpec() *argmap.Spec {
	sp := &argmap.Spec{
		Dest:     s.dest,
		Kind:     argmap.KindSelector,
		Required: s.conf.required,
		Meta: argmap.Metadata{
			Label: s.conf.label,
			Help:  s.usage,
			Hints: maps.Clone(s.conf.hints),
		},
	}
	for _, sub := range s.subs {
		sp.SubScopes = append(sp.SubScopes, argmap.SubScope{Name: sub.name, Scope: sub.BuildScope()})
	}
	return sp
}

// typedDefault rebuilds the typed default from its annotated raw form, per
// the derived spec's final kind. The raws were validated at registration, so
// failed coercions cannot happen here; a nil element would only reflect one.
func typedDefault(sp *argmap.Spec, raws []string) any {
	if len(raws) == 0 {
		return nil
	}
	switch sp.Kind {
	case argmap.KindList:
		vals := make([]any, len(raws))
		for i, raw := range raws {
			vals[i], _ = argmap.CoerceScalar(textFallback(sp.Elem), raw)
		}
		return vals
	case argmap.KindFlagTrue, argmap.KindFlagFalse:
		return raws[0] == "true"
	case argmap.KindChoice:
		v, _ := argmap.CoerceScalar(textFallback(sp.Elem), raws[0])
		return v
	default:
		v, _ := argmap.CoerceScalar(sp.Kind, raws[0])
		return v
	}
}

func textFallback(k argmap.Kind) argmap.Kind {
	if k == argmap.KindUnknown {
		return argmap.KindString
	}
	return k
}
