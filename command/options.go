package command

import (
	"github.com/Sorcerio/flagform/internal/fault"
)

// Option tunes a single flag or argument registration.
type Option func(*regConf)

type regConf struct {
	required     bool
	choices      []string
	defaultValue any
	defaultSet   bool
	arity        int
	metavar      string
	label        string
	hints        map[string]string
	group        string
}

func buildConf(opts []Option) regConf {
	var conf regConf
	for _, opt := range opts {
		opt(&conf)
	}
	return conf
}

// mustDefault pulls the typed default out of a registration, reporting
// whether one was given. A default of the wrong type is a definition bug.
func mustDefault[T any](dest string, conf regConf) (T, bool) {
	var zero T
	if !conf.defaultSet {
		return zero, false
	}
	v, ok := conf.defaultValue.(T)
	fault.Truef(ok, "default for %q must be %T, got %T", dest, zero, conf.defaultValue)
	return v, true
}

// Default seeds the destination with a typed starting value. The value's
// type must match the registration: int for Int, []int for IntSlice, and so
// on. On Bool, Default(true) flips the flag into its inverted form.
func Default(v any) Option {
	return func(conf *regConf) {
		conf.defaultValue = v
		conf.defaultSet = true
	}
}

// Required makes a parse fail when the flag is not supplied.
func Required() Option {
	return func(conf *regConf) {
		conf.required = true
	}
}

// Choices restricts the accepted values to the given set, written in raw
// command-line form. The raws must coerce to the flag's value type.
func Choices(values ...string) Option {
	return func(conf *regConf) {
		conf.choices = append(conf.choices, values...)
	}
}

// Arity fixes the exact number of values a list flag takes. Zero, the
// default, leaves it unbounded.
func Arity(n int) Option {
	return func(conf *regConf) {
		fault.Truef(n >= 0, "arity must not be negative, got %d", n)
		conf.arity = n
	}
}

// Metavar sets the placeholder text shown in usage and form inputs.
func Metavar(s string) Option {
	return func(conf *regConf) {
		conf.metavar = s
	}
}

// Label overrides the human-readable form label. Without one, the label is
// humanized from the destination name.
func Label(s string) Option {
	return func(conf *regConf) {
		conf.label = s
	}
}

// Hint attaches an opaque key/value pair for render adapters, for shapes
// the kind system does not model.
func Hint(key, value string) Option {
	return func(conf *regConf) {
		if conf.hints == nil {
			conf.hints = map[string]string{}
		}
		conf.hints[key] = value
	}
}

// InGroup places the destination in a previously declared layout group.
func InGroup(title string) Option {
	return func(conf *regConf) {
		conf.group = title
	}
}
