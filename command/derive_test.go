package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sorcerio/flagform/argmap"
)

// rgbValue is a minimal custom pflag value, the shape callers hand to Var.
type rgbValue string

func (v *rgbValue) String() string     { return string(*v) }
func (v *rgbValue) Set(s string) error { *v = rgbValue(s); return nil }
func (v *rgbValue) Type() string       { return "rgb" }

func TestBuildScope_OrderAndKinds(t *testing.T) {
	cmd := New("demo", "A demonstration.")
	cmd.IntArg("magicNumber", "A required int argument")
	cmd.String("string", "s", "A string argument")
	cmd.Int("integer", "i", "An integer argument", Default(32))
	cmd.Float64("float", "f", "A float argument")
	cmd.Bool("boolTrue", "t", "Stores true when supplied")
	cmd.Bool("boolFalse", "", "Stores false when supplied", Default(true))
	cmd.Int("choice", "c", "A choice argument", Choices("1", "2", "3"), Default(2))
	cmd.IntSlice("size", "", "Takes a pair of values", Arity(2))
	cmd.Float64Slice("ratios", "", "A float list argument")
	cmd.IntSlice("defaultList", "", "A list with a seeded value", Default([]int{69, 420, 1337}))
	cmd.Subcommands("command", "A subcommand").AddCommand("foo", "The foo subcommand")

	sc := cmd.BuildScope()
	assert.Equal(t, "demo", sc.Prog)
	assert.Equal(t, "A demonstration.", sc.Description)

	var dests []string
	for _, sp := range sc.Specs {
		dests = append(dests, sp.Dest)
	}
	assert.Equal(t, []string{
		"magicNumber", "string", "integer", "float", "boolTrue", "boolFalse",
		"choice", "size", "ratios", "defaultList", "command",
	}, dests, "specs keep registration order")

	pos := sc.Spec("magicNumber")
	assert.Equal(t, argmap.KindInt, pos.Kind)
	assert.True(t, pos.Positional)
	assert.True(t, pos.Required)

	assert.Equal(t, argmap.KindString, sc.Spec("string").Kind)
	assert.Nil(t, sc.Spec("string").Default, "no declared default reads as unset")

	assert.Equal(t, argmap.KindInt, sc.Spec("integer").Kind)
	assert.Equal(t, 32, sc.Spec("integer").Default)

	assert.Equal(t, argmap.KindFloat, sc.Spec("float").Kind)

	assert.Equal(t, argmap.KindFlagTrue, sc.Spec("boolTrue").Kind)
	assert.Equal(t, false, sc.Spec("boolTrue").Default)
	assert.Equal(t, argmap.KindFlagFalse, sc.Spec("boolFalse").Kind)
	assert.Equal(t, true, sc.Spec("boolFalse").Default)

	choice := sc.Spec("choice")
	assert.Equal(t, argmap.KindChoice, choice.Kind, "scalar choices promote the kind")
	assert.Equal(t, argmap.KindInt, choice.Elem)
	assert.Equal(t, []string{"1", "2", "3"}, choice.Choices)
	assert.Equal(t, 2, choice.Default, "choice defaults coerce to the element kind")

	size := sc.Spec("size")
	assert.Equal(t, argmap.KindList, size.Kind)
	assert.Equal(t, argmap.KindInt, size.Elem)
	assert.Equal(t, 2, size.Arity)

	assert.Equal(t, argmap.KindFloat, sc.Spec("ratios").Elem)

	seeded := sc.Spec("defaultList")
	assert.Equal(t, []any{69, 420, 1337}, seeded.Default, "list defaults coerce per element")

	sel := sc.Spec("command")
	assert.Equal(t, argmap.KindSelector, sel.Kind)
	assert.False(t, sel.Required)
	assert.Equal(t, []string{"foo"}, sel.SubNames())
}

func TestBuildScope_Metadata(t *testing.T) {
	cmd := New("demo", "")
	cmd.Int("magicNumber", "", "The magic number",
		Label("Magic"), Metavar("NUM"), Hint("widget", "spinner"), Hint("step", "1"))

	meta := cmd.BuildScope().Spec("magicNumber").Meta
	assert.Equal(t, "Magic", meta.Label)
	assert.Equal(t, "The magic number", meta.Help)
	assert.Equal(t, "NUM", meta.Placeholder)
	assert.Equal(t, map[string]string{"widget": "spinner", "step": "1"}, meta.Hints)
}

func TestBuildScope_PositionalChoicePromotion(t *testing.T) {
	cmd := New("demo", "")
	cmd.StringArg("fruit", "A fruit to eat", Choices("apple", "pear"), Metavar("FRUIT"))

	sp := cmd.BuildScope().Spec("fruit")
	assert.Equal(t, argmap.KindChoice, sp.Kind)
	assert.Equal(t, argmap.KindString, sp.Elem)
	assert.True(t, sp.Positional)
	assert.Equal(t, "FRUIT", sp.Meta.Placeholder)
}

func TestBuildScope_ReservedFlagsLeftOut(t *testing.T) {
	cmd := New("demo", "")
	cmd.ReserveBool("control", "", "A control flag")
	cmd.Int("x", "", "An int")

	sc := cmd.BuildScope()
	assert.Nil(t, sc.Spec("help"))
	assert.Nil(t, sc.Spec("control"))
	require.Len(t, sc.Specs, 1)
	assert.Equal(t, "x", sc.Specs[0].Dest)
}

func TestBuildScope_SelectorRecursion(t *testing.T) {
	cmd := New("demo", "")
	sel := cmd.Subcommands("command", "A subcommand", Required())
	sel.AddCommand("foo", "The foo subcommand").Int("x", "x", "A number", Default(1))
	bar := sel.AddCommand("bar", "The bar subcommand")
	bar.Float64Arg("y", "A float positional")
	bar.Subcommands("inner", "Deeper still").AddCommand("baz", "The baz subcommand")

	sp := cmd.BuildScope().Spec("command")
	require.Equal(t, argmap.KindSelector, sp.Kind)
	assert.True(t, sp.Required)
	assert.Equal(t, []string{"foo", "bar"}, sp.SubNames())

	foo := sp.SubScope("foo")
	require.NotNil(t, foo)
	assert.Equal(t, "foo", foo.Prog)
	assert.Equal(t, 1, foo.Spec("x").Default)

	barScope := sp.SubScope("bar")
	require.NotNil(t, barScope)
	assert.True(t, barScope.Spec("y").Positional)
	assert.Equal(t, []string{"baz"}, barScope.Spec("inner").SubNames())

	assert.Nil(t, sp.SubScope("ghost"))
}

func TestBuildScope_CustomValueDegradesToUnknown(t *testing.T) {
	seeded := rgbValue("0,0,0")
	blank := rgbValue("")
	cmd := New("demo", "")
	cmd.Var(&seeded, "color", "", "A color value")
	cmd.Var(&blank, "tint", "", "An unseeded color value")

	sc := cmd.BuildScope()
	color := sc.Spec("color")
	assert.Equal(t, argmap.KindUnknown, color.Kind)
	assert.Equal(t, "0,0,0", color.Default, "the value's string form seeds the schema")
	assert.Nil(t, sc.Spec("tint").Default)
}
