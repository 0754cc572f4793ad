package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsage_Synopsis(t *testing.T) {
	cmd := New("demo", "A demonstration.")
	cmd.IntArg("magicNumber", "The magic number", Metavar("NUM"))
	cmd.Subcommands("command", "A subcommand").AddCommand("foo", "")

	usage := cmd.Usage()
	assert.Contains(t, usage, "USAGE:\n  demo [FLAGS] NUM [COMMAND]\n")
	assert.Contains(t, usage, "\nA demonstration.\n")
}

func TestUsage_RequiredSelectorSynopsis(t *testing.T) {
	cmd := New("demo", "")
	cmd.Subcommands("command", "A subcommand", Required()).AddCommand("foo", "")
	assert.Contains(t, cmd.Usage(), "USAGE:\n  demo [FLAGS] COMMAND\n")
}

func TestUsage_PositionalsFallBackToDestName(t *testing.T) {
	cmd := New("demo", "")
	cmd.StringArg("fruit", "A fruit to eat")
	assert.Contains(t, cmd.Usage(), "USAGE:\n  demo [FLAGS] fruit\n")
	assert.Contains(t, cmd.Usage(), "ARGUMENTS\n  fruit\tA fruit to eat\n")
}

func TestUsage_Sections(t *testing.T) {
	cmd := New("demo", "")
	cmd.Int("integer", "i", "An integer argument", Default(32))
	sel := cmd.Subcommands("command", "A subcommand")
	sel.AddCommand("foo", "The foo subcommand")
	sel.AddCommand("bar", "The bar subcommand", "b")

	usage := cmd.Usage()
	assert.Contains(t, usage, "\nFLAGS\n")
	assert.Contains(t, usage, "-h, --help")
	assert.Contains(t, usage, "-i, --integer int")
	assert.Contains(t, usage, "(default 32)")
	assert.Contains(t, usage, "COMMANDS\n  bar, b\tThe bar subcommand\n  foo   \tThe foo subcommand\n",
		"subcommands list sorted by name with aliases attached")
}

func TestUsage_SubcommandCarriesFullPath(t *testing.T) {
	cmd := New("demo", "")
	foo := cmd.Subcommands("command", "A subcommand").AddCommand("foo", "The foo subcommand")
	foo.Float64Arg("y", "A float positional")

	assert.Contains(t, foo.Usage(), "USAGE:\n  demo foo [FLAGS] y\n")
}

func TestPrintUsage_FollowsRedirect(t *testing.T) {
	var buf strings.Builder
	cmd := New("demo", "A demonstration.")
	cmd.Printer().Redirect(&buf)
	cmd.PrintUsage()
	assert.Contains(t, buf.String(), "USAGE:\n  demo [FLAGS]\n")
}
