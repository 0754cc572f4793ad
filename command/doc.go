/*
Package command defines a CLI's argument surface once and serves it two
ways: a native parse of command-line text, and a schema that drives an
interactive form producing the same result shape.

A few opinionated policies keep both paths predictable.

  - This package uses [pflag] for posix style flags.
  - Flags are NOT interspersed with arguments. Flags come first, then
    positionals in registration order, then an optional subcommand token.
  - Registration order is preserved everywhere: in usage text, in the
    derived schema, and in the groups a form renders.
  - User-visible output goes to STDERR through a shared [Printer], keeping
    STDOUT clean for results.
  - '--help' and '-h' are reserved on every command and print usage.

# Invocation

Every level of a command tree follows the same form:

	CLI_NAME [FLAGS...] [ARGS...] [SUB-COMMAND [FLAGS...] [ARGS...]]

# Definition

Flags and arguments are registered through typed methods, tuned with
options:

	cmd := command.New("demo", "A demonstration.")
	cmd.IntArg("magicNumber", "A required int argument", command.Metavar("NUM"))
	cmd.Int("integer", "i", "An integer argument", command.Default(32))
	cmd.Int("choice", "c", "A choice argument", command.Choices("1", "2", "3"))
	cmd.Group("Group 1", "This is the first group.").
		Int("group1A", "", "1st argument in group 1")
	cmd.Exclusive("mutual1A", "mutual1B")

[Command.Parse] runs the native path and returns a flat destination-to-value
map. [Command.BuildScope] derives the schema the form side consumes; the
form's snapshot and the native result are interchangeable.

Validation failures surface as a [UsageError]. A requested help text parses
to [ErrHelp] after printing, which callers treat as a clean exit.

[pflag]: https://github.com/spf13/pflag
*/
package command
