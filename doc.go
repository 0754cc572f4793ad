/*
Package flagform routes one command-line invocation down one of two paths
that produce the same result shape: a native parse of the given arguments,
or an interactive form over the same definition.

A reserved boolean flag (--form by default) is the switch. When it is absent
the wrapped command parses argv exactly as it would have without the
wrapper. When it is present the rest of the command line is ignored and a
[Renderer], the widget layer supplied by the caller, drives a [Session]
until the user submits; the session's snapshot is returned in place of a
parse result.

	cmd := command.New("demo", "A demonstration.")
	cmd.IntArg("magicNumber", "A required int argument")
	cmd.String("string", "s", "A string argument")

	w := flagform.Wrap(cmd, flagform.WithRenderer(myRenderer))
	args, err := w.ParseArgs(ctx, os.Args[1:])

Either way the result is a flat destination-to-value map: nil for unset,
typed scalars, []any for lists, and the selected subcommand's destinations
merged in beside its selector's.

A [Session] hands the renderer everything it needs: the schema tree built by
[command.Command.BuildScope], the resolved layout groups of every scope in
it ([argmap.Resolve] output), and the [formstate.Engine] that tracks edits
and reduces to the final snapshot.
*/
package flagform
