// Command flagform-demo exercises the full flagform surface: a command
// definition with every argument kind, layout groups, exclusive sets, and
// subcommands. It prints the resolved layout, then parses its own command
// line through the interactive wrapper. Passing --form routes the run
// through a scripted renderer that stands in for a real form toolkit.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/fatih/color"

	"github.com/Sorcerio/flagform"
	"github.com/Sorcerio/flagform/argmap"
	"github.com/Sorcerio/flagform/command"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		if errors.Is(err, command.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		if errors.Is(err, &command.UsageError{}) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, argv []string) error {
	level := slog.LevelWarn
	if slices.Contains(argv, "--verbose") || slices.Contains(argv, "-v") {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cmd := buildCommand()
	printLayout(cmd)

	wrapped := flagform.Wrap(cmd,
		flagform.WithLogger(log),
		flagform.WithTTYGuard(),
		flagform.WithRenderer(flagform.RendererFunc(runScriptedForm)),
	)
	args, err := wrapped.ParseArgs(ctx, argv)
	if err != nil {
		return err
	}
	printResults(args)
	return nil
}

// buildCommand declares the demonstration surface: one of everything.
func buildCommand() *command.Command {
	cmd := command.New("flagform-demo", "A demonstration of the interactive form wrapper.")
	cmd.ReserveBool("verbose", "v", "Enables debug logging")

	cmd.IntArg("magicNumber", "A required int argument", command.Metavar("NUM"))
	cmd.String("string", "s", "A string argument")
	cmd.Int("integer", "i", "An integer argument", command.Default(32))
	cmd.Float64("float", "f", "A float argument")
	cmd.Bool("boolTrue", "t", "A boolean argument")
	cmd.Bool("boolFalse", "", "An inverted boolean argument", command.Default(true), command.Required())
	cmd.Int("choice", "c", "A choice argument", command.Choices("1", "2", "3"))
	cmd.IntSlice("size", "", "Takes exactly two values", command.Arity(2), command.Metavar("WIDTH HEIGHT"))
	cmd.StringSlice("list", "l", "A list argument")
	cmd.IntSlice("defaultList", "", "A list argument with seeded values", command.Default([]int{69, 420, 1337}))

	cmd.Group("Group 1", "This is the first group.").
		Int("group1A", "", "1st argument in group 1").
		Int("group1B", "", "2nd argument in group 1")
	cmd.Group("Group 2", "This is the second group.").
		Int("group2A", "", "1st argument in group 2").
		Int("group2B", "", "2nd argument in group 2")

	cmd.Int("mutual1A", "", "1st argument in mutual group 1")
	cmd.Int("mutual1B", "", "2nd argument in mutual group 1")
	cmd.Exclusive("mutual1A", "mutual1B")

	// These two stay in their titled group; the exclusivity binds at the
	// value level without relocating them into their own section.
	cmd.Group("Mutual Group 2", "This is the second mutual group.").
		Int("mutual2A", "", "1st argument in mutual group 2").
		Int("mutual2B", "", "2nd argument in mutual group 2")
	cmd.Exclusive("mutual2A", "mutual2B").Require()

	cmd.Int("mutual3A", "", "1st argument in mutual group 3")
	cmd.Int("mutual3B", "", "2nd argument in mutual group 3")
	cmd.Exclusive("mutual3A", "mutual3B").Require()

	sel := cmd.Subcommands("command", "A subcommand")
	sel.AddCommand("foo", "The foo subcommand").
		Int("x", "x", "A number for foo", command.Default(1))
	bar := sel.AddCommand("bar", "The bar subcommand")
	bar.Float64Arg("y", "A float argument")
	bar.String("string", "s", "A string argument")
	sel.AddCommand("third", "The third subcommand").
		Bool("b", "b", "A boolean argument")

	return cmd
}

// printLayout shows what the resolver makes of the definition, the view a
// render adapter would walk to draw the form.
func printLayout(cmd *command.Command) {
	color.New(color.FgCyan, color.Bold).Println("Resolved layout:")
	fmt.Print(argmap.Describe(argmap.Resolve(cmd.BuildScope())))
	fmt.Println()
}

// runScriptedForm stands in for an interactive renderer: it materializes the
// whole root layout, then applies a canned series of edits the way a user
// filling the form would.
func runScriptedForm(ctx context.Context, s *flagform.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	color.New(color.FgCyan, color.Bold).Println("Scripted form session:")

	eng := s.Engine()
	root := s.Root()
	for _, g := range s.Groups(root) {
		fmt.Println(color.GreenString(g.Label()))
		for _, sp := range g.Members() {
			r := eng.Materialize(sp)
			fmt.Printf("  %-20s %s\n", r.Label, r.Kind)
		}
	}

	eng.SetScalar("magicNumber", "7")
	eng.SetScalar("string", "hello")
	eng.SetScalar("float", "1.5")
	eng.SetBool("boolTrue", true)
	eng.SetBool("boolFalse", false)
	eng.SetChoice("choice", "2")

	addItem := func(dest, raw string) {
		if id, ok := eng.AddListItem(dest); ok {
			eng.SetListItem(dest, id, raw)
		}
	}
	addItem("size", "1920")
	addItem("size", "1080")
	addItem("list", "alpha")
	addItem("list", "beta")

	// Drop the middle seeded value; the remaining items keep their ids.
	seeded := eng.Materialize(root.Spec("defaultList"))
	if len(seeded.Items) > 1 {
		eng.RemoveListItem("defaultList", seeded.Items[1].ID)
	}

	// Last touch wins within an exclusive set.
	eng.SetScalar("mutual1A", "10")
	eng.SetScalar("mutual1B", "20")
	eng.SetScalar("mutual2A", "30")
	eng.SetScalar("mutual3B", "40")

	// Entering the bar subcommand scope: its string argument shadows the
	// root one while bar stays selected.
	eng.SelectSubcommand("command", "bar")
	barScope := root.Spec("command").SubScope("bar")
	for _, sp := range barScope.Specs {
		eng.Materialize(sp)
	}
	eng.SetScalar("y", "1.5")
	eng.SetScalar("string", "hello from bar")
	return nil
}

func printResults(args map[string]any) {
	color.New(color.FgCyan, color.Bold).Println("\nParsed arguments:")
	dests := make([]string, 0, len(args))
	for dest := range args {
		dests = append(dests, dest)
	}
	slices.Sort(dests)
	for _, dest := range dests {
		v := args[dest]
		if v == nil {
			fmt.Printf("  %s = %s\n", dest, color.YellowString("unset"))
			continue
		}
		fmt.Printf("  %s = %v (%T)\n", dest, v, v)
	}
}
