package flagform

import (
	"context"
	"fmt"

	"github.com/Sorcerio/flagform/command"
)

func ExampleWrap() {
	// Define the command once; both paths serve it.
	cmd := command.New("greet", "Greets someone.")
	cmd.StringArg("name", "Who to greet")
	cmd.Int("times", "n", "How many times to greet", command.Default(1))

	// The renderer is the widget layer. This one is scripted; a real one
	// would draw the session's groups and forward user edits.
	renderer := RendererFunc(func(_ context.Context, s *Session) error {
		for _, g := range s.Groups(s.Root()) {
			for _, sp := range g.Members() {
				s.Engine().Materialize(sp)
			}
		}
		s.Engine().SetScalar("name", "gopher")
		s.Engine().SetScalar("times", "3")
		return nil
	})

	w := Wrap(cmd, WithRenderer(renderer))

	// A plain command line parses natively; the renderer never runs.
	args, _ := w.ParseArgs(context.Background(), []string{"-n", "2", "sam"})
	fmt.Println(args["name"], args["times"])

	// The reserved flag routes into the form instead.
	args, _ = w.ParseArgs(context.Background(), []string{"--form"})
	fmt.Println(args["name"], args["times"])

	// Output:
	// sam 2
	// gopher 3
}
