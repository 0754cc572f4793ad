package flagform

import "context"

// Renderer is the render adapter boundary. It draws the form however it
// likes, feeds the user's edits into the session's engine as they happen,
// and returns once the user submits. The library ships no widget toolkit; a
// Renderer is where one plugs in.
//
// The engine applies edits strictly in call order and holds no locks, so a
// Renderer must funnel its events through a single dispatch goroutine.
type Renderer interface {
	Run(ctx context.Context, session *Session) error
}

// RendererFunc adapts a plain function to the [Renderer] interface.
type RendererFunc func(ctx context.Context, session *Session) error

func (f RendererFunc) Run(ctx context.Context, session *Session) error {
	return f(ctx, session)
}
