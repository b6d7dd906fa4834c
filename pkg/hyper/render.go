package hyper

import (
	"log/slog"
)

// Renderer owns one driver instance and the expression it renders.
// It is not safe for concurrent use; callers that rerender from several
// goroutines must serialize the calls.
type Renderer struct {
	expr   any
	driver Driver
	walker *walker
	logger *slog.Logger

	result any
	frames int
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for frame diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer validates factory and expr and instantiates the driver,
// without rendering. Call Rerender(Rerender) to run the first frame.
func NewRenderer(factory Factory, expr any, opts ...Option) (*Renderer, error) {
	if factory == nil {
		return nil, fail(ErrInvalidDriver).
			WithDetail("driver factory is nil").
			WithSuggestion("Pass a hyper.Factory such as render.Driver(render.Config{})")
	}
	if !isRootExpression(expr) {
		return nil, fail(ErrInvalidExpression).
			WithDetail(typeName(expr) + " is not a string, []any or template")
	}

	r := &Renderer{
		expr:   expr,
		logger: slog.Default().With("component", "renderer"),
	}
	for _, opt := range opts {
		opt(r)
	}

	d := factory(r.Rerender)
	if err := validateDriver(d); err != nil {
		return nil, err
	}
	r.driver = d
	r.walker = newWalker(d)
	return r, nil
}

// Render runs one frame of expr through the driver built by factory and
// returns the top-level effect.
//
//	html, err := hyper.Render(render.Driver(render.Config{}), []any{"div", "Hello"})
//	// html == "<div>Hello</div>"
func Render(factory Factory, expr any, opts ...Option) (any, error) {
	r, err := NewRenderer(factory, expr, opts...)
	if err != nil {
		return nil, err
	}
	if err := r.Rerender(Rerender); err != nil {
		return nil, err
	}
	return r.Result(), nil
}

// Rerender is the entry point drivers call back into. A SignalRerender runs
// exactly one complete frame before returning; the renderer itself never
// batches or coalesces requests. Other signals are dropped.
func (r *Renderer) Rerender(sig Signal) error {
	if sig.Kind != SignalRerender {
		r.logger.Debug("signal dropped", "signal", sig.Kind.String())
		return nil
	}
	return r.frame()
}

func (r *Renderer) frame() error {
	r.frames++
	frame := r.frames

	r.logger.Debug("frame start", "frame", frame)
	r.walker.receive(Signal{Kind: SignalFrameStart, Payload: frame})

	result, err := r.walker.walk(r.expr, Path{0})
	if err != nil {
		r.logger.Debug("frame aborted", "frame", frame, "error", err)
		r.walker.receive(Signal{Kind: SignalFrameEnd, Payload: err})
		return err
	}

	r.walker.visit("", nil, CollectionEnd, Path{0})
	r.walker.receive(Signal{Kind: SignalFrameEnd})
	r.result = result

	r.logger.Debug("frame end", "frame", frame)
	return nil
}

// Result returns the top-level effect of the last successful frame.
func (r *Renderer) Result() any {
	return r.result
}

// Frames returns the number of frames started so far.
func (r *Renderer) Frames() int {
	return r.frames
}

// Driver returns the driver instance built for this renderer.
func (r *Renderer) Driver() Driver {
	return r.driver
}

func isRootExpression(expr any) bool {
	switch expr.(type) {
	case string, []any:
		return true
	}
	_, ok := AsCallable(expr)
	return ok
}

func validateDriver(d Driver) error {
	switch o := d.(type) {
	case nil:
		return fail(ErrInvalidDriver).WithDetail("factory returned a nil driver")
	case Ops:
		if o.OnVisit == nil {
			return fail(ErrInvalidDriver).WithDetail("driver has no visit operation")
		}
	case *Ops:
		if o == nil || o.OnVisit == nil {
			return fail(ErrInvalidDriver).WithDetail("driver has no visit operation")
		}
	}
	return nil
}
