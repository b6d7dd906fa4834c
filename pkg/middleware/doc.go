// Package middleware provides driver decorators for hyper renderers.
//
// Every decorator wraps a hyper.Factory and keeps the wrapped driver's
// operations, overriding only what it observes. Combine them with
// hyper.Chain; the first decorator listed is the outermost.
//
//	factory := hyper.Chain(
//	    middleware.Logging(logger),
//	    middleware.OpenTelemetry(middleware.WithTracerName("my-app")),
//	    middleware.Prometheus(middleware.WithRegistry(reg)),
//	)(render.Driver(render.Config{}))
//
// # Tracing visits
//
// Trace reports one line per element, text and special visit in the order
// the engine makes them:
//
//	0000: [0] ELEMENT_NODE(1) <div>
//	0001: [0,0] TEXT_NODE(3) 'hello'
//
// # Static rendering
//
// Static hands the wrapped driver a rerender function that does nothing,
// so interactions can never trigger another frame.
//
// # OpenTelemetry
//
// OpenTelemetry opens one span per frame and records a span event per
// element. The tracer comes from the global provider unless
// WithTracerProvider is given.
//
// # Prometheus Metrics
//
// Prometheus collects:
//   - hyper_frames_total: Counter of frames by status
//   - hyper_frame_duration_seconds: Histogram of frame duration
//   - hyper_visits_total: Counter of visits by node kind
//   - hyper_signals_total: Counter of signals raised by drivers
package middleware
