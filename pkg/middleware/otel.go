package middleware

import (
	"context"
	"fmt"

	"github.com/vango-dev/hyper/pkg/hyper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for hyper renderers.
const defaultTracerName = "hyper"

// OTelConfig configures the OpenTelemetry decorator.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "hyper").
	TracerName string

	// TracerProvider supplies the tracer.
	// Default: the global provider (otel.GetTracerProvider()).
	TracerProvider trace.TracerProvider

	// VisitEvents records a span event for every element visit.
	// Enabled by default.
	VisitEvents bool

	// Context returns the parent context for each frame span.
	// Default: context.Background.
	Context func() context.Context

	// tracer is the resolved tracer instance.
	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry decorator.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithVisitEvents enables/disables per-element span events.
func WithVisitEvents(enabled bool) OTelOption {
	return func(c *OTelConfig) {
		c.VisitEvents = enabled
	}
}

// WithParentContext sets the function providing each frame's parent context,
// e.g. the request context of a live session.
func WithParentContext(fn func() context.Context) OTelOption {
	return func(c *OTelConfig) {
		c.Context = fn
	}
}

// defaultOTelConfig returns the default OpenTelemetry configuration.
func defaultOTelConfig() OTelConfig {
	return OTelConfig{
		TracerName:  defaultTracerName,
		VisitEvents: true,
		Context:     context.Background,
	}
}

// OpenTelemetry creates a decorator that traces every frame.
//
// The decorator:
//   - Starts a "hyper.frame" span on frame start with the frame number
//   - Adds a "hyper.visit" span event per element with tag and path
//   - Records the traversal error and sets the span status on frame end
//   - Records the visit count as a span attribute
//
// Configure the provider in main() before rendering:
//
//	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) hyper.Decorator {
	config := defaultOTelConfig()
	for _, opt := range opts {
		opt(&config)
	}

	provider := config.TracerProvider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	config.tracer = provider.Tracer(config.TracerName)

	return func(next hyper.Factory) hyper.Factory {
		return func(rerender hyper.RerenderFunc) hyper.Driver {
			inner := next(rerender)
			if inner == nil {
				return nil
			}
			ops := hyper.Delegate(inner)
			visit := ops.OnVisit
			if visit == nil {
				return inner
			}

			var (
				span   trace.Span
				visits int
			)
			ops.OnVisit = func(tag string, props hyper.Props, kind hyper.NodeType, path hyper.Path) any {
				if span != nil && kind != hyper.CollectionEnd {
					visits++
					if config.VisitEvents && kind == hyper.ElementNode {
						span.AddEvent("hyper.visit", trace.WithAttributes(
							attribute.String("hyper.tag", tag),
							attribute.String("hyper.path", path.String()),
						))
					}
				}
				return visit(tag, props, kind, path)
			}

			receive := ops.OnReceive
			ops.OnReceive = func(sig hyper.Signal) {
				switch sig.Kind {
				case hyper.SignalFrameStart:
					visits = 0
					_, span = config.tracer.Start(
						config.Context(),
						"hyper.frame",
						trace.WithSpanKind(trace.SpanKindInternal),
						trace.WithAttributes(attribute.String("hyper.frame", fmt.Sprint(sig.Payload))),
					)
				case hyper.SignalFrameEnd:
					if span != nil {
						if err, ok := sig.Payload.(error); ok && err != nil {
							span.RecordError(err)
							span.SetStatus(codes.Error, err.Error())
						} else {
							span.SetStatus(codes.Ok, "")
						}
						span.SetAttributes(attribute.Int("hyper.visits", visits))
						span.End()
						span = nil
					}
				}
				if receive != nil {
					receive(sig)
				}
			}
			return ops
		}
	}
}
