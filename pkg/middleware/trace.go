package middleware

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vango-dev/hyper/pkg/hyper"
)

// Trace returns a decorator that reports every element, text and special
// visit to log as a numbered line. Numbering continues across frames.
func Trace(log func(line string)) hyper.Decorator {
	var (
		mu sync.Mutex
		n  int
	)
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
			ops.OnVisit = func(tag string, props hyper.Props, kind hyper.NodeType, path hyper.Path) any {
				if kind != hyper.CollectionEnd {
					mu.Lock()
					log(FormatVisit(n, tag, kind, path))
					n++
					mu.Unlock()
				}
				return visit(tag, props, kind, path)
			}
			return ops
		}
	}
}

// FormatVisit formats one trace line.
func FormatVisit(seq int, tag string, kind hyper.NodeType, path hyper.Path) string {
	if kind == hyper.TextNode {
		return fmt.Sprintf("%04d: %s %s(%d) '%s'", seq, path, kind, int(kind), tag)
	}
	return fmt.Sprintf("%04d: %s %s(%d) <%s>", seq, path, kind, int(kind), tag)
}

// Static returns a decorator that disconnects the wrapped driver from the
// renderer: rerender requests and other signals it raises are dropped.
func Static() hyper.Decorator {
	return func(next hyper.Factory) hyper.Factory {
		return func(hyper.RerenderFunc) hyper.Driver {
			return next(func(hyper.Signal) error { return nil })
		}
	}
}

// Logging returns a decorator that logs each frame with its duration and
// visit count. Signals raised by the driver are logged at debug level.
func Logging(logger *slog.Logger) hyper.Decorator {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "driver")

	return func(next hyper.Factory) hyper.Factory {
		return func(rerender hyper.RerenderFunc) hyper.Driver {
			notify := func(sig hyper.Signal) error {
				logger.Debug("signal raised", "signal", sig.Kind.String())
				return rerender(sig)
			}
			inner := next(notify)
			if inner == nil {
				return nil
			}

			var (
				frame  any
				start  time.Time
				visits int
			)
			ops := hyper.Delegate(inner)
			visit := ops.OnVisit
			if visit == nil {
				return inner
			}
			ops.OnVisit = func(tag string, props hyper.Props, kind hyper.NodeType, path hyper.Path) any {
				if kind != hyper.CollectionEnd {
					visits++
				}
				return visit(tag, props, kind, path)
			}
			receive := ops.OnReceive
			ops.OnReceive = func(sig hyper.Signal) {
				switch sig.Kind {
				case hyper.SignalFrameStart:
					frame, start, visits = sig.Payload, time.Now(), 0
				case hyper.SignalFrameEnd:
					attrs := []any{
						"frame", frame,
						"visits", visits,
						"duration", time.Since(start),
					}
					if err, ok := sig.Payload.(error); ok && err != nil {
						logger.Error("frame failed", append(attrs, "error", err)...)
					} else {
						logger.Info("frame rendered", attrs...)
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
