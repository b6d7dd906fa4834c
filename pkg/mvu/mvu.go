// Package mvu is a model-view-update decorator for hyper drivers.
//
// A Program owns a single model. Messages are folded into it with the
// update function; when the model changes, the decorated driver is asked to
// rerender. Templates wrapped with Connect or Lens receive the model (or a
// slice of it) in place of props.
//
//	p := mvu.New(func(model, msg any) any {
//	    if model == nil {
//	        return 0
//	    }
//	    return model.(int) + msg.(int)
//	})
//	factory := p.Decorator()(domFactory)
//
// Interactions that reach the driver as missing-handler signals (for
// example a dom listener whose value is a message) are dispatched to the
// program instead of reaching the renderer.
package mvu

import (
	"reflect"
	"sync"

	"github.com/vango-dev/hyper/pkg/dom"
	"github.com/vango-dev/hyper/pkg/hyper"
)

// Update folds one message into the model and returns the new model.
// Called with a nil model and a nil message it returns the initial model.
type Update func(model, msg any) any

// Program holds the model. It is safe for concurrent use.
type Program struct {
	update Update

	mu    sync.Mutex
	model any
}

// New creates a program whose initial model is update(nil, nil).
func New(update Update) *Program {
	return &Program{
		update: update,
		model:  update(nil, nil),
	}
}

// Model returns the current model.
func (p *Program) Model() any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.model
}

// Dispatch applies msgs in order and reports whether the model changed.
// With no messages it reports false and leaves the model alone.
func (p *Program) Dispatch(msgs ...any) bool {
	if len(msgs) == 0 {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	next := p.model
	for _, msg := range msgs {
		next = p.update(next, msg)
	}
	changed := modelChanged(p.model, next)
	p.model = next
	return changed
}

// Decorator returns a hyper.Decorator binding the program to a driver.
//
// Missing-handler signals are consumed: their message is dispatched and a
// rerender is requested only if the model changed. All other signals pass
// through. Connected templates are expanded with the current model; other
// components go to the wrapped driver's expander.
func (p *Program) Decorator() hyper.Decorator {
	return func(next hyper.Factory) hyper.Factory {
		return func(rerender hyper.RerenderFunc) hyper.Driver {
			intercept := func(sig hyper.Signal) error {
				if sig.Kind != hyper.SignalMissingHandler {
					return rerender(sig)
				}
				if p.Dispatch(messageOf(sig.Payload)) {
					return rerender(hyper.Rerender)
				}
				return nil
			}

			inner := next(intercept)
			if inner == nil {
				return nil
			}

			ops := hyper.Delegate(inner)
			expand := ops.OnExpand
			ops.OnExpand = func(c hyper.Callable, props hyper.Props, children []any) any {
				if conn, ok := c.(*Connected); ok {
					return conn.View(conn.get(p.Model()), children)
				}
				if expand != nil {
					return expand(c, props, children)
				}
				return c.Call(props, children)
			}
			return ops
		}
	}
}

// messageOf extracts the message carried by a missing-handler payload.
func messageOf(payload any) any {
	switch ev := payload.(type) {
	case dom.Event:
		return ev.Value
	case *dom.Event:
		if ev == nil {
			return nil
		}
		return ev.Value
	default:
		return payload
	}
}

// modelChanged compares by identity when both values are comparable and by
// deep equality otherwise. The check is on the values: a struct with an
// interface field holding a map has a comparable type but == panics.
func modelChanged(prev, next any) bool {
	if prev == nil || next == nil {
		return prev != next
	}
	if reflect.TypeOf(prev) != reflect.TypeOf(next) {
		return true
	}
	vp, vn := reflect.ValueOf(prev), reflect.ValueOf(next)
	if vp.Comparable() && vn.Comparable() {
		return prev != next
	}
	return !reflect.DeepEqual(prev, next)
}
