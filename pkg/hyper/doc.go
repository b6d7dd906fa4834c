// Package hyper renders hyperscript-style expression trees through
// pluggable drivers.
//
// An expression is plain Go data:
//
//	[]any{"div#main.card", hyper.Props{"title": "hi"},
//	    "One",
//	    []any{"b", "Bold!"},
//	    []any{"", []any{"i", "spliced"}, "into the parent"},
//	}
//
// A string is a text leaf. A []any is an element ([tag, props?, ...children])
// or a fragment when its first slot is "" or itself a []any. A Callable
// (Template, or any func(Props, []any) any) is a component: it is expanded
// through the driver and its result traversed in place.
//
// # Drivers
//
// The engine never touches an output medium. Every node decision goes to a
// Driver, which only has to implement Visit. Reduce, Expand, IsSpecialTag and
// Receive are optional and discovered through the Reducer, Expander,
// SpecialTagger and Receiver interfaces.
//
// When Visit returns a Finalizer for an element, the engine traverses the
// children, hands the finalizer their effects, and then sends a synthetic
// CollectionEnd visit so stack-based drivers can pop their context.
//
// # Decorators
//
// A Decorator wraps a Factory. Delegate captures the inner driver's
// operations by reference into an Ops value, so a decorator overrides only
// the fields it cares about:
//
//	func Quiet(next hyper.Factory) hyper.Factory {
//	    return func(rerender hyper.RerenderFunc) hyper.Driver {
//	        ops := hyper.Delegate(next(rerender))
//	        ops.OnReceive = nil
//	        return ops
//	    }
//	}
//
// # Lifecycle
//
// Render instantiates the driver once and runs a frame: FrameStart,
// traversal from Path{0}, a trailing CollectionEnd at the root, FrameEnd.
// The driver may ask for another frame at any time by calling the
// RerenderFunc it was constructed with.
package hyper
