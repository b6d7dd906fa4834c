package hyper

// Driver turns traversal visits into effects on an output medium.
//
// Visit is called once per text leaf (props nil, kind TextNode), once per
// element open (kind ElementNode), once per special tag, and once with kind
// CollectionEnd after each finalized element and at the end of a frame.
// Returning a Finalizer for an element makes the engine traverse its
// children; any other value is used as the element's effect as-is.
type Driver interface {
	Visit(tag string, props Props, kind NodeType, path Path) any
}

// Reducer folds the effects of a fragment's children into one effect.
// Without it, the fragment's effect is the slice of child effects.
type Reducer interface {
	Reduce(effects []any) any
}

// Expander resolves a component before it is traversed. Without it, the
// component is called with props and children directly.
type Expander interface {
	Expand(c Callable, props Props, children []any) any
}

// SpecialTagger reserves tag tokens for driver-specific handling. A special
// node is visited with its raw token and kind and its children are not
// traversed.
type SpecialTagger interface {
	IsSpecialTag(tag string) (bool, NodeType)
}

// Receiver is notified of frame-start and frame-end signals.
type Receiver interface {
	Receive(sig Signal)
}

// RerenderFunc is handed to every driver at construction. Calling it with
// Rerender runs one complete frame before returning.
type RerenderFunc func(sig Signal) error

// Factory builds a driver bound to a renderer's rerender entry point.
type Factory func(rerender RerenderFunc) Driver

// Decorator wraps a factory, intercepting some operations or signals.
type Decorator func(next Factory) Factory

// Chain composes decorators; the first one listed is outermost.
// Chain(a, b)(f) is a(b(f)), and composition is associative.
func Chain(decorators ...Decorator) Decorator {
	return func(next Factory) Factory {
		for i := len(decorators) - 1; i >= 0; i-- {
			next = decorators[i](next)
		}
		return next
	}
}

// Ops is a driver assembled from operation values. Nil fields fall back to
// the protocol defaults, which makes Ops the building block for decorators.
type Ops struct {
	OnVisit        func(tag string, props Props, kind NodeType, path Path) any
	OnReduce       func(effects []any) any
	OnExpand       func(c Callable, props Props, children []any) any
	OnIsSpecialTag func(tag string) (bool, NodeType)
	OnReceive      func(sig Signal)
}

// Delegate captures d's operations by reference. Operations d does not
// implement stay nil so the defaults apply. A nil *Ops yields empty Ops.
func Delegate(d Driver) Ops {
	switch o := d.(type) {
	case Ops:
		return o
	case *Ops:
		if o == nil {
			return Ops{}
		}
		return *o
	}

	ops := Ops{OnVisit: d.Visit}
	if r, ok := d.(Reducer); ok {
		ops.OnReduce = r.Reduce
	}
	if e, ok := d.(Expander); ok {
		ops.OnExpand = e.Expand
	}
	if s, ok := d.(SpecialTagger); ok {
		ops.OnIsSpecialTag = s.IsSpecialTag
	}
	if r, ok := d.(Receiver); ok {
		ops.OnReceive = r.Receive
	}
	return ops
}

// Visit implements Driver.
func (o Ops) Visit(tag string, props Props, kind NodeType, path Path) any {
	if o.OnVisit == nil {
		return nil
	}
	return o.OnVisit(tag, props, kind, path)
}

// Reduce implements Reducer.
func (o Ops) Reduce(effects []any) any {
	if o.OnReduce == nil {
		return effects
	}
	return o.OnReduce(effects)
}

// Expand implements Expander.
func (o Ops) Expand(c Callable, props Props, children []any) any {
	if o.OnExpand == nil {
		return c.Call(props, children)
	}
	return o.OnExpand(c, props, children)
}

// IsSpecialTag implements SpecialTagger.
func (o Ops) IsSpecialTag(tag string) (bool, NodeType) {
	if o.OnIsSpecialTag == nil {
		return false, 0
	}
	return o.OnIsSpecialTag(tag)
}

// Receive implements Receiver.
func (o Ops) Receive(sig Signal) {
	if o.OnReceive != nil {
		o.OnReceive(sig)
	}
}
