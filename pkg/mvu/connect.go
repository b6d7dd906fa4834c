package mvu

import "github.com/vango-dev/hyper/pkg/hyper"

// View renders a model (or the part of it selected by a lens).
type View func(model any, children []any) any

// Connected is a template fed from the program's model rather than from
// props. Used outside an mvu-decorated driver it receives its props as
// the model.
type Connected struct {
	View View
	get  func(model any) any
}

// Connect wraps view so it receives the whole model.
func Connect(view View) *Connected {
	return Lens(nil, view)
}

// Lens wraps view so it receives get(model). A nil get selects the whole
// model.
func Lens(get func(model any) any, view View) *Connected {
	if get == nil {
		get = func(model any) any { return model }
	}
	return &Connected{View: view, get: get}
}

// Call implements hyper.Callable.
func (c *Connected) Call(props hyper.Props, children []any) any {
	return c.View(props, children)
}
