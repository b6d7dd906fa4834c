package hyper

import (
	herrors "github.com/vango-dev/hyper/internal/errors"
)

// Props holds attributes, properties and listeners for one element.
type Props map[string]any

// Path addresses a node by the child indices leading to it. The root is Path{0}.
type Path []int

// Child returns a new path one level below p. p itself is never modified.
func (p Path) Child(i int) Path {
	child := make(Path, len(p)+1)
	copy(child, p)
	child[len(p)] = i
	return child
}

// String returns the path as "[0,2,1]".
func (p Path) String() string {
	return herrors.FormatPath(p)
}

// NodeType tells a driver what kind of node it is visiting.
type NodeType int

const (
	ElementNode   NodeType = 1
	TextNode      NodeType = 3
	CollectionEnd NodeType = -1

	// SpecialBase is the first node type available to drivers for
	// special tags.
	SpecialBase NodeType = 100
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "ELEMENT_NODE"
	case TextNode:
		return "TEXT_NODE"
	case CollectionEnd:
		return "COLLECTION_END"
	default:
		return "SPECIAL_NODE"
	}
}

// Callable is a component template: it turns props and children into an
// expression.
type Callable interface {
	Call(props Props, children []any) any
}

// Template is the function form of Callable.
type Template func(props Props, children []any) any

// Call implements Callable.
func (t Template) Call(props Props, children []any) any {
	return t(props, children)
}

// AsCallable reports whether v can be used as a component.
func AsCallable(v any) (Callable, bool) {
	switch c := v.(type) {
	case Template:
		return c, c != nil
	case func(Props, []any) any:
		return Template(c), c != nil
	case Callable:
		return c, c != nil
	default:
		return nil, false
	}
}

// AsProps reports whether v is a props mapping. Only maps qualify; arrays,
// strings and callables in the props slot are children.
func AsProps(v any) (Props, bool) {
	switch p := v.(type) {
	case Props:
		return p, true
	case map[string]any:
		return Props(p), true
	default:
		return nil, false
	}
}

// Finalizer is the callable effect an element visit may return. It receives
// the effects of the element's children in order.
type Finalizer func(children []any) any

func asFinalizer(v any) (Finalizer, bool) {
	switch f := v.(type) {
	case Finalizer:
		return f, f != nil
	case func([]any) any:
		return f, f != nil
	default:
		return nil, false
	}
}

// nodeKind is the closed set of shapes the engine dispatches on.
type nodeKind uint8

const (
	kindEmpty nodeKind = iota
	kindText
	kindComponent
	kindFragment
	kindElement
	kindSpecial
)

// node is an expression classified once on entry to the traversal.
type node struct {
	kind     nodeKind
	text     string
	token    string
	comp     Callable
	props    Props
	tagged   bool
	children []any
	special  NodeType
}

// classify inspects the runtime shape of expr. special is consulted for
// string tag tokens only.
func classify(expr any, special func(string) (bool, NodeType)) (node, error) {
	switch e := expr.(type) {
	case string:
		return node{kind: kindText, text: e}, nil
	case []any:
		return classifyArray(e, special)
	}
	if c, ok := AsCallable(expr); ok {
		return node{kind: kindComponent, comp: c}, nil
	}
	return node{kind: kindEmpty}, nil
}

func classifyArray(e []any, special func(string) (bool, NodeType)) (node, error) {
	if len(e) == 0 {
		return node{kind: kindFragment}, nil
	}

	head := e[0]
	if _, ok := head.([]any); ok {
		return node{kind: kindFragment, children: e}, nil
	}
	if s, ok := head.(string); ok && s == "" {
		// The "" marker is not a child; the first real child is at index 0.
		return node{kind: kindFragment, children: e[1:]}, nil
	}

	n := node{children: e[1:]}
	if len(e) > 1 {
		if p, ok := AsProps(e[1]); ok {
			n.props = p
			n.children = e[2:]
		}
	}

	if s, ok := head.(string); ok {
		if isSpecial, kind := special(s); isSpecial {
			return node{kind: kindSpecial, token: s, special: kind}, nil
		}
		n.kind = kindElement
		n.token = s
		return n, nil
	}

	if c, ok := AsCallable(head); ok {
		n.kind = kindComponent
		n.comp = c
		n.tagged = true
		return n, nil
	}

	return node{}, fail(ErrMalformedTag).
		WithDetail(typeName(head) + " cannot be used as a tag")
}
