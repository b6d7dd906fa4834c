package dom

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/vango-dev/hyper/pkg/hyper"
)

// Option configures the DOM driver.
type Option func(*driver)

// WithLogger sets the driver's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *driver) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// New returns a factory for a driver that renders into root. Every frame
// replaces root's children with a fresh tree.
//
// The root must belong to a document; anything else fails with
// hyper.ErrInvalidRoot.
func New(root Root, opts ...Option) (hyper.Factory, error) {
	if root == nil {
		return nil, hyper.NewInvalidRootError("root is nil")
	}
	if n, ok := root.(*Node); ok && n == nil {
		return nil, hyper.NewInvalidRootError("root is a nil *Node")
	}
	doc := root.OwnerDocument()
	if doc == nil {
		return nil, hyper.NewInvalidRootError(fmt.Sprintf("%T has no owner document", root))
	}

	return func(rerender hyper.RerenderFunc) hyper.Driver {
		d := &driver{
			root:     root,
			doc:      doc,
			rerender: rerender,
			logger:   slog.Default().With("component", "dom"),
		}
		for _, opt := range opts {
			opt(d)
		}
		return d
	}, nil
}

type parent interface {
	AppendChild(child *Node)
}

type driver struct {
	root     Root
	doc      *Document
	rerender hyper.RerenderFunc
	logger   *slog.Logger

	stack []parent
	hids  int
}

// Visit implements hyper.Driver.
func (d *driver) Visit(tag string, props hyper.Props, kind hyper.NodeType, path hyper.Path) any {
	switch kind {
	case hyper.TextNode:
		n := d.doc.CreateTextNode(tag)
		d.top().AppendChild(n)
		return n

	case hyper.ElementNode:
		el := d.doc.CreateElement(tag)
		d.applyProps(el, props)
		d.top().AppendChild(el)
		d.stack = append(d.stack, el)
		return hyper.Finalizer(func([]any) any {
			d.stack = d.stack[:len(d.stack)-1]
			return el
		})

	default:
		return nil
	}
}

// Reduce implements hyper.Reducer. Fragment children are already attached,
// so the effect is the list of nodes.
func (d *driver) Reduce(effects []any) any {
	nodes := make([]*Node, 0, len(effects))
	for _, e := range effects {
		switch v := e.(type) {
		case *Node:
			nodes = append(nodes, v)
		case []*Node:
			nodes = append(nodes, v...)
		}
	}
	return nodes
}

// Receive implements hyper.Receiver.
func (d *driver) Receive(sig hyper.Signal) {
	switch sig.Kind {
	case hyper.SignalFrameStart:
		d.root.ReplaceChildren()
		d.stack = []parent{d.root}
		d.hids = 0
	case hyper.SignalFrameEnd:
		if err, ok := sig.Payload.(error); ok && err != nil {
			d.logger.Warn("frame aborted, tree is partial", "error", err)
		}
		d.stack = nil
	}
}

func (d *driver) top() parent {
	if len(d.stack) == 0 {
		// Visits outside a frame land on the root.
		return d.root
	}
	return d.stack[len(d.stack)-1]
}

func (d *driver) applyProps(el *Node, props hyper.Props) {
	for key, value := range props {
		if strings.HasPrefix(key, "_") {
			continue
		}
		if len(key) > 2 && strings.HasPrefix(key, "on") {
			if value != nil {
				if el.listeners == nil {
					el.listeners = make(map[string]any)
				}
				el.listeners[strings.ToLower(key[2:])] = value
			}
			continue
		}

		switch key {
		case "key":
		case "classList":
			if classes := hyper.ClassList(props); len(classes) > 0 {
				el.Attrs["class"] = strings.Join(classes, " ")
			}
		case "htmlFor":
			el.Attrs["for"] = toString(value)
		case "dataset":
			el.Dataset = stringMap(value)
		case "style":
			if s, ok := value.(string); ok {
				el.Attrs["style"] = s
			} else {
				el.Style = stringMap(value)
			}
		case "dangerouslySetInnerHTML":
			el.RawHTML = toString(value)
		default:
			switch v := value.(type) {
			case nil:
			case bool:
				if v {
					el.Attrs[key] = ""
				}
			default:
				el.Attrs[key] = toString(v)
			}
		}
	}

	if len(el.listeners) > 0 {
		d.hids++
		el.hid = fmt.Sprintf("h%d", d.hids)
		el.raise = d.rerender
		d.doc.register(el)
	}
}

func stringMap(value any) map[string]string {
	var m map[string]any
	switch v := value.(type) {
	case hyper.Props:
		m = v
	case map[string]any:
		m = v
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, s := range v {
			out[k] = s
		}
		return out
	default:
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = toString(v)
	}
	return out
}

func toString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

