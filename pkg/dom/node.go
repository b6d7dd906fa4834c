package dom

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vango-dev/hyper/internal/errors"
	"github.com/vango-dev/hyper/pkg/hyper"
)

// ErrUnsupportedListener matches dispatches to a function listener whose
// signature is not one of func(Event), func(Event) error or func().
var ErrUnsupportedListener = errors.New("H007")

// Document owns nodes and indexes the interactive ones by hydration id.
// It is not safe for concurrent use.
type Document struct {
	// Body is the document's body element, the usual render root.
	Body *Node

	hids map[string]*Node
}

// NewDocument creates an empty document with a body element.
func NewDocument() *Document {
	doc := &Document{hids: make(map[string]*Node)}
	doc.Body = doc.CreateElement("body")
	return doc
}

// CreateElement creates a detached element owned by the document.
func (d *Document) CreateElement(tag string) *Node {
	return &Node{
		Type:  hyper.ElementNode,
		Tag:   tag,
		Attrs: make(map[string]string),
		doc:   d,
	}
}

// CreateTextNode creates a detached text node owned by the document.
func (d *Document) CreateTextNode(text string) *Node {
	return &Node{Type: hyper.TextNode, Text: text, doc: d}
}

// FindByHID returns the rendered node carrying the hydration id, or nil.
// Ids are released when their node is removed with ReplaceChildren.
func (d *Document) FindByHID(hid string) *Node {
	return d.hids[hid]
}

func (d *Document) register(n *Node) {
	if n.hid != "" {
		d.hids[n.hid] = n
	}
}

func (d *Document) unregister(n *Node) {
	if n.hid != "" && d.hids[n.hid] == n {
		delete(d.hids, n.hid)
	}
	for _, c := range n.Children {
		d.unregister(c)
	}
}

// Root is a mount point the DOM driver can render into.
type Root interface {
	OwnerDocument() *Document
	AppendChild(child *Node)
	ReplaceChildren(children ...*Node)
}

// Event is an interaction delivered to a node.
type Event struct {
	// Type is the event name without the "on" prefix, e.g. "click".
	Type string

	// Value carries the event data. For value listeners it is replaced by
	// the listener's value before the event is raised.
	Value any

	// Target is the node the event was dispatched to.
	Target *Node
}

// Node is an element or text node.
type Node struct {
	Type hyper.NodeType
	Tag  string
	Text string

	Attrs   map[string]string
	Dataset map[string]string
	Style   map[string]string

	// RawHTML replaces the children when serializing.
	RawHTML string

	Parent   *Node
	Children []*Node

	doc       *Document
	hid       string
	listeners map[string]any
	raise     hyper.RerenderFunc
}

// OwnerDocument implements Root.
func (n *Node) OwnerDocument() *Document {
	if n == nil {
		return nil
	}
	return n.doc
}

// AppendChild implements Root.
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// ReplaceChildren implements Root. Called with no arguments it empties n.
func (n *Node) ReplaceChildren(children ...*Node) {
	for _, c := range n.Children {
		c.Parent = nil
		if n.doc != nil {
			n.doc.unregister(c)
		}
	}
	n.Children = nil
	for _, c := range children {
		n.AppendChild(c)
	}
}

// HID returns the hydration id, empty for nodes without listeners.
func (n *Node) HID() string {
	return n.hid
}

// GetAttribute returns an attribute value as serialized.
func (n *Node) GetAttribute(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// ClassList returns the classes of the element.
func (n *Node) ClassList() []string {
	return strings.Fields(n.Attrs["class"])
}

// Listener returns the listener registered for event ("click"), or nil.
func (n *Node) Listener(event string) any {
	return n.listeners[event]
}

// Events returns the sorted names of the node's listeners.
func (n *Node) Events() []string {
	events := make([]string, 0, len(n.listeners))
	for e := range n.listeners {
		events = append(events, e)
	}
	sort.Strings(events)
	return events
}

// TextContent concatenates all descendant text.
func (n *Node) TextContent() string {
	if n.Type == hyper.TextNode {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// Find returns the first node in document order, n included, for which
// match is true.
func (n *Node) Find(match func(*Node) bool) *Node {
	if match(n) {
		return n
	}
	for _, c := range n.Children {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}

// FindByTag returns the first element with the given tag name.
func (n *Node) FindByTag(tag string) *Node {
	return n.Find(func(c *Node) bool {
		return c.Type == hyper.ElementNode && c.Tag == tag
	})
}

// Dispatch delivers ev to the node's listener for ev.Type.
//
// Function listeners are called directly; other function types fail with
// ErrUnsupportedListener. Any other listener value is a
// message nobody can handle locally: it becomes the event's Value and the
// event is raised as a missing-handler signal for a decorator to consume.
// Dispatching an event with no listener is a no-op.
func (n *Node) Dispatch(ev Event) error {
	ev.Type = strings.TrimPrefix(strings.ToLower(ev.Type), "on")
	ev.Target = n

	listener, ok := n.listeners[ev.Type]
	if !ok || listener == nil {
		return nil
	}

	switch fn := listener.(type) {
	case func(Event):
		fn(ev)
		return nil
	case func(Event) error:
		return fn(ev)
	case func():
		fn()
		return nil
	}
	if reflect.ValueOf(listener).Kind() == reflect.Func {
		return errors.New(ErrUnsupportedListener.Code).
			WithToken("on" + ev.Type).
			WithDetail(fmt.Sprintf("listener has type %T", listener)).
			WithSuggestion("Use func(dom.Event), func(dom.Event) error or func()")
	}

	ev.Value = listener
	if n.raise == nil {
		return nil
	}
	return n.raise(hyper.MissingHandler(ev))
}
