package dom

import (
	"sort"
	"strings"

	"github.com/vango-dev/hyper/pkg/hyper"
	"github.com/vango-dev/hyper/pkg/render"
)

// InnerHTML serializes the node's children.
func (n *Node) InnerHTML() string {
	if n.RawHTML != "" {
		return n.RawHTML
	}
	var sb strings.Builder
	for _, c := range n.Children {
		c.writeHTML(&sb)
	}
	return sb.String()
}

// OuterHTML serializes the node itself.
func (n *Node) OuterHTML() string {
	var sb strings.Builder
	n.writeHTML(&sb)
	return sb.String()
}

func (n *Node) writeHTML(sb *strings.Builder) {
	if n.Type == hyper.TextNode {
		sb.WriteString(render.EscapeText(n.Text))
		return
	}

	sb.WriteByte('<')
	sb.WriteString(n.Tag)
	n.writeAttrs(sb)
	sb.WriteByte('>')
	if render.IsVoidElement(n.Tag) {
		return
	}
	sb.WriteString(n.InnerHTML())
	sb.WriteString("</")
	sb.WriteString(n.Tag)
	sb.WriteByte('>')
}

// writeAttrs writes attributes, data-* entries, the style declaration and
// the hydration id in sorted order. Keys that are not attribute names are
// dropped.
func (n *Node) writeAttrs(sb *strings.Builder) {
	attrs := make(map[string]string, len(n.Attrs)+len(n.Dataset)+2)
	for k, v := range n.Attrs {
		attrs[k] = v
	}
	for k, v := range n.Dataset {
		attrs["data-"+render.DataAttrName(k)] = v
	}
	if len(n.Style) > 0 {
		attrs["style"] = styleString(n.Style)
	}
	if n.hid != "" {
		attrs["data-hid"] = n.hid
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		render.WriteAttr(sb, k, attrs[k], true)
	}
}

func styleString(style map[string]string) string {
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+style[k]+";")
	}
	return strings.Join(parts, " ")
}
