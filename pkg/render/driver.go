package render

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/vango-dev/hyper/pkg/hyper"
)

// Config configures the HTML string driver.
type Config struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// SpecialTag is the node kind the driver assigns to "!" tokens such as
// "!DOCTYPE html" or "!-- note --".
const SpecialTag = hyper.SpecialBase

// Driver returns a factory for the HTML string driver. Every effect it
// produces is a string and a frame's result is the markup of the root.
func Driver(config Config) hyper.Factory {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return func(hyper.RerenderFunc) hyper.Driver {
		return &stringDriver{config: config}
	}
}

// ToString renders expr once and returns its HTML.
func ToString(expr any, config Config) (string, error) {
	result, err := hyper.Render(Driver(config), expr)
	if err != nil {
		return "", err
	}
	return effectString(result), nil
}

// stringDriver is stateless except for the element depth used by pretty
// printing.
type stringDriver struct {
	config Config
	depth  int
}

// Visit implements hyper.Driver.
func (d *stringDriver) Visit(tag string, props hyper.Props, kind hyper.NodeType, path hyper.Path) any {
	switch kind {
	case hyper.TextNode:
		return EscapeText(tag)
	case hyper.ElementNode:
		return d.openElement(tag, props)
	case SpecialTag:
		return "<" + tag + ">"
	default:
		return nil
	}
}

// Reduce implements hyper.Reducer.
func (d *stringDriver) Reduce(effects []any) any {
	var sb strings.Builder
	for _, e := range effects {
		sb.WriteString(effectString(e))
	}
	return sb.String()
}

// IsSpecialTag implements hyper.SpecialTagger.
func (d *stringDriver) IsSpecialTag(tag string) (bool, hyper.NodeType) {
	if strings.HasPrefix(tag, "!") {
		return true, SpecialTag
	}
	return false, 0
}

// Receive implements hyper.Receiver.
func (d *stringDriver) Receive(sig hyper.Signal) {
	if sig.Kind == hyper.SignalFrameStart {
		d.depth = 0
	}
}

func (d *stringDriver) openElement(tag string, props hyper.Props) hyper.Finalizer {
	depth := d.depth
	d.depth++

	var open strings.Builder
	if d.config.Pretty && depth > 0 {
		open.WriteString(strings.Repeat(d.config.Indent, depth))
	}
	open.WriteByte('<')
	open.WriteString(tag)
	writeAttributes(&open, props)
	open.WriteByte('>')

	return func(children []any) any {
		d.depth--

		var sb strings.Builder
		sb.WriteString(open.String())

		// Void elements cannot have children and have no closing tag.
		if IsVoidElement(tag) {
			if d.config.Pretty {
				sb.WriteByte('\n')
			}
			return sb.String()
		}

		if raw, ok := props["dangerouslySetInnerHTML"].(string); ok {
			sb.WriteString(raw)
		} else {
			block := !isInlineElement(tag) && hasBlockChild(children)
			if d.config.Pretty && block {
				sb.WriteByte('\n')
			}
			for _, child := range children {
				sb.WriteString(effectString(child))
			}
			if d.config.Pretty && block && depth > 0 {
				sb.WriteString(strings.Repeat(d.config.Indent, depth))
			}
		}

		fmt.Fprintf(&sb, "</%s>", tag)
		if d.config.Pretty {
			sb.WriteByte('\n')
		}
		return sb.String()
	}
}

// hasBlockChild reports whether a pretty-printed child element is present.
// Such children end with a newline; text never does.
func hasBlockChild(children []any) bool {
	for _, child := range children {
		if s, ok := child.(string); ok && strings.HasSuffix(s, "\n") {
			return true
		}
	}
	return false
}

// writeAttributes renders assembled props in sorted key order.
func writeAttributes(sb *strings.Builder, props hyper.Props) {
	if len(props) == 0 {
		return
	}

	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var markers []string
	for _, key := range keys {
		value := props[key]

		// Skip internal props
		if strings.HasPrefix(key, "_") {
			continue
		}

		if isEventKey(key) {
			// Callable listeners only exist in a live medium.
			if value != nil && !isFunc(value) {
				markers = append(markers, strings.ToLower(key[2:]))
			}
			continue
		}

		switch key {
		case "classList":
			key = "class"
			value = strings.Join(hyper.ClassList(props), " ")
		case "htmlFor":
			key = "for"
		case "dataset":
			writeDataset(sb, value)
			continue
		case "style":
			value = styleString(value)
		case "dangerouslySetInnerHTML", "key":
			continue
		}

		if isBooleanAttr(key) {
			if on, ok := value.(bool); ok {
				if on {
					WriteAttr(sb, key, "", true)
				}
				continue
			}
		}

		if s := attrToString(value); s != "" {
			WriteAttr(sb, key, s, false)
		}
	}

	// Event markers for client-side binding
	for _, event := range markers {
		WriteAttr(sb, "data-on-"+event, "true", false)
	}
}

func writeDataset(sb *strings.Builder, value any) {
	data := stringMap(value)
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		WriteAttr(sb, "data-"+DataAttrName(k), attrToString(data[k]), false)
	}
}

// DataAttrName converts a dataset key to its attribute suffix: userId
// becomes user-id.
func DataAttrName(key string) string {
	var sb strings.Builder
	for i, r := range key {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// styleString renders a style map as sorted "name: value;" declarations.
// String styles pass through.
func styleString(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	styles := stringMap(value)
	keys := make([]string, 0, len(styles))
	for k := range styles {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := attrToString(styles[k]); v != "" {
			parts = append(parts, k+": "+v+";")
		}
	}
	return strings.Join(parts, " ")
}

func stringMap(value any) map[string]any {
	switch m := value.(type) {
	case hyper.Props:
		return m
	case map[string]any:
		return m
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out
	default:
		return nil
	}
}

// isEventKey reports whether key names an event listener (onclick, onInput).
func isEventKey(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "on")
}

func isFunc(value any) bool {
	if _, ok := value.(hyper.Callable); ok {
		return true
	}
	return reflect.ValueOf(value).Kind() == reflect.Func
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	if value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%g", v)
	case []string:
		return strings.Join(v, " ")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func effectString(effect any) string {
	switch e := effect.(type) {
	case nil:
		return ""
	case string:
		return e
	case []any:
		var sb strings.Builder
		for _, item := range e {
			sb.WriteString(effectString(item))
		}
		return sb.String()
	default:
		return fmt.Sprint(e)
	}
}
