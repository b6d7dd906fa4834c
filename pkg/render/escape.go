package render

import (
	"strings"

	"github.com/vango-dev/hyper/pkg/hyper"
)

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)

	// Attribute values also keep their line breaks and tabs.
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)

// EscapeText escapes a text node's content.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// EscapeAttr escapes a double-quoted attribute value.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// WriteAttr appends ` name="value"` to sb. With bare set, an empty value
// writes the name alone. Names that hyper.ValidAttrName rejects are never
// written and WriteAttr reports false.
func WriteAttr(sb *strings.Builder, name, value string, bare bool) bool {
	if !hyper.ValidAttrName(name) {
		return false
	}
	sb.WriteByte(' ')
	sb.WriteString(name)
	if bare && value == "" {
		return true
	}
	sb.WriteString(`="`)
	sb.WriteString(attrEscaper.Replace(value))
	sb.WriteByte('"')
	return true
}
