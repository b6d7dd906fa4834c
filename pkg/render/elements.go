package render

// elementTraits are the serialization properties of an HTML element.
type elementTraits uint8

const (
	// void elements have no children and no closing tag.
	void elementTraits = 1 << iota

	// inline elements stay on their parent's line when pretty printing.
	inline
)

var elements = map[string]elementTraits{
	"area":   void,
	"base":   void,
	"br":     void | inline,
	"col":    void,
	"embed":  void,
	"hr":     void,
	"img":    void,
	"input":  void,
	"link":   void,
	"meta":   void,
	"param":  void,
	"source": void,
	"track":  void,
	"wbr":    void | inline,

	"a": inline, "abbr": inline, "b": inline, "bdi": inline, "bdo": inline,
	"cite": inline, "code": inline, "data": inline, "dfn": inline, "em": inline,
	"i": inline, "kbd": inline, "mark": inline, "q": inline, "rb": inline,
	"rp": inline, "rt": inline, "rtc": inline, "ruby": inline, "s": inline,
	"samp": inline, "small": inline, "span": inline, "strong": inline,
	"sub": inline, "sup": inline, "time": inline, "u": inline, "var": inline,
}

// IsVoidElement reports whether tag is written without children or a
// closing tag.
func IsVoidElement(tag string) bool {
	return elements[tag]&void != 0
}

func isInlineElement(tag string) bool {
	return elements[tag]&inline != 0
}

// booleanAttrs are written as a bare name when true and omitted when false.
var booleanAttrs = map[string]struct{}{
	"allowfullscreen": {}, "async": {}, "autofocus": {}, "autoplay": {},
	"checked": {}, "controls": {}, "default": {}, "defer": {},
	"disabled": {}, "formnovalidate": {}, "hidden": {}, "ismap": {},
	"itemscope": {}, "loop": {}, "multiple": {}, "muted": {},
	"nomodule": {}, "novalidate": {}, "open": {}, "playsinline": {},
	"readonly": {}, "required": {}, "reversed": {}, "selected": {},
}

func isBooleanAttr(name string) bool {
	_, ok := booleanAttrs[name]
	return ok
}
