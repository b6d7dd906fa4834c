package hyper

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"unicode"
)

// AssembleProps merges the id and classes from a tag token into props.
//
// The caller's map is never modified; a shallow copy is returned. An id in
// the token conflicts with any non-empty "id" prop, even an identical one.
//
// Class sources are folded into a single "classList" ([]string): token
// classes, the truthy keys of a map-valued "class", a "classList" slice,
// a string "class" and a string "className". The union is de-duplicated and
// sorted. "class" and "className" are removed, and "classList" is only
// present when non-empty.
func AssembleProps(id string, classNames []string, props Props) (Props, error) {
	out := make(Props, len(props)+1)
	for k, v := range props {
		out[k] = v
	}

	if id != "" {
		if existing, ok := out["id"]; ok && Truthy(existing) {
			return nil, fail(ErrDuplicateID).
				WithDetail(fmt.Sprintf("%q in the tag and %v in props", id, existing)).
				WithSuggestion("Supply the id either in the tag token or in props")
		}
		out["id"] = id
	}

	classes := append([]string(nil), classNames...)

	if obj, ok := classObject(out["class"]); ok {
		keys := make([]string, 0, len(obj))
		for name, on := range obj {
			if Truthy(on) {
				keys = append(keys, name)
			}
		}
		sort.Strings(keys)
		classes = append(classes, keys...)
	}

	switch list := out["classList"].(type) {
	case []string:
		classes = append(classes, list...)
	case []any:
		for _, item := range list {
			if s, ok := item.(string); ok {
				classes = append(classes, s)
			}
		}
	}

	if s, ok := out["class"].(string); ok {
		classes = append(classes, strings.Fields(s)...)
	}
	if s, ok := out["className"].(string); ok {
		classes = append(classes, strings.Fields(s)...)
	}

	delete(out, "class")
	delete(out, "className")
	delete(out, "classList")

	if classes = normalizeClasses(classes); len(classes) > 0 {
		out["classList"] = classes
	}

	return out, nil
}

// ClassList returns the normalized class list from assembled props.
func ClassList(props Props) []string {
	list, _ := props["classList"].([]string)
	return list
}

func classObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Props:
		return m, true
	case map[string]any:
		return m, true
	case map[string]bool:
		out := make(map[string]any, len(m))
		for k, b := range m {
			out[k] = b
		}
		return out, true
	default:
		return nil, false
	}
}

func normalizeClasses(classes []string) []string {
	out := classes[:0]
	for _, c := range classes {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// ValidAttrName reports whether name can be serialized as an attribute
// name: it is non-empty and holds no whitespace, control characters or any
// of " ' ` < > / =.
func ValidAttrName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return false
		}
		switch r {
		case '"', '\'', '`', '<', '>', '/', '=':
			return false
		}
	}
	return true
}

// checkAttrNames rejects element props whose keys, or whose dataset keys,
// are not attribute names. Keys are checked in sorted order so the
// reported token is stable.
func checkAttrNames(props Props) error {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !ValidAttrName(k) {
			return fail(ErrInvalidAttribute).
				WithToken(k).
				WithSuggestion("Attribute names cannot contain whitespace, quotes, <, >, / or =")
		}
		if k != "dataset" {
			continue
		}
		for _, dk := range datasetKeys(props[k]) {
			if !ValidAttrName(dk) {
				return fail(ErrInvalidAttribute).
					WithToken(dk).
					WithDetail("in dataset")
			}
		}
	}
	return nil
}

func datasetKeys(v any) []string {
	var keys []string
	switch m := v.(type) {
	case Props:
		for k := range m {
			keys = append(keys, k)
		}
	case map[string]any:
		for k := range m {
			keys = append(keys, k)
		}
	case map[string]string:
		for k := range m {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// Truthy reports whether v counts as "on" for class maps and id checks:
// nil, false, zero numbers and empty strings are not.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}
