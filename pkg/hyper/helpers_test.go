package hyper

import (
	"fmt"
	"strings"
)

// recorder logs every visit and rebuilds the tree as nested slices.
type recorder struct {
	log     []string
	signals []SignalKind
}

func (r *recorder) Visit(tag string, props Props, kind NodeType, path Path) any {
	switch kind {
	case ElementNode:
		entry := fmt.Sprintf("%s %s <%s>", path, kind, tag)
		if cl := ClassList(props); len(cl) > 0 {
			entry += " ." + strings.Join(cl, ".")
		}
		if id, ok := props["id"]; ok {
			entry += fmt.Sprintf(" #%v", id)
		}
		r.log = append(r.log, entry)
		return Finalizer(func(children []any) any {
			return append([]any{tag}, children...)
		})
	case TextNode:
		r.log = append(r.log, fmt.Sprintf("%s %s '%s'", path, kind, tag))
		return tag
	case CollectionEnd:
		r.log = append(r.log, fmt.Sprintf("%s END", path))
		return nil
	default:
		r.log = append(r.log, fmt.Sprintf("%s SPECIAL(%d) %s", path, kind, tag))
		return "special:" + tag
	}
}

func (r *recorder) Receive(sig Signal) {
	r.signals = append(r.signals, sig.Kind)
}

// elements returns the log without collection-end entries.
func (r *recorder) elements() []string {
	var out []string
	for _, entry := range r.log {
		if !strings.HasSuffix(entry, " END") {
			out = append(out, entry)
		}
	}
	return out
}

func recording(r *recorder) Factory {
	return func(RerenderFunc) Driver { return r }
}
