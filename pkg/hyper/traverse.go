package hyper

// walker binds one driver's operations, with protocol defaults filled in,
// for the duration of a renderer.
type walker struct {
	visit   func(tag string, props Props, kind NodeType, path Path) any
	reduce  func(effects []any) any
	expand  func(c Callable, props Props, children []any) any
	special func(tag string) (bool, NodeType)
	receive func(sig Signal)
}

func newWalker(d Driver) *walker {
	ops := Delegate(d)
	w := &walker{
		visit:   ops.OnVisit,
		reduce:  ops.OnReduce,
		expand:  ops.OnExpand,
		special: ops.OnIsSpecialTag,
		receive: ops.OnReceive,
	}
	if w.reduce == nil {
		w.reduce = func(effects []any) any { return effects }
	}
	if w.expand == nil {
		w.expand = func(c Callable, props Props, children []any) any {
			return c.Call(props, children)
		}
	}
	if w.special == nil {
		w.special = func(string) (bool, NodeType) { return false, 0 }
	}
	if w.receive == nil {
		w.receive = func(Signal) {}
	}
	return w
}

// walk traverses expr depth-first. Visits happen pre-order and finalizers
// run post-order. The first error aborts the whole traversal.
func (w *walker) walk(expr any, path Path) (any, error) {
	n, err := classify(expr, w.special)
	if err != nil {
		return nil, atPath(err, path)
	}

	switch n.kind {
	case kindText:
		return w.visit(n.text, nil, TextNode, path), nil

	case kindSpecial:
		return w.visit(n.token, nil, n.special, path), nil

	case kindFragment:
		effects, _, err := w.walkChildren(n.children, path)
		if err != nil {
			return nil, err
		}
		return w.reduce(effects), nil

	case kindComponent:
		var props Props
		if n.tagged {
			// Components in tag position get the same normalized props
			// as elements.
			if props, err = AssembleProps("", nil, n.props); err != nil {
				return nil, atPath(err, path)
			}
		}
		// Components occupy their caller's path.
		return w.walk(w.expand(n.comp, props, n.children), path)

	case kindElement:
		return w.walkElement(n, path)

	default:
		return nil, nil
	}
}

func (w *walker) walkElement(n node, path Path) (any, error) {
	meta, err := parseTagString(n.token)
	if err != nil {
		return nil, atPath(err, path)
	}
	props, err := AssembleProps(meta.ID, meta.Classes, n.props)
	if err != nil {
		return nil, atPath(err, path)
	}
	if err := checkAttrNames(props); err != nil {
		return nil, atPath(err, path)
	}

	effect := w.visit(meta.Name, props, ElementNode, path)
	finalize, ok := asFinalizer(effect)
	if !ok {
		return effect, nil
	}

	effects, last, err := w.walkChildren(n.children, path)
	if err != nil {
		return nil, err
	}
	result := finalize(effects)
	w.visit("", nil, CollectionEnd, last)
	return result, nil
}

// walkChildren traverses children left to right at path.Child(i) and
// returns their effects plus the path of the last child (path when there
// are none).
func (w *walker) walkChildren(children []any, path Path) ([]any, Path, error) {
	effects := make([]any, 0, len(children))
	last := path
	for i, child := range children {
		childPath := path.Child(i)
		effect, err := w.walk(child, childPath)
		if err != nil {
			return nil, nil, err
		}
		effects = append(effects, effect)
		last = childPath
	}
	return effects, last, nil
}
