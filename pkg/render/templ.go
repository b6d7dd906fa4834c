package render

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Component adapts an expression to a templ.Component so hyperscript trees
// can be embedded in templ layouts or served with templ.Handler.
// The expression is rendered on every Render call.
func Component(expr any, config Config) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		html, err := ToString(expr, config)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, html)
		return err
	})
}

// PageComponent is Component for a full document.
func PageComponent(page PageData, config Config) templ.Component {
	return Component(Page(page), config)
}
