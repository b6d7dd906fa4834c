package vtest

import (
	"strings"
	"sync"
	"testing"

	"github.com/vango-dev/hyper/pkg/dom"
	"github.com/vango-dev/hyper/pkg/hyper"
	"github.com/vango-dev/hyper/pkg/middleware"
	"github.com/vango-dev/hyper/pkg/render"
)

// IdentityDriver returns a factory for a driver that rebuilds the
// expression it traverses: elements come back as [tag, props?, ...children]
// with normalized props, text as itself, and components already expanded.
//
// Example:
//
//	out, err := hyper.Render(vtest.IdentityDriver(), []any{"p.a", "x"})
//	// out == []any{"p", hyper.Props{"classList": []string{"a"}}, "x"}
func IdentityDriver() hyper.Factory {
	return func(hyper.RerenderFunc) hyper.Driver {
		return hyper.Ops{OnVisit: identityVisit}
	}
}

func identityVisit(tag string, props hyper.Props, kind hyper.NodeType, _ hyper.Path) any {
	switch kind {
	case hyper.TextNode:
		return tag
	case hyper.ElementNode:
		return hyper.Finalizer(func(children []any) any {
			out := []any{tag}
			if len(props) > 0 {
				out = append(out, props)
			}
			return append(out, children...)
		})
	default:
		return nil
	}
}

// HTML joins lines after trimming each one, so expected markup can be
// written indented.
//
// Example:
//
//	vtest.HTML(
//	    "<i>",
//	    "  text",
//	    "  <b>bold</b> .  ",
//	    "</i>",
//	) // "<i>text<b>bold</b> .</i>"
func HTML(lines ...string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(strings.TrimSpace(line))
	}
	return sb.String()
}

// Recorder collects visit trace lines.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

// Decorator returns a middleware.Trace decorator writing into r.
func (r *Recorder) Decorator() hyper.Decorator {
	return middleware.Trace(func(line string) {
		r.mu.Lock()
		r.lines = append(r.lines, line)
		r.mu.Unlock()
	})
}

// Lines returns the recorded lines.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// RenderToString renders an expression with the string driver and returns
// the HTML, or "" on error.
//
// Example:
//
//	html := vtest.RenderToString(MyView(props))
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(expr any) string {
	html, err := render.ToString(expr, render.Config{})
	if err != nil {
		return ""
	}
	return html
}

// Mount renders expr into a fresh document and returns its body. The
// renderer is returned so the test can trigger further frames.
func Mount(tb testing.TB, expr any, decorators ...hyper.Decorator) (*dom.Document, *hyper.Renderer) {
	tb.Helper()
	doc := dom.NewDocument()
	factory, err := dom.New(doc.Body)
	if err != nil {
		tb.Fatalf("dom.New() error: %v", err)
	}
	r, err := hyper.NewRenderer(hyper.Chain(decorators...)(factory), expr)
	if err != nil {
		tb.Fatalf("hyper.NewRenderer() error: %v", err)
	}
	if err := r.Rerender(hyper.Rerender); err != nil {
		tb.Fatalf("first frame failed: %v", err)
	}
	return doc, r
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, view, "Welcome Admin")
func ExpectContains(t testing.TB, expr any, expected string) {
	t.Helper()
	html := RenderToString(expr)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
//
// Example:
//
//	vtest.ExpectNotContains(t, view, "Error")
func ExpectNotContains(t testing.TB, expr any, unexpected string) {
	t.Helper()
	html := RenderToString(expr)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
//
// Example:
//
//	vtest.ExpectElement(t, view, "button")
func ExpectElement(t testing.TB, expr any, tag string) {
	t.Helper()
	html := RenderToString(expr)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
//
// Example:
//
//	vtest.ExpectAttribute(t, view, "class", "btn-primary")
func ExpectAttribute(t testing.TB, expr any, attr, value string) {
	t.Helper()
	html := RenderToString(expr)
	needle := attr + `="` + render.EscapeAttr(value) + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
