package render

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/vango-dev/hyper/pkg/hyper"
)

func TestToString(t *testing.T) {
	tests := []struct {
		name     string
		expr     any
		expected string
	}{
		{
			name:     "text",
			expr:     "Hello, World!",
			expected: "Hello, World!",
		},
		{
			name:     "escaped text",
			expr:     []any{"p", "a < b & c"},
			expected: "<p>a &lt; b &amp; c</p>",
		},
		{
			name:     "nested elements",
			expr:     []any{"div", []any{"span", "Hello"}, []any{"b", "World"}},
			expected: "<div><span>Hello</span><b>World</b></div>",
		},
		{
			name:     "tag id and classes",
			expr:     []any{"div#main.b.a", "x"},
			expected: `<div class="a b" id="main">x</div>`,
		},
		{
			name:     "class object merged with tag classes",
			expr:     []any{"div.card", hyper.Props{"class": map[string]any{"active": true, "hidden": false}}},
			expected: `<div class="active card"></div>`,
		},
		{
			name:     "sorted attributes",
			expr:     []any{"a", hyper.Props{"title": "T", "href": "/x"}, "link"},
			expected: `<a href="/x" title="T">link</a>`,
		},
		{
			name:     "attribute escaping",
			expr:     []any{"div", hyper.Props{"title": `say "hi"`}},
			expected: `<div title="say &quot;hi&quot;"></div>`,
		},
		{
			name:     "void element",
			expr:     []any{"div", []any{"br"}, []any{"img", hyper.Props{"src": "a.png"}}},
			expected: `<div><br><img src="a.png"></div>`,
		},
		{
			name:     "boolean attributes",
			expr:     []any{"input", hyper.Props{"disabled": true, "checked": false, "type": "checkbox"}},
			expected: `<input disabled type="checkbox">`,
		},
		{
			name:     "htmlFor",
			expr:     []any{"label", hyper.Props{"htmlFor": "name"}, "Name"},
			expected: `<label for="name">Name</label>`,
		},
		{
			name:     "dataset",
			expr:     []any{"div", hyper.Props{"dataset": map[string]any{"userId": 7, "role": "admin"}}},
			expected: `<div data-role="admin" data-user-id="7"></div>`,
		},
		{
			name:     "style map",
			expr:     []any{"div", hyper.Props{"style": map[string]any{"width": "10px", "color": "red"}}},
			expected: `<div style="color: red; width: 10px;"></div>`,
		},
		{
			name:     "function listener dropped",
			expr:     []any{"button", hyper.Props{"onclick": func() {}}, "+"},
			expected: `<button>+</button>`,
		},
		{
			name:     "value listener marker",
			expr:     []any{"button", hyper.Props{"onclick": 1}, "+"},
			expected: `<button data-on-click="true">+</button>`,
		},
		{
			name:     "internal and key props skipped",
			expr:     []any{"li", hyper.Props{"_state": 1, "key": "k1"}, "x"},
			expected: `<li>x</li>`,
		},
		{
			name:     "dangerouslySetInnerHTML",
			expr:     []any{"div", hyper.Props{"dangerouslySetInnerHTML": "<b>raw</b>"}, "ignored"},
			expected: `<div><b>raw</b></div>`,
		},
		{
			name:     "fragment root",
			expr:     []any{"", []any{"i", "a"}, "b"},
			expected: `<i>a</i>b`,
		},
		{
			name:     "empty nodes",
			expr:     []any{"p", nil, 42, true, "x"},
			expected: `<p>x</p>`,
		},
		{
			name:     "doctype",
			expr:     []any{"", []any{"!DOCTYPE html"}, []any{"html"}},
			expected: `<!DOCTYPE html><html></html>`,
		},
		{
			name:     "comment",
			expr:     []any{"div", []any{"!-- note --"}},
			expected: `<div><!-- note --></div>`,
		},
		{
			name: "component",
			expr: []any{hyper.Template(func(props hyper.Props, children []any) any {
				return append([]any{"section", hyper.Props{"title": props["title"]}}, children...)
			}), hyper.Props{"title": "T"}, "body"},
			expected: `<section title="T">body</section>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToString(tt.expr, Config{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("ToString() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestToStringPretty(t *testing.T) {
	expr := []any{"div",
		[]any{"p", "one"},
		[]any{"ul", []any{"li", []any{"b", "two"}}},
	}

	got, err := ToString(expr, Config{Pretty: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "<div>\n" +
		"  <p>one</p>\n" +
		"  <ul>\n" +
		"    <li>\n" +
		"      <b>two</b>\n" +
		"    </li>\n" +
		"  </ul>\n" +
		"</div>\n"
	if got != expected {
		t.Errorf("pretty output mismatch\ngot:\n%s\nwant:\n%s", got, expected)
	}
}

func TestToStringErrors(t *testing.T) {
	tests := []struct {
		name   string
		expr   any
		target error
	}{
		{"malformed tag", []any{"div", []any{"p#a#b"}}, hyper.ErrMalformedTag},
		{"duplicate id", []any{"p#a", hyper.Props{"id": "b"}}, hyper.ErrDuplicateID},
		{"invalid root", 42, hyper.ErrInvalidExpression},
		{"invalid attribute name", []any{"div", hyper.Props{"a b": 1}}, hyper.ErrInvalidAttribute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToString(tt.expr, Config{})
			if !errors.Is(err, tt.target) {
				t.Errorf("error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestDriverRerender(t *testing.T) {
	count := 0
	counter := hyper.Template(func(hyper.Props, []any) any {
		count++
		return []any{"span", "n"}
	})

	r, err := hyper.NewRenderer(Driver(Config{}), []any{"div", counter})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := r.Rerender(hyper.Rerender); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if count != 2 {
		t.Errorf("component called %d times, want 2", count)
	}
	if r.Result() != "<div><span>n</span></div>" {
		t.Errorf("Result() = %q", r.Result())
	}
}

func TestToStringIsIdempotent(t *testing.T) {
	expr := []any{"form#f",
		[]any{"input", hyper.Props{"oninput": "edit", "value": "a & b", "required": true}},
		[]any{"button.primary", hyper.Props{"onclick": func() {}, "onSubmit": "save"}, "Save"},
		[]any{"", []any{"span", hyper.Props{"dataset": hyper.Props{"rowId": 7}}, "<row>"}},
	}

	want, err := ToString(expr, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 3; i++ {
		got, err := ToString(expr, Config{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("render %d = %q, want %q", i+2, got, want)
		}
	}

	r, err := hyper.NewRenderer(Driver(Config{Pretty: true}), expr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var frames []any
	for i := 0; i < 2; i++ {
		if err := r.Rerender(hyper.Rerender); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		frames = append(frames, r.Result())
	}
	if frames[0] != frames[1] {
		t.Errorf("pretty frames differ:\n%v\n%v", frames[0], frames[1])
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	err := Component([]any{"h1", "Hi"}, Config{}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "<h1>Hi</h1>" {
		t.Errorf("got %q", buf.String())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Component("x", Config{}).Render(ctx, &buf); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestDataAttrName(t *testing.T) {
	tests := map[string]string{
		"id":         "id",
		"userId":     "user-id",
		"fooBarBaz":  "foo-bar-baz",
		"already-ok": "already-ok",
	}
	for in, want := range tests {
		if got := DataAttrName(in); got != want {
			t.Errorf("DataAttrName(%q) = %q, want %q", in, got, want)
		}
	}
}
