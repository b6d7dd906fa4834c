package vtest_test

import (
	"reflect"
	"testing"

	"github.com/vango-dev/hyper/pkg/dom"
	"github.com/vango-dev/hyper/pkg/hyper"
	"github.com/vango-dev/hyper/pkg/vtest"
)

func TestIdentityDriver(t *testing.T) {
	card := hyper.Template(func(props hyper.Props, children []any) any {
		return append([]any{"section", hyper.Props{"title": props["title"]}}, children...)
	})

	tests := []struct {
		name string
		expr any
		want any
	}{
		{
			name: "text",
			expr: "hi",
			want: "hi",
		},
		{
			name: "element without props",
			expr: []any{"div", "a", []any{"b", "c"}},
			want: []any{"div", "a", []any{"b", "c"}},
		},
		{
			name: "tag meta normalized into props",
			expr: []any{"p#x.b.a", "t"},
			want: []any{"p", hyper.Props{"id": "x", "classList": []string{"a", "b"}}, "t"},
		},
		{
			name: "component expanded",
			expr: []any{card, hyper.Props{"title": "T"}, "body"},
			want: []any{"section", hyper.Props{"title": "T"}, "body"},
		},
		{
			name: "fragment root",
			expr: []any{"", "a", []any{"i"}},
			want: []any{"a", []any{"i"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := hyper.Render(vtest.IdentityDriver(), tt.expr)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestHTML(t *testing.T) {
	got := vtest.HTML("<i>", "  text", "<b>bold</b> .  ", "</i>")
	if got != "<i>text<b>bold</b> .</i>" {
		t.Errorf("HTML() = %q", got)
	}
}

func TestRecorder(t *testing.T) {
	var rec vtest.Recorder
	expr := []any{"div", "hello", []any{"b", "world"}}

	if _, err := hyper.Render(rec.Decorator()(vtest.IdentityDriver()), expr); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"0000: [0] ELEMENT_NODE(1) <div>",
		"0001: [0,0] TEXT_NODE(3) 'hello'",
		"0002: [0,1] ELEMENT_NODE(1) <b>",
		"0003: [0,1,0] TEXT_NODE(3) 'world'",
	}
	if got := rec.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %q\nwant %q", got, want)
	}
}

func TestRenderToString(t *testing.T) {
	if got := vtest.RenderToString([]any{"p", "x"}); got != "<p>x</p>" {
		t.Errorf("RenderToString() = %q", got)
	}
	if got := vtest.RenderToString([]any{"p#a#b"}); got != "" {
		t.Errorf("RenderToString() on error = %q, want empty", got)
	}
}

func TestExpectations(t *testing.T) {
	view := []any{"button.btn-primary", hyper.Props{"type": "submit"}, "Save"}
	vtest.ExpectContains(t, view, "Save")
	vtest.ExpectNotContains(t, view, "Cancel")
	vtest.ExpectElement(t, view, "button")
	vtest.ExpectAttribute(t, view, "class", "btn-primary")
	vtest.ExpectAttribute(t, view, "type", "submit")
}

func TestMount(t *testing.T) {
	clicked := 0
	doc, r := vtest.Mount(t, []any{"button", hyper.Props{"onclick": func() { clicked++ }}, "go"})

	if err := doc.FindByHID("h1").Dispatch(dom.Event{Type: "click"}); err != nil {
		t.Fatal(err)
	}
	if clicked != 1 {
		t.Errorf("clicked = %d, want 1", clicked)
	}
	if r.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", r.Frames())
	}
}
