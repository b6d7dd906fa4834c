package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/hyper/pkg/hyper"
)

func TestEscapingInOutput(t *testing.T) {
	tests := []struct {
		name string
		expr any
		want string
	}{
		{
			name: "text markup",
			expr: []any{"p", "<script>alert('xss')</script>"},
			want: "<p>&lt;script&gt;alert(&#39;xss&#39;)&lt;/script&gt;</p>",
		},
		{
			name: "text entities",
			expr: []any{"p", `Tom & "Jerry"`},
			want: "<p>Tom &amp; &quot;Jerry&quot;</p>",
		},
		{
			name: "unicode text",
			expr: []any{"p", "Hello 世界"},
			want: "<p>Hello 世界</p>",
		},
		{
			name: "attribute value breaks out",
			expr: []any{"a", hyper.Props{"href": `/x" onclick="evil()`}},
			want: `<a href="/x&quot; onclick=&quot;evil()"></a>`,
		},
		{
			name: "attribute whitespace",
			expr: []any{"div", hyper.Props{"title": "a\n\r\tb"}},
			want: `<div title="a&#10;&#13;&#9;b"></div>`,
		},
		{
			name: "dataset value",
			expr: []any{"div", hyper.Props{"dataset": hyper.Props{"userId": `<"1">`}}},
			want: `<div data-user-id="&lt;&quot;1&quot;&gt;"></div>`,
		},
		{
			name: "style value",
			expr: []any{"div", hyper.Props{"style": map[string]any{"font-family": `"A" & B`}}},
			want: `<div style="font-family: &quot;A&quot; &amp; B;"></div>`,
		},
		{
			name: "event marker",
			expr: []any{"button", hyper.Props{"onClick": "inc"}, "+"},
			want: `<button data-on-click="true">+</button>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToString(tt.expr, Config{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ToString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToStringRejectsInvalidAttrNames(t *testing.T) {
	tests := []struct {
		name string
		expr any
	}{
		{"markup in key", []any{"div", hyper.Props{"x><script>alert(1)</script": "v"}}},
		{"quote in key", []any{"div", hyper.Props{`a"b`: "v"}}},
		{"space in event key", []any{"button", hyper.Props{"on click": "go"}}},
		{"dataset key", []any{"div", hyper.Props{"dataset": map[string]any{"a b": 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToString(tt.expr, Config{})
			if !errors.Is(err, hyper.ErrInvalidAttribute) {
				t.Errorf("ToString() = %q, %v, want ErrInvalidAttribute", got, err)
			}
		})
	}
}

func TestWriteAttr(t *testing.T) {
	tests := []struct {
		name  string
		attr  string
		value string
		bare  bool
		want  string
		ok    bool
	}{
		{"value", "title", "a&b", false, ` title="a&amp;b"`, true},
		{"bare", "disabled", "", true, " disabled", true},
		{"empty not bare", "alt", "", false, ` alt=""`, true},
		{"bare with value", "value", "x", true, ` value="x"`, true},
		{"markup name", "x><script", "v", false, "", false},
		{"equals in name", "a=b", "v", false, "", false},
		{"empty name", "", "v", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			ok := WriteAttr(&sb, tt.attr, tt.value, tt.bare)
			if ok != tt.ok || sb.String() != tt.want {
				t.Errorf("WriteAttr(%q, %q) = %q, %v, want %q, %v",
					tt.attr, tt.value, sb.String(), ok, tt.want, tt.ok)
			}
		})
	}
}

func BenchmarkToStringEscaping(b *testing.B) {
	expr := []any{"ul",
		[]any{"li", hyper.Props{"title": `"quoted" & <tagged>`}, "<b>one</b>"},
		[]any{"li", hyper.Props{"dataset": hyper.Props{"itemId": 2}}, "plain text"},
	}
	for i := 0; i < b.N; i++ {
		if _, err := ToString(expr, Config{}); err != nil {
			b.Fatal(err)
		}
	}
}
