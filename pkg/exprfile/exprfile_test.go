package exprfile

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	herrors "github.com/vango-dev/hyper/internal/errors"
	"github.com/vango-dev/hyper/pkg/hyper"
	"github.com/vango-dev/hyper/pkg/render"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"page.json", JSON, false},
		{"page.YAML", YAML, false},
		{"dir/page.yml", YAML, false},
		{"page.msgpack", MsgPack, false},
		{"page.mp", MsgPack, false},
		{"page.txt", "", true},
		{"page", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
			if err != nil && !errors.Is(err, herrors.New("H200")) {
				t.Errorf("expected H200, got %v", err)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"json": JSON, ".yml": YAML, "MP": MsgPack} {
		got, err := ParseFormat(name)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", name, got, err)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for xml")
	}
}

func TestUnmarshalJSON(t *testing.T) {
	data := []byte(`["div#app", {"title": "Hi", "tabindex": 2, "ratio": 0.5}, ["h1", "Hello"], "text"]`)

	got, err := Unmarshal(data, JSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []any{"div#app",
		hyper.Props{"title": "Hi", "tabindex": int64(2), "ratio": 0.5},
		[]any{"h1", "Hello"},
		"text",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v\nwant %#v", got, want)
	}
}

func TestUnmarshalYAML(t *testing.T) {
	data := []byte(`
- ul.list
- class:
    active: true
- [li, one]
- [li, two]
`)
	got, err := Unmarshal(data, YAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	html, err := render.ToString(got, render.Config{})
	if err != nil {
		t.Fatalf("render error: %v", err)
	}
	if html != `<ul class="active list"><li>one</li><li>two</li></ul>` {
		t.Errorf("html = %q", html)
	}
}

func TestRoundTripAllFormats(t *testing.T) {
	expr := []any{"section.card",
		hyper.Props{"id": "s1", "dataset": hyper.Props{"kind": "note"}},
		[]any{"p", "a < b"},
		[]any{"", "x", "y"},
	}
	want, err := render.ToString(expr, render.Config{})
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	for _, ext := range []string{".json", ".yaml", ".msgpack"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(dir, "page"+ext)
			if err := Save(path, expr); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			loaded, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			got, err := render.ToString(loaded, render.Config{})
			if err != nil {
				t.Fatalf("render error: %v", err)
			}
			if got != want {
				t.Errorf("rendered %q, want %q", got, want)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, []any{"b", "x"}, JSON); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"b"`) {
		t.Errorf("encoded = %q", buf.String())
	}
	got, err := Decode(&buf, JSON)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, []any{"b", "x"}) {
		t.Errorf("decoded = %#v", got)
	}
}

func TestMarshalRejectsTemplates(t *testing.T) {
	tmpl := hyper.Template(func(hyper.Props, []any) any { return "x" })
	_, err := Marshal([]any{"div", "a", []any{tmpl}}, JSON)

	var he *herrors.Error
	if !errors.As(err, &he) {
		t.Fatalf("expected *errors.Error, got %v", err)
	}
	if he.Code != "H202" {
		t.Errorf("Code = %q, want H202", he.Code)
	}
	if herrors.FormatPath(he.Path) != "[0,2]" {
		t.Errorf("Path = %v, want [0,2]", he.Path)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, herrors.New("H201")) {
		t.Errorf("missing file: got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("[1,"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, herrors.New("H201")) {
		t.Errorf("bad json: got %v", err)
	}
}
