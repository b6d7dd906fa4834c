package hyper

import (
	"errors"
	"reflect"
	"testing"
)

func TestAssembleProps(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		classes []string
		props   Props
		want    Props
	}{
		{
			name:  "id only",
			id:    "a",
			props: Props{},
			want:  Props{"id": "a"},
		},
		{
			name:    "tag class and string class",
			id:      "a",
			classes: []string{"X"},
			props:   Props{"class": "Y"},
			want:    Props{"id": "a", "classList": []string{"X", "Y"}},
		},
		{
			name:    "className",
			classes: []string{"X"},
			props:   Props{"className": "Y"},
			want:    Props{"classList": []string{"X", "Y"}},
		},
		{
			name:    "class and className are sorted",
			classes: []string{"X"},
			props:   Props{"class": "Z", "className": "Y"},
			want:    Props{"classList": []string{"X", "Y", "Z"}},
		},
		{
			name:  "object class keeps truthy keys",
			props: Props{"class": map[string]any{"on": true, "off": false, "zero": 0, "yes": "y"}},
			want:  Props{"classList": []string{"on", "yes"}},
		},
		{
			name:  "bool map class",
			props: Props{"class": map[string]bool{"b": true, "a": true, "c": false}},
			want:  Props{"classList": []string{"a", "b"}},
		},
		{
			name:    "every source merged and de-duplicated",
			classes: []string{"tag", "dup"},
			props: Props{
				"classList": []any{"list", "dup", 7},
				"className": "  spaced   out dup ",
			},
			want: Props{"classList": []string{"dup", "list", "out", "spaced", "tag"}},
		},
		{
			name:  "empty classList dropped",
			props: Props{"classList": []string{}, "class": "", "title": "t"},
			want:  Props{"title": "t"},
		},
		{
			name:  "empty props id allowed",
			id:    "a",
			props: Props{"id": ""},
			want:  Props{"id": "a"},
		},
		{
			name: "nil props",
			want: Props{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AssembleProps(tt.id, tt.classes, tt.props)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AssembleProps() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestAssemblePropsDuplicateID(t *testing.T) {
	tests := []struct {
		name  string
		props Props
	}{
		{"different ids", Props{"id": "idy"}},
		{"identical ids", Props{"id": "idx"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AssembleProps("idx", nil, tt.props)
			if !errors.Is(err, ErrDuplicateID) {
				t.Errorf("error = %v, want ErrDuplicateID", err)
			}
		})
	}
}

func TestAssemblePropsDoesNotMutateCaller(t *testing.T) {
	props := Props{
		"class":     "b a",
		"className": "c",
		"classList": []string{"z", "y"},
		"title":     "keep",
	}
	list := props["classList"].([]string)

	for i := 0; i < 3; i++ {
		got, err := AssembleProps("main", []string{"x"}, props)
		if err != nil {
			t.Fatalf("render %d: unexpected error: %v", i, err)
		}
		want := []string{"a", "b", "c", "x", "y", "z"}
		if !reflect.DeepEqual(ClassList(got), want) {
			t.Errorf("render %d: classList = %v, want %v", i, ClassList(got), want)
		}
	}

	if len(props) != 4 || props["class"] != "b a" || props["className"] != "c" {
		t.Errorf("caller props were modified: %#v", props)
	}
	if _, ok := props["id"]; ok {
		t.Error("caller props gained an id")
	}
	if list[0] != "z" || list[1] != "y" {
		t.Errorf("caller classList was reordered: %v", list)
	}
}

func TestAssemblePropsClassUnion(t *testing.T) {
	tokens := []string{"div", "div.a", "div#x.b.a", "span.c.b.a.c"}
	for _, token := range tokens {
		meta, err := ParseTag(token)
		if err != nil {
			t.Fatalf("ParseTag(%q): %v", token, err)
		}
		props, err := AssembleProps(meta.ID, meta.Classes, Props{"class": "d a"})
		if err != nil {
			t.Fatalf("AssembleProps(%q): %v", token, err)
		}

		seen := map[string]bool{"d": true, "a": true}
		for _, c := range meta.Classes {
			seen[c] = true
		}
		got := ClassList(props)
		if len(got) != len(seen) {
			t.Errorf("%s: classList %v is not the union %v", token, got, seen)
		}
		for i := 1; i < len(got); i++ {
			if got[i-1] >= got[i] {
				t.Errorf("%s: classList %v is not strictly sorted", token, got)
			}
		}
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		v    any
		want bool
	}{
		{nil, false},
		{false, false},
		{true, true},
		{"", false},
		{"x", true},
		{0, false},
		{1, true},
		{0.0, false},
		{int64(3), true},
		{struct{}{}, true},
	}
	for _, tt := range tests {
		if got := Truthy(tt.v); got != tt.want {
			t.Errorf("Truthy(%#v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestValidAttrName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"href", true},
		{"data-user-id", true},
		{"aria-label", true},
		{"xlink:href", true},
		{"@click", true},
		{"", false},
		{"a b", false},
		{"x><script>alert(1)</script", false},
		{`a"b`, false},
		{"a'b", false},
		{"a=b", false},
		{"a/b", false},
		{"a\tb", false},
		{"a\x00b", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidAttrName(tt.name); got != tt.want {
				t.Errorf("ValidAttrName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
