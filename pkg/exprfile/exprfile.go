// Package exprfile reads and writes hyper expressions as JSON, YAML or
// MessagePack documents.
//
// An expression file holds plain data: strings, arrays and objects. Objects
// in the second slot of an array are props. Templates cannot be stored.
//
//	["div#app", {"title": "Hi"}, ["h1", "Hello"], "text"]
package exprfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	herrors "github.com/vango-dev/hyper/internal/errors"
	"github.com/vango-dev/hyper/pkg/hyper"
)

// Format is an on-disk encoding.
type Format string

const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	MsgPack Format = "msgpack"
)

var extensions = map[string]Format{
	".json":    JSON,
	".yaml":    YAML,
	".yml":     YAML,
	".msgpack": MsgPack,
	".mp":      MsgPack,
}

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{JSON, YAML, MsgPack}
}

// ParseFormat resolves a format name such as "yml" or "json".
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	if f, ok := extensions["."+name]; ok {
		return f, nil
	}
	return "", herrors.New("H200").WithToken(name).
		WithSuggestion("Use one of: " + supportedExtensions())
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", herrors.New("H200").WithToken(path).
		WithSuggestion("Use one of: " + supportedExtensions())
}

func supportedExtensions() string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}

// Load reads the expression stored at path.
func Load(path string) (any, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, herrors.New("H201").WithDetail(path).Wrap(err)
	}
	return Unmarshal(data, format)
}

// Save writes expr to path in the format matching its extension.
func Save(path string, expr any) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(expr, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return herrors.New("H202").WithDetail(path).Wrap(err)
	}
	return nil
}

// Decode reads one expression from r.
func Decode(r io.Reader, format Format) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, herrors.New("H201").Wrap(err)
	}
	return Unmarshal(data, format)
}

// Encode writes expr to w.
func Encode(w io.Writer, expr any, format Format) error {
	data, err := Marshal(expr, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Unmarshal decodes data and normalizes every object to hyper.Props.
func Unmarshal(data []byte, format Format) (any, error) {
	var raw any
	var err error
	switch format {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&raw)
	case YAML:
		err = yaml.Unmarshal(data, &raw)
	case MsgPack:
		err = msgpack.Unmarshal(data, &raw)
	default:
		return nil, herrors.New("H200").WithToken(string(format))
	}
	if err != nil {
		return nil, herrors.New("H201").WithDetail(string(format)).Wrap(err)
	}
	return Normalize(raw), nil
}

// Marshal encodes expr. Templates and other non-data values fail with
// the path where they were found.
func Marshal(expr any, format Format) ([]byte, error) {
	if err := checkData(expr, hyper.Path{0}); err != nil {
		return nil, err
	}

	var data []byte
	var err error
	switch format {
	case JSON:
		data, err = json.MarshalIndent(expr, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case YAML:
		data, err = yaml.Marshal(expr)
	case MsgPack:
		data, err = msgpack.Marshal(expr)
	default:
		return nil, herrors.New("H200").WithToken(string(format))
	}
	if err != nil {
		return nil, herrors.New("H202").WithDetail(string(format)).Wrap(err)
	}
	return data, nil
}

// Normalize converts decoded objects to hyper.Props and JSON numbers to
// int64 or float64, recursively.
func Normalize(v any) any {
	switch x := v.(type) {
	case map[string]any:
		props := make(hyper.Props, len(x))
		for k, val := range x {
			props[k] = Normalize(val)
		}
		return props
	case hyper.Props:
		props := make(hyper.Props, len(x))
		for k, val := range x {
			props[k] = Normalize(val)
		}
		return props
	case map[any]any:
		props := make(hyper.Props, len(x))
		for k, val := range x {
			props[fmt.Sprint(k)] = Normalize(val)
		}
		return props
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = Normalize(item)
		}
		return out
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	default:
		return v
	}
}

// checkData rejects values that cannot survive a round trip.
func checkData(v any, path hyper.Path) error {
	if _, ok := hyper.AsCallable(v); ok {
		return herrors.New("H202").
			WithDetail(fmt.Sprintf("%T cannot be stored", v)).
			WithPath(path).
			WithSuggestion("Render templates before saving, or store the data they are built from")
	}
	switch x := v.(type) {
	case []any:
		for i, item := range x {
			if err := checkData(item, path.Child(i)); err != nil {
				return err
			}
		}
	case hyper.Props:
		return checkProps(x, path)
	case map[string]any:
		return checkProps(x, path)
	}
	return nil
}

func checkProps(props map[string]any, path hyper.Path) error {
	for k, val := range props {
		if _, ok := hyper.AsCallable(val); ok {
			return herrors.New("H202").
				WithDetail(fmt.Sprintf("prop %q holds %T", k, val)).
				WithPath(path)
		}
		if err := checkData(val, path); err != nil {
			return err
		}
	}
	return nil
}
