// Package publish stores rendered documents on local disk or in S3.
//
//	p, err := publish.NewDirPublisher("public")
//	loc, err := publish.Render(ctx, p, "index.html", page, render.Config{})
package publish

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	herrors "github.com/vango-dev/hyper/internal/errors"
	"github.com/vango-dev/hyper/pkg/render"
)

// ErrInvalidName is returned for names that escape the publish root.
var ErrInvalidName = errors.New("publish: invalid name")

// Publisher is the interface for document storage backends.
type Publisher interface {
	// Publish stores the document under name and returns its location.
	Publish(ctx context.Context, name string, r io.Reader) (location string, err error)
}

// Render renders expr with the string driver and publishes the HTML.
func Render(ctx context.Context, p Publisher, name string, expr any, config render.Config) (string, error) {
	html, err := render.ToString(expr, config)
	if err != nil {
		return "", err
	}
	loc, err := p.Publish(ctx, name, strings.NewReader(html))
	if err != nil {
		return "", herrors.FromError(err, "H210").WithDetail(name)
	}
	return loc, nil
}

// cleanName turns name into a relative slash path. Names with ".."
// segments are rejected; an empty name becomes index.html.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	for _, seg := range strings.Split(name, "/") {
		if seg == ".." {
			return "", ErrInvalidName
		}
	}
	cleaned := path.Clean("/" + name)[1:]
	if cleaned == "" {
		return "index.html", nil
	}
	return cleaned, nil
}

// contentType guesses the media type from the extension.
func contentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "text/html; charset=utf-8"
	}
}
