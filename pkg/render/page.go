package render

import (
	"io"

	"github.com/vango-dev/hyper/pkg/hyper"
)

// PageData contains all data needed to render a complete HTML page.
type PageData struct {
	// Body is the expression rendered inside <body>.
	Body any

	// Title is the page title
	Title string

	// Meta contains meta tags for the page
	Meta []MetaTag

	// Links contains link tags (stylesheets, favicon, etc.)
	Links []LinkTag

	// Scripts contains script tags to include
	Scripts []ScriptTag

	// Styles contains inline CSS styles
	Styles []string

	// StyleSheets contains paths to external stylesheets
	StyleSheets []string

	// Lang is the language attribute for the html element
	// Defaults to "en" if not specified
	Lang string
}

// MetaTag represents a meta element in the document head.
type MetaTag struct {
	Name      string // name attribute
	Content   string // content attribute
	Property  string // property attribute (for OpenGraph)
	HTTPEquiv string // http-equiv attribute
	Charset   string // charset attribute
}

// LinkTag represents a link element in the document head.
type LinkTag struct {
	Rel         string // rel attribute
	Href        string // href attribute
	Type        string // type attribute
	Sizes       string // sizes attribute
	CrossOrigin string // crossorigin attribute
	Media       string // media attribute
}

// ScriptTag represents a script element.
type ScriptTag struct {
	Src    string // src attribute
	Type   string // type attribute
	Defer  bool   // defer attribute
	Async  bool   // async attribute
	Module bool   // type="module"
	Inline string // inline script content
}

// Page builds the expression for a complete HTML document. Deferred and
// async scripts go in the head, the rest at the end of the body.
func Page(page PageData) any {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}

	head := []any{"head",
		[]any{"meta", hyper.Props{"charset": "utf-8"}},
		[]any{"meta", hyper.Props{"name": "viewport", "content": "width=device-width, initial-scale=1"}},
	}
	if page.Title != "" {
		head = append(head, []any{"title", page.Title})
	}
	for _, meta := range page.Meta {
		head = append(head, metaExpr(meta))
	}
	for _, link := range page.Links {
		head = append(head, linkExpr(link))
	}
	for _, href := range page.StyleSheets {
		head = append(head, []any{"link", hyper.Props{"rel": "stylesheet", "href": href}})
	}
	for _, style := range page.Styles {
		head = append(head, []any{"style", hyper.Props{"dangerouslySetInnerHTML": style}})
	}

	body := []any{"body"}
	if page.Body != nil {
		body = append(body, page.Body)
	}
	for _, script := range page.Scripts {
		if script.Defer || script.Async {
			head = append(head, scriptExpr(script))
		} else {
			body = append(body, scriptExpr(script))
		}
	}

	return []any{"",
		[]any{"!DOCTYPE html"},
		[]any{"html", hyper.Props{"lang": lang}, head, body},
	}
}

// RenderPage renders a complete HTML document to the given writer.
func RenderPage(w io.Writer, page PageData, config Config) error {
	html, err := ToString(Page(page), config)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, html)
	return err
}

func metaExpr(meta MetaTag) []any {
	return []any{"meta", hyper.Props{
		"charset":    meta.Charset,
		"name":       meta.Name,
		"property":   meta.Property,
		"http-equiv": meta.HTTPEquiv,
		"content":    meta.Content,
	}}
}

func linkExpr(link LinkTag) []any {
	return []any{"link", hyper.Props{
		"rel":         link.Rel,
		"href":        link.Href,
		"type":        link.Type,
		"sizes":       link.Sizes,
		"crossorigin": link.CrossOrigin,
		"media":       link.Media,
	}}
}

func scriptExpr(script ScriptTag) []any {
	props := hyper.Props{
		"src":   script.Src,
		"type":  script.Type,
		"defer": script.Defer,
		"async": script.Async,
	}
	if script.Module {
		props["type"] = "module"
	}
	if script.Inline != "" {
		props["dangerouslySetInnerHTML"] = script.Inline
	}
	return []any{"script", props}
}
