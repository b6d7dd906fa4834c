// Package render is the HTML string driver for hyper expressions.
//
// Every effect the driver produces is a string: text leaves are escaped,
// elements become their markup once their children are finalized and
// fragments are concatenated. The result of a frame is the HTML of the
// root expression.
//
//   - Attributes are rendered in sorted order for deterministic output
//   - classList becomes class, htmlFor becomes for
//   - dataset entries become data-* attributes (userId -> data-user-id)
//   - style maps become sorted "name: value;" declarations
//   - Boolean attributes (disabled, checked, ...) render by name only
//   - Void elements (input, br, img, ...) have no closing tag
//   - Function listeners (onclick: func...) are dropped; value listeners
//     become data-on-<event> markers
//   - Tags starting with "!" are emitted verbatim: ["!DOCTYPE html"]
//
// # Basic Usage
//
//	html, err := render.ToString([]any{"p.lead", "Hello"}, render.Config{})
//	// <p class="lead">Hello</p>
//
// The driver can also be handed to a renderer directly:
//
//	r, err := hyper.NewRenderer(render.Driver(render.Config{Pretty: true}), expr)
//
// # Full Page Rendering
//
//	page := render.PageData{
//	    Body:  body,
//	    Title: "My Page",
//	}
//	err := render.RenderPage(w, page, render.Config{})
//
// Component and PageComponent wrap the same output as a templ.Component.
package render
