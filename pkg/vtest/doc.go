// Package vtest provides testing helpers for hyper expressions and drivers.
//
// # Identity driver
//
// IdentityDriver rebuilds the traversed expression with normalized props
// and expanded components, which makes traversal results easy to compare
// with reflect.DeepEqual:
//
//	out, err := hyper.Render(vtest.IdentityDriver(), view)
//
// # Visit traces
//
// A Recorder collects the lines produced by middleware.Trace:
//
//	var rec vtest.Recorder
//	_, err := hyper.Render(rec.Decorator()(vtest.IdentityDriver()), view)
//	// rec.Lines()[0] == "0000: [0] ELEMENT_NODE(1) <div>"
//
// # Mounting
//
// Mount renders into an in-memory document and returns it together with
// the renderer:
//
//	doc, r := vtest.Mount(t, view, program.Decorator())
//	err := doc.FindByHID("h1").Dispatch(dom.Event{Type: "click"})
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, view, "Welcome Admin")
//	vtest.ExpectNotContains(t, view, "Login")
//
// HTML trims and joins lines so expected markup can stay readable:
//
//	want := vtest.HTML(
//	    "<ul>",
//	    "  <li>a</li>",
//	    "</ul>",
//	)
package vtest
