// Package dom is an in-memory document and a hyper driver that renders
// into it.
//
// Each frame clears the root and rebuilds its children: elements are
// created, attached to the current parent and pushed while their children
// are traversed. Props become attributes, data-* entries, style
// declarations or listeners. Any element with a listener receives a
// hydration id (data-hid) so it can be found again with
// Document.FindByHID.
//
//	doc := dom.NewDocument()
//	factory, err := dom.New(doc.Body)
//	r, err := hyper.NewRenderer(factory, view)
//	err = r.Rerender(hyper.Rerender)
//	html := doc.Body.InnerHTML()
//
// Listeners that are functions run when Node.Dispatch is called. Any other
// listener value (typically a message) is raised through the renderer as a
// missing-handler signal carrying an Event, which is what the mvu
// decorator consumes.
package dom
