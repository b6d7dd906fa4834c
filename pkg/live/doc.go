// Package live serves an MVU program over a websocket.
//
// Every connection gets its own document, program and renderer. The page
// shell is rendered with the string driver; after that the browser only
// receives the body's HTML, re-rendered server side after each interaction.
//
// # Wire Format
//
// The client sends events addressed by hydration id:
//
//	{"hid": "h2", "event": "click"}
//
// and receives either a render or an error:
//
//	{"type": "render", "frame": 3, "html": "<main>...</main>"}
//	{"type": "error", "code": "H301", "error": "..."}
//
// Text frames carry JSON. Connecting with ?codec=msgpack switches both
// directions to MessagePack in binary frames.
//
// # Usage
//
//	srv := live.New(live.Counter(), live.DefaultConfig())
//	err := srv.ListenAndServe(ctx, ":3000")
package live
