// Package errors provides structured, actionable error messages for hyper.
//
// Every failure raised by the renderer, its drivers and its tooling is an
// *Error carrying a registered code:
//   - Shows the tree path of the node that failed (e.g. [0,2,1])
//   - Explains what went wrong in plain language
//   - Suggests how to fix the expression or driver
//
// # Error Categories
//
//   - driver: driver factories and decorators that break the protocol
//   - expression: malformed expression trees handed to Render
//   - tag: tag token grammar violations ("div#a#b", "div.")
//   - props: conflicting props (duplicate ids)
//   - root: render targets missing creation facilities
//   - config: hyper.json problems
//   - io: expression files and publishing targets
//   - live: websocket protocol errors
//
// # Usage
//
//	err := errors.New("H004").
//	    WithToken("div#a#b").
//	    WithPath([]int{0, 2}).
//	    WithSuggestion("Use at most one #id segment per tag")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR H004: Malformed tag token
//	//
//	//   at [0,2] "div#a#b"
//	//
//	//   Hint: Use at most one #id segment per tag
//
// Errors compare by code, so errors.Is(err, errors.New("H004")) reports
// whether err is a malformed tag failure regardless of its details.
package errors
