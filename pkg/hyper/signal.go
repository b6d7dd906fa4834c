package hyper

// SignalKind is the closed vocabulary of lifecycle and control signals
// shared by the renderer, drivers and decorators.
type SignalKind uint8

const (
	// SignalRerender asks the renderer for one full frame.
	SignalRerender SignalKind = iota + 1

	// SignalFrameStart is delivered to Receive before a traversal. The
	// payload is the frame number.
	SignalFrameStart

	// SignalFrameEnd is delivered to Receive after a traversal. The payload
	// is the traversal error, or nil.
	SignalFrameEnd

	// SignalMissingHandler is raised by a driver that observed an
	// interaction with no registered callback. The payload is the event.
	SignalMissingHandler
)

// String returns the string representation of the SignalKind.
func (k SignalKind) String() string {
	switch k {
	case SignalRerender:
		return "rerender"
	case SignalFrameStart:
		return "frame-start"
	case SignalFrameEnd:
		return "frame-end"
	case SignalMissingHandler:
		return "missing-handler"
	default:
		return "unknown"
	}
}

// Signal is a lifecycle or control token with an optional payload.
type Signal struct {
	Kind    SignalKind
	Payload any
}

// Rerender is the signal that requests a frame.
var Rerender = Signal{Kind: SignalRerender}

// MissingHandler wraps an event nobody handled.
func MissingHandler(event any) Signal {
	return Signal{Kind: SignalMissingHandler, Payload: event}
}
