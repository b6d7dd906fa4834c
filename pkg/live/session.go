package live

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/hyper/internal/errors"
	"github.com/vango-dev/hyper/pkg/dom"
	"github.com/vango-dev/hyper/pkg/hyper"
	"github.com/vango-dev/hyper/pkg/middleware"
	"github.com/vango-dev/hyper/pkg/mvu"
)

// Session is one client's document, program and renderer.
// Frames are serialized by mu; the document and renderer are not
// safe for concurrent use on their own.
type Session struct {
	ID string

	doc      *dom.Document
	program  *mvu.Program
	renderer *hyper.Renderer
	logger   *slog.Logger

	mu    sync.Mutex
	conn  *websocket.Conn
	codec Codec
}

// newSession wires a fresh document to the app's program. ctx parents the
// frame spans when tracing is enabled.
func (s *Server) newSession(ctx context.Context, id string) (*Session, error) {
	logger := s.logger.With("session", id)

	doc := dom.NewDocument()
	factory, err := dom.New(doc.Body, dom.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	program := mvu.New(s.app.Update)
	decorators := []hyper.Decorator{
		program.Decorator(),
		middleware.Logging(logger),
		middleware.Prometheus(middleware.WithRegistry(s.registry)),
	}
	if s.config.Tracing {
		decorators = append(decorators, middleware.OpenTelemetry(
			middleware.WithTracerProvider(s.config.TracerProvider),
			middleware.WithParentContext(func() context.Context { return ctx }),
		))
	}

	renderer, err := hyper.NewRenderer(
		hyper.Chain(decorators...)(factory),
		mvu.Connect(s.app.View),
		hyper.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:       id,
		doc:      doc,
		program:  program,
		renderer: renderer,
		logger:   logger,
	}, nil
}

// Render runs a frame and returns the resulting message.
func (sess *Session) Render() (Message, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := sess.renderer.Rerender(hyper.Rerender); err != nil {
		return Message{}, err
	}
	return sess.renderMessage(), nil
}

// Handle dispatches ev to its target node. The returned message is a
// render when the dispatch produced a new frame; ok is false otherwise.
func (sess *Session) Handle(ev Event) (msg Message, ok bool, err error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	node := sess.doc.FindByHID(ev.HID)
	if node == nil {
		return Message{}, false, errors.New("H301").
			WithToken(ev.HID).
			WithDetail("no node with this hydration id in the current frame")
	}

	before := sess.renderer.Frames()
	if err := node.Dispatch(dom.Event{Type: ev.Event, Value: ev.Value}); err != nil {
		return Message{}, false, err
	}
	if sess.renderer.Frames() == before {
		return Message{}, false, nil
	}
	return sess.renderMessage(), true, nil
}

// Model returns the program's current model.
func (sess *Session) Model() any {
	return sess.program.Model()
}

// HTML returns the body's current markup.
func (sess *Session) HTML() string {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.doc.Body.InnerHTML()
}

func (sess *Session) renderMessage() Message {
	return Message{
		Type:  MessageRender,
		Frame: sess.renderer.Frames(),
		HTML:  sess.doc.Body.InnerHTML(),
	}
}

// send writes msg with the session's codec. Only the connection's read
// loop writes, so writes never overlap.
func (sess *Session) send(msg Message) error {
	data, err := sess.codec.Encode(msg)
	if err != nil {
		return errors.New("H202").Wrap(err)
	}
	return sess.conn.WriteMessage(sess.codec.frameType(), data)
}

// serve runs the connection until the client goes away.
func (sess *Session) serve(s *Server) {
	msg, err := sess.Render()
	if err != nil {
		sess.logger.Error("initial render failed", "error", err)
		sess.send(errorMessage(err))
		return
	}
	if err := sess.send(msg); err != nil {
		return
	}

	for {
		frameType, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				sess.logger.Error("read error", "error", err)
			}
			return
		}

		ev, err := DecodeEvent(frameType, data)
		if err != nil {
			s.metrics.events.WithLabelValues("invalid").Inc()
			sess.logger.Warn("event decode error", "error", err)
			if sess.send(errorMessage(err)) != nil {
				return
			}
			continue
		}

		msg, changed, err := sess.Handle(ev)
		switch {
		case err != nil:
			s.metrics.events.WithLabelValues("error").Inc()
			sess.logger.Warn("event failed", "hid", ev.HID, "event", ev.Event, "error", err)
			if sess.send(errorMessage(err)) != nil {
				return
			}
		case changed:
			s.metrics.events.WithLabelValues("rendered").Inc()
			if sess.send(msg) != nil {
				return
			}
		default:
			s.metrics.events.WithLabelValues("unchanged").Inc()
		}
	}
}
