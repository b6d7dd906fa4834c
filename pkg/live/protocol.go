package live

import (
	"encoding/json"
	stderrors "errors"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vango-dev/hyper/internal/errors"
)

// Event is an interaction sent by the client.
type Event struct {
	HID   string `json:"hid" msgpack:"hid"`
	Event string `json:"event" msgpack:"event"`
	Value any    `json:"value,omitempty" msgpack:"value,omitempty"`
}

// MessageType identifies server messages.
type MessageType string

const (
	MessageRender MessageType = "render"
	MessageError  MessageType = "error"
)

// Message is sent to the client.
type Message struct {
	Type  MessageType `json:"type" msgpack:"type"`
	Frame int         `json:"frame,omitempty" msgpack:"frame,omitempty"`
	HTML  string      `json:"html,omitempty" msgpack:"html,omitempty"`
	Code  string      `json:"code,omitempty" msgpack:"code,omitempty"`
	Error string      `json:"error,omitempty" msgpack:"error,omitempty"`
}

// Codec selects the encoding of websocket frames.
type Codec int

const (
	CodecJSON Codec = iota
	CodecMsgPack
)

// parseCodec maps the ?codec= query value; anything unknown is JSON.
func parseCodec(s string) Codec {
	if s == "msgpack" {
		return CodecMsgPack
	}
	return CodecJSON
}

// frameType is the websocket message type the codec writes.
func (c Codec) frameType() int {
	if c == CodecMsgPack {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}

// DecodeEvent decodes a client frame. The frame type decides the codec
// so a client may mix both.
func DecodeEvent(frameType int, data []byte) (Event, error) {
	var ev Event
	var err error
	if frameType == websocket.BinaryMessage {
		err = msgpack.Unmarshal(data, &ev)
	} else {
		err = json.Unmarshal(data, &ev)
	}
	if err != nil {
		return Event{}, errors.New("H300").Wrap(err)
	}
	if ev.HID == "" || ev.Event == "" {
		return Event{}, errors.New("H300").
			WithDetail("hid and event are required")
	}
	return ev, nil
}

// Encode encodes msg for the codec.
func (c Codec) Encode(msg Message) ([]byte, error) {
	if c == CodecMsgPack {
		return msgpack.Marshal(msg)
	}
	return json.Marshal(msg)
}

// errorMessage turns err into an error message, keeping its code when
// it has one.
func errorMessage(err error) Message {
	msg := Message{Type: MessageError, Error: err.Error()}
	var he *errors.Error
	if stderrors.As(err, &he) {
		msg.Code = he.Code
	}
	return msg
}
