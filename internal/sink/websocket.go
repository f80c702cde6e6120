package sink

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WebSocketSink sends the image to a WebSocket receiver: a JSON
// Message of type "image", then the encoded bytes as one binary message.
type WebSocketSink struct {
	url    string
	dialer *websocket.Dialer
	conn   *websocket.Conn
}

// NewWebSocketSink creates a sink for url. The connection is made on Write.
func NewWebSocketSink(url string) *WebSocketSink {
	return &WebSocketSink{
		url:    url,
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
}

func (s *WebSocketSink) Write(meta Meta, data []byte) error {
	if s.conn == nil {
		conn, _, err := s.dialer.Dial(s.url, nil)
		if err != nil {
			return fmt.Errorf("%w: dial %s: %v", ErrWriteFailed, s.url, err)
		}
		s.conn = conn
	}

	id := meta.ID
	if id == "" {
		id = uuid.NewString()
	}
	err := s.conn.WriteJSON(Message{
		Type:   TypeImage,
		ID:     id,
		Format: meta.Format,
		Width:  meta.Width,
		Height: meta.Height,
		Size:   len(data),
	})
	if err != nil {
		return fmt.Errorf("%w: send header: %v", ErrWriteFailed, err)
	}
	if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		return fmt.Errorf("%w: send image: %v", ErrWriteFailed, err)
	}
	return nil
}

// Close sends a normal closure and shuts down the connection.
func (s *WebSocketSink) Close() error {
	if s.conn == nil {
		return nil
	}
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	err := s.conn.Close()
	s.conn = nil
	return err
}
