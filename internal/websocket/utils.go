package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

// writeWait bounds how long a single outbound frame may block; a client
// that stops reading gets its connection torn down instead of stalling
// the session goroutines behind it.
const writeWait = 10 * time.Second

// WriteTyped sends an event payload over the WebSocket with a bounded
// write deadline.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}

// WriteError sends a typed ErrorResponse over the WebSocket.
func WriteError(conn *websocket.Conn, errMsg string) error {
	return WriteTyped(conn, ErrorResponse{
		Event: EventError,
		Error: errMsg,
	})
}
