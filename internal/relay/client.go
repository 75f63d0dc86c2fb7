package relay

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second    // Time allowed to write a frame to the peer.
	pongWait   = 60 * time.Second    // Time allowed to read the next pong from the peer.
	pingPeriod = (pongWait * 9) / 10 // Must be less than pongWait.

	// File messages carry base64 payloads, so the read limit is far
	// above a plain chat line.
	maxMessageSize = 1 << 20

	sendBufferSize = 256
)

// Client is the middleman between one websocket connection and the
// hub: a read pump feeding frames in, a write pump draining the
// session's send channel out.
type Client struct {
	hub  *Hub
	sess *Session
	conn *websocket.Conn
}

// readPump pumps frames from the websocket into the hub. One per
// connection; the transport error that ends the loop is what triggers
// leave cleanup.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c.sess
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("session %s read error: %v", c.sess.ID, err)
			}
			break
		}
		c.hub.events <- inbound{sess: c.sess, frame: frame}
	}
}

// writePump pumps frames from the session's send channel to the
// websocket, pinging on a ticker to keep the connection alive.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.sess.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(frame)

			// Drain whatever else is queued into the same write to
			// cut down on syscalls.
			n := len(c.sess.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.sess.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
