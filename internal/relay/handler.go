package relay

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests into relay sessions.
type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewHandler(hub *Hub, cfg *Config) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return cfg.OriginAllowed(r.Header.Get("Origin"))
			},
		},
	}
}

// ServeWs handles a websocket request: upgrade, mint a session,
// register it with the hub and start the two pumps. The session stays
// unbound until the client sends its join event.
func (h *Handler) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}

	sess := NewSession()
	log.Printf("client connected: %s", sess.ID)

	client := &Client{hub: h.hub, sess: sess, conn: conn}
	h.hub.register <- sess

	go client.writePump()
	go client.readPump()
}
