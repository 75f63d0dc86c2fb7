package relay

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

// Session is one connected client. Username and room are set exactly
// once, when the join event lands, and are immutable afterwards. The
// send channel feeds the connection's write pump.
type Session struct {
	ID       uuid.UUID
	username string
	room     string
	joined   bool
	send     chan []byte
}

// NewSession creates an unbound session with a fresh id.
func NewSession() *Session {
	return &Session{ID: uuid.New(), send: make(chan []byte, sendBufferSize)}
}

// deliver queues a frame for the write pump. Non-blocking: a session
// whose buffer is full misses the frame. Delivery is best effort and
// nothing here waits on a recipient.
func (s *Session) deliver(frame []byte) {
	select {
	case s.send <- frame:
	default:
	}
}

type inbound struct {
	sess  *Session
	frame []byte
}

// Hub is the one goroutine that owns all shared chat state. Inbound
// events are processed one at a time, each running to completion
// before the next is read, so the registry, rooms and receipts need
// no locks. All routing components are wired here rather than being
// package globals.
type Hub struct {
	registry *Registry
	rooms    *Rooms
	router   *Router
	presence *Presence
	receipts *Receipts
	typing   *Typing

	sessions   map[*Session]bool
	register   chan *Session
	unregister chan *Session
	events     chan inbound

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

func NewHub() *Hub {
	registry := newRegistry()
	rooms := newRooms()
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		registry:   registry,
		rooms:      rooms,
		router:     newRouter(registry, rooms),
		presence:   newPresence(rooms),
		receipts:   newReceipts(rooms),
		typing:     newTyping(rooms),
		sessions:   make(map[*Session]bool),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		events:     make(chan inbound),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}
}

// Run is the event loop. It runs in its own goroutine and is the only
// thing that touches shared state.
func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case <-h.ctx.Done():
			// Closing send makes each write pump emit a close frame
			// and exit.
			for s := range h.sessions {
				close(s.send)
			}
			return

		case s := <-h.register:
			// The session exists but routes nothing until its join
			// event arrives.
			h.sessions[s] = true

		case s := <-h.unregister:
			if _, ok := h.sessions[s]; !ok {
				continue
			}
			delete(h.sessions, s)
			if room, ok := h.router.HandleLeave(s); ok {
				h.presence.Refresh(room)
			}
			close(s.send)

		case in := <-h.events:
			h.dispatch(in.sess, in.frame)
		}
	}
}

// dispatch routes one inbound frame to exactly one component. Events
// that arrive before a successful join are ignored: the session has
// no room yet and there is nothing sane to do with them.
func (h *Hub) dispatch(s *Session, frame []byte) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		log.Printf("dropping malformed frame from %s: %v", s.ID, err)
		return
	}

	if env.Event == EventJoin {
		var req JoinRequest
		if err := json.Unmarshal(env.Data, &req); err != nil || req.Username == "" || req.Room == "" {
			log.Printf("dropping malformed join from %s", s.ID)
			return
		}
		if h.router.HandleJoin(s, req.Username, req.Room) {
			h.presence.Refresh(req.Room)
		}
		return
	}

	if !s.joined {
		log.Printf("ignoring %q from unbound session %s", env.Event, s.ID)
		return
	}

	switch env.Event {
	case EventChat:
		var m Message
		if err := json.Unmarshal(env.Data, &m); err != nil {
			return
		}
		h.router.SubmitChat(s.room, m)

	case EventPrivate:
		var m Message
		if err := json.Unmarshal(env.Data, &m); err != nil {
			return
		}
		h.router.SubmitPrivate(s, m)

	case EventFile:
		var m Message
		if err := json.Unmarshal(env.Data, &m); err != nil {
			return
		}
		h.router.SubmitFile(s.room, m)

	case EventTyping:
		var username string
		if err := json.Unmarshal(env.Data, &username); err != nil {
			return
		}
		h.typing.Notify(s.room, s, username)

	case EventRead:
		var rcpt Receipt
		if err := json.Unmarshal(env.Data, &rcpt); err != nil {
			return
		}
		// The reader is whoever the session is bound to, never what
		// the payload claims.
		h.receipts.MarkRead(s.room, rcpt.MessageID, s.username)

	default:
		log.Printf("unknown event %q from %s", env.Event, s.ID)
	}
}

// Shutdown stops the event loop and waits for it to drain, up to the
// timeout.
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.cancel()
	select {
	case <-h.done:
		return nil
	case <-time.After(timeout):
		return context.DeadlineExceeded
	}
}
