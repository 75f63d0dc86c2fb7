package relay

import (
	"fmt"
	"log"
	"time"
)

// Router validates and stamps inbound messages and decides between
// room broadcast and point-to-point delivery. It writes history for
// everything except private messages.
type Router struct {
	registry *Registry
	rooms    *Rooms
	clock    clock
}

func newRouter(registry *Registry, rooms *Rooms) *Router {
	return &Router{registry: registry, rooms: rooms}
}

// stamp fills in the id and timestamp a client left blank. A client
// that supplies its own id keeps it, which lets it resubmit a message
// idempotently; the clock is advanced past it either way.
func (rt *Router) stamp(m *Message) {
	if m.ID == 0 {
		m.ID = rt.clock.next()
	} else {
		rt.clock.observe(m.ID)
	}
	if m.Time == "" {
		m.Time = stampTime(time.Now())
	}
}

func (rt *Router) system(text string) Message {
	return Message{
		ID:     rt.clock.next(),
		Sender: SystemSender,
		Text:   text,
		Time:   stampTime(time.Now()),
	}
}

// SubmitChat stores a chat message and broadcasts it to the whole
// room, sender included, so every client renders the same history
// without local echo.
func (rt *Router) SubmitChat(room string, m Message) {
	rt.stamp(&m)
	rt.rooms.AppendHistory(room, m)
	rt.rooms.Broadcast(room, encode(EventChat, m))
}

// SubmitFile is SubmitChat with a file payload. The payload is opaque:
// no size or content-type checks here.
func (rt *Router) SubmitFile(room string, m Message) {
	m.IsFile = true
	rt.stamp(&m)
	rt.rooms.AppendHistory(room, m)
	rt.rooms.Broadcast(room, encode(EventFile, m))
}

// SubmitPrivate delivers to the resolved receiver only. Not stored,
// not echoed to the sender (the sender renders its own copy). An
// offline receiver means the message is absorbed; the sender gets no
// error back.
func (rt *Router) SubmitPrivate(sender *Session, m Message) {
	target := rt.registry.LookupByUsername(sender.room, m.Receiver)
	if target == nil {
		log.Printf("private message from %q to %q dropped: receiver not in %q", sender.username, m.Receiver, sender.room)
		return
	}
	m.Private = true
	rt.stamp(&m)
	target.deliver(encode(EventPrivate, m))
}

// HandleJoin binds the session, replays history to it alone, then
// announces the arrival to the whole room. The notice goes into
// history like any other system message. Reports whether the join
// took effect; a re-join of a bound session is ignored.
func (rt *Router) HandleJoin(s *Session, username, room string) bool {
	if !rt.registry.Join(s, username, room) {
		log.Printf("session %s already bound to %q/%q; ignoring re-join", s.ID, s.username, s.room)
		return false
	}
	rt.rooms.AddMember(room, s)

	s.deliver(encode(EventHistory, rt.rooms.RecentHistory(room, HistoryLimit)))

	notice := rt.system(fmt.Sprintf("%s joined %s", username, room))
	rt.rooms.AppendHistory(room, notice)
	rt.rooms.Broadcast(room, encode(EventChat, notice))
	return true
}

// HandleLeave unbinds a disconnected session and announces the
// departure. Returns the room so the caller can refresh presence, or
// ok=false for a session that never joined.
func (rt *Router) HandleLeave(s *Session) (room string, ok bool) {
	username, room, ok := rt.registry.Leave(s)
	if !ok {
		return "", false
	}
	rt.rooms.RemoveMember(room, s)

	notice := rt.system(fmt.Sprintf("%s left %s", username, room))
	rt.rooms.AppendHistory(room, notice)
	rt.rooms.Broadcast(room, encode(EventChat, notice))
	return room, true
}
