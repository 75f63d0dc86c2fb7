package relay

// Typing relays keystroke signals to the rest of the room. Nothing is
// stored server-side; expiring the "is typing" indicator is the
// receiving client's job. Every event is relayed as-is, no rate
// limiting.
type Typing struct {
	rooms *Rooms
}

func newTyping(rooms *Rooms) *Typing {
	return &Typing{rooms: rooms}
}

// Notify relays a typing signal to everyone in the room except the
// sender, who already knows.
func (t *Typing) Notify(room string, sender *Session, username string) {
	t.rooms.BroadcastExcept(room, sender, encode(EventTyping, username))
}
