package relay

// Presence pushes room user lists. Always the full list, recomputed
// from membership; no diffing.
type Presence struct {
	rooms *Rooms
}

func newPresence(rooms *Rooms) *Presence {
	return &Presence{rooms: rooms}
}

// Refresh emits the current user list to every member of the room.
// Called after every join and every leave.
func (p *Presence) Refresh(room string) {
	p.rooms.Broadcast(room, encode(EventUserList, p.rooms.MemberUsernames(room)))
}
