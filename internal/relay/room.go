package relay

// HistoryLimit caps each room's retained history. The oldest message
// is evicted once a room passes it, and joins replay at most this many.
const HistoryLimit = 50

// Room is a named broadcast domain. Members are kept in join order
// because the user list is displayed in that order; history is a
// fixed-capacity FIFO ring. Rooms are created on first join and live
// until process teardown, even with no members left.
type Room struct {
	Name    string
	members []*Session
	history *ring
}

// Rooms is the directory of every room in the process. Owned by the
// hub goroutine.
type Rooms struct {
	rooms map[string]*Room
}

func newRooms() *Rooms {
	return &Rooms{rooms: make(map[string]*Room)}
}

func (d *Rooms) room(name string) *Room {
	r, ok := d.rooms[name]
	if !ok {
		r = &Room{Name: name, history: newRing(HistoryLimit)}
		d.rooms[name] = r
	}
	return r
}

// AddMember is idempotent; adding a session twice leaves one entry.
func (d *Rooms) AddMember(name string, s *Session) {
	r := d.room(name)
	for _, m := range r.members {
		if m.ID == s.ID {
			return
		}
	}
	r.members = append(r.members, s)
}

// RemoveMember is idempotent; removing an absent session is a no-op.
func (d *Rooms) RemoveMember(name string, s *Session) {
	r := d.room(name)
	for i, m := range r.members {
		if m.ID == s.ID {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return
		}
	}
}

// Members returns the room's current sessions in join order.
func (d *Rooms) Members(name string) []*Session {
	return d.room(name).members
}

// MemberUsernames returns the display user list. Never nil, so an
// empty room serializes as [] rather than null.
func (d *Rooms) MemberUsernames(name string) []string {
	r := d.room(name)
	names := make([]string, 0, len(r.members))
	for _, m := range r.members {
		names = append(names, m.username)
	}
	return names
}

// AppendHistory stores a message, evicting the oldest past HistoryLimit.
func (d *Rooms) AppendHistory(name string, m Message) {
	d.room(name).history.push(m)
}

// RecentHistory returns up to limit most recent messages, oldest first.
func (d *Rooms) RecentHistory(name string, limit int) []Message {
	return d.room(name).history.tail(limit)
}

// Broadcast queues a frame for every member of the room. Best effort:
// a member with a full send buffer misses the frame.
func (d *Rooms) Broadcast(name string, frame []byte) {
	for _, m := range d.room(name).members {
		m.deliver(frame)
	}
}

// BroadcastExcept skips one session, for events the sender already
// knows about (its own typing).
func (d *Rooms) BroadcastExcept(name string, skip *Session, frame []byte) {
	for _, m := range d.room(name).members {
		if m.ID == skip.ID {
			continue
		}
		m.deliver(frame)
	}
}

// ring is a fixed-capacity message FIFO. Once full, each push
// overwrites the oldest entry.
type ring struct {
	buf   []Message
	start int
	count int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]Message, capacity)}
}

func (r *ring) push(m Message) {
	if r.count < len(r.buf) {
		r.buf[(r.start+r.count)%len(r.buf)] = m
		r.count++
		return
	}
	r.buf[r.start] = m
	r.start = (r.start + 1) % len(r.buf)
}

// tail returns up to limit newest entries in chronological order.
func (r *ring) tail(limit int) []Message {
	if limit > r.count {
		limit = r.count
	}
	out := make([]Message, 0, limit)
	for i := r.count - limit; i < r.count; i++ {
		out = append(out, r.buf[(r.start+i)%len(r.buf)])
	}
	return out
}
