package relay

// Registry owns the session to (username, room) bindings. Only the
// hub goroutine touches it, so it needs no locking.
type Registry struct {
	// Insertion-ordered so a username lookup is deterministic even
	// when two sessions share a name.
	sessions []*Session
}

func newRegistry() *Registry {
	return &Registry{}
}

// Join binds a session to a username and room. A session that is
// already bound stays as it is and Join reports false; username and
// room are set once for the lifetime of the connection.
func (r *Registry) Join(s *Session, username, room string) bool {
	if s.joined {
		return false
	}
	s.username = username
	s.room = room
	s.joined = true
	r.sessions = append(r.sessions, s)
	return true
}

// Leave unbinds a session on disconnect and returns what it was bound
// to. A session that never completed a join reports ok=false.
func (r *Registry) Leave(s *Session) (username, room string, ok bool) {
	if !s.joined {
		return "", "", false
	}
	for i, bound := range r.sessions {
		if bound.ID == s.ID {
			r.sessions = append(r.sessions[:i], r.sessions[i+1:]...)
			break
		}
	}
	return s.username, s.room, true
}

// LookupByUsername resolves a username inside a room for private
// delivery. Usernames are not unique; if several sessions share one,
// the earliest joined wins. Returns nil when nobody matches.
func (r *Registry) LookupByUsername(room, username string) *Session {
	for _, s := range r.sessions {
		if s.room == room && s.username == username {
			return s
		}
	}
	return nil
}
