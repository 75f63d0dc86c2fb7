package relay

// Receipts tracks which users have acknowledged which messages, per
// room. Sets only grow; receipts outlive history eviction for the
// rest of the process. The message id is not checked against history,
// the client is trusted here.
type Receipts struct {
	rooms   *Rooms
	readers map[string]map[int64]map[string]struct{}
}

func newReceipts(rooms *Rooms) *Receipts {
	return &Receipts{
		rooms:   rooms,
		readers: make(map[string]map[int64]map[string]struct{}),
	}
}

// MarkRead records that reader has seen messageID and tells the whole
// room, so every client converges on the same receipt view. Repeated
// marks are no-ops and are not rebroadcast. Reports whether the mark
// was new.
func (rc *Receipts) MarkRead(room string, messageID int64, reader string) bool {
	byMessage, ok := rc.readers[room]
	if !ok {
		byMessage = make(map[int64]map[string]struct{})
		rc.readers[room] = byMessage
	}
	set, ok := byMessage[messageID]
	if !ok {
		set = make(map[string]struct{})
		byMessage[messageID] = set
	}
	if _, seen := set[reader]; seen {
		return false
	}
	set[reader] = struct{}{}

	rc.rooms.Broadcast(room, encode(EventRead, Receipt{MessageID: messageID, Reader: reader}))
	return true
}

// Readers returns the reader set recorded for a message.
func (rc *Receipts) Readers(room string, messageID int64) []string {
	out := make([]string, 0)
	for reader := range rc.readers[room][messageID] {
		out = append(out, reader)
	}
	return out
}
