// Package relay implements the room-based chat core: session and room
// bookkeeping, message routing with bounded per-room history, presence
// lists, read receipts and typing relay, all behind one event-loop
// goroutine fed by websocket sessions.
package relay

import (
	"encoding/json"
	"time"
)

// Wire event names. These match what the browser client emits and
// listens for, so the frontend does not need a translation layer.
const (
	EventJoin     = "join"
	EventChat     = "chat-message"
	EventPrivate  = "private-message"
	EventFile     = "file-message"
	EventTyping   = "typing"
	EventRead     = "message-read"
	EventHistory  = "previous-messages"
	EventUserList = "user-list"
)

// SystemSender is the reserved sender name for join/leave notices.
const SystemSender = "System"

// Envelope frames every event in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Message covers all four variants: Chat, Private, File and System.
// Which one it is falls out of the fields that are set, mirroring the
// JSON the client already understands. Private messages never enter a
// room's history; everything else does.
type Message struct {
	ID       int64  `json:"id"`
	Sender   string `json:"sender"`
	Time     string `json:"time"`
	Text     string `json:"text,omitempty"`
	Receiver string `json:"receiver,omitempty"`
	FileName string `json:"fileName,omitempty"`
	FileData string `json:"fileData,omitempty"`
	Private  bool   `json:"private,omitempty"`
	IsFile   bool   `json:"isFile,omitempty"`
}

// JoinRequest is the payload of a join event.
type JoinRequest struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// Receipt is a read acknowledgment. Clients send only the MessageID;
// the server fills in Reader from the session before rebroadcasting.
type Receipt struct {
	MessageID int64  `json:"messageId"`
	Reader    string `json:"reader,omitempty"`
}

// clock hands out unique, strictly increasing message ids. Ids are
// unix milliseconds, nudged forward when two messages land in the
// same millisecond.
type clock struct {
	last int64
}

func (c *clock) next() int64 {
	now := time.Now().UnixMilli()
	if now <= c.last {
		now = c.last + 1
	}
	c.last = now
	return now
}

// observe keeps the clock ahead of client-supplied ids so a later
// server-assigned id never collides with one we honored.
func (c *clock) observe(id int64) {
	if id > c.last {
		c.last = id
	}
}

func stampTime(t time.Time) string {
	return t.Format("3:04:05 PM")
}

// encode wraps a payload in its envelope, ready for the write pump.
func encode(event string, data any) []byte {
	raw, _ := json.Marshal(data)
	frame, _ := json.Marshal(Envelope{Event: event, Data: raw})
	return frame
}
