package relay

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryEvictsOldestPastLimit(t *testing.T) {
	rooms := newRooms()

	for i := 1; i <= HistoryLimit+1; i++ {
		rooms.AppendHistory("lobby", Message{ID: int64(i), Sender: "A", Text: fmt.Sprintf("msg %d", i)})
	}

	history := rooms.RecentHistory("lobby", HistoryLimit)
	require.Len(t, history, HistoryLimit)

	// The first message is gone, strict FIFO.
	assert.Equal(t, int64(2), history[0].ID)
	assert.Equal(t, int64(HistoryLimit+1), history[len(history)-1].ID)
}

func TestRecentHistoryChronologicalWithLimit(t *testing.T) {
	rooms := newRooms()
	for i := 1; i <= 10; i++ {
		rooms.AppendHistory("lobby", Message{ID: int64(i)})
	}

	history := rooms.RecentHistory("lobby", 3)
	require.Len(t, history, 3)
	assert.Equal(t, []int64{8, 9, 10}, []int64{history[0].ID, history[1].ID, history[2].ID})
}

func TestEmptyRoomHistory(t *testing.T) {
	rooms := newRooms()
	assert.Empty(t, rooms.RecentHistory("nowhere", HistoryLimit))
}

func TestMembershipIsIdempotent(t *testing.T) {
	rooms := newRooms()
	s := newTestSession()

	rooms.AddMember("lobby", s)
	rooms.AddMember("lobby", s)
	require.Len(t, rooms.Members("lobby"), 1)

	rooms.RemoveMember("lobby", s)
	rooms.RemoveMember("lobby", s)
	assert.Empty(t, rooms.Members("lobby"))
}

func TestMemberUsernamesKeepJoinOrder(t *testing.T) {
	rooms := newRooms()
	registry := newRegistry()

	for _, name := range []string{"carol", "alice", "bob"} {
		s := newTestSession()
		registry.Join(s, name, "lobby")
		rooms.AddMember("lobby", s)
	}

	assert.Equal(t, []string{"carol", "alice", "bob"}, rooms.MemberUsernames("lobby"))
}

func TestMemberUsernamesNeverNil(t *testing.T) {
	rooms := newRooms()
	names := rooms.MemberUsernames("empty")
	require.NotNil(t, names)
	assert.Empty(t, names)
}
