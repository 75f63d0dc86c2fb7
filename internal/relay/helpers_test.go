package relay

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestSession() *Session {
	return &Session{ID: uuid.New(), send: make(chan []byte, 128)}
}

// drain pops every frame currently queued for a session and decodes
// the envelopes.
func drain(t *testing.T, s *Session) []Envelope {
	t.Helper()
	var out []Envelope
	for {
		select {
		case frame := <-s.send:
			var env Envelope
			require.NoError(t, json.Unmarshal(frame, &env))
			out = append(out, env)
		default:
			return out
		}
	}
}

func eventNames(envs []Envelope) []string {
	names := make([]string, 0, len(envs))
	for _, env := range envs {
		names = append(names, env.Event)
	}
	return names
}

// byEvent returns the envelopes matching one event name.
func byEvent(envs []Envelope, event string) []Envelope {
	var out []Envelope
	for _, env := range envs {
		if env.Event == event {
			out = append(out, env)
		}
	}
	return out
}

func decodeMessage(t *testing.T, env Envelope) Message {
	t.Helper()
	var m Message
	require.NoError(t, json.Unmarshal(env.Data, &m))
	return m
}

func decodeMessages(t *testing.T, env Envelope) []Message {
	t.Helper()
	var msgs []Message
	require.NoError(t, json.Unmarshal(env.Data, &msgs))
	return msgs
}

func decodeUserList(t *testing.T, env Envelope) []string {
	t.Helper()
	var users []string
	require.NoError(t, json.Unmarshal(env.Data, &users))
	return users
}
