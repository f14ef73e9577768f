package ws

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func receive(t *testing.T, conn *Connection) Message {
	t.Helper()
	select {
	case data := <-conn.Send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestBroadcastFansOutToAuthorConnections(t *testing.T) {
	hub := NewHub(zap.NewNop())

	first := &Connection{AuthorID: "author_abc", Send: make(chan []byte, 4), Hub: hub}
	second := &Connection{AuthorID: "author_abc", Send: make(chan []byte, 4), Hub: hub}
	hub.Register(first)
	hub.Register(second)

	hub.BroadcastToAuthor("author_abc", string(MsgGenerationStarted), map[string]string{"chapterId": "ch1"})

	for _, conn := range []*Connection{first, second} {
		msg := receive(t, conn)
		assert.Equal(t, MsgGenerationStarted, msg.Type)

		var payload map[string]string
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, "ch1", payload["chapterId"])
	}
}

func TestBroadcastSkipsOtherAuthors(t *testing.T) {
	hub := NewHub(zap.NewNop())

	mine := &Connection{AuthorID: "author_abc", Send: make(chan []byte, 4), Hub: hub}
	other := &Connection{AuthorID: "author_xyz", Send: make(chan []byte, 4), Hub: hub}
	hub.Register(mine)
	hub.Register(other)

	hub.BroadcastToAuthor("author_abc", string(MsgDraftComplete), map[string]string{"chapterId": "ch1"})

	msg := receive(t, mine)
	assert.Equal(t, MsgDraftComplete, msg.Type)

	select {
	case data := <-other.Send:
		t.Fatalf("unexpected message for other author: %s", data)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub(zap.NewNop())

	conn := &Connection{AuthorID: "author_abc", Send: make(chan []byte, 4), Hub: hub}
	hub.Register(conn)
	hub.Unregister(conn)

	select {
	case _, open := <-conn.Send:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("send channel not closed")
	}
}
