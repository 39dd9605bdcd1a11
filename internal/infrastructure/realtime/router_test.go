package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dial returns a server-side Connection for userID and the client end of the socket.
func dial(t *testing.T, userID string) (*Connection, *websocket.Conn) {
	t.Helper()
	upgrader := websocket.Upgrader{}
	serverSide := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		serverSide <- ws
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	select {
	case ws := <-serverSide:
		return NewConnection(userID, ws), client
	case <-time.After(2 * time.Second):
		t.Fatal("server side never upgraded")
		return nil, nil
	}
}

func readText(t *testing.T, c *websocket.Conn) string {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := c.ReadMessage()
	require.NoError(t, err)
	return string(data)
}

func TestPublishReachesRoomMembers(t *testing.T) {
	r := NewRouter()
	defer r.Close()

	alice, aliceClient := dial(t, "alice")
	bob, _ := dial(t, "bob")
	r.Attach(alice)
	r.Attach(bob)

	r.Join("event-1", alice)
	r.Join("event-2", bob)

	assert.Equal(t, 1, r.Publish("event-1", []byte(`{"type":"rsvp"}`)))
	assert.Equal(t, `{"type":"rsvp"}`, readText(t, aliceClient))
	assert.Equal(t, 0, r.Publish("event-3", []byte("nobody")))
}

func TestAttachReplacesPreviousSession(t *testing.T) {
	r := NewRouter()
	defer r.Close()

	first, _ := dial(t, "alice")
	second, _ := dial(t, "alice")
	r.Attach(first)
	r.Join("event-1", first)
	r.Attach(second)

	assert.Equal(t, 0, r.RoomSize("event-1"), "replaced session leaves its rooms")
	select {
	case <-first.Done():
	case <-time.After(time.Second):
		t.Fatal("previous session was not closed")
	}
}

func TestCloseRoomDisconnectsWatchers(t *testing.T) {
	r := NewRouter()
	defer r.Close()

	conn, client := dial(t, "alice")
	r.Attach(conn)
	r.Join("event-1", conn)
	require.Equal(t, 1, r.RoomSize("event-1"))

	r.CloseRoom("event-1")
	assert.Equal(t, 0, r.RoomSize("event-1"))

	require.NoError(t, client.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := client.ReadMessage()
	var closeErr *websocket.CloseError
	require.ErrorAs(t, err, &closeErr)
	assert.Equal(t, CloseRoomClosed, closeErr.Code)
}

func TestJoinIgnoresDetachedConnection(t *testing.T) {
	r := NewRouter()
	conn, _ := dial(t, "alice")
	r.Join("event-1", conn)
	assert.Equal(t, 0, r.RoomSize("event-1"))
}
