package transport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokermania/pokercli/internal/protocol"
)

var upgrader = websocket.Upgrader{}

// testServer is a websocket endpoint handing the accepted connection
// to the test.
func testServer(t *testing.T) (*httptest.Server, chan *websocket.Conn) {
	t.Helper()
	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		conns <- conn
	}))
	t.Cleanup(srv.Close)
	return srv, conns
}

func newTestTransport(t *testing.T, url string) (*Transport, chan protocol.Packet) {
	t.Helper()
	received := make(chan protocol.Packet, 16)
	logger := log.NewWithOptions(io.Discard, log.Options{})
	trans := New(url, func(pkt protocol.Packet) { received <- pkt }, logger, quartz.NewMock(t))
	t.Cleanup(func() { trans.Close() })
	return trans, received
}

func TestReceiveDecodesFrames(t *testing.T) {
	srv, conns := testServer(t)
	trans, received := newTestTransport(t, srv.URL)

	require.NoError(t, trans.Connect())
	server := <-conns

	require.NoError(t, server.WriteMessage(websocket.TextMessage, []byte("SERIAL serial = 42")))

	select {
	case pkt := <-received:
		assert.Equal(t, &protocol.Serial{Serial: 42}, pkt)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a packet")
	}
}

func TestSendEncodesFrames(t *testing.T) {
	srv, conns := testServer(t)
	trans, _ := newTestTransport(t, srv.URL)

	require.NoError(t, trans.Connect())
	server := <-conns

	trans.Send(&protocol.Login{Name: "testuser", Password: "testpass"})

	_, data, err := server.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "LOGIN name = testuser password = testpass", string(data))
}

func TestUndecodableFramesAreSkipped(t *testing.T) {
	srv, conns := testServer(t)
	trans, received := newTestTransport(t, srv.URL)

	require.NoError(t, trans.Connect())
	server := <-conns

	require.NoError(t, server.WriteMessage(websocket.TextMessage, []byte("GARBAGE x")))
	require.NoError(t, server.WriteMessage(websocket.TextMessage, []byte("SERIAL serial = 1")))

	select {
	case pkt := <-received:
		// the bad frame was dropped, not fatal
		assert.Equal(t, &protocol.Serial{Serial: 1}, pkt)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a packet")
	}
}

func TestDoneOnServerClose(t *testing.T) {
	srv, conns := testServer(t)
	trans, _ := newTestTransport(t, srv.URL)

	require.NoError(t, trans.Connect())
	server := <-conns
	server.Close()

	select {
	case <-trans.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Done")
	}
	assert.False(t, trans.IsConnected())
}

func TestSendAfterCloseIsDropped(t *testing.T) {
	srv, conns := testServer(t)
	trans, _ := newTestTransport(t, srv.URL)

	require.NoError(t, trans.Connect())
	<-conns
	trans.Close()

	// must not panic or block
	trans.Send(&protocol.Login{Name: "x", Password: "y"})
}
