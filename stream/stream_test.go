package stream_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wavefront/stream"
	"github.com/katalvlaran/wavefront/wavefront"
)

func corridor(t *testing.T) *wavefront.Grid {
	t.Helper()
	g, err := wavefront.NewGrid(1, 3)
	require.NoError(t, err)
	g.Write(0, 0, wavefront.Goal)
	g.Write(0, 2, wavefront.Agent)
	return g
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) stream.Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var f stream.Frame
	require.NoError(t, json.Unmarshal(msg, &f))
	return f
}

// TestHub_LiveFrames connects before propagation and receives every frame.
func TestHub_LiveFrames(t *testing.T) {
	hub := stream.NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 5*time.Second, 10*time.Millisecond)

	g := corridor(t)
	require.Equal(t, wavefront.Left, g.Propagate(hub))

	first := readFrame(t, conn)
	require.Equal(t, "FRAME", first.Type)
	require.Equal(t, 0, first.Seq)
	require.Equal(t, 1, first.Width)
	require.Equal(t, 3, first.Height)
	require.Equal(t, []int{1, 0, 254}, first.Cells)

	last := readFrame(t, conn)
	require.Equal(t, 1, last.Seq)
	require.Equal(t, []int{1, 2, 254}, last.Cells)
}

// TestHub_LateSubscriber replays the retained run to a client that connects
// after propagation finished.
func TestHub_LateSubscriber(t *testing.T) {
	hub := stream.NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	g := corridor(t)
	g.Propagate(hub)

	conn := dial(t, srv)
	require.Equal(t, 0, readFrame(t, conn).Seq)
	require.Equal(t, 1, readFrame(t, conn).Seq)
}

// TestHub_Reset drops history and bumps the run number.
func TestHub_Reset(t *testing.T) {
	hub := stream.NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	g := corridor(t)
	g.Propagate(hub)
	hub.Reset()
	g.Propagate(hub)

	conn := dial(t, srv)
	f := readFrame(t, conn)
	require.Equal(t, 2, f.Run)
	require.Equal(t, 0, f.Seq)
}

// TestHub_Close disconnects clients and refuses new ones.
func TestHub_Close(t *testing.T) {
	hub := stream.NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 5*time.Second, 10*time.Millisecond)

	hub.Close()
	require.Equal(t, 0, hub.Clients())
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)

	// Frames after Close are ignored.
	hub.Wave(corridor(t))

	late := dial(t, srv)
	require.NoError(t, late.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = late.ReadMessage()
	require.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

// TestHub_StalledClient keeps Wave non-blocking while a client reads
// nothing. Frames beyond the client's backlog are dropped; the ones that
// fit arrive in order once the client starts reading.
func TestHub_StalledClient(t *testing.T) {
	hub := stream.NewHub(nil)
	srv := httptest.NewServer(hub.Handler())
	defer srv.Close()
	defer hub.Close()

	conn := dial(t, srv)
	require.Eventually(t, func() bool { return hub.Clients() == 1 }, 5*time.Second, 10*time.Millisecond)

	const waves = 1000
	g := corridor(t)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < waves; i++ {
			hub.Wave(g)
		}
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Wave blocked on a client that is not reading")
	}

	// The first 100 frames fit in the client backlog, so none of them can
	// have been dropped.
	for i := 0; i < 100; i++ {
		require.Equal(t, i, readFrame(t, conn).Seq)
	}
	require.Equal(t, 1, hub.Clients())
}
