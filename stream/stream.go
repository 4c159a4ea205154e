// Package stream broadcasts propagation frames to browsers or other
// WebSocket clients while the planner runs.
//
// A Hub is a wavefront.Observer. Every frame is encoded once as JSON and
// queued to each connected client. The frames of the current run are kept
// so that a client connecting late still sees the whole run.
//
// Wire format (one text message per frame):
//
//	{"type":"FRAME","run":1,"seq":0,"width":10,"height":10,"cells":[0,0,...]}
//
// cells are in sweep order: x outer, y inner.
package stream

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/katalvlaran/wavefront/wavefront"
)

// ErrClosed indicates the hub no longer accepts clients.
var ErrClosed = errors.New("stream: hub closed")

const (
	// clientQueue is the per-client backlog; a slower client drops frames.
	clientQueue = 64
	// historyLimit caps retained frames: one pre frame, every sweep, and
	// the triggering frame.
	historyLimit = wavefront.MaxSweeps + 2
	writeWait    = 5 * time.Second
)

// Frame is the JSON message sent for each observer call.
type Frame struct {
	Type   string `json:"type"`
	Run    int    `json:"run"`
	Seq    int    `json:"seq"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []int  `json:"cells"`
}

type client struct {
	out chan []byte
}

// Hub fans frames out to WebSocket clients.
type Hub struct {
	log      *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	history [][]byte
	run     int
	seq     int
	closed  bool
}

// NewHub returns a Hub logging through logger. A nil logger discards logs.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Hub{
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		clients: make(map[*client]struct{}),
		run:     1,
	}
}

// Reset starts a new run: retained history is dropped and sequence numbers
// restart at zero.
func (h *Hub) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.history = nil
	h.seq = 0
	h.run++
}

// Wave implements wavefront.Observer.
func (h *Hub) Wave(v wavefront.View) {
	w, ht := v.Size()
	cells := wavefront.Snapshot(v)
	ints := make([]int, len(cells))
	for i, c := range cells {
		ints[i] = int(c)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	msg, err := json.Marshal(Frame{
		Type: "FRAME", Run: h.run, Seq: h.seq,
		Width: w, Height: ht, Cells: ints,
	})
	if err != nil {
		h.log.Printf("stream: encode frame %d: %v", h.seq, err)
		return
	}
	h.seq++
	if len(h.history) < historyLimit {
		h.history = append(h.history, msg)
	}
	for c := range h.clients {
		select {
		case c.out <- msg:
		default:
			// Slow client: drop rather than stall propagation.
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client. Later frames are ignored.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for c := range h.clients {
		close(c.out)
		delete(h.clients, c)
	}
}

// join registers a client and seeds its queue with the retained history.
func (h *Hub) join() (*client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrClosed
	}
	c := &client{out: make(chan []byte, clientQueue+historyLimit)}
	for _, msg := range h.history {
		c.out <- msg
	}
	h.clients[c] = struct{}{}
	return c, nil
}

func (h *Hub) leave(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.out)
	}
}

// Handler upgrades the request to a WebSocket and streams frames until the
// client disconnects or the hub closes.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		c, err := h.join()
		if err != nil {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "closed"),
				time.Now().Add(time.Second))
			return
		}
		defer h.leave(c)
		h.log.Printf("stream: client %s connected", r.RemoteAddr)

		// Reader: only used to notice disconnects.
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-gone:
				h.log.Printf("stream: client %s disconnected", r.RemoteAddr)
				return
			case msg, ok := <-c.out:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
						time.Now().Add(time.Second))
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}
	}
}
