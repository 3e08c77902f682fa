// Package livestream hosts an optional websocket server that streams block
// completion events to connected browser clients as the simulator runs.
//
// The simulation core has no knowledge of this package: a Server only ever
// receives completions via a ring.Hooks callback wired in by the caller
// (cmd/ringsim's "watch" subcommand), and publishing is best-effort so a
// slow or absent subscriber never perturbs the deterministic replay
// contract.
package livestream

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is one completion, as published to every connected client.
type Event struct {
	T     float64 `json:"t"`
	Node  int64   `json:"node"`
	Block int64   `json:"block"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server fans Publish calls out to every client connected at /events. It
// never blocks the caller: a client whose outgoing buffer is full misses
// that event rather than being allowed to stall publication.
type Server struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan Event
}

// NewServer builds an empty Server.
func NewServer() *Server {
	return &Server{clients: make(map[*websocket.Conn]chan Event)}
}

// Handler returns the /events upgrade handler to mount on an http.ServeMux.
func (s *Server) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Warn("livestream: upgrade failed", "err", err)
			return
		}

		ch := make(chan Event, 64)
		s.mu.Lock()
		s.clients[conn] = ch
		s.mu.Unlock()

		go s.writeLoop(conn, ch)
	}
}

func (s *Server) writeLoop(conn *websocket.Conn, ch chan Event) {
	defer s.removeClient(conn)
	defer conn.Close()

	for ev := range ch {
		if err := conn.WriteJSON(ev); err != nil {
			return
		}
	}
}

func (s *Server) removeClient(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.clients[conn]; ok {
		close(ch)
		delete(s.clients, conn)
	}
}

// Publish fans ev out to every connected client. A client whose channel is
// full is skipped for this event rather than blocking the publisher.
func (s *Server) Publish(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.clients {
		select {
		case ch <- ev:
		default:
		}
	}
}

// ClientCount reports how many clients are currently connected.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
