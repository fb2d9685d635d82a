// Package inspect serves read-only world snapshots over HTTP and websocket
// so the running galaxy can be watched from a browser or script.
package inspect

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Server pushes the latest published Snapshot to every websocket client
type Server struct {
	addr     string
	interval time.Duration
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	latest  Snapshot
	version uint64

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex

	http     *http.Server
	listener net.Listener
	done     chan struct{}
	wg       sync.WaitGroup
}

// NewServer creates an inspector that broadcasts at most once per interval
func NewServer(addr string, interval time.Duration) *Server {
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	s := &Server{
		addr:     addr,
		interval: interval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // local debugging tool
			},
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
		done:    make(chan struct{}),
	}
	s.latest = Snapshot{Type: "frame", Bodies: []BodySnapshot{}}
	return s
}

// Handler returns the HTTP routes: / for the latest snapshot, /ws for the stream
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.serveSnapshot)
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Start listens on the configured address and begins broadcasting
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("inspector listen %s: %w", s.addr, err)
	}
	s.listener = ln
	s.http = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		if err := s.http.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("inspector: %v", err)
		}
	}()
	go func() {
		defer s.wg.Done()
		s.broadcastLoop()
	}()

	fmt.Printf("Inspector listening on http://%s\n", ln.Addr())
	return nil
}

// Addr is the bound address once started
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Publish stores a new snapshot for the next broadcast
func (s *Server) Publish(snap Snapshot) {
	s.mu.Lock()
	s.latest = snap
	s.version++
	s.mu.Unlock()
}

// Latest returns the most recently published snapshot
func (s *Server) Latest() (Snapshot, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.version
}

// Close stops the listener, disconnects clients and waits for goroutines
func (s *Server) Close() error {
	select {
	case <-s.done:
		return nil
	default:
		close(s.done)
	}

	var err error
	if s.http != nil {
		err = s.http.Close()
	}
	s.clientsMu.Lock()
	for c := range s.clients {
		c.Close()
	}
	s.clientsMu.Unlock()
	s.wg.Wait()
	return err
}

func (s *Server) serveSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	snap, _ := s.Latest()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		log.Println("inspector encode error:", err)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	connMutex := &sync.Mutex{}
	s.clientsMu.Lock()
	s.clients[conn] = connMutex
	s.clientsMu.Unlock()
	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	snap, _ := s.Latest()
	connMutex.Lock()
	err = conn.WriteJSON(snap)
	connMutex.Unlock()
	if err != nil {
		return
	}

	// the stream is read-only; reading only detects the client going away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) broadcastLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var sent uint64
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			snap, version := s.Latest()
			if version == sent {
				continue
			}
			sent = version
			s.broadcast(snap)
		}
	}
}

func (s *Server) broadcast(snap Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		log.Println("inspector encode error:", err)
		return
	}

	s.clientsMu.RLock()
	var dead []*websocket.Conn
	for c, mu := range s.clients {
		mu.Lock()
		c.SetWriteDeadline(time.Now().Add(time.Second))
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			dead = append(dead, c)
		}
		mu.Unlock()
	}
	s.clientsMu.RUnlock()

	for _, c := range dead {
		c.Close()
	}
}
