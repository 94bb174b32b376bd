package watch

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/zainokta/spectrum/logger"
)

// updateEvent is the wire message pushed to every connected client
// after a successful regeneration.
type updateEvent struct {
	Event string `json:"event"`
	Path  string `json:"path"`
}

var upgrader = websocket.Upgrader{
	// The live-preview page is typically served from a different
	// origin (a local dev server, a docs site) than this daemon.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server is the `spectrum watch --host --port` live-preview daemon: it
// serves the current spec at /openapi.json and pushes a
// "documentation-updated" event over /ws to every connected client
// each time Broadcast is called.
type Server struct {
	log logger.Logger

	specMu sync.RWMutex
	spec   []byte

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]struct{}
}

// NewServer creates a Server with no spec loaded yet; call SetSpec
// before (or concurrently with) ListenAndServe.
func NewServer(log logger.Logger) *Server {
	if log == nil {
		log = &logger.NoOpLogger{}
	}
	return &Server{
		log:     log,
		clients: make(map[*websocket.Conn]struct{}),
	}
}

// SetSpec updates the document served at /openapi.json.
func (s *Server) SetSpec(data []byte) {
	s.specMu.Lock()
	s.spec = data
	s.specMu.Unlock()
}

// Broadcast pushes a documentation-updated event naming path (the
// absolute path of the file that triggered regeneration) to every
// connected WebSocket client. Dead connections are dropped silently.
func (s *Server) Broadcast(path string) {
	msg, err := json.Marshal(updateEvent{Event: "documentation-updated", Path: path})
	if err != nil {
		s.log.Warn("failed to encode watch event", "error", err)
		return
	}

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			s.log.Warn("dropping watch client", "error", err)
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

// ListenAndServe blocks serving /openapi.json and /ws on addr.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/openapi.json", s.handleSpec)
	mux.HandleFunc("/ws", s.handleWS)
	s.log.Info("watch server listening", "addr", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleSpec(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "application/json")

	s.specMu.RLock()
	data := s.spec
	s.specMu.RUnlock()

	if data == nil {
		http.Error(w, "spec not generated yet", http.StatusServiceUnavailable)
		return
	}
	w.Write(data)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err)
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = struct{}{}
	s.clientsMu.Unlock()

	// Drain client messages (none are expected) until the connection
	// closes, so the read deadline / close frame handling in gorilla's
	// default Conn takes effect and we notice disconnects.
	go func() {
		defer func() {
			s.clientsMu.Lock()
			delete(s.clients, conn)
			s.clientsMu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
