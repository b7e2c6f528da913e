package websocket

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/terratalk/terratalk/internal/domain"
	"github.com/terratalk/terratalk/internal/observability/telemetry"
)

// SignalServer is the push-only endpoint presentation collaborators (the map
// surface, overlay panels) connect to. It runs on its own port next to the
// API server and broadcasts every emitted signal to all connected clients.
type SignalServer struct {
	log      *zap.Logger
	server   *http.Server
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
}

func NewSignalServer(log *zap.Logger) *SignalServer {
	return &SignalServer{
		log:     log,
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Security: validate origin in prod
			},
		},
	}
}

func (s *SignalServer) Start(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/signals", s.handleConnection)
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
	return s.server.ListenAndServe()
}

func (s *SignalServer) Stop() {
	s.mu.Lock()
	for conn := range s.clients {
		conn.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
	s.mu.Unlock()

	if s.server != nil {
		s.server.Close()
	}
}

func (s *SignalServer) handleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	s.register(conn)
	defer s.unregister(conn)

	s.log.Info("Signal client connected", zap.String("remote", conn.RemoteAddr().String()))

	// Clients never send application data; the read loop only services
	// control frames and detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.Warn("Signal client error", zap.Error(err))
			}
			break
		}
	}
}

func (s *SignalServer) register(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[conn] = true
	telemetry.SignalClientsConnected.Inc()
}

func (s *SignalServer) unregister(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.clients[conn]; ok {
		conn.Close()
		delete(s.clients, conn)
		telemetry.SignalClientsConnected.Dec()
	}
}

// Broadcast pushes one signal to every connected client. A client that fails
// the write is dropped.
func (s *SignalServer) Broadcast(sig domain.Signal) {
	data, err := json.Marshal(sig)
	if err != nil {
		s.log.Error("Signal marshal failed", zap.String("topic", string(sig.Topic)), zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.log.Warn("Dropping signal client", zap.Error(err))
			conn.Close()
			delete(s.clients, conn)
			telemetry.SignalClientsConnected.Dec()
		}
	}
}
