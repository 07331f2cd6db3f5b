// Package server keeps track of the game sessions running in one process.
// Sessions share no game state; the server only knows who is connected so
// it can announce a shutdown and wait for everyone to leave.
package server

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// GameServer is the interface clients use to announce themselves.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
}

// Server is the process-wide registry of connected clients.
type Server struct {
	mu           sync.RWMutex
	clients      map[int]*ClientHandle
	nextClientID int
	shuttingDown bool
	log          *log.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID          int
	Username    string
	ConnectedAt time.Time
	EventsCh    chan ClientEvent // Closed when the client is unregistered
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// NewServer creates an empty registry.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		log:          logger,
	}
}

// RegisterClient registers a new client and returns its handle. A client
// joining during shutdown receives the shutdown event right away.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle := &ClientHandle{
		ID:          s.nextClientID,
		Username:    username,
		ConnectedAt: time.Now(),
		EventsCh:    make(chan ClientEvent, 4),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle

	if s.shuttingDown {
		handle.EventsCh <- ClientEvent{Type: EventServerShutdown}
	}
	s.log.Debug("client registered", "id", handle.ID, "user", username, "clients", len(s.clients))
	return handle
}

// UnregisterClient removes a client and closes its event channel.
// Unknown IDs are ignored.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	close(handle.EventsCh)
	delete(s.clients, clientID)
	s.log.Debug("client unregistered", "id", clientID, "online", time.Since(handle.ConnectedAt).Round(time.Second))
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// Shutdown notifies all connected clients and waits for them to disconnect,
// up to the given timeout. It returns the number of clients still connected.
func (s *Server) Shutdown(timeout time.Duration) int {
	s.mu.Lock()
	s.shuttingDown = true
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.Unlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		remaining := s.Clients()
		if remaining == 0 {
			return 0
		}
		select {
		case <-deadline:
			s.log.Warn("shutdown timed out", "clients", remaining)
			return remaining
		case <-ticker.C:
		}
	}
}
