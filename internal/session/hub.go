package session

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/coder/websocket"
)

// Hub tracks live sessions. Sessions never see each other; the hub exists
// to greet them, count them and close them on shutdown.
type Hub struct {
	mu         sync.RWMutex
	sessions   map[string]*Session // clientID -> session
	register   chan *Session
	unregister chan *Session
	done       chan struct{}
}

func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]*Session),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case s := <-h.register:
			h.addSession(s)
		case s := <-h.unregister:
			h.removeSession(s)
		case <-h.done:
			h.closeAll()
			return
		}
	}
}

func (h *Hub) Register(s *Session) {
	select {
	case h.register <- s:
	case <-h.done:
	}
}

func (h *Hub) Unregister(s *Session) {
	select {
	case h.unregister <- s:
	case <-h.done:
	}
}

// Stop closes every session's connection and ends Run.
func (h *Hub) Stop() {
	close(h.done)
}

// Len returns the number of live sessions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) addSession(s *Session) {
	h.mu.Lock()
	h.sessions[s.ClientID] = s
	h.mu.Unlock()

	payload, _ := json.Marshal(WelcomePayload{
		SessionID: s.ID,
		Stage:     s.dispatch.Engine.Stage(),
	})
	s.Send(&Message{Type: TypeWelcome, SessionID: s.ID, Payload: payload})

	slog.Info("session opened", "session", s.ID, "client", s.ClientID)
}

func (h *Hub) removeSession(s *Session) {
	h.mu.Lock()
	if _, ok := h.sessions[s.ClientID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, s.ClientID)
	close(s.send)
	h.mu.Unlock()

	slog.Info("session closed", "session", s.ID, "client", s.ClientID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, s := range h.sessions {
		if s.conn != nil {
			s.conn.Close(websocket.StatusGoingAway, "server shutting down")
		}
		delete(h.sessions, id)
	}
}
