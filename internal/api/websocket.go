package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"nhooyr.io/websocket"

	"github.com/shelftrack/shelftrack/internal/auth"
	"github.com/shelftrack/shelftrack/internal/httputil"
)

// Hub delivers change events to the owning user's connected clients. It is
// the live-subscription half of the collection accessors: after every
// successful write the API broadcasts a typed event and clients re-fetch.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*wsClient]bool
	log     *logrus.Logger
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

type wsMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

func NewHub(log *logrus.Logger) *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*wsClient]bool),
		log:     log,
	}
}

// Broadcast sends an event to every connection of one user. Slow clients
// drop messages rather than blocking the writer.
func (h *Hub) Broadcast(userID uuid.UUID, event string, data interface{}) {
	msg, err := json.Marshal(wsMessage{Event: event, Data: data})
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		select {
		case c.send <- msg:
		default:
		}
	}
}

func (h *Hub) add(userID uuid.UUID, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*wsClient]bool)
	}
	h.clients[userID][c] = true
}

func (h *Hub) remove(userID uuid.UUID, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[userID]; ok {
		if _, ok := conns[c]; ok {
			close(c.send)
			delete(conns, c)
		}
		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.WithError(err).Debug("websocket accept failed")
		return
	}

	client := &wsClient{conn: conn, send: make(chan []byte, 16)}
	s.hub.add(userID, client)
	defer s.hub.remove(userID, client)

	ctx := r.Context()
	go func() {
		// Drain incoming frames so pings/close are processed.
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				return
			}
		}
	}()

	for msg := range client.send {
		writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := conn.Write(writeCtx, websocket.MessageText, msg)
		cancel()
		if err != nil {
			break
		}
	}
	conn.Close(websocket.StatusNormalClosure, "")
}
