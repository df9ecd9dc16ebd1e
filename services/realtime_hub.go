package services

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const wsWriteWait = 10 * time.Second

type WSClient struct {
	SessionID string
	Conn      *websocket.Conn

	// gorilla connections allow a single concurrent writer
	writeMu sync.Mutex
}

// Send writes one JSON message to the client.
func (c *WSClient) Send(payload any) error {
	msg, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.write(websocket.TextMessage, msg)
}

// Ping sends a keepalive control frame.
func (c *WSClient) Ping() error {
	return c.write(websocket.PingMessage, nil)
}

func (c *WSClient) write(kind int, msg []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.Conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return c.Conn.WriteMessage(kind, msg)
}

// RealtimeHub fans game updates out to every socket open on a session.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.SessionID] == nil {
		h.clients[c.SessionID] = make(map[*WSClient]struct{})
	}
	h.clients[c.SessionID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.SessionID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.SessionID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Clients reports how many sockets are open on a session.
func (h *RealtimeHub) Clients(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

func (h *RealtimeHub) Broadcast(sessionID string, payload any) {
	h.mu.RLock()
	targets := make([]*WSClient, 0, len(h.clients[sessionID]))
	for c := range h.clients[sessionID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.Send(payload); err != nil {
			log.Printf("[game] ws send to %s: %v", sessionID, err)
		}
	}
}
