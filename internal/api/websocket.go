package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"megaarena/internal/game"
)

// MaxWSConnectionsTotal is the maximum number of spectator connections
// allowed across all IPs.
const MaxWSConnectionsTotal = 500

// MaxWSConnectionsPerIP is the maximum spectator connections per IP.
const MaxWSConnectionsPerIP = 10

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if IsAllowedOrigin(origin) {
			return true
		}
		log.Printf("⚠️ spectator connection rejected from origin: %s", origin)
		RecordConnectionRejected("origin")
		return false
	},
}

type wsClient struct {
	conn *websocket.Conn
	ip   string
}

// WebSocketHub fans one JSON-encoded snapshot out to every connected
// spectator each time the match advances a frame (§3 domain stack: a
// read-only "spectate the match" feed, never a command channel).
type WebSocketHub struct {
	clients    map[*websocket.Conn]*wsClient
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *websocket.Conn
	mu         sync.RWMutex

	wsLimiter *WebSocketRateLimiter
}

// NewWebSocketHub creates a new hub with per-IP connection limiting.
func NewWebSocketHub() *WebSocketHub {
	return &WebSocketHub{
		clients:    make(map[*websocket.Conn]*wsClient),
		broadcast:  make(chan []byte, 256),
		register:   make(chan *wsClient),
		unregister: make(chan *websocket.Conn),
		wsLimiter:  NewWebSocketRateLimiter(MaxWSConnectionsPerIP),
	}
}

// Run services the hub's register/unregister/broadcast channels. Call
// it once, in its own goroutine, before accepting connections.
func (h *WebSocketHub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.conn] = client
			h.mu.Unlock()
			count := h.ClientCount()
			log.Printf("📱 spectator connected from %s (%d total)", client.ip, count)
			UpdateWSConnections(count)

		case conn := <-h.unregister:
			h.mu.Lock()
			if client, ok := h.clients[conn]; ok {
				h.wsLimiter.Release(client.ip)
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()
			count := h.ClientCount()
			log.Printf("📱 spectator disconnected (%d remaining)", count)
			UpdateWSConnections(count)

		case message := <-h.broadcast:
			h.mu.RLock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					h.mu.RUnlock()
					h.mu.Lock()
					if client, ok := h.clients[conn]; ok {
						h.wsLimiter.Release(client.ip)
						delete(h.clients, conn)
					}
					h.mu.Unlock()
					h.mu.RLock()
				}
			}
			h.mu.RUnlock()
			IncrementWSMessages()
		}
	}
}

// BroadcastFrame pushes the just-stepped snapshot to every spectator.
// Called synchronously right after MatchEngine.Step succeeds — there is
// no independent ticking loop, since a spectated frame only exists once
// the core has actually produced it.
func (h *WebSocketHub) BroadcastFrame(snap game.GameSnapshot) {
	if h.ClientCount() == 0 {
		return
	}

	payload, err := json.Marshal(map[string]interface{}{
		"event": "frame",
		"data":  snap,
	})
	if err != nil {
		return
	}

	select {
	case h.broadcast <- payload:
	default:
		// Hub backlog full; drop rather than block the step loop.
	}
}

// ClientCount returns the number of connected spectators.
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket upgrades a request to a spectator WebSocket
// connection, subject to the total and per-IP connection caps.
func (h *WebSocketHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := GetClientIP(r)

	if h.ClientCount() >= MaxWSConnectionsTotal {
		log.Printf("⚠️ spectator connection rejected: total limit reached")
		RecordConnectionRejected("ws_limit")
		http.Error(w, "Too many connections", http.StatusServiceUnavailable)
		return
	}

	if !h.wsLimiter.Allow(ip) {
		log.Printf("⚠️ spectator connection rejected from %s: per-IP limit reached", ip)
		RecordConnectionRejected("ws_limit")
		http.Error(w, "Too many connections from your IP", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("spectator upgrade error: %v", err)
		h.wsLimiter.Release(ip)
		return
	}

	client := &wsClient{conn: conn, ip: ip}
	h.register <- client

	go func() {
		defer func() { h.unregister <- conn }()
		for {
			// Spectators never send commands; drain and discard so
			// the connection's read deadline/pong handling works.
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
