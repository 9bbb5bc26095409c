package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Server is the HTTP surface over a MatchEngine: the chi router plus
// the spectator WebSocket hub.
type Server struct {
	match       *MatchEngine
	router      *chi.Mux
	wsHub       *WebSocketHub
	rateLimiter *IPRateLimiter
}

// NewServer builds a server around the given MatchEngine. The hub's
// Run loop does not start until Start or StartHub is called, so the
// router can be exercised with httptest without it; the rate limiter
// created here starts its cleanup goroutine right away (Stop ends it).
func NewServer(match *MatchEngine) *Server {
	hub := NewWebSocketHub()
	rateLimiter := NewIPRateLimiter(DefaultRateLimitConfig)

	s := &Server{
		match:       match,
		wsHub:       hub,
		rateLimiter: rateLimiter,
	}
	s.router = NewRouter(RouterConfig{
		Match:       match,
		Hub:         hub,
		RateLimiter: rateLimiter,
	})
	return s
}

// Router returns the HTTP handler, for use with httptest.NewServer.
func (s *Server) Router() http.Handler {
	return s.router
}

// Mux returns the underlying chi.Mux so a host binary can mount
// additional routes (e.g. a debug PNG renderer) before listening.
func (s *Server) Mux() *chi.Mux {
	return s.router
}

// StartHub starts the spectator hub's background loop. Split out from
// Start so a host binary that builds its own *http.Server (to mount
// extra routes) can still get the hub running.
func (s *Server) StartHub() {
	go s.wsHub.Run()
}

// Start begins serving HTTP and starts the hub's background loop via
// StartHub. It is the only method on Server that opens a network
// listener.
func (s *Server) Start(addr string) error {
	s.StartHub()
	log.Printf("🎮 engine serving on %s", addr)
	log.Printf("🛰️  spectator feed: ws://%s/ws", addr)
	return http.ListenAndServe(addr, s.router)
}

// Stop performs a best-effort graceful shutdown of background workers.
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}
