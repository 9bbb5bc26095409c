package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig contains the dependencies needed to construct the HTTP
// router as plain injected fields, so the router can be exercised with
// httptest without starting a real server.
type RouterConfig struct {
	// Match is the engine backing every handler (required).
	Match *MatchEngine

	// Hub is the spectator WebSocket hub (required for /ws; handlers
	// degrade gracefully to a nil hub by simply skipping the push).
	Hub *WebSocketHub

	// RateLimiter is an optional pre-configured limiter. If nil, one
	// is built from RateLimitConfig (or DefaultRateLimitConfig).
	RateLimiter *IPRateLimiter

	RateLimitConfig *RateLimitConfig

	// CORSOrigins overrides the default allowed origin patterns.
	CORSOrigins []string

	// DisableLogging turns off the request logger middleware, useful
	// for benchmarks and quiet test runs.
	DisableLogging bool
}

// NewRouter constructs the HTTP router with all middleware and routes.
// It opens no listeners and is safe to use directly with
// httptest.NewServer. When cfg.RateLimiter is nil it creates an
// IPRateLimiter, which starts that limiter's cleanup goroutine.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &routerHandlers{match: cfg.Match, hub: cfg.Hub}

	r.Route("/api", func(r chi.Router) {
		r.Post("/init", h.handleInit)
		r.Post("/step", h.handleStep)
		r.Get("/state", h.handleState)
		r.Get("/leaderboard", h.handleLeaderboard)
		r.Get("/faults", h.handleFaults)
	})

	if cfg.Hub != nil {
		r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
			cfg.Hub.HandleWebSocket(w, req)
		})
	}

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
