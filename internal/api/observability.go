package api

import (
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"megaarena/internal/game"
)

// Metrics are kept bounded-cardinality throughout: no per-character or
// per-IP label values, only fixed enums and route patterns.
var (
	frameStepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "frame_step_duration_seconds",
		Help:    "Wall-clock time spent inside one game.Step call",
		Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005},
	})

	matchStatus = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "match_status",
		Help: "Current match status: 0=playing, 1=ended",
	})

	scriptFaultTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "script_fault_total",
		Help: "Total recoverable script faults recorded by the core",
	})

	rngReseedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rng_reseed_total",
		Help: "Total times a new match was initialized (seed supplied)",
	})

	connectionRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "connection_rejected_total",
		Help: "Connections rejected by rate limiter or origin check",
	}, []string{"reason"}) // bounded: "rate_limit", "origin", "ws_limit"

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	requestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	wsConnectionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "websocket_connections_active",
		Help: "Currently active spectator WebSocket connections",
	})

	wsMessagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "websocket_messages_total",
		Help: "Total spectator frame pushes sent",
	})
)

// ObservabilityConfig configures the internal debug/metrics server.
type ObservabilityConfig struct {
	Enabled    bool
	ListenAddr string // MUST stay loopback-only in production
}

// DefaultObservabilityConfig returns safe defaults.
func DefaultObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{Enabled: true, ListenAddr: "127.0.0.1:6060"}
}

// StartDebugServer starts the pprof + /metrics server on a loopback
// address. It never blocks the caller.
func StartDebugServer(cfg ObservabilityConfig) error {
	if !cfg.Enabled {
		log.Println("📊 debug server disabled")
		return nil
	}
	if cfg.ListenAddr != "127.0.0.1:6060" && cfg.ListenAddr != "localhost:6060" {
		if os.Getenv("ALLOW_DEBUG_EXTERNAL") != "true" {
			log.Println("⚠️ debug server forced to loopback for security")
			cfg.ListenAddr = "127.0.0.1:6060"
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	go func() {
		log.Printf("📊 debug server listening on %s", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
			log.Printf("⚠️ debug server error: %v", err)
		}
	}()
	return nil
}

// RecordFrameStep records a single Step's wall-clock duration and
// mirrors the resulting match status/fault counts into the gauges.
func RecordFrameStep(d time.Duration, snap game.GameSnapshot, faultCount int) {
	frameStepDuration.Observe(d.Seconds())
	matchStatus.Set(float64(snap.Status))
	if faultCount > 0 {
		scriptFaultTotal.Add(float64(faultCount))
	}
}

// RecordMatchInit increments the reseed counter on every Init call.
func RecordMatchInit() {
	rngReseedTotal.Inc()
}

// RecordConnectionRejected increments the bounded rejection counter.
func RecordConnectionRejected(reason string) {
	connectionRejected.WithLabelValues(reason).Inc()
}

// RecordRequest records HTTP request latency/count metrics.
func RecordRequest(method, endpoint string, status int, duration time.Duration) {
	requestLatency.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	requestTotal.WithLabelValues(method, endpoint, http.StatusText(status)).Inc()
}

// UpdateWSConnections updates the spectator connection gauge.
func UpdateWSConnections(count int) {
	wsConnectionsActive.Set(float64(count))
}

// IncrementWSMessages increments the spectator push counter.
func IncrementWSMessages() {
	wsMessagesTotal.Inc()
}
