// Package config provides centralized configuration management for the
// surface binary. This is the SINGLE SOURCE OF TRUTH for all
// HTTP/observability settings.
//
// IMPORTANT: When changing values, only modify this file. The
// simulation kernel in internal/game never imports this package —
// Init only ever depends on its explicit arguments (determinism).
package config

import (
	"os"
	"strconv"
)

// =============================================================================
// SERVER CONFIGURATION
// =============================================================================

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
}

// DefaultServer returns the default server configuration.
func DefaultServer() ServerConfig {
	return ServerConfig{Port: 3000}
}

// ServerFromEnv returns server configuration with environment variable
// overrides.
func ServerFromEnv() ServerConfig {
	cfg := DefaultServer()
	if p := getEnvInt("PORT", 0); p > 0 {
		cfg.Port = p
	}
	return cfg
}

// =============================================================================
// WORLD CONFIGURATION (echoed to clients, never fed into Init)
// =============================================================================

// WorldConfig mirrors the arena's fixed dimensions so collaborators can
// size their own rendering without hard-coding the core's constants.
type WorldConfig struct {
	TileCols    int
	TileRows    int
	TileSize    int
	TotalFrames int
	TickHz      int
}

// DefaultWorld returns the fixed arena geometry (§1, §3). These are not
// overridable — the core's tilemap shape is not configuration.
func DefaultWorld() WorldConfig {
	return WorldConfig{
		TileCols:    16,
		TileRows:    15,
		TileSize:    16,
		TotalFrames: 3840,
		TickHz:      60,
	}
}

// =============================================================================
// RESOURCE LIMITS
// =============================================================================

// ResourceLimits bounds the surface layer's bookkeeping around a match
// (observational leaderboard size, websocket fan-out), distinct from
// the core's own internal caps (spawn table, event ring buffer).
type ResourceLimits struct {
	MaxSpectators  int // reported at startup only; the websocket hub does not read it and enforces its own fixed cap
	LeaderboardTop int // rows returned by the leaderboard's top-N query
}

// DefaultLimits returns the default resource limits.
func DefaultLimits() ResourceLimits {
	return ResourceLimits{
		MaxSpectators:  200,
		LeaderboardTop: 10,
	}
}

// LimitsFromEnv layers environment overrides onto DefaultLimits.
func LimitsFromEnv() ResourceLimits {
	cfg := DefaultLimits()
	if v := getEnvInt("MAX_SPECTATORS", 0); v > 0 {
		cfg.MaxSpectators = v
	}
	if v := getEnvInt("LEADERBOARD_TOP", 0); v > 0 {
		cfg.LeaderboardTop = v
	}
	return cfg
}

// =============================================================================
// RATE LIMIT CONFIGURATION
// =============================================================================

// RateLimitConfig tunes the IP-based HTTP rate limiter.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// DefaultRateLimit returns the default rate-limit configuration.
func DefaultRateLimit() RateLimitConfig {
	return RateLimitConfig{RequestsPerSecond: 20, Burst: 40}
}

// RateLimitFromEnv layers environment overrides onto DefaultRateLimit.
func RateLimitFromEnv() RateLimitConfig {
	cfg := DefaultRateLimit()
	if v := getEnvFloat("RATE_LIMIT_RPS", -1); v >= 0 {
		cfg.RequestsPerSecond = v
	}
	if v := getEnvInt("RATE_LIMIT_BURST", 0); v > 0 {
		cfg.Burst = v
	}
	return cfg
}

// =============================================================================
// COMPLETE APP CONFIGURATION
// =============================================================================

// AppConfig holds the complete surface-layer configuration.
type AppConfig struct {
	Server    ServerConfig
	World     WorldConfig
	Limits    ResourceLimits
	RateLimit RateLimitConfig
}

// Load returns the complete configuration with environment overrides.
func Load() AppConfig {
	return AppConfig{
		Server:    ServerFromEnv(),
		World:     DefaultWorld(),
		Limits:    LimitsFromEnv(),
		RateLimit: RateLimitFromEnv(),
	}
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
