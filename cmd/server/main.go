package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"megaarena/internal/api"
	"megaarena/internal/config"
)

func main() {
	log.Println("🎮 ================================")
	log.Println("🎮  MEGAARENA - FIGHT ENGINE")
	log.Println("🎮 ================================")

	appConfig := config.Load()
	log.Printf("🌐 Server: port %d", appConfig.Server.Port)
	log.Printf("🗺️  World: %dx%d tiles @ %dpx, %d frames @ %dHz",
		appConfig.World.TileCols, appConfig.World.TileRows, appConfig.World.TileSize,
		appConfig.World.TotalFrames, appConfig.World.TickHz)
	log.Printf("🛡️  Limits: %d spectators, top-%d leaderboard",
		appConfig.Limits.MaxSpectators, appConfig.Limits.LeaderboardTop)
	log.Printf("🚦 Rate limit: %.0f req/s, burst %d",
		appConfig.RateLimit.RequestsPerSecond, appConfig.RateLimit.Burst)

	match := api.NewMatchEngine()
	server := api.NewServer(match)

	mux := server.Mux()
	mux.Get("/api/debug/frame.png", newDebugFrameHandler(match, appConfig.World))
	mux.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("megaarena engine - see /api/state, /api/init, /api/step, /ws\n"))
	})

	debugCfg := api.DefaultObservabilityConfig()
	if os.Getenv("DISABLE_DEBUG_SERVER") != "true" {
		if err := api.StartDebugServer(debugCfg); err != nil {
			log.Printf("⚠️ debug server disabled: %v", err)
		}
	}

	addr := ":" + strconv.Itoa(appConfig.Server.Port)

	go func() {
		log.Printf("🎮 engine serving on %s", addr)
		log.Printf("🛰️  spectator feed: ws://localhost%s/ws", addr)
		log.Printf("🖼️  debug frame: http://localhost%s/api/debug/frame.png", addr)
		server.StartHub()
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	log.Println("✅ server ready! press Ctrl+C to stop.")
	<-quit

	log.Println("🛑 shutting down...")
	server.Stop()
	log.Println("👋 goodbye!")
}
