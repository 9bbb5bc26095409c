package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"megaarena/internal/game"
)

// routerHandlers holds the handler methods for the router. Kept as a
// small struct (not free functions closing over globals) so tests can
// construct one against a fresh MatchEngine without a running server.
type routerHandlers struct {
	match *MatchEngine
	hub   *WebSocketHub
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// handleInit handles POST /api/init: (re)starts the match from an
// explicit seed, tilemap, gravity, and definition/character tables.
func (h *routerHandlers) handleInit(w http.ResponseWriter, r *http.Request) {
	var req InitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.match.Init(req); err != nil {
		var gerr *game.GameError
		if errors.As(err, &gerr) {
			writeError(w, http.StatusBadRequest, gerr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	RecordMatchInit()
	snap, _ := h.match.Snapshot()
	writeJSON(w, http.StatusOK, snap)
}

// handleStep handles POST /api/step: advances the loaded match by one
// frame and returns the resulting snapshot, broadcasting it to any
// connected spectators.
func (h *routerHandlers) handleStep(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	snap, err := h.match.Step()
	if err != nil {
		if errors.Is(err, ErrNoMatch) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		var gerr *game.GameError
		if errors.As(err, &gerr) {
			writeError(w, http.StatusConflict, gerr.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	faults, _ := h.match.Faults()
	RecordFrameStep(time.Since(start), snap, len(faults))
	if h.hub != nil {
		h.hub.BroadcastFrame(snap)
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleState handles GET /api/state: a read-only peek at the current
// match state without advancing it (§9).
func (h *routerHandlers) handleState(w http.ResponseWriter, r *http.Request) {
	snap, err := h.match.Snapshot()
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleLeaderboard handles GET /api/leaderboard?top=N, serving the
// observational leaderboard (never part of the deterministic core).
func (h *routerHandlers) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	top := 10
	if q := r.URL.Query().Get("top"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n > 0 {
			top = n
		}
	}

	entries, err := h.match.Leaderboard(top)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleFaults handles GET /api/faults: returns a copy of the
// recoverable script fault ring buffer for diagnostics (§7); the buffer
// is not cleared.
func (h *routerHandlers) handleFaults(w http.ResponseWriter, r *http.Request) {
	faults, err := h.match.Faults()
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, faults)
}
