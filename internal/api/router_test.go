package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"megaarena/internal/game"
)

func newTestServer(t *testing.T) (*httptest.Server, *MatchEngine) {
	t.Helper()
	match := NewMatchEngine()
	cfg := RouterConfig{
		Match: match,
		RateLimitConfig: &RateLimitConfig{
			RequestsPerSecond: 1000,
			Burst:             1000,
			CleanupInterval:   time.Minute,
		},
		DisableLogging: true,
	}
	srv := httptest.NewServer(NewRouter(cfg))
	t.Cleanup(srv.Close)
	return srv, match
}

func validInitRequest() InitRequest {
	return InitRequest{
		Seed:    1,
		Gravity: game.FixedFromInt(1),
		Characters: []game.Character{
			{EntityCore: game.EntityCore{ID: 1}, Health: 100, HealthCap: 100, Energy: 10, EnergyCap: 10},
		},
		ActionDefs: []game.ActionDefinition{
			{Script: []byte{byte(game.OpExit), 1}},
		},
		ConditionDefs: []game.ConditionDefinition{{}},
	}
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func TestHandleInitRejectsEmptyCharacters(t *testing.T) {
	srv, _ := newTestServer(t)

	req := validInitRequest()
	req.Characters = nil
	resp := postJSON(t, srv.URL+"/api/init", req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestHandleInitThenStateRoundTrip(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/init", validInitRequest())
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("init status = %d, want 200", resp.StatusCode)
	}

	var initSnap game.GameSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&initSnap); err != nil {
		t.Fatalf("decode init response: %v", err)
	}
	if len(initSnap.Characters) != 1 {
		t.Fatalf("expected 1 character in the init snapshot, got %d", len(initSnap.Characters))
	}

	stateResp, err := http.Get(srv.URL + "/api/state")
	if err != nil {
		t.Fatalf("GET /api/state: %v", err)
	}
	defer stateResp.Body.Close()
	if stateResp.StatusCode != http.StatusOK {
		t.Fatalf("state status = %d, want 200", stateResp.StatusCode)
	}

	var stateSnap game.GameSnapshot
	if err := json.NewDecoder(stateResp.Body).Decode(&stateSnap); err != nil {
		t.Fatalf("decode state response: %v", err)
	}
	if stateSnap.Frame != initSnap.Frame {
		t.Errorf("state snapshot frame = %d, want %d (state should not advance the match)", stateSnap.Frame, initSnap.Frame)
	}
}

func TestHandleStepAdvancesFrame(t *testing.T) {
	srv, _ := newTestServer(t)
	postJSON(t, srv.URL+"/api/init", validInitRequest()).Body.Close()

	resp, err := http.Post(srv.URL+"/api/step", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /api/step: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("step status = %d, want 200", resp.StatusCode)
	}

	var snap game.GameSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode step response: %v", err)
	}
	if snap.Frame != 1 {
		t.Errorf("frame after one step = %d, want 1", snap.Frame)
	}
}

func TestHandleStepWithoutInitReturnsConflict(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/step", "application/json", nil)
	if err != nil {
		t.Fatalf("POST /api/step: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want %d (no match loaded)", resp.StatusCode, http.StatusConflict)
	}
}

func TestHandleLeaderboardAfterStep(t *testing.T) {
	srv, _ := newTestServer(t)
	postJSON(t, srv.URL+"/api/init", validInitRequest()).Body.Close()
	http.Post(srv.URL+"/api/step", "application/json", nil)

	resp, err := http.Get(srv.URL + "/api/leaderboard?top=5")
	if err != nil {
		t.Fatalf("GET /api/leaderboard: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("leaderboard status = %d, want 200", resp.StatusCode)
	}

	var entries []game.LeaderboardEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode leaderboard response: %v", err)
	}
	if len(entries) != 1 || entries[0].CharacterID != 1 {
		t.Errorf("leaderboard entries = %+v, want one entry for character 1", entries)
	}
}

func TestHandleFaultsAfterStep(t *testing.T) {
	srv, _ := newTestServer(t)
	postJSON(t, srv.URL+"/api/init", validInitRequest()).Body.Close()
	http.Post(srv.URL+"/api/step", "application/json", nil)

	resp, err := http.Get(srv.URL + "/api/faults")
	if err != nil {
		t.Fatalf("GET /api/faults: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("faults status = %d, want 200", resp.StatusCode)
	}

	var faults []game.ScriptFault
	if err := json.NewDecoder(resp.Body).Decode(&faults); err != nil {
		t.Fatalf("decode faults response: %v", err)
	}
	if len(faults) != 0 {
		t.Errorf("expected no script faults for a clean run, got %d", len(faults))
	}
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d, want 200", resp.StatusCode)
	}
}
