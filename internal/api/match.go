package api

import (
	"sync"

	"megaarena/internal/game"
)

// MatchEngine guards a single *game.GameState behind a mutex so the HTTP
// and WebSocket surfaces can drive Init/Step/Snapshot concurrently while
// the core itself stays single-threaded and synchronous (§5). It never
// reaches into GameState's unexported fields — only the package's own
// Init/Step/Snapshot/Restore entry points.
type MatchEngine struct {
	mu    sync.RWMutex
	gs    *game.GameState
	board *game.Leaderboard
}

// NewMatchEngine returns an engine with no match loaded.
func NewMatchEngine() *MatchEngine {
	return &MatchEngine{board: game.NewLeaderboard()}
}

// InitRequest is the JSON body for POST /api/init. Fixed-point fields
// travel as their raw Q11.5 representation (§6) since game.Fixed is a
// plain int16 and needs no custom marshaling.
type InitRequest struct {
	Seed             uint16                        `json:"seed"`
	Gravity          game.Fixed                     `json:"gravity"`
	Tilemap          game.Tilemap                   `json:"tilemap"`
	Characters       []game.Character               `json:"characters"`
	ActionDefs       []game.ActionDefinition        `json:"action_defs"`
	ConditionDefs    []game.ConditionDefinition     `json:"condition_defs"`
	SpawnDefs        []game.SpawnDefinition         `json:"spawn_defs"`
	StatusEffectDefs []game.StatusEffectDefinition  `json:"status_effect_defs"`
}

// Init starts a new match, replacing any match currently loaded.
func (m *MatchEngine) Init(req InitRequest) error {
	gs, err := game.Init(
		req.Seed,
		req.Tilemap,
		req.Gravity,
		req.Characters,
		req.ActionDefs,
		req.ConditionDefs,
		req.SpawnDefs,
		req.StatusEffectDefs,
	)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.gs = gs
	m.board = game.NewLeaderboard()
	return nil
}

// ErrNoMatch is returned by Step/Snapshot when no match has been
// initialized yet.
var ErrNoMatch = &noMatchError{}

type noMatchError struct{}

func (e *noMatchError) Error() string { return "no match has been initialized" }

// Step advances the loaded match by a single frame.
func (m *MatchEngine) Step() (game.GameSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.gs == nil {
		return game.GameSnapshot{}, ErrNoMatch
	}
	if err := game.Step(m.gs); err != nil {
		return game.GameSnapshot{}, err
	}
	m.board.Refresh(m.gs)
	return game.Snapshot(m.gs), nil
}

// Snapshot returns a read-only peek at the current match state without
// advancing it (§9).
func (m *MatchEngine) Snapshot() (game.GameSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.gs == nil {
		return game.GameSnapshot{}, ErrNoMatch
	}
	return game.Snapshot(m.gs), nil
}

// Leaderboard returns the top n ranked characters as of the last Step.
func (m *MatchEngine) Leaderboard(n int) ([]game.LeaderboardEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.gs == nil {
		return nil, ErrNoMatch
	}
	return m.board.GetTop(n), nil
}

// Faults returns the ring of recoverable script faults recorded so far.
func (m *MatchEngine) Faults() ([]game.ScriptFault, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.gs == nil {
		return nil, ErrNoMatch
	}
	return append([]game.ScriptFault(nil), m.gs.ScriptFaults...), nil
}
