package game

import "testing"

func TestLeaderboardRefreshRanksByDamageAndHealth(t *testing.T) {
	gs := &GameState{
		EventLog: NewEventLog(),
		Characters: []Character{
			{EntityCore: EntityCore{ID: 1}, Health: 100},
			{EntityCore: EntityCore{ID: 2}, Health: 100},
		},
	}
	gs.EventLog.Append(Event{Type: EventDamageDealt, Byte0: 1, Fixed0: FixedFromInt(50)})

	lb := NewLeaderboard()
	lb.Refresh(gs)

	if got := lb.GetRank(1); got != 1 {
		t.Errorf("rank of the character with more damage dealt = %d, want 1", got)
	}
	if got := lb.GetRank(2); got != 2 {
		t.Errorf("rank of the character with no damage dealt = %d, want 2", got)
	}
}

func TestLeaderboardRefreshPenalizesZeroHealth(t *testing.T) {
	gs := &GameState{
		EventLog: NewEventLog(),
		Characters: []Character{
			{EntityCore: EntityCore{ID: 1}, Health: 0},
			{EntityCore: EntityCore{ID: 2}, Health: 1},
		},
	}

	lb := NewLeaderboard()
	lb.Refresh(gs)

	if got := lb.GetRank(2); got != 1 {
		t.Errorf("surviving character's rank = %d, want 1 (eliminated characters are penalized)", got)
	}
}

func TestLeaderboardGetTopAndRange(t *testing.T) {
	gs := &GameState{
		EventLog: NewEventLog(),
		Characters: []Character{
			{EntityCore: EntityCore{ID: 1}, Health: 10},
			{EntityCore: EntityCore{ID: 2}, Health: 30},
			{EntityCore: EntityCore{ID: 3}, Health: 20},
		},
	}

	lb := NewLeaderboard()
	lb.Refresh(gs)

	top := lb.GetTop(2)
	if len(top) != 2 || top[0].CharacterID != 2 || top[0].Rank != 1 {
		t.Fatalf("GetTop(2) = %+v, want [{2 ... rank1} ...]", top)
	}
	if top[1].CharacterID != 3 {
		t.Errorf("GetTop(2)[1].CharacterID = %d, want 3", top[1].CharacterID)
	}

	if lb.Length() != 3 {
		t.Errorf("Length = %d, want 3", lb.Length())
	}

	score, ok := lb.GetScore(1)
	if !ok || score != 10 {
		t.Errorf("GetScore(1) = (%v, %v), want (10, true)", score, ok)
	}
}

func TestLeaderboardRefreshIsIdempotentPerCharacter(t *testing.T) {
	gs := &GameState{
		EventLog: NewEventLog(),
		Characters: []Character{
			{EntityCore: EntityCore{ID: 1}, Health: 50},
		},
	}

	lb := NewLeaderboard()
	lb.Refresh(gs)
	lb.Refresh(gs)

	if lb.Length() != 1 {
		t.Errorf("re-running Refresh on the same state should not duplicate entries, got length %d", lb.Length())
	}
}
