package game

import "megaarena/internal/spatial"

// Leaderboard ranks characters by a score derived purely by observing
// GameState after Step returns (§4 supplemental notes). It never reads
// from or writes into GameState's deterministic fields and is safe to
// update from a goroutine separate from the simulation loop.
type Leaderboard struct {
	skipList *spatial.SkipList
}

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	CharacterID uint8
	Score       float64
	Rank        int
}

// NewLeaderboard creates an empty leaderboard.
func NewLeaderboard() *Leaderboard {
	return &Leaderboard{skipList: spatial.NewSkipList()}
}

// Refresh recomputes every character's score from the current
// GameState and the event log's retained history: damage dealt (a
// proxy for "kills-ish" since the core has no kill counter) weighted
// above current health, with a penalty for having been eliminated.
func (lb *Leaderboard) Refresh(gs *GameState) {
	damageByCharacter := make(map[uint8]float64, len(gs.Characters))
	if gs.EventLog != nil {
		for _, ev := range gs.EventLog.All() {
			if ev.Type == EventDamageDealt {
				damageByCharacter[ev.Byte0] += float64(ev.Fixed0.ToInt())
			}
		}
	}

	for _, ch := range gs.Characters {
		score := damageByCharacter[ch.ID]*10 + float64(ch.Health)
		if ch.Health == 0 {
			score -= 1000
		}
		lb.skipList.Insert(ch.ID, score)
	}
}

// GetRank returns a character's 1-indexed rank (1 = highest score), or
// 0 if the character has never been observed.
func (lb *Leaderboard) GetRank(characterID uint8) int {
	return lb.skipList.GetRank(characterID)
}

// GetScore returns a character's last-observed score, or (0, false) if
// the character has never been observed.
func (lb *Leaderboard) GetScore(characterID uint8) (float64, bool) {
	return lb.skipList.GetScore(characterID)
}

// GetTop returns the top n entries, highest score first.
func (lb *Leaderboard) GetTop(n int) []LeaderboardEntry {
	return lb.rangeToEntries(1, n)
}

// GetRange returns entries ranked [start, end] inclusive.
func (lb *Leaderboard) GetRange(start, end int) []LeaderboardEntry {
	return lb.rangeToEntries(start, end)
}

func (lb *Leaderboard) rangeToEntries(start, end int) []LeaderboardEntry {
	raw := lb.skipList.GetRange(start, end)
	result := make([]LeaderboardEntry, len(raw))
	rank := start
	for i, e := range raw {
		result[i] = LeaderboardEntry{CharacterID: e.Key, Score: e.Score, Rank: rank}
		rank++
	}
	return result
}

// Length reports how many characters have been observed.
func (lb *Leaderboard) Length() int {
	return lb.skipList.Length()
}
