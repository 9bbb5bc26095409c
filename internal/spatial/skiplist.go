// Package spatial provides cache-efficient spatial data structures.
//
// This file implements a concurrent skip list with augmented span counts
// for O(log n) rank queries - ideal for real-time leaderboards.
//
// Origin: Pugh (1990), "Skip Lists: A Probabilistic Alternative to Balanced Trees"
// Redis ZSET uses this exact pattern for leaderboards.
package spatial

import (
	"math/rand"
	"sync"
	"sync/atomic"
)

const (
	maxLevel          = 16 // supports well beyond any realistic roster size
	levelProbability  = 0.25
)

// SkipListEntry represents a scored entry in the leaderboard, keyed by
// the arena's 8-bit character id rather than a player-name string.
type SkipListEntry struct {
	Key   uint8
	Score float64
}

type skipNode struct {
	entry SkipListEntry
	next  []*skipNode
	span  []int
}

// SkipList is a concurrent skip list with O(log n) rank queries, used
// by the observational leaderboard (never by the deterministic core).
type SkipList struct {
	head   *skipNode
	level  int32
	length int32
	mu     sync.RWMutex
	rng    *rand.Rand
}

// NewSkipList creates an empty skip list.
func NewSkipList() *SkipList {
	head := &skipNode{
		next: make([]*skipNode, maxLevel),
		span: make([]int, maxLevel),
	}
	return &SkipList{
		head:  head,
		level: 1,
		rng:   rand.New(rand.NewSource(1)),
	}
}

func (sl *SkipList) randomLevel() int {
	level := 1
	for level < maxLevel && sl.rng.Float64() < levelProbability {
		level++
	}
	return level
}

// Insert adds or updates key's score, repositioning it if it already
// exists. Finding an existing key walks the bottom level, so this is
// O(n).
func (sl *SkipList) Insert(key uint8, score float64) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.insertLocked(key, score)
}

func (sl *SkipList) insertLocked(key uint8, score float64) {
	sl.removeLocked(key)

	update := make([]*skipNode, maxLevel)
	rank := make([]int, maxLevel)

	x := sl.head
	for i := int(atomic.LoadInt32(&sl.level)) - 1; i >= 0; i-- {
		if i == int(sl.level)-1 {
			rank[i] = 0
		} else {
			rank[i] = rank[i+1]
		}
		for x.next[i] != nil && (x.next[i].entry.Score > score ||
			(x.next[i].entry.Score == score && x.next[i].entry.Key < key)) {
			rank[i] += x.span[i]
			x = x.next[i]
		}
		update[i] = x
	}

	newLevel := sl.randomLevel()
	currentLevel := int(sl.level)

	if newLevel > currentLevel {
		for i := currentLevel; i < newLevel; i++ {
			rank[i] = 0
			update[i] = sl.head
			update[i].span[i] = int(sl.length)
		}
		atomic.StoreInt32(&sl.level, int32(newLevel))
	}

	node := &skipNode{
		entry: SkipListEntry{Key: key, Score: score},
		next:  make([]*skipNode, newLevel),
		span:  make([]int, newLevel),
	}

	for i := 0; i < newLevel; i++ {
		node.next[i] = update[i].next[i]
		update[i].next[i] = node
		node.span[i] = update[i].span[i] - (rank[0] - rank[i])
		update[i].span[i] = (rank[0] - rank[i]) + 1
	}
	for i := newLevel; i < int(sl.level); i++ {
		update[i].span[i]++
	}

	atomic.AddInt32(&sl.length, 1)
}

// Remove deletes key, returning true if it was present.
func (sl *SkipList) Remove(key uint8) bool {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.removeLocked(key)
}

func (sl *SkipList) removeLocked(key uint8) bool {
	var target *skipNode
	for x := sl.head.next[0]; x != nil; x = x.next[0] {
		if x.entry.Key == key {
			target = x
			break
		}
	}
	if target == nil {
		return false
	}

	update := make([]*skipNode, maxLevel)
	x := sl.head
	for i := int(sl.level) - 1; i >= 0; i-- {
		for x.next[i] != nil && x.next[i] != target && (x.next[i].entry.Score > target.entry.Score ||
			(x.next[i].entry.Score == target.entry.Score && x.next[i].entry.Key < key)) {
			x = x.next[i]
		}
		update[i] = x
	}
	sl.removeNode(target, update)
	return true
}

func (sl *SkipList) removeNode(node *skipNode, update []*skipNode) {
	for i := 0; i < int(sl.level); i++ {
		if update[i].next[i] == node {
			update[i].span[i] += node.span[i] - 1
			update[i].next[i] = node.next[i]
		} else {
			update[i].span[i]--
		}
	}
	for sl.level > 1 && sl.head.next[sl.level-1] == nil {
		atomic.AddInt32(&sl.level, -1)
	}
	atomic.AddInt32(&sl.length, -1)
}

// GetRank returns key's 1-indexed rank (1 = highest score), or 0 if
// key isn't present. Entries are ordered by score, not key, so this
// walks the bottom level: O(n).
func (sl *SkipList) GetRank(key uint8) int {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	rank := 0
	for x := sl.head.next[0]; x != nil; x = x.next[0] {
		rank++
		if x.entry.Key == key {
			return rank
		}
	}
	return 0
}

// GetByRank returns the entry at the given 1-indexed rank, or nil if
// rank is out of range.
func (sl *SkipList) GetByRank(rank int) *SkipListEntry {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	if rank <= 0 || rank > int(sl.length) {
		return nil
	}

	traversed := 0
	x := sl.head
	for i := int(sl.level) - 1; i >= 0; i-- {
		for x.next[i] != nil && traversed+x.span[i] <= rank {
			traversed += x.span[i]
			x = x.next[i]
		}
		if traversed == rank {
			return &x.entry
		}
	}
	return nil
}

// GetScore returns key's score, or (0, false) if key isn't present.
func (sl *SkipList) GetScore(key uint8) (float64, bool) {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	for x := sl.head.next[0]; x != nil; x = x.next[0] {
		if x.entry.Key == key {
			return x.entry.Score, true
		}
	}
	return 0, false
}

// Clear removes every entry.
func (sl *SkipList) Clear() {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	for i := range sl.head.next {
		sl.head.next[i] = nil
		sl.head.span[i] = 0
	}
	atomic.StoreInt32(&sl.level, 1)
	atomic.StoreInt32(&sl.length, 0)
}

// GetRange returns entries ranked [start, end] inclusive, 1-indexed.
func (sl *SkipList) GetRange(start, end int) []SkipListEntry {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	if start <= 0 {
		start = 1
	}
	if end > int(sl.length) {
		end = int(sl.length)
	}
	if start > end {
		return nil
	}

	result := make([]SkipListEntry, 0, end-start+1)
	traversed := 0
	x := sl.head
	for i := int(sl.level) - 1; i >= 0; i-- {
		for x.next[i] != nil && traversed+x.span[i] < start {
			traversed += x.span[i]
			x = x.next[i]
		}
	}

	x = x.next[0]
	for x != nil && traversed < end {
		traversed++
		if traversed >= start {
			result = append(result, x.entry)
		}
		x = x.next[0]
	}
	return result
}

// Length returns the number of entries.
func (sl *SkipList) Length() int {
	return int(atomic.LoadInt32(&sl.length))
}

// ForEach iterates every entry in rank order (highest score first).
func (sl *SkipList) ForEach(fn func(rank int, entry SkipListEntry) bool) {
	sl.mu.RLock()
	defer sl.mu.RUnlock()

	rank := 0
	x := sl.head.next[0]
	for x != nil {
		rank++
		if !fn(rank, x.entry) {
			break
		}
		x = x.next[0]
	}
}
