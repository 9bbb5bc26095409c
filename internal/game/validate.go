package game

// unusedSlot marks an empty behavior/spawn-table slot (§3, §6): a
// definition id of 0xFF means "not wired," not "definition zero."
const unusedSlot = 0xFF

// maxSpawnChainDepth bounds the circular-spawn-reference scan (§4.I,
// §8 invariant on well-formed spawn graphs) — a shallow static walk,
// not a runtime recursion guard.
const maxSpawnChainDepth = 16

// validate runs every Init-time structural check from §8/§9: behavior
// references resolve, spawn slot ids resolve (or are unusedSlot), and
// no spawn definition can recursively spawn itself.
func validate(gs *GameState) error {
	for ci := range gs.Characters {
		ch := &gs.Characters[ci]
		for _, b := range ch.Behaviors {
			if b.ConditionID < 0 || b.ConditionID >= len(gs.ConditionDefs) {
				return newError(ErrInvalidConditionID, "character %d references condition %d", ch.ID, b.ConditionID)
			}
			if b.ActionID < 0 || b.ActionID >= len(gs.ActionDefs) {
				return newError(ErrInvalidActionID, "character %d references action %d", ch.ID, b.ActionID)
			}
		}
	}

	for ai := range gs.ActionDefs {
		for _, slot := range gs.ActionDefs[ai].Spawns {
			if slot == unusedSlot {
				continue
			}
			if int(slot) >= len(gs.SpawnDefs) {
				return newError(ErrInvalidSpawnID, "action %d references spawn %d", ai, slot)
			}
		}
	}
	for ci := range gs.ConditionDefs {
		_ = ci // conditions carry args/script only, no spawn table (§3)
	}
	for si := range gs.SpawnDefs {
		for _, slot := range gs.SpawnDefs[si].Spawns {
			if slot == unusedSlot {
				continue
			}
			if int(slot) >= len(gs.SpawnDefs) {
				return newError(ErrInvalidSpawnID, "spawn %d references spawn %d", si, slot)
			}
		}
	}
	for se := range gs.StatusEffectDefs {
		_ = se // status effects carry args/scripts only, no spawn table (§3)
	}

	for si := range gs.SpawnDefs {
		if hasSpawnCycle(gs, si, make(map[int]bool), 0) {
			return newError(ErrCircularSpawnReference, "spawn %d participates in a spawn cycle", si)
		}
	}

	return nil
}

// hasSpawnCycle walks the static spawn-reference graph from id,
// returning true if the walk reaches an id already on the current
// path (a cycle) within maxSpawnChainDepth hops. visited holds the ids
// on the current path; the caller passes a fresh map for every root.
func hasSpawnCycle(gs *GameState, rootID int, visited map[int]bool, depth int) bool {
	if depth > maxSpawnChainDepth {
		return false
	}
	def, ok := gs.GetSpawnDefinition(rootID)
	if !ok {
		return false
	}
	for _, slot := range def.Spawns {
		if slot == unusedSlot {
			continue
		}
		next := int(slot)
		if visited == nil {
			visited = make(map[int]bool)
		}
		if visited[next] {
			return true
		}
		visited[next] = true
		if hasSpawnCycle(gs, next, visited, depth+1) {
			return true
		}
		delete(visited, next)
	}
	return false
}
