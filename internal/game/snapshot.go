package game

// GameSnapshot is the external, copy-out view of a GameState (§6):
// everything a collaborator needs to render a frame or persist/restore
// a match, with no pointers or internal bookkeeping (ScriptFaults,
// EventLog) leaking out.
type GameSnapshot struct {
	SeedInitial uint16
	RNGState    uint16
	Frame       uint16
	Status      MatchStatus
	Gravity     Fixed
	Tilemap     Tilemap

	ActionDefs       []ActionDefinition
	ConditionDefs    []ConditionDefinition
	SpawnDefs        []SpawnDefinition
	StatusEffectDefs []StatusEffectDefinition

	Characters            []Character
	ActionInstances       []ActionInstance
	ActionInstanceOwners  []uint8
	ConditionInstances    []ConditionInstance
	SpawnInstances        []SpawnInstance
	StatusEffectInstances []StatusEffectInstance
}

// Snapshot returns a deep-enough copy of gs for external consumption;
// slices are copied so the caller can't mutate simulation state through
// the snapshot (§6, §9: "peek" must never alias live state).
func Snapshot(gs *GameState) GameSnapshot {
	return GameSnapshot{
		SeedInitial: gs.SeedInitial,
		RNGState:    gs.RNG.State(),
		Frame:       gs.Frame,
		Status:      gs.Status,
		Gravity:     gs.Gravity,
		Tilemap:     gs.Tilemap,

		ActionDefs:       append([]ActionDefinition(nil), gs.ActionDefs...),
		ConditionDefs:    append([]ConditionDefinition(nil), gs.ConditionDefs...),
		SpawnDefs:        append([]SpawnDefinition(nil), gs.SpawnDefs...),
		StatusEffectDefs: append([]StatusEffectDefinition(nil), gs.StatusEffectDefs...),

		Characters:            append([]Character(nil), gs.Characters...),
		ActionInstances:       append([]ActionInstance(nil), gs.ActionInstances...),
		ActionInstanceOwners:  append([]uint8(nil), gs.actionInstanceOwners...),
		ConditionInstances:    append([]ConditionInstance(nil), gs.ConditionInstances...),
		SpawnInstances:        append([]SpawnInstance(nil), gs.SpawnInstances...),
		StatusEffectInstances: append([]StatusEffectInstance(nil), gs.StatusEffectInstances...),
	}
}

// Restore rebuilds a GameState from a previously captured snapshot,
// re-deriving the RNG and internal bookkeeping slices (§6: a snapshot
// plus its definition tables round-trips to a state that steps
// identically to the original).
func Restore(snap GameSnapshot) *GameState {
	rng := NewRNG(snap.SeedInitial)
	rng.SetState(snap.RNGState)

	return &GameState{
		SeedInitial: snap.SeedInitial,
		RNG:         rng,
		Frame:       snap.Frame,
		Status:      snap.Status,
		Gravity:     snap.Gravity,
		Tilemap:     snap.Tilemap,

		ActionDefs:       append([]ActionDefinition(nil), snap.ActionDefs...),
		ConditionDefs:    append([]ConditionDefinition(nil), snap.ConditionDefs...),
		SpawnDefs:        append([]SpawnDefinition(nil), snap.SpawnDefs...),
		StatusEffectDefs: append([]StatusEffectDefinition(nil), snap.StatusEffectDefs...),

		Characters:            append([]Character(nil), snap.Characters...),
		ActionInstances:       append([]ActionInstance(nil), snap.ActionInstances...),
		actionInstanceOwners:  append([]uint8(nil), snap.ActionInstanceOwners...),
		ConditionInstances:    append([]ConditionInstance(nil), snap.ConditionInstances...),
		SpawnInstances:        append([]SpawnInstance(nil), snap.SpawnInstances...),
		StatusEffectInstances: append([]StatusEffectInstance(nil), snap.StatusEffectInstances...),

		EventLog: NewEventLog(),
	}
}
