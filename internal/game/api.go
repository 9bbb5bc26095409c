package game

// Init constructs a new GameState from explicit arguments only (§4.K,
// §6). It never reads the environment, the clock, or any package-level
// mutable state, so two calls with identical arguments always produce
// identical states — the determinism contract the rest of the engine
// depends on.
func Init(
	seed uint16,
	tilemap Tilemap,
	gravity Fixed,
	characters []Character,
	actionDefs []ActionDefinition,
	conditionDefs []ConditionDefinition,
	spawnDefs []SpawnDefinition,
	statusEffectDefs []StatusEffectDefinition,
) (*GameState, error) {
	if len(characters) == 0 {
		return nil, newError(ErrInvalidGameState, "Init: at least one character is required")
	}

	gs := &GameState{
		SeedInitial: seed,
		RNG:         NewRNG(seed),
		Frame:       0,
		Status:      StatusPlaying,
		Gravity:     gravity,
		Tilemap:     tilemap,

		ActionDefs:       actionDefs,
		ConditionDefs:    conditionDefs,
		SpawnDefs:        spawnDefs,
		StatusEffectDefs: statusEffectDefs,

		Characters: characters,

		EventLog: NewEventLog(),
	}

	for i := range gs.Characters {
		ch := &gs.Characters[i]
		if ch.LockedAction == 0 && !ch.HasLockedAction {
			ch.LockedAction = -1
		}
		if ch.ActionLastUsed == nil {
			ch.ActionLastUsed = make([]uint16, len(actionDefs))
			for j := range ch.ActionLastUsed {
				ch.ActionLastUsed[j] = NoActionInstance
			}
		}
	}

	if err := validate(gs); err != nil {
		return nil, err
	}

	for i := range gs.Characters {
		applyPassiveEnergyRegen(gs, gs.Characters[i].ID)
	}

	return gs, nil
}
