package game

// passiveEnergyRegenID is the reserved status effect id that every
// character implicitly carries for passive energy regeneration (§3,
// §4.H) — it is never looked up in StatusEffectDefs, since the regen
// parameters already live directly on Character, not behind a
// definition table entry a caller would have to supply.
const passiveEnergyRegenID = 0

// neverExpireLifeSpan marks a status effect instance that is never
// ticked down by the generic expiry path.
const neverExpireLifeSpan uint16 = 0xFFFF

// applyPassiveEnergyRegen seeds a character with the reserved id-0
// status effect instance so it shows up in the character's
// status_effects list the way every other applied effect does.
// tickPassiveRegen (not this instance's nonexistent tick script)
// drives the actual regen math straight off the character's
// energy-regen fields every frame; tickCharacterStatuses recognizes
// this reserved id together with its neverExpireLifeSpan and leaves
// the instance alone rather than running scripts against it or
// expiring it.
func applyPassiveEnergyRegen(gs *GameState, characterID uint8) {
	charIdx := gs.characterIndex(characterID)
	if charIdx < 0 {
		return
	}
	ch := &gs.Characters[charIdx]

	inst := StatusEffectInstance{
		CharacterID:  characterID,
		DefinitionID: passiveEnergyRegenID,
		StackCount:   1,
		Alive:        true,
		LifeSpan:     neverExpireLifeSpan,
	}
	gs.StatusEffectInstances = append(gs.StatusEffectInstances, inst)
	ch.StatusEffects = append(ch.StatusEffects, len(gs.StatusEffectInstances)-1)
}

// TickStatusEffects advances every character's status effects one
// frame (§4.J step 1, runs before the behavior pass): passive energy
// regen first, then each applied effect's tick script, then expiry.
// Characters and their status-effect lists are walked in slice/
// insertion order (§5).
func TickStatusEffects(gs *GameState) {
	for i := range gs.Characters {
		tickPassiveRegen(gs, i)
		tickCharacterStatuses(gs, i)
	}
}

// tickPassiveRegen implements the reserved id-0 effect: every
// energy_regen_rate frames (counted from energy_regen_start), restore
// energy_regen_amount, gated by an energy_regen_delay grace window
// before the first tick (§4.H).
func tickPassiveRegen(gs *GameState, charIdx int) {
	ch := &gs.Characters[charIdx]
	if ch.EnergyRegenRate == 0 {
		return
	}
	if gs.Frame < uint16(ch.EnergyRegenStart)+uint16(ch.EnergyRegenDelay) {
		return
	}
	elapsed := gs.Frame - uint16(ch.EnergyRegenStart) - uint16(ch.EnergyRegenDelay)
	if elapsed%uint16(ch.EnergyRegenRate) != 0 {
		return
	}
	newEnergy := uint16(ch.Energy) + uint16(ch.EnergyRegenAmount)
	if newEnergy > uint16(ch.EnergyCap) {
		newEnergy = uint16(ch.EnergyCap)
	}
	ch.Energy = uint8(newEnergy)
}

// tickCharacterStatuses runs each applied status effect's tick script
// and removes any whose life_span has reached zero (running its off
// script first).
func tickCharacterStatuses(gs *GameState, charIdx int) {
	ch := &gs.Characters[charIdx]
	kept := ch.StatusEffects[:0]

	for _, instIdx := range ch.StatusEffects {
		if instIdx < 0 || instIdx >= len(gs.StatusEffectInstances) {
			continue
		}
		si := &gs.StatusEffectInstances[instIdx]
		if !si.Alive {
			continue
		}
		if si.DefinitionID == passiveEnergyRegenID && si.LifeSpan == neverExpireLifeSpan {
			// tickPassiveRegen already handled this frame's regen directly
			// off the character's fields; the instance itself carries no
			// script and never expires.
			kept = append(kept, instIdx)
			continue
		}
		def, ok := gs.GetStatusEffectDefinition(si.DefinitionID)
		if !ok {
			si.Alive = false
			continue
		}

		runStatusScript(gs, charIdx, instIdx, ScriptStatusTick, def.TickScript)

		if si.LifeSpan > 0 {
			si.LifeSpan--
		}
		if si.LifeSpan == 0 {
			runStatusScript(gs, charIdx, instIdx, ScriptStatusOff, def.OffScript)
			si.Alive = false
			if gs.EventLog != nil {
				gs.EventLog.Append(Event{Frame: gs.Frame, Type: EventStatusExpired, Byte0: ch.ID, Byte1: uint8(si.DefinitionID)})
			}
			continue
		}
		kept = append(kept, instIdx)
	}
	ch.StatusEffects = kept
}

// ApplyStatusEffect rolls the definition's chance and, on success,
// either appends a fresh instance or stacks an existing one, honoring
// stack_limit/reset_on_stack (§4.H, §9 open question 2: reset_on_stack
// at the limit is a no-op, never a refresh). No opcode calls it; it is
// called directly, e.g. by tests exercising S4.
func ApplyStatusEffect(gs *GameState, characterID uint8, defID int) {
	def, ok := gs.GetStatusEffectDefinition(defID)
	if !ok {
		gs.recordFault(ErrInvalidStatusEffectID, "ApplyStatusEffect: unknown definition")
		return
	}
	if !gs.RNG.NextBool(def.Chance) {
		return
	}

	charIdx := gs.characterIndex(characterID)
	if charIdx < 0 {
		return
	}
	ch := &gs.Characters[charIdx]

	for _, instIdx := range ch.StatusEffects {
		si := &gs.StatusEffectInstances[instIdx]
		if si.DefinitionID != defID || !si.Alive {
			continue
		}
		if si.StackCount < def.StackLimit {
			si.StackCount++
			if def.ResetOnStack {
				si.LifeSpan = def.Duration
			}
		}
		// Open question 2: at the limit, reset_on_stack does nothing.
		return
	}

	inst := StatusEffectInstance{
		CharacterID:  characterID,
		DefinitionID: defID,
		LifeSpan:     def.Duration,
		StackCount:   1,
		Alive:        true,
	}

	slot := -1
	for i := range gs.StatusEffectInstances {
		if !gs.StatusEffectInstances[i].Alive {
			slot = i
			break
		}
	}
	if slot < 0 {
		gs.StatusEffectInstances = append(gs.StatusEffectInstances, inst)
		slot = len(gs.StatusEffectInstances) - 1
	} else {
		gs.StatusEffectInstances[slot] = inst
	}
	ch.StatusEffects = append(ch.StatusEffects, slot)

	runStatusScript(gs, charIdx, slot, ScriptStatusOn, def.OnScript)

	if gs.EventLog != nil {
		gs.EventLog.Append(Event{Frame: gs.Frame, Type: EventStatusApplied, Byte0: characterID, Byte1: uint8(defID)})
	}
}

func runStatusScript(gs *GameState, charIdx, instIdx int, kind ScriptKind, script []byte) {
	if len(script) == 0 {
		return
	}
	si := &gs.StatusEffectInstances[instIdx]
	def, ok := gs.GetStatusEffectDefinition(si.DefinitionID)
	if !ok {
		return
	}

	ctx := newScriptContext(gs, kind)
	ctx.CharacterIdx = charIdx
	ctx.StatusInstanceIdx = instIdx
	ctx.StatusDefID = si.DefinitionID
	ctx.Args = def.Args

	RunScript(ctx, script)
}

// characterIndex linearly scans for the character with the given ID
// (§5: no hash-map lookups in the core).
func (gs *GameState) characterIndex(id uint8) int {
	for i := range gs.Characters {
		if gs.Characters[i].ID == id {
			return i
		}
	}
	return -1
}
