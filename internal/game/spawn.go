package game

// maxSpawnInstances bounds the live spawn table as a hard cap against
// runaway spawning.
const maxSpawnInstances = 64

// ownerCharacter, ownerSpawn tag OwnerType (§3).
const (
	ownerCharacter uint8 = 1
	ownerSpawn     uint8 = 2
)

// requestSpawn is the Spawn/SpawnWithVars opcode's implementation
// (§4.E, §4.I): roll the definition's spawn chance, find or recycle a
// slot, and initialize the new instance inheriting the requesting
// entity's position. A failed chance roll, an out-of-range definition
// id, or a full spawn table is a silent no-op — scripts never see
// spawn failures (§9).
func requestSpawn(ctx *ScriptContext, defID uint8, initialVars [4]uint8) {
	gs := ctx.GS
	def, ok := gs.GetSpawnDefinition(int(defID))
	if !ok {
		return
	}
	if !gs.RNG.NextBool(def.Chance) {
		return
	}

	core := ctx.entityCore()
	if core == nil {
		return
	}

	var ownerID, ownerType uint8
	switch {
	case ctx.character() != nil:
		ownerID, ownerType = ctx.character().ID, ownerCharacter
	case ctx.spawn() != nil:
		ownerID, ownerType = ctx.spawn().ID, ownerSpawn
	default:
		return
	}

	inst := SpawnInstance{
		EntityCore: EntityCore{
			PosX:          core.PosX,
			PosY:          core.PosY,
			SizeW:         core.SizeW,
			SizeH:         core.SizeH,
			DirHorizontal: core.DirHorizontal,
			DirVertical:   DirNeutral, // a spawn starts unaffected by gravity regardless of its owner's fall state (§4.I)
		},
		DefinitionID: int(defID),
		OwnerID:      ownerID,
		OwnerType:    ownerType,
		HealthCap:    def.HealthCap,
		Health:       def.HealthCap,
		LifeSpan:     def.Duration,
		Alive:        true,
	}
	if def.HasElement {
		inst.Element = def.Element
		inst.HasElement = true
	}
	copy(inst.RuntimeVars[:4], initialVars[:])

	slot := -1
	for i := range gs.SpawnInstances {
		if !gs.SpawnInstances[i].Alive {
			slot = i
			break
		}
	}
	if slot < 0 {
		if len(gs.SpawnInstances) >= maxSpawnInstances {
			return
		}
		gs.SpawnInstances = append(gs.SpawnInstances, inst)
		slot = len(gs.SpawnInstances) - 1
	} else {
		gs.SpawnInstances[slot] = inst
	}
	gs.SpawnInstances[slot].ID = uint8(slot)

	if gs.EventLog != nil {
		gs.EventLog.Append(Event{
			Frame:  gs.Frame,
			Type:   EventSpawnCreated,
			Byte0:  defID,
			Byte1:  ownerID,
			Byte2:  ownerType,
		})
	}
}

// AdvanceSpawns runs every live spawn instance's behavior and collision
// scripts, ticks its life span, and retires it once life_span reaches
// zero or its despawn script is triggered (§4.I, §4.J step 7). Scripts
// run in slice order, matching the deterministic linear-scan rule (§5).
func AdvanceSpawns(gs *GameState) {
	for i := range gs.SpawnInstances {
		sp := &gs.SpawnInstances[i]
		if !sp.Alive {
			continue
		}

		def, ok := gs.GetSpawnDefinition(sp.DefinitionID)
		if !ok {
			sp.Alive = false
			continue
		}

		runSpawnScript(gs, i, ScriptSpawnBehavior, def.BehaviorScript)
		if !sp.Alive {
			continue
		}
		runSpawnScript(gs, i, ScriptSpawnCollision, def.CollisionScript)
		if !sp.Alive {
			continue
		}

		if sp.LifeSpan > 0 {
			sp.LifeSpan--
		}
		if sp.LifeSpan == 0 || sp.Health == 0 {
			runSpawnScript(gs, i, ScriptSpawnDespawn, def.DespawnScript)
			sp.Alive = false
			if gs.EventLog != nil {
				gs.EventLog.Append(Event{Frame: gs.Frame, Type: EventSpawnDespawned, Byte0: uint8(sp.DefinitionID)})
			}
		}
	}
}

// runSpawnScript builds a ScriptContext bound to the spawn instance at
// idx and executes script; a missing/empty script is a no-op.
func runSpawnScript(gs *GameState, idx int, kind ScriptKind, script []byte) {
	if len(script) == 0 {
		return
	}
	sp := &gs.SpawnInstances[idx]
	def, ok := gs.GetSpawnDefinition(sp.DefinitionID)
	if !ok {
		return
	}

	ctx := newScriptContext(gs, kind)
	ctx.SpawnIdx = idx
	ctx.SpawnDefID = sp.DefinitionID
	ctx.Args = def.Args
	ctx.Spawns = def.Spawns

	RunScript(ctx, script)
}
