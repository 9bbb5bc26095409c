package game

// RunBehaviors evaluates every character's (condition, action) list in
// priority order and executes at most one action per character per
// frame (§4.G). Characters are scanned in slice order (§5's
// insertion-ordered linear scan rule), so two characters never race
// over shared resources like ActionInstance slots.
func RunBehaviors(gs *GameState) {
	for i := range gs.Characters {
		ch := &gs.Characters[i]

		if ch.HasLockedAction {
			runLockedAction(gs, i)
			continue
		}

		for _, b := range ch.Behaviors {
			if tryBehavior(gs, i, b) {
				break
			}
		}
	}
}

// runLockedAction re-enters the action a character previously locked
// into via the LockAction opcode, skipping condition evaluation
// entirely until the action unlocks itself or its duration elapses.
func runLockedAction(gs *GameState, charIdx int) {
	ch := &gs.Characters[charIdx]
	aidx := ch.LockedAction
	if aidx < 0 || aidx >= len(gs.ActionInstances) {
		ch.HasLockedAction = false
		ch.LockedAction = -1
		return
	}
	ai := &gs.ActionInstances[aidx]
	if ai.RemainingDuration == 0 {
		ch.HasLockedAction = false
		ch.LockedAction = -1
		return
	}
	ai.RemainingDuration--

	def, ok := gs.GetActionDefinition(ai.DefinitionID)
	if !ok {
		ch.HasLockedAction = false
		ch.LockedAction = -1
		return
	}

	runActionScript(gs, charIdx, aidx, def)
}

// tryBehavior resolves one (conditionID, actionID) pair: run the
// condition script, and on a match attempt the gated action. It
// returns true once an action has actually fired this frame, so the
// caller stops scanning further behaviors (§4.G: "at most one action
// per character per frame").
func tryBehavior(gs *GameState, charIdx int, b Behavior) bool {
	ch := &gs.Characters[charIdx]

	condDef, ok := gs.GetConditionDefinition(b.ConditionID)
	if !ok {
		gs.recordFault(ErrInvalidConditionID, "behavior references unknown condition")
		return false
	}
	condInstIdx := gs.ConditionInstanceFor(ch.ID, b.ConditionID)

	cctx := newScriptContext(gs, ScriptCondition)
	cctx.CharacterIdx = charIdx
	cctx.ConditionInstanceIdx = condInstIdx
	cctx.ConditionDefID = b.ConditionID
	cctx.Args = condDef.Args

	if !RunScript(cctx, condDef.Script) {
		return false
	}

	actionDef, ok := gs.GetActionDefinition(b.ActionID)
	if !ok {
		gs.recordFault(ErrInvalidActionID, "behavior references unknown action")
		return false
	}
	if ch.Energy < actionDef.EnergyCost {
		return false
	}
	actionInstIdx := gs.ActionInstanceFor(ch.ID, b.ActionID)
	ai := &gs.ActionInstances[actionInstIdx]

	if ai.LastUsedFrame != NoActionInstance && gs.Frame-ai.LastUsedFrame < actionDef.Cooldown {
		return false
	}

	applied := runActionScript(gs, charIdx, actionInstIdx, actionDef)
	if !applied {
		return false
	}

	if gs.EventLog != nil {
		gs.EventLog.Append(Event{Frame: gs.Frame, Type: EventActionFired, Byte0: ch.ID, Byte1: uint8(b.ActionID)})
	}
	return true
}

// runActionScript executes an action's script and, on Exit(1), applies
// the open-question default of auto-charging energy cost and stamping
// last_used_frame if the script itself never called ApplyEnergyCost/
// WriteActionLastUsed (§9 open question 1).
func runActionScript(gs *GameState, charIdx, actionInstIdx int, def *ActionDefinition) bool {
	ch := &gs.Characters[charIdx]
	ai := &gs.ActionInstances[actionInstIdx]

	energyBefore := ch.Energy
	lastUsedBefore := ai.LastUsedFrame

	actx := newScriptContext(gs, ScriptAction)
	actx.CharacterIdx = charIdx
	actx.ActionInstanceIdx = actionInstIdx
	actx.ActionDefID = ai.DefinitionID
	actx.Args = def.Args
	actx.Spawns = def.Spawns

	applied := RunScript(actx, def.Script)
	if !applied {
		return false
	}

	if ch.Energy == energyBefore {
		if ch.Energy < def.EnergyCost {
			ch.Energy = 0
		} else {
			ch.Energy -= def.EnergyCost
		}
	}
	if ai.LastUsedFrame == lastUsedBefore {
		ai.LastUsedFrame = gs.Frame
	}
	return true
}
