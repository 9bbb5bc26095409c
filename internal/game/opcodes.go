package game

// execOpcode runs one decoded instruction. It returns (jump, terminate):
// terminate=true means the script is done (ctx already holds the
// result); jump>=0 overrides the natural fall-through address.
// Out-of-range var/fixed indices are masked into their valid range
// (low 3 bits for vars, low 2 bits for fixed registers) rather than
// rejected, so a malformed index addresses the register it masks to
// instead of causing a panic (§4.E).
func execOpcode(ctx *ScriptContext, op Opcode, operands []byte, ip int) (jump int, terminate bool) {
	switch op {
	case OpExit:
		ctx.exited = true
		ctx.exitFlag = operands[0] != 0
		return -1, true

	case OpExitIfNoEnergy:
		ch := ctx.character()
		def := ctx.actionDef()
		if ch != nil && def != nil && ch.Energy < def.EnergyCost {
			ctx.exited = true
			ctx.exitFlag = operands[0] != 0
			return -1, true
		}
		return -1, false

	case OpExitIfCooldown:
		if ctx.actionOnCooldown() {
			ctx.exited = true
			ctx.exitFlag = operands[0] != 0
			return -1, true
		}
		return -1, false

	case OpSkip:
		return ip + 2 + int(operands[0]), false

	case OpGoto:
		return int(operands[0]), false

	case OpExitWithVar:
		ctx.exited = true
		ctx.exitByVar = true
		ctx.exitVarIdx = varIdx(operands[0])
		return -1, true

	case OpReadPropByte:
		ctx.Vars[varIdx(operands[0])] = readPropByte(ctx, operands[1])
		return -1, false
	case OpReadPropFixed:
		ctx.Fixed[fixedIdx(operands[0])] = readPropFixed(ctx, operands[1])
		return -1, false
	case OpWritePropByte:
		writePropByte(ctx, operands[0], ctx.Vars[varIdx(operands[1])])
		return -1, false
	case OpWritePropFixed:
		writePropFixed(ctx, operands[0], ctx.Fixed[fixedIdx(operands[1])])
		return -1, false

	case OpAssignByte:
		ctx.Vars[varIdx(operands[0])] = operands[1]
		return -1, false
	case OpAssignFixed:
		raw := int16(operands[1]) | int16(operands[2])<<8
		ctx.Fixed[fixedIdx(operands[0])] = FixedFromRaw(raw)
		return -1, false
	case OpAssignRandom:
		ctx.Vars[varIdx(operands[0])] = ctx.GS.RNG.NextU8()
		return -1, false
	case OpToByte:
		v := ctx.Fixed[fixedIdx(operands[1])].ToInt()
		ctx.Vars[varIdx(operands[0])] = clampToByte(v)
		return -1, false
	case OpToFixed:
		ctx.Fixed[fixedIdx(operands[0])] = FixedFromInt(int16(ctx.Vars[varIdx(operands[1])]))
		return -1, false

	case OpAddFixed:
		d, s := fixedIdx(operands[0]), fixedIdx(operands[1])
		ctx.Fixed[d] = ctx.Fixed[d].Add(ctx.Fixed[s])
		return -1, false
	case OpSubFixed:
		d, s := fixedIdx(operands[0]), fixedIdx(operands[1])
		ctx.Fixed[d] = ctx.Fixed[d].Sub(ctx.Fixed[s])
		return -1, false
	case OpMulFixed:
		d, s := fixedIdx(operands[0]), fixedIdx(operands[1])
		ctx.Fixed[d] = ctx.Fixed[d].Mul(ctx.Fixed[s])
		return -1, false
	case OpDivFixed:
		d, s := fixedIdx(operands[0]), fixedIdx(operands[1])
		ctx.Fixed[d] = ctx.Fixed[d].Div(ctx.Fixed[s])
		return -1, false
	case OpNegFixed:
		d := fixedIdx(operands[0])
		ctx.Fixed[d] = ctx.Fixed[d].Neg()
		return -1, false

	case OpAddByte:
		storeByte(ctx, operands[0], satAddByte(ctx.Vars[varIdx(operands[1])], ctx.Vars[varIdx(operands[2])]))
		return -1, false
	case OpSubByte:
		a, b := ctx.Vars[varIdx(operands[1])], ctx.Vars[varIdx(operands[2])]
		storeByte(ctx, operands[0], satSubByte(a, b))
		return -1, false
	case OpMulByte:
		a, b := int(ctx.Vars[varIdx(operands[1])]), int(ctx.Vars[varIdx(operands[2])])
		storeByte(ctx, operands[0], clampToByte(int16(a*b)))
		return -1, false
	case OpDivByte:
		a, b := ctx.Vars[varIdx(operands[1])], ctx.Vars[varIdx(operands[2])]
		if b == 0 {
			storeByte(ctx, operands[0], 255)
		} else {
			storeByte(ctx, operands[0], a/b)
		}
		return -1, false
	case OpModByte:
		a, b := ctx.Vars[varIdx(operands[1])], ctx.Vars[varIdx(operands[2])]
		if b == 0 {
			storeByte(ctx, operands[0], 0)
		} else {
			storeByte(ctx, operands[0], a%b)
		}
		return -1, false
	case OpWrappingAddByte:
		a, b := ctx.Vars[varIdx(operands[1])], ctx.Vars[varIdx(operands[2])]
		storeByte(ctx, operands[0], a+b)
		return -1, false

	case OpEqualByte:
		storeBool(ctx, operands[0], ctx.Vars[varIdx(operands[1])] == ctx.Vars[varIdx(operands[2])])
		return -1, false
	case OpNotEqualByte:
		storeBool(ctx, operands[0], ctx.Vars[varIdx(operands[1])] != ctx.Vars[varIdx(operands[2])])
		return -1, false
	case OpLessThanByte:
		storeBool(ctx, operands[0], ctx.Vars[varIdx(operands[1])] < ctx.Vars[varIdx(operands[2])])
		return -1, false
	case OpLessThanOrEqualByte:
		storeBool(ctx, operands[0], ctx.Vars[varIdx(operands[1])] <= ctx.Vars[varIdx(operands[2])])
		return -1, false
	case OpEqualFixed:
		storeBool(ctx, operands[0], ctx.Fixed[fixedIdx(operands[1])] == ctx.Fixed[fixedIdx(operands[2])])
		return -1, false
	case OpNotEqualFixed:
		storeBool(ctx, operands[0], ctx.Fixed[fixedIdx(operands[1])] != ctx.Fixed[fixedIdx(operands[2])])
		return -1, false
	case OpLessThanFixed:
		storeBool(ctx, operands[0], ctx.Fixed[fixedIdx(operands[1])] < ctx.Fixed[fixedIdx(operands[2])])
		return -1, false
	case OpLessThanOrEqualFixed:
		storeBool(ctx, operands[0], ctx.Fixed[fixedIdx(operands[1])] <= ctx.Fixed[fixedIdx(operands[2])])
		return -1, false

	case OpNot:
		storeBool(ctx, operands[0], ctx.Vars[varIdx(operands[1])] == 0)
		return -1, false
	case OpOr:
		storeBool(ctx, operands[0], ctx.Vars[varIdx(operands[1])] != 0 || ctx.Vars[varIdx(operands[2])] != 0)
		return -1, false
	case OpAnd:
		storeBool(ctx, operands[0], ctx.Vars[varIdx(operands[1])] != 0 && ctx.Vars[varIdx(operands[2])] != 0)
		return -1, false

	case OpMinByte:
		a, b := ctx.Vars[varIdx(operands[1])], ctx.Vars[varIdx(operands[2])]
		if a < b {
			storeByte(ctx, operands[0], a)
		} else {
			storeByte(ctx, operands[0], b)
		}
		return -1, false
	case OpMaxByte:
		a, b := ctx.Vars[varIdx(operands[1])], ctx.Vars[varIdx(operands[2])]
		if a > b {
			storeByte(ctx, operands[0], a)
		} else {
			storeByte(ctx, operands[0], b)
		}
		return -1, false
	case OpMinFixed:
		d := fixedIdx(operands[0])
		ctx.Fixed[d] = ctx.Fixed[fixedIdx(operands[1])].Min(ctx.Fixed[fixedIdx(operands[2])])
		return -1, false
	case OpMaxFixed:
		d := fixedIdx(operands[0])
		ctx.Fixed[d] = ctx.Fixed[fixedIdx(operands[1])].Max(ctx.Fixed[fixedIdx(operands[2])])
		return -1, false

	case OpLockAction:
		if ch := ctx.character(); ch != nil && ctx.ActionInstanceIdx >= 0 {
			ch.LockedAction = ctx.ActionInstanceIdx
			ch.HasLockedAction = true
		}
		return -1, false
	case OpUnlockAction:
		if ch := ctx.character(); ch != nil {
			ch.HasLockedAction = false
			ch.LockedAction = -1
		}
		return -1, false
	case OpApplyEnergyCost:
		if ch, def := ctx.character(), ctx.actionDef(); ch != nil && def != nil {
			if ch.Energy < def.EnergyCost {
				ch.Energy = 0
			} else {
				ch.Energy -= def.EnergyCost
			}
		}
		return -1, false
	case OpApplyDuration:
		if ai := ctx.actionInstance(); ai != nil {
			d := ctx.Fixed[0].ToInt()
			if d < 0 {
				d = 0
			}
			ai.RemainingDuration = uint16(d)
		}
		return -1, false

	case OpSpawn:
		slot := int(ctx.Vars[varIdx(operands[0])]) % len(ctx.Spawns)
		requestSpawn(ctx, ctx.Spawns[slot], [4]uint8{})
		return -1, false
	case OpSpawnWithVars:
		slot := int(ctx.Vars[varIdx(operands[0])]) % len(ctx.Spawns)
		vars := [4]uint8{operands[1], operands[2], operands[3], operands[4]}
		requestSpawn(ctx, ctx.Spawns[slot], vars)
		return -1, false

	case OpReadArg:
		ctx.Vars[varIdx(operands[0])] = ctx.Args[int(operands[1])%len(ctx.Args)]
		return -1, false
	case OpReadSpawnSlot:
		ctx.Vars[varIdx(operands[1])] = ctx.Spawns[int(operands[0])%len(ctx.Spawns)]
		return -1, false
	case OpWriteSpawnSlot:
		ctx.Spawns[int(operands[0])%len(ctx.Spawns)] = ctx.Vars[varIdx(operands[1])]
		return -1, false
	case OpReadActionCooldown:
		ctx.Fixed[fixedIdx(operands[0])] = readPropFixed(ctx, PropActionCooldown)
		return -1, false
	case OpReadActionLastUsed:
		ctx.Fixed[fixedIdx(operands[0])] = readPropFixed(ctx, PropActionLastUsedFrame)
		return -1, false
	case OpWriteActionLastUsed:
		if ai := ctx.actionInstance(); ai != nil {
			ai.LastUsedFrame = ctx.Frame
		}
		return -1, false
	case OpIsActionOnCooldown:
		storeBool(ctx, operands[0], ctx.actionOnCooldown())
		return -1, false

	case OpLogVariable:
		if ctx.GS.EventLog != nil {
			ctx.GS.EventLog.Append(Event{
				Frame: ctx.Frame,
				Type:  EventScriptLog,
				Byte0: ctx.Vars[varIdx(operands[0])],
			})
		}
		return -1, false
	}
	// Unreachable: op was validated against arityTable by the caller.
	return -1, false
}

// actionOnCooldown reports whether the action instance in context is
// still within its definition's cooldown window (§4.G).
func (c *ScriptContext) actionOnCooldown() bool {
	ai := c.actionInstance()
	def := c.actionDef()
	if ai == nil || def == nil {
		return false
	}
	if ai.LastUsedFrame == NoActionInstance {
		return false
	}
	elapsed := c.Frame - ai.LastUsedFrame
	return elapsed < def.Cooldown
}

func varIdx(b byte) uint8 {
	return b & 0x07
}

func fixedIdx(b byte) uint8 {
	return b & 0x03
}

func storeByte(ctx *ScriptContext, dst byte, v uint8) {
	ctx.Vars[varIdx(dst)] = v
}

func storeBool(ctx *ScriptContext, dst byte, v bool) {
	ctx.Vars[varIdx(dst)] = boolToByte(v)
}

func satAddByte(a, b uint8) uint8 {
	sum := int(a) + int(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

func satSubByte(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}

func clampToByte(v int16) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
