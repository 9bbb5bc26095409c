package game

// Property addresses route a single byte (§4.F) to a typed read and/or
// write against whichever entity/instance the current ScriptContext is
// bound to. Ranges:
//   0x01-0x0F  game (frame, seed, gravity)
//   0x10-0x3F  character
//   0x40-0x4F  entity core (character or spawn, whichever is in context)
//   0x50-0x7F  spawn instance
//   0x80-0x9F  action instance/definition
//   0xA0-0xBF  condition instance/definition
//   0xC0-0xDF  status effect instance/definition
const (
	PropGameFrame   = 0x01
	PropGameSeed    = 0x02
	PropGameGravity = 0x03

	PropCharID               = 0x10
	PropCharGroup            = 0x11
	PropCharPosX             = 0x12
	PropCharPosY             = 0x13
	PropCharVelX             = 0x14
	PropCharVelY             = 0x15
	PropCharSizeW            = 0x16
	PropCharSizeH            = 0x17
	PropCharHealth           = 0x18
	PropCharHealthCap        = 0x19
	PropCharEnergy           = 0x1A
	PropCharEnergyCap        = 0x1B
	PropCharPower            = 0x1C
	PropCharWeight           = 0x1D
	PropCharJumpForce        = 0x1E
	PropCharMoveSpeed        = 0x1F
	PropCharEnergyRegenRate  = 0x20
	PropCharEnergyRegenAmt   = 0x21
	PropCharEnergyRegenDelay = 0x22
	PropCharEnergyRegenStart = 0x23
	PropCharLockedActionID   = 0x24
	PropCharStatusCount      = 0x25
	PropCharCollisionTop     = 0x26
	PropCharCollisionRight   = 0x27
	PropCharCollisionBottom  = 0x28
	PropCharCollisionLeft    = 0x29
	PropCharArmorBase        = 0x2A // + element index 0-8

	PropEntityDirHorizontal = 0x40
	PropEntityDirVertical   = 0x41
	PropEntityEnmity        = 0x42
	PropEntityTargetID      = 0x43
	PropEntityTargetType    = 0x44

	PropSpawnDamageBase     = 0x50
	PropSpawnDamageRange    = 0x51
	PropSpawnCritChance     = 0x52
	PropSpawnCritMultiplier = 0x53
	PropSpawnChance         = 0x54
	PropSpawnHealth         = 0x55
	PropSpawnHealthCap      = 0x56
	PropSpawnLifeSpan       = 0x57
	PropSpawnElement        = 0x58
	PropSpawnPosX           = 0x59
	PropSpawnPosY           = 0x5A
	PropSpawnVelX           = 0x5B
	PropSpawnVelY           = 0x5C
	PropSpawnRotation       = 0x5D
	PropSpawnOwnerID        = 0x5E
	PropSpawnOwnerType      = 0x5F
	PropSpawnRuntimeVarBase   = 0x60 // + idx 0-7
	PropSpawnRuntimeFixedBase = 0x68 // + idx 0-3

	PropActionEnergyCost       = 0x80
	PropActionCooldown         = 0x81
	PropActionArgBase          = 0x82 // + idx 0-7
	PropActionRuntimeVarBase   = 0x8A // + idx 0-7
	PropActionRuntimeFixedBase = 0x92 // + idx 0-3
	PropActionLastUsedFrame    = 0x96
	PropActionRemainingDuration = 0x97

	PropConditionEnergyMul        = 0xA0
	PropConditionArgBase          = 0xA1 // + idx 0-7
	PropConditionRuntimeVarBase   = 0xA9 // + idx 0-3
	PropConditionRuntimeFixedBase = 0xAD // + idx 0-3

	PropStatusDuration         = 0xC0
	PropStatusStackLimit       = 0xC1
	PropStatusResetOnStack     = 0xC2
	PropStatusChance           = 0xC3
	PropStatusArgBase          = 0xC4 // + idx 0-7
	PropStatusRuntimeVarBase   = 0xCC // + idx 0-7
	PropStatusRuntimeFixedBase = 0xD4 // + idx 0-3
	PropStatusLifeSpan         = 0xD8
	PropStatusStackCount       = 0xD9
)

// readPropByte resolves addr against ctx as a byte value. Any address
// that isn't wired, or whose owning entity/instance isn't present in
// this context, reads back 0 (§4.F: unresolved reads are benign).
func readPropByte(ctx *ScriptContext, addr uint8) uint8 {
	switch {
	case addr == PropGameFrame || addr == PropGameSeed || addr == PropGameGravity:
		return 0 // these three are Fixed-typed; byte read is a type mismatch, benign 0

	case addr == PropCharID:
		if ch := ctx.character(); ch != nil {
			return ch.ID
		}
	case addr == PropCharGroup:
		if ch := ctx.character(); ch != nil {
			return ch.Group
		}
	case addr == PropCharSizeW:
		if ch := ctx.character(); ch != nil {
			return ch.SizeW
		}
	case addr == PropCharSizeH:
		if ch := ctx.character(); ch != nil {
			return ch.SizeH
		}
	case addr == PropCharPower:
		if ch := ctx.character(); ch != nil {
			return ch.Power
		}
	case addr == PropCharWeight:
		if ch := ctx.character(); ch != nil {
			return ch.Weight
		}
	case addr == PropCharEnergyRegenRate:
		if ch := ctx.character(); ch != nil {
			return ch.EnergyRegenRate
		}
	case addr == PropCharEnergyRegenAmt:
		if ch := ctx.character(); ch != nil {
			return ch.EnergyRegenAmount
		}
	case addr == PropCharEnergyRegenDelay:
		if ch := ctx.character(); ch != nil {
			return ch.EnergyRegenDelay
		}
	case addr == PropCharEnergyRegenStart:
		if ch := ctx.character(); ch != nil {
			return ch.EnergyRegenStart
		}
	case addr == PropCharEnergy:
		if ch := ctx.character(); ch != nil {
			return ch.Energy
		}
	case addr == PropCharEnergyCap:
		if ch := ctx.character(); ch != nil {
			return ch.EnergyCap
		}
	case addr == PropCharLockedActionID:
		if ch := ctx.character(); ch != nil && ch.HasLockedAction && ch.LockedAction >= 0 && ch.LockedAction < len(ctx.GS.ActionInstances) {
			return uint8(ctx.GS.ActionInstances[ch.LockedAction].DefinitionID)
		}
		return 0xFF
	case addr == PropCharStatusCount:
		if ch := ctx.character(); ch != nil {
			return uint8(len(ch.StatusEffects))
		}
	case addr == PropCharCollisionTop:
		if ch := ctx.character(); ch != nil {
			return boolToByte(ch.CollisionTop)
		}
	case addr == PropCharCollisionRight:
		if ch := ctx.character(); ch != nil {
			return boolToByte(ch.CollisionRight)
		}
	case addr == PropCharCollisionBottom:
		if ch := ctx.character(); ch != nil {
			return boolToByte(ch.CollisionBottom)
		}
	case addr == PropCharCollisionLeft:
		if ch := ctx.character(); ch != nil {
			return boolToByte(ch.CollisionLeft)
		}
	case addr >= PropCharArmorBase && addr < PropCharArmorBase+9:
		if ch := ctx.character(); ch != nil {
			return ch.Armor[addr-PropCharArmorBase]
		}

	case addr == PropEntityEnmity:
		if e := ctx.entityCore(); e != nil {
			return e.Enmity
		}
	case addr == PropEntityTargetID:
		if e := ctx.entityCore(); e != nil {
			if !e.HasTarget {
				return 0xFF
			}
			return e.TargetID
		}
		return 0xFF
	case addr == PropEntityTargetType:
		if e := ctx.entityCore(); e != nil {
			return e.TargetType
		}

	case addr == PropSpawnCritChance:
		if def := ctx.spawnDef(); def != nil {
			return def.CritChance
		}
	case addr == PropSpawnCritMultiplier:
		if def := ctx.spawnDef(); def != nil {
			return def.CritMultiplier
		}
	case addr == PropSpawnChance:
		if def := ctx.spawnDef(); def != nil {
			return def.Chance
		}
	case addr == PropSpawnElement:
		if sp := ctx.spawn(); sp != nil {
			return sp.Element
		}
	case addr == PropSpawnOwnerID:
		if sp := ctx.spawn(); sp != nil {
			return sp.OwnerID
		}
	case addr == PropSpawnOwnerType:
		if sp := ctx.spawn(); sp != nil {
			return sp.OwnerType
		}
	case addr >= PropSpawnRuntimeVarBase && addr < PropSpawnRuntimeVarBase+8:
		if sp := ctx.spawn(); sp != nil {
			return sp.RuntimeVars[addr-PropSpawnRuntimeVarBase]
		}

	case addr == PropActionEnergyCost:
		if def := ctx.actionDef(); def != nil {
			return def.EnergyCost
		}
	case addr >= PropActionArgBase && addr < PropActionArgBase+8:
		return ctx.Args[addr-PropActionArgBase]
	case addr >= PropActionRuntimeVarBase && addr < PropActionRuntimeVarBase+8:
		if ai := ctx.actionInstance(); ai != nil {
			return ai.RuntimeVars[addr-PropActionRuntimeVarBase]
		}

	case addr >= PropConditionArgBase && addr < PropConditionArgBase+8:
		return ctx.Args[addr-PropConditionArgBase]
	case addr >= PropConditionRuntimeVarBase && addr < PropConditionRuntimeVarBase+4:
		if ci := ctx.conditionInstance(); ci != nil {
			return ci.RuntimeVars[addr-PropConditionRuntimeVarBase]
		}

	case addr == PropStatusStackLimit:
		if def := ctx.statusDef(); def != nil {
			return def.StackLimit
		}
	case addr == PropStatusResetOnStack:
		if def := ctx.statusDef(); def != nil {
			return boolToByte(def.ResetOnStack)
		}
	case addr == PropStatusChance:
		if def := ctx.statusDef(); def != nil {
			return def.Chance
		}
	case addr >= PropStatusArgBase && addr < PropStatusArgBase+8:
		return ctx.Args[addr-PropStatusArgBase]
	case addr >= PropStatusRuntimeVarBase && addr < PropStatusRuntimeVarBase+8:
		if si := ctx.statusInstance(); si != nil {
			return si.RuntimeVars[addr-PropStatusRuntimeVarBase]
		}
	case addr == PropStatusStackCount:
		if si := ctx.statusInstance(); si != nil {
			return si.StackCount
		}
	}
	return 0
}

// writePropByte routes a byte write. Read-only addresses and addresses
// whose owning entity isn't present are silently ignored (§4.F).
func writePropByte(ctx *ScriptContext, addr uint8, v uint8) {
	switch {
	case addr == PropCharPower:
		if ch := ctx.character(); ch != nil {
			ch.Power = v
		}
	case addr == PropCharWeight:
		if ch := ctx.character(); ch != nil {
			ch.Weight = v
		}
	case addr == PropCharEnergyRegenRate:
		if ch := ctx.character(); ch != nil {
			ch.EnergyRegenRate = v
		}
	case addr == PropCharEnergyRegenAmt:
		if ch := ctx.character(); ch != nil {
			ch.EnergyRegenAmount = v
		}
	case addr == PropCharEnergyRegenDelay:
		if ch := ctx.character(); ch != nil {
			ch.EnergyRegenDelay = v
		}
	case addr == PropCharEnergyRegenStart:
		if ch := ctx.character(); ch != nil {
			ch.EnergyRegenStart = v
		}
	case addr == PropCharEnergy:
		if ch := ctx.character(); ch != nil {
			if v > ch.EnergyCap {
				v = ch.EnergyCap
			}
			ch.Energy = v
		}
	case addr >= PropCharArmorBase && addr < PropCharArmorBase+9:
		if ch := ctx.character(); ch != nil {
			ch.Armor[addr-PropCharArmorBase] = v
		}

	case addr == PropEntityEnmity:
		if e := ctx.entityCore(); e != nil {
			e.Enmity = v
		}
	case addr == PropEntityTargetID:
		if e := ctx.entityCore(); e != nil {
			if v == 0xFF {
				e.HasTarget = false
				e.TargetID = 0
			} else {
				e.HasTarget = true
				e.TargetID = v
			}
		}
	case addr == PropEntityTargetType:
		if e := ctx.entityCore(); e != nil {
			e.TargetType = v
		}

	case addr == PropSpawnElement:
		if sp := ctx.spawn(); sp != nil {
			sp.Element = v
			sp.HasElement = true
		}
	case addr >= PropSpawnRuntimeVarBase && addr < PropSpawnRuntimeVarBase+8:
		if sp := ctx.spawn(); sp != nil {
			sp.RuntimeVars[addr-PropSpawnRuntimeVarBase] = v
		}

	case addr >= PropActionRuntimeVarBase && addr < PropActionRuntimeVarBase+8:
		if ai := ctx.actionInstance(); ai != nil {
			ai.RuntimeVars[addr-PropActionRuntimeVarBase] = v
		}

	case addr >= PropConditionRuntimeVarBase && addr < PropConditionRuntimeVarBase+4:
		if ci := ctx.conditionInstance(); ci != nil {
			ci.RuntimeVars[addr-PropConditionRuntimeVarBase] = v
		}

	case addr >= PropStatusRuntimeVarBase && addr < PropStatusRuntimeVarBase+8:
		if si := ctx.statusInstance(); si != nil {
			si.RuntimeVars[addr-PropStatusRuntimeVarBase] = v
		}
	case addr == PropStatusStackCount:
		if si := ctx.statusInstance(); si != nil {
			si.StackCount = v
		}
	}
	// All other addresses (ids, caps, definition-sourced read-only
	// fields, collision flags) silently ignore writes (§4.F).
}

// readPropFixed resolves addr as a Fixed value, saturating any
// wider-than-Fixed source value (frame, seed, life_span, durations).
func readPropFixed(ctx *ScriptContext, addr uint8) Fixed {
	switch {
	case addr == PropGameFrame:
		return saturateU16ToFixed(ctx.GS.Frame)
	case addr == PropGameSeed:
		return saturateU16ToFixed(ctx.GS.SeedInitial)
	case addr == PropGameGravity:
		return ctx.GS.Gravity

	case addr == PropCharPosX:
		if ch := ctx.character(); ch != nil {
			return ch.PosX
		}
	case addr == PropCharPosY:
		if ch := ctx.character(); ch != nil {
			return ch.PosY
		}
	case addr == PropCharVelX:
		if ch := ctx.character(); ch != nil {
			return ch.VelX
		}
	case addr == PropCharVelY:
		if ch := ctx.character(); ch != nil {
			return ch.VelY
		}
	case addr == PropCharHealth:
		if ch := ctx.character(); ch != nil {
			return saturateU16ToFixed(ch.Health)
		}
	case addr == PropCharHealthCap:
		if ch := ctx.character(); ch != nil {
			return saturateU16ToFixed(ch.HealthCap)
		}
	case addr == PropCharJumpForce:
		if ch := ctx.character(); ch != nil {
			return ch.JumpForce
		}
	case addr == PropCharMoveSpeed:
		if ch := ctx.character(); ch != nil {
			return ch.MoveSpeed
		}

	case addr == PropEntityDirHorizontal:
		if e := ctx.entityCore(); e != nil {
			return e.DirHorizontal.AsFixed()
		}
	case addr == PropEntityDirVertical:
		if e := ctx.entityCore(); e != nil {
			return e.DirVertical.AsFixed()
		}

	case addr == PropSpawnDamageBase:
		if def := ctx.spawnDef(); def != nil {
			return saturateU16ToFixed(def.DamageBase)
		}
	case addr == PropSpawnDamageRange:
		if def := ctx.spawnDef(); def != nil {
			return saturateU16ToFixed(def.DamageRange)
		}
	case addr == PropSpawnHealth:
		if sp := ctx.spawn(); sp != nil {
			return saturateU16ToFixed(sp.Health)
		}
	case addr == PropSpawnHealthCap:
		if sp := ctx.spawn(); sp != nil {
			return saturateU16ToFixed(sp.HealthCap)
		}
	case addr == PropSpawnLifeSpan:
		if sp := ctx.spawn(); sp != nil {
			return saturateU16ToFixed(sp.LifeSpan)
		}
	case addr == PropSpawnPosX:
		if sp := ctx.spawn(); sp != nil {
			return sp.PosX
		}
	case addr == PropSpawnPosY:
		if sp := ctx.spawn(); sp != nil {
			return sp.PosY
		}
	case addr == PropSpawnVelX:
		if sp := ctx.spawn(); sp != nil {
			return sp.VelX
		}
	case addr == PropSpawnVelY:
		if sp := ctx.spawn(); sp != nil {
			return sp.VelY
		}
	case addr == PropSpawnRotation:
		if sp := ctx.spawn(); sp != nil {
			return sp.Rotation
		}
	case addr >= PropSpawnRuntimeFixedBase && addr < PropSpawnRuntimeFixedBase+4:
		if sp := ctx.spawn(); sp != nil {
			return sp.RuntimeFixed[addr-PropSpawnRuntimeFixedBase]
		}

	case addr == PropActionCooldown:
		if def := ctx.actionDef(); def != nil {
			return saturateU16ToFixed(def.Cooldown)
		}
	case addr == PropActionLastUsedFrame:
		if ai := ctx.actionInstance(); ai != nil {
			return saturateU16ToFixed(ai.LastUsedFrame)
		}
	case addr == PropActionRemainingDuration:
		if ai := ctx.actionInstance(); ai != nil {
			return saturateU16ToFixed(ai.RemainingDuration)
		}
	case addr >= PropActionRuntimeFixedBase && addr < PropActionRuntimeFixedBase+4:
		if ai := ctx.actionInstance(); ai != nil {
			return ai.RuntimeFixed[addr-PropActionRuntimeFixedBase]
		}

	case addr == PropConditionEnergyMul:
		if def := ctx.conditionDef(); def != nil {
			return def.EnergyMul
		}
	case addr >= PropConditionRuntimeFixedBase && addr < PropConditionRuntimeFixedBase+4:
		if ci := ctx.conditionInstance(); ci != nil {
			return ci.RuntimeFixed[addr-PropConditionRuntimeFixedBase]
		}

	case addr == PropStatusDuration:
		if def := ctx.statusDef(); def != nil {
			return saturateU16ToFixed(def.Duration)
		}
	case addr == PropStatusLifeSpan:
		if si := ctx.statusInstance(); si != nil {
			return saturateU16ToFixed(si.LifeSpan)
		}
	case addr >= PropStatusRuntimeFixedBase && addr < PropStatusRuntimeFixedBase+4:
		if si := ctx.statusInstance(); si != nil {
			return si.RuntimeFixed[addr-PropStatusRuntimeFixedBase]
		}
	}
	return 0
}

// writePropFixed routes a Fixed write, silently ignoring read-only or
// unresolved addresses (§4.F).
func writePropFixed(ctx *ScriptContext, addr uint8, v Fixed) {
	switch {
	case addr == PropCharPosX:
		if ch := ctx.character(); ch != nil {
			ch.PosX = v
		}
	case addr == PropCharPosY:
		if ch := ctx.character(); ch != nil {
			ch.PosY = v
		}
	case addr == PropCharVelX:
		if ch := ctx.character(); ch != nil {
			ch.VelX = v
		}
	case addr == PropCharVelY:
		if ch := ctx.character(); ch != nil {
			ch.VelY = v
		}
	case addr == PropCharHealth:
		if ch := ctx.character(); ch != nil {
			h := v.ToInt()
			if h < 0 {
				h = 0
			}
			if uint16(h) > ch.HealthCap {
				h = int16(ch.HealthCap)
			}
			before := ch.Health
			ch.Health = uint16(h)
			if ch.Health < before && ctx.GS.EventLog != nil {
				ctx.GS.EventLog.Append(Event{
					Frame:  ctx.Frame,
					Type:   EventDamageDealt,
					Byte0:  ch.ID,
					Fixed0: FixedFromInt(int16(before - ch.Health)),
				})
			}
		}
	case addr == PropCharJumpForce:
		if ch := ctx.character(); ch != nil {
			ch.JumpForce = v
		}
	case addr == PropCharMoveSpeed:
		if ch := ctx.character(); ch != nil {
			ch.MoveSpeed = v
		}

	case addr == PropEntityDirHorizontal:
		if e := ctx.entityCore(); e != nil {
			e.DirHorizontal = DirectionFromFixed(v)
		}
	case addr == PropEntityDirVertical:
		if e := ctx.entityCore(); e != nil {
			e.DirVertical = DirectionFromFixed(v)
		}

	case addr == PropSpawnHealth:
		if sp := ctx.spawn(); sp != nil {
			h := v.ToInt()
			if h < 0 {
				h = 0
			}
			if uint16(h) > sp.HealthCap {
				h = int16(sp.HealthCap)
			}
			sp.Health = uint16(h)
		}
	case addr == PropSpawnLifeSpan:
		if sp := ctx.spawn(); sp != nil {
			l := v.ToInt()
			if l < 0 {
				l = 0
			}
			sp.LifeSpan = uint16(l)
		}
	case addr == PropSpawnPosX:
		if sp := ctx.spawn(); sp != nil {
			sp.PosX = v
		}
	case addr == PropSpawnPosY:
		if sp := ctx.spawn(); sp != nil {
			sp.PosY = v
		}
	case addr == PropSpawnVelX:
		if sp := ctx.spawn(); sp != nil {
			sp.VelX = v
		}
	case addr == PropSpawnVelY:
		if sp := ctx.spawn(); sp != nil {
			sp.VelY = v
		}
	case addr == PropSpawnRotation:
		if sp := ctx.spawn(); sp != nil {
			sp.Rotation = v
		}
	case addr >= PropSpawnRuntimeFixedBase && addr < PropSpawnRuntimeFixedBase+4:
		if sp := ctx.spawn(); sp != nil {
			sp.RuntimeFixed[addr-PropSpawnRuntimeFixedBase] = v
		}

	case addr == PropActionRemainingDuration:
		if ai := ctx.actionInstance(); ai != nil {
			d := v.ToInt()
			if d < 0 {
				d = 0
			}
			ai.RemainingDuration = uint16(d)
		}
	case addr >= PropActionRuntimeFixedBase && addr < PropActionRuntimeFixedBase+4:
		if ai := ctx.actionInstance(); ai != nil {
			ai.RuntimeFixed[addr-PropActionRuntimeFixedBase] = v
		}

	case addr >= PropConditionRuntimeFixedBase && addr < PropConditionRuntimeFixedBase+4:
		if ci := ctx.conditionInstance(); ci != nil {
			ci.RuntimeFixed[addr-PropConditionRuntimeFixedBase] = v
		}

	case addr >= PropStatusRuntimeFixedBase && addr < PropStatusRuntimeFixedBase+4:
		if si := ctx.statusInstance(); si != nil {
			si.RuntimeFixed[addr-PropStatusRuntimeFixedBase] = v
		}
	case addr == PropStatusLifeSpan:
		if si := ctx.statusInstance(); si != nil {
			l := v.ToInt()
			if l < 0 {
				l = 0
			}
			si.LifeSpan = uint16(l)
		}
	}
}

// saturateU16ToFixed presents a u16 domain value (frame, seed,
// durations up to 65535) as a saturating Fixed, since these can exceed
// Fixed's +-1023 integer range (§4.A saturation semantics extended to
// property presentation).
func saturateU16ToFixed(v uint16) Fixed {
	const maxRepresentableInt = 1023 // fixedMax.ToInt()
	if v > maxRepresentableInt {
		return fixedMax
	}
	return FixedFromInt(int16(v))
}

// --- context instance/definition resolvers -------------------------------

func (c *ScriptContext) actionDef() *ActionDefinition {
	def, ok := c.GS.GetActionDefinition(c.ActionDefID)
	if !ok {
		return nil
	}
	return def
}

func (c *ScriptContext) conditionDef() *ConditionDefinition {
	def, ok := c.GS.GetConditionDefinition(c.ConditionDefID)
	if !ok {
		return nil
	}
	return def
}

func (c *ScriptContext) spawnDef() *SpawnDefinition {
	def, ok := c.GS.GetSpawnDefinition(c.SpawnDefID)
	if !ok {
		return nil
	}
	return def
}

func (c *ScriptContext) statusDef() *StatusEffectDefinition {
	def, ok := c.GS.GetStatusEffectDefinition(c.StatusDefID)
	if !ok {
		return nil
	}
	return def
}

func (c *ScriptContext) actionInstance() *ActionInstance {
	if c.ActionInstanceIdx < 0 || c.ActionInstanceIdx >= len(c.GS.ActionInstances) {
		return nil
	}
	return &c.GS.ActionInstances[c.ActionInstanceIdx]
}

func (c *ScriptContext) conditionInstance() *ConditionInstance {
	if c.ConditionInstanceIdx < 0 || c.ConditionInstanceIdx >= len(c.GS.ConditionInstances) {
		return nil
	}
	return &c.GS.ConditionInstances[c.ConditionInstanceIdx]
}

func (c *ScriptContext) statusInstance() *StatusEffectInstance {
	if c.StatusInstanceIdx < 0 || c.StatusInstanceIdx >= len(c.GS.StatusEffectInstances) {
		return nil
	}
	return &c.GS.StatusEffectInstances[c.StatusInstanceIdx]
}
