package game

// Direction encodes a signed axis as a byte in {0,1,2} (negative,
// neutral, positive), presented to scripts as Fixed -1/0/+1 via the
// property registry (§4.F). Vertical direction doubles as gravity
// orientation.
type Direction uint8

const (
	DirNegative Direction = 0
	DirNeutral  Direction = 1
	DirPositive Direction = 2
)

// AsFixed converts the raw {0,1,2} representation to script-visible
// Fixed -1/0/+1.
func (d Direction) AsFixed() Fixed {
	return FixedFromInt(int16(d) - 1)
}

// DirectionFromFixed clamps a script-written Fixed value back into the
// {0,1,2} raw representation (§4.F).
func DirectionFromFixed(f Fixed) Direction {
	v := f.ToInt() + 1
	if v < 0 {
		v = 0
	}
	if v > 2 {
		v = 2
	}
	return Direction(v)
}

// EntityCore holds the positional/kinematic state shared by characters
// and spawns (§3).
type EntityCore struct {
	ID    uint8
	Group uint8

	PosX, PosY Fixed
	VelX, VelY Fixed
	SizeW      uint8
	SizeH      uint8

	CollisionTop    bool
	CollisionRight  bool
	CollisionBottom bool
	CollisionLeft   bool

	DirHorizontal Direction
	DirVertical   Direction

	Enmity     uint8
	TargetID   uint8
	HasTarget  bool
	TargetType uint8
}

// Rect returns the entity's current axis-aligned bounding box.
func (e *EntityCore) Rect() CollisionRect {
	return CollisionRect{X: e.PosX, Y: e.PosY, W: e.SizeW, H: e.SizeH}
}

// NoActionInstance marks "never used" for action_last_used (§3).
const NoActionInstance uint16 = 0xFFFF

// Character extends EntityCore with combat stats and script-driven
// behavior (§3).
type Character struct {
	EntityCore

	Health    uint16
	HealthCap uint16
	Energy    uint8
	EnergyCap uint8

	Power      uint8
	Weight     uint8
	JumpForce  Fixed
	MoveSpeed  Fixed
	Armor      [9]uint8

	EnergyRegenRate   uint8 // frames between regen ticks
	EnergyRegenAmount uint8 // energy restored per tick
	EnergyRegenDelay  uint8 // frames after EnergyRegenStart before the first regen tick
	EnergyRegenStart  uint8

	Behaviors []Behavior

	LockedAction    int // index into ActionInstances, -1 = none
	HasLockedAction bool

	StatusEffects []int // indices into StatusEffectInstances, insertion order

	ActionLastUsed []uint16 // indexed by ActionId
}

// Behavior is a (ConditionId, ActionId) pair evaluated in priority
// order (§3, §4.G).
type Behavior struct {
	ConditionID int
	ActionID    int
}

// --- definition tables -------------------------------------------------

// ActionDefinition is an immutable action template (§3).
type ActionDefinition struct {
	EnergyCost uint8
	Cooldown   uint16
	Args       [8]uint8
	Spawns     [4]uint8
	Script     []byte
}

// ConditionDefinition is an immutable condition template (§3).
type ConditionDefinition struct {
	EnergyMul Fixed
	Args      [8]uint8
	Script    []byte
}

// SpawnDefinition is an immutable spawn template (§3).
type SpawnDefinition struct {
	DamageBase     uint16
	DamageRange    uint16
	CritChance     uint8
	CritMultiplier uint8
	Chance         uint8
	HealthCap      uint16
	Duration       uint16
	Element        uint8
	HasElement     bool
	Args           [8]uint8
	Spawns         [4]uint8
	BehaviorScript []byte
	CollisionScript []byte
	DespawnScript  []byte
}

// StatusEffectDefinition is an immutable status effect template (§3).
type StatusEffectDefinition struct {
	Duration      uint16
	StackLimit    uint8
	ResetOnStack  bool
	Chance        uint8
	Args          [8]uint8
	OnScript      []byte
	TickScript    []byte
	OffScript     []byte
}

// --- instance tables -----------------------------------------------------

// ActionInstance is mutable per-use action state (§3).
type ActionInstance struct {
	DefinitionID     int
	RemainingDuration uint16
	LastUsedFrame    uint16
	RuntimeVars      [8]uint8
	RuntimeFixed     [4]Fixed
	Active           bool
}

// ConditionInstance persists per (character,condition) across frames
// (§3's uniqueness invariant).
type ConditionInstance struct {
	CharacterID  uint8
	DefinitionID int
	RuntimeVars  [4]uint8
	RuntimeFixed [4]Fixed
}

// SpawnInstance is a transient scripted entity (§3).
type SpawnInstance struct {
	EntityCore
	DefinitionID int
	OwnerID      uint8
	OwnerType    uint8 // 1=character, 2=spawn

	Health    uint16
	HealthCap uint16
	Rotation  Fixed
	LifeSpan  uint16
	Element   uint8
	HasElement bool

	RuntimeVars  [8]uint8
	RuntimeFixed [4]Fixed

	Alive bool
}

// StatusEffectInstance is mutable per-character status state (§3).
type StatusEffectInstance struct {
	CharacterID  uint8
	DefinitionID int
	LifeSpan     uint16
	StackCount   uint8
	RuntimeVars  [8]uint8
	RuntimeFixed [4]Fixed
	Alive        bool
}

// MatchStatus is the overall lifecycle state of a GameState.
type MatchStatus uint8

const (
	StatusPlaying MatchStatus = iota
	StatusEnded
)

// TotalFrames is the fixed match length: 3840 frames at 60Hz (§1).
const TotalFrames uint16 = 3840

// GameState is the single aggregate owning every definition and
// instance table, the tilemap, the RNG, and the current frame/status
// (§3, §5). It is exclusively owned by the caller; Init constructs it,
// Step mutates it in place, Snapshot copies its tables out.
type GameState struct {
	SeedInitial uint16
	RNG         *RNG
	Frame       uint16
	Status      MatchStatus
	Gravity     Fixed
	Tilemap     Tilemap

	ActionDefs       []ActionDefinition
	ConditionDefs    []ConditionDefinition
	SpawnDefs        []SpawnDefinition
	StatusEffectDefs []StatusEffectDefinition

	Characters []Character

	ActionInstances       []ActionInstance
	actionInstanceOwners  []uint8 // parallel to ActionInstances; see ActionInstanceFor
	ConditionInstances    []ConditionInstance
	SpawnInstances        []SpawnInstance
	StatusEffectInstances []StatusEffectInstance

	// ScriptFaults is a bounded ring of runtime diagnostics (§7);
	// never consulted by the deterministic simulation itself.
	ScriptFaults []ScriptFault

	// EventLog records simulation events for replay/diagnostics (§4.I
	// design notes, supplemental — see event.go).
	EventLog *EventLog
}

const maxScriptFaults = 256

// ScriptFault records one recoverable runtime error (§7).
type ScriptFault struct {
	Frame   uint16
	Kind    ErrorKind
	Context string
}

func (gs *GameState) recordFault(kind ErrorKind, context string) {
	fault := ScriptFault{Frame: gs.Frame, Kind: kind, Context: context}
	if len(gs.ScriptFaults) >= maxScriptFaults {
		gs.ScriptFaults = gs.ScriptFaults[1:]
	}
	gs.ScriptFaults = append(gs.ScriptFaults, fault)
}

// GetActionDefinition returns the definition at id, or ok=false if out
// of range.
func (gs *GameState) GetActionDefinition(id int) (*ActionDefinition, bool) {
	if id < 0 || id >= len(gs.ActionDefs) {
		return nil, false
	}
	return &gs.ActionDefs[id], true
}

// GetConditionDefinition returns the definition at id, or ok=false.
func (gs *GameState) GetConditionDefinition(id int) (*ConditionDefinition, bool) {
	if id < 0 || id >= len(gs.ConditionDefs) {
		return nil, false
	}
	return &gs.ConditionDefs[id], true
}

// GetSpawnDefinition returns the definition at id, or ok=false.
func (gs *GameState) GetSpawnDefinition(id int) (*SpawnDefinition, bool) {
	if id < 0 || id >= len(gs.SpawnDefs) {
		return nil, false
	}
	return &gs.SpawnDefs[id], true
}

// GetStatusEffectDefinition returns the definition at id, or ok=false.
func (gs *GameState) GetStatusEffectDefinition(id int) (*StatusEffectDefinition, bool) {
	if id < 0 || id >= len(gs.StatusEffectDefs) {
		return nil, false
	}
	return &gs.StatusEffectDefs[id], true
}

// ConditionInstanceFor returns the persistent instance index for
// (characterID, defID), linearly scanning and lazily appending per the
// uniqueness invariant (§3, §9 design notes).
func (gs *GameState) ConditionInstanceFor(characterID uint8, defID int) int {
	for i := range gs.ConditionInstances {
		ci := &gs.ConditionInstances[i]
		if ci.CharacterID == characterID && ci.DefinitionID == defID {
			return i
		}
	}
	gs.ConditionInstances = append(gs.ConditionInstances, ConditionInstance{
		CharacterID:  characterID,
		DefinitionID: defID,
	})
	return len(gs.ConditionInstances) - 1
}

// ActionInstanceFor returns the persistent instance index for
// (characterID, actionDefID), linearly scanning and lazily appending.
// Matches the same identity rule as conditions (§3): the implementation
// may recycle slots but the (character,definition) key is authoritative.
func (gs *GameState) ActionInstanceFor(characterID uint8, defID int) int {
	for i := range gs.ActionInstances {
		ai := &gs.ActionInstances[i]
		if ai.Active && ai.DefinitionID == defID && gs.actionInstanceOwner(i) == characterID {
			return i
		}
	}
	gs.ActionInstances = append(gs.ActionInstances, ActionInstance{
		DefinitionID: defID,
		LastUsedFrame: NoActionInstance,
		Active:        true,
	})
	idx := len(gs.ActionInstances) - 1
	gs.actionInstanceOwners = append(gs.actionInstanceOwners, characterID)
	return idx
}

// actionInstanceOwner looks up the owning character for an
// ActionInstance slot; kept parallel (not embedded in ActionInstance,
// §3) since the engine still needs it to honor the
// (character_id, definition_id) identity key without growing the
// wire-sized instance struct.
func (gs *GameState) actionInstanceOwner(idx int) uint8 {
	if idx < 0 || idx >= len(gs.actionInstanceOwners) {
		return 0xFF
	}
	return gs.actionInstanceOwners[idx]
}
