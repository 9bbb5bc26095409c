package game

import "testing"

func TestValidateRejectsUnknownConditionReference(t *testing.T) {
	gs := &GameState{
		Characters: []Character{
			{EntityCore: EntityCore{ID: 1}, Behaviors: []Behavior{{ConditionID: 5, ActionID: 0}}},
		},
		ActionDefs: []ActionDefinition{{}},
	}
	err := validate(gs)
	if err == nil {
		t.Fatal("expected an error for an out-of-range condition id")
	}
	if gerr, ok := err.(*GameError); !ok || gerr.Kind != ErrInvalidConditionID {
		t.Errorf("err = %v, want ErrInvalidConditionID", err)
	}
}

func TestValidateRejectsUnknownActionReference(t *testing.T) {
	gs := &GameState{
		Characters: []Character{
			{EntityCore: EntityCore{ID: 1}, Behaviors: []Behavior{{ConditionID: 0, ActionID: 9}}},
		},
		ConditionDefs: []ConditionDefinition{{}},
	}
	err := validate(gs)
	if err == nil {
		t.Fatal("expected an error for an out-of-range action id")
	}
	if gerr, ok := err.(*GameError); !ok || gerr.Kind != ErrInvalidActionID {
		t.Errorf("err = %v, want ErrInvalidActionID", err)
	}
}

func TestValidateAllowsUnusedSpawnSlots(t *testing.T) {
	gs := &GameState{
		ActionDefs: []ActionDefinition{
			{Spawns: [4]uint8{unusedSlot, unusedSlot, unusedSlot, unusedSlot}},
		},
	}
	if err := validate(gs); err != nil {
		t.Errorf("unused spawn slots should be valid, got %v", err)
	}
}

func TestValidateRejectsOutOfRangeSpawnReference(t *testing.T) {
	gs := &GameState{
		ActionDefs: []ActionDefinition{
			{Spawns: [4]uint8{3, unusedSlot, unusedSlot, unusedSlot}},
		},
		SpawnDefs: []SpawnDefinition{{}},
	}
	err := validate(gs)
	if err == nil {
		t.Fatal("expected an error for an out-of-range spawn id")
	}
	if gerr, ok := err.(*GameError); !ok || gerr.Kind != ErrInvalidSpawnID {
		t.Errorf("err = %v, want ErrInvalidSpawnID", err)
	}
}

func TestValidateDetectsDirectSpawnSelfCycle(t *testing.T) {
	gs := &GameState{
		SpawnDefs: []SpawnDefinition{
			{Spawns: [4]uint8{0, unusedSlot, unusedSlot, unusedSlot}},
		},
	}
	err := validate(gs)
	if err == nil {
		t.Fatal("expected an error for a spawn referencing itself")
	}
	if gerr, ok := err.(*GameError); !ok || gerr.Kind != ErrCircularSpawnReference {
		t.Errorf("err = %v, want ErrCircularSpawnReference", err)
	}
}

func TestValidateDetectsIndirectSpawnCycle(t *testing.T) {
	gs := &GameState{
		SpawnDefs: []SpawnDefinition{
			{Spawns: [4]uint8{1, unusedSlot, unusedSlot, unusedSlot}},
			{Spawns: [4]uint8{0, unusedSlot, unusedSlot, unusedSlot}},
		},
	}
	err := validate(gs)
	if err == nil {
		t.Fatal("expected an error for a mutual spawn cycle")
	}
	if gerr, ok := err.(*GameError); !ok || gerr.Kind != ErrCircularSpawnReference {
		t.Errorf("err = %v, want ErrCircularSpawnReference", err)
	}
}

func TestValidateAcceptsAcyclicSpawnChain(t *testing.T) {
	gs := &GameState{
		SpawnDefs: []SpawnDefinition{
			{Spawns: [4]uint8{1, unusedSlot, unusedSlot, unusedSlot}},
			{Spawns: [4]uint8{unusedSlot, unusedSlot, unusedSlot, unusedSlot}},
		},
	}
	if err := validate(gs); err != nil {
		t.Errorf("a linear non-cyclic spawn chain should be valid, got %v", err)
	}
}
