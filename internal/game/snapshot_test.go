package game

import "testing"

func newInitTestArgs() (Tilemap, Fixed, []Character, []ActionDefinition, []ConditionDefinition, []SpawnDefinition, []StatusEffectDefinition) {
	var tm Tilemap
	characters := []Character{
		{EntityCore: EntityCore{ID: 1}, Health: 100, HealthCap: 100, Energy: 10, EnergyCap: 10},
	}
	actionDefs := []ActionDefinition{{EnergyCost: 1, Script: []byte{byte(OpExit), 1}}}
	conditionDefs := []ConditionDefinition{{Script: alwaysTrueCondition}}
	spawnDefs := []SpawnDefinition{{HealthCap: 5, Spawns: [4]uint8{unusedSlot, unusedSlot, unusedSlot, unusedSlot}}}
	statusDefs := []StatusEffectDefinition{{Duration: 1}}
	return tm, FixedFromInt(1), characters, actionDefs, conditionDefs, spawnDefs, statusDefs
}

func TestInitRejectsEmptyCharacters(t *testing.T) {
	tm, gravity, _, actionDefs, conditionDefs, spawnDefs, statusDefs := newInitTestArgs()
	_, err := Init(1, tm, gravity, nil, actionDefs, conditionDefs, spawnDefs, statusDefs)
	if err == nil {
		t.Fatal("expected an error for zero characters")
	}
	gerr, ok := err.(*GameError)
	if !ok || gerr.Kind != ErrInvalidGameState {
		t.Errorf("err = %v, want ErrInvalidGameState", err)
	}
}

func TestInitSucceedsAndIsDeterministic(t *testing.T) {
	tm, gravity, characters, actionDefs, conditionDefs, spawnDefs, statusDefs := newInitTestArgs()
	gs1, err := Init(7, tm, gravity, append([]Character(nil), characters...), actionDefs, conditionDefs, spawnDefs, statusDefs)
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	gs2, err := Init(7, tm, gravity, append([]Character(nil), characters...), actionDefs, conditionDefs, spawnDefs, statusDefs)
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}

	for i := 0; i < 100; i++ {
		if err := Step(gs1); err != nil {
			t.Fatalf("Step gs1: %v", err)
		}
		if err := Step(gs2); err != nil {
			t.Fatalf("Step gs2: %v", err)
		}
	}

	s1, s2 := Snapshot(gs1), Snapshot(gs2)
	if s1.Frame != s2.Frame || s1.RNGState != s2.RNGState {
		t.Error("two identically-initialized states should step identically")
	}
	if len(s1.Characters) != 1 || s1.Characters[0].Health != s2.Characters[0].Health {
		t.Error("character state diverged between two deterministic runs")
	}
}

func TestSnapshotDoesNotAliasLiveState(t *testing.T) {
	tm, gravity, characters, actionDefs, conditionDefs, spawnDefs, statusDefs := newInitTestArgs()
	gs, err := Init(1, tm, gravity, characters, actionDefs, conditionDefs, spawnDefs, statusDefs)
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}

	snap := Snapshot(gs)
	snap.Characters[0].Health = 1

	if gs.Characters[0].Health == 1 {
		t.Error("mutating a snapshot's slice should not affect live GameState")
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	tm, gravity, characters, actionDefs, conditionDefs, spawnDefs, statusDefs := newInitTestArgs()
	gs, err := Init(3, tm, gravity, characters, actionDefs, conditionDefs, spawnDefs, statusDefs)
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	for i := 0; i < 50; i++ {
		Step(gs)
	}

	snap := Snapshot(gs)
	restored := Restore(snap)

	for i := 0; i < 50; i++ {
		if err := Step(gs); err != nil {
			t.Fatalf("Step gs: %v", err)
		}
		if err := Step(restored); err != nil {
			t.Fatalf("Step restored: %v", err)
		}
	}

	finalA, finalB := Snapshot(gs), Snapshot(restored)
	if finalA.Frame != finalB.Frame || finalA.RNGState != finalB.RNGState {
		t.Error("a restored state should step identically to the original going forward")
	}
}

func TestRestorePreservesActionInstanceOwners(t *testing.T) {
	tm, gravity, characters, actionDefs, conditionDefs, spawnDefs, statusDefs := newInitTestArgs()
	characters[0].Behaviors = []Behavior{{ConditionID: 0, ActionID: 0}}
	gs, err := Init(1, tm, gravity, characters, actionDefs, conditionDefs, spawnDefs, statusDefs)
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if err := Step(gs); err != nil {
		t.Fatalf("Step error: %v", err)
	}

	snap := Snapshot(gs)
	if len(snap.ActionInstances) == 0 {
		t.Fatal("expected the behavior to have created an action instance")
	}
	if len(snap.ActionInstanceOwners) != len(snap.ActionInstances) {
		t.Fatal("ActionInstanceOwners should be parallel to ActionInstances")
	}

	restored := Restore(snap)
	// A second behavior pass on the restored state should recognize the
	// existing action instance as belonging to character 1, not create a
	// duplicate one.
	idx := restored.ActionInstanceFor(1, 0)
	if idx != 0 {
		t.Errorf("ActionInstanceFor after restore = %d, want 0 (existing instance recognized)", idx)
	}
	if len(restored.ActionInstances) != 1 {
		t.Errorf("expected exactly 1 action instance after restore, got %d", len(restored.ActionInstances))
	}
}
