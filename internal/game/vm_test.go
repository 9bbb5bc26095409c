package game

import "testing"

func newTestGameState() *GameState {
	return &GameState{RNG: NewRNG(1)}
}

func newTestContext(gs *GameState, kind ScriptKind) *ScriptContext {
	return newScriptContext(gs, kind)
}

func TestRunScriptExitTrue(t *testing.T) {
	gs := newTestGameState()
	ctx := newTestContext(gs, ScriptAction)
	script := []byte{byte(OpExit), 1}
	if got := RunScript(ctx, script); !got {
		t.Error("Exit(1) should make RunScript return true")
	}
}

func TestRunScriptExitFalse(t *testing.T) {
	gs := newTestGameState()
	ctx := newTestContext(gs, ScriptAction)
	script := []byte{byte(OpExit), 0}
	if got := RunScript(ctx, script); got {
		t.Error("Exit(0) should make RunScript return false")
	}
}

func TestRunScriptFallOffEndIsFalse(t *testing.T) {
	gs := newTestGameState()
	ctx := newTestContext(gs, ScriptAction)
	// AssignByte var0=7, no Exit.
	script := []byte{byte(OpAssignByte), 0, 7}
	if got := RunScript(ctx, script); got {
		t.Error("falling off the end of an action script should return false")
	}
}

func TestRunScriptConditionExitWithVar(t *testing.T) {
	gs := newTestGameState()
	ctx := newTestContext(gs, ScriptCondition)
	script := []byte{
		byte(OpAssignByte), 0, 1, // var0 = 1
		byte(OpExitWithVar), 0,
	}
	if got := RunScript(ctx, script); !got {
		t.Error("ExitWithVar(var0=1) should return true for a condition script")
	}
}

func TestRunScriptUnknownOpcodeIsBenign(t *testing.T) {
	gs := newTestGameState()
	ctx := newTestContext(gs, ScriptAction)
	script := []byte{0xFF}
	if got := RunScript(ctx, script); got {
		t.Error("unknown opcode should terminate with a false result")
	}
	if len(gs.ScriptFaults) != 1 {
		t.Fatalf("expected 1 recorded fault, got %d", len(gs.ScriptFaults))
	}
	if gs.ScriptFaults[0].Kind != ErrInvalidScript {
		t.Errorf("fault kind = %v, want ErrInvalidScript", gs.ScriptFaults[0].Kind)
	}
}

func TestRunScriptTruncatedOperandsIsBenign(t *testing.T) {
	gs := newTestGameState()
	ctx := newTestContext(gs, ScriptAction)
	script := []byte{byte(OpAssignByte), 0} // arity 2, only 1 operand byte present
	if got := RunScript(ctx, script); got {
		t.Error("truncated operands should terminate with a false result")
	}
	if len(gs.ScriptFaults) != 1 || gs.ScriptFaults[0].Kind != ErrInvalidScript {
		t.Errorf("expected a single ErrInvalidScript fault, got %+v", gs.ScriptFaults)
	}
}

func TestRunScriptInstructionBudgetExhausted(t *testing.T) {
	gs := newTestGameState()
	ctx := newTestContext(gs, ScriptAction)
	// Infinite self-loop: OpGoto 0.
	script := []byte{byte(OpGoto), 0}
	if got := RunScript(ctx, script); got {
		t.Error("budget-exhausted script should return false")
	}
	if len(gs.ScriptFaults) != 1 || gs.ScriptFaults[0].Kind != ErrScriptExecutionError {
		t.Errorf("expected a single ErrScriptExecutionError fault, got %+v", gs.ScriptFaults)
	}
}

func TestRunScriptGotoJumpsForward(t *testing.T) {
	gs := newTestGameState()
	ctx := newTestContext(gs, ScriptAction)
	script := []byte{
		byte(OpGoto), 5, // jump to index 5
		byte(OpExit), 0, // skipped
		0, // padding so index 5 lands on the next instruction
		byte(OpExit), 1,
	}
	if got := RunScript(ctx, script); !got {
		t.Error("goto should have skipped the Exit(0) and landed on Exit(1)")
	}
}

func TestRunScriptJumpOutOfRangeIsBenign(t *testing.T) {
	gs := newTestGameState()
	ctx := newTestContext(gs, ScriptAction)
	script := []byte{byte(OpGoto), 200}
	if got := RunScript(ctx, script); got {
		t.Error("out-of-range jump should terminate with a false result")
	}
	if len(gs.ScriptFaults) != 1 || gs.ScriptFaults[0].Kind != ErrInvalidScript {
		t.Errorf("expected a single ErrInvalidScript fault, got %+v", gs.ScriptFaults)
	}
}

func TestOpcodeArithmeticByte(t *testing.T) {
	gs := newTestGameState()
	ctx := newTestContext(gs, ScriptAction)
	script := []byte{
		byte(OpAssignByte), 0, 200, // var0 = 200
		byte(OpAssignByte), 1, 100, // var1 = 100
		byte(OpAddByte), 2, 0, 1, // var2 = sat(var0+var1) = 255
		byte(OpExit), 0,
	}
	RunScript(ctx, script)
	if ctx.Vars[2] != 255 {
		t.Errorf("saturating add = %d, want 255", ctx.Vars[2])
	}
}

func TestOpcodeDivByZeroByte(t *testing.T) {
	gs := newTestGameState()
	ctx := newTestContext(gs, ScriptAction)
	script := []byte{
		byte(OpAssignByte), 0, 9,
		byte(OpAssignByte), 1, 0,
		byte(OpDivByte), 2, 0, 1,
		byte(OpExit), 0,
	}
	RunScript(ctx, script)
	if ctx.Vars[2] != 255 {
		t.Errorf("div by zero = %d, want 255", ctx.Vars[2])
	}
}

func TestOpcodeFixedArithmetic(t *testing.T) {
	gs := newTestGameState()
	ctx := newTestContext(gs, ScriptAction)
	two := FixedFromInt(2)
	script := []byte{
		byte(OpAssignFixed), 0, byte(two.Raw()), byte(two.Raw() >> 8), // fixed0 = 2
		byte(OpAssignFixed), 1, byte(two.Raw()), byte(two.Raw() >> 8), // fixed1 = 2
		byte(OpMulFixed), 0, 1, // fixed0 *= fixed1 -> 4
		byte(OpExit), 0,
	}
	RunScript(ctx, script)
	if got := ctx.Fixed[0]; got != FixedFromInt(4) {
		t.Errorf("fixed0 = %v, want 4", got)
	}
}

func TestOpcodeAssignRandomDeterministic(t *testing.T) {
	gs1 := &GameState{RNG: NewRNG(77)}
	gs2 := &GameState{RNG: NewRNG(77)}
	ctx1 := newTestContext(gs1, ScriptAction)
	ctx2 := newTestContext(gs2, ScriptAction)
	script := []byte{byte(OpAssignRandom), 0, byte(OpExit), 0}
	RunScript(ctx1, script)
	RunScript(ctx2, script)
	if ctx1.Vars[0] != ctx2.Vars[0] {
		t.Error("AssignRandom should be deterministic given identical RNG state")
	}
}
