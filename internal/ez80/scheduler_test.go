package ez80

import "testing"

func TestHaltConsumesEntireBudgetInOneStep(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	rig.load(0, false, []byte{0x76}) // HALT

	delta := int64(-1)
	c.Execute(&delta) // run the HALT opcode itself
	if !c.Halted {
		t.Fatal("expected CPU halted")
	}
	if delta != 0 {
		t.Fatalf("delta after executing HALT = %d, want 0", delta)
	}

	// A much larger budget must be consumed whole by the halted fast path,
	// not drained one NOP-like iteration at a time.
	delta = -500
	reason := c.Execute(&delta)
	if reason != ExitBudgetExhausted {
		t.Fatalf("ExitReason = %v, want ExitBudgetExhausted", reason)
	}
	if delta != 0 {
		t.Fatalf("delta after halted budget drain = %d, want 0", delta)
	}
	requireEqualU32(t, "PC unchanged while halted", c.Reg.PC.Whole(), 1)
}

func TestUndefinedOpcodeTrapStillAdvancesBudget(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	// ED FF is not wired by initEDMisc/initEDExtra, so edTrap fires: it
	// costs zero cycles, relying on the scheduler's forward-progress
	// guarantee (+1 whenever Cycles==0) to avoid spinning forever.
	rig.load(0, false, []byte{0xED, 0xFF, 0xED, 0xFF, 0xED, 0xFF})

	delta := int64(-3)
	reason := c.Execute(&delta)
	if reason != ExitBudgetExhausted {
		t.Fatalf("ExitReason = %v, want ExitBudgetExhausted", reason)
	}
	if delta != 0 {
		t.Fatalf("delta = %d, want 0 (three zero-cycle traps, budget -3)", delta)
	}
	requireEqualU32(t, "PC advanced past all three trapped opcodes", c.Reg.PC.Whole(), 6)
	if !c.IEFWait {
		t.Fatal("edTrap should have set IEFWait as the opcode-trap sentinel")
	}
}

func TestExecuteReturnsImmediatelyWhenExiting(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	rig.load(0, false, []byte{0x00, 0x00, 0x00})
	c.SetExiting(true)

	delta := int64(-10)
	reason := c.Execute(&delta)
	if reason != ExitExiting {
		t.Fatalf("ExitReason = %v, want ExitExiting", reason)
	}
	requireEqualU32(t, "no instruction executed once exiting", c.Reg.PC.Whole(), 0)
}

func TestDebugStepReturnsAfterOneInstruction(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	rig.load(0, false, []byte{0x00, 0x00, 0x00})
	c.SetEvents(EventDebugStep)

	delta := int64(-10)
	reason := c.Execute(&delta)
	if reason != ExitSingleStep {
		t.Fatalf("ExitReason = %v, want ExitSingleStep", reason)
	}
	if delta != 0 {
		t.Fatalf("delta = %d, want 0 (single-step zeroes the remaining budget)", delta)
	}
	requireEqualU32(t, "exactly one instruction executed", c.Reg.PC.Whole(), 1)
}
