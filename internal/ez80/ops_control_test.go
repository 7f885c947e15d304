package ez80

import "testing"

func TestPlainCallAndRet(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	// CALL 0x0010 ; at 0x0010: RET
	rig.load(0, false, []byte{0xCD, 0x10, 0x00})
	rig.bus.mem[0x0010] = 0xC9 // RET
	c.Reg.SetSP(0xFFF0, false)
	rig.step()
	requireEqualU32(t, "PC after CALL", c.Reg.PC.Whole(), 0x0010)
	rig.step()
	requireEqualU32(t, "PC after RET", c.Reg.PC.Whole(), 0x0003)
}

func TestPushPopRoundTrip(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	c.Reg.SetSP(0xFFF0, false)
	c.Reg.BC.SetWhole(0xBEEF)
	// PUSH BC ; POP DE
	rig.load(0, false, []byte{0xC5, 0xD1})
	rig.step()
	rig.step()
	requireEqualU32(t, "DE", c.Reg.DE.Masked(false), 0xBEEF)
	requireEqualU32(t, "SP restored", c.Reg.SP(false), 0xFFF0)
}

func TestExDEHLRoundTrip(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	c.Reg.DE.SetWhole(0x1111)
	c.Reg.HL.SetWhole(0x2222)
	// EX DE,HL ; EX DE,HL
	rig.load(0, false, []byte{0xEB, 0xEB})
	rig.step()
	requireEqualU32(t, "DE after one EX", c.Reg.DE.Masked(false), 0x2222)
	rig.step()
	requireEqualU32(t, "DE after two EX (identity)", c.Reg.DE.Masked(false), 0x1111)
	requireEqualU32(t, "HL after two EX (identity)", c.Reg.HL.Masked(false), 0x2222)
}

func TestExxRoundTrip(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	c.Reg.BC.SetWhole(0xAAAA)
	c.Reg.BC2.SetWhole(0xBBBB)
	// EXX ; EXX
	rig.load(0, false, []byte{0xD9, 0xD9})
	rig.step()
	rig.step()
	requireEqualU32(t, "BC identity after EXX;EXX", c.Reg.BC.Masked(false), 0xAAAA)
}

func TestDIEIGateInterrupts(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	rig.load(0, false, []byte{0xF3, 0xFB}) // DI ; EI
	c.IEF1, c.IEF2 = true, true
	rig.step()
	if c.IEF1 || c.IEF2 {
		t.Fatal("DI should clear both IEF1 and IEF2")
	}
	rig.step()
	if !c.IEFWait || c.IEF1 {
		t.Fatal("EI should arm IEFWait and leave IEF1 clear until the next instruction boundary")
	}
}
