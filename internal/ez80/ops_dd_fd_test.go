package ez80

import "testing"

func TestSuffixLILForcesLongModeForOneInstruction(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	c.ADL = false
	c.applyDefaultWidths()
	// LIL suffix (0x5B) sets L=IL=1, so the following LD HL,nnn consumes a
	// full 3-byte immediate even though the ambient mode (ADL=0) is short.
	rig.load(0, false, []byte{0x5B, 0x21, 0x34, 0x12, 0xAB})
	rig.step()
	requireEqualU32(t, "HL loaded as a 24-bit immediate under LIL", c.Reg.HL.Whole(), 0xAB1234)
	// The suffix must not leak into the next instruction.
	if c.L {
		t.Fatal("L should revert to ADL after the suffixed instruction completes")
	}
}

func TestCrossIndexLDStoresOtherIndexRegister(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	c.Reg.IX.SetWhole(0x5000)
	c.Reg.IY.SetWhole(0xCAFE)
	// DD 31 05 = LD (IX+5), IY
	rig.load(0, false, []byte{0xDD, 0x31, 0x05})
	rig.step()
	requireEqualU8(t, "low byte at (IX+5)", rig.bus.mem[0x5005], 0xFE)
	requireEqualU8(t, "high byte at (IX+6)", rig.bus.mem[0x5006], 0xCA)
}

func TestCrossIndexLDLoadsOtherIndexRegister(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	c.Reg.IX.SetWhole(0x6000)
	rig.bus.mem[0x6005] = 0x34
	rig.bus.mem[0x6006] = 0x12
	// DD 3E 05 = LD IY,(IX+5)
	rig.load(0, false, []byte{0xDD, 0x3E, 0x05})
	rig.step()
	requireEqualU32(t, "IY loaded from (IX+5)", c.Reg.IY.Masked(false), 0x1234)
}

func TestEDBlockXCopiesViaDEAndRepeatsOnBAlone(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	c.Reg.HL.SetWhole(0x2000)
	c.Reg.DE.SetWhole(0x3000)
	// BC=0x0101: each iteration decrements the whole BC pair
	// (cpu_dec_bc_partial_mode), giving 0x0100 then 0x00FF. edBlockX's
	// repeat test looks at B alone, so it stops after two iterations even
	// though BC (C=0xFF) is still nonzero.
	c.Reg.BC.SetHi(1)
	c.Reg.BC.SetLo(1)
	rig.bus.mem[0x3000] = 0xAA
	rig.bus.mem[0x3001] = 0xBB
	// ED A4: this core's INIRX-style wiring (see initEDExtra) copies
	// (DE)->(HL), advancing both pointers.
	rig.load(0, false, []byte{0xED, 0xA4})
	rig.runUntilIdle(1000)
	requireEqualU8(t, "(0x2000) copied from (0x3000)", rig.bus.mem[0x2000], 0xAA)
	requireEqualU8(t, "(0x2001) copied from (0x3001)", rig.bus.mem[0x2001], 0xBB)
	requireEqualU32(t, "HL advanced twice", c.Reg.HL.Masked(false), 0x2002)
	requireEqualU32(t, "DE advanced twice", c.Reg.DE.Masked(false), 0x3002)
	requireEqualU8(t, "B decremented to zero", c.Reg.BC.Hi(), 0)
	requireEqualU8(t, "C left nonzero (repeat stopped on B alone)", c.Reg.BC.Lo(), 0xFF)
}

func TestUnprefixedLDSPnnAndLDAnUnaffected(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	// Plain LD SP,nn and LD A,n must be unaffected when PREFIX is clear.
	rig.load(0, false, []byte{0x31, 0x00, 0x90, 0x3E, 0x77})
	rig.step()
	requireEqualU32(t, "SP", c.Reg.SP(false), 0x9000)
	rig.step()
	requireEqualU8(t, "A", c.Reg.A, 0x77)
}
