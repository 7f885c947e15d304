package ez80

import "testing"

func TestAluAddFlags(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	c.Reg.A = 0x0F
	// ADD A,B ; B=0x01 -> A=0x10, half-carry set, carry clear
	c.Reg.BC.SetHi(0x01)
	rig.load(0, false, []byte{0x80}) // ADD A,B
	rig.step()
	requireEqualU8(t, "A", c.Reg.A, 0x10)
	requireFlag(t, c, "H", FlagH, true)
	requireFlag(t, c, "C", FlagC, false)
	requireFlag(t, c, "Z", FlagZ, false)
}

func TestAluSubCarry(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	c.Reg.A = 0x00
	c.Reg.BC.SetHi(0x01)
	rig.load(0, false, []byte{0x90}) // SUB B
	rig.step()
	requireEqualU8(t, "A", c.Reg.A, 0xFF)
	requireFlag(t, c, "C", FlagC, true)
	requireFlag(t, c, "N", FlagN, true)
	requireFlag(t, c, "S", FlagS, true)
}

func TestAluCPLeavesALoneXYFromOperand(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	c.Reg.A = 0x10
	c.Reg.BC.SetHi(0x10)
	rig.load(0, false, []byte{0xB8}) // CP B
	rig.step()
	requireEqualU8(t, "A unchanged by CP", c.Reg.A, 0x10)
	requireFlag(t, c, "Z", FlagZ, true)

	// CP 0x28 with A=0x00: the result 0xD8 has Y (bit 5) clear, but X/Y
	// are copied from the operand 0x28, which has both set.
	c.Reg.A = 0x00
	rig.load(0, false, []byte{0xFE, 0x28}) // CP 0x28
	rig.step()
	requireFlag(t, c, "X from operand", FlagX, true)
	requireFlag(t, c, "Y from operand", FlagY, true)
}

func TestAluImmAND(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	c.Reg.A = 0xFF
	rig.load(0, false, []byte{0xE6, 0x0F}) // AND 0x0F
	rig.step()
	requireEqualU8(t, "A", c.Reg.A, 0x0F)
	requireFlag(t, c, "H", FlagH, true)
	requireFlag(t, c, "C", FlagC, false)
}
