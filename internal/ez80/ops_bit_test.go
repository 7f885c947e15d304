package ez80

import "testing"

func TestCBBitResSet(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	c.Reg.BC.SetHi(0x00)
	// CB 40 = BIT 0,B -> Z set (bit clear)
	rig.load(0, false, []byte{0xCB, 0x40})
	rig.step()
	requireFlag(t, c, "Z", FlagZ, true)
	requireFlag(t, c, "H", FlagH, true)
	requireFlag(t, c, "N", FlagN, false)
}

func TestCBSetThenRes(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	c.Reg.BC.SetHi(0x00)
	// CB C0 = SET 0,B ; CB 80 = RES 0,B
	rig.load(0, false, []byte{0xCB, 0xC0, 0xCB, 0x80})
	rig.step()
	requireEqualU8(t, "B after SET 0,B", c.Reg.BC.Hi(), 0x01)
	rig.step()
	requireEqualU8(t, "B after RES 0,B", c.Reg.BC.Hi(), 0x00)
}

func TestCBRLRotatesThroughCarry(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	c.Reg.BC.SetHi(0x80)
	c.Reg.SetFlag(FlagC, true)
	// CB 10 = RL B: carry-in (1) shifts into bit 0, bit 7 (1) becomes new carry.
	rig.load(0, false, []byte{0xCB, 0x10})
	rig.step()
	requireEqualU8(t, "B", c.Reg.BC.Hi(), 0x01)
	requireFlag(t, c, "C", FlagC, true)
}

func TestIndexedCBBit(t *testing.T) {
	rig := newTestRig()
	c := rig.cpu
	c.Reg.IX.SetWhole(0x4000)
	rig.bus.mem[0x4005] = 0x01 // bit 0 set
	// DD CB 05 46 = BIT 0,(IX+5)
	rig.load(0, false, []byte{0xDD, 0xCB, 0x05, 0x46})
	rig.step()
	requireFlag(t, c, "Z", FlagZ, false)
}
