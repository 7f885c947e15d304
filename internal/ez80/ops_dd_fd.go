package ez80

// suffixOp implements the SIS/LIS/SIL/LIL width-suffix opcodes (spec
// §4.5): latch SUFFIX, override L/IL for exactly the next real
// instruction, and recurse into it directly so the scheduler's
// post-instruction reset (which clears SUFFIX/PREFIX) fires only once,
// after the whole chain — the same recursive-chaining shape used for
// DD/FD/ED (decode.go, ops_control.go's pushMiscOp).
func suffixOp(s byte) opFunc {
	return func(c *CPU) {
		c.Suffix = s
		c.applySuffixWidths()
		c.dispatchNext()
	}
}

// otherIndexPair returns the index register PREFIX is *not* currently
// selecting: IY when PREFIX=DD, IX when PREFIX=FD (spec §4.5 cross-index
// transfers). Only meaningful when PREFIX is set; callers guard on that.
func (c *CPU) otherIndexPair() *pair {
	if c.Prefix == PrefixFD {
		return &c.Reg.IX
	}
	return &c.Reg.IY
}

// opLDIndirectOtherIndex is opcode 0x31: plain LD SP,nn when unprefixed;
// under PREFIX, LD (IX/IY+d), IY-or-IX (the other index register; spec
// §4.5, "LD (IX+d), IY").
func opLDIndirectOtherIndex(c *CPU) {
	if c.Prefix == PrefixNone {
		c.Reg.SetSP(c.FetchWord(), c.L)
		return
	}
	addr := c.indexAddress()
	v := c.otherIndexPair().Masked(c.L)
	c.writeData(addr, byte(v))
	c.writeData(addr+1, byte(v>>8))
	if c.L {
		c.writeData(addr+2, byte(v>>16))
	}
}

// opLDOtherIndexIndirect is opcode 0x3E: plain LD A,n when unprefixed;
// under PREFIX, LD IY-or-IX, (IX/IY+d) (spec §4.5, "LD IY,(IX+d)").
func opLDOtherIndexIndirect(c *CPU) {
	if c.Prefix == PrefixNone {
		c.Reg.A = c.FetchByte()
		return
	}
	addr := c.indexAddress()
	lo := c.readData(addr)
	hi := c.readData(addr + 1)
	v := uint32(hi)<<8 | uint32(lo)
	if c.L {
		up := c.readData(addr + 2)
		v |= uint32(up) << 16
	}
	c.otherIndexPair().SetMasked(v, c.L)
}

// initEDExtra wires the ED extras spec §4.5/§6 names: the eZ80
// INIRX/OTIRX/INDRX/OTDRX "X" block variants (DE as the alternate
// pointer, repeat governed by B alone), LD I,HL / LD HL,I, and the
// emulator-internal flash-page-erase extension. Exact opcode placement
// for the "X" family and LD I,HL/LD HL,I is a schematic best-effort
// assignment (the authoritative Zilog eZ80 opcode table was not present
// in the reference pack): LD I,HL/LD HL,I and the flash erase sit in the
// x=3 region (0xC0, 0xC1, 0xEE), the "X" family in unused slots of the
// x=2 block grid (0xA4, 0xAC, 0xB4, 0xBC).
func initEDExtra(ops []opFunc) {
	ops[0xC0] = edLDIHL()
	ops[0xC1] = edLDHLI()
	ops[0xA4] = edBlockX(1, true)  // INIRX-style: (DE)->(HL), both advance
	ops[0xB4] = edBlockX(1, false) // OTIRX-style: (HL)->(DE)
	ops[0xAC] = edBlockX(-1, true) // INDRX-style
	ops[0xBC] = edBlockX(-1, false)
	ops[0xEE] = edFlashErase // flash erase: reached by the byte pair ED EE; see dispatch note below
}

// edFlashErase implements the "ED C3 EE" emulator extension named in
// spec §4.5/§6/§9: erase the 16KiB Flash page containing HL. It is gated
// on the Bus optionally implementing FlashEraser (probed in cpu.go's
// New), matching spec §9's "keep behind a feature gate named explicitly";
// without it the opcode traps (IEFWait set).
// Dispatch note: this is ED page slot 0xEE, so the two bytes ED EE run
// it. ED page slot 0xC3 is LEA DE (initEDMisc), so the three-byte
// sequence ED C3 EE runs LEA DE,HL+d with d=0xEE, not this erase.
func edFlashErase(c *CPU) {
	if c.flash == nil {
		c.IEFWait = true
		return
	}
	addr := c.Reg.HL.Masked(c.L) &^ 0x3FFF
	c.flash.EraseFlashPage(addr)
}

func edLDIHL() opFunc {
	return func(c *CPU) { c.Reg.I = c.Reg.HL.Lo() }
}

func edLDHLI() opFunc {
	return func(c *CPU) { c.Reg.HL.SetMasked(uint32(c.Reg.I), c.L) }
}

// edBlockX implements the eZ80 "X" block-transfer variants named in spec
// §4.5's "2-variants" note: like LDI/LDIR but addressing DE as the
// secondary pointer on both sides (in: (DE)->(HL); out: (HL)->(DE)),
// stepping both by dir, BC decremented via cpu_dec_bc_partial_mode but the
// repeat condition tested on B alone rather than all of BC.
func edBlockX(dir int32, in bool) opFunc {
	return func(c *CPU) {
		hl := c.rpPair(2)
		de := &c.Reg.DE
		if in {
			v := c.readData(de.Masked(c.L))
			c.writeData(hl.Masked(c.L), v)
		} else {
			v := c.readData(hl.Masked(c.L))
			c.writeData(de.Masked(c.L), v)
		}
		hl.SetMasked(mask(uint32(int64(hl.Masked(c.L))+int64(dir)), c.L), c.L)
		de.SetMasked(mask(uint32(int64(de.Masked(c.L))+int64(dir)), c.L), c.L)
		c.decBCPartial()
		if c.Reg.BC.Hi() != 0 {
			c.addToPC(-2)
			c.Cycles += 5
		}
	}
}

// decBCPartial implements cpu_dec_bc_partial_mode (spec §4.5): BC := BC-1
// masked by L; if L=0, only the low 16 bits (BCS) are written back, the
// upper byte of the 24-bit pair left untouched.
func (c *CPU) decBCPartial() {
	if c.L {
		c.Reg.BC.SetWhole((c.Reg.BC.Whole() - 1) & 0xFFFFFF)
		return
	}
	c.Reg.BC.SetWord(c.Reg.BC.Word() - 1)
}
