package ez80

// initEDBlock wires the ED x=2 block transfer/search/IO instructions
// (0xA0-0xBF): LDI/LDD/LDIR/LDDR, CPI/CPD/CPIR/CPDR, INI/IND/INIR/INDR,
// OUTI/OUTD/OTIR/OTDR, grounded on the teacher's block-instruction family
// (opLDI/opLDIR/opCPI/opCPIR/opINI/opINIR/opOUTI/opOTIR in cpu_z80.go),
// widened to operate on the current address width L throughout.
func initEDBlock(ops []opFunc) {
	ops[0xA0] = blockLD(1, false)
	ops[0xA8] = blockLD(-1, false)
	ops[0xB0] = blockLD(1, true)
	ops[0xB8] = blockLD(-1, true)

	ops[0xA1] = blockCP(1, false)
	ops[0xA9] = blockCP(-1, false)
	ops[0xB1] = blockCP(1, true)
	ops[0xB9] = blockCP(-1, true)

	ops[0xA2] = blockIN(1, false)
	ops[0xAA] = blockIN(-1, false)
	ops[0xB2] = blockIN(1, true)
	ops[0xBA] = blockIN(-1, true)

	ops[0xA3] = blockOUT(1, false)
	ops[0xAB] = blockOUT(-1, false)
	ops[0xB3] = blockOUT(1, true)
	ops[0xBB] = blockOUT(-1, true)
}

// blockLD implements LDI/LDD/LDIR/LDDR: copy (HL)->(DE), step both by dir,
// decrement BC, set flags, and repeat (adjusting PC back) while repeat &&
// BC!=0.
func blockLD(dir int32, repeat bool) opFunc {
	return func(c *CPU) {
		hl := c.rpPair(2)
		src := hl.Masked(c.L)
		v := c.readData(src)
		deP := &c.Reg.DE
		dst := deP.Masked(c.L)
		c.writeData(dst, v)
		hl.SetMasked(mask(uint32(int64(src)+int64(dir)), c.L), c.L)
		deP.SetMasked(mask(uint32(int64(dst)+int64(dir)), c.L), c.L)
		bc := &c.Reg.BC
		bcv := bc.Masked(c.L)
		bcv = mask(bcv-1, c.L)
		bc.SetMasked(bcv, c.L)

		n := v + c.Reg.A
		c.Reg.SetFlag(FlagH, false)
		c.Reg.SetFlag(FlagN, false)
		c.Reg.SetFlag(FlagPV, bcv != 0)
		c.Reg.SetFlag(FlagX, n&0x08 != 0)
		c.Reg.SetFlag(FlagY, n&0x02 != 0)

		if repeat && bcv != 0 {
			c.addToPC(-2)
			c.Cycles += 5
		}
	}
}

// blockCP implements CPI/CPD/CPIR/CPDR: compare A with (HL), step HL by
// dir, decrement BC, set flags, repeat while repeat && BC!=0 && !match.
func blockCP(dir int32, repeat bool) opFunc {
	return func(c *CPU) {
		hl := c.rpPair(2)
		addr := hl.Masked(c.L)
		v := c.readData(addr)
		hl.SetMasked(mask(uint32(int64(addr)+int64(dir)), c.L), c.L)
		bc := &c.Reg.BC
		bcv := mask(bc.Masked(c.L)-1, c.L)
		bc.SetMasked(bcv, c.L)

		a := c.Reg.A
		r := a - v
		halfBorrow := halfCarrySub8(a, v, 0)
		c.Reg.SetFlag(FlagS, sign8(r))
		c.Reg.SetFlag(FlagZ, r == 0)
		c.Reg.SetFlag(FlagH, halfBorrow)
		c.Reg.SetFlag(FlagN, true)
		c.Reg.SetFlag(FlagPV, bcv != 0)
		n := r
		if halfBorrow {
			n--
		}
		c.Reg.SetFlag(FlagX, n&0x08 != 0)
		c.Reg.SetFlag(FlagY, n&0x02 != 0)

		if repeat && bcv != 0 && r != 0 {
			c.addToPC(-2)
			c.Cycles += 5
		}
	}
}

// blockIN implements INI/IND/INIR/INDR: read (C) into (HL), step HL by
// dir, decrement B, repeat while repeat && B!=0.
func blockIN(dir int32, repeat bool) opFunc {
	return func(c *CPU) {
		v := c.readPort(c.Reg.BC.Word())
		hl := c.rpPair(2)
		addr := hl.Masked(c.L)
		c.writeData(addr, v)
		hl.SetMasked(mask(uint32(int64(addr)+int64(dir)), c.L), c.L)
		b := c.Reg.BC.Hi() - 1
		c.Reg.BC.SetHi(b)

		c.Reg.SetFlag(FlagZ, b == 0)
		c.Reg.SetFlag(FlagN, v&0x80 != 0)
		c.Reg.SetFlag(FlagS, sign8(b))
		c.Reg.SetFlag(FlagX, b&FlagX != 0)
		c.Reg.SetFlag(FlagY, b&FlagY != 0)

		if repeat && b != 0 {
			c.addToPC(-2)
			c.Cycles += 5
		}
	}
}

// blockOUT implements OUTI/OUTD/OTIR/OTDR: write (HL) to (C), step HL by
// dir, decrement B, repeat while repeat && B!=0.
func blockOUT(dir int32, repeat bool) opFunc {
	return func(c *CPU) {
		hl := c.rpPair(2)
		addr := hl.Masked(c.L)
		v := c.readData(addr)
		hl.SetMasked(mask(uint32(int64(addr)+int64(dir)), c.L), c.L)
		b := c.Reg.BC.Hi() - 1
		c.Reg.BC.SetHi(b)
		c.writePort(c.Reg.BC.Word(), v)

		c.Reg.SetFlag(FlagZ, b == 0)
		c.Reg.SetFlag(FlagN, v&0x80 != 0)
		c.Reg.SetFlag(FlagS, sign8(b))
		c.Reg.SetFlag(FlagX, b&FlagX != 0)
		c.Reg.SetFlag(FlagY, b&FlagY != 0)

		if repeat && b != 0 {
			c.addToPC(-2)
			c.Cycles += 5
		}
	}
}
