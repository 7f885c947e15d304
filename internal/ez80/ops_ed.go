package ez80

// initEDMisc wires the classic ED x=1 page (0x40-0x7F): IN/OUT (C),
// ADC/SBC HL,rp, LD (nn),rp / LD rp,(nn), NEG, RETN/RETI, IM, and the
// I/R/RRD/RLD misc group — plus the eZ80 extensions that reuse ED's
// otherwise-undefined opcode space (LEA, PEA, TST, MLT, STMIX/RSMIX,
// LD MB,A, SLP), per spec §4.4/§4.5. IN0/OUT0 are not wired and trap. Grounded on the teacher's ED
// dispatch shape (cpu_z80.go initBaseOps ED section), extended with the
// eZ80 operations spec.md names; exact opcode slots for the eZ80-only
// additions are a schematic best-effort placement (the authoritative
// Zilog eZ80 opcode table was not present in the reference pack) and are
// recorded as such in the design ledger.
func initEDMisc(ops []opFunc) {
	for row := byte(0); row < 8; row++ {
		base := 0x40 + int(row)*8
		ops[base+0] = edInReg(row)
		ops[base+1] = edOutReg(row)
		p := row >> 1
		if row&1 == 0 {
			ops[base+2] = edSbcHL(p)
		} else {
			ops[base+2] = edAdcHL(p)
		}
		if row&1 == 0 {
			ops[base+3] = edLdMemRp(p)
		} else {
			ops[base+3] = edLdRpMem(p)
		}
		ops[base+4] = opNEG
		ops[base+5] = edRetNI(row)
		ops[base+6] = edIM(row)
		ops[base+7] = edMiscRow(row)
	}

	// eZ80 extensions. A few slots in 0x40-0x7F that classic Z80 leaves as
	// redundant NEG/RETN/IM aliases are reused here for TST/MLT/STMIX/RSMIX/
	// SLP, matching the real eZ80's own reuse of those aliases; the rest
	// (LEA, PEA, LD MB,A) live in the 0x80-0xFF region classic Z80 leaves
	// entirely undefined.
	ops[0xC2] = edLEA(0)
	ops[0xC3] = edLEA(1)
	ops[0xC4] = edLEA(2)
	ops[0xD4] = edPEA()
	ops[0x64] = edTST() // TST A,n shares its row with NEG historically; override explicitly
	ops[0x6C] = edMLT(2)
	ops[0x4C] = edMLT(0)
	ops[0x5C] = edMLT(1)
	ops[0x7D] = edSTMIX()
	ops[0x7C] = edRSMIX()
	ops[0x76] = func(c *CPU) { c.Cycles++ } // SLP: a no-op costing one cycle; sleep is not modelled
	ops[0xC7] = edLDMBA()
	ops[0xED] = edLEAIX()
}

func edInReg(y byte) opFunc {
	return func(c *CPU) {
		v := c.readPort(c.Reg.BC.Word())
		c.Reg.F = sz53pTable[v] | (c.Reg.F & FlagC)
		if y != 6 {
			c.writeR8(y, v)
		}
	}
}

func edOutReg(y byte) opFunc {
	return func(c *CPU) {
		v := byte(0)
		if y != 6 {
			v = c.readR8(y)
		}
		c.writePort(c.Reg.BC.Word(), v)
	}
}

func edSbcHL(p byte) opFunc { return func(c *CPU) { sbc24(c, p) } }
func edAdcHL(p byte) opFunc { return func(c *CPU) { adc24(c, p) } }

func edLdMemRp(p byte) opFunc {
	return func(c *CPU) { c.ldMemRp(c.rpValuePtr(p)) }
}

func edLdRpMem(p byte) opFunc {
	return func(c *CPU) { c.ldRpMem(c.rpValuePtr(p)) }
}

// rpValuePtr resolves rp[p] including SP, returning a *pair (SP itself has
// no pair storage when !L; the ED (nn),SP forms always use the 24-bit long
// SP register, matching the teacher's single physical SP widened here).
func (c *CPU) rpValuePtr(p byte) *pair {
	switch p {
	case 0:
		return &c.Reg.BC
	case 1:
		return &c.Reg.DE
	case 2:
		return &c.Reg.HL
	default:
		return &c.Reg.SPL
	}
}

func opNEG(c *CPU) {
	a := c.Reg.A
	r := byte(0) - a
	c.Reg.SetFlag(FlagS, sign8(r))
	c.Reg.SetFlag(FlagZ, r == 0)
	c.Reg.SetFlag(FlagH, halfCarrySub8(0, a, 0))
	c.Reg.SetFlag(FlagPV, a == 0x80)
	c.Reg.SetFlag(FlagN, true)
	c.Reg.SetFlag(FlagC, a != 0)
	c.Reg.SetFlag(FlagX, r&FlagX != 0)
	c.Reg.SetFlag(FlagY, r&FlagY != 0)
	c.Reg.A = r
}

func edRetNI(row byte) opFunc {
	return func(c *CPU) {
		c.IEF1 = c.IEF2
		target := c.popCallFrame()
		c.Flush(target, c.ADL)
	}
}

func edIM(row byte) opFunc {
	im := [8]byte{0, 0, 1, 2, 0, 0, 1, 2}[row]
	return func(c *CPU) { c.IM = im }
}

func edMiscRow(row byte) opFunc {
	switch row {
	case 0:
		return func(c *CPU) { c.Reg.I = c.Reg.A }
	case 1:
		return func(c *CPU) { c.Reg.R = c.Reg.A }
	case 2:
		return func(c *CPU) {
			c.Reg.A = c.Reg.I
			c.Reg.SetFlag(FlagS, sign8(c.Reg.A))
			c.Reg.SetFlag(FlagZ, c.Reg.A == 0)
			c.Reg.SetFlag(FlagH, false)
			c.Reg.SetFlag(FlagPV, c.IEF2)
			c.Reg.SetFlag(FlagN, false)
		}
	case 3:
		return func(c *CPU) {
			c.Reg.A = c.Reg.R
			c.Reg.SetFlag(FlagS, sign8(c.Reg.A))
			c.Reg.SetFlag(FlagZ, c.Reg.A == 0)
			c.Reg.SetFlag(FlagH, false)
			c.Reg.SetFlag(FlagPV, c.IEF2)
			c.Reg.SetFlag(FlagN, false)
		}
	case 4:
		return opRRD
	case 5:
		return opRLD
	default:
		return opNOP
	}
}

func opRRD(c *CPU) {
	addr := c.Reg.HL.Masked(c.L)
	m := c.readData(addr)
	a := c.Reg.A
	newA := a&0xF0 | m&0x0F
	newM := a<<4 | m>>4
	c.Reg.A = newA
	c.writeData(addr, newM)
	c.Reg.F = sz53pTable[newA] | (c.Reg.F & FlagC)
}

func opRLD(c *CPU) {
	addr := c.Reg.HL.Masked(c.L)
	m := c.readData(addr)
	a := c.Reg.A
	newA := a&0xF0 | m>>4
	newM := m<<4 | a&0x0F
	c.Reg.A = newA
	c.writeData(addr, newM)
	c.Reg.F = sz53pTable[newA] | (c.Reg.F & FlagC)
}

// edDisplacedAddr always fetches a displacement byte and adds it to the
// base register, unlike indexAddress() (which only fetches a displacement
// when PREFIX selects IX/IY). LEA/PEA are index-register instructions on
// real silicon encoded as DD/FD ED xx; since ED unconditionally cancels
// any pending DD/FD in this core (spec §4.5 "ED prefix cancels any
// pending DD/FD"), their base here is always HL — a simplification
// rather than a genuine IX/IY-relative load effective address.
func (c *CPU) edDisplacedAddr() uint32 {
	d := int64(c.FetchOffset())
	return mask(uint32(int64(c.Reg.HL.Masked(c.L))+d), c.L)
}

// edLEA implements LEA rp, HL+d: rp in {BC,DE,HL} gets the displaced
// address, without touching memory or flags.
func edLEA(p byte) opFunc {
	return func(c *CPU) {
		addr := c.edDisplacedAddr()
		c.rpValuePtr(p).SetMasked(addr, c.L)
	}
}

func edLEAIX() opFunc {
	return func(c *CPU) {
		addr := c.edDisplacedAddr()
		c.Reg.IX.SetMasked(addr, c.L)
	}
}

// edPEA implements PEA HL+d: push the displaced address.
func edPEA() opFunc {
	return func(c *CPU) {
		addr := c.edDisplacedAddr()
		c.pushAddr(addr)
	}
}

// edTST implements TST A,n: AND A,n for flags only, A unchanged.
func edTST() opFunc {
	return func(c *CPU) {
		n := c.FetchByte()
		r := c.Reg.A & n
		c.Reg.F = sz53pTable[r] | FlagH
	}
}

// edMLT implements MLT rp: rp := high(rp) * low(rp), an unsigned 8x8
// multiply folded into the low word of rp. No flags affected.
func edMLT(p byte) opFunc {
	return func(c *CPU) {
		rp := c.rpValuePtr(p)
		prod := uint16(rp.Hi()) * uint16(rp.Lo())
		rp.SetWord(prod)
	}
}

func edSTMIX() opFunc { return func(c *CPU) { c.MADL = true } }
func edRSMIX() opFunc { return func(c *CPU) { c.MADL = false } }
func edLDMBA() opFunc { return func(c *CPU) { c.Reg.MBASE = c.Reg.A } }
