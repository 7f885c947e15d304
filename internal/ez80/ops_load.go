package ez80

// opNOP and friends: the x=0 block (control, 16-bit load/arith, 8-bit
// load/inc/dec, accumulator/misc flag ops). Grounded on the teacher's
// opNOP/opEXAFAF/opDJNZ/opJR/initBaseOps loop for x=0 (cpu_z80.go).

func opNOP(c *CPU) {}

func opEXAFAF(c *CPU) { c.Reg.ExAF() }

func opDJNZ(c *CPU) {
	d := c.FetchOffset()
	c.Reg.BC.SetHi(c.Reg.BC.Hi() - 1)
	if c.Reg.BC.Hi() != 0 {
		c.addToPC(int32(d))
		c.Cycles += 5
	}
}

func opJR(c *CPU) {
	d := c.FetchOffset()
	c.addToPC(int32(d))
}

// ccJR returns JR cc,d for y-4 in {0=NZ,1=Z,2=NC,3=C}.
func ccJR(cci byte) opFunc {
	return func(c *CPU) {
		d := c.FetchOffset()
		if condTrue(c, cci) {
			c.addToPC(int32(d))
			c.Cycles++
		}
	}
}

// condTrue evaluates cc[y] (spec §4.4): 0=NZ 1=Z 2=NC 3=C 4=PO 5=PE 6=P 7=M.
func condTrue(c *CPU, y byte) bool {
	switch y {
	case 0:
		return !c.Reg.Flag(FlagZ)
	case 1:
		return c.Reg.Flag(FlagZ)
	case 2:
		return !c.Reg.Flag(FlagC)
	case 3:
		return c.Reg.Flag(FlagC)
	case 4:
		return !c.Reg.Flag(FlagPV)
	case 5:
		return c.Reg.Flag(FlagPV)
	case 6:
		return !c.Reg.Flag(FlagS)
	default:
		return c.Reg.Flag(FlagS)
	}
}

func ldRpNN(p byte) opFunc {
	return func(c *CPU) {
		if p == 3 {
			c.Reg.SetSP(c.FetchWord(), c.L)
			return
		}
		c.rpPair(p).SetMasked(c.FetchWord(), c.L)
	}
}

func addHLRp(p byte) opFunc {
	return func(c *CPU) {
		dest := c.rpPair(2) // HL, or IX/IY under PREFIX
		var rhs uint32
		if p == 3 {
			rhs = c.Reg.SP(c.L)
		} else {
			rhs = c.rpPair(p).Masked(c.L)
		}
		a := dest.Masked(c.L)
		r := add24(a, rhs, false, c.L, &c.Reg)
		dest.SetMasked(r, c.L)
	}
}

// add24 performs the 16/24-bit addition of ADD HL,rp, updating H/N/C and
// X/Y and leaving S/Z/PV untouched; ADC HL,rp and SBC HL,rp use adc24 and
// sbc24 below, which also set S/Z/PV.
func add24(a, b uint32, carryIn bool, l bool, r *Registers) uint32 {
	var cin uint32
	if carryIn {
		cin = 1
	}
	sum := a + b + cin
	res := mask(sum, l)
	r.SetFlag(FlagH, halfCarryAddW(a, b, cin, l))
	r.SetFlag(FlagN, false)
	r.SetFlag(FlagC, carryOutAddW(a, b, cin, l))
	top := topByte(res, l)
	r.SetFlag(FlagX, top&FlagX != 0)
	r.SetFlag(FlagY, top&FlagY != 0)
	return res
}

func carryOutAddW(a, b, cin uint32, l bool) bool {
	return (a + b + cin) > fullMask(l)
}

func fullMask(l bool) uint32 {
	if l {
		return 0xFFFFFF
	}
	return 0xFFFF
}

func adc24(c *CPU, p byte) {
	dest := &c.Reg.HL
	a := dest.Masked(c.L)
	b := c.rpValueIncSP(p)
	sum := uint64(a) + uint64(b)
	if c.Reg.Flag(FlagC) {
		sum++
	}
	res := mask(uint32(sum), c.L)
	c.Reg.SetFlag(FlagH, halfCarryAddW(a, b, boolBit(c.Reg.Flag(FlagC)), c.L))
	c.Reg.SetFlag(FlagC, sum > uint64(fullMask(c.L)))
	c.Reg.SetFlag(FlagN, false)
	c.Reg.SetFlag(FlagS, signW(res, c.L))
	c.Reg.SetFlag(FlagZ, zeroW(res, c.L))
	c.Reg.SetFlag(FlagPV, overflowAddW(a, b, res, c.L))
	c.Reg.SetFlag(FlagX, topByte(res, c.L)&FlagX != 0)
	c.Reg.SetFlag(FlagY, topByte(res, c.L)&FlagY != 0)
	dest.SetMasked(res, c.L)
}

func sbc24(c *CPU, p byte) {
	dest := &c.Reg.HL
	a := dest.Masked(c.L)
	b := c.rpValueIncSP(p)
	borrowIn := boolBit(c.Reg.Flag(FlagC))
	diff := int64(a) - int64(b) - int64(borrowIn)
	res := mask(uint32(diff), c.L)
	c.Reg.SetFlag(FlagH, halfCarrySubW(a, b, borrowIn, c.L))
	c.Reg.SetFlag(FlagC, diff < 0)
	c.Reg.SetFlag(FlagN, true)
	c.Reg.SetFlag(FlagS, signW(res, c.L))
	c.Reg.SetFlag(FlagZ, zeroW(res, c.L))
	c.Reg.SetFlag(FlagPV, overflowSubW(a, b, res, c.L))
	c.Reg.SetFlag(FlagX, topByte(res, c.L)&FlagX != 0)
	c.Reg.SetFlag(FlagY, topByte(res, c.L)&FlagY != 0)
	dest.SetMasked(res, c.L)
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// rpValueIncSP reads rp[p] including the SP case, for the ED-page
// ADC/SBC HL,rp family (p==3 is always SP, never an index register).
func (c *CPU) rpValueIncSP(p byte) uint32 {
	if p == 3 {
		return c.Reg.SP(c.L)
	}
	switch p {
	case 0:
		return c.Reg.BC.Masked(c.L)
	case 1:
		return c.Reg.DE.Masked(c.L)
	default:
		return c.Reg.HL.Masked(c.L)
	}
}

func indirectLDOp(y byte) opFunc {
	switch y {
	case 0:
		return func(c *CPU) { c.writeData(c.Reg.BC.Masked(c.L), c.Reg.A) }
	case 1:
		return func(c *CPU) { c.Reg.A = c.readData(c.Reg.BC.Masked(c.L)) }
	case 2:
		return func(c *CPU) { c.writeData(c.Reg.DE.Masked(c.L), c.Reg.A) }
	case 3:
		return func(c *CPU) { c.Reg.A = c.readData(c.Reg.DE.Masked(c.L)) }
	case 4:
		return func(c *CPU) { c.ldMemRp(c.rpPair(2)) }
	case 5:
		return func(c *CPU) { c.ldRpMem(c.rpPair(2)) }
	case 6:
		return func(c *CPU) {
			addr := c.FetchWord()
			c.writeData(addr, c.Reg.A)
			if c.ADL {
				c.Reg.MBASE = byte(addr >> 16)
			}
		}
	default:
		return func(c *CPU) {
			addr := c.FetchWord()
			c.Reg.A = c.readData(addr)
			if c.ADL {
				c.Reg.MBASE = byte(addr >> 16)
			}
		}
	}
}

// ldMemRp implements LD (nn),rp: fetch an address, store rp there using
// the current data width (2 or 3 bytes), spec §4.4/§8.
func (c *CPU) ldMemRp(rp *pair) {
	addr := c.FetchWord()
	v := rp.Masked(c.L)
	c.writeData(addr, byte(v))
	c.writeData(addr+1, byte(v>>8))
	if c.L {
		c.writeData(addr+2, byte(v>>16))
	}
}

func (c *CPU) ldRpMem(rp *pair) {
	addr := c.FetchWord()
	lo := c.readData(addr)
	hi := c.readData(addr + 1)
	v := uint32(hi)<<8 | uint32(lo)
	if c.L {
		up := c.readData(addr + 2)
		v |= uint32(up) << 16
	}
	rp.SetMasked(v, c.L)
}

func incRp(p byte) opFunc {
	return func(c *CPU) {
		if p == 3 {
			c.Reg.SetSP(mask(c.Reg.SP(c.L)+1, c.L), c.L)
			return
		}
		rp := c.rpPair(p)
		rp.SetMasked(mask(rp.Masked(c.L)+1, c.L), c.L)
	}
}

func decRp(p byte) opFunc {
	return func(c *CPU) {
		if p == 3 {
			c.Reg.SetSP(mask(c.Reg.SP(c.L)-1, c.L), c.L)
			return
		}
		rp := c.rpPair(p)
		rp.SetMasked(mask(rp.Masked(c.L)-1, c.L), c.L)
	}
}

func incR8(y byte) opFunc {
	return func(c *CPU) {
		v := c.readR8(y)
		r := v + 1
		c.Reg.SetFlag(FlagS, sign8(r))
		c.Reg.SetFlag(FlagZ, r == 0)
		c.Reg.SetFlag(FlagH, v&0xF == 0xF)
		c.Reg.SetFlag(FlagPV, v == 0x7F)
		c.Reg.SetFlag(FlagN, false)
		c.Reg.SetFlag(FlagX, r&FlagX != 0)
		c.Reg.SetFlag(FlagY, r&FlagY != 0)
		c.writeR8(y, r)
	}
}

func decR8(y byte) opFunc {
	return func(c *CPU) {
		v := c.readR8(y)
		r := v - 1
		c.Reg.SetFlag(FlagS, sign8(r))
		c.Reg.SetFlag(FlagZ, r == 0)
		c.Reg.SetFlag(FlagH, v&0xF == 0)
		c.Reg.SetFlag(FlagPV, v == 0x80)
		c.Reg.SetFlag(FlagN, true)
		c.Reg.SetFlag(FlagX, r&FlagX != 0)
		c.Reg.SetFlag(FlagY, r&FlagY != 0)
		c.writeR8(y, r)
	}
}

func ldR8N(y byte) opFunc {
	return func(c *CPU) {
		n := c.FetchByte()
		c.writeR8(y, n)
	}
}

func ldRR(y, z byte) opFunc {
	return func(c *CPU) {
		if y == 6 || z == 6 {
			c.writeR8NoSub(y, c.readR8NoSub(z))
			return
		}
		c.writeR8(y, c.readR8(z))
	}
}

func opHALT(c *CPU) { c.Halted = true }

// rotShiftAccOrMisc is x=0,z=7: RLCA/RRCA/RLA/RRA/DAA/CPL/SCF/CCF. Under a
// non-zero PREFIX, the whole y range is reinterpreted as the eZ80 24-bit
// "LD (IX/IY+d), rp3 / LD rp3, (IX/IY+d)" family (spec §4.5): p=(y>>1)
// selects rp3, q=y&1 selects direction. At p==3, rp3 names the very index
// register PREFIX is already using, so e.g. DD 37 becomes a (harmless,
// self-referential) LD (IX+d),IX.
func rotShiftAccOrMisc(y byte) opFunc {
	plain := [8]opFunc{opRLCA, opRRCA, opRLA, opRRA, opDAA, opCPL, opSCF, opCCF}[y]
	p := y >> 1
	q := y & 1
	return func(c *CPU) {
		if c.Prefix == PrefixNone {
			plain(c)
			return
		}
		addr := c.indexAddress()
		rp := c.rp3Pair(p)
		if q == 0 {
			v := rp.Masked(c.L)
			c.writeData(addr, byte(v))
			c.writeData(addr+1, byte(v>>8))
			if c.L {
				c.writeData(addr+2, byte(v>>16))
			}
		} else {
			lo := c.readData(addr)
			hi := c.readData(addr + 1)
			v := uint32(hi)<<8 | uint32(lo)
			if c.L {
				up := c.readData(addr + 2)
				v |= uint32(up) << 16
			}
			rp.SetMasked(v, c.L)
		}
	}
}

func opRLCA(c *CPU) {
	a := c.Reg.A
	carry := a&0x80 != 0
	r := a<<1 | boolByte(carry)
	c.Reg.A = r
	c.Reg.SetFlag(FlagC, carry)
	c.Reg.SetFlag(FlagH, false)
	c.Reg.SetFlag(FlagN, false)
	c.Reg.SetFlag(FlagX, r&FlagX != 0)
	c.Reg.SetFlag(FlagY, r&FlagY != 0)
}

func opRRCA(c *CPU) {
	a := c.Reg.A
	carry := a&1 != 0
	r := a>>1 | boolByte(carry)<<7
	c.Reg.A = r
	c.Reg.SetFlag(FlagC, carry)
	c.Reg.SetFlag(FlagH, false)
	c.Reg.SetFlag(FlagN, false)
	c.Reg.SetFlag(FlagX, r&FlagX != 0)
	c.Reg.SetFlag(FlagY, r&FlagY != 0)
}

func opRLA(c *CPU) {
	a := c.Reg.A
	oldCarry := boolByte(c.Reg.Flag(FlagC))
	carry := a&0x80 != 0
	r := a<<1 | oldCarry
	c.Reg.A = r
	c.Reg.SetFlag(FlagC, carry)
	c.Reg.SetFlag(FlagH, false)
	c.Reg.SetFlag(FlagN, false)
	c.Reg.SetFlag(FlagX, r&FlagX != 0)
	c.Reg.SetFlag(FlagY, r&FlagY != 0)
}

func opRRA(c *CPU) {
	a := c.Reg.A
	oldCarry := boolByte(c.Reg.Flag(FlagC))
	carry := a&1 != 0
	r := a>>1 | oldCarry<<7
	c.Reg.A = r
	c.Reg.SetFlag(FlagC, carry)
	c.Reg.SetFlag(FlagH, false)
	c.Reg.SetFlag(FlagN, false)
	c.Reg.SetFlag(FlagX, r&FlagX != 0)
	c.Reg.SetFlag(FlagY, r&FlagY != 0)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// opDAA adjusts A after a BCD add/sub, reading N/C/H from F per the
// standard Z80 correction table (grounded on the teacher's opDAA).
func opDAA(c *CPU) {
	a := c.Reg.A
	n := c.Reg.Flag(FlagN)
	carry := c.Reg.Flag(FlagC)
	halfCarry := c.Reg.Flag(FlagH)
	corr := byte(0)
	newCarry := carry
	if halfCarry || (!n && a&0xF > 9) {
		corr |= 0x06
	}
	if carry || (!n && a > 0x99) {
		corr |= 0x60
		newCarry = true
	}
	var r byte
	if n {
		r = a - corr
	} else {
		r = a + corr
	}
	newHalf := false
	if n {
		newHalf = halfCarry && a&0xF < 6
	} else {
		newHalf = a&0xF > 9
	}
	c.Reg.A = r
	c.Reg.SetFlag(FlagS, sign8(r))
	c.Reg.SetFlag(FlagZ, r == 0)
	c.Reg.SetFlag(FlagH, newHalf)
	c.Reg.SetFlag(FlagPV, parity8(r))
	c.Reg.SetFlag(FlagC, newCarry)
	c.Reg.SetFlag(FlagX, r&FlagX != 0)
	c.Reg.SetFlag(FlagY, r&FlagY != 0)
}

func opCPL(c *CPU) {
	c.Reg.A = ^c.Reg.A
	c.Reg.SetFlag(FlagH, true)
	c.Reg.SetFlag(FlagN, true)
	c.Reg.SetFlag(FlagX, c.Reg.A&FlagX != 0)
	c.Reg.SetFlag(FlagY, c.Reg.A&FlagY != 0)
}

func opSCF(c *CPU) {
	c.Reg.SetFlag(FlagC, true)
	c.Reg.SetFlag(FlagH, false)
	c.Reg.SetFlag(FlagN, false)
	c.Reg.SetFlag(FlagX, c.Reg.A&FlagX != 0)
	c.Reg.SetFlag(FlagY, c.Reg.A&FlagY != 0)
}

func opCCF(c *CPU) {
	oldC := c.Reg.Flag(FlagC)
	c.Reg.SetFlag(FlagH, oldC)
	c.Reg.SetFlag(FlagC, !oldC)
	c.Reg.SetFlag(FlagN, false)
	c.Reg.SetFlag(FlagX, c.Reg.A&FlagX != 0)
	c.Reg.SetFlag(FlagY, c.Reg.A&FlagY != 0)
}
