package ez80

// opCB enters the CB page (spec §4.5): under a live PREFIX, the index
// address is computed first (consuming the displacement byte) and
// latched, per the DD/FD CB d op wire order; the CB opcode is fetched
// second. Grounded on the teacher's CB-dispatch, generalized to the
// shared primaryOps/cbOps tables instead of per-prefix duplicates.
func opCB(c *CPU) {
	if c.Prefix != PrefixNone {
		c.cbAddr = c.indexAddress()
	}
	op := c.FetchOpcode()
	c.cbOps[op](c)
}

// cbOperand/cbWriteOperand resolve the CB page's z operand. Under a live
// PREFIX, z is ignored and the latched (IX/IY+d) address is always used —
// this intentionally drops the undocumented "also copies to register z"
// behavior of DD/FD CB on real silicon, which spec.md does not name
// (Open Question decision, see DESIGN.md).
func (c *CPU) cbOperand(z byte) byte {
	if c.Prefix != PrefixNone {
		return c.readData(c.cbAddr)
	}
	return c.readR8(z)
}

func (c *CPU) cbWriteOperand(z byte, v byte) {
	if c.Prefix != PrefixNone {
		c.writeData(c.cbAddr, v)
		return
	}
	c.writeR8(z, v)
}

func cbRotOp(y, z byte) opFunc {
	fn := [8]func(*CPU, byte) (byte, bool){rlc8, rrc8, rl8, rr8, sla8, sra8, sll8, srl8}[y]
	return func(c *CPU) {
		v := c.cbOperand(z)
		r, carry := fn(c, v)
		c.Reg.F = sz53pTable[r] | boolFlag(carry, FlagC)
		c.cbWriteOperand(z, r)
	}
}

func cbBitOp(y, z byte) opFunc {
	bit := byte(1) << y
	return func(c *CPU) {
		v := c.cbOperand(z)
		set := v&bit != 0
		c.Reg.SetFlag(FlagZ, !set)
		c.Reg.SetFlag(FlagPV, !set)
		c.Reg.SetFlag(FlagH, true)
		c.Reg.SetFlag(FlagN, false)
		c.Reg.SetFlag(FlagS, y == 7 && set)
		c.Reg.SetFlag(FlagX, v&FlagX != 0)
		c.Reg.SetFlag(FlagY, v&FlagY != 0)
	}
}

func cbResOp(y, z byte) opFunc {
	bit := ^(byte(1) << y)
	return func(c *CPU) {
		v := c.cbOperand(z) & bit
		c.cbWriteOperand(z, v)
	}
}

func cbSetOp(y, z byte) opFunc {
	bit := byte(1) << y
	return func(c *CPU) {
		v := c.cbOperand(z) | bit
		c.cbWriteOperand(z, v)
	}
}

func rlc8(_ *CPU, v byte) (byte, bool) {
	carry := v&0x80 != 0
	return v<<1 | boolByte(carry), carry
}

func rrc8(_ *CPU, v byte) (byte, bool) {
	carry := v&1 != 0
	return v>>1 | boolByte(carry)<<7, carry
}

func rl8(c *CPU, v byte) (byte, bool) {
	carry := v&0x80 != 0
	return v<<1 | boolByte(c.Reg.Flag(FlagC)), carry
}

func rr8(c *CPU, v byte) (byte, bool) {
	carry := v&1 != 0
	return v>>1 | boolByte(c.Reg.Flag(FlagC))<<7, carry
}

func sla8(_ *CPU, v byte) (byte, bool) {
	carry := v&0x80 != 0
	return v << 1, carry
}

func sra8(_ *CPU, v byte) (byte, bool) {
	carry := v&1 != 0
	return v&0x80 | v>>1, carry
}

func sll8(_ *CPU, v byte) (byte, bool) {
	carry := v&0x80 != 0
	return v<<1 | 1, carry
}

func srl8(_ *CPU, v byte) (byte, bool) {
	carry := v&1 != 0
	return v >> 1, carry
}
