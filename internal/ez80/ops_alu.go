package ez80

// aluOp implements x=2 (ALU a,r[z]) and aluImmOp implements x=3,z=6 (ALU
// a,n). Both funnel through aluApply, grounded on the teacher's
// performALU/aluOp-enum dispatch (cpu_z80.go).
func aluOp(y, z byte) opFunc {
	return func(c *CPU) { aluApply(c, y, c.readR8(z)) }
}

func aluImmOp(y byte) opFunc {
	return func(c *CPU) { aluApply(c, y, c.FetchByte()) }
}

// aluApply performs ADD/ADC/SUB/SBC/AND/XOR/OR/CP a,v per the y selector
// (0..7), updating F and A (CP updates F only).
func aluApply(c *CPU, y byte, v byte) {
	a := c.Reg.A
	switch y {
	case 0: // ADD
		r := a + v
		setAddFlags(c, a, v, r, 0)
		c.Reg.A = r
	case 1: // ADC
		cin := boolByte(c.Reg.Flag(FlagC))
		r := a + v + cin
		setAddFlags(c, a, v, r, cin)
		c.Reg.A = r
	case 2: // SUB
		r := a - v
		setSubFlags(c, a, v, r, 0)
		c.Reg.A = r
	case 3: // SBC
		cin := boolByte(c.Reg.Flag(FlagC))
		r := a - v - cin
		setSubFlags(c, a, v, r, cin)
		c.Reg.A = r
	case 4: // AND
		r := a & v
		c.Reg.A = r
		c.Reg.F = sz53pTable[r] | FlagH
	case 5: // XOR
		r := a ^ v
		c.Reg.A = r
		c.Reg.F = sz53pTable[r]
	case 6: // OR
		r := a | v
		c.Reg.A = r
		c.Reg.F = sz53pTable[r]
	default: // CP: like SUB but A unchanged, X/Y come from the operand not the result
		r := a - v
		setSubFlags(c, a, v, r, 0)
		c.Reg.F = c.Reg.F&^(FlagX|FlagY) | (v & (FlagX | FlagY))
	}
}

func setAddFlags(c *CPU, a, v, r, cin byte) {
	c.Reg.F = sz53Table[r] |
		boolFlag(halfCarryAdd8(a, v, cin), FlagH) |
		boolFlag(overflowAdd8(a, v, r), FlagPV) |
		boolFlag(uint16(a)+uint16(v)+uint16(cin) > 0xFF, FlagC)
}

func setSubFlags(c *CPU, a, v, r, cin byte) {
	c.Reg.F = sz53Table[r] |
		boolFlag(halfCarrySub8(a, v, cin), FlagH) |
		boolFlag(overflowSub8(a, v, r), FlagPV) |
		FlagN |
		boolFlag(int16(a)-int16(v)-int16(cin) < 0, FlagC)
}

func boolFlag(b bool, f byte) byte {
	if b {
		return f
	}
	return 0
}
