package ez80

// Register-index tables from spec §4.4. cc[y] is expressed as the
// condTrue function in ops_load.go since it depends on F.

// indexAddress implements cpu_index_address(): HL when PREFIX==0,
// otherwise (IX or IY) + a freshly-fetched signed displacement, masked to
// the current data width.
func (c *CPU) indexAddress() uint32 {
	if c.Prefix == PrefixNone {
		return c.Reg.HL.Masked(c.L)
	}
	base := c.Reg.IX.Masked(c.L)
	if c.Prefix == PrefixFD {
		base = c.Reg.IY.Masked(c.L)
	}
	d := int64(c.FetchOffset())
	return mask(uint32(int64(base)+d), c.L)
}

// indexHigh/indexLow/setIndexHigh/setIndexLow resolve r[z] codes 4 and 5,
// substituting IX/IY's halves under PREFIX (spec §4.4).
func (c *CPU) indexHigh() byte {
	switch c.Prefix {
	case PrefixDD:
		return c.Reg.IX.Hi()
	case PrefixFD:
		return c.Reg.IY.Hi()
	default:
		return c.Reg.HL.Hi()
	}
}

func (c *CPU) indexLow() byte {
	switch c.Prefix {
	case PrefixDD:
		return c.Reg.IX.Lo()
	case PrefixFD:
		return c.Reg.IY.Lo()
	default:
		return c.Reg.HL.Lo()
	}
}

func (c *CPU) setIndexHigh(v byte) {
	switch c.Prefix {
	case PrefixDD:
		c.Reg.IX.SetHi(v)
	case PrefixFD:
		c.Reg.IY.SetHi(v)
	default:
		c.Reg.HL.SetHi(v)
	}
}

func (c *CPU) setIndexLow(v byte) {
	switch c.Prefix {
	case PrefixDD:
		c.Reg.IX.SetLo(v)
	case PrefixFD:
		c.Reg.IY.SetLo(v)
	default:
		c.Reg.HL.SetLo(v)
	}
}

// readR8/writeR8 resolve r[z] with full index substitution: codes 4/5
// read/write IXh/IXl or IYh/IYl under PREFIX, code 6 reads/writes through
// the displaced (or plain HL) address.
func (c *CPU) readR8(code byte) byte {
	switch code {
	case 0:
		return c.Reg.BC.Hi()
	case 1:
		return c.Reg.BC.Lo()
	case 2:
		return c.Reg.DE.Hi()
	case 3:
		return c.Reg.DE.Lo()
	case 4:
		return c.indexHigh()
	case 5:
		return c.indexLow()
	case 6:
		return c.readData(c.indexAddress())
	default:
		return c.Reg.A
	}
}

func (c *CPU) writeR8(code byte, v byte) {
	switch code {
	case 0:
		c.Reg.BC.SetHi(v)
	case 1:
		c.Reg.BC.SetLo(v)
	case 2:
		c.Reg.DE.SetHi(v)
	case 3:
		c.Reg.DE.SetLo(v)
	case 4:
		c.setIndexHigh(v)
	case 5:
		c.setIndexLow(v)
	case 6:
		c.writeData(c.indexAddress(), v)
	default:
		c.Reg.A = v
	}
}

// readR8NoSub/writeR8NoSub resolve r[z] WITHOUT index substitution on
// codes 4/5 (always the real H/L), while code 6 still uses the displaced
// address. This is the "clear PREFIX around the (HL) side of the
// transfer" rule of spec §4.4: used for the register-to-register LD block
// whenever the *other* operand is memory (code 6), so e.g. LD H,(IX+d)
// writes the real H, not IXh.
func (c *CPU) readR8NoSub(code byte) byte {
	switch code {
	case 0:
		return c.Reg.BC.Hi()
	case 1:
		return c.Reg.BC.Lo()
	case 2:
		return c.Reg.DE.Hi()
	case 3:
		return c.Reg.DE.Lo()
	case 4:
		return c.Reg.HL.Hi()
	case 5:
		return c.Reg.HL.Lo()
	case 6:
		return c.readData(c.indexAddress())
	default:
		return c.Reg.A
	}
}

func (c *CPU) writeR8NoSub(code byte, v byte) {
	switch code {
	case 0:
		c.Reg.BC.SetHi(v)
	case 1:
		c.Reg.BC.SetLo(v)
	case 2:
		c.Reg.DE.SetHi(v)
	case 3:
		c.Reg.DE.SetLo(v)
	case 4:
		c.Reg.HL.SetHi(v)
	case 5:
		c.Reg.HL.SetLo(v)
	case 6:
		c.writeData(c.indexAddress(), v)
	default:
		c.Reg.A = v
	}
}

// cbOperandAddr resolves the operand address a CB-page opcode acts on:
// the address latched by the DD/FD+CB dispatcher when PREFIX is set (the
// displacement was already consumed ahead of the CB opcode, per spec
// §4.5), else plain HL.
func (c *CPU) cbOperandAddr() uint32 {
	if c.Prefix != PrefixNone {
		return c.cbAddr
	}
	return c.Reg.HL.Masked(c.L)
}

// rpPair resolves rp[p] (0=BC 1=DE 2=HL/IX/IY 3=SP), substituting HL with
// the prefixed index register for p==2, per spec §4.4.
func (c *CPU) rpPair(p byte) *pair {
	switch p {
	case 0:
		return &c.Reg.BC
	case 1:
		return &c.Reg.DE
	case 2:
		switch c.Prefix {
		case PrefixDD:
			return &c.Reg.IX
		case PrefixFD:
			return &c.Reg.IY
		default:
			return &c.Reg.HL
		}
	default:
		return nil // p==3 is SP, handled specially (no 24-bit pair storage to alias)
	}
}

// rp2GetWord/rp2SetWord resolve rp2[p] (same as rp[p] but p==3 is AF).
func (c *CPU) rp2GetWord(p byte) uint32 {
	if p == 3 {
		return c.Reg.AF()
	}
	return c.rpPair(p).Masked(c.L)
}

func (c *CPU) rp2SetWord(p byte, v uint32) {
	if p == 3 {
		c.Reg.SetAF(v & 0xFFFF) // F is always 8 bits; upper byte of the pseudo-pair is never written
		return
	}
	c.rpPair(p).SetMasked(v, c.L)
}

// rp3Pair resolves rp3[p] (0=BC 1=DE 2=HL 3=IX/IY), used by the eZ80
// 24-bit "LD (IX/IY+d), rp3" memory/register-pair transfer family. Unlike
// rp[p], slot 2 is always plain HL (never substituted) because slot 3
// already names the currently-prefixed index register explicitly.
func (c *CPU) rp3Pair(p byte) *pair {
	switch p {
	case 0:
		return &c.Reg.BC
	case 1:
		return &c.Reg.DE
	case 2:
		return &c.Reg.HL
	default:
		if c.Prefix == PrefixFD {
			return &c.Reg.IY
		}
		return &c.Reg.IX
	}
}
