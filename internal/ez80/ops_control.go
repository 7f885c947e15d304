package ez80

// Stack primitives. Width follows L (2 bytes in Z80-compatible mode, 3 in
// ADL mode), matching the active SP (Registers.SP/SetSP). Grounded on the
// teacher's pushWord/popWord, widened from a fixed 16 bits.

func (c *CPU) pushByte(v byte) {
	sp := (c.Reg.SP(c.L) - 1) & fullMask(c.L)
	c.Reg.SetSP(sp, c.L)
	c.writeData(sp, v)
}

func (c *CPU) popByte() byte {
	sp := c.Reg.SP(c.L)
	v := c.readData(sp)
	c.Reg.SetSP((sp+1)&fullMask(c.L), c.L)
	return v
}

func (c *CPU) pushAddr(v uint32) {
	if c.L {
		c.pushByte(byte(v >> 16))
	}
	c.pushByte(byte(v >> 8))
	c.pushByte(byte(v))
}

func (c *CPU) popAddr() uint32 {
	lo := c.popByte()
	hi := c.popByte()
	v := uint32(hi)<<8 | uint32(lo)
	if c.L {
		v |= uint32(c.popByte()) << 16
	}
	return mask(v, c.L)
}

// pushByteLong/popByteLong/pushByteShort/popByteShort address SPL/SPS
// explicitly, bypassing the L-selected active SP — needed by the mixed
// stack frame, which addresses both stacks within a single instruction
// (spec §4.5 "Calls and returns").
func (c *CPU) pushByteLong(v byte) {
	c.Reg.SPL.SetWhole((c.Reg.SPL.Whole() - 1) & 0xFFFFFF)
	c.writeData(c.Reg.SPL.Whole(), v)
}

func (c *CPU) popByteLong() byte {
	v := c.readData(c.Reg.SPL.Whole())
	c.Reg.SPL.SetWhole((c.Reg.SPL.Whole() + 1) & 0xFFFFFF)
	return v
}

func (c *CPU) pushByteShort(v byte) {
	c.Reg.SPS--
	c.writeData(uint32(c.Reg.SPS), v)
}

func (c *CPU) popByteShort() byte {
	v := c.readData(uint32(c.Reg.SPS))
	c.Reg.SPS++
	return v
}

// pushMixedFrame/popMixedFrame implement the eZ80 mixed-mode CALL/RET
// stack frame exactly as spec §4.5 describes: the return address splits
// across SPL/SPS depending on width, tagged with a 1-byte (MADL,ADL)
// marker on SPL so RET can restore the caller's mode symmetrically.
func (c *CPU) pushMixedFrame(ret uint32) {
	if c.ADL {
		c.pushByteLong(byte(ret >> 16))
	}
	longWrite := c.IL || (c.L && !c.ADL)
	hi, lo := byte(ret>>8), byte(ret)
	if longWrite {
		c.pushByteLong(hi)
		c.pushByteLong(lo)
	} else {
		c.pushByteShort(hi)
		c.pushByteShort(lo)
	}
	c.pushByteLong(boolByte(c.MADL)<<1 | boolByte(c.ADL))
}

// popMixedFrame returns (target, poppedADL, poppedMADL); the caller is
// responsible for applying the restored mode, matching spec's "afterward,
// prefetch(target, popped_mode)".
func (c *CPU) popMixedFrame() (uint32, bool, bool) {
	tag := c.popByteLong()
	poppedADL := tag&1 != 0
	poppedMADL := tag&2 != 0
	// Mirror pushMixedFrame's width decision exactly: the hi/lo bytes went
	// to the long stack iff IL was set, or L was set outside ADL mode. A
	// RET must carry the same SUFFIX its matching CALL did to land on the
	// right stack (spec §4.5).
	longRead := c.IL || (c.L && !c.ADL)
	var lo, hi byte
	if longRead {
		lo = c.popByteLong()
		hi = c.popByteLong()
	} else {
		lo = c.popByteShort()
		hi = c.popByteShort()
	}
	addr := uint32(hi)<<8 | uint32(lo)
	if poppedADL {
		up := c.popByteLong()
		addr |= uint32(up) << 16
	}
	return addr, poppedADL, poppedMADL
}

// mixedModeCall reports whether this CALL/RET executes under an explicit
// SUFFIX override — the condition spec §4.5 names for writing/reading a
// mixed frame instead of a plain word push/pop.
func (c *CPU) mixedModeCall() bool { return c.Suffix != SuffixNone }

func (c *CPU) pushCallFrame(ret uint32) {
	if c.mixedModeCall() {
		c.pushMixedFrame(ret)
		return
	}
	c.pushAddr(ret)
}

func (c *CPU) popCallFrame() uint32 {
	if !c.mixedModeCall() {
		return c.popAddr()
	}
	addr, adl, madl := c.popMixedFrame()
	c.ADL = adl
	c.MADL = madl
	c.applyDefaultWidths()
	return addr
}

func opJPnn(c *CPU) {
	target := c.FetchWordNoPrefetch()
	c.Flush(target, c.ADL)
}

func jpCC(y byte) opFunc {
	return func(c *CPU) {
		target := c.FetchWordNoPrefetch()
		if condTrue(c, y) {
			c.Flush(target, c.ADL)
		} else {
			c.Prefetch(c.Reg.PC.Whole(), c.ADL)
		}
	}
}

func opCALLnn(c *CPU) {
	target := c.FetchWordNoPrefetch()
	ret := c.Reg.PC.Whole()
	c.pushCallFrame(ret)
	c.Flush(target, c.ADL)
}

func callCC(y byte) opFunc {
	return func(c *CPU) {
		target := c.FetchWordNoPrefetch()
		if condTrue(c, y) {
			ret := c.Reg.PC.Whole()
			c.pushCallFrame(ret)
			c.Flush(target, c.ADL)
			c.Cycles += 7
		} else {
			c.Prefetch(c.Reg.PC.Whole(), c.ADL)
		}
	}
}

func opRET(c *CPU) {
	target := c.popCallFrame()
	c.Flush(target, c.ADL)
}

func retCC(y byte) opFunc {
	return func(c *CPU) {
		if condTrue(c, y) {
			target := c.popCallFrame()
			c.Flush(target, c.ADL)
			c.Cycles += 6
		}
	}
}

func rstOp(y byte) opFunc {
	target := uint32(y) * 8
	return func(c *CPU) {
		ret := c.Reg.PC.Whole()
		c.pushCallFrame(ret)
		c.Flush(target, c.ADL)
	}
}

func popRp2(p byte) opFunc {
	return func(c *CPU) {
		v := c.popAddr()
		c.rp2SetWord(p, v)
	}
}

func pushRp2(p byte) opFunc {
	return func(c *CPU) {
		c.pushAddr(c.rp2GetWord(p))
	}
}

// popMiscOp is x=3,z=1,q=1: RET/EXX/JP (HL)/LD SP,HL, each indexed by p.
func popMiscOp(p byte) opFunc {
	switch p {
	case 0:
		return opRET
	case 1:
		return func(c *CPU) { c.Reg.Exx() }
	case 2:
		return func(c *CPU) {
			target := c.rpPair(2).Masked(c.L)
			c.Flush(target, c.ADL)
		}
	default:
		return func(c *CPU) {
			c.Reg.SetSP(c.rpPair(2).Masked(c.L), c.L)
		}
	}
}

// pushMiscOp is x=3,z=5,q=1: CALL nn at p==0; p==1/2/3 are literally the
// DD/ED/FD prefix bytes (0xDD/0xED/0xFD alias this very slot), so they
// enter prefix handling rather than being undefined. Per spec §4.5: DD/FD
// set PREFIX and add 1 cycle before re-entering the fetch loop; ED cancels
// any pending DD/FD (PREFIX back to 0) before dispatching its own page.
func pushMiscOp(p byte) opFunc {
	switch p {
	case 0:
		return opCALLnn
	case 1:
		return func(c *CPU) { c.Prefix = PrefixDD; c.Cycles++; c.dispatchNext() }
	case 2:
		return func(c *CPU) {
			c.Prefix = PrefixNone
			op := c.FetchOpcode()
			c.edOps[op](c)
		}
	default:
		return func(c *CPU) { c.Prefix = PrefixFD; c.Cycles++; c.dispatchNext() }
	}
}

// dispatchNext fetches and executes one more primary-page opcode under
// the PREFIX just latched, allowing chained DD/FD bytes (last one wins,
// matching real hardware).
func (c *CPU) dispatchNext() {
	op := c.FetchOpcode()
	c.primaryOps[op](c)
}

func opEXSPHL(c *CPU) {
	sp := c.Reg.SP(c.L)
	rp := c.rpPair(2)
	lo := c.readData(sp)
	hi := c.readData(sp + 1)
	v := uint32(hi)<<8 | uint32(lo)
	if c.L {
		up := c.readData(sp + 2)
		v |= uint32(up) << 16
	}
	old := rp.Masked(c.L)
	c.writeData(sp, byte(old))
	c.writeData(sp+1, byte(old>>8))
	if c.L {
		c.writeData(sp+2, byte(old>>16))
	}
	rp.SetMasked(v, c.L)
}

func opEXDEHL(c *CPU) {
	c.Reg.DE, c.Reg.HL = c.Reg.HL, c.Reg.DE
}

func opDI(c *CPU) { c.IEF1, c.IEF2 = false, false }

func opEI(c *CPU) {
	// Arms the deferred latch only; serviceInterrupts flips IEF1/IEF2 at
	// the next instruction boundary (spec §4.5/§5). IEF2 must NOT flip
	// here, or EI immediately followed by LD A,I/LD A,R would read PV=1
	// instead of the well-known PV=0 quirk.
	c.IEFWait = true
}

func opOUTnA(c *CPU) {
	n := c.FetchByte()
	c.writePort(uint16(c.Reg.A)<<8|uint16(n), c.Reg.A)
}

func opINAn(c *CPU) {
	n := c.FetchByte()
	c.Reg.A = c.readPort(uint16(c.Reg.A)<<8 | uint16(n))
}
