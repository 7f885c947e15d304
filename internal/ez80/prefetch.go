package ez80

// translateAddr applies the ADL/MBASE rule of spec §4.2: a wide (24-bit)
// address passes through unchanged; a narrow (16-bit) address is combined
// with the MBASE page.
func (c *CPU) translateAddr(addr uint32, wide bool) uint32 {
	if wide {
		return addr & 0xFFFFFF
	}
	return uint32(c.Reg.MBASE)<<16 | (addr & 0xFFFF)
}

// readData/writeData/readPort/writePort are the external collaborator
// calls of spec §4.2, addressed by the current data width L.
func (c *CPU) readData(addr uint32) byte {
	return c.bus.MemRead(c.translateAddr(addr, c.L))
}

func (c *CPU) writeData(addr uint32, v byte) {
	c.bus.MemWrite(c.translateAddr(addr, c.L), v)
}

func (c *CPU) readPort(port uint16) byte  { return c.bus.PortRead(port) }
func (c *CPU) writePort(port uint16, v byte) { c.bus.PortWrite(port, v) }

// checkBreakpoint traps into the debugger before a fetched byte at the
// current (already-translated, linear) PC is consumed, unless already
// inside the debugger (spec §4.2/§4.3).
func (c *CPU) checkBreakpoint() {
	if c.dbg == nil || c.dbg.InDebugger() {
		return
	}
	flags := c.dbg.Flags(c.Reg.PC.Whole())
	switch {
	case flags&StepOverBreakpoint != 0:
		c.dbg.Trap(TrapStepOver, c.Reg.PC.Whole())
	case flags&ExecBreakpoint != 0:
		c.dbg.Trap(TrapExec, c.Reg.PC.Whole())
	}
}

// advancePC advances the already-translated, linear PC by one, wrapping
// within the current 64KiB MBASE page when IL is narrow, or across the
// full 24-bit space when IL is wide.
func (c *CPU) advancePC() {
	v := c.Reg.PC.Whole()
	if c.IL {
		c.Reg.PC.SetWhole((v + 1) & 0xFFFFFF)
		return
	}
	c.Reg.PC.SetWhole((v & 0xFF0000) | ((v + 1) & 0xFFFF))
}

// addToPC adds a signed displacement to PC using the same wrap rule as
// advancePC and refills the prefetch byte from the new PC. Used by JR/DJNZ
// relative jumps and by the repeating block instructions to rewind onto
// themselves (spec §4.5).
func (c *CPU) addToPC(disp int32) {
	v := c.Reg.PC.Whole()
	if c.IL {
		c.Reg.PC.SetWhole(uint32(int64(v)+int64(disp)) & 0xFFFFFF)
	} else {
		page := v & 0xFF0000
		low := uint32(int64(v&0xFFFF)+int64(disp)) & 0xFFFF
		c.Reg.PC.SetWhole(page | low)
	}
	c.refill()
}

// Prefetch sets ADL to mode, translates addr under that mode, points PC at
// it, and loads the prefetch byte (spec §4.3 prefetch(addr, mode)).
func (c *CPU) Prefetch(addr uint32, mode bool) {
	c.ADL = mode
	c.applyDefaultWidths()
	translated := c.translateAddr(addr, mode)
	c.Reg.PC.SetWhole(translated)
	c.prefetch = c.bus.MemRead(translated)
}

// refill reloads the prefetch byte from the current PC without touching
// ADL/PC themselves.
func (c *CPU) refill() {
	c.prefetch = c.bus.MemRead(c.Reg.PC.Whole())
}

// FetchByte is the universal fetch primitive (spec §4.3 fetch_byte()):
// check breakpoint, return the cached byte, advance PC, refill the cache.
// Used for operand/immediate/displacement bytes; it does not advance R —
// only genuine opcode (M1) fetches do that, via FetchOpcode.
func (c *CPU) FetchByte() byte {
	c.checkBreakpoint()
	v := c.prefetch
	c.advancePC()
	c.refill()
	return v
}

// FetchOpcode fetches an opcode byte (prefix or final) and advances R by
// one, preserving bit 7 (spec §8).
func (c *CPU) FetchOpcode() byte {
	v := c.FetchByte()
	c.Reg.IncR()
	return v
}

// FetchWord fetches 2 bytes (low, high), plus a 3rd (upper) iff IL is set
// (spec §4.3 fetch_word()).
func (c *CPU) FetchWord() uint32 {
	low := c.FetchByte()
	high := c.FetchByte()
	v := uint32(high)<<8 | uint32(low)
	if c.IL {
		upper := c.FetchByte()
		v |= uint32(upper) << 16
	}
	return v
}

// FetchWordNoPrefetch fetches the word operand of JP nn/CALL nn: every
// byte but the last behaves like FetchByte; the last byte is read through
// the already-held prefetch and PC is incremented without refilling — the
// executor must call Prefetch(target, mode) to restore the invariant
// (spec §4.3 fetch_word_no_prefetch()).
func (c *CPU) FetchWordNoPrefetch() uint32 {
	low := c.FetchByte()
	if c.IL {
		high := c.FetchByte()
		upper := c.fetchNoRefill()
		return uint32(upper)<<16 | uint32(high)<<8 | uint32(low)
	}
	high := c.fetchNoRefill()
	return uint32(high)<<8 | uint32(low)
}

func (c *CPU) fetchNoRefill() byte {
	c.checkBreakpoint()
	v := c.prefetch
	c.advancePC()
	return v
}

// FetchOffset reads a signed 8-bit displacement (spec §4.3 fetch_offset()).
func (c *CPU) FetchOffset() int8 {
	return int8(c.FetchByte())
}
