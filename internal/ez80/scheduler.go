package ez80

// Execute runs instructions until *delta reaches zero or more, exiting
// cooperatively, or a single step completes — the outer/inner loop shape
// of spec §4.6, grounded on the teacher's run-loop (cpu_execute/Interrupt
// flow) but restructured around the eZ80's PREFIX/SUFFIX chaining and
// mixed-mode interrupt entry.
//
// Chaining note: DD/FD/ED/SIS-LIS-SIL-LIL opcodes in this port resolve
// their continuation by recursing into dispatchNext() from within their
// own opFunc (ops_control.go, ops_dd_fd.go) rather than by looping here
// on PREFIX/SUFFIX remaining set — so by the time a top-level opFunc call
// returns, the whole chained instruction is complete and
// resetControlDataBlocksFormat always fires exactly once per real
// instruction, matching the net effect of spec's described inner loop.
func (c *CPU) Execute(delta *int64) ExitReason {
	for !c.Exiting() && *delta < 0 {
		c.serviceInterrupts(delta)

		for !c.Exiting() && *delta < 0 {
			c.Cycles = 0

			if c.Halted {
				c.Cycles = -*delta
				*delta += c.Cycles
				break
			}

			op := c.FetchOpcode()
			c.primaryOps[op](c)
			c.resetControlDataBlocksFormat()

			*delta += c.Cycles
			if c.Cycles == 0 {
				*delta++
			}

			if c.GetEvents()&EventDebugStep != 0 {
				*delta = 0
				return ExitSingleStep
			}
			if *delta >= 0 {
				break
			}
		}
	}

	if c.Exiting() {
		return ExitExiting
	}
	return ExitBudgetExhausted
}

// resetControlDataBlocksFormat is cpu_reset_cntrl_data_blocks_format():
// clear PREFIX/SUFFIX and re-derive L/IL from ADL for the next fetch
// (spec §4.5/§4.6). Run once per top-level instruction, after whatever
// DD/FD/ED/SUFFIX chain it may have recursed through internally.
func (c *CPU) resetControlDataBlocksFormat() {
	c.Prefix = PrefixNone
	c.Suffix = SuffixNone
	c.applyDefaultWidths()
}
