package ez80

import "sync/atomic"

// Prefix values, matching the PREFIX latch of spec §3.
const (
	PrefixNone byte = 0
	PrefixDD   byte = 2
	PrefixFD   byte = 3
)

// Suffix values, matching the SUFFIX-driven width override of spec §3/§4.5.
const (
	SuffixNone byte = 0
	SuffixSIS  byte = 1 // L=0, IL=0
	SuffixLIS  byte = 2 // L=0, IL=1
	SuffixSIL  byte = 3 // L=1, IL=0
	SuffixLIL  byte = 4 // L=1, IL=1
)

// ExitReason explains why Execute returned.
type ExitReason int

const (
	ExitBudgetExhausted ExitReason = iota
	ExitExiting
	ExitSingleStep
)

// Events are host-set flags consulted between instructions (spec §5).
type Events uint32

const (
	EventReset Events = 1 << iota
	EventDebugStep
	EventDebugStepOver
	EventWaiting
)

// CPU is the eZ80 architectural state machine. It owns Registers and the
// mode latches exclusively; Bus/Debugger/InterruptSource are shared,
// externally-owned collaborators (spec §3 Ownership).
type CPU struct {
	Reg Registers

	ADL     bool
	MADL    bool
	L       bool
	IL      bool
	Prefix  byte
	Suffix  byte
	IEF1    bool
	IEF2    bool
	IEFWait bool
	IM      byte
	Halted  bool

	prefetch byte

	Cycles int64 // cpu.cycles: this instruction's cycle cost

	bus   Bus
	dbg   Debugger
	irq   InterruptSource
	flash FlashEraser

	exiting atomic.Bool
	events  atomic.Uint32

	eiPending  int    // not read anywhere; the EI deferral is carried by IEFWait
	irqVector  byte
	cbAddr     uint32 // operand address latched by the DD/FD+CB dispatcher, spec §4.5

	primaryOps [256]opFunc
	cbOps      [256]opFunc
	edOps      [256]opFunc
}

type opFunc func(*CPU)

// New constructs a CPU wired to bus, with optional debugger and interrupt
// source (either may be nil). Matches the teacher's NewCPU_Z80 shape.
func New(bus Bus, dbg Debugger, irq InterruptSource) *CPU {
	c := &CPU{bus: bus, dbg: dbg, irq: irq}
	if fe, ok := bus.(FlashEraser); ok {
		c.flash = fe
	}
	c.initPrimaryOps()
	c.initCBOps()
	c.initEDOps()
	c.Reset()
	return c
}

// Init zeroes all state without touching the dispatch tables (spec §3
// Lifecycles: cpu_init()).
func (c *CPU) Init() {
	c.Reg.zeroAll()
	c.ADL = false
	c.MADL = false
	c.L = false
	c.IL = false
	c.Prefix = PrefixNone
	c.Suffix = SuffixNone
	c.IEF1 = false
	c.IEF2 = false
	c.IEFWait = false
	c.IM = 0
	c.Halted = false
	c.prefetch = 0
	c.Cycles = 0
	c.eiPending = 0
	c.irqVector = 0xFF
	c.exiting.Store(false)
	c.events.Store(0)
}

// Reset zeroes registers and all mode latches, then refills prefetch at
// address 0 in Z80 (ADL=0) mode (spec §3 Lifecycles: cpu_reset()).
func (c *CPU) Reset() {
	c.Init()
	c.Prefetch(0, false)
}

// Flush sets PC/ADL to (addr, mode), clears PREFIX/SUFFIX so instruction
// width follows ADL, and refills prefetch (spec §3 Lifecycles, §4.3).
func (c *CPU) Flush(addr uint32, adlMode bool) {
	c.Prefix = PrefixNone
	c.Suffix = SuffixNone
	c.Prefetch(addr, adlMode)
}

// SetExiting requests cooperative termination after the current
// instruction (spec §5).
func (c *CPU) SetExiting(v bool) { c.exiting.Store(v) }
func (c *CPU) Exiting() bool     { return c.exiting.Load() }

// SetEvents/GetEvents replace/read the host-visible event flags.
func (c *CPU) SetEvents(e Events) { c.events.Store(uint32(e)) }
func (c *CPU) GetEvents() Events  { return Events(c.events.Load()) }

// SetIRQVector stores a vector byte from the interrupt controller. The
// acknowledge path (serviceInterrupts) does not read it: IM 0-2 call 0x38
// and IM 3 reads its vector from memory at I<<8|^R.
func (c *CPU) SetIRQVector(v byte) { c.irqVector = v }

// applyDefaultWidths resets L/IL to ADL unconditionally; a SUFFIX override
// is applied separately by applySuffixWidths. This is
// reset_cntrl_data_blocks_format's "re-initialize L=IL=ADL" half; the
// clearing of PREFIX/SUFFIX themselves happens in the scheduler after the
// instruction completes (spec §4.6).
func (c *CPU) applyDefaultWidths() {
	c.L = c.ADL
	c.IL = c.ADL
}

func (c *CPU) applySuffixWidths() {
	switch c.Suffix {
	case SuffixSIS:
		c.L, c.IL = false, false
	case SuffixLIS:
		c.L, c.IL = false, true
	case SuffixSIL:
		c.L, c.IL = true, false
	case SuffixLIL:
		c.L, c.IL = true, true
	}
}

// State is a read-only snapshot of the register file and latches for
// debugger consumption (spec §6).
type State struct {
	A, F, B, C, D, E, H, L    byte
	A2, F2, B2, C2, D2, E2    byte
	H2, L2                     byte
	BCU, DEU, HLU              byte
	IX, IY                     uint32
	SPS                        uint16
	SPL                        uint32
	PC                         uint32
	I, R, MBASE                byte
	ADL, MADL, L_, IL, Halted  bool
	IFF1, IFF2                 bool
	IM                         byte
	Prefix, Suffix             byte
}

// State returns a snapshot of all debugger-visible state.
func (c *CPU) State() State {
	r := &c.Reg
	return State{
		A: r.A, F: r.F,
		B: r.BC.Hi(), C: r.BC.Lo(),
		D: r.DE.Hi(), E: r.DE.Lo(),
		H: r.HL.Hi(), L: r.HL.Lo(),
		A2: r.A2, F2: r.F2,
		B2: r.BC2.Hi(), C2: r.BC2.Lo(),
		D2: r.DE2.Hi(), E2: r.DE2.Lo(),
		H2: r.HL2.Hi(), L2: r.HL2.Lo(),
		BCU: r.BC.Upper(), DEU: r.DE.Upper(), HLU: r.HL.Upper(),
		IX: r.IX.Whole(), IY: r.IY.Whole(),
		SPS: r.SPS, SPL: r.SPL.Whole(),
		PC:     r.PC.Whole(),
		I:      r.I,
		R:      r.R,
		MBASE:  r.MBASE,
		ADL:    c.ADL,
		MADL:   c.MADL,
		L_:     c.L,
		IL:     c.IL,
		Halted: c.Halted,
		IFF1:   c.IEF1,
		IFF2:   c.IEF2,
		IM:     c.IM,
		Prefix: c.Prefix,
		Suffix: c.Suffix,
	}
}
