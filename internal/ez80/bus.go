package ez80

// Bus is the narrow indirection the core uses to talk to external memory
// and port devices, matching spec §4.2/§6. Addresses passed to the Mem*
// methods are already translated to a 24-bit linear address (ADL rules
// applied by the caller, never by Bus implementations). Grounded on the
// teacher's Z80Bus interface, widened from 16-bit to 24-bit addressing.
type Bus interface {
	MemRead(addr uint32) byte
	MemWrite(addr uint32, value byte)
	PortRead(port uint16) byte
	PortWrite(port uint16, value byte)
}

// FlashEraser is an optional capability a Bus may implement to support the
// ED C3 EE emulator extension (spec §4.5/§6/§9): erase the 16KiB Flash page
// containing addr. Probed with a type assertion, matching the teacher's
// pattern of optional peripheral hooks (VGAEngine/VoodooEngine) that a bus
// need not provide.
type FlashEraser interface {
	EraseFlashPage(addr uint32)
}

// DebugFlag is the per-byte breakpoint bitset consulted by the fetch path.
type DebugFlag byte

const (
	ExecBreakpoint      DebugFlag = 1 << 0
	StepOverBreakpoint  DebugFlag = 1 << 1
)

// TrapReason names why the debugger was entered.
type TrapReason int

const (
	TrapExec TrapReason = iota
	TrapStepOver
)

// Debugger is the optional breakpoint gateway consulted before a fetched
// byte is consumed (spec §4.2/§4.3/§6). A CPU with no debugger attached
// (nil Debugger) never traps.
type Debugger interface {
	Flags(addr uint32) DebugFlag
	InDebugger() bool
	Trap(reason TrapReason, pc uint32)
}

// InterruptSource exposes the 32-bit status/enabled masks consulted once
// per outer scheduler iteration (spec §4.5/§5/§6).
type InterruptSource interface {
	Status() uint32
	Enabled() uint32
}
