package ez80

import "testing"

func TestPairMaskedWidths(t *testing.T) {
	var p pair
	p.SetMasked(0xABCDEF, true)
	requireEqualU32(t, "Whole", p.Whole(), 0xABCDEF)

	p.SetMasked(0x1234, false)
	// SetWord preserves the upper byte (spec: L=0 writes are 16-bit only).
	requireEqualU32(t, "Whole after 16-bit write", p.Whole(), 0xAB1234)
	requireEqualU32(t, "Masked(l=false)", p.Masked(false), 0x1234)
}

func TestActiveSPSelection(t *testing.T) {
	var r Registers
	r.SetSP(0x8000, false)
	r.SPL.SetWhole(0x030000)
	requireEqualU32(t, "SP(l=false)", r.SP(false), 0x8000)
	requireEqualU32(t, "SP(l=true)", r.SP(true), 0x030000)
}

func TestExAFAndExx(t *testing.T) {
	var r Registers
	r.SetAF(0x1234)
	r.SetAF2(0x5678)
	r.ExAF()
	requireEqualU32(t, "AF after ExAF", r.AF(), 0x5678)
	requireEqualU32(t, "AF2 after ExAF", r.AF2(), 0x1234)

	r.BC.SetWhole(0x0001)
	r.BC2.SetWhole(0x0002)
	r.Exx()
	requireEqualU32(t, "BC after Exx", r.BC.Whole(), 0x0002)
	requireEqualU32(t, "BC2 after Exx", r.BC2.Whole(), 0x0001)
}

func TestIncRPreservesBit7(t *testing.T) {
	var r Registers
	r.R = 0x7F
	r.IncR()
	requireEqualU8(t, "R wraps to 0 in low 7 bits", r.R, 0x00)

	r.R = 0xFF
	r.IncR()
	requireEqualU8(t, "R preserves bit 7 across wrap", r.R, 0x80)
}
