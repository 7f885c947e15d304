package ez80

import "testing"

func TestParity8(t *testing.T) {
	cases := []struct {
		v    byte
		even bool
	}{
		{0x00, true},
		{0x01, false},
		{0x03, true},
		{0xFF, true},
		{0x0F, true},
		{0x07, false},
	}
	for _, c := range cases {
		if got := parity8(c.v); got != c.even {
			t.Errorf("parity8(0x%02X) = %v, want %v", c.v, got, c.even)
		}
	}
}

func TestHalfCarryAdd8(t *testing.T) {
	if !halfCarryAdd8(0x0F, 0x01, 0) {
		t.Fatal("0x0F+0x01 should half-carry")
	}
	if halfCarryAdd8(0x0E, 0x01, 0) {
		t.Fatal("0x0E+0x01 should not half-carry")
	}
}

func TestHalfCarrySub8(t *testing.T) {
	if !halfCarrySub8(0x10, 0x01, 0) {
		t.Fatal("0x10-0x01 should half-borrow")
	}
	if halfCarrySub8(0x11, 0x01, 0) {
		t.Fatal("0x11-0x01 should not half-borrow")
	}
}

func TestMaskWidth(t *testing.T) {
	requireEqualU32(t, "mask(l=false)", mask(0x123456, false), 0x3456)
	requireEqualU32(t, "mask(l=true)", mask(0x123456, true), 0x123456)
}

func TestTopByte(t *testing.T) {
	requireEqualU8(t, "topByte(l=false)", topByte(0x00ABCD, false), 0xAB)
	requireEqualU8(t, "topByte(l=true)", topByte(0xABCDEF, true), 0xAB)
}
