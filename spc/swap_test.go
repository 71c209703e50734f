package spc

import (
	"math"
	"testing"
)

func TestSwap16_Idempotent(t *testing.T) {
	for _, v := range []uint16{0x0000, 0xFFFF, 0x0001, 0x8000, 0x7FFF, 0x1234} {
		if got := Swap16(Swap16(v)); got != v {
			t.Errorf("Swap16(Swap16(0x%04X)) = 0x%04X", v, got)
		}
	}
	if got := Swap16(0x1234); got != 0x3412 {
		t.Errorf("Swap16(0x1234) = 0x%04X, want 0x3412", got)
	}
}

func TestSwap32_Idempotent(t *testing.T) {
	for _, v := range []uint32{0, 0xFFFFFFFF, 0x00000001, 0x80000000, 0x7FFFFFFF, 0x12345678} {
		if got := Swap32(Swap32(v)); got != v {
			t.Errorf("Swap32(Swap32(0x%08X)) = 0x%08X", v, got)
		}
	}
	if got := Swap32(0x12345678); got != 0x78563412 {
		t.Errorf("Swap32(0x12345678) = 0x%08X, want 0x78563412", got)
	}
}

func TestFieldsAreLittleEndianOnDisk(t *testing.T) {
	b := make([]byte, 4)
	putInt16(b, 0x0102)
	if b[0] != 0x02 || b[1] != 0x01 {
		t.Errorf("putInt16 bytes = % X, want 02 01", b[:2])
	}
	putInt32(b, -2)
	if getInt32(b) != -2 {
		t.Errorf("getInt32 = %d, want -2", getInt32(b))
	}
	if b[0] != 0xFE || b[3] != 0xFF {
		t.Errorf("putInt32 bytes = % X, want FE FF FF FF", b)
	}
}

func TestTotalCount_Layout(t *testing.T) {
	got := EncodeTotalCount(0x11223344)
	want := [4]byte{0x22, 0x11, 0x44, 0x33}
	if got != want {
		t.Errorf("EncodeTotalCount = % X, want % X", got, want)
	}
	if v := DecodeTotalCount([4]byte{0x22, 0x11, 0x44, 0x33}); v != 0x11223344 {
		t.Errorf("DecodeTotalCount = 0x%08X, want 0x11223344", v)
	}
}

func TestTotalCount_RoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, math.MaxInt32, math.MinInt32, 65536, -123456} {
		if got := DecodeTotalCount(EncodeTotalCount(v)); got != v {
			t.Errorf("DecodeTotalCount(EncodeTotalCount(%d)) = %d", v, got)
		}
	}
}

func TestValueWidth(t *testing.T) {
	tests := []struct{ indicator, want int }{
		{1, 1}, {2, 2}, {4, 4}, {0, 2}, {3, 2}, {-1, 2},
	}
	for _, tt := range tests {
		if got := valueWidth(tt.indicator); got != tt.want {
			t.Errorf("valueWidth(%d) = %d, want %d", tt.indicator, got, tt.want)
		}
	}
}

func TestGetValue_Signed(t *testing.T) {
	if v := getValue([]byte{0xFF}, 1); v != -1 {
		t.Errorf("1-byte 0xFF = %d, want -1", v)
	}
	if v := getValue([]byte{0x00, 0x80}, 2); v != math.MinInt16 {
		t.Errorf("2-byte 00 80 = %d, want %d", v, math.MinInt16)
	}
	b := make([]byte, 4)
	putValue(b, 4, 100000)
	if v := getValue(b, 4); v != 100000 {
		t.Errorf("4-byte = %d, want 100000", v)
	}
}
