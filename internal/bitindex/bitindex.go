// Package bitindex maps bitmap bytes to the channel positions they flag.
//
// Bits are numbered 7 (most significant) down to 0 (least significant) and
// are always reported in that order, so byte 0xA0 yields [7 5].
package bitindex

import (
	"errors"
	"fmt"
)

// ErrShortBitmap is returned when a bitmap holds fewer set bits than the
// caller expects to find.
var ErrShortBitmap = errors.New("bitmap has fewer set bits than expected")

// table[b] lists the set bits of b, most significant first.
var table [256][]int

func init() {
	for b := 0; b < 256; b++ {
		var bits []int
		for bit := 7; bit >= 0; bit-- {
			if b&(1<<uint(bit)) != 0 {
				bits = append(bits, bit)
			}
		}
		table[b] = bits
	}
}

// Positions returns the set bits of b, from bit 7 down to bit 0.
// The returned slice is shared and must not be modified.
func Positions(b byte) []int {
	return table[b]
}

// Count returns the number of set bits in b.
func Count(b byte) int {
	return len(table[b])
}

// Decode scans bitmap in byte order and returns the absolute positions
// (byteIndex*8 + bit) of the first expected set bits. Within a byte the
// positions descend, matching the order values were written in.
func Decode(bitmap []byte, expected int) ([]int, error) {
	if expected < 0 {
		return nil, fmt.Errorf("bitindex: negative position count %d", expected)
	}
	set := 0
	for i := 0; i < len(bitmap) && set < expected; i++ {
		set += Count(bitmap[i])
	}
	if set < expected {
		return nil, fmt.Errorf("%w: found %d of %d", ErrShortBitmap, set, expected)
	}
	positions := make([]int, 0, expected)
	for i := 0; i < len(bitmap) && len(positions) < expected; i++ {
		base := i * 8
		for _, bit := range table[bitmap[i]] {
			positions = append(positions, base+bit)
			if len(positions) == expected {
				break
			}
		}
	}
	return positions, nil
}

// Encode builds a size-byte bitmap with bit 7-p%8 of byte p/8 set for every
// position p. Positions outside the bitmap are ignored.
func Encode(positions []int, size int) []byte {
	bitmap := make([]byte, size)
	for _, p := range positions {
		if p < 0 || p/8 >= size {
			continue
		}
		bitmap[p/8] |= 1 << uint(7-p%8)
	}
	return bitmap
}
