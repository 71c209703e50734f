package spc

import "encoding/binary"

// Swap16 reverses the bytes of v.
func Swap16(v uint16) uint16 {
	return v<<8 | v>>8
}

// Swap32 reverses the bytes of v.
func Swap32(v uint32) uint32 {
	return v<<24 | (v<<8)&0x00FF0000 | (v>>8)&0x0000FF00 | v>>24
}

func getInt16(b []byte) int {
	return int(int16(Swap16(binary.BigEndian.Uint16(b))))
}

func getUint16(b []byte) int {
	return int(Swap16(binary.BigEndian.Uint16(b)))
}

func getInt32(b []byte) int {
	return int(int32(Swap32(binary.BigEndian.Uint32(b))))
}

func putInt16(b []byte, v int) {
	binary.BigEndian.PutUint16(b, Swap16(uint16(v)))
}

func putInt32(b []byte, v int) {
	binary.BigEndian.PutUint32(b, Swap32(uint32(v)))
}

// DecodeTotalCount rebuilds the total count from its four stored bytes.
// Each 16-bit half is stored low byte first, but the high half comes
// first. Files have always been written this way.
func DecodeTotalCount(b [4]byte) int32 {
	return int32(uint32(b[1])<<24 | uint32(b[0])<<16 | uint32(b[3])<<8 | uint32(b[2]))
}

// EncodeTotalCount is the inverse of DecodeTotalCount.
func EncodeTotalCount(v int32) [4]byte {
	u := uint32(v)
	return [4]byte{byte(u >> 16), byte(u >> 24), byte(u), byte(u >> 8)}
}

// valueWidth maps a load format indicator to the stored width in bytes.
func valueWidth(indicator int) int {
	switch indicator {
	case 1:
		return 1
	case 4:
		return 4
	default:
		return 2
	}
}

func getValue(b []byte, width int) int {
	switch width {
	case 1:
		return int(int8(b[0]))
	case 4:
		return getInt32(b)
	default:
		return getInt16(b)
	}
}

func putValue(b []byte, width, v int) {
	switch width {
	case 1:
		b[0] = byte(v)
	case 4:
		putInt32(b, v)
	default:
		putInt16(b, v)
	}
}
