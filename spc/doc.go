// Package spc reads and writes SPC spectrum files.
//
// # Layout
//
// An SPC file starts with a 1024-byte header at fixed offsets:
//
//	NAME        @0    120 bytes text, first 80 are the name
//	TIME        @122    8 bytes "hh:mm:ss"
//	DATE        @130    9 bytes "dd-MMM-yy"
//	DIMENSION   @142  int16
//	XLENGTH     @146  int16
//	YLENGTH     @150  int16
//	ORIGLOADFMT @154  int16
//	LOADFMT     @162  int16
//	NONZERO     @164  int32
//	FORMATINFO  @224  130 bytes text
//	TOTALCOUNT  @896  int32, half-swapped (see DecodeTotalCount)
//
// 16- and 32-bit fields are byte-swapped relative to network order.
//
// # Payload
//
// Files with LOADFMT 0 (MUSORT) store every channel in order directly
// after the header, each ORIGLOADFMT bytes wide. Any other LOADFMT (SMAUG)
// stores a bitmap of non-zero channels in ceil(x*y/8192) records of 1024
// bytes starting at @1024, followed by the NONZERO values, each LOADFMT
// bytes wide. Write always produces SMAUG files.
package spc
