package spc

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/VictorDenisov/spectra/internal/bitindex"
	"github.com/VictorDenisov/spectra/spectrum"
)

// Detect checks whether r looks like an SPC file and returns its declared
// dimension. A file is only rejected when its dimension is neither 1 nor 2
// while its original load format is 1 or 2.
func Detect(r io.ReaderAt) (int, error) {
	b, err := readSection(r, 0, offOrigLoadFormat+2)
	if err != nil {
		return 0, opError("detect", err)
	}
	dim := getInt16(b[offDimension:])
	orig := getInt16(b[offOrigLoadFormat:])
	if !oneOrTwo(dim) && oneOrTwo(orig) {
		return 0, opError("detect", fmt.Errorf("%w: dimension %d", ErrFormatMismatch, dim))
	}
	return dim, nil
}

func oneOrTwo(v int) bool {
	return v == 1 || v == 2
}

// ReadHeader decodes the header block of r.
func ReadHeader(r io.ReaderAt) (*Header, error) {
	b, err := readSection(r, 0, headerSize)
	if err != nil {
		return nil, opError("read", err)
	}
	h, err := parseHeader(b)
	return h, opError("read", err)
}

// Read decodes a spectrum from r, registering it with sess.
func Read(r io.ReaderAt, sess *spectrum.Session) (*spectrum.Spectrum, error) {
	sp, err := read(r, sess)
	return sp, opError("read", err)
}

func read(r io.ReaderAt, sess *spectrum.Session) (*spectrum.Spectrum, error) {
	b, err := readSection(r, 0, headerSize)
	if err != nil {
		return nil, err
	}
	h, err := parseHeader(b)
	if err != nil {
		return nil, err
	}
	if !oneOrTwo(h.Dimension) {
		return nil, fmt.Errorf("%w: dimension %d", ErrBadDimension, h.Dimension)
	}
	if h.XLength < 1 {
		return nil, fmt.Errorf("%w: x length %d", ErrBadDimension, h.XLength)
	}
	if h.Dimension == 1 {
		h.YLength = 1
	}
	log.WithFields(log.Fields{
		"name":    h.Name,
		"dim":     h.Dimension,
		"x":       h.XLength,
		"y":       h.YLength,
		"load":    h.LoadFormat,
		"nonzero": h.NonZero,
	}).Debug("spc: header")

	var counts []int
	if h.Dense() {
		counts, err = readDense(r, h)
	} else {
		counts, err = readSparse(r, h)
	}
	if err != nil {
		return nil, err
	}

	var ch spectrum.Channels
	if h.Dimension == 1 {
		ch, err = spectrum.AdoptOneDim(counts, nil)
	} else {
		grid := make([][]int, h.YLength)
		for row := range grid {
			grid[row] = counts[row*h.XLength : (row+1)*h.XLength : (row+1)*h.XLength]
		}
		ch, err = spectrum.AdoptTwoDim(grid, nil)
	}
	if err != nil {
		return nil, err
	}
	sp, err := sess.NewSpectrum(h.Name, ch)
	if err != nil {
		return nil, err
	}
	sp.Date = h.Created
	return sp, nil
}

// readDense reads every channel in row-major order right after the header.
func readDense(r io.ReaderAt, h *Header) ([]int, error) {
	n := h.Channels()
	width := valueWidth(h.OrigLoadFormat)
	b, err := readSection(r, headerSize, int64(n)*int64(width))
	if err != nil {
		return nil, err
	}
	counts := make([]int, n)
	for i := range counts {
		counts[i] = getValue(b[i*width:], width)
	}
	return counts, nil
}

// readSparse places NonZero values at the positions flagged in the bitmap,
// in the order the bitmap yields them.
func readSparse(r io.ReaderAt, h *Header) ([]int, error) {
	n := h.Channels()
	if h.NonZero < 0 || h.NonZero > n {
		return nil, fmt.Errorf("%w: %d non-zero channels of %d", ErrCorrupt, h.NonZero, n)
	}
	records := h.NumBitmaskRecords()
	width := valueWidth(h.LoadFormat)
	payloadOff := int64(records+1) * recordSize
	payloadLen := int64(h.NonZero) * int64(width)
	// The payload follows the bitmap, so its end bounds every section below.
	if err := ensure(r, payloadOff, payloadLen); err != nil {
		return nil, err
	}
	bitmap, err := readSection(r, offBitmask, int64(records)*recordSize)
	if err != nil {
		return nil, err
	}
	positions, err := bitindex.Decode(bitmap, h.NonZero)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	b, err := readSection(r, payloadOff, payloadLen)
	if err != nil {
		return nil, err
	}
	counts := make([]int, n)
	for k, p := range positions {
		if p >= n {
			return nil, fmt.Errorf("%w: position %d of %d channels", ErrCorrupt, p, n)
		}
		counts[p] = getValue(b[k*width:], width)
		log.Tracef("spc: channel %d = %d", p, counts[p])
	}
	return counts, nil
}

// readSection reads exactly n bytes at off. The input is checked to reach
// off+n before the buffer is allocated.
func readSection(r io.ReaderAt, off, n int64) ([]byte, error) {
	if err := ensure(r, off, n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	got, err := r.ReadAt(b, off)
	if int64(got) == n {
		return b, nil
	}
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: wanted %d bytes at offset %d, got %d", ErrTruncated, n, off, got)
	}
	return nil, err
}

// sizer is implemented by *bytes.Reader, *strings.Reader and
// *io.SectionReader.
type sizer interface {
	Size() int64
}

// ensure reports ErrTruncated unless r holds at least off+n bytes.
func ensure(r io.ReaderAt, off, n int64) error {
	if n <= 0 {
		return nil
	}
	end := off + n
	size := int64(-1)
	switch v := r.(type) {
	case sizer:
		size = v.Size()
	case *os.File:
		if fi, err := v.Stat(); err == nil && fi.Mode().IsRegular() {
			size = fi.Size()
		}
	}
	if size >= 0 {
		if size < end {
			return fmt.Errorf("%w: wanted %d bytes at offset %d, input holds %d", ErrTruncated, n, off, size)
		}
		return nil
	}
	var last [1]byte
	if got, err := r.ReadAt(last[:], end-1); got != 1 {
		if err == nil || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: wanted %d bytes at offset %d", ErrTruncated, n, off)
		}
		return err
	}
	return nil
}
