package spc

import (
	"fmt"
	"io"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/VictorDenisov/spectra/internal/bitindex"
	"github.com/VictorDenisov/spectra/spectrum"
)

// grid is a row-major view of the channels being written.
type grid struct {
	x, y int
	at   func(row, col int) int
}

func (g grid) linear(p int) int {
	return g.at(p/g.x, p%g.x)
}

func gridOf(s *spectrum.Spectrum) (grid, error) {
	switch ch := s.Channels().(type) {
	case *spectrum.OneDim:
		return grid{x: ch.Shape(), y: 1, at: func(_, col int) int { return ch.Count(col) }}, nil
	case *spectrum.TwoDim:
		rows, cols := ch.Shape()
		return grid{x: cols, y: rows, at: ch.Count}, nil
	}
	return grid{}, fmt.Errorf("%w: %T", ErrUnsupportedSpectrum, s.Channels())
}

// visitationIndex is the channel probed at step i of the write scan. It
// mirrors i within its byte so that values come out in the order the
// bitmap decoder yields positions.
func visitationIndex(i int) int {
	return 8*(i/8) + (7 - i%8)
}

// loadFormatFor picks 2-byte values when every count fits, else 4-byte.
func loadFormatFor(hi, lo int) int {
	if hi < math.MaxInt16 && lo >= math.MinInt16 {
		return LoadShort
	}
	return LoadInt
}

// Write encodes s in SMAUG form. The spectrum's Date is written as is.
func Write(w io.Writer, s *spectrum.Spectrum) error {
	b, err := Marshal(s)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return opError("write", err)
	}
	return nil
}

// Marshal returns the SMAUG encoding of s.
func Marshal(s *spectrum.Spectrum) ([]byte, error) {
	b, err := marshal(s)
	return b, opError("write", err)
}

func marshal(s *spectrum.Spectrum) ([]byte, error) {
	g, err := gridOf(s)
	if err != nil {
		return nil, err
	}
	if g.x > math.MaxUint16 || g.y > math.MaxUint16 {
		return nil, fmt.Errorf("%w: %dx%d does not fit the header", ErrBadDimension, g.x, g.y)
	}
	n := g.x * g.y
	records := bitmaskRecords(n)

	hi, lo := s.Channels().Max(), 0
	for p := 0; p < n; p++ {
		if v := g.linear(p); v < lo {
			lo = v
		}
	}
	load := loadFormatFor(hi, lo)
	width := valueWidth(load)

	var (
		positions []int
		payload   []byte
		total     int
		value     = make([]byte, width)
	)
	// 2D grids are scanned through the row-major linear index, so only
	// positions inside each bitmap byte are mirrored. Rows are never
	// permuted; a per-axis transform would not read back.
	for i := 0; i < 8*((n+7)/8); i++ {
		p := visitationIndex(i)
		if p >= n {
			continue
		}
		v := g.linear(p)
		if v == 0 {
			continue
		}
		positions = append(positions, i)
		putValue(value, width, v)
		payload = append(payload, value...)
		total += v
	}

	h := &Header{
		Name:           s.Name(),
		Dimension:      s.Dimension(),
		XLength:        g.x,
		YLength:        g.y,
		OrigLoadFormat: load,
		LoadFormat:     load,
		NonZero:        len(positions),
		FormatInfo:     formatInfo(records),
		TotalCount:     int32(total),
	}
	h.stampDate(s.Date)

	out := make([]byte, (records+1)*recordSize, (records+1)*recordSize+len(payload))
	h.marshal(out)
	copy(out[offBitmask:], bitindex.Encode(positions, records*recordSize))
	out = append(out, payload...)

	log.WithFields(log.Fields{
		"name":    h.Name,
		"dim":     h.Dimension,
		"nonzero": h.NonZero,
		"records": records,
		"bytes":   len(out),
	}).Debug("spc: encoded")
	return out, nil
}
