package spc

import (
	"io"

	"github.com/VictorDenisov/spectra/spectrum"
)

// Extension is the file extension of SPC spectra.
const Extension = ".spc"

// Codec adapts the package functions to a format registry.
type Codec struct{}

func (Codec) Extension() string { return Extension }

func (Codec) Detect(r io.ReaderAt) (int, error) { return Detect(r) }

func (Codec) Read(r io.ReaderAt, sess *spectrum.Session) (*spectrum.Spectrum, error) {
	return Read(r, sess)
}

func (Codec) Write(w io.Writer, s *spectrum.Spectrum) error { return Write(w, s) }
