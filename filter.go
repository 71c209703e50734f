package main

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"

	"github.com/VictorDenisov/spectra/spectrum"
)

// Filter convolves a 1D spectrum with a fixed, centered kernel.
type Filter struct {
	kernel []float64
	half   int
}

// NewGaussianFilter builds a normalised Gaussian kernel of the given width
// in channels, truncated at three widths.
func NewGaussianFilter(sigma float64) (*Filter, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("smoothing width must be positive, got %v", sigma)
	}
	half := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*half+1)
	for i := range kernel {
		x := float64(i - half)
		kernel[i] = math.Exp(-x * x / (2 * sigma * sigma))
	}
	divVS(kernel, sumV(kernel))
	return &Filter{kernel, half}, nil
}

// Convolve returns signal convolved with the kernel, aligned to signal.
func (f *Filter) Convolve(signal []float64) []float64 {
	return convolve(signal, f.kernel, f.half)
}

func convolve(signal, kernel []float64, half int) []float64 {
	n := len(signal) + len(kernel) - 1
	x := dsputils.ToComplex(dsputils.ZeroPadF(signal, n))
	k := dsputils.ToComplex(dsputils.ZeroPadF(kernel, n))
	full := toReal(fft.Convolve(x, k))
	return full[half : half+len(signal)]
}

// Smooth returns a smoothed copy of a 1D spectrum. Counts are rounded to
// the nearest integer; uncertainties propagate as sqrt(sum k²u²).
func (f *Filter) Smooth(sess *spectrum.Session, sp *spectrum.Spectrum) (*spectrum.Spectrum, error) {
	ch, ok := sp.OneDim()
	if !ok {
		return nil, fmt.Errorf("smoothing needs a 1D spectrum, %s is %dD", sp.Name(), sp.Dimension())
	}
	smoothed := f.Convolve(toFloat(ch.Counts()))
	variance := convolve(sqV(ch.Uncertainties()), sqV(f.kernel), f.half)

	count := make([]int, len(smoothed))
	uncertainty := make([]float64, len(smoothed))
	for i := range smoothed {
		count[i] = int(math.Round(smoothed[i]))
		uncertainty[i] = math.Sqrt(math.Max(variance[i], 0))
	}
	res, err := spectrum.AdoptOneDim(count, uncertainty)
	if err != nil {
		return nil, err
	}
	return sess.NewSpectrum(sp.Name()+"_smooth", res)
}

// toReal drops the imaginary rounding residue of a real convolution.
func toReal(a []complex128) []float64 {
	r := make([]float64, len(a))
	for i := 0; i < len(a); i++ {
		r[i] = real(a[i])
	}
	return r
}
