// Package spectrum holds in-memory 1D and 2D histograms of channel counts
// together with their per-channel uncertainties, and the arithmetic used to
// combine them.
//
// # Channels
//
// A OneDim or TwoDim owns its count and uncertainty arrays. The New*
// constructors copy their inputs; the Adopt* constructors take ownership of
// the slices passed in, and the caller must not touch them afterwards.
//
// # Arithmetic
//
// Binary operations come in two forms. The Session methods (Add, Subtract,
// Multiply, Divide) build a new Spectrum named "<a>_<op>_<b>". The channel
// methods of the same names modify the receiver in place. Both share the
// same per-channel formulas:
//
//	add, subtract  c = c1 ± c2    u = sqrt(u1² + u2²)
//	multiply       c = c1 * c2    u = sqrt((c2*u1)² + (c1*u2)²)
//	divide         c = c1 / c2    u = (c1/c2) * sqrt((u1/c1)² + (u2/c2)²)
//
// Shapes and zero denominators are checked before any channel is written.
//
// # Thread Safety
//
// Nothing here locks. A channel set shared between goroutines must be
// guarded by the caller. Session reference numbers are safe to allocate
// concurrently.
package spectrum
