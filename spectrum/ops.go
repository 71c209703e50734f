package spectrum

import "math"

// Op is a channel-wise binary operation.
type Op int

const (
	OpAdd Op = iota
	OpSubtract
	OpMultiply
	OpDivide
)

// Symbol is the infix used when naming a result spectrum.
func (op Op) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	}
	return "?"
}

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	}
	return "unknown"
}

// apply combines one channel of each operand. The caller has already
// rejected zero denominators for OpDivide.
func (op Op) apply(c1, c2 int, u1, u2 float64) (int, float64) {
	switch op {
	case OpAdd:
		return c1 + c2, math.Sqrt(u1*u1 + u2*u2)
	case OpSubtract:
		return c1 - c2, math.Sqrt(u1*u1 + u2*u2)
	case OpMultiply:
		f1, f2 := float64(c1), float64(c2)
		return c1 * c2, math.Sqrt((f2*u1)*(f2*u1) + (f1*u2)*(f1*u2))
	case OpDivide:
		// A zero numerator leaves the uncertainty undefined (NaN or Inf).
		f1, f2 := float64(c1), float64(c2)
		r1, r2 := u1/f1, u2/f2
		return c1 / c2, (f1 / f2) * math.Sqrt(r1*r1+r2*r2)
	}
	panic("spectrum: unknown op")
}

// countUncertainty is the Poisson uncertainty of a raw count.
func countUncertainty(c int) float64 {
	return math.Sqrt(math.Abs(float64(c)))
}
