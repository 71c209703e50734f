package spectrum

import (
	"fmt"
	"math"
)

// OneDim is a 1D channel set.
type OneDim struct {
	count       []int
	uncertainty []float64
	max         int
	maxPos      int
}

// NewOneDim copies count and uncertainty into a new channel set. A nil
// uncertainty is derived as sqrt(count).
func NewOneDim(count []int, uncertainty []float64) (*OneDim, error) {
	c := append([]int(nil), count...)
	var u []float64
	if uncertainty != nil {
		u = append([]float64(nil), uncertainty...)
	}
	return AdoptOneDim(c, u)
}

// AdoptOneDim builds a channel set around the given slices without copying
// them. Ownership moves to the channel set.
func AdoptOneDim(count []int, uncertainty []float64) (*OneDim, error) {
	if len(count) == 0 {
		return nil, fmt.Errorf("%w: zero channels", ErrShape)
	}
	if uncertainty == nil {
		uncertainty = make([]float64, len(count))
		for i, c := range count {
			uncertainty[i] = countUncertainty(c)
		}
	}
	if len(uncertainty) != len(count) {
		return nil, fmt.Errorf("%w: %d counts, %d uncertainties", ErrShape, len(count), len(uncertainty))
	}
	c := &OneDim{count: count, uncertainty: uncertainty}
	c.updateMax()
	return c, nil
}

func (c *OneDim) Dimension() int { return 1 }

// Shape returns the number of channels.
func (c *OneDim) Shape() int { return len(c.count) }

func (c *OneDim) Count(i int) int { return c.count[i] }

func (c *OneDim) Uncertainty(i int) float64 { return c.uncertainty[i] }

// Counts returns a copy of the channel counts.
func (c *OneDim) Counts() []int { return append([]int(nil), c.count...) }

// Uncertainties returns a copy of the channel uncertainties.
func (c *OneDim) Uncertainties() []float64 { return append([]float64(nil), c.uncertainty...) }

// Max returns the largest count. MaxPosition is its channel index.
func (c *OneDim) Max() int { return c.max }

func (c *OneDim) MaxPosition() int { return c.maxPos }

// Total returns the sum of all counts.
func (c *OneDim) Total() int {
	t := 0
	for _, v := range c.count {
		t += v
	}
	return t
}

func (c *OneDim) Clone() *OneDim {
	return &OneDim{
		count:       c.Counts(),
		uncertainty: c.Uncertainties(),
		max:         c.max,
		maxPos:      c.maxPos,
	}
}

func (c *OneDim) updateMax() {
	c.max, c.maxPos = c.count[0], 0
	for i, v := range c.count {
		if v > c.max {
			c.max, c.maxPos = v, i
		}
	}
}

func (c *OneDim) Add(o *OneDim) error      { return c.Apply(OpAdd, o) }
func (c *OneDim) Subtract(o *OneDim) error { return c.Apply(OpSubtract, o) }
func (c *OneDim) Multiply(o *OneDim) error { return c.Apply(OpMultiply, o) }
func (c *OneDim) Divide(o *OneDim) error   { return c.Apply(OpDivide, o) }

// Apply combines o into c channel by channel. c is left untouched when an
// error is returned.
func (c *OneDim) Apply(op Op, o *OneDim) error {
	if len(c.count) != len(o.count) {
		return fmt.Errorf("%w: %d channels vs %d", ErrShapeMismatch, len(c.count), len(o.count))
	}
	if op == OpDivide {
		for i, v := range o.count {
			if v == 0 {
				return fmt.Errorf("%w: channel %d of divisor", ErrDivisionByZero, i)
			}
		}
	}
	for i := range c.count {
		c.count[i], c.uncertainty[i] = op.apply(c.count[i], o.count[i], c.uncertainty[i], o.uncertainty[i])
	}
	c.updateMax()
	return nil
}

// Scale multiplies every count by factor, truncating toward zero, and
// scales the uncertainty by |factor|.
func (c *OneDim) Scale(factor float64) {
	for i := range c.count {
		c.count[i] = int(float64(c.count[i]) * factor)
		c.uncertainty[i] *= math.Abs(factor)
	}
	c.updateMax()
}

// Offset adds k to every count. Uncertainties are left as they were.
func (c *OneDim) Offset(k int) {
	for i := range c.count {
		c.count[i] += k
	}
	c.updateMax()
}

// Area sums the counts of channels lo..hi inclusive, numbered from 1.
func (c *OneDim) Area(lo, hi int) (int, error) {
	if lo < 1 || lo >= hi || hi > len(c.count) {
		return 0, fmt.Errorf("%w: %d..%d of %d channels", ErrChannelRange, lo, hi, len(c.count))
	}
	area := 0
	for i := lo - 1; i < hi; i++ {
		area += c.count[i]
	}
	return area, nil
}

// Average is Area divided by the number of channels, truncated.
func (c *OneDim) Average(lo, hi int) (int, error) {
	area, err := c.Area(lo, hi)
	if err != nil {
		return 0, err
	}
	return area / (hi - lo + 1), nil
}
