package spectrum

import (
	"fmt"
	"math"
)

// TwoDim is a rectangular 2D channel set indexed [row][column], where rows
// run along y and columns along x.
type TwoDim struct {
	count       [][]int
	uncertainty [][]float64
	max         int
	maxRow      int
	maxCol      int
}

// NewTwoDim copies count and uncertainty into a new channel set. A nil
// uncertainty is derived as sqrt(count).
func NewTwoDim(count [][]int, uncertainty [][]float64) (*TwoDim, error) {
	c := make([][]int, len(count))
	for i, row := range count {
		c[i] = append([]int(nil), row...)
	}
	var u [][]float64
	if uncertainty != nil {
		u = make([][]float64, len(uncertainty))
		for i, row := range uncertainty {
			u[i] = append([]float64(nil), row...)
		}
	}
	return AdoptTwoDim(c, u)
}

// AdoptTwoDim builds a channel set around the given rows without copying
// them. Ownership moves to the channel set.
func AdoptTwoDim(count [][]int, uncertainty [][]float64) (*TwoDim, error) {
	if len(count) == 0 || len(count[0]) == 0 {
		return nil, fmt.Errorf("%w: zero channels", ErrShape)
	}
	cols := len(count[0])
	for i, row := range count {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrShape, i, len(row), cols)
		}
	}
	if uncertainty == nil {
		uncertainty = make([][]float64, len(count))
		for i, row := range count {
			uncertainty[i] = make([]float64, cols)
			for j, v := range row {
				uncertainty[i][j] = countUncertainty(v)
			}
		}
	}
	if len(uncertainty) != len(count) {
		return nil, fmt.Errorf("%w: %d count rows, %d uncertainty rows", ErrShape, len(count), len(uncertainty))
	}
	for i, row := range uncertainty {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: uncertainty row %d has %d columns, want %d", ErrShape, i, len(row), cols)
		}
	}
	c := &TwoDim{count: count, uncertainty: uncertainty}
	c.updateMax()
	return c, nil
}

func (c *TwoDim) Dimension() int { return 2 }

// Shape returns the number of rows (y) and columns (x).
func (c *TwoDim) Shape() (rows, cols int) { return len(c.count), len(c.count[0]) }

func (c *TwoDim) Count(row, col int) int { return c.count[row][col] }

func (c *TwoDim) Uncertainty(row, col int) float64 { return c.uncertainty[row][col] }

// Counts returns a copy of the count grid.
func (c *TwoDim) Counts() [][]int {
	out := make([][]int, len(c.count))
	for i, row := range c.count {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Uncertainties returns a copy of the uncertainty grid.
func (c *TwoDim) Uncertainties() [][]float64 {
	out := make([][]float64, len(c.uncertainty))
	for i, row := range c.uncertainty {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func (c *TwoDim) Max() int { return c.max }

// MaxPosition returns the first (row, col) holding Max, scanning rows in
// order and columns left to right.
func (c *TwoDim) MaxPosition() (row, col int) { return c.maxRow, c.maxCol }

func (c *TwoDim) Total() int {
	t := 0
	for _, row := range c.count {
		for _, v := range row {
			t += v
		}
	}
	return t
}

func (c *TwoDim) Clone() *TwoDim {
	return &TwoDim{
		count:       c.Counts(),
		uncertainty: c.Uncertainties(),
		max:         c.max,
		maxRow:      c.maxRow,
		maxCol:      c.maxCol,
	}
}

func (c *TwoDim) updateMax() {
	c.max, c.maxRow, c.maxCol = c.count[0][0], 0, 0
	for i, row := range c.count {
		for j, v := range row {
			if v > c.max {
				c.max, c.maxRow, c.maxCol = v, i, j
			}
		}
	}
}

func (c *TwoDim) Add(o *TwoDim) error      { return c.Apply(OpAdd, o) }
func (c *TwoDim) Subtract(o *TwoDim) error { return c.Apply(OpSubtract, o) }
func (c *TwoDim) Multiply(o *TwoDim) error { return c.Apply(OpMultiply, o) }
func (c *TwoDim) Divide(o *TwoDim) error   { return c.Apply(OpDivide, o) }

// Apply combines o into c channel by channel. c is left untouched when an
// error is returned.
func (c *TwoDim) Apply(op Op, o *TwoDim) error {
	r1, c1 := c.Shape()
	r2, c2 := o.Shape()
	if r1 != r2 || c1 != c2 {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrShapeMismatch, r1, c1, r2, c2)
	}
	if op == OpDivide {
		for i, row := range o.count {
			for j, v := range row {
				if v == 0 {
					return fmt.Errorf("%w: channel (%d,%d) of divisor", ErrDivisionByZero, i, j)
				}
			}
		}
	}
	for i := range c.count {
		for j := range c.count[i] {
			c.count[i][j], c.uncertainty[i][j] = op.apply(
				c.count[i][j], o.count[i][j], c.uncertainty[i][j], o.uncertainty[i][j])
		}
	}
	c.updateMax()
	return nil
}

// Scale multiplies every count by factor, truncating toward zero, and
// scales the uncertainty by |factor|.
func (c *TwoDim) Scale(factor float64) {
	for i := range c.count {
		for j := range c.count[i] {
			c.count[i][j] = int(float64(c.count[i][j]) * factor)
			c.uncertainty[i][j] *= math.Abs(factor)
		}
	}
	c.updateMax()
}

// Offset adds k to every count.
func (c *TwoDim) Offset(k int) {
	for i := range c.count {
		for j := range c.count[i] {
			c.count[i][j] += k
		}
	}
	c.updateMax()
}
