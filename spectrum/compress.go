package spectrum

import (
	"fmt"
	"math"
)

// Grouping selects how Compress sums each window of a 1D spectrum.
type Grouping int

const (
	// GroupSum adds up every channel in the window.
	GroupSum Grouping = iota
	// GroupLegacy reproduces older files: output channel i is count[i]
	// taken once per channel in the window, not the window sum.
	GroupLegacy
)

// Compress rebins c into windows of 2^exponent channels. Counts are summed
// and uncertainties combined in quadrature over each window. Trailing
// channels that do not fill a window are dropped.
func (c *OneDim) Compress(exponent int, g Grouping) (*OneDim, error) {
	group, err := groupSize(exponent, len(c.count))
	if err != nil {
		return nil, err
	}
	n := len(c.count) / group
	count := make([]int, n)
	uncertainty := make([]float64, n)
	for i := 0; i < n; i++ {
		var sumSq float64
		for j := i * group; j < (i+1)*group; j++ {
			if g == GroupLegacy {
				count[i] += c.count[i]
			} else {
				count[i] += c.count[j]
			}
			sumSq += c.uncertainty[j] * c.uncertainty[j]
		}
		uncertainty[i] = math.Sqrt(sumSq)
	}
	return AdoptOneDim(count, uncertainty)
}

// Compress rebins c into 2^ey rows by 2^ex columns per output channel.
func (c *TwoDim) Compress(ey, ex int) (*TwoDim, error) {
	rows, cols := c.Shape()
	gy, err := groupSize(ey, rows)
	if err != nil {
		return nil, err
	}
	gx, err := groupSize(ex, cols)
	if err != nil {
		return nil, err
	}
	nr, nc := rows/gy, cols/gx
	count := make([][]int, nr)
	uncertainty := make([][]float64, nr)
	for i := 0; i < nr; i++ {
		count[i] = make([]int, nc)
		uncertainty[i] = make([]float64, nc)
		for j := 0; j < nc; j++ {
			var sumSq float64
			for r := i * gy; r < (i+1)*gy; r++ {
				for k := j * gx; k < (j+1)*gx; k++ {
					count[i][j] += c.count[r][k]
					sumSq += c.uncertainty[r][k] * c.uncertainty[r][k]
				}
			}
			uncertainty[i][j] = math.Sqrt(sumSq)
		}
	}
	return AdoptTwoDim(count, uncertainty)
}

func groupSize(exponent, shape int) (int, error) {
	if exponent < 0 || exponent >= 62 || 1<<uint(exponent) >= shape {
		return 0, fmt.Errorf("%w: 2^%d against %d channels", ErrExponent, exponent, shape)
	}
	return 1 << uint(exponent), nil
}
