package main

import (
	"sort"

	"github.com/VictorDenisov/spectra/spectrum"
)

func newRanking(sp *spectrum.Spectrum) *Ranking {
	var units []ChannelUnit
	if ch, ok := sp.OneDim(); ok {
		units = make([]ChannelUnit, ch.Shape())
		for i := range units {
			units[i] = ChannelUnit{0, i, ch.Count(i), ch.Uncertainty(i)}
		}
	} else if ch, ok := sp.TwoDim(); ok {
		rows, cols := ch.Shape()
		units = make([]ChannelUnit, 0, rows*cols)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				units = append(units, ChannelUnit{r, c, ch.Count(r, c), ch.Uncertainty(r, c)})
			}
		}
	}
	return &Ranking{units}
}

var _ sort.Interface = &Ranking{}

// Ranking orders channels by count.
type Ranking struct {
	units []ChannelUnit
}

func (s *Ranking) Len() int {
	return len(s.units)
}

func (s *Ranking) Less(i, j int) bool {
	return s.units[i].count < s.units[j].count
}

func (s *Ranking) Swap(i, j int) {
	s.units[i], s.units[j] = s.units[j], s.units[i]
}

// Top returns the n highest channels. Ties keep channel order.
func (s *Ranking) Top(n int) []ChannelUnit {
	sort.Stable(sort.Reverse(s))
	if n > len(s.units) {
		n = len(s.units)
	}
	if n < 0 {
		n = 0
	}
	return s.units[:n]
}

type ChannelUnit struct {
	row, col    int
	count       int
	uncertainty float64
}
