package main

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"

	"github.com/VictorDenisov/spectra/spectrum"
)

// heatMapData lays the grid out as [x, y, count] cells, skipping empty
// channels to keep the page small.
func heatMapData(ch *spectrum.TwoDim) []opts.HeatMapData {
	rows, cols := ch.Shape()
	data := make([]opts.HeatMapData, 0)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := ch.Count(r, c)
			if v == 0 {
				continue
			}
			data = append(data, opts.HeatMapData{Value: [3]interface{}{c, r, v}})
		}
	}
	log.Tracef("Heat map cells: %v\n", len(data))
	return data
}

func drawHeatMap(w io.Writer, sp *spectrum.Spectrum, ch *spectrum.TwoDim) error {
	rows, cols := ch.Shape()
	maxValue := ch.Max()
	if maxValue < 1 {
		maxValue = 1
	}
	log.Tracef("Max value: %v\n", maxValue)

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    sp.Name(),
			Subtitle: subtitle(sp),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x", Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y", Type: "category", Data: rng(rows)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        0,
			Max:        float32(maxValue),
			InRange: &opts.VisualMapInRange{
				Color: []string{"#f2f2f2", "#00ff00", "#006400"},
			},
		}),
	)
	hm.SetXAxis(rng(cols)).AddSeries(sp.Name(), heatMapData(ch))
	return hm.Render(w)
}
