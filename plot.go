package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	log "github.com/sirupsen/logrus"

	"github.com/VictorDenisov/spectra/spectrum"
)

// drawChart renders sp as an HTML page: a bar chart for 1D spectra and a
// heat map for 2D ones.
func drawChart(w io.Writer, sp *spectrum.Spectrum) error {
	if ch, ok := sp.OneDim(); ok {
		return drawBar(w, sp, ch)
	}
	if ch, ok := sp.TwoDim(); ok {
		return drawHeatMap(w, sp, ch)
	}
	return fmt.Errorf("cannot plot %T", sp.Channels())
}

func drawBar(w io.Writer, sp *spectrum.Spectrum, ch *spectrum.OneDim) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    sp.Name(),
			Subtitle: subtitle(sp),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "channel"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "counts"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	barData := make([]opts.BarData, ch.Shape())
	for i := 0; i < ch.Shape(); i++ {
		barData[i] = opts.BarData{Value: ch.Count(i)}
	}
	bar.SetXAxis(rng(ch.Shape())).AddSeries(sp.Name(), barData)
	return bar.Render(w)
}

func subtitle(sp *spectrum.Spectrum) string {
	return fmt.Sprintf("#%d, %s, total %d", sp.Ref(), sp.Date.Format("02-Jan-06 15:04:05"), sp.Channels().Total())
}

func plotFile(name string, sp *spectrum.Spectrum) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := drawChart(f, sp); err != nil {
		f.Close()
		return err
	}
	log.WithFields(log.Fields{"file": name, "spectrum": sp.String()}).Info("chart written")
	return f.Close()
}
