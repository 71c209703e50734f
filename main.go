package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/VictorDenisov/spectra/format"
	"github.com/VictorDenisov/spectra/spectrum"
)

// spectra works with SPC histogram files from the command line:
//
//	spectra info run42.spc
//	spectra add run42.spc background.spc -o net.spc.zst
//	spectra compress net.spc.zst -e 2 -o coarse.spc
//	spectra plot coarse.spc -o coarse.html
func main() {

	var logLevel, logFormat string
	var outFile string
	var lo, hi, top int
	var exponent, exponentY int
	var legacy bool
	var sigma float64

	registry := format.Default()
	sess := spectrum.NewSession()

	outFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "File to write the result to",
			Destination: &outFile,
			Required:    true,
		}
	}

	arithmetic := func(name, usage string, op spectrum.Op) *cli.Command {
		return &cli.Command{
			Name:      name,
			Usage:     usage,
			ArgsUsage: "A B",
			Flags:     []cli.Flag{outFlag()},
			Action: func(cCtx *cli.Context) error {
				a, b, err := openPair(cCtx, registry, sess)
				if err != nil {
					return err
				}
				res, err := sess.Combine(op, a, b)
				if err != nil {
					return err
				}
				return save(registry, outFile, res)
			},
		}
	}

	app := &cli.App{
		Name:                 "spectra",
		Usage:                "Inspect, combine and convert SPC spectra",
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "Log level: trace, debug, info, warn, error",
				Value:       "info",
				EnvVars:     []string{"SPECTRA_LOG_LEVEL"},
				Destination: &logLevel,
			},
			&cli.StringFlag{
				Name:        "log-format",
				Usage:       "Log format: text or json",
				Value:       "text",
				EnvVars:     []string{"SPECTRA_LOG_FORMAT"},
				Destination: &logFormat,
			},
		},
		Before: func(cCtx *cli.Context) error {
			return setupLogging(logLevel, logFormat)
		},
		Commands: []*cli.Command{
			{
				Name:      "info",
				Aliases:   []string{"i"},
				Usage:     "Print a summary of a spectrum",
				ArgsUsage: "FILE",
				Action: func(cCtx *cli.Context) error {
					sp, err := openArg(cCtx, registry, sess, 0)
					if err != nil {
						return err
					}
					printSummary(sp)
					return nil
				},
			},
			{
				Name:      "detect",
				Usage:     "Report the format and dimension of a file",
				ArgsUsage: "FILE",
				Action: func(cCtx *cli.Context) error {
					c, dim, err := registry.Detect(cCtx.Args().Get(0))
					if err != nil {
						return err
					}
					fmt.Printf("%s: %s, %dD\n", cCtx.Args().Get(0), c.Extension(), dim)
					return nil
				},
			},
			{
				Name:      "convert",
				Aliases:   []string{"c"},
				Usage:     "Rewrite a spectrum, optionally compressed (.spc.zst, .spc.lzma)",
				ArgsUsage: "IN",
				Flags:     []cli.Flag{outFlag()},
				Action: func(cCtx *cli.Context) error {
					sp, err := openArg(cCtx, registry, sess, 0)
					if err != nil {
						return err
					}
					return save(registry, outFile, sp)
				},
			},
			arithmetic("add", "Add two spectra channel by channel", spectrum.OpAdd),
			arithmetic("sub", "Subtract B from A channel by channel", spectrum.OpSubtract),
			arithmetic("mul", "Multiply two spectra channel by channel", spectrum.OpMultiply),
			arithmetic("div", "Divide A by B channel by channel", spectrum.OpDivide),
			{
				Name:      "compress",
				Usage:     "Rebin a spectrum by powers of two",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					outFlag(),
					&cli.IntFlag{
						Name:        "exp",
						Aliases:     []string{"e"},
						Usage:       "Group 2^exp channels (x axis for 2D)",
						Destination: &exponent,
						Required:    true,
					},
					&cli.IntFlag{
						Name:        "exp-y",
						Aliases:     []string{"ey"},
						Usage:       "Group 2^exp-y rows of a 2D spectrum",
						Destination: &exponentY,
					},
					&cli.BoolFlag{
						Name:        "legacy",
						Usage:       "Reproduce the historical 1D grouping of older tools",
						Destination: &legacy,
					},
				},
				Action: func(cCtx *cli.Context) error {
					sp, err := openArg(cCtx, registry, sess, 0)
					if err != nil {
						return err
					}
					g := spectrum.GroupSum
					if legacy {
						g = spectrum.GroupLegacy
					}
					res, err := compressSpectrum(sess, sp, exponentY, exponent, g)
					if err != nil {
						return err
					}
					return save(registry, outFile, res)
				},
			},
			{
				Name:      "area",
				Usage:     "Sum and average counts over channels lo..hi (1-based)",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "lo",
						Usage:       "First channel",
						Destination: &lo,
						Required:    true,
					},
					&cli.IntFlag{
						Name:        "hi",
						Usage:       "Last channel",
						Destination: &hi,
						Required:    true,
					},
				},
				Action: func(cCtx *cli.Context) error {
					sp, err := openArg(cCtx, registry, sess, 0)
					if err != nil {
						return err
					}
					ch, ok := sp.OneDim()
					if !ok {
						return fmt.Errorf("area needs a 1D spectrum, %s is %dD", sp.Name(), sp.Dimension())
					}
					area, err := ch.Area(lo, hi)
					if err != nil {
						return err
					}
					avg, _ := ch.Average(lo, hi)
					fmt.Printf("Area: %d\nAverage: %d\n", area, avg)
					return nil
				},
			},
			{
				Name:      "peaks",
				Aliases:   []string{"p"},
				Usage:     "List the channels with the highest counts",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "n",
						Usage:       "Number of channels to list",
						Value:       10,
						Destination: &top,
					},
				},
				Action: func(cCtx *cli.Context) error {
					sp, err := openArg(cCtx, registry, sess, 0)
					if err != nil {
						return err
					}
					printPeaks(sp, newRanking(sp).Top(top))
					return nil
				},
			},
			{
				Name:      "smooth",
				Usage:     "Smooth a 1D spectrum with a Gaussian kernel",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					outFlag(),
					&cli.Float64Flag{
						Name:        "sigma",
						Aliases:     []string{"s"},
						Usage:       "Kernel width in channels",
						Value:       2,
						Destination: &sigma,
					},
				},
				Action: func(cCtx *cli.Context) error {
					sp, err := openArg(cCtx, registry, sess, 0)
					if err != nil {
						return err
					}
					f, err := NewGaussianFilter(sigma)
					if err != nil {
						return err
					}
					res, err := f.Smooth(sess, sp)
					if err != nil {
						return err
					}
					return save(registry, outFile, res)
				},
			},
			{
				Name:      "plot",
				Usage:     "Render a spectrum as an HTML chart",
				ArgsUsage: "FILE",
				Flags:     []cli.Flag{outFlag()},
				Action: func(cCtx *cli.Context) error {
					sp, err := openArg(cCtx, registry, sess, 0)
					if err != nil {
						return err
					}
					return plotFile(outFile, sp)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogging(level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return err
	}
	log.SetLevel(lvl)
	switch format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

func openArg(cCtx *cli.Context, r *format.Registry, sess *spectrum.Session, i int) (*spectrum.Spectrum, error) {
	path := cCtx.Args().Get(i)
	if path == "" {
		return nil, fmt.Errorf("missing file argument %d", i+1)
	}
	return r.Open(path, sess)
}

func openPair(cCtx *cli.Context, r *format.Registry, sess *spectrum.Session) (a, b *spectrum.Spectrum, err error) {
	if a, err = openArg(cCtx, r, sess, 0); err != nil {
		return nil, nil, err
	}
	if b, err = openArg(cCtx, r, sess, 1); err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func save(r *format.Registry, path string, sp *spectrum.Spectrum) error {
	if err := r.Save(path, sp); err != nil {
		return err
	}
	fmt.Printf("Wrote %s to %s\n", sp, path)
	return nil
}

// compressSpectrum rebins 1D spectra by 2^ex and 2D spectra by 2^ey x 2^ex.
func compressSpectrum(sess *spectrum.Session, sp *spectrum.Spectrum, ey, ex int, g spectrum.Grouping) (*spectrum.Spectrum, error) {
	var (
		ch  spectrum.Channels
		err error
	)
	if c, ok := sp.OneDim(); ok {
		ch, err = c.Compress(ex, g)
	} else if c, ok := sp.TwoDim(); ok {
		ch, err = c.Compress(ey, ex)
	} else {
		return nil, fmt.Errorf("cannot compress %T", sp.Channels())
	}
	if err != nil {
		return nil, err
	}
	return sess.NewSpectrum(sp.Name(), ch)
}

func printSummary(sp *spectrum.Spectrum) {
	fmt.Printf("Name: %s\n", sp.Name())
	fmt.Printf("Reference: %d\n", sp.Ref())
	fmt.Printf("Date: %s\n", sp.Date.Format("02-Jan-2006 15:04:05"))
	fmt.Printf("Dimension: %d\n", sp.Dimension())
	if ch, ok := sp.OneDim(); ok {
		fmt.Printf("Channels: %d\n", ch.Shape())
		fmt.Printf("Max: %d at channel %d\n", ch.Max(), ch.MaxPosition()+1)
	} else if ch, ok := sp.TwoDim(); ok {
		rows, cols := ch.Shape()
		r, c := ch.MaxPosition()
		fmt.Printf("Channels: %d x %d\n", cols, rows)
		fmt.Printf("Max: %d at (%d, %d)\n", ch.Max(), c, r)
	}
	fmt.Printf("Total: %d\n", sp.Channels().Total())
}

func printPeaks(sp *spectrum.Spectrum, units []ChannelUnit) {
	for _, u := range units {
		if sp.Dimension() == 1 {
			fmt.Printf("%6d  %10d ± %.2f\n", u.col+1, u.count, u.uncertainty)
		} else {
			fmt.Printf("%6d %6d  %10d ± %.2f\n", u.col, u.row, u.count, u.uncertainty)
		}
	}
}
