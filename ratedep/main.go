// Command ratedep plots the rate dependence of charge-normalized yields
// (or T2 scaler counts) relative to the lowest current run, one series per
// run summary file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path"
	"strings"

	"github.com/pkg/profile"

	"github.com/cafe-experiment/cafeplot"
	"github.com/cafe-experiment/cafeplot/config"
	"github.com/cafe-experiment/cafeplot/source"
	"github.com/cafe-experiment/cafeplot/summary"
)

var (
	cfgFile = flag.String("config", "", "optional YAML configuration file")
	xAxis   = flag.String("x", "current", "abscissa: current or t2")
	t2      = flag.Bool("t2", false, "plot relative T2 scaler counts instead of yields")
	output  = flag.String("o", "ratedep.png", "plot output file")
	title   = flag.String("title", "", "plot title")
	cpuProf = flag.String("cpuprofile", "", "directory to write a CPU profile to")

	labels cafeplot.StringListFlag
)

func init() {
	flag.Var(&labels, "label", "legend of the series of the matching file (repeatable, default: file name)")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <summary.csv>...

ex:
 $> ratedep -label "LH2 pass1" -label "C12 pass1" lh2_rates.csv c12_rates.csv

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("ratedep: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() < 1 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	if *cpuProf != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProf)).Stop()
	}

	if err := run(flag.Args()); err != nil {
		log.Fatalf("could not plot rate dependence: %+v", err)
	}
}

func run(fnames []string) error {
	var (
		x        cafeplot.XAxis
		xlabel   string
		ylabel   = "Relative Yield"
		quantity = "yield"
	)
	switch strings.ToLower(*xAxis) {
	case "current":
		x, xlabel = cafeplot.ByCurrent, "Average Current [µA]"
	case "t2":
		x, xlabel = cafeplot.ByT2Rate, "T2 Scaler Rate [kHz]"
	default:
		return fmt.Errorf("invalid abscissa %q", *xAxis)
	}
	if *t2 {
		ylabel, quantity = "Relative T2 Scaler Counts", "T2 counts"
	}

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		return err
	}
	ctx := context.Background()
	src, err := cfg.OpenSource(ctx)
	if err != nil {
		return err
	}

	series := make([]cafeplot.Series, 0, len(fnames))
	for i, fname := range fnames {
		pts, err := load(ctx, src, fname, cfg.Columns)
		if err != nil {
			return err
		}
		label := path.Base(fname)
		if i < len(labels.Values) {
			label = labels.Values[i]
		}
		for _, pt := range pts {
			rel, relErr := pt.RelYield, pt.RelYieldErr
			if *t2 {
				rel, relErr = pt.RelT2, 0
			}
			log.Printf("%s: I=%.2f µA T2=%.2f kHz relative %s=%.4f ± %.4f",
				label, pt.Current, pt.T2Rate, quantity, rel, relErr)
		}
		series = append(series, cafeplot.Series{Label: label, Points: pts, T2: *t2})
	}

	style := cafeplot.DefaultStyle()
	p, err := cafeplot.RelativeYieldPlot(style, cafeplot.Labels{Title: *title, X: xlabel, Y: ylabel}, x, series...)
	if err != nil {
		return err
	}
	if err := cafeplot.Save(p, style, *output); err != nil {
		return err
	}
	log.Printf("wrote %s", *output)
	return nil
}

func load(ctx context.Context, src source.Source, fname string, cols summary.RateColumns) ([]summary.RunPoint, error) {
	f, err := src.Open(ctx, fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := summary.ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", fname, err)
	}
	t.Name = fname

	pts, err := summary.RelativeYields(t, cols)
	if err != nil {
		return nil, fmt.Errorf("could not compute relative yields of %q: %w", fname, err)
	}
	return pts, nil
}
