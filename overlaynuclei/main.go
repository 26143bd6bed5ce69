// Command overlaynuclei overlays the unit-area normalized distribution of
// one histogram for several targets at a fixed kinematic setting.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pkg/profile"

	"github.com/cafe-experiment/cafeplot"
	"github.com/cafe-experiment/cafeplot/config"
	"github.com/cafe-experiment/cafeplot/dataset"
)

var (
	cfgFile = flag.String("config", "", "optional YAML configuration file")
	kin     = flag.String("kin", "MF", "kinematic setting shared by all targets")
	hist    = flag.String("hist", "kin_plots/H_Pm", "histogram path inside the combined ROOT files")
	output  = flag.String("o", "overlay.png", "plot output file")
	title   = flag.String("title", "", "plot title")
	xlabel  = flag.String("xlabel", "", "x-axis label")
	ylabel  = flag.String("ylabel", "Normalized Counts", "y-axis label")
	logY    = flag.Bool("logy", false, "logarithmic y-axis")
	cpuProf = flag.String("cpuprofile", "", "directory to write a CPU profile to")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <target>...

ex:
 $> overlaynuclei -kin SRC -hist kin_plots/H_Pm -o pm_src.pdf LD2 Be9 B10 B11 C12

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("overlaynuclei: ")
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
		log.Fatalf("could not overlay histograms: %+v", err)
	}
}

func run(targets []string) error {
	cfg, err := config.Load(*cfgFile)
	if err != nil {
		return err
	}
	ctx := context.Background()
	src, err := cfg.OpenSource(ctx)
	if err != nil {
		return err
	}
	store := cfg.Store(src)

	entries := make([]cafeplot.Entry, 0, len(targets))
	for _, tgt := range targets {
		k := dataset.Key{Target: tgt, Kin: *kin}
		h, err := store.H1D(ctx, k, *hist)
		if err != nil {
			return err
		}
		entries = append(entries, cafeplot.Entry{Label: tgt + " " + *kin, Hist: h})
	}

	style := cafeplot.DefaultStyle()
	style.LogY = *logY
	p, err := cafeplot.Overlay(style, cafeplot.Labels{Title: *title, X: *xlabel, Y: *ylabel}, entries...)
	if err != nil {
		return err
	}
	if err := cafeplot.Save(p, style, *output); err != nil {
		return err
	}
	log.Printf("wrote %s", *output)
	return nil
}
