// Command comparehistos draws two histograms, possibly from different
// ROOT files, on the same axes with their integrals in the legend.
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
)

var (
	cfgFile = flag.String("config", "", "optional YAML configuration file")
	hist1   = flag.String("hist1", "kin_plots/H_Pm", "histogram path in the first file")
	hist2   = flag.String("hist2", "", "histogram path in the second file (default: -hist1)")
	leg1    = flag.String("leg1", "", "legend of the first histogram (default: file name)")
	leg2    = flag.String("leg2", "", "legend of the second histogram (default: file name)")
	norm    = flag.Bool("norm", false, "normalize both histograms to unit area")
	output  = flag.String("o", "compare.png", "plot output file")
	title   = flag.String("title", "", "plot title")
	xlabel  = flag.String("xlabel", "", "x-axis label")
	ylabel  = flag.String("ylabel", "", "y-axis label")
	logY    = flag.Bool("logy", false, "logarithmic y-axis")
	cpuProf = flag.String("cpuprofile", "", "directory to write a CPU profile to")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <file1.root> <file2.root>

ex:
 $> comparehistos -hist1 kin_plots/H_Em -norm -leg1 pass1 -leg2 pass2 a.root b.root

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("comparehistos: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	if flag.NArg() != 2 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	if *cpuProf != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProf)).Stop()
	}

	if err := run(flag.Arg(0), flag.Arg(1)); err != nil {
		log.Fatalf("could not compare histograms: %+v", err)
	}
}

func run(fname1, fname2 string) error {
	if *hist2 == "" {
		*hist2 = *hist1
	}
	if *leg1 == "" {
		*leg1 = fname1
	}
	if *leg2 == "" {
		*leg2 = fname2
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
	store := cfg.Store(src)

	h1, err := store.H1DFile(ctx, fname1, *hist1)
	if err != nil {
		return err
	}
	h2, err := store.H1DFile(ctx, fname2, *hist2)
	if err != nil {
		return err
	}

	style := cafeplot.DefaultStyle()
	style.LogY = *logY
	p := cafeplot.Compare(style,
		cafeplot.Labels{Title: *title, X: *xlabel, Y: *ylabel},
		cafeplot.Entry{Label: *leg1, Hist: h1},
		cafeplot.Entry{Label: *leg2, Hist: h2},
		*norm,
	)
	if err := cafeplot.Save(p, style, *output); err != nil {
		return err
	}
	log.Printf("wrote %s", *output)
	return nil
}
