// Command singleratio computes the charge, tracking efficiency and live
// time normalized single ratio of a histogram between two data sets,
// e.g. Ca48 MF over Ca40 MF.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/pkg/profile"

	"github.com/cafe-experiment/cafeplot"
	"github.com/cafe-experiment/cafeplot/config"
	"github.com/cafe-experiment/cafeplot/dataset"
	"github.com/cafe-experiment/cafeplot/histio"
	"github.com/cafe-experiment/cafeplot/ratio"
)

var (
	cfgFile = flag.String("config", "", "optional YAML configuration file")
	hist    = flag.String("hist", "kin_plots/H_Pm", "histogram path inside the combined ROOT files")
	show    = flag.Bool("plot", false, "draw the normalized histograms and their ratio")
	output  = flag.String("o", "ratio.png", "plot output file")
	rootOut = flag.String("root", "", "ROOT file to store the normalized histograms and the ratio in")
	title   = flag.String("title", "", "plot title")
	xlabel  = flag.String("xlabel", "", "x-axis label")
	logY    = flag.Bool("logy", false, "logarithmic y-axis on the top pad")
	cpuProf = flag.String("cpuprofile", "", "directory to write a CPU profile to")
)

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] <target>_<kin> <target>_<kin>

ex:
 $> singleratio -hist kin_plots/H_Pm -plot Ca48_MF Ca40_MF

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("singleratio: ")
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
		log.Fatalf("could not compute single ratio: %+v", err)
	}
}

func run(argA, argB string) error {
	a, err := dataset.ParseKey(argA)
	if err != nil {
		return err
	}
	b, err := dataset.ParseKey(argB)
	if err != nil {
		return err
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

	res, err := cfg.Scaler(src).Compute(ctx, a, b, *hist)
	if err != nil {
		return err
	}
	printResult(os.Stdout, res)

	if *rootOut != "" {
		if err := writeROOT(*rootOut, res); err != nil {
			return err
		}
		log.Printf("wrote %s", *rootOut)
	}

	if !*show {
		return nil
	}
	style := cafeplot.DefaultStyle()
	style.Height = style.Width * 4 / 3
	style.LogY = *logY
	rp := cafeplot.RatioPlot(style, cafeplot.Labels{Title: *title, X: *xlabel}, res)
	if err := cafeplot.Save(rp, style, *output); err != nil {
		return err
	}
	log.Printf("wrote %s", *output)
	return nil
}

func printResult(out io.Writer, res *ratio.Result) {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "set\tcharge [mC]\thms trk eff\tshms trk eff\tlive time\tscale\n")
	for _, s := range []struct {
		k dataset.Key
		n ratio.Normalization
	}{{res.KeyA, res.NormA}, {res.KeyB, res.NormB}} {
		scale, _ := s.n.ScaleFactor()
		fmt.Fprintf(w, "%v\t%.4f\t%.4f ± %.4f\t%.4f ± %.4f\t%.4f ± %.4f\t%.6g\n",
			s.k, s.n.Charge.Value,
			s.n.HMSTrackEff.Value, s.n.HMSTrackEff.Err,
			s.n.SHMSTrackEff.Value, s.n.SHMSTrackEff.Err,
			s.n.LiveTime.Value, s.n.LiveTime.Err,
			scale,
		)
	}

	fmt.Fprintf(w, "\n%s\n", res.Ratio.Name)
	fmt.Fprintf(w, "bin\tlow\thigh\tratio\n")
	for i, bin := range res.Ratio.Bins {
		if !bin.Valid {
			fmt.Fprintf(w, "%d\t%g\t%g\t-\n", i, bin.XMin, bin.XMax)
			continue
		}
		fmt.Fprintf(w, "%d\t%g\t%g\t%.4g ± %.2g\n", i, bin.XMin, bin.XMax, bin.Value, bin.Err)
	}
}

func writeROOT(fname string, res *ratio.Result) error {
	w, err := histio.Create(fname)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.PutH1D(res.KeyA.String(), res.A); err != nil {
		return err
	}
	if err := w.PutH1D(res.KeyB.String(), res.B); err != nil {
		return err
	}
	if err := w.PutS2D("ratio", res.Ratio.S2D()); err != nil {
		return err
	}
	return w.Close()
}
