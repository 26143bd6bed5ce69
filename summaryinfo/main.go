// Command summaryinfo prints the aggregated run summary quantities and the
// target parameters of one or more data sets.
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
	"github.com/cafe-experiment/cafeplot/summary"
)

var (
	cfgFile = flag.String("config", "", "optional YAML configuration file")
	cpuProf = flag.String("cpuprofile", "", "directory to write a CPU profile to")

	keys    cafeplot.KeyListFlag
	metrics cafeplot.StringListFlag
	params  = cafeplot.StringListFlag{Values: []string{"target_areal_density", "transparency"}}
)

func init() {
	flag.Var(&keys, "k", "data set <target>_<kin> (repeatable, comma separated)")
	flag.Var(&metrics, "metric", "metric to print (repeatable, default: all)")
	flag.Var(&params, "param", "annotation parameter to print (repeatable)")
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: `+os.Args[0]+` [options] [<target>_<kin>...]

ex:
 $> summaryinfo Ca40_MF Ca48_MF
 $> summaryinfo -k Ca48_SRC -metric total_charge -metric hms_trk_eff

options:
`,
	)
	flag.PrintDefaults()
}

func main() {
	log.SetPrefix("summaryinfo: ")
	log.SetFlags(0)

	flag.Usage = printUsage
	flag.Parse()
	for _, arg := range flag.Args() {
		if err := keys.Set(arg); err != nil {
			log.Fatal(err)
		}
	}
	if len(keys.Keys) == 0 {
		printUsage()
		log.Fatal("Invalid arguments")
	}

	if *cpuProf != "" {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(*cpuProf)).Stop()
	}

	if err := run(os.Stdout); err != nil {
		log.Fatalf("could not summarize: %+v", err)
	}
}

func run(out io.Writer) error {
	selected, err := selectMetrics(metrics.Values)
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
	agg := cfg.Aggregator(src)

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	defer w.Flush()

	for _, k := range keys.Keys {
		entries, err := agg.Report(ctx, k)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%v\t\t\n", k)
		for _, e := range entries {
			if !selected[e.Metric] {
				continue
			}
			switch {
			case e.Err != nil:
				fmt.Fprintf(w, "  %v\terror\t%v\n", e.Metric, e.Err)
			case e.Metric.Reduction() == summary.WeightedMean:
				fmt.Fprintf(w, "  %v\t%.6g ± %.2g\t\n", e.Metric, e.Quantity.Value, e.Quantity.Err)
			default:
				fmt.Fprintf(w, "  %v\t%.6g\t\n", e.Metric, e.Quantity.Value)
			}
		}
		for _, name := range params.Values {
			v, err := agg.Parameter(ctx, name, k)
			if err != nil {
				fmt.Fprintf(w, "  %s\tn/a\t\n", name)
				continue
			}
			fmt.Fprintf(w, "  %s\t%.6g\t\n", name, v)
		}
	}
	return nil
}

func selectMetrics(names []string) (map[summary.Metric]bool, error) {
	sel := make(map[summary.Metric]bool)
	if len(names) == 0 {
		for _, m := range summary.Metrics() {
			sel[m] = true
		}
		return sel, nil
	}
	for _, name := range names {
		m, err := summary.ParseMetric(name)
		if err != nil {
			return nil, err
		}
		sel[m] = true
	}
	return sel, nil
}
