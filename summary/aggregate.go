package summary

import (
	"context"
	"fmt"

	"github.com/cafe-experiment/cafeplot/dataset"
	"github.com/cafe-experiment/cafeplot/source"
)

// Aggregator locates the summary table of a data set and reduces it.
// Tables are re-read on every call.
type Aggregator struct {
	src    source.Source
	layout dataset.Layout
	cols   Columns
}

type Option func(*Aggregator)

func WithLayout(l dataset.Layout) Option {
	return func(a *Aggregator) { a.layout = l }
}

func WithColumns(c Columns) Option {
	return func(a *Aggregator) { a.cols = c }
}

// NewAggregator returns an Aggregator reading tables from src with the
// default layout and column names.
func NewAggregator(src source.Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		src:    src,
		layout: dataset.DefaultLayout(),
		cols:   DefaultColumns(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Table reads the summary table of k.
func (a *Aggregator) Table(ctx context.Context, k dataset.Key) (*Table, error) {
	name := a.layout.SummaryFile(k)
	f, err := a.src.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not open summary table of %v: %w", k, err)
	}
	defer f.Close()

	t, err := ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("could not read summary table %q: %w", name, err)
	}
	t.Name = name
	return t, nil
}

// Aggregate reduces the column selected by m over all runs of k.
func (a *Aggregator) Aggregate(ctx context.Context, m Metric, k dataset.Key) (Quantity, error) {
	if !m.valid() {
		return Quantity{}, fmt.Errorf("%v: %w", m, ErrUnknownMetric)
	}
	t, err := a.Table(ctx, k)
	if err != nil {
		return Quantity{}, err
	}
	return Reduce(t, m, a.cols)
}

// Parameter returns the annotation name (e.g. "target_areal_density",
// "transparency") of the summary table of k.
func (a *Aggregator) Parameter(ctx context.Context, name string, k dataset.Key) (float64, error) {
	t, err := a.Table(ctx, k)
	if err != nil {
		return 0, err
	}
	return t.Param(name)
}

// Entry is one line of a Report.
type Entry struct {
	Metric   Metric
	Quantity Quantity
	Err      error
}

// Report evaluates every metric on a single read of the table of k.
// Per-metric failures are recorded in the entries.
func (a *Aggregator) Report(ctx context.Context, k dataset.Key) ([]Entry, error) {
	t, err := a.Table(ctx, k)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, numMetrics)
	for _, m := range Metrics() {
		q, err := Reduce(t, m, a.cols)
		entries = append(entries, Entry{Metric: m, Quantity: q, Err: err})
	}
	return entries, nil
}
