// Package histio reads and writes the 1D histograms of CaFe combined
// analysis ROOT files.
package histio

import (
	"context"
	"fmt"
	"path"
	"strings"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rhist"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/root"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hbook/rootcnv"

	"github.com/cafe-experiment/cafeplot/dataset"
	"github.com/cafe-experiment/cafeplot/source"
)

// Store loads histograms from the analysis files of a layout.
type Store struct {
	src    source.Source
	layout dataset.Layout
}

func NewStore(src source.Source, layout dataset.Layout) *Store {
	return &Store{src: src, layout: layout}
}

// H1D loads histogram name (e.g. "kin_plots/H_Pm") from the analysis file
// of k.
func (s *Store) H1D(ctx context.Context, k dataset.Key, name string) (*hbook.H1D, error) {
	return s.H1DFile(ctx, s.layout.AnalysisFile(k), name)
}

// H1DFile loads histogram name from the ROOT file fname of the source.
func (s *Store) H1DFile(ctx context.Context, fname, name string) (*hbook.H1D, error) {
	r, err := s.src.Open(ctx, fname)
	if err != nil {
		return nil, fmt.Errorf("could not open analysis file: %w", err)
	}
	defer r.Close()

	f, err := riofs.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not read ROOT file %q: %w", fname, err)
	}
	defer f.Close()

	obj, err := riofs.Dir(f).Get(name)
	if err != nil {
		return nil, fmt.Errorf("%s: histogram %q: %v: %w", fname, name, err, dataset.ErrNotFound)
	}
	h, ok := obj.(rhist.H1)
	if !ok {
		return nil, fmt.Errorf("%s: %q is a %s, not a 1D histogram: %w", fname, name, obj.Class(), dataset.ErrNotFound)
	}
	out := rootcnv.H1D(h)
	poissonErrors(out, h)
	return out, nil
}

type binErrorer interface {
	XBinError(i int) float64
}

// poissonErrors restores the bin errors of histograms filled without
// Sumw2. ROOT stores no per-bin squared weights for those and reports
// sqrt(|content|) as the error, while the converted bins carry SumW2=0.
func poissonErrors(dst *hbook.H1D, src rhist.H1) {
	if len(src.SumW2s()) > 0 {
		return
	}
	eb, ok := src.(binErrorer)
	if !ok {
		return
	}
	set := func(d *hbook.Dist1D, i int) {
		if d.Dist.SumW2 == 0 && d.Dist.SumW != 0 {
			e := eb.XBinError(i)
			d.Dist.SumW2 = e * e
		}
	}
	set(&dst.Binning.Outflows[0], 0)
	for i := range dst.Binning.Bins {
		set(&dst.Binning.Bins[i].Dist, i+1)
	}
	set(&dst.Binning.Outflows[1], len(dst.Binning.Bins)+1)
}

// Writer stores histograms and ratio points in a new ROOT file.
type Writer struct {
	f    *riofs.File
	dirs map[string]riofs.Directory
}

func Create(fname string) (*Writer, error) {
	f, err := groot.Create(fname)
	if err != nil {
		return nil, fmt.Errorf("could not create ROOT file %q: %w", fname, err)
	}
	return &Writer{f: f, dirs: make(map[string]riofs.Directory)}, nil
}

// PutH1D stores h under name, creating the sub-directories of a
// slash-separated name.
func (w *Writer) PutH1D(name string, h *hbook.H1D) error {
	return w.put(name, rhist.NewH1DFrom(h))
}

// PutS2D stores s as a TGraphAsymmErrors.
func (w *Writer) PutS2D(name string, s *hbook.S2D) error {
	return w.put(name, rhist.NewGraphAsymmErrorsFrom(s))
}

func (w *Writer) put(name string, obj root.Object) error {
	dname, base := path.Split(name)
	dir, err := w.dir(strings.TrimSuffix(dname, "/"))
	if err != nil {
		return err
	}
	if err := dir.Put(base, obj); err != nil {
		return fmt.Errorf("could not write %q: %w", name, err)
	}
	return nil
}

func (w *Writer) dir(name string) (riofs.Directory, error) {
	if name == "" {
		return riofs.Dir(w.f), nil
	}
	if d, ok := w.dirs[name]; ok {
		return d, nil
	}
	parent, base := path.Split(name)
	pdir, err := w.dir(strings.TrimSuffix(parent, "/"))
	if err != nil {
		return nil, err
	}
	d, err := pdir.Mkdir(base)
	if err != nil {
		return nil, fmt.Errorf("could not create directory %q: %w", name, err)
	}
	w.dirs[name] = d
	return d, nil
}

// Close flushes and closes the file. Subsequent calls are no-ops.
func (w *Writer) Close() error {
	if w.f == nil {
		return nil
	}
	f := w.f
	w.f = nil
	return f.Close()
}
