// Package summary reads CaFe run summary tables and reduces their columns
// to the per-data-set quantities used for normalization.
//
// A summary table is a comma separated file with one row per run. Lines
// starting with '#' above the header carry "key: value" annotations such
// as the target areal density.
package summary

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cafe-experiment/cafeplot/dataset"
)

// Table is a parsed summary table.
type Table struct {
	Name string // file name, for error messages

	params map[string]string
	header []string
	index  map[string]int
	rows   [][]string
}

// ReadTable parses a summary table from r.
func ReadTable(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read summary table: %w", err)
	}

	t := &Table{
		params: make(map[string]string),
		index:  make(map[string]int),
	}

	rest := bytes.TrimPrefix(raw, []byte("\ufeff"))
	for len(rest) > 0 {
		line, tail, _ := bytes.Cut(rest, []byte("\n"))
		s := strings.TrimSpace(string(line))
		if s != "" && !strings.HasPrefix(s, "#") {
			break
		}
		t.annotate(s)
		rest = tail
	}

	cr := csv.NewReader(bytes.NewReader(rest))
	cr.Comment = '#'
	cr.TrimLeadingSpace = true

	t.header, err = cr.Read()
	switch {
	case err == io.EOF:
		return nil, fmt.Errorf("summary table has no header: %w", dataset.ErrParse)
	case err != nil:
		return nil, fmt.Errorf("could not read summary header: %v: %w", err, dataset.ErrParse)
	}
	for i, name := range t.header {
		name = strings.TrimSpace(name)
		t.header[i] = name
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("could not read summary row: %v: %w", err, dataset.ErrParse)
		}
		t.rows = append(t.rows, rec)
	}

	return t, nil
}

func (t *Table) annotate(line string) {
	line = strings.TrimSpace(strings.TrimLeft(line, "#"))
	k, v, ok := strings.Cut(line, ":")
	if !ok {
		return
	}
	k = strings.TrimSpace(k)
	if k == "" {
		return
	}
	if _, dup := t.params[k]; dup {
		return
	}
	t.params[k] = strings.TrimSpace(v)
}

// Len returns the number of runs.
func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Header() []string {
	return append([]string(nil), t.header...)
}

// Column returns the named column as floats. Empty and "nan" cells are
// returned as NaN.
func (t *Table) Column(name string) ([]float64, error) {
	j, ok := t.index[name]
	if !ok {
		return nil, fmt.Errorf("%s: column %q: %w", t.Name, name, dataset.ErrNotFound)
	}

	out := make([]float64, len(t.rows))
	for i, row := range t.rows {
		cell := strings.TrimSpace(row[j])
		if cell == "" || strings.EqualFold(cell, "nan") {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: column %q, row %d: invalid number %q: %w", t.Name, name, i+1, cell, dataset.ErrParse)
		}
		out[i] = v
	}
	return out, nil
}

// Param returns the numeric value of the "key: value" annotation name.
// Anything after the first field (units, comments) is ignored.
func (t *Table) Param(name string) (float64, error) {
	raw, ok := t.params[name]
	if !ok {
		return 0, fmt.Errorf("%s: no annotation %q: %w", t.Name, name, dataset.ErrParse)
	}
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%s: empty annotation %q: %w", t.Name, name, dataset.ErrParse)
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%s: annotation %q: invalid number %q: %w", t.Name, name, fields[0], dataset.ErrParse)
	}
	return v, nil
}

// missing returns the index of the first NaN in v, or -1.
func missing(v []float64) int {
	for i, x := range v {
		if math.IsNaN(x) {
			return i
		}
	}
	return -1
}
