package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cafe-experiment/cafeplot/dataset"
	"github.com/cafe-experiment/cafeplot/source"
	"github.com/cafe-experiment/cafeplot/summary"
)

const rates = `# C12 MF rate dependence
avg_current,charge,real_Yield,real_Yield_err,hTrkEff,hTrkEff_err,pTrkEff,pTrkEff_err,tLT,tLT_err_Bi,multi_track_eff,T2_scl_rate,beam_time
5,1,100,10,1,0,1,0,1,0,1,1,100
15,3,300,30,1,0,1,0,1,0,1,3,100
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "c12.csv"), []byte(rates), 0644); err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	src := source.Dir(dir)

	pts, err := load(ctx, src, "c12.csv", summary.DefaultRateColumns())
	if err != nil {
		t.Fatalf("%+v", err)
	}
	if len(pts) != 2 {
		t.Fatalf("got %d points", len(pts))
	}
	if pts[1].RelYield != 1 || pts[1].RelT2 != 1 {
		t.Fatalf("flat rate study gave %+v", pts[1])
	}

	_, err = load(ctx, src, "missing.csv", summary.DefaultRateColumns())
	if !errors.Is(err, dataset.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
