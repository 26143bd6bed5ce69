package cafeplot

import (
	"errors"
	"flag"
	"testing"

	"github.com/cafe-experiment/cafeplot/dataset"
)

func TestKeyListFlag(t *testing.T) {
	keys := KeyListFlag{Keys: []dataset.Key{{Target: "LD2", Kin: "MF"}}}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&keys, "tgt", "data sets")

	if err := fs.Parse([]string{"-tgt", "Ca40_MF, Ca48_MF", "-tgt", "Fe54:MF"}); err != nil {
		t.Fatal(err)
	}
	want := []dataset.Key{{Target: "Ca40", Kin: "MF"}, {Target: "Ca48", Kin: "MF"}, {Target: "Fe54", Kin: "MF"}}
	if len(keys.Keys) != len(want) {
		t.Fatalf("got %v, want %v", keys.Keys, want)
	}
	for i := range want {
		if keys.Keys[i] != want[i] {
			t.Fatalf("got %v, want %v", keys.Keys, want)
		}
	}
	if got := keys.String(); got != "Ca40_MF,Ca48_MF,Fe54_MF" {
		t.Fatalf("bad string %q", got)
	}

	var bad KeyListFlag
	if err := bad.Set("Ca48"); !errors.Is(err, dataset.ErrParse) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestStringListFlag(t *testing.T) {
	labels := StringListFlag{Values: []string{"default"}}
	if err := labels.Set("phase3"); err != nil {
		t.Fatal(err)
	}
	if err := labels.Set("phase2"); err != nil {
		t.Fatal(err)
	}
	if len(labels.Values) != 2 || labels.Values[0] != "phase3" || labels.Values[1] != "phase2" {
		t.Fatalf("got %v", labels.Values)
	}
}
