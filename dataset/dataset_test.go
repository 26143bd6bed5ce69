package dataset

import (
	"errors"
	"testing"
)

func TestParseKey(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Key
		err  bool
	}{
		{in: "Ca48_MF", want: Key{"Ca48", "MF"}},
		{in: "Fe54:SRC", want: Key{"Fe54", "SRC"}},
		{in: "LD2_SRC", want: Key{"LD2", "SRC"}},
		{in: "Ca48:SRC_pass2", want: Key{"Ca48", "SRC_pass2"}},
		{in: "C12_SRC_pass2", want: Key{"C12_SRC", "pass2"}},
		{in: ":MF", err: true},
		{in: "Ca48:", err: true},
		{in: "Ca48", err: true},
		{in: "_MF", err: true},
		{in: "Ca48_", err: true},
	} {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseKey(tc.in)
			if tc.err {
				if !errors.Is(err, ErrParse) {
					t.Fatalf("expected parse error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("could not parse key: %+v", err)
			}
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			if got.String() != tc.want.Target+"_"+tc.want.Kin {
				t.Fatalf("bad string form %q", got.String())
			}
		})
	}
}

func TestDefaultLayout(t *testing.T) {
	l := DefaultLayout()
	k := Key{Target: "Ca48", Kin: "MF"}

	if got, want := l.SummaryFile(k), "summary_files_pass1/EmissCut_100MeV/cafe_prod_Ca48_MF_report_summary.csv"; got != want {
		t.Fatalf("summary file: got %q, want %q", got, want)
	}
	if got, want := l.AnalysisFile(k), "analyzed_files_combined_pass1/cafe_prod_Ca48_MF_combined.root"; got != want {
		t.Fatalf("analysis file: got %q, want %q", got, want)
	}
}

func TestCustomLayout(t *testing.T) {
	l := Layout{
		SummaryTemplate:  "{target}_{kin}_report_summary",
		AnalysisDir:      "combined",
		AnalysisTemplate: "{target}_{kin}_combined",
	}
	k := Key{Target: "C12", Kin: "SRC"}
	if got, want := l.SummaryFile(k), "C12_SRC_report_summary"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := l.AnalysisFile(k), "combined/C12_SRC_combined"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
