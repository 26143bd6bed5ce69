// Package dataset describes how CaFe analysis products are named on disk:
// the (target, kinematic) key, the file-name templates for summary tables
// and combined ROOT files, and the errors shared by the readers.
package dataset

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

var (
	// ErrNotFound reports a missing summary table, analysis file, column
	// or histogram.
	ErrNotFound = errors.New("not found")

	// ErrParse reports a missing annotation key or a malformed field.
	ErrParse = errors.New("parse error")

	// ErrBinningMismatch reports histograms that cannot be combined bin by
	// bin.
	ErrBinningMismatch = errors.New("binning mismatch")
)

// Key identifies one (target, kinematic setting) data set, e.g. Ca48 MF.
type Key struct {
	Target string
	Kin    string
}

func (k Key) String() string {
	return k.Target + "_" + k.Kin
}

// ParseKey accepts "Ca48:MF" or "Ca48_MF". A colon always separates the
// target from the kinematic setting, so "Ca48:SRC_pass2" keeps the
// underscore in the setting. Without a colon the last underscore is used.
func ParseKey(s string) (Key, error) {
	i := strings.Index(s, ":")
	if i < 0 {
		i = strings.LastIndex(s, "_")
	}
	if i <= 0 || i == len(s)-1 {
		return Key{}, fmt.Errorf("invalid data set key %q (want <target>:<kin> or <target>_<kin>): %w", s, ErrParse)
	}
	return Key{Target: s[:i], Kin: s[i+1:]}, nil
}

// Default layout of the pass-1 analysis products.
const (
	DefaultSummaryDir      = "summary_files_pass1/EmissCut_100MeV"
	DefaultSummaryTemplate = "cafe_prod_{target}_{kin}_report_summary.csv"

	DefaultAnalysisDir      = "analyzed_files_combined_pass1"
	DefaultAnalysisTemplate = "cafe_prod_{target}_{kin}_combined.root"
)

// Layout maps keys to file names relative to a source root.
type Layout struct {
	SummaryDir      string `yaml:"summary_dir"`
	SummaryTemplate string `yaml:"summary_template"`

	AnalysisDir      string `yaml:"analysis_dir"`
	AnalysisTemplate string `yaml:"analysis_template"`
}

func DefaultLayout() Layout {
	return Layout{
		SummaryDir:       DefaultSummaryDir,
		SummaryTemplate:  DefaultSummaryTemplate,
		AnalysisDir:      DefaultAnalysisDir,
		AnalysisTemplate: DefaultAnalysisTemplate,
	}
}

// SummaryFile returns the summary table name for k.
func (l Layout) SummaryFile(k Key) string {
	return path.Join(l.SummaryDir, expand(l.SummaryTemplate, k))
}

// AnalysisFile returns the combined ROOT file name for k.
func (l Layout) AnalysisFile(k Key) string {
	return path.Join(l.AnalysisDir, expand(l.AnalysisTemplate, k))
}

func expand(tmpl string, k Key) string {
	return strings.NewReplacer("{target}", k.Target, "{kin}", k.Kin).Replace(tmpl)
}
