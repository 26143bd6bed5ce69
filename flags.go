package cafeplot

import (
	"fmt"
	"strings"

	"github.com/cafe-experiment/cafeplot/dataset"
)

// KeyListFlag collects data set keys given as repeated flags or as a comma
// separated list, e.g. -tgt Ca40_MF,Ca48_MF -tgt Fe54_MF. The first Set
// replaces any default keys.
type KeyListFlag struct {
	Keys    []dataset.Key
	beenSet bool
}

func (f *KeyListFlag) Set(value string) error {
	if !f.beenSet {
		f.beenSet = true
		f.Keys = nil
	}
	for _, s := range strings.Split(value, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		k, err := dataset.ParseKey(s)
		if err != nil {
			return err
		}
		f.Keys = append(f.Keys, k)
	}
	return nil
}

func (f *KeyListFlag) String() string {
	names := make([]string, len(f.Keys))
	for i, k := range f.Keys {
		names[i] = k.String()
	}
	return strings.Join(names, ",")
}

// StringListFlag collects repeated string flags.
type StringListFlag struct {
	Values  []string
	beenSet bool
}

func (f *StringListFlag) Set(value string) error {
	if !f.beenSet {
		f.beenSet = true
		f.Values = nil
	}
	f.Values = append(f.Values, value)
	return nil
}

func (f *StringListFlag) String() string {
	return fmt.Sprint(f.Values)
}
