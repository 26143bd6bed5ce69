// Package config loads the optional YAML configuration shared by the cafe
// commands. Every field defaults to the historic pass-1 layout, so an
// empty configuration reproduces the original file naming.
package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cafe-experiment/cafeplot/dataset"
	"github.com/cafe-experiment/cafeplot/histio"
	"github.com/cafe-experiment/cafeplot/ratio"
	"github.com/cafe-experiment/cafeplot/source"
	"github.com/cafe-experiment/cafeplot/summary"
)

const (
	DriverDir = "dir"
	DriverS3  = "s3"
)

type Config struct {
	Source  Source              `yaml:"source"`
	Layout  dataset.Layout      `yaml:"layout"`
	Columns summary.RateColumns `yaml:"columns"`
}

// Source selects where summary tables and analysis files are read from.
type Source struct {
	Driver string          `yaml:"driver"`
	Dir    string          `yaml:"dir"`
	S3     source.S3Config `yaml:"s3"`
}

func Default() Config {
	return Config{
		Source:  Source{Driver: DriverDir, Dir: "."},
		Layout:  dataset.DefaultLayout(),
		Columns: summary.DefaultRateColumns(),
	}
}

// Load reads fname on top of the defaults. An empty fname only applies
// the defaults. Environment overrides are applied last.
func Load(fname string) (Config, error) {
	cfg := Default()
	if fname != "" {
		f, err := os.Open(fname)
		if err != nil {
			return cfg, fmt.Errorf("could not open config file: %w", err)
		}
		defer f.Close()

		if err := cfg.decode(f); err != nil {
			return cfg, fmt.Errorf("could not decode config file %q: %w", fname, err)
		}
	}
	cfg.ApplyEnv(os.Getenv)
	return cfg, cfg.Validate()
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(c)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// ApplyEnv overrides the source settings from CAFE_* variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Source.Driver, "CAFE_SOURCE")
	set(&c.Source.Dir, "CAFE_DATA_DIR")
	set(&c.Source.S3.Bucket, "CAFE_S3_BUCKET")
	set(&c.Source.S3.Prefix, "CAFE_S3_PREFIX")
	set(&c.Source.S3.Region, "CAFE_S3_REGION")
	set(&c.Source.S3.Endpoint, "CAFE_S3_ENDPOINT")
	if v := getenv("CAFE_S3_PATH_STYLE"); v != "" {
		c.Source.S3.PathStyle = strings.EqualFold(v, "true")
	}
}

func (c Config) Validate() error {
	switch c.Source.Driver {
	case DriverDir:
	case DriverS3:
		if c.Source.S3.Bucket == "" {
			return fmt.Errorf("config: s3 source requires a bucket")
		}
	default:
		return fmt.Errorf("config: unknown source driver %q", c.Source.Driver)
	}
	if c.Layout.SummaryTemplate == "" || c.Layout.AnalysisTemplate == "" {
		return fmt.Errorf("config: empty file name template")
	}
	return nil
}

// OpenSource returns the configured source.
func (c Config) OpenSource(ctx context.Context) (source.Source, error) {
	switch c.Source.Driver {
	case DriverS3:
		return source.NewS3(ctx, c.Source.S3)
	default:
		return source.Dir(c.Source.Dir), nil
	}
}

func (c Config) Aggregator(src source.Source) *summary.Aggregator {
	return summary.NewAggregator(src,
		summary.WithLayout(c.Layout),
		summary.WithColumns(c.Columns.Columns),
	)
}

func (c Config) Store(src source.Source) *histio.Store {
	return histio.NewStore(src, c.Layout)
}

func (c Config) Scaler(src source.Source) *ratio.Scaler {
	return ratio.NewScaler(c.Aggregator(src), c.Store(src))
}
