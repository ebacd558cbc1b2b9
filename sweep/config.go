// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables Load reads, so that
// the key "sample-size1" is read from CICOV_SAMPLE_SIZE1.
const EnvPrefix = "CICOV"

var ErrInvalidConfig = errors.New("sweep: invalid config")

// Config describes one coverage run. The mapstructure tags are also
// the names of the configuration file keys, environment variables
// and command line flags.
type Config struct {
	// Method names a CI method of cimethod.Catalog. If empty, the
	// command running the configuration picks its own default.
	Method string `mapstructure:"method"`

	SampleSize1 int `mapstructure:"sample-size1"`

	// SampleSize2 is the size of the second sample of a pair run.
	// Validate sets it to SampleSize1 if it is 0.
	SampleSize2 int `mapstructure:"sample-size2"`

	// From, To and Step are the decimal bounds of the proportion
	// sweep; see Range.
	From string `mapstructure:"from"`
	To   string `mapstructure:"to"`
	Step string `mapstructure:"step"`

	Confidence float64 `mapstructure:"confidence"`

	// Precision is the truncation width in standard deviations.
	// 0 picks it from Confidence.
	Precision float64 `mapstructure:"precision"`

	Workers int `mapstructure:"workers"`

	// Trials and Seed configure random runs.
	Trials int    `mapstructure:"trials"`
	Seed   uint64 `mapstructure:"seed"`
}

func defaults(v *viper.Viper) {
	v.SetDefault("method", "")
	v.SetDefault("sample-size1", 100)
	v.SetDefault("sample-size2", 0)
	v.SetDefault("from", "0.01")
	v.SetDefault("to", "0.99")
	v.SetDefault("step", "0.01")
	v.SetDefault("confidence", 0.95)
	v.SetDefault("precision", 0.0)
	v.SetDefault("workers", runtime.GOMAXPROCS(0))
	v.SetDefault("trials", 10000)
	v.SetDefault("seed", uint64(0))
}

// Load builds a validated Config from, in increasing priority, the
// defaults, the YAML (or other viper-supported) file at path if path
// is not empty, CICOV_* environment variables and the flags in flags
// that were set. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	defaults(v)
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("sweep: reading %s: %w", path, err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func invalid(field string, value any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalidConfig, field, value)
}

// Validate checks every field and fills in SampleSize2.
func (c *Config) Validate() error {
	if c.SampleSize1 <= 0 {
		return invalid("sample-size1", c.SampleSize1)
	}
	switch {
	case c.SampleSize2 == 0:
		c.SampleSize2 = c.SampleSize1
	case c.SampleSize2 < 0:
		return invalid("sample-size2", c.SampleSize2)
	}
	if !(c.Confidence > 0 && c.Confidence < 1) {
		return invalid("confidence", c.Confidence)
	}
	if !(c.Precision >= 0) || math.IsInf(c.Precision, 1) {
		return invalid("precision", c.Precision)
	}
	if c.Workers < 0 {
		return invalid("workers", c.Workers)
	}
	if c.Trials < 0 {
		return invalid("trials", c.Trials)
	}
	ps, err := c.Proportions()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(ps) == 0 {
		return invalid("from", c.From+" > to "+c.To)
	}
	return nil
}

// Proportions returns Range(c.From, c.To, c.Step).
func (c *Config) Proportions() ([]float64, error) {
	return Range(c.From, c.To, c.Step)
}
