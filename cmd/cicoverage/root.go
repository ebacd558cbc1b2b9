// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cicoverage/cicoverage/cimethod"
	"github.com/cicoverage/cicoverage/coverage"
	"github.com/cicoverage/cicoverage/stats"
	"github.com/cicoverage/cicoverage/sweep"
)

type options struct {
	config string
	debug  bool
}

func newRootCmd() *cobra.Command {
	opts := new(options)
	root := &cobra.Command{
		Use:          "cicoverage",
		Short:        "Coverage of binomial confidence interval methods",
		SilenceUsage: true,
	}
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if opts.debug {
			level = zerolog.DebugLevel
		}
		logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
			Level(level).With().Timestamp().Logger()
		cmd.SetContext(logger.WithContext(cmd.Context()))
	}
	root.PersistentFlags().StringVar(&opts.config, "config", "", "YAML file with run settings")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log every proportion and row")

	root.AddCommand(
		newSingleCmd(opts),
		newPairCmd(opts),
		newRandomCmd(opts),
		newMethodsCmd(),
		newPrecisionCmd(),
	)
	return root
}

// runFlags defines the flags that override sweep.Config fields.
// Their defaults are only shown in help; sweep.Load supplies the
// real ones.
func runFlags(fs *pflag.FlagSet) {
	fs.String("method", "", "CI method (see 'cicoverage methods'; default wald or wald-diff)")
	fs.Int("sample-size1", 100, "size of the (first) sample")
	fs.Int("sample-size2", 0, "size of the second sample of a pair (default sample-size1)")
	fs.String("from", "0.01", "first proportion")
	fs.String("to", "0.99", "last proportion")
	fs.String("step", "0.01", "proportion step")
	fs.Float64("confidence", 0.95, "confidence level")
	fs.Float64("precision", 0, "truncation width in standard deviations (0 picks it from the confidence)")
	fs.Int("workers", 0, "goroutines for pair matrices (default GOMAXPROCS)")
}

// run is what a coverage subcommand needs: its configuration, the
// proportions, and the method catalog sharing the engine's cache.
type run struct {
	cfg     *sweep.Config
	ps      []float64
	catalog *cimethod.Catalog
	engine  *coverage.Engine
}

func load(cmd *cobra.Command, opts *options) (*run, error) {
	cfg, err := sweep.Load(opts.config, cmd.Flags())
	if err != nil {
		return nil, err
	}
	ps, err := cfg.Proportions()
	if err != nil {
		return nil, err
	}
	cache := stats.NewCache()
	return &run{
		cfg:     cfg,
		ps:      ps,
		catalog: cimethod.NewCatalog(cache),
		engine:  &coverage.Engine{Cache: cache, Workers: cfg.Workers},
	}, nil
}

func (r *run) single() (cimethod.Single, error) {
	name := r.cfg.Method
	if name == "" {
		name = "wald"
	}
	m, ok := r.catalog.Single(name)
	if !ok {
		return nil, fmt.Errorf("unknown single-proportion method %q (have %v)", name, r.catalog.SingleNames())
	}
	return m, nil
}

func (r *run) pair() (cimethod.Pair, error) {
	name := r.cfg.Method
	if name == "" {
		name = "wald-diff"
	}
	m, ok := r.catalog.Pair(name)
	if !ok {
		return nil, fmt.Errorf("unknown two-proportion method %q (have %v)", name, r.catalog.PairNames())
	}
	return m, nil
}

func printCoverages(w io.Writer, ps, covs []float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "P\tCOVERAGE")
	for i, p := range ps {
		fmt.Fprintf(tw, "%v\t%.4f\n", p, covs[i])
	}
	return tw.Flush()
}

func printMatrix(w io.Writer, ps []float64, m coverage.Matrix) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "P1\\P2\t")
	for _, q := range ps {
		fmt.Fprintf(tw, "%v\t", q)
	}
	fmt.Fprintln(tw)
	for i, p := range ps {
		fmt.Fprintf(tw, "%v\t", p)
		for j := range ps {
			fmt.Fprintf(tw, "%.4f\t", m[i][j])
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func printSummary(w io.Writer, covs []float64, confidence float64) {
	s := coverage.Summarize(covs, confidence)
	fmt.Fprintf(w, "average coverage %.4f%%\n", s.Average)
	fmt.Fprintf(w, "average deviation from %v%% = %.4f\n", 100*confidence, s.AverageDeviation)
	fmt.Fprintf(w, "min %.4f%% max %.4f%%\n", s.Min, s.Max)
}
