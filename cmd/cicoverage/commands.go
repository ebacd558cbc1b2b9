// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cicoverage/cicoverage/cimethod"
	"github.com/cicoverage/cicoverage/coverage"
	"github.com/cicoverage/cicoverage/montecarlo"
	"github.com/cicoverage/cicoverage/stats"
)

func newSingleCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "single",
		Short: "Exact coverage of a single-proportion method",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := load(cmd, opts)
			if err != nil {
				return err
			}
			m, err := r.single()
			if err != nil {
				return err
			}
			covs, err := r.engine.Single(cmd.Context(), m, r.cfg.SampleSize1, r.ps, r.cfg.Confidence, coverage.Precision(r.cfg.Precision))
			if err != nil {
				return err
			}
			if err := printCoverages(cmd.OutOrStdout(), r.ps, covs); err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), covs, r.cfg.Confidence)
			return nil
		},
	}
	runFlags(cmd.Flags())
	return cmd
}

func newPairCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pair",
		Short: "Exact coverage matrix of a two-proportion method",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := load(cmd, opts)
			if err != nil {
				return err
			}
			m, err := r.pair()
			if err != nil {
				return err
			}
			mat, err := r.engine.Pair(cmd.Context(), m, r.cfg.SampleSize1, r.cfg.SampleSize2, r.ps, r.cfg.Confidence, coverage.Precision(r.cfg.Precision))
			if err != nil {
				return err
			}
			if err := printMatrix(cmd.OutOrStdout(), r.ps, mat); err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), mat.Flatten(), r.cfg.Confidence)
			return nil
		},
	}
	runFlags(cmd.Flags())
	return cmd
}

func newRandomCmd(opts *options) *cobra.Command {
	var pair bool
	cmd := &cobra.Command{
		Use:   "random",
		Short: "Monte Carlo estimate of coverage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := load(cmd, opts)
			if err != nil {
				return err
			}
			est := &montecarlo.Estimator{Trials: r.cfg.Trials, Seed: r.cfg.Seed, Workers: r.cfg.Workers}
			if pair {
				m, err := r.pair()
				if err != nil {
					return err
				}
				mat, err := est.Pair(cmd.Context(), m, r.cfg.SampleSize1, r.cfg.SampleSize2, r.ps, r.cfg.Confidence)
				if err != nil {
					return err
				}
				if err := printMatrix(cmd.OutOrStdout(), r.ps, mat); err != nil {
					return err
				}
				printSummary(cmd.OutOrStdout(), mat.Flatten(), r.cfg.Confidence)
				return nil
			}
			m, err := r.single()
			if err != nil {
				return err
			}
			covs, err := est.Single(cmd.Context(), m, r.cfg.SampleSize1, r.ps, r.cfg.Confidence)
			if err != nil {
				return err
			}
			if err := printCoverages(cmd.OutOrStdout(), r.ps, covs); err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), covs, r.cfg.Confidence)
			return nil
		},
	}
	cmd.Flags().BoolVar(&pair, "pair", false, "estimate a two-proportion method")
	cmd.Flags().Int("trials", montecarlo.DefaultTrials, "samples per proportion")
	cmd.Flags().Uint64("seed", 0, "random seed (0 for fresh entropy)")
	runFlags(cmd.Flags())
	return cmd
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the CI methods",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			c := cimethod.NewCatalog(nil)
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, "single-proportion:")
			for _, name := range c.SingleNames() {
				fmt.Fprintf(w, "  %s\n", name)
			}
			fmt.Fprintln(w, "two-proportion:")
			for _, name := range c.PairNames() {
				fmt.Fprintf(w, "  %s\n", name)
			}
		},
	}
}

func newPrecisionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "precision CONFIDENCE...",
		Short: "Show the truncation width used for each confidence level",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "CONFIDENCE\tZ\tPRECISION\tOUTSIDE")
			for _, arg := range args {
				c, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("bad confidence %q: %w", arg, err)
				}
				prec, err := stats.RequiredPrecision(c)
				if err != nil {
					return err
				}
				// OUTSIDE is the normal mass beyond the truncation width.
				fmt.Fprintf(tw, "%v\t%.6f\t%.2f\t%.3g\n", c, stats.TwoTailedZ(c), prec, 1-stats.TwoTailedArea(prec))
			}
			return tw.Flush()
		},
	}
}
