// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package montecarlo estimates the coverage of CI methods by drawing
// random samples, as a cross-check of the exact sums in package
// coverage.
package montecarlo // import "github.com/cicoverage/cicoverage/montecarlo"

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/cicoverage/cicoverage/cimethod"
	"github.com/cicoverage/cicoverage/coverage"
)

// DefaultTrials is the number of samples drawn per proportion (or
// pair of proportions) when Estimator.Trials is 0.
const DefaultTrials = 10000

// An Estimator draws Trials random outcomes per proportion and counts
// how often a method's interval strictly contains the truth.
type Estimator struct {
	Trials int

	// Seed makes the estimates reproducible. Each proportion, or
	// each row of a pair matrix, draws from its own stream of Seed,
	// so results do not depend on Workers. A zero Seed uses fresh
	// entropy.
	Seed uint64

	// Workers is the number of goroutines Pair spreads rows over.
	Workers int
}

func (e *Estimator) trials() (int, error) {
	switch {
	case e.Trials == 0:
		return DefaultTrials, nil
	case e.Trials < 0:
		return 0, fmt.Errorf("%w: trials = %d", coverage.ErrInvalidParameter, e.Trials)
	}
	return e.Trials, nil
}

// Single estimates the coverage of method for each of proportions with
// samples of n trials. Outcomes are the same ones coverage.Engine.Single
// sums over, so the two agree up to sampling error.
func (e *Estimator) Single(ctx context.Context, method cimethod.Single, n int, proportions []float64, confidence float64) ([]float64, error) {
	trials, err := e.trials()
	if err != nil {
		return nil, err
	}
	if err := coverage.ValidateConfidence(confidence); err != nil {
		return nil, err
	}
	if err := coverage.ValidateSampleSize("sample size", n); err != nil {
		return nil, err
	}
	if err := coverage.ValidateProportions(proportions); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().Int("n", n).Int("trials", trials).Uint64("seed", e.Seed).Msg("single-random")

	method = cimethod.MemoSingle(method)
	out := make([]float64, len(proportions))
	for i, p := range proportions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		d := distuv.Binomial{N: float64(n), P: p, Src: newSource(e.Seed, i)}
		hits := 0
		for t := 0; t < trials; t++ {
			x := int(d.Rand())
			lo, hi, err := coverage.EvalSingle(method, x, n, confidence)
			if err != nil {
				return nil, fmt.Errorf("p=%v: %w", p, err)
			}
			if lo < p && p < hi {
				hits++
			}
		}
		out[i] = percent(hits, trials)
	}
	return out, nil
}

// Pair estimates the coverage of method for every pair of
// proportions, laid out like coverage.Engine.Pair, which also
// requires proportions to be non-decreasing. Only the upper triangle
// is sampled; the lower one is its mirror image.
func (e *Estimator) Pair(ctx context.Context, method cimethod.Pair, n1, n2 int, proportions []float64, confidence float64) (coverage.Matrix, error) {
	trials, err := e.trials()
	if err != nil {
		return nil, err
	}
	if err := coverage.ValidateConfidence(confidence); err != nil {
		return nil, err
	}
	if err := coverage.ValidateSampleSize("sample size 1", n1); err != nil {
		return nil, err
	}
	if err := coverage.ValidateSampleSize("sample size 2", n2); err != nil {
		return nil, err
	}
	if err := coverage.ValidateProportions(proportions); err != nil {
		return nil, err
	}
	if err := coverage.ValidateIncreasing(proportions); err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().Int("n1", n1).Int("n2", n2).Int("trials", trials).
		Uint64("seed", e.Seed).Int("workers", e.Workers).Msg("pair-random")

	method = cimethod.MemoPair(method)
	k := len(proportions)
	m := coverage.NewMatrix(k)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, e.Workers))
	for i := 0; i < k; i++ {
		g.Go(func() error {
			src := newSource(e.Seed, i)
			for j := i; j < k; j++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				p, q := proportions[i], proportions[j]
				d1 := distuv.Binomial{N: float64(n1), P: p, Src: src}
				d2 := distuv.Binomial{N: float64(n2), P: q, Src: src}
				delta := math.Abs(q - p)
				hits := 0
				for t := 0; t < trials; t++ {
					x1, x2 := int(d1.Rand()), int(d2.Rand())
					lo, hi, err := coverage.EvalPair(method, x1, n1, x2, n2, confidence)
					if err != nil {
						return fmt.Errorf("p1=%v p2=%v: %w", p, q, err)
					}
					if lo < delta && delta < hi {
						hits++
					}
				}
				m[i][j] = percent(hits, trials)
				m[j][i] = m[i][j]
			}
			logger.Debug().Int("row", i).Msg("row-done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

func percent(hits, trials int) float64 {
	return 100 * float64(hits) / float64(trials)
}
