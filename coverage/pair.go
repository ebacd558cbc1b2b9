// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coverage

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/cicoverage/cicoverage/cimethod"
)

// PairAt returns the coverage, in percent, of the intervals method
// computes for the difference between a Binomial(n1, p) sample and an
// independent Binomial(n2, q) sample. The true difference is |q - p|
// and, as in At, containment is strict.
func (e *Engine) PairAt(ctx context.Context, method cimethod.Pair, n1, n2 int, p, q, confidence float64, precision Precision) (float64, error) {
	if err := validatePair(n1, n2, []float64{p, q}, confidence); err != nil {
		return 0, err
	}
	sds, err := e.width(confidence, precision)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return e.pairAt(method, n1, n2, p, q, confidence, sds)
}

// Pair returns the coverage of method for every pair of proportions:
// element [i][j] is PairAt with p = proportions[i] and
// q = proportions[j].
//
// Only cells with j >= i are computed; [j][i] is a copy of [i][j], so
// the result is exactly symmetric. Methods in cimethod estimate
// p̂2 - p̂1, which has the sign of the true difference |q - p| in the
// computed cells only if proportions never decreases, so a decreasing
// list is rejected with ErrInvalidParameter.
//
// Rows are spread over e.Workers goroutines. The first failure
// cancels the remaining rows and Pair returns no matrix.
func (e *Engine) Pair(ctx context.Context, method cimethod.Pair, n1, n2 int, proportions []float64, confidence float64, precision Precision) (Matrix, error) {
	if err := validatePair(n1, n2, proportions, confidence); err != nil {
		return nil, err
	}
	sds, err := e.width(confidence, precision)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().Int("n1", n1).Int("n2", n2).Float64("confidence", confidence).
		Float64("z-precision", sds).Int("proportions", len(proportions)).
		Int("workers", e.Workers).Msg("pair-coverage")

	// Fill the shared supports before fanning out.
	if e.Cache != nil {
		for _, p := range proportions {
			e.Cache.Support(n1, p, sds)
			e.Cache.Support(n2, p, sds)
		}
	}

	k := len(proportions)
	m := NewMatrix(k)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, e.Workers))
	for i := 0; i < k; i++ {
		g.Go(func() error {
			for j := i; j < k; j++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				p, q := proportions[i], proportions[j]
				cov, err := e.pairAt(method, n1, n2, p, q, confidence, sds)
				if err != nil {
					return fmt.Errorf("p1=%v p2=%v: %w", p, q, err)
				}
				m[i][j] = cov
				m[j][i] = m[i][j]
			}
			logger.Debug().Int("row", i).Float64("p1", proportions[i]).Msg("row-done")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return m, nil
}

func (e *Engine) pairAt(method cimethod.Pair, n1, n2 int, p, q, confidence, sds float64) (float64, error) {
	s1, err := e.support(n1, p, sds)
	if err != nil {
		return 0, err
	}
	s2, err := e.support(n2, q, sds)
	if err != nil {
		return 0, err
	}
	delta := math.Abs(q - p)

	// The samples are independent, so the joint mass of (x1, x2)
	// is the product of the marginal masses.
	var covered []float64
	for i, m1 := range s1.Mass {
		x1 := s1.From + i
		for j, m2 := range s2.Mass {
			lo, hi, err := EvalPair(method, x1, n1, s2.From+j, n2, confidence)
			if err != nil {
				return 0, err
			}
			if lo < delta && delta < hi {
				covered = append(covered, m1*m2)
			}
		}
	}
	return percent(floats.SumCompensated(covered)), nil
}

func validatePair(n1, n2 int, proportions []float64, confidence float64) error {
	if err := ValidateConfidence(confidence); err != nil {
		return err
	}
	if err := ValidateSampleSize("sample size 1", n1); err != nil {
		return err
	}
	if err := ValidateSampleSize("sample size 2", n2); err != nil {
		return err
	}
	if err := ValidateProportions(proportions); err != nil {
		return err
	}
	return ValidateIncreasing(proportions)
}
