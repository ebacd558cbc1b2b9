// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coverage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"

	"github.com/cicoverage/cicoverage/cimethod"
)

// At returns the coverage, in percent, of the intervals method
// computes from Binomial(n, p) samples at the given confidence.
//
// An outcome x counts as covered only if lo < p < hi strictly, so an
// interval endpoint that equals p does not cover it.
func (e *Engine) At(ctx context.Context, method cimethod.Single, n int, p, confidence float64, precision Precision) (float64, error) {
	if err := validateSingle(n, []float64{p}, confidence); err != nil {
		return 0, err
	}
	sds, err := e.width(confidence, precision)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return e.at(method, n, p, confidence, sds)
}

// Single returns the coverage of method for each of proportions with
// samples of n trials. The result is indexed like proportions; no
// monotonicity across proportions is implied.
//
// The first failure aborts the whole computation.
func (e *Engine) Single(ctx context.Context, method cimethod.Single, n int, proportions []float64, confidence float64, precision Precision) ([]float64, error) {
	if err := validateSingle(n, proportions, confidence); err != nil {
		return nil, err
	}
	sds, err := e.width(confidence, precision)
	if err != nil {
		return nil, err
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().Int("n", n).Float64("confidence", confidence).
		Float64("z-precision", sds).Int("proportions", len(proportions)).
		Msg("single-coverage")

	out := make([]float64, len(proportions))
	for i, p := range proportions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cov, err := e.at(method, n, p, confidence, sds)
		if err != nil {
			return nil, fmt.Errorf("p=%v: %w", p, err)
		}
		out[i] = cov
		logger.Debug().Float64("p", p).Float64("coverage", cov).Msg("proportion-done")
	}
	return out, nil
}

func (e *Engine) at(method cimethod.Single, n int, p, confidence, sds float64) (float64, error) {
	s, err := e.support(n, p, sds)
	if err != nil {
		return 0, err
	}
	covered := make([]float64, 0, len(s.Mass))
	for i, mass := range s.Mass {
		lo, hi, err := EvalSingle(method, s.From+i, n, confidence)
		if err != nil {
			return 0, err
		}
		if lo < p && p < hi {
			covered = append(covered, mass)
		}
	}
	return percent(floats.SumCompensated(covered)), nil
}

func validateSingle(n int, proportions []float64, confidence float64) error {
	if err := ValidateConfidence(confidence); err != nil {
		return err
	}
	if err := ValidateSampleSize("sample size", n); err != nil {
		return err
	}
	return ValidateProportions(proportions)
}
