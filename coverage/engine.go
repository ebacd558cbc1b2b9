// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coverage computes the exact coverage of confidence-interval
// methods for binomial proportions and for the difference between two
// binomial proportions.
//
// Coverage is the probability, in percent, that the interval a method
// computes from a random sample contains the true parameter. Rather
// than simulating samples, the engine enumerates the outcomes of the
// binomial distribution and weights each covered outcome by its
// probability. Outcomes too far in the tails to matter at the
// requested confidence are skipped; see stats.RequiredPrecision.
package coverage // import "github.com/cicoverage/cicoverage/coverage"

import (
	"math"

	"github.com/cicoverage/cicoverage/stats"
)

// Precision is the width, in standard deviations, of the truncated
// binomial supports a coverage is summed over.
type Precision float64

// Auto selects stats.RequiredPrecision of the confidence level. Any
// positive Precision overrides it; a narrower width runs faster but
// can bias the result downward.
const Auto Precision = 0

// An Engine computes analytical coverage.
//
// The zero value is ready to use, but memoizes nothing and computes
// serially. An Engine is safe for concurrent use.
type Engine struct {
	// Cache memoizes z-scores, precision widths and binomial
	// supports. If nil, nothing is memoized.
	Cache *stats.Cache

	// Workers is the number of goroutines Pair spreads rows over.
	// Values below 2 compute serially.
	Workers int
}

// NewEngine returns an Engine with a fresh cache.
func NewEngine(workers int) *Engine {
	return &Engine{Cache: stats.NewCache(), Workers: workers}
}

// width resolves a Precision for confidence.
func (e *Engine) width(confidence float64, precision Precision) (float64, error) {
	if precision == Auto {
		return e.Cache.RequiredPrecision(confidence)
	}
	if !(precision > 0) || math.IsInf(float64(precision), 1) {
		return 0, invalid("precision", float64(precision))
	}
	return float64(precision), nil
}

// support returns the truncated support of Binomial(n, p), or a
// *DegenerateError if summing over it is meaningless.
func (e *Engine) support(n int, p, sds float64) (*stats.Support, error) {
	s := e.Cache.Support(n, p, sds)
	if s.Len() == 0 || !(s.Total > 0) || math.IsInf(s.Total, 0) {
		return nil, &DegenerateError{N: n, P: p, From: s.From, To: s.To, Mass: s.Total}
	}
	return s, nil
}

// percent converts a covered probability mass to a percentage.
func percent(mass float64) float64 {
	// Rounding can push a full-coverage sum an ulp or two past 1.
	return math.Min(100*mass, 100)
}
