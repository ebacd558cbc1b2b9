// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cimethod is a catalog of confidence-interval formulas for a
// binomial proportion and for the difference between two binomial
// proportions.
//
// Every method is a pure, deterministic function of its arguments.
// Methods are bound to a Catalog so that the z-scores they need come
// from a shared stats.Cache.
package cimethod // import "github.com/cicoverage/cicoverage/cimethod"

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"

	"github.com/cicoverage/cicoverage/stats"
)

var (
	// ErrInvalidCount is returned for a negative number of
	// successes, more successes than trials, or no trials.
	ErrInvalidCount = errors.New("cimethod: successes must be in [0, trials] with trials > 0")

	// ErrConfidence is returned for a confidence level outside
	// (0, 1).
	ErrConfidence = stats.ErrConfidence
)

// Single computes a confidence interval (lo, hi) for a proportion
// given successes out of trials at the given confidence level.
type Single func(successes, trials int, confidence float64) (lo, hi float64, err error)

// Pair computes a confidence interval (lo, hi) for the difference
// p2 - p1 between the proportion of the second sample (successes2 out
// of trials2) and the first (successes1 out of trials1).
type Pair func(successes1, trials1, successes2, trials2 int, confidence float64) (lo, hi float64, err error)

// A Catalog holds the built-in methods.
type Catalog struct {
	cache   *stats.Cache
	singles map[string]Single
	pairs   map[string]Pair
}

// NewCatalog returns a Catalog whose methods draw z-scores from
// cache. cache may be nil.
func NewCatalog(cache *stats.Cache) *Catalog {
	c := &Catalog{cache: cache}
	c.singles = map[string]Single{
		"wald":      c.Wald,
		"wilson":    c.Wilson,
		"wilson-cc": c.WilsonCorrected,
		"wilson-sc": c.WilsonSemiCorrected,
	}
	c.pairs = map[string]Pair{
		"wald-diff": c.WaldDiff,
		"pooled-z":  c.PooledZ,
	}
	return c
}

// Single returns the single-proportion method called name.
func (c *Catalog) Single(name string) (Single, bool) {
	m, ok := c.singles[name]
	return m, ok
}

// Pair returns the two-proportion method called name.
func (c *Catalog) Pair(name string) (Pair, bool) {
	m, ok := c.pairs[name]
	return m, ok
}

// SingleNames returns the names of the single-proportion methods in
// sorted order.
func (c *Catalog) SingleNames() []string {
	names := lo.Keys(c.singles)
	sort.Strings(names)
	return names
}

// PairNames returns the names of the two-proportion methods in
// sorted order.
func (c *Catalog) PairNames() []string {
	names := lo.Keys(c.pairs)
	sort.Strings(names)
	return names
}

// z validates confidence and returns its two-tailed z-score.
func (c *Catalog) z(confidence float64) (float64, error) {
	if !(confidence > 0 && confidence < 1) {
		return 0, fmt.Errorf("%w: got %v", ErrConfidence, confidence)
	}
	return c.cache.TwoTailedZ(confidence), nil
}

func checkCount(successes, trials int) error {
	if trials <= 0 || successes < 0 || successes > trials {
		return fmt.Errorf("%w: got %d of %d", ErrInvalidCount, successes, trials)
	}
	return nil
}
