// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"
	"sort"
	"testing"
)

func aeq(expect, got float64) bool {
	if expect == got || math.IsNaN(expect) && math.IsNaN(got) {
		return true
	}
	return math.Abs(expect-got) < 0.00001
}

// testFunc checks f against the expected values in vals, in
// increasing order of the argument.
func testFunc(t *testing.T, name string, f func(float64) float64, vals map[float64]float64) {
	t.Helper()
	xs := make([]float64, 0, len(vals))
	for x := range vals {
		xs = append(xs, x)
	}
	sort.Float64s(xs)
	for _, x := range xs {
		want, got := vals[x], f(x)
		if !aeq(want, got) {
			t.Errorf("%s(%v) = %v, want %v", name, x, got, want)
		}
	}
}

// testDiscreteCDF checks that dist's CDF is the running sum of its
// PMF across its bounds.
func testDiscreteCDF(t *testing.T, name string, dist BinomialDist) {
	t.Helper()
	lo, hi := 0.0, float64(dist.N)
	const step = 1.0
	if got := dist.CDF(lo - step); got != 0 {
		t.Errorf("%s(%v) = %v, want 0", name, lo-step, got)
	}
	var sum float64
	for x := lo; x <= hi; x += step {
		sum += dist.PMF(x)
		if got := dist.CDF(x); !aeq(sum, got) {
			t.Errorf("%s(%v) = %v, want %v", name, x, got, sum)
		}
		// Between defined points the CDF is flat.
		if got := dist.CDF(x + step/2); !aeq(sum, got) {
			t.Errorf("%s(%v) = %v, want %v", name, x+step/2, got, sum)
		}
	}
	if got := dist.CDF(hi + step); got != 1 {
		t.Errorf("%s(%v) = %v, want 1", name, hi+step, got)
	}
}
