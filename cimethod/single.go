// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cimethod

import "math"

// Wald returns the Wald (normal approximation) interval
//
//	p̂ ± z·sqrt(p̂(1-p̂)/n)
//
// At p̂ = 0 or 1 the interval has zero width.
func (c *Catalog) Wald(x, n int, confidence float64) (lo, hi float64, err error) {
	if err := checkCount(x, n); err != nil {
		return 0, 0, err
	}
	z, err := c.z(confidence)
	if err != nil {
		return 0, 0, err
	}
	p := float64(x) / float64(n)
	sd := math.Sqrt((p * (1 - p)) / float64(n))
	zsd := z * sd
	return p - zsd, p + zsd, nil
}

// Wilson returns the Wilson score interval
//
//	(p̂ + z²/2n ± z·sqrt(p̂(1-p̂)/n + z²/4n²)) / (1 + z²/n)
func (c *Catalog) Wilson(x, n int, confidence float64) (lo, hi float64, err error) {
	if err := checkCount(x, n); err != nil {
		return 0, 0, err
	}
	z, err := c.z(confidence)
	if err != nil {
		return 0, 0, err
	}
	p, fn := float64(x)/float64(n), float64(n)
	denom := 1 + (z*z)/fn
	mean := p + (z*z)/(2*fn)
	diff := z * math.Sqrt(p*(1-p)/fn+(z*z)/(4*fn*fn))
	return (mean - diff) / denom, (mean + diff) / denom, nil
}

// WilsonCorrected returns the Wilson score interval with continuity
// correction (Newcombe 1998, method 4). The lower bound is 0 when
// x = 0 and the upper bound is 1 when x = n, and both are clipped to
// [0, 1].
func (c *Catalog) WilsonCorrected(x, n int, confidence float64) (lo, hi float64, err error) {
	if err := checkCount(x, n); err != nil {
		return 0, 0, err
	}
	z, err := c.z(confidence)
	if err != nil {
		return 0, 0, err
	}
	p, fn := float64(x)/float64(n), float64(n)
	e := 2*fn*p + z*z
	f := z*z - 1/fn + 4*fn*p*(1-p)
	g := 4*p - 2
	h := 2 * (fn + z*z)

	lo, hi = 0, 1
	if x > 0 {
		lo = math.Max(0, (e-(z*math.Sqrt(f+g)+1))/h)
	}
	if x < n {
		hi = math.Min(1, (e+(z*math.Sqrt(f-g)+1))/h)
	}
	return lo, hi, nil
}

// WilsonSemiCorrected returns the midpoint between the bounds of
// Wilson and WilsonCorrected.
func (c *Catalog) WilsonSemiCorrected(x, n int, confidence float64) (lo, hi float64, err error) {
	lo1, hi1, err := c.Wilson(x, n, confidence)
	if err != nil {
		return 0, 0, err
	}
	lo2, hi2, err := c.WilsonCorrected(x, n, confidence)
	if err != nil {
		return 0, 0, err
	}
	return (lo1 + lo2) / 2, (hi1 + hi2) / 2, nil
}
