// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "gonum.org/v1/gonum/floats"

// Support is the truncated support of a binomial distribution
// together with its probability masses.
type Support struct {
	// Dist is the distribution this support was truncated from.
	Dist BinomialDist

	// From and To are the inclusive bounds of the truncated range,
	// as returned by BinomialDist.TruncatedRange.
	From, To int

	// Mass[i] is Dist.PMF(From + i).
	Mass []float64

	// Total is the compensated sum of Mass. For a width from
	// RequiredPrecision it is within rounding of 1.
	Total float64
}

// NewSupport truncates Binomial(n, p) to sds standard deviations
// around its mean and evaluates the PMF over the result.
func NewSupport(n int, p, sds float64) *Support {
	return (*Cache)(nil).newSupport(n, p, sds)
}

// newSupport is NewSupport with the PMF evaluated through c.
func (c *Cache) newSupport(n int, p, sds float64) *Support {
	d := BinomialDist{N: n, P: p}
	from, to := d.TruncatedRange(sds)
	s := &Support{Dist: d, From: from, To: to}
	if to < from {
		return s
	}
	s.Mass = make([]float64, to-from+1)
	for i := range s.Mass {
		s.Mass[i] = c.PMF(from+i, n, p)
	}
	s.Total = floats.SumCompensated(s.Mass)
	return s
}

// Len returns the number of outcomes in s.
func (s *Support) Len() int {
	return len(s.Mass)
}
