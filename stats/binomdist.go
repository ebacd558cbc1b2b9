// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// BinomialDist is a binomial distribution.
type BinomialDist struct {
	// N is the number of independent Bernoulli trials. N >= 0.
	//
	// If N=1, this is equivalent to the Bernoulli distribution.
	N int

	// P is the probability of success in each trial. 0 <= P <= 1.
	P float64
}

// LogPMF is the natural logarithm of PMF(k).
//
// The binomial coefficient is computed through log-gamma, so this
// neither overflows for large N nor underflows before the final
// exponentiation.
func (d BinomialDist) LogPMF(k float64) float64 {
	ki := int(math.Floor(k))
	if ki < 0 || ki > d.N {
		return -inf
	}
	// The general formula evaluates 0*log(0) at the degenerate
	// endpoints.
	switch d.P {
	case 0:
		if ki == 0 {
			return 0
		}
		return -inf
	case 1:
		if ki == d.N {
			return 0
		}
		return -inf
	}
	return distuv.Binomial{N: float64(d.N), P: d.P}.LogProb(float64(ki))
}

// PMF is the probability of getting exactly int(k) successes in d.N
// independent Bernoulli trials with probability d.P.
func (d BinomialDist) PMF(k float64) float64 {
	return math.Exp(d.LogPMF(k))
}

// CDF is the probability of getting k or fewer successes in d.N
// independent Bernoulli trials with probability d.P.
func (d BinomialDist) CDF(k float64) float64 {
	k = math.Floor(k)
	ki := int(k)
	if ki < 0 {
		return 0
	} else if ki >= d.N {
		return 1
	}
	switch d.P {
	case 0:
		return 1
	case 1:
		return 0
	}
	return distuv.Binomial{N: float64(d.N), P: d.P}.CDF(k)
}

func (d BinomialDist) Mean() float64 {
	return float64(d.N) * d.P
}

func (d BinomialDist) Variance() float64 {
	return float64(d.N) * d.P * (1 - d.P)
}

// NormalApprox returns a normal distribution approximation of
// binomial distribution d.
//
// Because the binomial distribution is discrete and the normal
// distribution is continuous, the caller must apply a continuity
// correction when using this approximation. Specifically, if b is the
// binomial distribution and n is the normal approximation, operations
// map as follows:
//
//	b.PMF(k) => n.CDF(k+0.5) - n.CDF(k-0.5)
//	b.CDF(k) => n.CDF(k+0.5)
func (d BinomialDist) NormalApprox() NormalDist {
	return NormalDist{Mu: d.Mean(), Sigma: math.Sqrt(d.Variance())}
}

// TruncatedRange returns the outcomes [from, to] that lie within sds
// standard deviations of the mean of d, according to d's normal
// approximation. Each side is widened by one more outcome to absorb
// the rounding of the edges, and the result is clamped to [0, d.N].
//
// When the variance is 0 (P is 0 or 1) the range collapses to the
// outcomes adjacent to the mean. The result is never empty.
func (d BinomialDist) TruncatedRange(sds float64) (from, to int) {
	mu := d.Mean()
	sd := math.Sqrt(d.Variance())
	lo := math.Floor(mu-sds*sd) - 1
	hi := math.Ceil(mu+sds*sd) + 1

	from, to = 0, d.N
	if lo > 0 {
		from = int(lo)
	}
	if hi < float64(d.N) {
		to = int(hi)
	}
	return from, to
}
