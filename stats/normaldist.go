// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// NormalDist is a normal (Gaussian) distribution with mean Mu and
// standard deviation Sigma.
type NormalDist struct {
	Mu, Sigma float64
}

// StdNormal is the standard normal distribution (Mu = 0, Sigma = 1).
var StdNormal = NormalDist{0, 1}

func (n NormalDist) dist() distuv.Normal {
	return distuv.Normal{Mu: n.Mu, Sigma: n.Sigma}
}

func (n NormalDist) CDF(x float64) float64 {
	return n.dist().CDF(x)
}

// InvCDF returns the quantile of n at y. It returns -Inf for y <= 0,
// +Inf for y >= 1 and NaN for NaN.
func (n NormalDist) InvCDF(y float64) float64 {
	switch {
	case math.IsNaN(y):
		return nan
	case y <= 0:
		return -inf
	case y >= 1:
		return inf
	}
	return n.dist().Quantile(y)
}

// TwoTailedZ returns the number of standard deviations z such that
// the area under the standard normal curve between -z and +z is
// confidence.
func TwoTailedZ(confidence float64) float64 {
	return StdNormal.InvCDF((1 + confidence) / 2)
}

// TwoTailedArea returns the area under the standard normal curve
// between -z and +z. It is the inverse of TwoTailedZ.
func TwoTailedArea(z float64) float64 {
	return 2*StdNormal.CDF(z) - 1
}
