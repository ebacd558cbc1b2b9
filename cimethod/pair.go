// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cimethod

import "math"

// WaldDiff returns the Wald interval for the difference p̂2 - p̂1
// with unpooled standard error (the unpooled Z-test interval):
//
//	(p̂2 - p̂1) ± z·sqrt(p̂1(1-p̂1)/n1 + p̂2(1-p̂2)/n2)
func (c *Catalog) WaldDiff(x1, n1, x2, n2 int, confidence float64) (lo, hi float64, err error) {
	if err := checkCount(x1, n1); err != nil {
		return 0, 0, err
	}
	if err := checkCount(x2, n2); err != nil {
		return 0, 0, err
	}
	z, err := c.z(confidence)
	if err != nil {
		return 0, 0, err
	}
	p1 := float64(x1) / float64(n1)
	p2 := float64(x2) / float64(n2)
	delta := p2 - p1
	sd := math.Sqrt((p1*(1-p1))/float64(n1) + (p2*(1-p2))/float64(n2))
	zsd := math.Abs(z * sd)
	return delta - zsd, delta + zsd, nil
}

// PooledZ returns the interval for p̂2 - p̂1 whose standard error
// uses the pooled proportion p̂ = (x1+x2)/(n1+n2):
//
//	(p̂2 - p̂1) ± z·sqrt(p̂(1-p̂)(1/n1 + 1/n2))
func (c *Catalog) PooledZ(x1, n1, x2, n2 int, confidence float64) (lo, hi float64, err error) {
	if err := checkCount(x1, n1); err != nil {
		return 0, 0, err
	}
	if err := checkCount(x2, n2); err != nil {
		return 0, 0, err
	}
	z, err := c.z(confidence)
	if err != nil {
		return 0, 0, err
	}
	p1 := float64(x1) / float64(n1)
	p2 := float64(x2) / float64(n2)
	pooled := float64(x1+x2) / float64(n1+n2)
	sd := math.Sqrt(pooled * (1 - pooled) * (1/float64(n1) + 1/float64(n2)))
	zsd := z * sd
	return (p2 - p1) - zsd, (p2 - p1) + zsd, nil
}
