// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweep generates the proportions a coverage run iterates over
// and loads the configuration of a run.
package sweep // import "github.com/cicoverage/cicoverage/sweep"

import (
	"errors"
	"fmt"
	"math/big"
)

// MaxPoints bounds the length of a Range.
const MaxPoints = 1 << 20

var ErrRange = errors.New("sweep: invalid range")

// Range returns from, from+step, from+2·step, ... up to and including
// to. The arguments are decimal strings such as "0.01" (or fractions
// such as "1/3") and the arithmetic is exact, so Range("0.01", "0.99",
// "0.04") ends at exactly 0.97 rather than drifting. Each value is
// rounded to float64 only when it is emitted.
//
// Every value must lie strictly between 0 and 1.
func Range(from, to, step string) ([]float64, error) {
	x, ok := new(big.Rat).SetString(from)
	if !ok {
		return nil, fmt.Errorf("%w: from %q is not a number", ErrRange, from)
	}
	y, ok := new(big.Rat).SetString(to)
	if !ok {
		return nil, fmt.Errorf("%w: to %q is not a number", ErrRange, to)
	}
	d, ok := new(big.Rat).SetString(step)
	if !ok {
		return nil, fmt.Errorf("%w: step %q is not a number", ErrRange, step)
	}
	if d.Sign() <= 0 {
		return nil, fmt.Errorf("%w: step %s must be positive", ErrRange, step)
	}
	zero, one := new(big.Rat), big.NewRat(1, 1)
	if x.Cmp(zero) <= 0 || y.Cmp(one) >= 0 {
		return nil, fmt.Errorf("%w: [%s, %s] is not inside (0, 1)", ErrRange, from, to)
	}

	var out []float64
	for ; x.Cmp(y) <= 0; x.Add(x, d) {
		if len(out) == MaxPoints {
			return nil, fmt.Errorf("%w: more than %d points", ErrRange, MaxPoints)
		}
		f, _ := x.Float64()
		out = append(out, f)
	}
	return out, nil
}
