// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import (
	"fmt"
	"math"
)

const (
	// PrecisionTightening is how many times smaller the probability
	// mass left outside a truncated support is than the mass a CI
	// at the requested confidence is allowed to miss.
	PrecisionTightening = 1000

	// PrecisionMargin is added to the computed width, a little like
	// a continuity correction.
	PrecisionMargin = 0.02

	// MaxPrecision is a truncation width past which a float64 sum
	// near 1 cannot change: the two-tailed normal mass outside 9
	// standard deviations is about 2e-19.
	MaxPrecision = 9.0
)

// RequiredPrecision returns the truncation width, in standard
// deviations, that makes a sum over a binomial support truncated
// with BinomialDist.TruncatedRange indistinguishable from the sum
// over the full support for CIs at the given confidence.
//
// The width is the two-tailed z-score of a level PrecisionTightening
// times closer to 1 than confidence, plus PrecisionMargin, rounded to
// two decimal places. For example, 0.95 needs 4.08 and 0.99 needs 4.44.
func RequiredPrecision(confidence float64) (float64, error) {
	if !(confidence > 0 && confidence < 1) {
		return 0, fmt.Errorf("%w: got %v", ErrConfidence, confidence)
	}
	level := 1 - (1-confidence)/PrecisionTightening
	z := TwoTailedZ(level)
	return math.Round((z+PrecisionMargin)*100) / 100, nil
}
