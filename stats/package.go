// Copyright 2015 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stats provides the normal and binomial primitives behind
// exact coverage computations: two-tailed z-scores, numerically
// stable binomial probabilities, truncated binomial supports, and the
// policy that decides how wide those supports must be.
package stats // import "github.com/cicoverage/cicoverage/stats"

import (
	"errors"
	"math"
)

var inf = math.Inf(1)
var nan = math.NaN()

// ErrConfidence is returned when a confidence level is outside the
// open interval (0, 1).
var ErrConfidence = errors.New("stats: confidence level must be in (0, 1)")
