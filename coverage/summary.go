// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coverage

import (
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a set of coverages against the confidence level
// they were computed for.
type Summary struct {
	// N is the number of coverages.
	N int

	// Average is the mean coverage, in percent.
	Average float64

	// AverageDeviation is the mean absolute difference, in
	// percentage points, between each coverage and 100·confidence.
	AverageDeviation float64

	// Min and Max are the extreme coverages.
	Min, Max float64
}

// Summarize returns the Summary of coverages computed at confidence.
// All fields but N are NaN for an empty input.
func Summarize(coverages []float64, confidence float64) Summary {
	if len(coverages) == 0 {
		nan := math.NaN()
		return Summary{Average: nan, AverageDeviation: nan, Min: nan, Max: nan}
	}
	target := confidence * 100
	deviations := lo.Map(coverages, func(c float64, _ int) float64 {
		return math.Abs(c - target)
	})
	return Summary{
		N:                len(coverages),
		Average:          stat.Mean(coverages, nil),
		AverageDeviation: stat.Mean(deviations, nil),
		Min:              floats.Min(coverages),
		Max:              floats.Max(coverages),
	}
}
