// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coverage

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParameter is returned before any computation for a
	// confidence outside (0, 1), a non-positive sample size, a
	// proportion outside (0, 1) or a non-positive precision width.
	ErrInvalidParameter = errors.New("coverage: invalid parameter")

	// ErrMethod matches every *MethodError.
	ErrMethod = errors.New("coverage: CI method failed")

	// ErrDegenerate matches every *DegenerateError.
	ErrDegenerate = errors.New("coverage: degenerate distribution")

	errBadInterval = errors.New("non-finite or ill-ordered interval")
)

func invalid(name string, value any) error {
	return fmt.Errorf("%w: %s = %v", ErrInvalidParameter, name, value)
}

// A MethodError reports that a CI method failed, panicked, or
// returned a non-finite or reversed interval for one outcome. The
// coverage it was contributing to is discarded.
type MethodError struct {
	// Successes and Trials are the outcome of the (first) sample.
	Successes, Trials int

	// Successes2 and Trials2 are the outcome of the second sample.
	// Both are 0 for single-proportion methods.
	Successes2, Trials2 int

	Confidence float64

	// Lo and Hi are the interval the method returned, if it
	// returned one.
	Lo, Hi float64

	Err error
}

func (e *MethodError) Error() string {
	if e.Trials2 == 0 {
		return fmt.Sprintf("coverage: CI method failed for successes=%d trials=%d confidence=%v: %v",
			e.Successes, e.Trials, e.Confidence, e.Err)
	}
	return fmt.Sprintf("coverage: CI method failed for successes1=%d trials1=%d successes2=%d trials2=%d confidence=%v: %v",
		e.Successes, e.Trials, e.Successes2, e.Trials2, e.Confidence, e.Err)
}

func (e *MethodError) Is(target error) bool { return target == ErrMethod }

func (e *MethodError) Unwrap() error { return e.Err }

// A DegenerateError reports a truncated support that is empty or
// whose probability mass is zero or not finite. Summing over it would
// produce a meaningless coverage of 0.
type DegenerateError struct {
	N        int
	P        float64
	From, To int
	Mass     float64
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("coverage: degenerate support [%d,%d] of Binomial(%d, %v) with mass %v",
		e.From, e.To, e.N, e.P, e.Mass)
}

func (e *DegenerateError) Is(target error) bool { return target == ErrDegenerate }

// ValidateConfidence checks that 0 < confidence < 1.
func ValidateConfidence(confidence float64) error {
	if !(confidence > 0 && confidence < 1) {
		return invalid("confidence", confidence)
	}
	return nil
}

// ValidateSampleSize checks that n > 0. name identifies the sample
// in the error.
func ValidateSampleSize(name string, n int) error {
	if n <= 0 {
		return invalid(name, n)
	}
	return nil
}

// ValidateProportions checks that every proportion lies strictly
// between 0 and 1.
func ValidateProportions(proportions []float64) error {
	for i, p := range proportions {
		if !(p > 0 && p < 1) {
			return invalid(fmt.Sprintf("proportions[%d]", i), p)
		}
	}
	return nil
}

// ValidateIncreasing checks that proportions never decreases, as
// pair matrices require.
func ValidateIncreasing(proportions []float64) error {
	for i := 1; i < len(proportions); i++ {
		if proportions[i] < proportions[i-1] {
			return invalid(fmt.Sprintf("proportions[%d]", i),
				fmt.Sprintf("%v < proportions[%d] = %v", proportions[i], i-1, proportions[i-1]))
		}
	}
	return nil
}

func checkInterval(lo, hi float64) error {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo > hi {
		return fmt.Errorf("%w [%v, %v]", errBadInterval, lo, hi)
	}
	return nil
}
