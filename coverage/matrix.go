// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coverage

import (
	"math"

	"github.com/samber/lo"
)

// Matrix is a square matrix of coverages indexed by a list of
// proportions.
type Matrix [][]float64

// NewMatrix returns a k×k zero Matrix backed by a single slice.
func NewMatrix(k int) Matrix {
	backing := make([]float64, k*k)
	m := make(Matrix, k)
	for i := range m {
		m[i] = backing[i*k : (i+1)*k : (i+1)*k]
	}
	return m
}

// Len returns the number of rows of m.
func (m Matrix) Len() int { return len(m) }

// Symmetric reports whether m[i][j] and m[j][i] are bitwise equal for
// every i and j.
func (m Matrix) Symmetric() bool {
	for i := range m {
		for j := i + 1; j < len(m); j++ {
			if math.Float64bits(m[i][j]) != math.Float64bits(m[j][i]) {
				return false
			}
		}
	}
	return true
}

// Flatten returns the elements of m in row-major order.
func (m Matrix) Flatten() []float64 {
	return lo.Flatten([][]float64(m))
}
