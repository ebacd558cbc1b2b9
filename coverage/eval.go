// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coverage

import (
	"fmt"

	"github.com/cicoverage/cicoverage/cimethod"
)

// EvalSingle calls m and checks its result. Any failure, including a
// panic inside m, is returned as a *MethodError carrying the
// arguments.
func EvalSingle(m cimethod.Single, x, n int, confidence float64) (lo, hi float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			err = &MethodError{Successes: x, Trials: n, Confidence: confidence, Lo: lo, Hi: hi, Err: err}
		}
	}()
	lo, hi, err = m(x, n, confidence)
	if err == nil {
		err = checkInterval(lo, hi)
	}
	return lo, hi, err
}

// EvalPair is EvalSingle for two-proportion methods.
func EvalPair(m cimethod.Pair, x1, n1, x2, n2 int, confidence float64) (lo, hi float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			err = &MethodError{
				Successes: x1, Trials: n1,
				Successes2: x2, Trials2: n2,
				Confidence: confidence, Lo: lo, Hi: hi, Err: err,
			}
		}
	}()
	lo, hi, err = m(x1, n1, x2, n2, confidence)
	if err == nil {
		err = checkInterval(lo, hi)
	}
	return lo, hi, err
}
