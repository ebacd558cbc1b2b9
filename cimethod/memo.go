// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cimethod

import "sync"

type interval struct {
	lo, hi float64
	err    error
}

// MemoSingle returns a Single that remembers every result of m by its
// exact arguments. The result is safe for concurrent use.
func MemoSingle(m Single) Single {
	type key struct {
		x, n int
		conf float64
	}
	var (
		mu    sync.RWMutex
		cache = make(map[key]interval)
	)
	return func(x, n int, confidence float64) (float64, float64, error) {
		k := key{x, n, confidence}
		mu.RLock()
		v, ok := cache[k]
		mu.RUnlock()
		if !ok {
			v.lo, v.hi, v.err = m(x, n, confidence)
			mu.Lock()
			cache[k] = v
			mu.Unlock()
		}
		return v.lo, v.hi, v.err
	}
}

// MemoPair is MemoSingle for two-proportion methods.
func MemoPair(m Pair) Pair {
	type key struct {
		x1, n1, x2, n2 int
		conf           float64
	}
	var (
		mu    sync.RWMutex
		cache = make(map[key]interval)
	)
	return func(x1, n1, x2, n2 int, confidence float64) (float64, float64, error) {
		k := key{x1, n1, x2, n2, confidence}
		mu.RLock()
		v, ok := cache[k]
		mu.RUnlock()
		if !ok {
			v.lo, v.hi, v.err = m(x1, n1, x2, n2, confidence)
			mu.Lock()
			cache[k] = v
			mu.Unlock()
		}
		return v.lo, v.hi, v.err
	}
}
