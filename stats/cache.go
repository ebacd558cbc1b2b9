// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stats

import "sync"

// A Cache memoizes the pure functions of this package.
//
// Every entry is a deterministic function of its key, so a Cache only
// ever changes how fast a result is produced, never the result. A
// Cache is safe for concurrent use; two goroutines filling the same
// key at once both compute the same value.
//
// A nil *Cache is valid and memoizes nothing.
type Cache struct {
	z       memo[float64, float64]
	prec    memo[float64, float64]
	pmf     memo[pmfKey, float64]
	support memo[supportKey, *Support]
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return new(Cache)
}

type pmfKey struct {
	x, n int
	p    float64
}

type supportKey struct {
	n      int
	p, sds float64
}

// TwoTailedZ is a memoized TwoTailedZ.
func (c *Cache) TwoTailedZ(confidence float64) float64 {
	if c == nil {
		return TwoTailedZ(confidence)
	}
	return c.z.get(confidence, func() float64 {
		return TwoTailedZ(confidence)
	})
}

// RequiredPrecision is a memoized RequiredPrecision. Errors are not
// cached.
func (c *Cache) RequiredPrecision(confidence float64) (float64, error) {
	if c == nil {
		return RequiredPrecision(confidence)
	}
	if v, ok := c.prec.lookup(confidence); ok {
		return v, nil
	}
	v, err := RequiredPrecision(confidence)
	if err != nil {
		return 0, err
	}
	c.prec.store(confidence, v)
	return v, nil
}

// PMF is a memoized BinomialDist{N: n, P: p}.PMF(x).
func (c *Cache) PMF(x, n int, p float64) float64 {
	d := BinomialDist{N: n, P: p}
	if c == nil {
		return d.PMF(float64(x))
	}
	return c.pmf.get(pmfKey{x, n, p}, func() float64 {
		return d.PMF(float64(x))
	})
}

// Support returns the truncated support of Binomial(n, p) at width
// sds, memoized. Its masses come from PMF, so supports of the same
// distribution at different widths share them. The returned value is shared and must not be
// modified.
func (c *Cache) Support(n int, p, sds float64) *Support {
	if c == nil {
		return NewSupport(n, p, sds)
	}
	return c.support.get(supportKey{n, p, sds}, func() *Support {
		return c.newSupport(n, p, sds)
	})
}

// memo is a concurrency-safe map filled on demand. The zero value is
// ready to use.
type memo[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

func (c *memo[K, V]) lookup(k K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[k]
	return v, ok
}

func (c *memo[K, V]) store(k K, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m == nil {
		c.m = make(map[K]V)
	}
	c.m[k] = v
}

func (c *memo[K, V]) get(k K, fill func() V) V {
	if v, ok := c.lookup(k); ok {
		return v
	}
	v := fill()
	c.store(k, v)
	return v
}

func (c *memo[K, V]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
