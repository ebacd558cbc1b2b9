// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package montecarlo

import (
	"encoding/binary"

	"lukechampine.com/frand"
)

// source adapts a frand ChaCha generator to the math/rand/v2 Source
// interface that gonum's distributions draw from.
type source struct {
	rng *frand.RNG
	buf [8]byte
}

// newSource returns the stream'th stream of seed. A zero seed draws
// fresh entropy, and the stream number is ignored.
func newSource(seed uint64, stream int) *source {
	if seed == 0 {
		return &source{rng: frand.New()}
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[0:], seed)
	binary.LittleEndian.PutUint64(key[8:], uint64(stream))
	return &source{rng: frand.NewCustom(key[:], 1024, 12)}
}

func (s *source) Uint64() uint64 {
	s.rng.Read(s.buf[:])
	return binary.LittleEndian.Uint64(s.buf[:])
}
