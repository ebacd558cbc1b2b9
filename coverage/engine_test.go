// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package coverage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cicoverage/cicoverage/cimethod"
	"github.com/cicoverage/cicoverage/stats"
)

var (
	ctx     = context.Background()
	catalog = cimethod.NewCatalog(stats.NewCache())
)

// decimals returns from, from+step, ... up to to, where all three are
// given in hundredths.
func decimals(t *testing.T, from, to, step int) []float64 {
	t.Helper()
	var ps []float64
	for x := from; x <= to; x += step {
		p, err := strconv.ParseFloat(fmt.Sprintf("0.%02d", x), 64)
		require.NoError(t, err)
		ps = append(ps, p)
	}
	return ps
}

func TestWaldKnownValue(t *testing.T) {
	e := NewEngine(1)
	const want = 94.31120663590082
	for i := 0; i < 3; i++ {
		got, err := e.At(ctx, catalog.Wald, 100, 0.5, 0.95, Auto)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-9)
	}
	// An uncached engine gets the same answer.
	var bare Engine
	got, err := bare.At(ctx, catalog.Wald, 100, 0.5, 0.95, Auto)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)
}

func TestWaldSweep(t *testing.T) {
	ps := decimals(t, 1, 99, 4)
	require.Len(t, ps, 25)
	assert.Equal(t, 0.97, ps[len(ps)-1])

	e := NewEngine(1)
	covs, err := e.Single(ctx, catalog.Wald, 100, ps, 0.90, Auto)
	require.NoError(t, err)
	require.Len(t, covs, len(ps))
	assert.InDelta(t, 63.053533713899554, covs[0], 1e-9)
	assert.InDelta(t, 91.14386372092193, covs[12], 1e-9)

	sum := Summarize(covs, 0.90)
	assert.Equal(t, 25, sum.N)
	assert.InDelta(t, 87.83589900013003, sum.Average, 1e-9)
	assert.InDelta(t, 2.771783320472033, sum.AverageDeviation, 1e-9)
	for i, c := range covs {
		assert.GreaterOrEqual(t, c, 0.0, "p=%v", ps[i])
		assert.LessOrEqual(t, c, 100.0, "p=%v", ps[i])
		single, err := e.At(ctx, catalog.Wald, 100, ps[i], 0.90, Auto)
		require.NoError(t, err)
		assert.Equal(t, c, single, "p=%v", ps[i])
	}
}

func TestStrictContainment(t *testing.T) {
	e := NewEngine(1)
	for _, p := range []float64{0.01, 0.3, 0.5, 0.77, 0.99} {
		atTruth := func(x, n int, conf float64) (float64, float64, error) {
			return p, p, nil
		}
		got, err := e.At(ctx, atTruth, 50, p, 0.95, Auto)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got, "p=%v", p)

		fromTruth := func(x, n int, conf float64) (float64, float64, error) {
			return p, p + 0.5, nil
		}
		got, err = e.At(ctx, fromTruth, 50, p, 0.95, Auto)
		require.NoError(t, err)
		assert.Equal(t, 0.0, got, "p=%v", p)

		everything := func(x, n int, conf float64) (float64, float64, error) {
			return -1, 2, nil
		}
		got, err = e.At(ctx, everything, 50, p, 0.95, Auto)
		require.NoError(t, err)
		assert.InDelta(t, 100, got, 0.01, "p=%v", p)
		assert.LessOrEqual(t, got, 100.0)
	}

	atDelta := func(x1, n1, x2, n2 int, conf float64) (float64, float64, error) {
		return 0.2, 0.2, nil
	}
	got, err := e.PairAt(ctx, atDelta, 30, 30, 0.3, 0.5, 0.95, Auto)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestConvergence(t *testing.T) {
	e := NewEngine(1)
	var ps []float64
	for k := 0; k < 333; k += 7 {
		ps = append(ps, 0.001+0.003*float64(k))
	}
	for _, conf := range []float64{0.90, 0.95, 0.99} {
		auto, err := e.Single(ctx, catalog.Wilson, 100, ps, conf, Auto)
		require.NoError(t, err)
		full, err := e.Single(ctx, catalog.Wilson, 100, ps, conf, stats.MaxPrecision)
		require.NoError(t, err)
		for i := range ps {
			assert.InDelta(t, full[i], auto[i], 1e-6, "conf=%v p=%v", conf, ps[i])
		}
	}

	// A narrower range only drops outcomes, so it can only lose
	// coverage.
	for _, p := range []float64{0.05, 0.5, 0.9} {
		auto, err := e.At(ctx, catalog.Wald, 200, p, 0.95, Auto)
		require.NoError(t, err)
		narrow, err := e.At(ctx, catalog.Wald, 200, p, 0.95, 1.5)
		require.NoError(t, err)
		assert.LessOrEqual(t, narrow, auto)
	}
}

func TestConvergenceSkewed(t *testing.T) {
	// Near 0 and 1 the binomial tail is heavier than the normal one
	// the width is derived from, so at high confidence the left-out
	// mass exceeds (1-c)/PrecisionTightening by up to an order of
	// magnitude. It still bounds the change in coverage.
	ps := decimals(t, 1, 99, 1)
	e := NewEngine(1)
	for _, conf := range []float64{0.95, 0.99, 0.999} {
		sds, err := stats.RequiredPrecision(conf)
		require.NoError(t, err)
		budget := 100 * (1 - conf) / stats.PrecisionTightening
		for _, n := range []int{30, 100, 500} {
			auto, err := e.Single(ctx, catalog.Wald, n, ps, conf, Auto)
			require.NoError(t, err)
			full, err := e.Single(ctx, catalog.Wald, n, ps, conf, stats.MaxPrecision)
			require.NoError(t, err)
			for i, p := range ps {
				diff := math.Abs(full[i] - auto[i])
				missed := 100 * (1 - e.Cache.Support(n, p, sds).Total)
				assert.LessOrEqual(t, diff, missed+1e-9, "n=%d conf=%v p=%v", n, conf, p)
				assert.LessOrEqual(t, diff, 15*budget, "n=%d conf=%v p=%v", n, conf, p)
				if conf == 0.95 {
					assert.InDelta(t, full[i], auto[i], 1e-6, "n=%d p=%v", n, p)
				}
			}
		}
	}
}

func TestPairConvergence(t *testing.T) {
	// Each truncated tail leaves out mass, and the joint support
	// loses the union: 1 - Total1·Total2.
	ps := []float64{0.01, 0.05, 0.2, 0.5, 0.8, 0.95, 0.99}
	const conf = 0.95
	worst := 0.0
	for _, n := range []int{20, 100} {
		e := NewEngine(4)
		auto, err := e.Pair(ctx, catalog.WaldDiff, n, n, ps, conf, Auto)
		require.NoError(t, err)
		full, err := e.Pair(ctx, catalog.WaldDiff, n, n, ps, conf, stats.MaxPrecision)
		require.NoError(t, err)
		sds, err := stats.RequiredPrecision(conf)
		require.NoError(t, err)
		for i, p := range ps {
			for j, q := range ps {
				diff := math.Abs(full[i][j] - auto[i][j])
				s1, s2 := e.Cache.Support(n, p, sds), e.Cache.Support(n, q, sds)
				assert.LessOrEqual(t, diff, 100*(1-s1.Total*s2.Total)+1e-9, "n=%d p=%v q=%v", n, p, q)
				worst = math.Max(worst, diff)
			}
		}
	}
	assert.Less(t, worst, 5e-3)
}

func TestDegenerateProportions(t *testing.T) {
	e := NewEngine(1)
	for _, m := range []cimethod.Single{catalog.Wald, catalog.Wilson, catalog.WilsonCorrected} {
		covs, err := e.Single(ctx, m, 30, []float64{1e-9, 0.001, 0.999, 1 - 1e-9}, 0.95, Auto)
		require.NoError(t, err)
		for _, c := range covs {
			assert.False(t, math.IsNaN(c))
			assert.GreaterOrEqual(t, c, 0.0)
			assert.LessOrEqual(t, c, 100.0)
		}
	}
	m, err := e.Pair(ctx, catalog.PooledZ, 30, 40, []float64{1e-6, 0.5, 1 - 1e-6}, 0.99, Auto)
	require.NoError(t, err)
	for _, c := range m.Flatten() {
		assert.False(t, math.IsNaN(c))
	}
}

func TestInvalidParameters(t *testing.T) {
	e := NewEngine(1)
	calls := 0
	counting := func(x, n int, conf float64) (float64, float64, error) {
		calls++
		return 0, 1, nil
	}
	pairCounting := func(x1, n1, x2, n2 int, conf float64) (float64, float64, error) {
		calls++
		return 0, 1, nil
	}
	for _, test := range []struct {
		n    int
		ps   []float64
		conf float64
		prec Precision
	}{
		{100, []float64{0.5}, 0, Auto},
		{100, []float64{0.5}, 1, Auto},
		{100, []float64{0.5}, math.NaN(), Auto},
		{0, []float64{0.5}, 0.95, Auto},
		{-3, []float64{0.5}, 0.95, Auto},
		{100, []float64{0.5, 0}, 0.95, Auto},
		{100, []float64{1}, 0.95, Auto},
		{100, []float64{-0.1}, 0.95, Auto},
		{100, []float64{math.NaN()}, 0.95, Auto},
		{100, []float64{0.5}, 0.95, -1},
		{100, []float64{0.5}, 0.95, Precision(math.Inf(1))},
	} {
		_, err := e.Single(ctx, counting, test.n, test.ps, test.conf, test.prec)
		assert.ErrorIs(t, err, ErrInvalidParameter, "%+v", test)
		_, err = e.Pair(ctx, pairCounting, test.n, 10, test.ps, test.conf, test.prec)
		assert.ErrorIs(t, err, ErrInvalidParameter, "%+v", test)
	}
	_, err := e.Pair(ctx, pairCounting, 10, 0, []float64{0.5}, 0.95, Auto)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = e.Pair(ctx, pairCounting, 10, 10, []float64{0.2, 0.6, 0.4}, 0.95, Auto)
	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.ErrorContains(t, err, "proportions[2]")
	assert.Zero(t, calls, "method called despite invalid parameters")

	// Equal neighbours are allowed.
	_, err = e.Pair(ctx, pairCounting, 10, 10, []float64{0.2, 0.2, 0.4}, 0.95, Auto)
	assert.NoError(t, err)
}

func TestMethodFailures(t *testing.T) {
	e := NewEngine(1)
	boom := errors.New("boom")
	for name, m := range map[string]cimethod.Single{
		"error": func(x, n int, conf float64) (float64, float64, error) {
			if x == 47 {
				return 0, 0, boom
			}
			return catalog.Wald(x, n, conf)
		},
		"panic": func(x, n int, conf float64) (float64, float64, error) {
			if x == 47 {
				var zero int
				return float64(x / zero), 0, nil
			}
			return catalog.Wald(x, n, conf)
		},
		"nan": func(x, n int, conf float64) (float64, float64, error) {
			if x == 47 {
				return math.NaN(), 1, nil
			}
			return catalog.Wald(x, n, conf)
		},
		"reversed": func(x, n int, conf float64) (float64, float64, error) {
			if x == 47 {
				return 0.6, 0.4, nil
			}
			return catalog.Wald(x, n, conf)
		},
	} {
		covs, err := e.Single(ctx, m, 100, []float64{0.45, 0.5}, 0.95, Auto)
		require.Error(t, err, name)
		assert.Nil(t, covs, name)
		assert.ErrorIs(t, err, ErrMethod, name)
		var me *MethodError
		require.ErrorAs(t, err, &me, name)
		assert.Equal(t, 47, me.Successes, name)
		assert.Equal(t, 100, me.Trials, name)
		assert.Equal(t, 0.95, me.Confidence, name)
		assert.Contains(t, err.Error(), "successes=47 trials=100", name)
		if name == "error" {
			assert.ErrorIs(t, err, boom)
		}
	}

	m, err := e.Pair(ctx, func(x1, n1, x2, n2 int, conf float64) (float64, float64, error) {
		if x1 == 0 && x2 == 0 {
			return 0, 0, boom
		}
		return catalog.WaldDiff(x1, n1, x2, n2, conf)
	}, 20, 25, []float64{0.01, 0.5}, 0.95, Auto)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, boom)
	var me *MethodError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, MethodError{Trials: 20, Trials2: 25, Confidence: 0.95, Err: boom}, *me)
}

func TestCanceled(t *testing.T) {
	e := NewEngine(2)
	cctx, cancel := context.WithCancel(ctx)
	cancel()
	_, err := e.Single(cctx, catalog.Wald, 100, []float64{0.5}, 0.95, Auto)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = e.Pair(cctx, catalog.WaldDiff, 100, 100, []float64{0.2, 0.5}, 0.95, Auto)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDegenerateError(t *testing.T) {
	err := error(&DegenerateError{N: 10, P: 0.5, From: 3, To: 2})
	assert.ErrorIs(t, err, ErrDegenerate)
	assert.NotErrorIs(t, err, ErrMethod)
	assert.Contains(t, err.Error(), "[3,2]")
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	lctx := logger.WithContext(ctx)
	_, err := NewEngine(1).Single(lctx, catalog.Wald, 100, []float64{0.5}, 0.95, Auto)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"single-coverage"`)
	assert.Contains(t, buf.String(), `"z-precision":4.08`)
	assert.Contains(t, buf.String(), `"message":"proportion-done"`)
}
