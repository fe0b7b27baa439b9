package woe_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binstats/binstats/woe"
)

func TestOfBalanced(t *testing.T) {
	v := woe.Of(50, 50, 100, 100)
	assert.InDelta(t, 0.0, v.WoE, 1e-9)
	assert.InDelta(t, 0.0, v.IV, 1e-9)
}

func TestOfSmoothingZeroNeg(t *testing.T) {
	v := woe.Of(10, 0, 100, 50)
	require.False(t, math.IsInf(v.WoE, 0))
	require.False(t, math.IsNaN(v.WoE))
	// py = 0.1, pn = 0.5/50 = 0.01 -> woe = ln(10)
	assert.InDelta(t, math.Log(10), v.WoE, 1e-9)
}

func TestOfSmoothingZeroPos(t *testing.T) {
	v := woe.Of(0, 10, 50, 100)
	// py = 0.5/50 = 0.01, pn = 10/100 = 0.1 -> woe = ln(0.1)
	assert.InDelta(t, math.Log(0.1), v.WoE, 1e-9)
}

func TestIVOfRangeEmptyBin(t *testing.T) {
	assert.Equal(t, 0.0, woe.IVOfRange(0, 0, 100, 100))
}

func TestIVOfRangeMatchesOf(t *testing.T) {
	got := woe.IVOfRange(10, 5, 100, 50)
	want := woe.Of(10, 5, 100, 50).IV
	assert.Equal(t, want, got)
}

func TestIVNonNegative(t *testing.T) {
	for _, tc := range []struct{ pos, neg, totalPos, totalNeg float64 }{
		{1, 99, 100, 900},
		{99, 1, 100, 900},
		{50, 50, 100, 100},
	} {
		v := woe.Of(tc.pos, tc.neg, tc.totalPos, tc.totalNeg)
		assert.GreaterOrEqual(t, v.IV, -1e-12, "IV should be non-negative: %+v", tc)
	}
}
