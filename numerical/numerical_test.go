// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package numerical

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trivialXY() ([]float64, []int) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	y := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	return x, y
}

func TestFitTrivialSplitsMonotonic(t *testing.T) {
	b, err := NewBinner(Config{MaxBins: 2, MinBinPct: 0.05, InitialBinsCount: 10})
	require.NoError(t, err)
	fitted, err := b.Fit(context.Background(), trivialXY())
	require.NoError(t, err)

	bins := fitted.Bins()
	require.Len(t, bins, 2)
	assert.Equal(t, 5.0, bins[0].Range.Right)
	assert.True(t, math.IsInf(bins[1].Range.Right, 1))

	assert.Less(t, bins[0].WoE, bins[1].WoE)
}

func TestFitWithMissingProducesTrailingMissingBin(t *testing.T) {
	x := []float64{1, 2, 3, 4, math.NaN(), math.NaN()}
	y := []int{0, 0, 1, 1, 1, 0}
	b, err := NewBinner(Config{MaxBins: 3, MinBinPct: 0, InitialBinsCount: 4})
	require.NoError(t, err)
	fitted, err := b.Fit(context.Background(), x, y)
	require.NoError(t, err)

	bins := fitted.Bins()
	last := bins[len(bins)-1]
	assert.True(t, last.IsMissing)
	assert.Equal(t, 1.0, last.Pos)
	assert.Equal(t, 1.0, last.Neg)
	assert.True(t, math.IsNaN(last.Range.Left))
	assert.True(t, math.IsNaN(last.Range.Right))
}

func TestFitTiePreservationDuplicateValues(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 5, 5, 5, 6, 7}
	y := []int{0, 0, 0, 1, 0, 1, 0, 1, 1, 1}
	b, err := NewBinner(Config{MaxBins: 5, MinBinPct: 0, InitialBinsCount: 4})
	require.NoError(t, err)
	fitted, err := b.Fit(context.Background(), x, y)
	require.NoError(t, err)

	// Every one of the four 5.0 rows must land in the same bin.
	out := fitted.Transform([]float64{5, 5, 5, 5})
	for i := 1; i < len(out); i++ {
		assert.Equal(t, out[0], out[i])
	}
}

func TestFitTransformMatchesFitThenTransform(t *testing.T) {
	x, y := trivialXY()
	b1, err := NewBinner(Config{MaxBins: 4, MinBinPct: 0.05, InitialBinsCount: 10})
	require.NoError(t, err)
	out1, fitted1, err := b1.FitTransform(context.Background(), x, y)
	require.NoError(t, err)

	b2, err := NewBinner(Config{MaxBins: 4, MinBinPct: 0.05, InitialBinsCount: 10})
	require.NoError(t, err)
	fitted2, err := b2.Fit(context.Background(), x, y)
	require.NoError(t, err)
	out2 := fitted2.Transform(x)

	assert.Equal(t, out1, out2)
	assert.Equal(t, fitted1.TotalIV(), fitted2.TotalIV())
}

func TestBinsPartitionCountsSumToTotals(t *testing.T) {
	x, y := trivialXY()
	b, err := NewBinner(Config{MaxBins: 4, MinBinPct: 0.05, InitialBinsCount: 10})
	require.NoError(t, err)
	fitted, err := b.Fit(context.Background(), x, y)
	require.NoError(t, err)

	var pos, neg float64
	for _, bin := range fitted.Bins() {
		pos += bin.Pos
		neg += bin.Neg
	}
	assert.Equal(t, 5.0, pos)
	assert.Equal(t, 5.0, neg)
}

func TestRangesCoverWithInfiniteExtremes(t *testing.T) {
	x, y := trivialXY()
	b, err := NewBinner(Config{MaxBins: 4, MinBinPct: 0.05, InitialBinsCount: 10})
	require.NoError(t, err)
	fitted, err := b.Fit(context.Background(), x, y)
	require.NoError(t, err)

	bins := fitted.Bins()
	assert.True(t, math.IsInf(bins[0].Range.Left, -1))
	assert.True(t, math.IsInf(bins[len(bins)-1].Range.Right, 1))
	for i := 1; i < len(bins); i++ {
		assert.Equal(t, bins[i-1].Range.Right, bins[i].Range.Left)
	}
}

func TestNewBinnerRejectsInvalidConfig(t *testing.T) {
	_, err := NewBinner(Config{MaxBins: 0})
	assert.Error(t, err)

	_, err = NewBinner(Config{MaxBins: 4, MinBinPct: 0.5, MaxBinPct: 0.3})
	assert.Error(t, err)
}

func TestFitRejectsMismatchedLengths(t *testing.T) {
	b, err := NewBinner(Config{MaxBins: 4, MinBinPct: 0})
	require.NoError(t, err)
	_, err = b.Fit(context.Background(), []float64{1, 2}, []int{0})
	assert.Error(t, err)
}

func TestFitRejectsNonBinaryTarget(t *testing.T) {
	b, err := NewBinner(Config{MaxBins: 4, MinBinPct: 0})
	require.NoError(t, err)
	_, err = b.Fit(context.Background(), []float64{1, 2}, []int{0, 2})
	assert.Error(t, err)
}

func TestMutableBinnerRefitReplacesTable(t *testing.T) {
	m, err := NewMutableBinner(Config{MaxBins: 4, MinBinPct: 0.05, InitialBinsCount: 10})
	require.NoError(t, err)

	_, err = m.Transform([]float64{1})
	assert.Error(t, err)

	x, y := trivialXY()
	require.NoError(t, m.Fit(context.Background(), x, y))
	firstBins, err := m.Bins()
	require.NoError(t, err)

	x2 := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	y2 := []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	require.NoError(t, m.Fit(context.Background(), x2, y2))
	secondBins, err := m.Bins()
	require.NoError(t, err)

	assert.NotEqual(t, firstBins, secondBins)
}

func TestFingerprintDeterministicAndSensitive(t *testing.T) {
	x, y := trivialXY()
	b, err := NewBinner(Config{MaxBins: 4, MinBinPct: 0.05, InitialBinsCount: 10})
	require.NoError(t, err)
	f1, err := b.Fit(context.Background(), x, y)
	require.NoError(t, err)
	f2, err := b.Fit(context.Background(), x, y)
	require.NoError(t, err)
	assert.Equal(t, f1.Fingerprint(), f2.Fingerprint())

	b2, err := NewBinner(Config{MaxBins: 3, MinBinPct: 0.05, InitialBinsCount: 10})
	require.NoError(t, err)
	f3, err := b2.Fit(context.Background(), x, y)
	require.NoError(t, err)
	assert.NotEqual(t, f1.Fingerprint(), f3.Fingerprint())
}
