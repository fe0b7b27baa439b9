package dp_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/binstats/binstats/dp"
	"github.com/binstats/binstats/prebin"
)

func TestOptimizeEmptySource(t *testing.T) {
	s := prebin.NewStats(nil, nil, 0, 0)
	r := dp.Optimize(s, dp.Constraints{MaxBins: 5})
	assert.Equal(t, 0, r.K)
	assert.Empty(t, r.Splits)
}

func TestOptimizeSinglePrebinIsDegenerate(t *testing.T) {
	s := prebin.NewStats([]float64{5}, []float64{5}, 0, 0)
	r := dp.Optimize(s, dp.Constraints{MaxBins: 5})
	assert.Equal(t, 1, r.K)
	assert.Empty(t, r.Splits)
}

func TestOptimizeTwoBinSplit(t *testing.T) {
	// Prebins modeling x=[1..10], y=[0]*5+[1]*5 already chunked 1-per-value.
	pos := []float64{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}
	neg := []float64{1, 1, 1, 1, 1, 0, 0, 0, 0, 0}
	s := prebin.NewStats(pos, neg, 0, 0)
	r := dp.Optimize(s, dp.Constraints{MaxBins: 2, MinCount: 0, Trend: dp.Increasing, Total: 10})
	require.Equal(t, 2, r.K)
	require.Len(t, r.Splits, 1)
	assert.Equal(t, 4, r.Splits[0])
	assert.Greater(t, r.TotalIV, 0.0)
}

func TestOptimizeInfeasibleFallsBackToOneBin(t *testing.T) {
	pos := []float64{5, 5}
	neg := []float64{5, 5}
	s := prebin.NewStats(pos, neg, 0, 0)
	// MaxCount smaller than the full-range count of 20 makes every k,
	// including k=1, infeasible; the optimizer must still return
	// something rather than erroring.
	r := dp.Optimize(s, dp.Constraints{MaxBins: 3, MinCount: 0, MaxCount: 5})
	assert.Equal(t, 1, r.K)
}

// bruteForce exhaustively partitions n prebins into every possible
// count of contiguous bins up to kMax and returns the best total IV
// achievable, honoring the same size constraint as the DP. Used to
// check DP optimality on small instances per §8.
func bruteForce(s *prebin.Stats, kMax int, minCount, maxCount float64) float64 {
	n := s.Len()
	best := math.Inf(-1)
	var rec func(start int, k int, acc float64)
	rec = func(start int, k int, acc float64) {
		if start == n {
			if acc > best {
				best = acc
			}
			return
		}
		if k == 0 {
			return
		}
		for end := start; end < n; end++ {
			p, neg := s.GetCounts(start, end)
			count := p + neg
			if count < minCount {
				continue
			}
			if maxCount > 0 && count > maxCount {
				continue
			}
			rec(end+1, k-1, acc+s.IVRange(start, end))
		}
	}
	for k := 1; k <= kMax; k++ {
		rec(0, k, 0)
	}
	return best
}

func TestOptimizeMatchesBruteForceNoTrend(t *testing.T) {
	pos := []float64{3, 1, 0, 4, 2, 5, 0, 1}
	neg := []float64{0, 2, 5, 1, 3, 0, 4, 2}
	s := prebin.NewStats(pos, neg, 0, 0)
	kMax := 4
	r := dp.Optimize(s, dp.Constraints{MaxBins: kMax, MinCount: 0})
	want := bruteForce(s, kMax, 0, 0)
	assert.InDelta(t, want, r.TotalIV, 1e-9)
}

func TestOptimizeSplitsArePartition(t *testing.T) {
	pos := []float64{3, 1, 0, 4, 2, 5, 0, 1}
	neg := []float64{0, 2, 5, 1, 3, 0, 4, 2}
	s := prebin.NewStats(pos, neg, 0, 0)
	r := dp.Optimize(s, dp.Constraints{MaxBins: 3, MinCount: 0})
	prev := -1
	for _, sp := range r.Splits {
		assert.Greater(t, sp, prev)
		assert.Less(t, sp, s.Len()-1)
		prev = sp
	}
}

func TestOptimizeRespectsMinCount(t *testing.T) {
	pos := []float64{1, 1, 1, 1, 1, 1}
	neg := []float64{1, 1, 1, 1, 1, 1}
	s := prebin.NewStats(pos, neg, 0, 0)
	r := dp.Optimize(s, dp.Constraints{MaxBins: 6, MinCount: 4})
	start := 0
	bounds := append(append([]int{}, r.Splits...), s.Len()-1)
	for _, end := range bounds {
		p, neg := s.GetCounts(start, end)
		assert.GreaterOrEqual(t, p+neg, 4.0)
		start = end + 1
	}
}
