// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package dp implements the dynamic-programming bin-partition
// optimizer shared by the numerical and categorical binners: given a
// prebinned sequence (package prebin) it selects at most Kmax
// contiguous bins maximizing total IV, subject to a minimum (and
// optional maximum) per-bin size and, for numerical data, a
// monotonic-WoE trend constraint.
package dp

import (
	"math"

	"github.com/binstats/binstats/prebin"
)

// Trend constrains the sign of WoE change across successive bins.
// Categorical binning uses TrendNone; numerical binning evaluates
// Increasing and Decreasing separately and keeps the better.
type Trend int

const (
	TrendNone Trend = iota
	Increasing
	Decreasing
)

// epsilon is the machine epsilon in double precision, the slack the
// monotonicity check is allowed per §4.5's recurrence.
const epsilon = 2.220446049250313e-16

// SizePenalty augments the selection objective with a term that
// discourages bins whose size fraction strays far from the midpoint
// of [MinBinPct, MaxBinPct]; it is meaningful only when MaxBinPct is
// configured (REDESIGN FLAG / Open Question iii), so the caller must
// leave it nil whenever MaxBinPct is zero.
type SizePenalty struct {
	MinBinPct, MaxBinPct float64
}

// Constraints bundles everything the optimizer needs beyond the
// prebinned Source itself.
type Constraints struct {
	MaxBins int
	// MinCount and MaxCount are absolute counts (already multiplied
	// by total and floored by the caller), not fractions. MaxCount <=
	// 0 means unconstrained.
	MinCount float64
	MaxCount float64
	Trend    Trend
	// Penalty, when non-nil, is added to the selection objective but
	// excluded from the reported TotalIV (§4.5's size-penalty
	// variant). Total must be the non-missing pos+neg count.
	Penalty *SizePenalty
	Total   float64
}

// Result is the chosen partition: Splits holds the interior prebin
// indices (0-based, ascending) separating consecutive bins, so the
// bins are [0..Splits[0]], [Splits[0]+1..Splits[1]], ...,
// [Splits[len-1]+1..n-1]. K == len(Splits)+1. TotalIV is always the
// unpenalized sum, even when a SizePenalty drove the selection.
type Result struct {
	Splits  []int
	K       int
	TotalIV float64
}

// Optimize runs the DP over src and returns the winning partition.
// When src.Len() is 0, Result is the empty partition (K=0): there is
// no non-missing data to bin, and the caller is expected to produce
// only a missing bin, if any. When src.Len() is 1, K is forced to 1:
// a single prebin can only ever form a single bin, the
// "NumericDegenerate" case of §7, which is a normal outcome.
func Optimize(src prebin.Source, c Constraints) Result {
	n := src.Len()
	if n == 0 {
		return Result{}
	}
	kMax := c.MaxBins
	if n < kMax {
		kMax = n
	}
	if kMax < 1 {
		kMax = 1
	}

	dpObj := make2D(kMax+1, n)
	dpIV := make2D(kMax+1, n)
	lastWoe := make2D(kMax+1, n)
	back := make2DInt(kMax+1, n)

	for i := 0; i < n; i++ {
		p, neg := src.GetCounts(0, i)
		if !sizeOK(p+neg, c) {
			continue
		}
		iv := src.IVRange(0, i)
		w := src.WoEOf(p, neg)
		dpIV[1][i] = iv
		dpObj[1][i] = iv + penaltyTerm(c, 1, kMax, p+neg)
		lastWoe[1][i] = w
	}

	for k := 2; k <= kMax; k++ {
		for i := k - 1; i < n; i++ {
			for j := k - 2; j < i; j++ {
				if dpObj[k-1][j] == negInf {
					continue
				}
				p, neg := src.GetCounts(j+1, i)
				count := p + neg
				if !sizeOK(count, c) {
					continue
				}
				w := src.WoEOf(p, neg)
				if c.Trend == Increasing && w < lastWoe[k-1][j]-epsilon {
					continue
				}
				if c.Trend == Decreasing && w > lastWoe[k-1][j]+epsilon {
					continue
				}
				candIV := dpIV[k-1][j] + src.IVRange(j+1, i)
				candObj := dpObj[k-1][j] + src.IVRange(j+1, i) + penaltyTerm(c, k, kMax, count)
				if candObj > dpObj[k][i] {
					dpObj[k][i] = candObj
					dpIV[k][i] = candIV
					back[k][i] = j
					lastWoe[k][i] = w
				}
			}
		}
	}

	finalK := selectFinalK(dpObj, dpIV, kMax, n, c.Penalty != nil)
	if finalK == 0 {
		// No partition, including K=1, satisfied the size
		// constraints (only possible with a too-tight MaxBinPct).
		// A single bin spanning everything is always a valid,
		// non-error outcome (§7/§8 scenario 6).
		return Result{Splits: nil, K: 1, TotalIV: src.IVRange(0, n-1)}
	}

	splits := backtrack(back, finalK, n-1)
	return Result{Splits: splits, K: finalK, TotalIV: dpIV[finalK][n-1]}
}

var negInf = math.Inf(-1)

func make2D(rows, cols int) [][]float64 {
	g := make([][]float64, rows)
	for k := range g {
		row := make([]float64, cols)
		for i := range row {
			row[i] = negInf
		}
		g[k] = row
	}
	return g
}

func make2DInt(rows, cols int) [][]int {
	g := make([][]int, rows)
	for k := range g {
		g[k] = make([]int, cols)
	}
	return g
}

func sizeOK(count float64, c Constraints) bool {
	if count < c.MinCount {
		return false
	}
	if c.MaxCount > 0 && count > c.MaxCount {
		return false
	}
	return true
}

// penaltyTerm implements §4.5.1's lambda*ln(1-r^2) size-size_frac
// penalty. It returns 0 whenever no penalty is configured, so callers
// that never set Constraints.Penalty get the unpenalized objective
// for free.
func penaltyTerm(c Constraints, k, kMax int, count float64) float64 {
	if c.Penalty == nil || c.Total <= 0 {
		return 0
	}
	p := c.Penalty
	halfRange := (p.MaxBinPct - p.MinBinPct) / 2
	if halfRange <= 0 {
		return 0
	}
	target := (p.MinBinPct + p.MaxBinPct) / 2
	sizeFrac := count / c.Total
	r := math.Abs(sizeFrac-target) / halfRange
	if r > 0.999 {
		r = 0.999
	}
	lambda := 5 * float64(kMax-k+1) / float64(kMax)
	return lambda * math.Log(1-r*r)
}

// selectFinalK implements §4.5's "Final K selection" rule: with a
// size penalty in play, pick the K maximizing the *unpenalized*
// TotalIV among feasible partitions (ties prefer larger K); otherwise
// pick the largest feasible K outright.
func selectFinalK(dpObj, dpIV [][]float64, kMax, n int, penalized bool) int {
	if !penalized {
		for k := kMax; k >= 1; k-- {
			if dpObj[k][n-1] != negInf {
				return k
			}
		}
		return 0
	}
	best := 0
	bestIV := negInf
	for k := 1; k <= kMax; k++ {
		if dpObj[k][n-1] == negInf {
			continue
		}
		iv := dpIV[k][n-1]
		if iv >= bestIV {
			bestIV = iv
			best = k
		}
	}
	return best
}

func backtrack(back [][]int, finalK, lastIdx int) []int {
	splits := make([]int, 0, finalK-1)
	currI := lastIdx
	for k := finalK; k > 1; k-- {
		splitPt := back[k][currI]
		splits = append(splits, splitPt)
		currI = splitPt
	}
	// splits were appended from K down to 2, i.e. in descending order
	// of currI; reverse to get them ascending.
	for l, r := 0, len(splits)-1; l < r; l, r = l+1, r-1 {
		splits[l], splits[r] = splits[r], splits[l]
	}
	return splits
}
