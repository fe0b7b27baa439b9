// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package numerical

import (
	"math"

	"github.com/binstats/binstats/bin"
	"github.com/binstats/binstats/prebin"
	"github.com/binstats/binstats/woe"
)

// reconstruct turns a winning DP partition into the final ordered bin
// table, per §4.6: half-open ranges with ±Inf at the extremes, WoE/IV
// scored against grand totals that include the missing cohort, and a
// trailing missing bin when non-empty.
func reconstruct(stats *prebin.Stats, edges []float64, splits []int) []bin.Record {
	grandPos := stats.TotalPos() + stats.MissingPos
	grandNeg := stats.TotalNeg() + stats.MissingNeg

	n := len(edges)
	var bins []bin.Record
	if n > 0 {
		bounds := append(append([]int{}, splits...), n-1)
		start := 0
		for binID, end := range bounds {
			p, neg := stats.GetCounts(start, end)
			left := math.Inf(-1)
			if start > 0 {
				left = edges[start-1]
			}
			right := math.Inf(1)
			if end < n-1 {
				right = edges[end]
			}
			v := woe.Of(p, neg, grandPos, grandNeg)
			bins = append(bins, bin.Record{
				BinID: binID,
				Range: &bin.Range{Left: left, Right: right},
				Pos:   p,
				Neg:   neg,
				WoE:   v.WoE,
				IV:    v.IV,
			})
			start = end + 1
		}
	}

	if stats.MissingPos+stats.MissingNeg > 0 {
		v := woe.Of(stats.MissingPos, stats.MissingNeg, grandPos, grandNeg)
		bins = append(bins, bin.Record{
			BinID:     len(bins),
			Range:     bin.NewMissingNumRange(),
			Pos:       stats.MissingPos,
			Neg:       stats.MissingNeg,
			WoE:       v.WoE,
			IV:        v.IV,
			IsMissing: true,
		})
	}
	return bins
}
