// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package categorical

import (
	"strconv"

	"github.com/binstats/binstats/bin"
	"github.com/binstats/binstats/prebin"
	"github.com/binstats/binstats/woe"
)

// reconstruct turns a winning DP partition into the final ordered bin
// table, per §4.6: category-list bins in prebin (event-rate) order,
// WoE/IV scored against grand totals that include the missing cohort,
// and a trailing missing bin when non-empty.
func reconstruct(stats *prebin.Stats, keys []int32, splits []int) []bin.Record {
	grandPos := stats.TotalPos() + stats.MissingPos
	grandNeg := stats.TotalNeg() + stats.MissingNeg

	n := len(keys)
	var bins []bin.Record
	if n > 0 {
		bounds := append(append([]int{}, splits...), n-1)
		start := 0
		for binID, end := range bounds {
			p, neg := stats.GetCounts(start, end)
			cats := make([]string, 0, end-start+1)
			for i := start; i <= end; i++ {
				cats = append(cats, strconv.FormatInt(int64(keys[i]), 10))
			}
			v := woe.Of(p, neg, grandPos, grandNeg)
			bins = append(bins, bin.Record{
				BinID:      binID,
				Categories: cats,
				Pos:        p,
				Neg:        neg,
				WoE:        v.WoE,
				IV:         v.IV,
			})
			start = end + 1
		}
	}

	if stats.MissingPos+stats.MissingNeg > 0 {
		v := woe.Of(stats.MissingPos, stats.MissingNeg, grandPos, grandNeg)
		bins = append(bins, bin.Record{
			BinID:      len(bins),
			Categories: []string{"Missing"},
			Pos:        stats.MissingPos,
			Neg:        stats.MissingNeg,
			WoE:        v.WoE,
			IV:         v.IV,
			IsMissing:  true,
		})
	}
	return bins
}
