// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package categorical

import (
	"context"
	"runtime"
	"sort"

	"github.com/grailbio/base/traverse"
	"v.io/x/lib/vlog"

	"github.com/binstats/binstats/prebin"
)

const missingCode = -1

type counts struct{ pos, neg float64 }

// prebinResult is the output of prebinning: a cumulative-count
// structure over the event-rate-ordered categories plus the codes in
// that same order.
type prebinResult struct {
	stats *prebin.Stats
	keys  []int32
}

// aggregateCounts implements §4.4 step 1's data-parallel reduction:
// shard the rows across GOMAXPROCS workers, let each worker build its
// own per-category tally with traverse.Each's work-stealing, then fold
// the shard tallies together with a tree-style pairwise merge, which
// runs on the calling goroutine.
func aggregateCounts(ctx context.Context, x []int32, y []int) map[int32]counts {
	n := len(x)
	shardCount := runtime.GOMAXPROCS(0)
	if shardCount > n {
		shardCount = n
	}
	if shardCount < 1 {
		shardCount = 1
	}

	shardMaps := make([]map[int32]counts, shardCount)
	bounds := make([]int, shardCount+1)
	for s := 0; s <= shardCount; s++ {
		bounds[s] = (s * n) / shardCount
	}

	_ = traverse.Each(shardCount, func(s int) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		local := make(map[int32]counts)
		for i := bounds[s]; i < bounds[s+1]; i++ {
			c := local[x[i]]
			if y[i] == 1 {
				c.pos++
			} else {
				c.neg++
			}
			local[x[i]] = c
		}
		shardMaps[s] = local
		return nil
	})

	return mergeTree(shardMaps)
}

// mergeTree folds a slice of per-shard count maps together pairwise in
// successive rounds (a tree-style merge) rather than one accumulator
// absorbing every shard in sequence; merge order does not affect the
// result because per-category addition is exactly associative over
// integer-valued counts.
func mergeTree(maps []map[int32]counts) map[int32]counts {
	if len(maps) == 0 {
		return map[int32]counts{}
	}
	for len(maps) > 1 {
		var next []map[int32]counts
		for i := 0; i < len(maps); i += 2 {
			if i+1 == len(maps) {
				next = append(next, maps[i])
				continue
			}
			next = append(next, mergeTwo(maps[i], maps[i+1]))
		}
		maps = next
	}
	return maps[0]
}

func mergeTwo(a, b map[int32]counts) map[int32]counts {
	out := make(map[int32]counts, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		c := out[k]
		c.pos += v.pos
		c.neg += v.neg
		out[k] = c
	}
	return out
}

// prebinCategorical implements §4.4: aggregate per-category counts,
// segregate the missing sentinel, then sort the remaining categories
// ascending by the unclamped event rate p/(p+n), with ties broken by
// ascending category code (Open Question ii).
func prebinCategorical(ctx context.Context, x []int32, y []int) prebinResult {
	agg := aggregateCounts(ctx, x, y)

	var missingPos, missingNeg float64
	if m, ok := agg[missingCode]; ok {
		missingPos, missingNeg = m.pos, m.neg
		delete(agg, missingCode)
	}

	codes := make([]int32, 0, len(agg))
	for code, c := range agg {
		if c.pos == 0 && c.neg == 0 {
			continue
		}
		codes = append(codes, code)
	}

	sort.Slice(codes, func(i, j int) bool {
		ci, cj := agg[codes[i]], agg[codes[j]]
		ri := ci.pos / (ci.pos + ci.neg)
		rj := cj.pos / (cj.pos + cj.neg)
		if ri != rj {
			return ri < rj
		}
		return codes[i] < codes[j]
	})

	vlog.VI(1).Infof("categorical prebin: %d distinct categories, missing (pos=%v neg=%v)", len(codes), missingPos, missingNeg)

	posCounts := make([]float64, len(codes))
	negCounts := make([]float64, len(codes))
	for i, code := range codes {
		posCounts[i] = agg[code].pos
		negCounts[i] = agg[code].neg
	}

	return prebinResult{
		stats: prebin.NewStats(posCounts, negCounts, missingPos, missingNeg),
		keys:  codes,
	}
}
