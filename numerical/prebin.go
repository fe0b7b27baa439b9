// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package numerical

import (
	"container/heap"
	"context"
	"math"
	"runtime"
	"sort"

	"github.com/grailbio/base/traverse"
	"v.io/x/lib/vlog"

	"github.com/binstats/binstats/prebin"
)

type point struct {
	value  float64
	target int
}

// prebinResult is the output of prebinning: a cumulative-count
// structure over the finite, sorted data plus the ordered right-edge
// value of each prebin.
type prebinResult struct {
	stats *prebin.Stats
	edges []float64
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// initialBinCount returns M, the prebin target count: a caller-fixed
// value when configured, else floor(sqrt(n)) clamped to [100, 500]
// per §4.3.
func initialBinCount(n, fixed int) int {
	if fixed > 0 {
		return fixed
	}
	if n == 0 {
		return 1
	}
	m := int(math.Sqrt(float64(n)))
	return clampInt(m, 100, 500)
}

// sortPointsParallel sorts pts ascending by value using a data-parallel
// shard-sort-then-merge scheme: each of GOMAXPROCS shards is sorted
// independently with traverse.Each's work-stealing, then the sorted
// shards are merged sequentially. The merge is a plain k-way merge
// over integer counts so it is exact regardless of how ties within a
// value are ordered among shards (§5: "final sorted order of equal
// keys is unspecified and must not affect outputs").
func sortPointsParallel(ctx context.Context, pts []point) {
	n := len(pts)
	if n < 2 {
		return
	}
	shardCount := runtime.GOMAXPROCS(0)
	if shardCount > n {
		shardCount = n
	}
	if shardCount < 2 {
		sort.Slice(pts, func(i, j int) bool { return pts[i].value < pts[j].value })
		return
	}

	bounds := make([]int, shardCount+1)
	for s := 0; s <= shardCount; s++ {
		bounds[s] = (s * n) / shardCount
	}

	_ = traverse.Each(shardCount, func(s int) error {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		shard := pts[bounds[s]:bounds[s+1]]
		sort.Slice(shard, func(i, j int) bool { return shard[i].value < shard[j].value })
		return nil
	})

	merged := make([]point, 0, n)
	merged = kWayMerge(merged, pts, bounds)
	copy(pts, merged)
}

type mergeCursor struct {
	pts   []point
	pos   int
	shard int
}

type cursorHeap []*mergeCursor

func (h cursorHeap) Len() int            { return len(h) }
func (h cursorHeap) Less(i, j int) bool  { return h[i].pts[h[i].pos].value < h[j].pts[h[j].pos].value }
func (h cursorHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *cursorHeap) Push(x interface{}) { *h = append(*h, x.(*mergeCursor)) }
func (h *cursorHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func kWayMerge(dst []point, pts []point, bounds []int) []point {
	h := &cursorHeap{}
	for s := 0; s < len(bounds)-1; s++ {
		if bounds[s] < bounds[s+1] {
			heap.Push(h, &mergeCursor{pts: pts[bounds[s]:bounds[s+1]], pos: 0, shard: s})
		}
	}
	heap.Init(h)
	for h.Len() > 0 {
		c := (*h)[0]
		dst = append(dst, c.pts[c.pos])
		c.pos++
		if c.pos < len(c.pts) {
			heap.Fix(h, 0)
		} else {
			heap.Pop(h)
		}
	}
	return dst
}

// prebinNumerical implements §4.3: split finite/missing, sort finite
// values, and walk the sorted stream closing a prebin once it has
// reached the chunk size C and the next value differs, guaranteeing
// equal values never straddle a boundary.
func prebinNumerical(ctx context.Context, x []float64, y []int, fixedM int) prebinResult {
	missingPos, missingNeg := 0.0, 0.0
	finite := make([]point, 0, len(x))
	for i, v := range x {
		if math.IsNaN(v) {
			if y[i] == 1 {
				missingPos++
			} else {
				missingNeg++
			}
			continue
		}
		finite = append(finite, point{value: v, target: y[i]})
	}

	sortPointsParallel(ctx, finite)

	n := len(finite)
	if n == 0 {
		return prebinResult{stats: prebin.NewStats(nil, nil, missingPos, missingNeg), edges: nil}
	}

	m := initialBinCount(n, fixedM)
	chunk := (n + m - 1) / m
	if chunk < 1 {
		chunk = 1
	}
	vlog.VI(1).Infof("numerical prebin: %d finite rows, %d missing, target %d prebins of size %d", n, len(x)-n, m, chunk)

	var posCounts, negCounts, edges []float64
	var curPos, curNeg float64
	curCount := 0
	for i, pt := range finite {
		if pt.target == 1 {
			curPos++
		} else {
			curNeg++
		}
		curCount++
		nextDiffers := i == n-1 || finite[i+1].value != pt.value
		if curCount >= chunk && nextDiffers {
			posCounts = append(posCounts, curPos)
			negCounts = append(negCounts, curNeg)
			edges = append(edges, pt.value)
			curPos, curNeg, curCount = 0, 0, 0
		}
	}
	if curCount > 0 {
		posCounts = append(posCounts, curPos)
		negCounts = append(negCounts, curNeg)
		edges = append(edges, finite[n-1].value)
	}

	return prebinResult{
		stats: prebin.NewStats(posCounts, negCounts, missingPos, missingNeg),
		edges: edges,
	}
}
