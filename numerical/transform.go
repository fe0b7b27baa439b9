// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package numerical

import (
	"math"
	"sort"

	"github.com/binstats/binstats/bin"
)

// lookupTable is the read-only structure Transform searches: the
// ascending right edges of every ordinary bin (the last one is +Inf),
// their WoE values in the same order, and the missing-bin WoE.
//
// The search itself is a "binary search for the first edge >= x"
// (sort.Search): a bin's right edge is its
// upper inclusive bound, so the first edge not smaller than the query
// value identifies the (half-open-on-the-right) bin it falls in.
type lookupTable struct {
	rightEdges []float64
	woe        []float64
	missingWoE float64
}

func newLookupTable(bins []bin.Record) lookupTable {
	var edges, values []float64
	var missingWoE float64
	for _, b := range bins {
		if b.IsMissing {
			missingWoE = b.WoE
			continue
		}
		edges = append(edges, b.Range.Right)
		values = append(values, b.WoE)
	}
	return lookupTable{rightEdges: edges, woe: values, missingWoE: missingWoE}
}

// woeFor returns the WoE of the bin containing v, or missingWoE for NaN.
func (t lookupTable) woeFor(v float64) float64 {
	if math.IsNaN(v) {
		return t.missingWoE
	}
	idx := sort.Search(len(t.rightEdges), func(i int) bool { return t.rightEdges[i] >= v })
	if idx >= len(t.woe) {
		// Only reachable if there are no ordinary bins at all (every
		// row was missing at fit time); fall back to the missing WoE.
		return t.missingWoE
	}
	return t.woe[idx]
}

// transform maps every value in x to its bin's WoE.
func (t lookupTable) transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = t.woeFor(v)
	}
	return out
}
