// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package categorical

import (
	"strconv"

	"github.com/binstats/binstats/bin"
)

// lookupTable is the read-only structure Transform searches: a hash
// table from category code to WoE, plus the missing/unknown WoE
// fallback (§4.7: "if v is the missing sentinel or unknown code, emit
// missing_woe, or 0 if no missing bin was produced").
type lookupTable struct {
	table      *hashTable
	missingWoE float64
}

func newLookupTable(bins []bin.Record) lookupTable {
	var codes []int32
	var woes []float64
	var missingWoE float64
	for _, b := range bins {
		if b.IsMissing {
			missingWoE = b.WoE
			continue
		}
		for _, cat := range b.Categories {
			code, err := strconv.ParseInt(cat, 10, 32)
			if err != nil {
				continue
			}
			codes = append(codes, int32(code))
			woes = append(woes, b.WoE)
		}
	}
	return lookupTable{table: newHashTable(codes, woes), missingWoE: missingWoE}
}

// woeFor returns the WoE of the bin containing v, or missingWoE for
// the missing sentinel or an unknown code.
func (t lookupTable) woeFor(v int32) float64 {
	if v == missingCode {
		return t.missingWoE
	}
	if w, ok := t.table.lookup(v); ok {
		return w
	}
	return t.missingWoE
}

// transform maps every code in x to its bin's WoE.
func (t lookupTable) transform(x []int32) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = t.woeFor(v)
	}
	return out
}
