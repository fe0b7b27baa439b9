// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package categorical

import (
	"encoding/binary"

	farm "github.com/dgryski/go-farm"
)

// hashTable is the categorical transformer's "hash lookup (category ->
// WoE)" (§4.7): a vanilla linear-probing open-addressing table keyed
// by farm.Hash64WithSeed of the category code, in the style of the
// teacher repo's kmer->genelist table — minus the mmap/hugepage
// tuning, which has no analogue for a table this small.
// A plain Go map would do the same job; this exists because the
// teacher repo treats a hot-path code->value lookup as worth a
// purpose-built hash structure rather than the builtin map.
type hashTable struct {
	keys []int32
	vals []float64
	used []bool
	mask uint64
}

const emptyKey = int32(-1) // disjoint from real codes: the missing sentinel is stripped before the table is built.

func hashCode(code int32) uint64 {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(code))
	return farm.Hash64WithSeed(b[:], 0)
}

func newHashTable(codes []int32, woes []float64) *hashTable {
	size := 8
	for size < len(codes)*2+1 {
		size *= 2
	}
	t := &hashTable{
		keys: make([]int32, size),
		vals: make([]float64, size),
		used: make([]bool, size),
		mask: uint64(size - 1),
	}
	for i := range t.keys {
		t.keys[i] = emptyKey
	}
	for i, code := range codes {
		t.insert(code, woes[i])
	}
	return t
}

func (t *hashTable) insert(code int32, woe float64) {
	idx := hashCode(code) & t.mask
	for t.used[idx] {
		idx = (idx + 1) & t.mask
	}
	t.keys[idx] = code
	t.vals[idx] = woe
	t.used[idx] = true
}

// lookup returns (woe, true) when code was present at fit time, else
// (0, false).
func (t *hashTable) lookup(code int32) (float64, bool) {
	idx := hashCode(code) & t.mask
	for i := uint64(0); i <= t.mask; i++ {
		if !t.used[idx] {
			return 0, false
		}
		if t.keys[idx] == code {
			return t.vals[idx], true
		}
		idx = (idx + 1) & t.mask
	}
	return 0, false
}
