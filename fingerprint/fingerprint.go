// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package fingerprint computes a stable digest of a fitted bin table,
// for use as a cache key by downstream scorecard/logistic-model
// callers that want to memoize work keyed on "this exact binning".
//
// The digest is built the way the teacher repo's PAM record checksum
// is: serialize the fields that matter into a flat byte buffer in a fixed
// order, then hash the buffer with a single non-cryptographic hash.
package fingerprint

import (
	"encoding/binary"
	"math"

	"github.com/blainsmith/seahash"

	"github.com/binstats/binstats/bin"
)

// Config is the subset of a binner's configuration that participates
// in the fingerprint; it's passed in rather than imported so this
// package has no dependency on the numerical/categorical packages.
type Config struct {
	Modality  byte // 'n' or 'c'
	MaxBins   int
	MinBinPct float64
	MaxBinPct float64
}

// Compute returns a stable digest of cfg and the ordered bin table.
// It is deterministic across processes and does not depend on map or
// goroutine iteration order: it walks the already-ordered bin slice
// produced by fit.
func Compute(cfg Config, bins []bin.Record) uint64 {
	buf := make([]byte, 0, 64+32*len(bins))
	buf = append(buf, cfg.Modality)
	buf = appendInt(buf, cfg.MaxBins)
	buf = appendFloat(buf, cfg.MinBinPct)
	buf = appendFloat(buf, cfg.MaxBinPct)
	for _, b := range bins {
		buf = appendInt(buf, b.BinID)
		if b.Range != nil {
			buf = append(buf, 'r')
			buf = appendFloat(buf, b.Range.Left)
			buf = appendFloat(buf, b.Range.Right)
		}
		for _, c := range b.Categories {
			buf = append(buf, 'c')
			buf = append(buf, c...)
			buf = append(buf, 0)
		}
		buf = appendFloat(buf, b.Pos)
		buf = appendFloat(buf, b.Neg)
		if b.IsMissing {
			buf = append(buf, 'm')
		}
	}
	return seahash.Sum64(buf)
}

func appendInt(buf []byte, v int) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	return append(buf, tmp[:]...)
}

func appendFloat(buf []byte, v float64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], math.Float64bits(v))
	return append(buf, tmp[:]...)
}
