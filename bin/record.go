// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package bin defines the frozen bin record shared by the numerical
// and categorical binners: the output of fit, and the read-only
// lookup table transform consumes.
package bin

import "math"

// Range is a half-open (Left, Right] interval. Left is -Inf on the
// leftmost ordinary bin and Right is +Inf on the rightmost; the
// missing bin, when present, carries (NaN, NaN).
type Range struct {
	Left, Right float64
}

// Record is one bin of a fitted table. Exactly one of Range
// (numerical) or Categories (categorical) is populated for ordinary
// bins; the missing bin populates whichever its modality uses.
type Record struct {
	BinID      int
	Range      *Range
	Categories []string
	Pos, Neg   float64
	WoE, IV    float64
	IsMissing  bool
}

// Count returns Pos+Neg.
func (r Record) Count() float64 { return r.Pos + r.Neg }

// BinPct returns this bin's share of totalCount, 0 when totalCount is 0.
func (r Record) BinPct(totalCount float64) float64 {
	if totalCount == 0 {
		return 0
	}
	return r.Count() / totalCount
}

// EventRate returns Pos/Count, or 0 for an empty bin.
func (r Record) EventRate() float64 {
	c := r.Count()
	if c == 0 {
		return 0
	}
	return r.Pos / c
}

// TotalIV sums IV across bins.
func TotalIV(bins []Record) float64 {
	var total float64
	for _, b := range bins {
		total += b.IV
	}
	return total
}

// NewMissingNumRange returns the sentinel (NaN, NaN) range used by the
// numerical missing bin.
func NewMissingNumRange() *Range {
	return &Range{Left: math.NaN(), Right: math.NaN()}
}
