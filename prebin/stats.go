// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package prebin provides the cumulative-count data structure the DP
// optimizer queries, and the capability interface that lets the
// optimizer run identically over numerical and categorical prebins.
//
// Numerical and categorical prebinning differ in how they produce an
// ordered sequence of (pos, neg) counts, but once that sequence
// exists, range-sum and range-IV queries over it are the same
// operation. Source is that shared shape; numerical and categorical
// each build one by different means.
package prebin

import "github.com/binstats/binstats/woe"

// Source is the capability set the DP optimizer (package dp) needs
// from a prebinned sequence, independent of predictor modality.
type Source interface {
	// Len returns the number of prebins, n.
	Len() int
	// GetCounts returns (pos, neg) summed over the inclusive range
	// [i, j]. The caller must ensure 0 <= i <= j < Len(); an
	// out-of-range index is a programmer error.
	GetCounts(i, j int) (pos, neg float64)
	// IVRange returns the IV contribution of merging prebins [i, j]
	// into one bin, scored against the non-missing grand totals.
	IVRange(i, j int) float64
	// WoEOf returns the WoE a candidate bin with the given (pos, neg)
	// counts would carry, scored against the non-missing grand
	// totals. Used by the DP optimizer to test monotonicity.
	WoEOf(pos, neg float64) float64
}

// Stats is the concrete cumulative-sum structure shared by the
// numerical and categorical prebinners: given per-prebin (pos, neg)
// counts it answers range queries in O(1) via prefix-sum differences.
type Stats struct {
	cumPos, cumNeg     []float64
	totalPos, totalNeg float64
	MissingPos         float64
	MissingNeg         float64
}

// NewStats builds the cumulative-sum prefix arrays from per-prebin
// positive/negative counts. missingPos/missingNeg are carried along
// for bin reconstruction but play no part in range queries, which are
// always scored against the non-missing totals per §4.1.
func NewStats(pos, neg []float64, missingPos, missingNeg float64) *Stats {
	cumPos := make([]float64, len(pos))
	cumNeg := make([]float64, len(neg))
	var p, n float64
	for i := range pos {
		p += pos[i]
		n += neg[i]
		cumPos[i] = p
		cumNeg[i] = n
	}
	return &Stats{
		cumPos:     cumPos,
		cumNeg:     cumNeg,
		totalPos:   p,
		totalNeg:   n,
		MissingPos: missingPos,
		MissingNeg: missingNeg,
	}
}

// Len returns the number of prebins.
func (s *Stats) Len() int { return len(s.cumPos) }

// TotalPos returns the sum of positives over non-missing prebins.
func (s *Stats) TotalPos() float64 { return s.totalPos }

// TotalNeg returns the sum of negatives over non-missing prebins.
func (s *Stats) TotalNeg() float64 { return s.totalNeg }

// GetCounts returns (pos, neg) over the inclusive range [i, j].
// Index validity is the caller's responsibility: this is a hot path
// queried O(Kmax*n^2) times by the DP optimizer and does not pay for
// bounds checks beyond what the slice indexing below already does.
func (s *Stats) GetCounts(i, j int) (pos, neg float64) {
	if i == 0 {
		return s.cumPos[j], s.cumNeg[j]
	}
	return s.cumPos[j] - s.cumPos[i-1], s.cumNeg[j] - s.cumNeg[i-1]
}

// IVRange returns the IV of merging prebins [i, j] into one bin,
// against the non-missing grand totals. An empty range (both counts
// zero) contributes zero, matching §4.1's "IV over an empty bin is
// defined as 0" rule, which DP relies on to skip degenerate cells.
func (s *Stats) IVRange(i, j int) float64 {
	pos, neg := s.GetCounts(i, j)
	return woe.IVOfRange(pos, neg, s.totalPos, s.totalNeg)
}

// WoEOf returns the WoE a bin with the given counts would carry,
// against the non-missing grand totals.
func (s *Stats) WoEOf(pos, neg float64) float64 {
	return woe.Of(pos, neg, s.totalPos, s.totalNeg).WoE
}

var _ Source = (*Stats)(nil)
