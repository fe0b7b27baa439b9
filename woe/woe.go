// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package woe computes Weight-of-Evidence and Information Value, the
// two scalar metrics every bin in this module is scored by.
package woe

import "math"

// Value holds the WoE and IV of a single bin, scored against the
// grand totals of positives and negatives it was computed from.
type Value struct {
	WoE float64
	IV  float64
}

// Of returns the WoE/IV of a bin with pos positives and neg negatives,
// scored against grand totals totalPos/totalNeg.
//
// Zero cells are Laplace-smoothed with a 0.5 pseudo-count rather than
// producing -Inf/NaN; this smoothing must be applied identically by
// every caller, fit-time and transform-time alike, or WoE values won't
// agree between the two paths.
func Of(pos, neg, totalPos, totalNeg float64) Value {
	py := 0.5 / totalPos
	if pos > 0 {
		py = pos / totalPos
	}
	pn := 0.5 / totalNeg
	if neg > 0 {
		pn = neg / totalNeg
	}
	w := math.Log(py / pn)
	return Value{WoE: w, IV: (py - pn) * w}
}

// IVOfRange returns only the IV component of Of, treating an empty bin
// (pos == 0 and neg == 0) as contributing zero IV rather than invoking
// the smoothing formula on a cell that was never observed.
func IVOfRange(pos, neg, totalPos, totalNeg float64) float64 {
	if pos == 0 && neg == 0 {
		return 0
	}
	return Of(pos, neg, totalPos, totalNeg).IV
}
