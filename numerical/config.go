// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package numerical implements supervised WoE/IV binning for a
// real-valued predictor: equal-frequency prebinning with tie
// preservation, a monotonic-WoE dynamic-programming optimizer, and a
// binary-search transform.
package numerical

import "github.com/binstats/binstats/binerr"

// Config is the constructor-time configuration of a numerical binner.
type Config struct {
	// MaxBins is the upper bound on the number of ordinary bins K.
	MaxBins int
	// MinBinPct is the minimum fraction of non-missing samples a bin
	// must contain.
	MinBinPct float64
	// MaxBinPct, when non-zero, is the maximum fraction of
	// non-missing samples a bin may contain. Zero means unconfigured.
	MaxBinPct float64
	// InitialBinsCount, when non-zero, fixes the prebin count M
	// instead of deriving it from sqrt(N).
	InitialBinsCount int
	// DisableSizePenalty turns off the optional size-fraction penalty
	// term (§4.5.1) even when MaxBinPct is configured.
	DisableSizePenalty bool
}

func (c Config) validate() error {
	if c.MaxBins < 1 {
		return binerr.InvalidConfig("max_bins must be >= 1")
	}
	if c.MinBinPct < 0 || c.MinBinPct > 1 {
		return binerr.InvalidConfig("min_bin_pct must be in [0, 1]")
	}
	if c.MaxBinPct != 0 {
		if c.MaxBinPct < 0 || c.MaxBinPct > 1 {
			return binerr.InvalidConfig("max_bin_pct must be in [0, 1]")
		}
		if c.MinBinPct >= c.MaxBinPct {
			return binerr.InvalidConfig("min_bin_pct must be < max_bin_pct")
		}
	}
	if c.InitialBinsCount < 0 {
		return binerr.InvalidConfig("initial_bins_count must be >= 0")
	}
	return nil
}
