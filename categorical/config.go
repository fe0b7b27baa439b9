// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package categorical implements supervised WoE/IV binning for a
// discrete-coded predictor: per-category count aggregation, ascending
// event-rate prebinning, the shared DP optimizer, and a hash-table
// transform.
package categorical

import "github.com/binstats/binstats/binerr"

// Config is the constructor-time configuration of a categorical
// binner. MaxBinPct defaults to unconfigured: per the spec's source
// material the max-size constraint is inconsistently present across
// categorical variants, so it is treated as optional and off by
// default here (Open Question i).
type Config struct {
	// MaxBins is the upper bound on the number of ordinary bins K.
	MaxBins int
	// MinBinPct is the minimum fraction of non-missing samples a bin
	// must contain.
	MinBinPct float64
	// MaxBinPct, when non-zero, is the maximum fraction of
	// non-missing samples a bin may contain. Zero (the default) means
	// unconfigured.
	MaxBinPct float64
	// DisableSizePenalty turns off the optional size-fraction penalty
	// term even when MaxBinPct is configured.
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
	return nil
}
