// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package categorical

import (
	"context"
	"sync/atomic"

	"github.com/binstats/binstats/bin"
	"github.com/binstats/binstats/binerr"
	"github.com/binstats/binstats/dp"
	"github.com/binstats/binstats/fingerprint"
)

// UnfittedBinner holds validated, immutable configuration and exposes
// only Fit/FitTransform (§9's typestate pattern).
type UnfittedBinner struct {
	cfg Config
}

// NewBinner validates cfg and returns an UnfittedBinner, or an
// InvalidConfig error.
func NewBinner(cfg Config) (*UnfittedBinner, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &UnfittedBinner{cfg: cfg}, nil
}

// FittedBinner is the immutable result of a successful Fit. Safe for
// concurrent use by multiple goroutines.
type FittedBinner struct {
	cfg     Config
	bins    []bin.Record
	totalIV float64
	lookup  lookupTable
}

func validateXY(x []int32, y []int) error {
	if len(x) != len(y) {
		return binerr.InvalidInput("x and y must have equal length")
	}
	if len(x) == 0 {
		return binerr.InvalidInput("x and y must be non-empty")
	}
	for _, v := range y {
		if v != 0 && v != 1 {
			return binerr.InvalidInput("y must contain only 0 or 1")
		}
	}
	for _, v := range x {
		if v < missingCode {
			return binerr.InvalidInput("x codes must be >= -1")
		}
	}
	return nil
}

// Fit runs per-category aggregation, the DP optimizer (no trend
// constraint: categorical binning uses dp.TrendNone), and
// reconstruction, returning the frozen FittedBinner.
func (b *UnfittedBinner) Fit(ctx context.Context, x []int32, y []int) (*FittedBinner, error) {
	if err := validateXY(x, y); err != nil {
		return nil, err
	}

	pre := prebinCategorical(ctx, x, y)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	total := pre.stats.TotalPos() + pre.stats.TotalNeg()

	minCount := float64(int(total * b.cfg.MinBinPct))
	var maxCount float64
	var penalty *dp.SizePenalty
	if b.cfg.MaxBinPct > 0 {
		maxCount = float64(int(total * b.cfg.MaxBinPct))
		if !b.cfg.DisableSizePenalty {
			penalty = &dp.SizePenalty{MinBinPct: b.cfg.MinBinPct, MaxBinPct: b.cfg.MaxBinPct}
		}
	}

	result := dp.Optimize(pre.stats, dp.Constraints{
		MaxBins:  b.cfg.MaxBins,
		MinCount: minCount,
		MaxCount: maxCount,
		Trend:    dp.TrendNone,
		Penalty:  penalty,
		Total:    total,
	})

	bins := reconstruct(pre.stats, pre.keys, result.Splits)
	return &FittedBinner{
		cfg:     b.cfg,
		bins:    bins,
		totalIV: bin.TotalIV(bins),
		lookup:  newLookupTable(bins),
	}, nil
}

// FitTransform fits on (x, y) and returns Transform(x) against the
// resulting table, plus the table itself.
func (b *UnfittedBinner) FitTransform(ctx context.Context, x []int32, y []int) ([]float64, *FittedBinner, error) {
	fitted, err := b.Fit(ctx, x, y)
	if err != nil {
		return nil, nil, err
	}
	return fitted.Transform(x), fitted, nil
}

// Transform maps every code in x to its bin's WoE.
func (f *FittedBinner) Transform(x []int32) []float64 { return f.lookup.transform(x) }

// Bins returns the frozen, ordered bin table.
func (f *FittedBinner) Bins() []bin.Record { return f.bins }

// TotalIV returns the unpenalized sum of per-bin IV.
func (f *FittedBinner) TotalIV() float64 { return f.totalIV }

// Fingerprint returns a stable digest of this table's configuration
// and contents, for use as a downstream cache key.
func (f *FittedBinner) Fingerprint() uint64 {
	return fingerprint.Compute(fingerprint.Config{
		Modality:  'c',
		MaxBins:   f.cfg.MaxBins,
		MinBinPct: f.cfg.MinBinPct,
		MaxBinPct: f.cfg.MaxBinPct,
	}, f.bins)
}

// Binner is a mutable-in-place convenience wrapper mirroring
// numerical.Binner: a single long-lived instance whose table is
// atomically replaced on refit.
type Binner struct {
	unfitted *UnfittedBinner
	fitted   atomic.Pointer[FittedBinner]
}

// NewMutableBinner validates cfg and returns an unfitted Binner.
func NewMutableBinner(cfg Config) (*Binner, error) {
	u, err := NewBinner(cfg)
	if err != nil {
		return nil, err
	}
	return &Binner{unfitted: u}, nil
}

// Fit fits a new table and atomically installs it; a failed Fit
// leaves any previously-installed table untouched.
func (m *Binner) Fit(ctx context.Context, x []int32, y []int) error {
	fitted, err := m.unfitted.Fit(ctx, x, y)
	if err != nil {
		return err
	}
	m.fitted.Store(fitted)
	return nil
}

// Transform requires a prior successful Fit; otherwise it returns
// ErrNotFitted.
func (m *Binner) Transform(x []int32) ([]float64, error) {
	f := m.fitted.Load()
	if f == nil {
		return nil, binerr.ErrNotFitted
	}
	return f.Transform(x), nil
}

// Bins returns the current fitted table, or ErrNotFitted.
func (m *Binner) Bins() ([]bin.Record, error) {
	f := m.fitted.Load()
	if f == nil {
		return nil, binerr.ErrNotFitted
	}
	return f.Bins(), nil
}
