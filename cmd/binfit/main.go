// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package main

// binfit fits a WoE/IV bin table for one predictor column against a
// binary target column, both read from a CSV file, and writes the
// resulting table out as JSON.
//
// Usage: binfit -feature-col 2 -target-col 0 input.csv

import (
	"flag"
	"fmt"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/binstats/binstats/binio"
	"github.com/binstats/binstats/categorical"
	"github.com/binstats/binstats/numerical"
)

var (
	featureCol   = flag.Int("feature-col", 0, "0-based CSV column holding the predictor")
	targetCol    = flag.Int("target-col", 1, "0-based CSV column holding the 0/1 target")
	categoricalF = flag.Bool("categorical", false, "Treat the predictor as categorical rather than numerical")
	maxBins      = flag.Int("max-bins", 6, "Upper bound on the number of ordinary bins")
	minBinPct    = flag.Float64("min-bin-pct", 0.05, "Minimum fraction of non-missing samples per bin")
	maxBinPct    = flag.Float64("max-bin-pct", 0, "Maximum fraction of non-missing samples per bin; 0 disables the constraint")
	initialBins  = flag.Int("initial-bins", 0, "Numerical-only: fixed prebin count; 0 derives it from sqrt(N)")
	out          = flag.String("out", "", "Output path for the JSON bin table; defaults to stdout")
)

func binfitUsage() {
	fmt.Printf("Usage: %s [OPTIONS] input.csv\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = binfitUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("exactly one positional argument (input.csv) required")
	}
	path := flag.Arg(0)
	ctx := vcontext.Background()

	var table binio.Table
	if *categoricalF {
		x, y, categories, err := binio.LoadCategoricalCSVFromPath(path, *featureCol, *targetCol)
		if err != nil {
			log.Fatalf("%v", err)
		}
		b, err := categorical.NewBinner(categorical.Config{
			MaxBins:   *maxBins,
			MinBinPct: *minBinPct,
			MaxBinPct: *maxBinPct,
		})
		if err != nil {
			log.Fatalf("%v", err)
		}
		fitted, err := b.Fit(ctx, x, y)
		if err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("fitted %d categories into %d bins, total IV %.4f", len(categories), len(fitted.Bins()), fitted.TotalIV())
		table = binio.FromBins("categorical", *maxBins, *minBinPct, *maxBinPct, fitted.Bins())
	} else {
		x, y, err := binio.LoadCSVFromPath(path, *featureCol, *targetCol)
		if err != nil {
			log.Fatalf("%v", err)
		}
		b, err := numerical.NewBinner(numerical.Config{
			MaxBins:          *maxBins,
			MinBinPct:        *minBinPct,
			MaxBinPct:        *maxBinPct,
			InitialBinsCount: *initialBins,
		})
		if err != nil {
			log.Fatalf("%v", err)
		}
		fitted, err := b.Fit(ctx, x, y)
		if err != nil {
			log.Fatalf("%v", err)
		}
		log.Printf("fitted %d rows into %d bins, total IV %.4f", len(x), len(fitted.Bins()), fitted.TotalIV())
		table = binio.FromBins("numerical", *maxBins, *minBinPct, *maxBinPct, fitted.Bins())
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer f.Close()
		w = f
	}
	if err := binio.Export(w, table); err != nil {
		log.Fatalf("%v", err)
	}
}
