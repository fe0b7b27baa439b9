// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

package binio

import (
	"encoding/json"
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"

	"github.com/binstats/binstats/bin"
)

// Table is the serializable form of a fitted bin table: enough to
// reconstruct a transformer without re-fitting.
type Table struct {
	Modality  string      `json:"modality"` // "numerical" or "categorical"
	MaxBins   int         `json:"max_bins"`
	MinBinPct float64     `json:"min_bin_pct"`
	MaxBinPct float64     `json:"max_bin_pct"`
	Bins      []bin.Record `json:"bins"`
}

// Export writes table as JSON to w.
func Export(w io.Writer, table Table) error {
	if err := json.NewEncoder(w).Encode(table); err != nil {
		return errors.Wrap(err, "couldn't encode bin table")
	}
	return nil
}

// Import reads a Table previously written by Export.
func Import(r io.Reader) (Table, error) {
	var table Table
	if err := json.NewDecoder(r).Decode(&table); err != nil {
		return Table{}, errors.Wrap(err, "couldn't decode bin table")
	}
	return table, nil
}

// ExportGzip writes table as gzip-compressed JSON to w.
func ExportGzip(w io.Writer, table Table) error {
	gz := gzip.NewWriter(w)
	if err := Export(gz, table); err != nil {
		gz.Close()
		return err
	}
	if err := gz.Close(); err != nil {
		return errors.Wrap(err, "couldn't flush gzip stream")
	}
	return nil
}

// ImportGzip reads a Table previously written by ExportGzip.
func ImportGzip(r io.Reader) (Table, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return Table{}, errors.Wrap(err, "couldn't open gzip stream")
	}
	defer gz.Close()
	return Import(gz)
}

// ExportSnappy writes table as snappy-framed JSON to w, for callers
// that favor decode speed over the better ratio gzip gets on the
// repetitive bin-record shape.
func ExportSnappy(w io.Writer, table Table) error {
	sw := snappy.NewBufferedWriter(w)
	if err := Export(sw, table); err != nil {
		sw.Close()
		return err
	}
	if err := sw.Close(); err != nil {
		return errors.Wrap(err, "couldn't flush snappy stream")
	}
	return nil
}

// ImportSnappy reads a Table previously written by ExportSnappy.
func ImportSnappy(r io.Reader) (Table, error) {
	return Import(snappy.NewReader(r))
}

// FromBins builds an exportable Table from a fitted bin slice.
func FromBins(modality string, maxBins int, minBinPct, maxBinPct float64, bins []bin.Record) Table {
	return Table{
		Modality:  modality,
		MaxBins:   maxBins,
		MinBinPct: minBinPct,
		MaxBinPct: maxBinPct,
		Bins:      bins,
	}
}
