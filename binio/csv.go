// Copyright 2024 The binstats Authors. All rights reserved.
// Use of this source code is governed by the Apache-2.0
// license that can be found in the LICENSE file.

// Package binio loads training data from CSV (local, gzip, or s3://)
// and serializes fitted bin tables, the ambient I/O layer around the
// numerical and categorical binning kernels.
package binio

import (
	"bytes"
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/klauspost/compress/gzip"
	"github.com/minio/highwayhash"
	"github.com/pkg/errors"
)

// Checksum is a content hash of loaded CSV bytes, for sanity-logging
// what was actually read (e.g. across a re-run against a mutated S3
// object). It carries no cryptographic guarantee.
type Checksum [highwayhash.Size]uint8

var checksumKey = make([]byte, highwayhash.Size) // all-zero: content identity only, not a MAC.

func checksum(data []byte) Checksum {
	return highwayhash.Sum(data, checksumKey)
}

// openCSVSource returns a reader over path, transparently handling
// s3:// URIs and .gz suffixes. The caller owns the returned Close.
func openCSVSource(path string) (io.ReadCloser, error) {
	var raw io.ReadCloser
	switch {
	case strings.HasPrefix(path, "s3://"):
		rc, err := openS3(path)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't open %s", path)
		}
		raw = rc
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "couldn't open %s", path)
		}
		raw = f
	}

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(raw)
		if err != nil {
			raw.Close()
			return nil, errors.Wrapf(err, "couldn't open gzip stream %s", path)
		}
		return &gzipReadCloser{gz: gz, underlying: raw}, nil
	}
	return raw, nil
}

type gzipReadCloser struct {
	gz         *gzip.Reader
	underlying io.ReadCloser
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }
func (g *gzipReadCloser) Close() error {
	gzErr := g.gz.Close()
	underErr := g.underlying.Close()
	if gzErr != nil {
		return gzErr
	}
	return underErr
}

func openS3(uri string) (io.ReadCloser, error) {
	trimmed := strings.TrimPrefix(uri, "s3://")
	slash := strings.IndexByte(trimmed, '/')
	if slash < 0 {
		return nil, errors.Errorf("malformed s3 URI %q: missing key", uri)
	}
	bucket, key := trimmed[:slash], trimmed[slash+1:]

	sess, err := session.NewSession()
	if err != nil {
		return nil, errors.Wrap(err, "couldn't create AWS session")
	}
	out, err := s3.New(sess).GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't fetch s3://%s/%s", bucket, key)
	}
	return out.Body, nil
}

// readAllChecksummed reads r fully and returns its bytes plus a
// content checksum.
func readAllChecksummed(r io.Reader) ([]byte, Checksum, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Checksum{}, errors.Wrap(err, "couldn't read CSV data")
	}
	return data, checksum(data), nil
}

// parseRows reads all CSV records from data; header handling is left
// to the caller.
func parseRows(data []byte) ([][]string, error) {
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "couldn't parse CSV")
	}
	return rows, nil
}

// maybeSkipHeader auto-detects a header row: if the first row's
// featureCol fails to parse as a number, it is treated as a header and
// skipped.
func maybeSkipHeader(rows [][]string, featureCol int) [][]string {
	if len(rows) == 0 || featureCol >= len(rows[0]) {
		return rows
	}
	if _, err := strconv.ParseFloat(rows[0][featureCol], 64); err != nil {
		return rows[1:]
	}
	return rows
}

// isNumericalMissing reports whether field is one of the recognized
// missing-value tokens for a numerical column: empty string, "NA", or
// "nan" (case-insensitive).
func isNumericalMissing(field string) bool {
	switch strings.ToLower(field) {
	case "", "na", "nan":
		return true
	default:
		return false
	}
}

// isCategoricalMissing reports whether field is one of the recognized
// missing-value tokens for a categorical column: empty string, "NA",
// "nan", or "null" (case-insensitive).
func isCategoricalMissing(field string) bool {
	switch strings.ToLower(field) {
	case "", "na", "nan", "null":
		return true
	default:
		return false
	}
}

func parseTarget(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrapf(err, "invalid target value %q", s)
	}
	if v != 0 && v != 1 {
		return 0, errors.Errorf("target value %q is not 0 or 1", s)
	}
	return v, nil
}

// LoadNumericalCSV parses featureCol as float64 (an empty cell, "NA",
// or "nan", case-insensitive, maps to missing) and targetCol as a 0/1
// target from r.
func LoadNumericalCSV(r io.Reader, featureCol, targetCol int) (x []float64, y []int, err error) {
	data, _, err := readAllChecksummed(r)
	if err != nil {
		return nil, nil, err
	}
	rows, err := parseRows(data)
	if err != nil {
		return nil, nil, err
	}
	rows = maybeSkipHeader(rows, featureCol)

	x = make([]float64, 0, len(rows))
	y = make([]int, 0, len(rows))
	for i, row := range rows {
		if featureCol >= len(row) || targetCol >= len(row) {
			return nil, nil, errors.Errorf("row %d has too few columns", i)
		}
		target, err := parseTarget(row[targetCol])
		if err != nil {
			return nil, nil, errors.Wrapf(err, "row %d", i)
		}
		field := strings.TrimSpace(row[featureCol])
		var v float64
		if isNumericalMissing(field) {
			v = math.NaN()
		} else {
			v, err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, errors.Wrapf(err, "row %d: invalid feature value %q", i, field)
			}
		}
		x = append(x, v)
		y = append(y, target)
	}
	return x, y, nil
}

// LoadCategoricalCSV parses featureCol as a string category (an empty
// cell, "NA", "nan", or "null", case-insensitive, maps to the missing
// sentinel) and targetCol as a 0/1 target from r, factoring the
// observed strings into int32 codes in first-seen order.
// categories[code] recovers the original string.
func LoadCategoricalCSV(r io.Reader, featureCol, targetCol int) (x []int32, y []int, categories []string, err error) {
	data, _, err := readAllChecksummed(r)
	if err != nil {
		return nil, nil, nil, err
	}
	rows, err := parseRows(data)
	if err != nil {
		return nil, nil, nil, err
	}
	// A categorical feature column can't be header-sniffed by parse
	// failure the way a numerical one can; assume no header unless the
	// target column's first row fails to parse as a 0/1 target.
	if len(rows) > 0 && targetCol < len(rows[0]) {
		if _, err := parseTarget(rows[0][targetCol]); err != nil {
			rows = rows[1:]
		}
	}

	codeOf := make(map[string]int32)
	x = make([]int32, 0, len(rows))
	y = make([]int, 0, len(rows))
	for i, row := range rows {
		if featureCol >= len(row) || targetCol >= len(row) {
			return nil, nil, nil, errors.Errorf("row %d has too few columns", i)
		}
		target, err := parseTarget(row[targetCol])
		if err != nil {
			return nil, nil, nil, errors.Wrapf(err, "row %d", i)
		}
		field := strings.TrimSpace(row[featureCol])
		if isCategoricalMissing(field) {
			x = append(x, -1)
			y = append(y, target)
			continue
		}
		code, ok := codeOf[field]
		if !ok {
			code = int32(len(categories))
			codeOf[field] = code
			categories = append(categories, field)
		}
		x = append(x, code)
		y = append(y, target)
	}
	return x, y, categories, nil
}

// LoadCSVFromPath opens path (local file, s3:// URI, optionally
// .gz-suffixed) and loads it as a numerical feature.
func LoadCSVFromPath(path string, featureCol, targetCol int) (x []float64, y []int, err error) {
	rc, err := openCSVSource(path)
	if err != nil {
		return nil, nil, err
	}
	defer rc.Close()
	return LoadNumericalCSV(rc, featureCol, targetCol)
}

// LoadCategoricalCSVFromPath is LoadCSVFromPath's categorical
// counterpart.
func LoadCategoricalCSVFromPath(path string, featureCol, targetCol int) (x []int32, y []int, categories []string, err error) {
	rc, err := openCSVSource(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer rc.Close()
	return LoadCategoricalCSV(rc, featureCol, targetCol)
}
