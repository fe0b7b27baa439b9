package fingerprint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/binstats/binstats/bin"
	"github.com/binstats/binstats/fingerprint"
)

func sampleBins() []bin.Record {
	return []bin.Record{
		{BinID: 0, Range: &bin.Range{Left: -1, Right: 5}, Pos: 10, Neg: 5},
		{BinID: 1, Range: &bin.Range{Left: 5, Right: 1}, Pos: 3, Neg: 7},
	}
}

func TestComputeDeterministic(t *testing.T) {
	cfg := fingerprint.Config{Modality: 'n', MaxBins: 5, MinBinPct: 0.05}
	a := fingerprint.Compute(cfg, sampleBins())
	b := fingerprint.Compute(cfg, sampleBins())
	assert.Equal(t, a, b)
}

func TestComputeSensitiveToCounts(t *testing.T) {
	cfg := fingerprint.Config{Modality: 'n', MaxBins: 5, MinBinPct: 0.05}
	base := fingerprint.Compute(cfg, sampleBins())

	changed := sampleBins()
	changed[0].Pos = 11
	other := fingerprint.Compute(cfg, changed)

	assert.NotEqual(t, base, other)
}

func TestComputeSensitiveToModality(t *testing.T) {
	binsA := sampleBins()
	a := fingerprint.Compute(fingerprint.Config{Modality: 'n'}, binsA)
	b := fingerprint.Compute(fingerprint.Config{Modality: 'c'}, binsA)
	assert.NotEqual(t, a, b)
}
