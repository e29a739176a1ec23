package barcodeindex

import (
	"fmt"

	"github.com/kehrlab/bcctools/internal/codec"
)

// Classify reports h's status against the built index: Unrecognized if no
// whitelist barcode is within Hamming distance 1, Match if h is itself a
// whitelist barcode, or OneError if between one and A whitelist barcodes
// are a single substitution away.
func (idx *Index) Classify(h uint64) Status {
	if !idx.B.Get(h) {
		return Unrecognized
	}
	if idx.M.Get(idx.B.Rank1(h)) {
		return OneError
	}
	return Match
}

// Correction is one reconstructed whitelist barcode a ONE_ERROR key can be
// corrected to, together with the 0-based position (counted from the key's
// least-significant base) the substitution occurred at. Position is what a
// caller needs to weigh a candidate by the observed read's base quality at
// that position (see query.Retrieve).
type Correction struct {
	Key      uint64
	Position int
}

// Corrections returns every whitelist barcode a OneError key can be
// corrected to. Hamming-1 collisions that the build phase couldn't
// disambiguate among more than A candidates were already discarded at
// build time (see setOneError): such a key classifies as Unrecognized, so
// Corrections returns an error for it like for any non-OneError key.
// Grounded on
// original_source/src/barcode_index.cpp's get_substitution/
// get_corrected_barcode.
func (idx *Index) Corrections(h uint64) ([]Correction, error) {
	if idx.Classify(h) != OneError {
		return nil, fmt.Errorf("barcodeindex: Corrections called on non-ONE_ERROR key")
	}
	p := idx.matchBlock(h)
	base := p * uint64(idx.A)

	var positions []int
	var prev uint64 = idx.S.Len() // sentinel that can't equal a real value
	for o := uint64(0); o < uint64(idx.A); o++ {
		val := idx.S.Get(base + o)
		if o > 0 && val == prev {
			break
		}
		positions = append(positions, int(val))
		prev = val
	}

	var corrected []Correction
	for _, pos := range positions {
		xors := codec.NeighborXORs(pos)
		cur := h
		for j := 0; j < 3; j++ {
			cur ^= xors[j]
			if idx.Classify(cur) == Match {
				corrected = append(corrected, Correction{Key: cur, Position: pos})
				break
			}
		}
	}
	return corrected, nil
}
