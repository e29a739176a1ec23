package query

import (
	"sort"

	"github.com/kehrlab/bcctools/internal/barcodeindex"
	"github.com/kehrlab/bcctools/internal/codec"
)

// Candidate is one barcode a query could be corrected to.
type Candidate struct {
	Barcode []byte
}

// Retrieve classifies an observed barcode against idx and returns its
// corrected candidate list. observed may contain 'N' ambiguity codes;
// quality is the per-base quality string aligned 1:1 with observed and is
// only consulted to order ONE_ERROR candidates (see scoreAndSort) — it is
// ignored for exact and N-ambiguous lookups, matching
// original_source/src/barcode_index.cpp's two retrieve() overloads.
func Retrieve(idx *barcodeindex.Index, observed, quality []byte) (barcodeindex.Status, []Candidate) {
	nPos := findBase(observed, 'N')
	switch len(nPos) {
	case 0:
		return retrieveExact(idx, observed, quality)
	case 1:
		return retrieveSingleN(idx, observed, nPos[0])
	default:
		return barcodeindex.Unrecognized, nil
	}
}

func findBase(observed []byte, target byte) []int {
	var positions []int
	for i, b := range observed {
		if b == target {
			positions = append(positions, i)
		}
	}
	return positions
}

func retrieveExact(idx *barcodeindex.Index, observed, quality []byte) (barcodeindex.Status, []Candidate) {
	h, err := codec.Hash(observed)
	if err != nil {
		// A byte other than A/C/G/T/N: undefined at the codec layer,
		// unrecognizable here.
		return barcodeindex.Unrecognized, nil
	}

	status := idx.Classify(h)
	switch status {
	case barcodeindex.Match:
		return barcodeindex.Match, []Candidate{{Barcode: append([]byte(nil), observed...)}}
	case barcodeindex.OneError:
		corrections, err := idx.Corrections(h)
		if err != nil || len(corrections) == 0 {
			return barcodeindex.OneError, nil
		}
		return barcodeindex.OneError, scoreAndSort(corrections, quality, idx.L)
	default:
		return barcodeindex.Unrecognized, nil
	}
}

// scoreAndSort orders ONE_ERROR candidates by the observed read's quality
// value at the substituted position, ascending — a lower quality score at
// that position is read as weaker evidence the observed base there was
// correct, so it is ranked as the more likely true error first. Mirrors the
// std::sort by `qx[length(qx)-1-i]` in barcode_index.cpp's retrieve().
func scoreAndSort(corrections []barcodeindex.Correction, quality []byte, l int) []Candidate {
	type scored struct {
		barcode []byte
		quality byte
	}
	scoredList := make([]scored, 0, len(corrections))
	for _, c := range corrections {
		qIdx := len(quality) - 1 - c.Position
		var q byte
		if qIdx >= 0 && qIdx < len(quality) {
			q = quality[qIdx]
		}
		scoredList = append(scoredList, scored{barcode: codec.Unhash(c.Key, l), quality: q})
	}
	sort.SliceStable(scoredList, func(i, j int) bool { return scoredList[i].quality < scoredList[j].quality })

	out := make([]Candidate, len(scoredList))
	for i, s := range scoredList {
		out[i] = Candidate{Barcode: s.barcode}
	}
	return out
}

// retrieveSingleN substitutes every canonical base at the single N position
// and keeps whichever substitutions are exact whitelist matches, in A/C/G/T
// order. Status is ONE_ERROR if at least one substitution matched,
// Unrecognized otherwise — there is no MATCH outcome here, since the
// observed barcode itself (with an N in it) can never be an exact whitelist
// hit.
func retrieveSingleN(idx *barcodeindex.Index, observed []byte, pos int) (barcodeindex.Status, []Candidate) {
	trial := append([]byte(nil), observed...)
	status := barcodeindex.Unrecognized
	var candidates []Candidate
	for v := uint64(0); v < 4; v++ {
		trial[pos] = codec.Base(v)
		h, err := codec.Hash(trial)
		if err != nil {
			continue
		}
		if idx.Classify(h) == barcodeindex.Match {
			status = barcodeindex.OneError
			candidates = append(candidates, Candidate{Barcode: append([]byte(nil), trial...)})
		}
	}
	return status, candidates
}
