package barcodeindex

import (
	"github.com/kehrlab/bcctools/internal/codec"
	"github.com/kehrlab/bcctools/internal/packedvec"
)

// buildSubstitutionTable is Phase 3: for every ONE_ERROR cell, record which
// barcode position(s) the substitution occurred at, so a query-time
// ONE_ERROR hit can reconstruct the corrected barcode without re-deriving
// every neighbor. Grounded on
// original_source/src/barcode_index.cpp's set_substitution /
// get_substitution, including the "duplicate fill" trick: each cell's last
// written slot is repeated into the next one so a scan can stop at the
// first repeat instead of needing a stored count.
func (idx *Index) buildSubstitutionTable(barcodes []uint64) {
	k := idx.M.Popcount()
	width := packedvec.BitsForValues(uint64(idx.L))
	idx.S = packedvec.New(width, k*uint64(idx.A))
	offsets := make([]uint32, k)

	for _, h := range barcodes {
		for i := 0; i < idx.L; i++ {
			xors := codec.NeighborXORs(i)
			cur := h
			for j := 0; j < 3; j++ {
				cur ^= xors[j]
				idx.trySubstitution(cur, i, offsets)
			}
		}
	}
}

// trySubstitution records position i as a correction for hPrime if hPrime
// currently classifies as ONE_ERROR, duplicate-filling the next slot so a
// query-time scan knows where the list ends.
func (idx *Index) trySubstitution(hPrime uint64, position int, offsets []uint32) {
	if idx.Classify(hPrime) != OneError {
		return
	}
	p := idx.matchBlock(hPrime)
	o := offsets[p]
	idx.S.Set(p*uint64(idx.A)+uint64(o), uint64(position))
	offsets[p] = o + 1
	if o+1 < idx.A {
		idx.S.Set(p*uint64(idx.A)+uint64(o)+1, uint64(position))
	}
}

// matchBlock maps a key classified ONE_ERROR to its 0-based index among all
// ONE_ERROR cells, i.e. rank1 of the condensed M bitmap at the key's
// position within B's condensation.
func (idx *Index) matchBlock(h uint64) uint64 {
	return idx.M.Rank1(idx.B.Rank1(h))
}
