package barcodeindex

import "github.com/kehrlab/bcctools/internal/bitvector"

// condenseMatch is Phase 2: rewrite M from its uncondensed length-4^L form
// (one slot per address, most of them never a MATCH) down to a
// popcount(B)-length bitmap indexed by rank1(B), so the query-time bit that
// distinguishes MATCH from ONE_ERROR costs one rank lookup instead of a
// second full-width bitmap. Grounded on original_source/src/barcode_index.h
// describing M as indexed "by rank over B" rather than by raw address.
func (idx *Index) condenseMatch() {
	idx.B.EnsureRank()
	k := idx.B.Popcount()

	condensed := bitvector.New(k)
	n := idx.B.Len()
	for h := uint64(0); h < n; h++ {
		if !idx.B.Get(h) {
			continue
		}
		if idx.M.Get(h) {
			condensed.Set(idx.B.Rank1(h), true)
		}
	}
	idx.M = condensed
}
