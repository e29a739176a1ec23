package barcodeindex

import (
	"bufio"
	"fmt"
	"math/bits"

	"github.com/spf13/afero"

	"github.com/kehrlab/bcctools/internal/bitvector"
	"github.com/kehrlab/bcctools/internal/codec"
	"github.com/kehrlab/bcctools/internal/packedvec"
)

// maxAddressBits bounds 2*L: beyond this the barcode bitmap would need more
// memory than this implementation is willing to allocate in one process.
// L=17 (2*L=34, a 2 GiB bitmap) is the largest length this package builds;
// beyond that a streaming, disk-backed build would be needed and whitelists
// of barcodes that long don't occur in practice.
const maxAddressBits = 34

// Status is the classification of an observed barcode key against the
// index: Unrecognized (no whitelist barcode within Hamming distance 1),
// Match (an exact whitelist hit) or OneError (between one and A whitelist
// barcodes within Hamming distance 1).
type Status int

const (
	Unrecognized Status = iota
	Match
	OneError
)

func (s Status) String() string {
	switch s {
	case Match:
		return "MATCH"
	case OneError:
		return "ONE_ERROR"
	default:
		return "UNRECOGNIZED"
	}
}

// Index is the succinct barcode index: the barcode bitmap B, the condensed
// match bitmap M and the packed substitution table S, together with the
// parameters (L, A) the build ran with.
type Index struct {
	L     int
	A     uint32 // alternatives cap, rounded up to a power of two
	aBits uint   // log2(A)

	B *bitvector.Vector
	M *bitvector.Vector // condensed to popcount(B) after Phase 2
	S *packedvec.Vector // K*A elements, width = packedvec.BitsForValues(L)
}

// Build constructs an Index from a whitelist file: one barcode per line, all
// of the same length, over {A,C,G,T}. alternatives is the requested cap on
// how many distinct whitelist barcodes may share a one-error neighbor before
// that neighbor is discarded as ambiguous; it is rounded up to a power of
// two (see roundAlternatives).
func Build(fs afero.Fs, whitelistPath string, alternatives int) (*Index, error) {
	barcodes, l, err := readWhitelist(fs, whitelistPath)
	if err != nil {
		return nil, err
	}

	a, aBits, err := roundAlternatives(alternatives)
	if err != nil {
		return nil, err
	}
	if 2*l > maxAddressBits {
		return nil, fmt.Errorf("%w: L=%d", ErrAddressSpaceTooLarge, l)
	}

	idx := &Index{L: l, A: a, aBits: aBits}
	n := uint64(1) << uint(2*l)
	idx.B = bitvector.New(n)
	idx.M = bitvector.New(n) // uncondensed for now; Phase 2 condenses it
	helper := packedvec.New(aBits, n)

	idx.buildBarcodeAndMatch(barcodes, helper)
	idx.condenseMatch()
	idx.B.EnsureRank()
	idx.M.EnsureRank()
	idx.buildSubstitutionTable(barcodes)

	return idx, nil
}

func readWhitelist(fs afero.Fs, path string) ([]uint64, int, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("barcodeindex: opening whitelist: %w", err)
	}
	defer f.Close()

	var keys []uint64
	l := -1
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		if l == -1 {
			l = len(line)
		} else if len(line) != l {
			return nil, 0, fmt.Errorf("%w: expected length %d, got %d", ErrBarcodeLengthMismatch, l, len(line))
		}
		key, err := codec.Hash([]byte(line))
		if err != nil {
			return nil, 0, fmt.Errorf("barcodeindex: whitelist line %q: %w", line, err)
		}
		keys = append(keys, key)
	}
	if err := sc.Err(); err != nil {
		return nil, 0, fmt.Errorf("barcodeindex: reading whitelist: %w", err)
	}
	if len(keys) == 0 {
		return nil, 0, ErrWhitelistEmpty
	}
	return keys, l, nil
}

// roundAlternatives validates alternatives is in [1,48] and rounds it up to
// the next power of two, returning that value together with its log2. The
// power-of-two shape lets buildSubstitutionTable address each ONE_ERROR
// cell's alternative slots with a plain multiply rather than a division.
func roundAlternatives(alternatives int) (uint32, uint, error) {
	if alternatives < 1 || alternatives > 48 {
		return 0, 0, fmt.Errorf("%w: alternatives=%d", ErrParameterOutOfRange, alternatives)
	}
	a := uint32(1)
	for a < uint32(alternatives) {
		a <<= 1
	}
	aBits := uint(bits.Len32(a - 1))
	if a == 1 {
		aBits = 1
	}
	return a, aBits, nil
}

// buildBarcodeAndMatch is Phase 1: mark every whitelist barcode's own key as
// MATCH, then walk each of its Hamming-1 neighbors and fold it into the
// helper-counted ONE_ERROR/INVALID state machine. Grounded on
// original_source/src/barcode_index.cpp's add_similar_barcodes and
// set_one_error.
func (idx *Index) buildBarcodeAndMatch(barcodes []uint64, helper *packedvec.Vector) {
	for _, h := range barcodes {
		idx.setMatch(h)
	}
	for _, h := range barcodes {
		for i := 0; i < idx.L; i++ {
			xors := codec.NeighborXORs(i)
			cur := h
			for j := 0; j < 3; j++ {
				cur ^= xors[j]
				idx.setOneError(cur, helper)
			}
		}
	}
}

// setMatch force-writes the MATCH state, overriding any ONE_ERROR or
// INVALID marking a neighbor walk may have left behind: an actual whitelist
// barcode always wins, regardless of processing order.
func (idx *Index) setMatch(h uint64) {
	idx.B.Set(h, true)
	idx.M.Set(h, false)
}

// setOneError implements the build-time transition table: promote an
// untouched cell to ONE_ERROR on its first collision, bump its helper count
// on each repeat collision, or demote it back to Unrecognized's bit pattern
// (B=0,M=0) with a sticky helper marker (H=1) once more than A whitelist
// barcodes have collided on it. A demoted cell's H stays 1 forever, which
// is what blocks the "promote" branch from re-firing on it. Grounded on
// original_source/src/barcode_index.cpp's set_one_error.
func (idx *Index) setOneError(h uint64, helper *packedvec.Vector) {
	switch {
	case idx.B.Get(h):
		// MATCH or ONE_ERROR with B=1; see below for ONE_ERROR handling.
		if !idx.M.Get(h) {
			return // MATCH: no change.
		}
		count := helper.Get(h)
		if count != uint64(idx.A-1) {
			helper.Set(h, count+1)
			return
		}
		// Demote to the Unrecognized bit pattern with a sticky marker.
		idx.B.Set(h, false)
		idx.M.Set(h, false)
		helper.Set(h, 1)
	default:
		// B=0: either never touched (H=0) or demoted (H=1, sticky).
		if helper.Get(h) == 1 {
			return
		}
		idx.B.Set(h, true)
		idx.M.Set(h, true)
		helper.Set(h, 0)
	}
}
