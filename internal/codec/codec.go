// Package codec implements the 2-bit DNA packing used to address the
// barcode index's 4^L key space.
//
// A barcode is packed most-significant-base-first: ord(A,C,G,T) = 0,1,2,3
// and Hash(seq) = sum(ord(seq[i]) * 4^(L-1-i)). Unhash is its exact
// inverse. Both are total bijections between {A,C,G,T}^L and [0, 4^L).
package codec

import (
	"errors"
	"fmt"
)

// ErrInvalidBase is returned by Hash when the input contains a byte other
// than 'A', 'C', 'G' or 'T'. Ambiguity codes (N) are handled one layer up,
// in package query; Hash itself is total only over the four canonical
// bases.
var ErrInvalidBase = errors.New("codec: invalid base")

// ord maps the four canonical bases to their 2-bit value. -1 marks
// anything else, including 'N'.
var ord = [256]int8{}

func init() {
	for i := range ord {
		ord[i] = -1
	}
	ord['A'] = 0
	ord['C'] = 1
	ord['G'] = 2
	ord['T'] = 3
}

// base is the inverse of ord, indexed by 2-bit value.
var base = [4]byte{'A', 'C', 'G', 'T'}

// Base returns the canonical letter for a 2-bit value in [0,4).
func Base(v uint64) byte {
	return base[v&3]
}

// Ord returns the 2-bit value of a canonical base byte, or -1 if b is not
// one of A/C/G/T.
func Ord(b byte) int {
	return int(ord[b])
}

// Hash packs an L-mer over {A,C,G,T} into its 2-bit key, most-significant
// base first. Returns ErrInvalidBase (wrapping the offending byte) if any
// character is not A, C, G or T.
func Hash(seq []byte) (uint64, error) {
	var h uint64
	for i, b := range seq {
		v := ord[b]
		if v < 0 {
			return 0, fmt.Errorf("%w: byte %q at position %d", ErrInvalidBase, b, i)
		}
		h = (h << 2) | uint64(v)
	}
	return h, nil
}

// Unhash is the inverse of Hash: it reconstructs the L-mer encoded by key,
// given the barcode length L. Behavior is undefined (silently wraps) if
// key >= 4^L.
func Unhash(key uint64, length int) []byte {
	out := make([]byte, length)
	for i := length; i > 0; i-- {
		out[i-1] = base[key&3]
		key >>= 2
	}
	return out
}

// NeighborXORs returns the four XOR masks that, applied in sequence to a
// key, walk it through its three non-identity substitutions at 0-based
// position i (counted from the least-significant base, i.e. from the
// right) and back to the original value: walking 01, 10, 01, 10 at shift 2i
// visits all three alternate bases and returns to the start.
func NeighborXORs(position int) [4]uint64 {
	shift := uint(2 * position)
	return [4]uint64{1 << shift, 2 << shift, 1 << shift, 2 << shift}
}
