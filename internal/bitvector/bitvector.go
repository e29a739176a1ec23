// Package bitvector implements a dense bit array of arbitrary length plus
// an O(1) rank1 structure. The barcode index's B and M bitmaps are both
// bitvector.Vectors, one of length 4^L and one condensed to popcount(B).
//
// The bit-level get/set primitives are grounded on cznic-exp/dbm's uBits
// type (dbm/bits.go), generalized from a paged on-disk byte array to an
// in-memory []uint64 word slice. The rank index itself mirrors the
// interleaved-block design sdsl::rank_support_v uses in the upstream C++
// (original_source/src/barcode_index.h): a two-level structure would be
// overkill for the index's actual access pattern (always rank a key right
// after testing its bit), so a single level of per-block popcount
// prefixes is used. Every Set invalidates it and EnsureRank rebuilds it
// from scratch, which is also required after ReadFrom, since rank
// structures are never persisted to disk.
package bitvector

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"

	"github.com/cznic/mathutil"
)

// blockBits is the span of one rank-index bucket, in bits. Chosen as a
// small power of two so a bucket's popcount is a handful of word-level
// OnesCount64 calls away from any bit within it.
const blockBits = 512
const wordsPerBlock = blockBits / 64

// Vector is a dense bit array with O(1) rank1 support.
type Vector struct {
	words  []uint64
	length uint64 // number of addressable bits

	// blockSums[i] holds rank1 of the first i*blockBits bits, i.e. the
	// number of set bits strictly before block i begins. Built lazily by
	// EnsureRank and invalidated by any Set call.
	blockSums []uint64
	rankReady bool
}

// New allocates a zero-filled bit vector of the given length in bits.
func New(length uint64) *Vector {
	nWords := (length + 63) / 64
	return &Vector{words: make([]uint64, nWords), length: length}
}

// Len returns the number of addressable bits.
func (v *Vector) Len() uint64 { return v.length }

// Get returns the bit at position h.
func (v *Vector) Get(h uint64) bool {
	return v.words[h/64]&(uint64(1)<<(h%64)) != 0
}

// Set assigns the bit at position h. Invalidates the rank index; callers
// doing a bulk build should call EnsureRank once after all Sets.
func (v *Vector) Set(h uint64, value bool) {
	word := h / 64
	mask := uint64(1) << (h % 64)
	if value {
		v.words[word] |= mask
	} else {
		v.words[word] &^= mask
	}
	v.rankReady = false
}

// Popcount returns the total number of set bits.
func (v *Vector) Popcount() uint64 {
	var total uint64
	for _, w := range v.words {
		total += uint64(bits.OnesCount64(w))
	}
	return total
}

// EnsureRank (re)builds the rank index if it is not already valid. It is
// idempotent and safe to call before every Rank1 call; repeated calls
// after the first no-op.
func (v *Vector) EnsureRank() {
	if v.rankReady {
		return
	}
	nBlocks := (len(v.words) + wordsPerBlock - 1) / wordsPerBlock
	sums := make([]uint64, nBlocks+1)
	var running uint64
	for b := 0; b < nBlocks; b++ {
		sums[b] = running
		start := b * wordsPerBlock
		end := mathutil.Min(start+wordsPerBlock, len(v.words))
		for _, w := range v.words[start:end] {
			running += uint64(bits.OnesCount64(w))
		}
	}
	sums[nBlocks] = running
	v.blockSums = sums
	v.rankReady = true
}

// Rank1 returns the number of set bits strictly before position h:
// |{j < h : B[j]=1}|. EnsureRank must have been called since the last
// Set (Build/Load call it for the caller; this is not done implicitly on
// every Rank1 to keep the hot query path free of a branch+flag check per
// call).
func (v *Vector) Rank1(h uint64) uint64 {
	block := h / blockBits
	total := v.blockSums[block]

	wordStart := block * wordsPerBlock
	wordEnd := h / 64
	for w := wordStart; w < wordEnd; w++ {
		total += uint64(bits.OnesCount64(v.words[w]))
	}

	rem := h % 64
	if rem > 0 {
		partial := v.words[wordEnd] & ((uint64(1) << rem) - 1)
		total += uint64(bits.OnesCount64(partial))
	}
	return total
}

// Resize truncates the vector to a new bit length. The new length must not
// exceed the current length. The rank index is invalidated.
func (v *Vector) Resize(newLength uint64) {
	if newLength > v.length {
		panic("bitvector: Resize can only shrink")
	}
	nWords := (newLength + 63) / 64
	v.words = v.words[:nWords]
	if rem := newLength % 64; rem != 0 && nWords > 0 {
		v.words[nWords-1] &= (uint64(1) << rem) - 1
	}
	v.length = newLength
	v.rankReady = false
}

// WriteTo serializes the vector as an 8-byte little-endian bit length
// followed by the packed words (8 bytes each). The rank index is not
// persisted; EnsureRank must be called again after ReadFrom.
func (v *Vector) WriteTo(w io.Writer) (int64, error) {
	var hdr [8]byte
	binary.LittleEndian.PutUint64(hdr[:], v.length)
	n, err := w.Write(hdr[:])
	total := int64(n)
	if err != nil {
		return total, err
	}

	buf := make([]byte, 8*len(v.words))
	for i, word := range v.words {
		binary.LittleEndian.PutUint64(buf[i*8:], word)
	}
	n, err = w.Write(buf)
	total += int64(n)
	return total, err
}

// ReadFrom deserializes a Vector previously written by WriteTo, replacing
// the receiver's contents. The rank index is left invalid.
func (v *Vector) ReadFrom(r io.Reader) (int64, error) {
	var hdr [8]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, fmt.Errorf("bitvector: reading length: %w", err)
	}
	length := binary.LittleEndian.Uint64(hdr[:])
	nWords := (length + 63) / 64

	buf := make([]byte, 8*nWords)
	n, err := io.ReadFull(r, buf)
	total := int64(8 + n)
	if err != nil {
		return total, fmt.Errorf("bitvector: reading words: %w", err)
	}

	words := make([]uint64, nWords)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}

	v.words = words
	v.length = length
	v.rankReady = false
	v.blockSums = nil
	return total, nil
}
