// Package packedvec implements a fixed-width packed unsigned integer
// array: a dense []uint64 word slice where each logical element occupies
// exactly Width bits, possibly straddling a word boundary.
//
// This generalizes the two-field bit-packing fsst's symbol table uses for
// its per-symbol code+length metadata (see symbol.icl in its table.go) from
// one fixed layout to an arbitrary caller-chosen width, since the barcode
// index needs two different widths: ceil(log2(L)) for the substitution
// table and ceil(log2(A)) for the build-time helper counters.
package packedvec

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Vector is a dense array of fixed-width unsigned integers, each at most
// 64 bits wide, packed into a []uint64 word slice with no padding between
// elements.
type Vector struct {
	width  uint   // bits per element, 1..64
	length uint64 // number of elements
	words  []uint64
}

// New allocates a zero-filled Vector holding length elements of the given
// bit width.
func New(width uint, length uint64) *Vector {
	if width == 0 || width > 64 {
		panic(fmt.Sprintf("packedvec: width %d out of range [1,64]", width))
	}
	nWords := wordsFor(width, length)
	return &Vector{width: width, length: length, words: make([]uint64, nWords)}
}

func wordsFor(width uint, length uint64) uint64 {
	bits := length * uint64(width)
	return (bits + 63) / 64
}

// Width returns the per-element bit width.
func (v *Vector) Width() uint { return v.width }

// Len returns the number of elements.
func (v *Vector) Len() uint64 { return v.length }

// mask returns a bitmask covering the low Width bits.
func (v *Vector) mask() uint64 {
	if v.width == 64 {
		return ^uint64(0)
	}
	return (uint64(1) << v.width) - 1
}

// Get returns the element at index i.
func (v *Vector) Get(i uint64) uint64 {
	bitPos := i * uint64(v.width)
	wordIdx := bitPos / 64
	bitOff := uint(bitPos % 64)

	lo := v.words[wordIdx] >> bitOff
	bitsFromLo := 64 - bitOff
	if uint64(bitsFromLo) >= uint64(v.width) {
		return lo & v.mask()
	}
	// Element straddles into the next word.
	hi := v.words[wordIdx+1] << bitsFromLo
	return (lo | hi) & v.mask()
}

// Set writes value (truncated to Width bits) at index i.
func (v *Vector) Set(i uint64, value uint64) {
	value &= v.mask()
	bitPos := i * uint64(v.width)
	wordIdx := bitPos / 64
	bitOff := uint(bitPos % 64)

	clearLo := v.mask() << bitOff
	v.words[wordIdx] = (v.words[wordIdx] &^ clearLo) | (value << bitOff)

	bitsFromLo := 64 - bitOff
	if uint64(bitsFromLo) < uint64(v.width) {
		spill := uint(v.width) - bitsFromLo
		clearHi := (uint64(1) << spill) - 1
		v.words[wordIdx+1] = (v.words[wordIdx+1] &^ clearHi) | (value >> bitsFromLo)
	}
}

// BitsForValues returns ceil(log2(n)) for n >= 1, with the convention
// BitsForValues(1) == 1 (a single representable value still needs one bit
// of storage in this codebase's vectors; callers that need 0 bits for a
// constant field should special-case it themselves).
func BitsForValues(n uint64) uint {
	if n <= 1 {
		return 1
	}
	width := uint(0)
	for v := n - 1; v > 0; v >>= 1 {
		width++
	}
	return width
}

// WriteTo serializes the vector: an 8-byte little-endian width, an 8-byte
// little-endian length, then the packed words (8-byte little-endian
// each), the same header-then-payload shape fsst's table.go uses for its
// WriteTo/ReadFrom pair.
func (v *Vector) WriteTo(w io.Writer) (int64, error) {
	var hdr [16]byte
	binary.LittleEndian.PutUint64(hdr[0:8], uint64(v.width))
	binary.LittleEndian.PutUint64(hdr[8:16], v.length)
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
// the receiver's contents.
func (v *Vector) ReadFrom(r io.Reader) (int64, error) {
	var hdr [16]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, fmt.Errorf("packedvec: reading header: %w", err)
	}
	width := binary.LittleEndian.Uint64(hdr[0:8])
	length := binary.LittleEndian.Uint64(hdr[8:16])
	if width == 0 || width > 64 {
		return 16, fmt.Errorf("packedvec: corrupt width %d", width)
	}

	nWords := wordsFor(uint(width), length)
	buf := make([]byte, 8*nWords)
	n, err := io.ReadFull(r, buf)
	total := int64(16 + n)
	if err != nil {
		return total, fmt.Errorf("packedvec: reading payload: %w", err)
	}

	words := make([]uint64, nWords)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}

	v.width = uint(width)
	v.length = length
	v.words = words
	return total, nil
}
