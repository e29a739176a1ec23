package barcodeindex

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"

	"github.com/spf13/afero"

	"github.com/kehrlab/bcctools/internal/bitvector"
	"github.com/kehrlab/bcctools/internal/packedvec"
)

// Save writes the index as three files: basePath+".bc" (A prefix + the
// barcode bitmap), basePath+".match" (the condensed match bitmap) and
// basePath+".subst" (the substitution table). Splitting across three files
// mirrors the upstream CLI's on-disk layout.
func (idx *Index) Save(fs afero.Fs, basePath string) error {
	bc, err := fs.Create(basePath + ".bc")
	if err != nil {
		return fmt.Errorf("barcodeindex: creating .bc: %w", err)
	}
	defer bc.Close()
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], idx.A)
	if _, err := bc.Write(hdr[:]); err != nil {
		return fmt.Errorf("barcodeindex: writing .bc header: %w", err)
	}
	if _, err := idx.B.WriteTo(bc); err != nil {
		return fmt.Errorf("barcodeindex: writing .bc payload: %w", err)
	}

	match, err := fs.Create(basePath + ".match")
	if err != nil {
		return fmt.Errorf("barcodeindex: creating .match: %w", err)
	}
	defer match.Close()
	if _, err := idx.M.WriteTo(match); err != nil {
		return fmt.Errorf("barcodeindex: writing .match payload: %w", err)
	}

	subst, err := fs.Create(basePath + ".subst")
	if err != nil {
		return fmt.Errorf("barcodeindex: creating .subst: %w", err)
	}
	defer subst.Close()
	if _, err := idx.S.WriteTo(subst); err != nil {
		return fmt.Errorf("barcodeindex: writing .subst payload: %w", err)
	}
	return nil
}

// Load reads an Index previously written by Save. The three files are read
// in order so a missing or unreadable file reports which one via
// IndexIncompleteError's Code (1=.bc, 2=.match, 3=.subst), matching the
// CLI's distinct exit codes. Rank indices are rebuilt after load since they
// are never persisted.
func Load(fs afero.Fs, basePath string) (*Index, error) {
	idx := &Index{}

	bcPath := basePath + ".bc"
	bc, err := fs.Open(bcPath)
	if err != nil {
		return nil, &IndexIncompleteError{Code: 1, Path: bcPath, Err: err}
	}
	var hdr [4]byte
	if _, err := io.ReadFull(bc, hdr[:]); err != nil {
		bc.Close()
		return nil, &IndexIncompleteError{Code: 1, Path: bcPath, Err: err}
	}
	idx.A = binary.LittleEndian.Uint32(hdr[:])
	idx.B = bitvector.New(0)
	if _, err := idx.B.ReadFrom(bc); err != nil {
		bc.Close()
		return nil, &IndexIncompleteError{Code: 1, Path: bcPath, Err: fmt.Errorf("%w: %v", ErrSerializationCorrupt, err)}
	}
	bc.Close()

	matchPath := basePath + ".match"
	match, err := fs.Open(matchPath)
	if err != nil {
		return nil, &IndexIncompleteError{Code: 2, Path: matchPath, Err: err}
	}
	idx.M = bitvector.New(0)
	if _, err := idx.M.ReadFrom(match); err != nil {
		match.Close()
		return nil, &IndexIncompleteError{Code: 2, Path: matchPath, Err: fmt.Errorf("%w: %v", ErrSerializationCorrupt, err)}
	}
	match.Close()

	substPath := basePath + ".subst"
	subst, err := fs.Open(substPath)
	if err != nil {
		return nil, &IndexIncompleteError{Code: 3, Path: substPath, Err: err}
	}
	idx.S = packedvec.New(1, 0)
	if _, err := idx.S.ReadFrom(subst); err != nil {
		subst.Close()
		return nil, &IndexIncompleteError{Code: 3, Path: substPath, Err: fmt.Errorf("%w: %v", ErrSerializationCorrupt, err)}
	}
	subst.Close()

	idx.L = lengthFromAddressSpace(idx.B.Len())
	idx.aBits = uint(bits.Len32(idx.A - 1))
	if idx.A == 1 {
		idx.aBits = 1
	}
	idx.B.EnsureRank()
	idx.M.EnsureRank()
	return idx, nil
}

// lengthFromAddressSpace inverts n = 4^L = 2^(2L).
func lengthFromAddressSpace(n uint64) int {
	return bits.Len64(n-1) / 2
}
