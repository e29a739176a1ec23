package barcodeindex

import (
	"errors"
	"fmt"
)

var (
	// ErrWhitelistEmpty is returned by Build when the whitelist file
	// contains no usable barcode lines.
	ErrWhitelistEmpty = errors.New("barcodeindex: whitelist is empty")

	// ErrBarcodeLengthMismatch is returned when whitelist lines are not
	// all the same length.
	ErrBarcodeLengthMismatch = errors.New("barcodeindex: whitelist barcodes have inconsistent length")

	// ErrParameterOutOfRange is returned when the requested alternatives
	// count falls outside [1,48].
	ErrParameterOutOfRange = errors.New("barcodeindex: alternatives parameter out of range")

	// ErrAddressSpaceTooLarge is returned when the barcode length would
	// require a bitmap larger than this implementation is willing to
	// allocate in memory.
	ErrAddressSpaceTooLarge = errors.New("barcodeindex: barcode length requires too large an address space")

	// ErrSerializationCorrupt wraps a lower-level decode failure from
	// bitvector or packedvec during Load.
	ErrSerializationCorrupt = errors.New("barcodeindex: corrupt index file")
)

// IndexIncompleteError is returned by Load when one of the three on-disk
// files (.bc, .match, .subst) is missing or unreadable. Code distinguishes
// which file, matching the CLI's distinct exit codes (2/3/4).
type IndexIncompleteError struct {
	Code int // 1=.bc, 2=.match, 3=.subst
	Path string
	Err  error
}

func (e *IndexIncompleteError) Error() string {
	return fmt.Sprintf("barcodeindex: missing or unreadable %s: %v", e.Path, e.Err)
}

func (e *IndexIncompleteError) Unwrap() error { return e.Err }
