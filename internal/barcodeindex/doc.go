// Package barcodeindex implements the succinct barcode index: the barcode
// bitmap B, the condensed match bitmap M, and the packed substitution table
// S, plus the build algorithm that fills them from a whitelist and the
// on-disk format that persists them.
//
// The build algorithm (buildBarcodeAndMatch, buildSubstitutionTable) is a
// direct port of original_source/src/barcode_index.cpp's
// add_similar_barcodes/set_one_error/set_substitution trio. Serialization
// follows a WriteTo/ReadFrom header-then-payload shape, the same one used
// throughout this module's other packed structures.
package barcodeindex
