// Package query turns a raw observed barcode (which may contain ambiguity
// codes) and its per-base quality string into a classification plus an
// ordered candidate list, and formats the result as a TSV row.
//
// Retrieve's N-handling and the quality-ordering of ONE_ERROR candidates
// are a direct port of the two retrieve() overloads in
// original_source/src/barcode_index.cpp (the Dna5String one for N-handling,
// the DnaString one for the quality sort).
package query
