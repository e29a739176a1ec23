// Package whitelist infers a barcode whitelist from raw sequencing reads:
// it counts how often each possible barcode appears as a read prefix,
// builds an occurrence histogram, picks an occurrence cutoff from the
// histogram's shape, and filters the survivors by sequence complexity
// (dinucleotide entropy) before writing them out.
//
// Every algorithm here is a direct port of
// original_source/src/infer_whitelist.cpp: CountBarcodes mirrors
// infer_whitelist's counting loop in bctools.cpp, Histograms mirrors
// make_histograms, InferCutoff mirrors infer_cutoff (with the minimum
// search starting at bin 1, so the cutoff is never 0), and Entropy mirrors
// entropy().
package whitelist
