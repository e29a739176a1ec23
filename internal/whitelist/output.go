package whitelist

import (
	"bufio"
	"fmt"

	"github.com/spf13/afero"

	"github.com/kehrlab/bcctools/internal/bclog"
	"github.com/kehrlab/bcctools/internal/codec"
)

// WriteHistogram writes the two occurrence histograms as a two-column TSV
// (header "All\tWhitelisted"), one row per bin.
func WriteHistogram(fs afero.Fs, path string, all, wl [histogramBins]uint32) error {
	bclog.Status("writing histogram of barcodes")
	defer bclog.Done("writing histogram of barcodes")

	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("whitelist: creating histogram file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "All\tWhitelisted")
	for i := range all {
		fmt.Fprintf(w, "%d\t%d\n", all[i], wl[i])
	}
	return w.Flush()
}

// WriteWhitelist writes every barcode whose occurrence count meets cutoff
// and whose dinucleotide entropy meets minEntropy, one per line. Mirrors
// the final loop in infer_whitelist (bctools.cpp).
func WriteWhitelist(fs afero.Fs, path string, counts []uint16, cutoff uint32, minEntropy float64, bcLength int) error {
	bclog.Status("writing whitelist of barcodes")
	defer bclog.Done("writing whitelist of barcodes")

	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("whitelist: creating whitelist file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for i, c := range counts {
		if uint32(c) < cutoff {
			continue
		}
		bc := codec.Unhash(uint64(i), bcLength)
		if Entropy(bc) < minEntropy {
			continue
		}
		if _, err := w.Write(bc); err != nil {
			return fmt.Errorf("whitelist: writing barcode: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("whitelist: writing barcode: %w", err)
		}
	}
	return w.Flush()
}
