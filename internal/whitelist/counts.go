package whitelist

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/kehrlab/bcctools/internal/bclog"
	"github.com/kehrlab/bcctools/internal/codec"
)

// maxCount is the saturating ceiling for a single barcode's occurrence
// count, matching upstream's uint16_t count_per_barcode array.
const maxCount = ^uint16(0)

// CountBarcodes reads a FASTQ file (optionally gzip-compressed, selected by
// a ".gz" suffix) and returns a saturating occurrence count for every
// possible bcLength-mer, indexed by its codec key. Reads whose barcode
// prefix contains an N are skipped entirely, matching upstream's hasN
// short-circuit in bctools.cpp's infer_whitelist.
func CountBarcodes(fs afero.Fs, fastqPath string, bcLength int) ([]uint16, error) {
	bclog.Status("counting barcodes")
	defer bclog.Done("counting barcodes")

	r, closeFn, err := openFastq(fs, fastqPath)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	counts := make([]uint16, uint64(1)<<uint(2*bcLength))
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		line := sc.Text()
		if lineNo%4 == 1 { // the sequence line of each 4-line FASTQ record
			if len(line) < bcLength {
				lineNo++
				continue
			}
			prefix := line[:bcLength]
			if key, err := codec.Hash([]byte(prefix)); err == nil {
				if counts[key] != maxCount {
					counts[key]++
				}
			}
		}
		lineNo++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("whitelist: reading fastq: %w", err)
	}
	return counts, nil
}

func openFastq(fs afero.Fs, path string) (io.Reader, func(), error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("whitelist: opening %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, nil, fmt.Errorf("whitelist: gzip %s: %w", path, err)
		}
		return gz, func() { gz.Close(); f.Close() }, nil
	}
	return f, func() { f.Close() }, nil
}
