package whitelist

import (
	"bytes"
	"compress/gzip"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kehrlab/bcctools/internal/codec"
)

func writeFastq(t *testing.T, fs afero.Fs, path string, records [][2]string, gz bool) {
	t.Helper()
	var buf bytes.Buffer
	for _, rec := range records {
		seq, qual := rec[0], rec[1]
		buf.WriteString("@read\n")
		buf.WriteString(seq + "\n")
		buf.WriteString("+\n")
		buf.WriteString(qual + "\n")
	}

	data := buf.Bytes()
	if gz {
		var gzBuf bytes.Buffer
		gw := gzip.NewWriter(&gzBuf)
		_, err := gw.Write(data)
		require.NoError(t, err)
		require.NoError(t, gw.Close())
		data = gzBuf.Bytes()
	}
	require.NoError(t, afero.WriteFile(fs, path, data, 0o644))
}

func TestCountBarcodesSkipsN(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFastq(t, fs, "/reads.fastq", [][2]string{
		{"ACGTACGTGGGG", "IIIIIIIIIIII"},
		{"ACGTACGTGGGG", "IIIIIIIIIIII"},
		{"NCGTACGTGGGG", "IIIIIIIIIIII"}, // has N, skipped
	}, false)

	counts, err := CountBarcodes(fs, "/reads.fastq", 8)
	require.NoError(t, err)

	h, err := codec.Hash([]byte("ACGTACGT"))
	require.NoError(t, err)
	assert.Equal(t, uint16(2), counts[h])
}

func TestCountBarcodesGzip(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFastq(t, fs, "/reads.fastq.gz", [][2]string{
		{"TTTTGGGGAAAA", "IIIIIIIIIIII"},
	}, true)

	counts, err := CountBarcodes(fs, "/reads.fastq.gz", 8)
	require.NoError(t, err)

	h, err := codec.Hash([]byte("TTTTGGGG"))
	require.NoError(t, err)
	assert.Equal(t, uint16(1), counts[h])
}

func TestCountBarcodesSaturates(t *testing.T) {
	fs := afero.NewMemMapFs()
	var records [][2]string
	for i := 0; i < int(maxCount)+5; i++ {
		records = append(records, [2]string{"AAAAAAAA", "IIIIIIII"})
	}
	writeFastq(t, fs, "/reads.fastq", records, false)

	counts, err := CountBarcodes(fs, "/reads.fastq", 8)
	require.NoError(t, err)
	h, _ := codec.Hash([]byte("AAAAAAAA"))
	assert.Equal(t, maxCount, counts[h])
}

func TestInferCutoffFindsLocalMinimum(t *testing.T) {
	var hist [histogramBins]uint32
	// A bimodal shape: a spike of low-count noise barcodes, a dip, then a
	// plateau of real barcodes.
	hist[0] = 10000
	hist[1] = 500
	hist[2] = 50 // local minimum
	hist[3] = 60
	hist[4] = 5000
	hist[5] = 5000

	cutoff := InferCutoff(hist)
	assert.Equal(t, uint32(2), cutoff)
}

func TestInferCutoffDefaultsToOneWhenFlat(t *testing.T) {
	var hist [histogramBins]uint32
	cutoff := InferCutoff(hist)
	assert.Equal(t, uint32(1), cutoff) // the search starts at bin 1
}

func TestEntropyLowForHomopolymer(t *testing.T) {
	e := Entropy([]byte("AAAAAAAA"))
	assert.Equal(t, 0.0, e)
}

func TestEntropyHighForDiverseSequence(t *testing.T) {
	e := Entropy([]byte("ACGTACGTACGT"))
	assert.Greater(t, e, 0.0)
	assert.Less(t, e, 1.0)
}

func TestHistogramsAgainstReferenceWhitelist(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/ref.txt", []byte("ACGTACGT\n"), 0o644))

	counts := make([]uint16, uint64(1)<<16)
	h, _ := codec.Hash([]byte("ACGTACGT"))
	counts[h] = 3

	all, wl, err := Histograms(fs, counts, "/ref.txt", 8)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), wl[3])
	assert.Equal(t, uint32(1), all[3])
}

func TestWriteWhitelistFiltersByCutoffAndEntropy(t *testing.T) {
	fs := afero.NewMemMapFs()
	counts := make([]uint16, uint64(1)<<16)

	hHigh, _ := codec.Hash([]byte("ACGTACGT")) // diverse, passes entropy
	hLow, _ := codec.Hash([]byte("AAAAAAAA"))   // homopolymer, fails entropy
	hRare, _ := codec.Hash([]byte("TTTTGGGG"))  // below cutoff

	counts[hHigh] = 10
	counts[hLow] = 10
	counts[hRare] = 1

	err := WriteWhitelist(fs, "/out.txt", counts, 5, 0.3, 8)
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, "/out.txt")
	require.NoError(t, err)
	assert.Contains(t, string(data), "ACGTACGT")
	assert.NotContains(t, string(data), "AAAAAAAA")
	assert.NotContains(t, string(data), "TTTTGGGG")
}
