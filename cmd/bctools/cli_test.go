package main

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withMemFs(t *testing.T) afero.Fs {
	t.Helper()
	original := appFs
	fs := afero.NewMemMapFs()
	appFs = fs
	t.Cleanup(func() { appFs = original })
	return fs
}

func TestRunWhitelistInfersAndWritesWhitelist(t *testing.T) {
	fs := withMemFs(t)

	var fastq strings.Builder
	// Six reads, all with "ACGT" as the barcode prefix; no reference
	// whitelist is supplied so only the cutoff/entropy filters apply.
	for i := 0; i < 6; i++ {
		fastq.WriteString("@read" + string(rune('0'+i)) + "\n")
		fastq.WriteString("ACGTACGTAC\n")
		fastq.WriteString("+\n")
		fastq.WriteString("IIIIIIIIII\n")
	}
	require.NoError(t, afero.WriteFile(fs, "/reads.fastq", []byte(fastq.String()), 0o644))

	whitelistFlags.fastq = "/reads.fastq"
	whitelistFlags.bcLength = 4
	whitelistFlags.cutoff = 1
	whitelistFlags.minEntropy = 0
	whitelistFlags.out = "/whitelist.txt"
	whitelistFlags.histOut = "/hist.tsv"

	require.NoError(t, runWhitelist(nil, nil))

	content, err := afero.ReadFile(fs, "/whitelist.txt")
	require.NoError(t, err)
	assert.Contains(t, string(content), "ACGT")

	hist, err := afero.ReadFile(fs, "/hist.tsv")
	require.NoError(t, err)
	assert.Contains(t, string(hist), "All\tWhitelisted")
}

func TestRunIndexBuildsAndPersistsFiles(t *testing.T) {
	fs := withMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "/wl.txt", []byte("ACGT\nTTTT\n"), 0o644))

	indexFlags.whitelist = "/wl.txt"
	indexFlags.alternatives = 4
	indexFlags.out = "/wl.txt"

	require.NoError(t, runIndex(nil, nil))

	for _, ext := range []string{".bc", ".match", ".subst"} {
		exists, err := afero.Exists(fs, "/wl.txt"+ext)
		require.NoError(t, err)
		assert.True(t, exists, "missing %s", ext)
	}
}

func TestRunCorrectBuildsIndexThenCorrectsReads(t *testing.T) {
	fs := withMemFs(t)
	require.NoError(t, afero.WriteFile(fs, "/wl.txt", []byte("ACGT\n"), 0o644))

	fastq1 := "@r1\n" + "CCGTAAAAAAA\n" + "+\n" + "IIIIIIIIIII\n"
	fastq2 := "@r1\n" + "TTTTTTT\n" + "+\n" + "IIIIIII\n"
	require.NoError(t, afero.WriteFile(fs, "/r1.fastq", []byte(fastq1), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/r2.fastq", []byte(fastq2), 0o644))

	correctFlags.whitelist = "/wl.txt"
	correctFlags.fastq1 = "/r1.fastq"
	correctFlags.fastq2 = "/r2.fastq"
	correctFlags.bcLength = 4
	correctFlags.spacerLength = 3
	correctFlags.numAlts = 4
	correctFlags.out = "/out.tsv"

	require.NoError(t, runCorrect(nil, nil))

	out, err := afero.ReadFile(fs, "/out.tsv")
	require.NoError(t, err)
	line := strings.TrimSpace(string(out))
	fields := strings.Split(line, "\t")
	require.Len(t, fields, 10)
	assert.Equal(t, "r1", fields[0])
	assert.Equal(t, "ACGT", fields[1])
	assert.Equal(t, "CCGT", fields[2])
}

func TestRunStatsTalliesCorrectionOutcomes(t *testing.T) {
	fs := withMemFs(t)
	tsv := strings.Join([]string{
		"r1\tACGT\tCCGT\tAAA\tTT\tGG\tIII\tIII\tII\tII",
		"r2\t*\tTTTT\tAAA\tTT\tGG\tIII\tIII\tII\tII",
		"r3\tACGT,TTTT\tNCGT\tAAA\tTT\tGG\tIII\tIII\tII\tII",
	}, "\n")
	require.NoError(t, afero.WriteFile(fs, "/in.tsv", []byte(tsv), 0o644))

	statsFlags.input = "/in.tsv"
	require.NoError(t, runStats(nil, nil))
}
