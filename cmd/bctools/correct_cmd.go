package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kehrlab/bcctools/internal/barcodeindex"
	"github.com/kehrlab/bcctools/internal/bclog"
	"github.com/kehrlab/bcctools/internal/query"
)

var correctFlags struct {
	whitelist    string
	fastq1       string
	fastq2       string
	bcLength     int
	spacerLength int
	numAlts      int
	out          string
}

var correctCmd = &cobra.Command{
	Use:   "correct",
	Short: "Correct barcodes in a FASTQ read pair against a whitelist index",
	RunE:  runCorrect,
}

func init() {
	f := correctCmd.Flags()
	f.StringVar(&correctFlags.whitelist, "whitelist", "", "whitelist base path; loads <whitelist>.bc/.match/.subst, building them if absent (required)")
	f.StringVar(&correctFlags.fastq1, "fastq1", "", "FASTQ file holding barcode+spacer+read1 (required)")
	f.StringVar(&correctFlags.fastq2, "fastq2", "", "FASTQ file holding read2 (required)")
	f.IntVar(&correctFlags.bcLength, "bc-length", 16, "barcode length in bases")
	f.IntVar(&correctFlags.spacerLength, "spacer-length", 7, "spacer length in bases, immediately following the barcode")
	f.IntVar(&correctFlags.numAlts, "alternatives", 16, "max whitelist barcodes a 1-substitution neighbor may correct to before it is dropped as ambiguous, used only if the index must be built")
	f.StringVar(&correctFlags.out, "out", "", "output TSV path (default stdout)")
	_ = correctCmd.MarkFlagRequired("whitelist")
	_ = correctCmd.MarkFlagRequired("fastq1")
	_ = correctCmd.MarkFlagRequired("fastq2")
}

func runCorrect(cmd *cobra.Command, args []string) error {
	idx, err := loadOrBuildIndex(correctFlags.whitelist, correctFlags.numAlts)
	if err != nil {
		return err
	}
	bclog.Info(fmt.Sprintf("maximum number of alternative corrections stored in index is %d", idx.A))

	r1, err := openFastqReader(appFs, correctFlags.fastq1)
	if err != nil {
		return err
	}
	defer r1.Close()
	r2, err := openFastqReader(appFs, correctFlags.fastq2)
	if err != nil {
		return err
	}
	defer r2.Close()

	var out io.Writer = os.Stdout
	if correctFlags.out != "" {
		f, err := appFs.Create(correctFlags.out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", correctFlags.out, err)
		}
		defer f.Close()
		out = f
	}
	w := bufio.NewWriter(out)
	defer w.Flush()

	bclog.Info("retrieving whitelist barcodes")
	var match, oneError, unrecognized int
	for {
		rec1, err := r1.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", correctFlags.fastq1, err)
		}
		rec2, err := r2.Next()
		if err == io.EOF {
			return fmt.Errorf("%s has fewer records than %s", correctFlags.fastq2, correctFlags.fastq1)
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", correctFlags.fastq2, err)
		}

		bcEnd := correctFlags.bcLength
		spacerEnd := bcEnd + correctFlags.spacerLength
		if len(rec1.Seq) < spacerEnd {
			unrecognized++
			continue
		}

		rawBarcode := rec1.Seq[:bcEnd]
		qualBarcode := rec1.Qual[:bcEnd]
		status, candidates := query.Retrieve(idx, rawBarcode, qualBarcode)

		switch status {
		case barcodeindex.Match:
			match++
		case barcodeindex.OneError:
			oneError++
		default:
			unrecognized++
		}

		corrected := make([][]byte, len(candidates))
		for i, c := range candidates {
			corrected[i] = c.Barcode
		}

		row := query.Row{
			ReadName:          rec1.Name,
			CorrectedBarcodes: corrected,
			RawBarcode:        rawBarcode,
			Spacer:            rec1.Seq[bcEnd:spacerEnd],
			Read1Seq:          rec1.Seq[spacerEnd:],
			Read2Seq:          rec2.Seq,
			QualBarcode:       qualBarcode,
			QualSpacer:        rec1.Qual[bcEnd:spacerEnd],
			Qual1:             rec1.Qual[spacerEnd:],
			Qual2:             rec2.Qual,
		}
		fmt.Fprintln(w, query.FormatRow(row))
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Stats:")
	fmt.Fprintf(os.Stderr, "  Whitelisted barcodes:   %d\n", match)
	fmt.Fprintf(os.Stderr, "  Corrected barcodes:     %d\n", oneError)
	fmt.Fprintf(os.Stderr, "  Unrecognized barcodes:  %d\n", unrecognized)
	fmt.Fprintln(os.Stderr)

	return nil
}

// loadOrBuildIndex loads a previously built index from basePath, or builds
// and persists a fresh one from the whitelist file at that same path if no
// .bc file exists yet, matching correct()'s fall-back in bctools.cpp.
func loadOrBuildIndex(basePath string, numAlts int) (*barcodeindex.Index, error) {
	if exists, err := afero.Exists(appFs, basePath+".bc"); err == nil && exists {
		return barcodeindex.Load(appFs, basePath)
	}

	bclog.Status("building index")
	idx, err := barcodeindex.Build(appFs, basePath, numAlts)
	if err != nil {
		return nil, err
	}
	bclog.Done("building index")
	if err := idx.Save(appFs, basePath); err != nil {
		return nil, err
	}
	return idx, nil
}
