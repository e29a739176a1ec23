package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kehrlab/bcctools/internal/bclog"
	"github.com/kehrlab/bcctools/internal/whitelist"
)

var whitelistFlags struct {
	fastq      string
	bcLength   int
	cutoff     uint32
	minEntropy float64
	out        string
	histOut    string
}

var whitelistCmd = &cobra.Command{
	Use:   "whitelist",
	Short: "Infer a barcode whitelist from raw sequencing reads",
	RunE:  runWhitelist,
}

func init() {
	f := whitelistCmd.Flags()
	f.StringVar(&whitelistFlags.fastq, "fastq", "", "FASTQ file holding the raw reads (required, .gz allowed)")
	f.IntVar(&whitelistFlags.bcLength, "bc-length", 16, "barcode length in bases")
	f.Uint32Var(&whitelistFlags.cutoff, "cutoff", 0, "minimum read count to keep a barcode (0 = infer automatically)")
	f.Float64Var(&whitelistFlags.minEntropy, "min-entropy", 0.5, "minimum dinucleotide entropy to keep a barcode")
	f.StringVar(&whitelistFlags.out, "out", "", "output whitelist path (required)")
	f.StringVar(&whitelistFlags.histOut, "histogram", "", "optional output path for the count histogram TSV")
	_ = whitelistCmd.MarkFlagRequired("fastq")
	_ = whitelistCmd.MarkFlagRequired("out")
}

func runWhitelist(cmd *cobra.Command, args []string) error {
	counts, err := whitelist.CountBarcodes(appFs, whitelistFlags.fastq, whitelistFlags.bcLength)
	if err != nil {
		return err
	}

	allHist, wlHist, err := whitelist.Histograms(appFs, counts, "", whitelistFlags.bcLength)
	if err != nil {
		return err
	}

	cutoff := whitelistFlags.cutoff
	if cutoff == 0 {
		cutoff = whitelist.InferCutoff(allHist)
		bclog.Info(fmt.Sprintf("inferred cutoff = %d", cutoff))
	}

	if whitelistFlags.histOut != "" {
		if err := whitelist.WriteHistogram(appFs, whitelistFlags.histOut, allHist, wlHist); err != nil {
			return err
		}
	}

	if err := whitelist.WriteWhitelist(appFs, whitelistFlags.out, counts, cutoff, whitelistFlags.minEntropy, whitelistFlags.bcLength); err != nil {
		return err
	}
	bclog.Info("whitelist written to " + whitelistFlags.out)
	return nil
}
