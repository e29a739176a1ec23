package main

import (
	"github.com/spf13/cobra"

	"github.com/kehrlab/bcctools/internal/barcodeindex"
	"github.com/kehrlab/bcctools/internal/bclog"
)

var indexFlags struct {
	whitelist    string
	alternatives int
	out          string
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build a succinct barcode-correction index from a whitelist",
	RunE:  runIndex,
}

func init() {
	f := indexCmd.Flags()
	f.StringVar(&indexFlags.whitelist, "whitelist", "", "whitelist file, one barcode per line (required)")
	f.IntVar(&indexFlags.alternatives, "alternatives", 16, "max whitelist barcodes a 1-substitution neighbor may correct to before it is dropped as ambiguous")
	f.StringVar(&indexFlags.out, "out", "", "output index base path; writes <out>.bc/.match/.subst (required)")
	_ = indexCmd.MarkFlagRequired("whitelist")
	_ = indexCmd.MarkFlagRequired("out")
}

func runIndex(cmd *cobra.Command, args []string) error {
	bclog.Status("building index")
	idx, err := barcodeindex.Build(appFs, indexFlags.whitelist, indexFlags.alternatives)
	if err != nil {
		return err
	}
	bclog.Done("building index")

	if err := idx.Save(appFs, indexFlags.out); err != nil {
		return err
	}
	bclog.Info("index written to " + indexFlags.out + ".{bc,match,subst}")
	return nil
}
