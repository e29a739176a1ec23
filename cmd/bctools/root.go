package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kehrlab/bcctools/internal/barcodeindex"
)

// appFs is the filesystem every sub-command reads and writes through. It is
// a package var, not a constant dependency, so tests can swap in an
// in-memory afero.Fs.
var appFs afero.Fs = afero.NewOsFs()

var rootCmd = &cobra.Command{
	Use:   "bctools",
	Short: "Barcode correction, sorting, etc.",
	Long: `bctools - Barcode correction, sorting, etc.
===========================================

Builds a succinct index of a DNA barcode whitelist and uses it to correct
single-substitution errors in sequencing reads.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(whitelistCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(correctCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dedupCmd)
}

// Execute runs the command tree and returns a process exit code: 0 on
// success, the IndexIncompleteError's own code plus one (2/3/4, for a
// missing .bc/.match/.subst file) when Load failed, and 1 for every other
// error, usage/parse errors as well as other I/O and validation failures.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintln(os.Stderr, "bctools:", err)

	var incomplete *barcodeindex.IndexIncompleteError
	if as(err, &incomplete) {
		return incomplete.Code + 1
	}
	return 1
}

// as is a tiny errors.As wrapper kept local so callers above don't need to
// import "errors" just for this one check.
func as(err error, target **barcodeindex.IndexIncompleteError) bool {
	for err != nil {
		if ie, ok := err.(*barcodeindex.IndexIncompleteError); ok {
			*target = ie
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
