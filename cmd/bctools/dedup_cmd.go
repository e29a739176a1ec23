package main

import (
	"errors"

	"github.com/spf13/cobra"
)

// dedupCmd is a reserved placeholder matching upstream's BC_DEDUP command.
// PCR-duplicate marking by corrected barcode + mapping position needs a
// coordinate-sorted BAM/SAM reader, which is out of scope here; the command
// is wired into the tree so `bctools dedup --help` documents the gap
// instead of failing with "unknown command".
var dedupCmd = &cobra.Command{
	Use:   "dedup",
	Short: "Mark PCR duplicates by corrected barcode (not implemented)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return errors.New("dedup: not implemented; BAM ingestion is out of scope for this module")
	},
}
