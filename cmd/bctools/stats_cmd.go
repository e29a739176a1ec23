package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var statsFlags struct {
	input string
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize barcode correction outcomes from a correct-command TSV",
	Long: `stats tallies the corrected-barcode column of a TSV produced by
'bctools correct': how many rows carry exactly one corrected barcode (an
exact match or an unambiguous correction), how many carry several
comma-separated candidates, and how many are unrecognized ('*').`,
	RunE: runStats,
}

func init() {
	f := statsCmd.Flags()
	f.StringVar(&statsFlags.input, "input", "", "TSV file produced by 'bctools correct' (required)")
	_ = statsCmd.MarkFlagRequired("input")
}

func runStats(cmd *cobra.Command, args []string) error {
	f, err := appFs.Open(statsFlags.input)
	if err != nil {
		return fmt.Errorf("opening %s: %w", statsFlags.input, err)
	}
	defer f.Close()

	var unrecognized, match, ambiguous int
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		tab := strings.IndexByte(line, '\t')
		if tab < 0 {
			continue
		}
		field := line[tab+1:]
		if end := strings.IndexByte(field, '\t'); end >= 0 {
			field = field[:end]
		}

		switch {
		case field == "*":
			unrecognized++
		case strings.IndexByte(field, ',') >= 0:
			ambiguous++
		default:
			match++
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", statsFlags.input, err)
	}

	fmt.Fprintln(os.Stdout, "Stats:")
	fmt.Fprintf(os.Stdout, "  Unambiguous corrections: %d\n", match)
	fmt.Fprintf(os.Stdout, "  Ambiguous corrections:   %d\n", ambiguous)
	fmt.Fprintf(os.Stdout, "  Unrecognized:            %d\n", unrecognized)
	return nil
}
