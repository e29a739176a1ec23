package whitelist

import (
	"bufio"
	"fmt"
	"math"

	"github.com/spf13/afero"

	"github.com/kehrlab/bcctools/internal/bclog"
	"github.com/kehrlab/bcctools/internal/codec"
)

// histogramBins is the fixed number of occurrence buckets, matching
// upstream's 1000-element allHist/wlHist vectors. Any count at or above
// this is folded into the last bin.
const histogramBins = 1000

// Histograms builds two occurrence histograms from counts: one over every
// barcode, and (if whitelistPath is non-empty) one restricted to barcodes
// present in a reference whitelist file. Mirrors make_histograms in
// infer_whitelist.cpp.
func Histograms(fs afero.Fs, counts []uint16, whitelistPath string, bcLength int) (all, wl [histogramBins]uint32, err error) {
	var whitelisted []bool
	if whitelistPath != "" {
		bclog.Status("reading whitelist file")
		whitelisted = make([]bool, uint64(1)<<uint(2*bcLength))
		f, openErr := fs.Open(whitelistPath)
		if openErr != nil {
			return all, wl, fmt.Errorf("whitelist: opening reference whitelist: %w", openErr)
		}
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			line := sc.Text()
			if line == "" {
				continue
			}
			h, hashErr := codec.Hash([]byte(line))
			if hashErr != nil {
				f.Close()
				return all, wl, fmt.Errorf("whitelist: reference whitelist line %q: %w", line, hashErr)
			}
			whitelisted[h] = true
		}
		f.Close()
		if scErr := sc.Err(); scErr != nil {
			return all, wl, fmt.Errorf("whitelist: reading reference whitelist: %w", scErr)
		}
		bclog.Done("reading whitelist file")
	}

	// Upstream clamps a saturated count to exactly 1000 and indexes a
	// 1000-element vector with it, which is an off-by-one past the end;
	// clamping to the last valid bin (999) here gives the same "pile
	// everything past the cutoff region into one bin" behavior without
	// the out-of-bounds access.
	bclog.Status("making barcode histogram")
	for i, c := range counts {
		cnt := uint32(c)
		if cnt > histogramBins-1 {
			cnt = histogramBins - 1
		}
		all[cnt]++
		if whitelisted != nil && whitelisted[i] {
			wl[cnt]++
		}
	}
	bclog.Done("making barcode histogram")
	return all, wl, nil
}

// InferCutoff picks the minimum-occurrence threshold a barcode must clear
// to be whitelisted, by scanning the histogram for its first local minimum
// before counts start climbing sharply again. The search starts at bin 1:
// bin 0 holds barcodes never observed, so the returned cutoff is always at
// least 1 (it is 1 for a histogram that never rises again).
func InferCutoff(allHist [histogramBins]uint32) uint32 {
	cutoff := uint32(1)
	min := ^uint32(0) / 2
	for i := 1; i < histogramBins; i++ {
		v := allHist[i]
		if v < min {
			min = v
			cutoff = uint32(i)
		}
		if v > 2*min {
			break
		}
	}
	return cutoff
}

// Entropy computes the dinucleotide Shannon entropy of bc, normalized by
// dividing by 4 (not log2(16)) exactly as entropy() in infer_whitelist.cpp
// does. For this alphabet size the two are numerically identical
// (log2(16) == 4), but the division constant is kept literal rather than
// generalized, since that is what upstream actually computes.
func Entropy(bc []byte) float64 {
	var diCounts [16]uint32
	for i := 0; i < len(bc)-1; i++ {
		diCounts[codec.Ord(bc[i])+4*codec.Ord(bc[i+1])]++
	}

	n := float64(len(bc) - 1)
	var score float64
	for _, c := range diCounts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		score -= p * math.Log(p) / math.Log(2)
	}
	return score / 4
}
