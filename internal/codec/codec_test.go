package codec

import (
	"errors"
	"testing"
)

func TestHashUnhashRoundTrip(t *testing.T) {
	cases := []string{
		"A", "C", "G", "T",
		"ACGT", "TTTT", "AAAA", "ACGTACGTACGTACGT",
	}
	for _, seq := range cases {
		t.Run(seq, func(t *testing.T) {
			h, err := Hash([]byte(seq))
			if err != nil {
				t.Fatalf("Hash(%q) unexpected error: %v", seq, err)
			}
			back := Unhash(h, len(seq))
			if string(back) != seq {
				t.Fatalf("Unhash(Hash(%q)) = %q, want %q", seq, back, seq)
			}
		})
	}
}

func TestHashKnownValues(t *testing.T) {
	tests := []struct {
		seq  string
		want uint64
	}{
		{"A", 0},
		{"C", 1},
		{"G", 2},
		{"T", 3},
		{"AA", 0},
		{"AC", 1},
		{"AT", 3},
		{"CA", 4},
		{"ACGT", 0b00_01_10_11},
	}
	for _, tc := range tests {
		got, err := Hash([]byte(tc.seq))
		if err != nil {
			t.Fatalf("Hash(%q): %v", tc.seq, err)
		}
		if got != tc.want {
			t.Errorf("Hash(%q) = %d, want %d", tc.seq, got, tc.want)
		}
	}
}

func TestHashInvalidBase(t *testing.T) {
	_, err := Hash([]byte("ACNT"))
	if !errors.Is(err, ErrInvalidBase) {
		t.Fatalf("Hash(ACNT) error = %v, want ErrInvalidBase", err)
	}
}

func TestNeighborXORsReturnsToOrigin(t *testing.T) {
	h, err := Hash([]byte("ACGT"))
	if err != nil {
		t.Fatal(err)
	}
	for pos := 0; pos < 4; pos++ {
		walk := NeighborXORs(pos)
		cur := h
		seen := map[uint64]bool{cur: true}
		for _, x := range walk {
			cur ^= x
			seen[cur] = true
		}
		if cur != h {
			t.Fatalf("position %d: XOR walk did not return to origin: got %d want %d", pos, cur, h)
		}
		if len(seen) != 4 {
			t.Fatalf("position %d: XOR walk visited %d distinct keys, want 4 (original + 3 alternates)", pos, len(seen))
		}
	}
}

func TestOrdBase(t *testing.T) {
	for v := uint64(0); v < 4; v++ {
		b := Base(v)
		if got := Ord(b); got != int(v) {
			t.Errorf("Ord(Base(%d))=%d, want %d", v, got, v)
		}
	}
}
