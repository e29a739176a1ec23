package bitvector

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestGetSet(t *testing.T) {
	v := New(1000)
	set := map[uint64]bool{3: true, 64: true, 999: true, 0: true}
	for h := range set {
		v.Set(h, true)
	}
	for h := uint64(0); h < 1000; h++ {
		if got := v.Get(h); got != set[h] {
			t.Fatalf("Get(%d) = %v, want %v", h, got, set[h])
		}
	}
}

func TestRank1Matches(t *testing.T) {
	const n = 5000
	v := New(n)
	rng := rand.New(rand.NewSource(1))
	want := make([]bool, n)
	for i := range want {
		if rng.Intn(3) == 0 {
			want[i] = true
			v.Set(uint64(i), true)
		}
	}
	v.EnsureRank()

	running := uint64(0)
	for h := uint64(0); h < n; h++ {
		if got := v.Rank1(h); got != running {
			t.Fatalf("Rank1(%d) = %d, want %d", h, got, running)
		}
		if want[h] {
			running++
		}
	}
	if got := v.Popcount(); got != running {
		t.Fatalf("Popcount() = %d, want %d", got, running)
	}
}

func TestRank1BlockBoundaries(t *testing.T) {
	v := New(blockBits * 3)
	v.Set(blockBits-1, true)
	v.Set(blockBits, true)
	v.Set(2*blockBits, true)
	v.EnsureRank()

	if got := v.Rank1(blockBits); got != 1 {
		t.Fatalf("Rank1(blockBits) = %d, want 1", got)
	}
	if got := v.Rank1(blockBits + 1); got != 2 {
		t.Fatalf("Rank1(blockBits+1) = %d, want 2", got)
	}
	if got := v.Rank1(2 * blockBits); got != 2 {
		t.Fatalf("Rank1(2*blockBits) = %d, want 2", got)
	}
}

func TestResizeCondenses(t *testing.T) {
	v := New(100)
	for _, h := range []uint64{0, 1, 5, 10, 50, 90} {
		v.Set(h, true)
	}
	v.Resize(64)
	if v.Len() != 64 {
		t.Fatalf("Len() = %d, want 64", v.Len())
	}
	for _, h := range []uint64{0, 1, 5, 10, 50} {
		if !v.Get(h) {
			t.Fatalf("Get(%d) = false after resize, want true", h)
		}
	}
}

func TestWriteToReadFromRoundTrip(t *testing.T) {
	v := New(777)
	for h := uint64(0); h < 777; h += 7 {
		v.Set(h, true)
	}

	var buf bytes.Buffer
	if _, err := v.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	var loaded Vector
	if _, err := loaded.ReadFrom(&buf); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if loaded.Len() != v.Len() {
		t.Fatalf("Len() mismatch: %d vs %d", loaded.Len(), v.Len())
	}
	for h := uint64(0); h < v.Len(); h++ {
		if loaded.Get(h) != v.Get(h) {
			t.Fatalf("Get(%d) mismatch", h)
		}
	}
	loaded.EnsureRank()
	v.EnsureRank()
	if loaded.Rank1(500) != v.Rank1(500) {
		t.Fatalf("Rank1 mismatch after round-trip")
	}
}

func TestSingleBitVector(t *testing.T) {
	// A barcode length of 1 implies a rank structure over a width-4
	// address space; exercise something even smaller to make sure
	// block-boundary math never divides by zero or indexes out of range.
	v := New(4)
	v.Set(0, true)
	v.Set(3, true)
	v.EnsureRank()
	if v.Rank1(4) != 2 {
		t.Fatalf("Rank1(4) = %d, want 2", v.Rank1(4))
	}
	if v.Rank1(1) != 1 {
		t.Fatalf("Rank1(1) = %d, want 1", v.Rank1(1))
	}
}
