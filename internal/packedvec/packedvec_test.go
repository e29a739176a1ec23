package packedvec

import (
	"bytes"
	"testing"
)

func TestGetSetRoundTrip(t *testing.T) {
	widths := []uint{1, 2, 3, 4, 5, 7, 9, 17, 33, 64}
	for _, width := range widths {
		width := width
		t.Run("", func(t *testing.T) {
			n := uint64(200)
			v := New(width, n)
			max := v.mask()
			for i := uint64(0); i < n; i++ {
				val := (i * 2654435761) & max
				v.Set(i, val)
			}
			for i := uint64(0); i < n; i++ {
				want := (i * 2654435761) & max
				if got := v.Get(i); got != want {
					t.Fatalf("width=%d i=%d: got %d want %d", width, i, got, want)
				}
			}
		})
	}
}

func TestSetOverwriteDoesNotCorruptNeighbors(t *testing.T) {
	v := New(5, 10)
	for i := uint64(0); i < 10; i++ {
		v.Set(i, i+1)
	}
	v.Set(4, 31)
	for i := uint64(0); i < 10; i++ {
		want := i + 1
		if i == 4 {
			want = 31
		}
		if got := v.Get(i); got != want {
			t.Fatalf("i=%d: got %d want %d", i, got, want)
		}
	}
}

func TestBitsForValues(t *testing.T) {
	cases := []struct {
		n    uint64
		want uint
	}{
		{1, 1}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {16, 4}, {17, 5}, {48, 6},
	}
	for _, tc := range cases {
		if got := BitsForValues(tc.n); got != tc.want {
			t.Errorf("BitsForValues(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestWriteToReadFromRoundTrip(t *testing.T) {
	v := New(7, 50)
	for i := uint64(0); i < 50; i++ {
		v.Set(i, i%100)
	}

	var buf bytes.Buffer
	if _, err := v.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	var loaded Vector
	if _, err := loaded.ReadFrom(&buf); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}

	if loaded.Width() != v.Width() || loaded.Len() != v.Len() {
		t.Fatalf("metadata mismatch: width=%d/%d len=%d/%d", loaded.Width(), v.Width(), loaded.Len(), v.Len())
	}
	for i := uint64(0); i < v.Len(); i++ {
		if loaded.Get(i) != v.Get(i) {
			t.Fatalf("i=%d: got %d want %d", i, loaded.Get(i), v.Get(i))
		}
	}
}

func TestZeroWidthPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for width 0")
		}
	}()
	New(0, 10)
}
