package common

import (
	"strings"
	"testing"
)

func TestRandomLetters_LengthAndAlphabet(t *testing.T) {
	const n = 12
	s, err := RandomLetters(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n {
		t.Fatalf("expected length %d, got %d", n, len(s))
	}
	for _, r := range s {
		if !strings.ContainsRune(letters, r) {
			t.Fatalf("unexpected rune %q in %q", r, s)
		}
	}
}

func TestRandomLetters_ZeroSize(t *testing.T) {
	s, err := RandomLetters(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestRandomLetters_EntropyHint(t *testing.T) {
	a, _ := RandomLetters(32)
	b, _ := RandomLetters(32)
	if a == b {
		t.Logf("warning: two RandomLetters(32) results are identical; extremely unlikely")
	}
}

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("secret")
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}
