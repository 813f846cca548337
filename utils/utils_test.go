package utils

import (
	"testing"
)

func TestRandAlphanumeric(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		s := RandAlphanumeric(16)
		if len(s) != 16 {
			t.Fatalf("RandAlphanumeric(16) = %q, length %d", s, len(s))
		}
		for _, c := range s {
			if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
				t.Fatalf("RandAlphanumeric(16) = %q contains %q", s, c)
			}
		}
		if seen[s] {
			t.Fatalf("RandAlphanumeric(16) repeated %q", s)
		}
		seen[s] = true
	}
	if got := RandAlphanumeric(0); got != "" {
		t.Errorf("RandAlphanumeric(0) = %q", got)
	}
}
