package datephrase

import (
	"testing"
	"time"
)

func TestResolveRelativePhrases(t *testing.T) {
	ref := time.Date(2025, 4, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		phrase string
		want   time.Time
	}{
		{"tomorrow", time.Date(2025, 4, 11, 12, 0, 0, 0, time.UTC)},
		{"by Tomorrow morning", time.Date(2025, 4, 11, 12, 0, 0, 0, time.UTC)},
		{"next week", time.Date(2025, 4, 17, 12, 0, 0, 0, time.UTC)},
		{"next month", time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, ok := Resolve(c.phrase, ref)
		if !ok {
			t.Fatalf("Resolve(%q) not ok", c.phrase)
		}
		if !got.Equal(c.want) {
			t.Fatalf("Resolve(%q) = %v, want %v", c.phrase, got, c.want)
		}
	}
}

func TestResolveISO(t *testing.T) {
	ref := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	got, ok := Resolve("2025-06-01", ref)
	if !ok || got.Year() != 2025 || got.Month() != time.June || got.Day() != 1 {
		t.Fatalf("got %v ok=%v", got, ok)
	}
}

func TestResolveUnknownPhrase(t *testing.T) {
	ref := time.Now()
	if _, ok := Resolve("sometime soon", ref); ok {
		t.Fatal("expected unresolvable phrase")
	}
	if _, ok := Resolve("", ref); ok {
		t.Fatal("expected empty phrase to be unresolvable")
	}
}
