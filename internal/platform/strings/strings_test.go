package strings

import "testing"

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("héllo", 3); got != "hél" {
		t.Fatalf("got %q", got)
	}
	if got := TruncateRunes("ok", 10); got != "ok" {
		t.Fatalf("got %q", got)
	}
	if got := TruncateRunes("x", 0); got != "" {
		t.Fatalf("got %q", got)
	}
}

func TestCollapseSpace(t *testing.T) {
	if got := CollapseSpace("  a \t b\n\nc "); got != "a b c" {
		t.Fatalf("got %q", got)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", "x", "y"); got != "x" {
		t.Fatalf("got %q", got)
	}
}
