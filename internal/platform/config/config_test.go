package config

import (
	"testing"
	"time"
)

func TestPrefixViews(t *testing.T) {
	t.Setenv("TP_TEST_NAME", "alpha")
	t.Setenv("TP_TEST_RETRIES", "4")
	t.Setenv("TP_TEST_TIMEOUT", "45s")
	t.Setenv("TP_TEST_TAGS", "a, b ,,c")

	c := New().Prefix("TP_TEST_")

	if got := c.MayString("NAME", "x"); got != "alpha" {
		t.Fatalf("MayString = %q", got)
	}
	if got := c.MayInt("RETRIES", 1); got != 4 {
		t.Fatalf("MayInt = %d", got)
	}
	if got := c.MayDuration("TIMEOUT", time.Second); got != 45*time.Second {
		t.Fatalf("MayDuration = %v", got)
	}
	if got := c.MayCSV("TAGS", nil); len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Fatalf("MayCSV = %v", got)
	}
}

func TestDefaults(t *testing.T) {
	c := New().Prefix("TP_UNSET_")
	if got := c.MayString("NOPE", "fallback"); got != "fallback" {
		t.Fatalf("MayString default = %q", got)
	}
	if got := c.MayInt("NOPE", 7); got != 7 {
		t.Fatalf("MayInt default = %d", got)
	}
	if got := c.MayBool("NOPE", true); !got {
		t.Fatalf("MayBool default = %v", got)
	}
}
