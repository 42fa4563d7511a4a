package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestInitAndContextFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Format: "json", Service: "test", Writer: &buf})

	ctx := WithRequest(context.Background(), "req-123", "person-9")
	C(ctx).Info().Msg("hello")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"req-123"`) {
		t.Fatalf("missing request_id in %q", out)
	}
	if !strings.Contains(out, `"person_id":"person-9"`) {
		t.Fatalf("missing person_id in %q", out)
	}
	if !strings.Contains(out, `"service":"test"`) {
		t.Fatalf("missing service field in %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"info":    "info",
		"WARN":    "warn",
		"warning": "warn",
		"bogus":   "debug",
		"":        "debug",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Fatalf("parseLevel(%q) = %q, want %q", in, got, want)
		}
	}
}
