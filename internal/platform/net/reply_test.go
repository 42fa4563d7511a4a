package net

import (
	"net/http"
	"testing"

	perr "taskpulse/internal/platform/errors"
)

func TestOKEnvelope(t *testing.T) {
	status, w := OK(map[string]int{"n": 1}, "req-1")
	if status != http.StatusOK || w.StatusCode != http.StatusOK {
		t.Fatalf("status = %d wire = %d", status, w.StatusCode)
	}
	if w.RequestID != "req-1" {
		t.Fatalf("request id = %q", w.RequestID)
	}
}

func TestErrorEnvelope(t *testing.T) {
	status, w := Error(perr.NotFoundf("person %s", "p1"), "req-2")
	if status != http.StatusNotFound {
		t.Fatalf("status = %d", status)
	}
	if w.Code != perr.ErrorCodeNotFound || w.Error == "" {
		t.Fatalf("wire = %+v", w)
	}
}

func TestErrorNilIsOK(t *testing.T) {
	status, _ := Error(nil, "")
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
}
