package errors_test

import (
	stderrs "errors"
	"net/http"
	"testing"

	perr "taskpulse/internal/platform/errors"
)

func TestWrapPreservesCodeAndCause(t *testing.T) {
	cause := stderrs.New("boom")
	err := perr.Wrap(cause, perr.ErrorCodeGateway, "provider call failed")

	e, ok := perr.As(err)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if e.Code() != perr.ErrorCodeGateway {
		t.Fatalf("code: got %d", e.Code())
	}
	if !stderrs.Is(err, cause) {
		t.Fatalf("expected wrapped cause to be reachable via errors.Is")
	}
	if perr.Root(err) != cause {
		t.Fatalf("Root should return the deepest cause")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{perr.NotFoundf("person %s", "x"), http.StatusNotFound},
		{perr.Unauthorizedf("missing bearer token"), http.StatusUnauthorized},
		{perr.JSONErrf("bad json"), http.StatusBadRequest},
		{perr.Gatewayf("retries exhausted"), http.StatusServiceUnavailable},
		{perr.MalformedResponsef("no json found"), http.StatusBadGateway},
		{perr.DBf("query failed"), http.StatusInternalServerError},
		{stderrs.New("foreign"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := perr.HTTPStatus(c.err); got != c.want {
			t.Fatalf("HTTPStatus(%v): got %d want %d", c.err, got, c.want)
		}
	}
}

func TestWireFrom(t *testing.T) {
	w := perr.WireFrom(perr.WithField(perr.Newf(perr.ErrorCodeValidation, "title too long"), "title"))
	if w.Code != perr.ErrorCodeValidation || w.Field != "title" || w.Message != "title too long" {
		t.Fatalf("unexpected wire: %+v", w)
	}

	if w := perr.WireFrom(nil); w.Code != 0 || w.Message != "" {
		t.Fatalf("nil should map to zero wire, got %+v", w)
	}
}

func TestIsCode(t *testing.T) {
	err := perr.WithOp(perr.Unavailablef("transient"), "llm.transcribe")
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("expected unavailable code to survive WithOp")
	}
	e, _ := perr.As(err)
	if e.Op() != "llm.transcribe" {
		t.Fatalf("op: got %q", e.Op())
	}
}
