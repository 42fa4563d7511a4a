package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	perr "taskpulse/internal/platform/errors"
	pnet "taskpulse/internal/platform/net"
)

type fakeAuth struct {
	uid, pid string
	err      error
}

func (f fakeAuth) Parse(*http.Request) (string, string, error) { return f.uid, f.pid, f.err }

func writeNop(w http.ResponseWriter, status int, _ any) { w.WriteHeader(status) }

func TestAuthStashesIDs(t *testing.T) {
	var gotPID string
	h := Auth(fakeAuth{uid: "u1", pid: "p1"}, writeNop)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPID = pnet.PersonID(r.Context())
		}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if gotPID != "p1" {
		t.Fatalf("person id = %q", gotPID)
	}
}

func TestAuthRejects(t *testing.T) {
	h := Auth(fakeAuth{err: perr.Unauthorizedf("bad token")}, writeNop)(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Fatal("handler should not run")
		}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthNilPortPassesThrough(t *testing.T) {
	ran := false
	h := Auth(nil, writeNop)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { ran = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	if !ran {
		t.Fatal("handler did not run")
	}
}
