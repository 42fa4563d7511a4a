package authn

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signed(t *testing.T, sub, person, iss string, secret string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		PersonID: person,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			Issuer:    iss,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestParseValidToken(t *testing.T) {
	v := New(Config{Secret: testSecret})

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+signed(t, "user-1", "person-1", "", testSecret))

	uid, pid, err := v.Parse(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if uid != "user-1" || pid != "person-1" {
		t.Fatalf("got uid=%q pid=%q", uid, pid)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	v := New(Config{Secret: testSecret})

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+signed(t, "user-1", "person-1", "", "other-secret"))

	if _, _, err := v.Parse(r); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestParseEnforcesIssuer(t *testing.T) {
	v := New(Config{Secret: testSecret, Issuer: "taskpulse"})

	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer "+signed(t, "user-1", "p", "someone-else", testSecret))

	if _, _, err := v.Parse(r); err == nil {
		t.Fatalf("expected issuer mismatch error")
	}
}

func TestParseMissingHeader(t *testing.T) {
	v := New(Config{Secret: testSecret})
	if _, _, err := v.Parse(httptest.NewRequest("GET", "/", nil)); err == nil {
		t.Fatalf("expected error for missing header")
	}
}
