package httpkit

import (
	"net/http"
	"strings"

	perrs "taskpulse/internal/platform/errors"
	pnet "taskpulse/internal/platform/net"
)

// User returns the authenticated account id from the request context
func User(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return uid, nil
}

// Person returns the authenticated person id from the request context
func Person(r *http.Request) (string, error) {
	pid := pnet.PersonID(r.Context())
	if pid == "" {
		return "", perrs.Unauthorizedf("missing person scope")
	}
	return pid, nil
}

// MustPerson returns the authenticated person id or panics
// only use on routes protected by the auth middleware
func MustPerson(r *http.Request) string {
	pid, err := Person(r)
	if err != nil {
		panic(err)
	}
	return pid
}

// JWT returns the raw bearer token from the Authorization header
func JWT(r *http.Request) (string, error) {
	authz := r.Header.Get("Authorization")
	if strings.TrimSpace(authz) == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	// case-insensitive Bearer prefix (don't trim the whole header first)
	const prefix = "bearer "
	if len(authz) < len(prefix) || strings.ToLower(authz[:len(prefix)]) != prefix {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(authz[len(prefix):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}
