// Package authn verifies bearer tokens for the API surface.
// Token issuance lives elsewhere; this side only parses and validates
package authn

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"taskpulse/internal/platform/config"
	perr "taskpulse/internal/platform/errors"
)

// Config carries verifier settings, read from the AUTH_ prefix
type Config struct {
	// Secret is the HS256 signing secret shared with the issuer
	Secret string

	// Issuer, when set, is enforced against the iss claim
	Issuer string
}

// FromConfig reads verifier settings from a prefixed view
func FromConfig(cfg config.Conf) Config {
	return Config{
		Secret: cfg.MustString("SECRET"),
		Issuer: cfg.MayString("ISSUER", ""),
	}
}

// Verifier parses HS256 bearer tokens into account and person ids
type Verifier struct {
	secret []byte
	issuer string
}

// New constructs a Verifier
func New(cfg Config) *Verifier {
	if cfg.Secret == "" {
		panic("authn.Verifier requires a signing secret")
	}
	return &Verifier{secret: []byte(cfg.Secret), issuer: cfg.Issuer}
}

type claims struct {
	PersonID string `json:"person_id"`
	jwt.RegisteredClaims
}

// Parse implements middleware.AuthPort
func (v *Verifier) Parse(r *http.Request) (string, string, error) {
	raw, err := bearer(r)
	if err != nil {
		return "", "", err
	}

	var c claims
	tok, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, perr.Unauthorizedf("unexpected signing method %q", t.Method.Alg())
		}
		return v.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", "", perr.Unauthorizedf("invalid bearer token")
	}
	if v.issuer != "" && c.Issuer != v.issuer {
		return "", "", perr.Unauthorizedf("invalid token issuer")
	}
	if c.Subject == "" {
		return "", "", perr.Unauthorizedf("token missing subject")
	}
	return c.Subject, c.PersonID, nil
}

func bearer(r *http.Request) (string, error) {
	authz := r.Header.Get("Authorization")
	const prefix = "bearer "
	if len(authz) < len(prefix) || !strings.EqualFold(authz[:len(prefix)], prefix) {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(authz[len(prefix):])
	if raw == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}
