package middleware

import (
	"net/http"

	pnet "taskpulse/internal/platform/net"
)

// AuthPort is the seam the auth service implements
type AuthPort interface {
	// Parse returns the account id and person id from the request or an error
	Parse(r *http.Request) (userID string, personID string, err error)
}

// Auth resolves the caller via the port and stashes the ids on context.
// A nil port leaves requests anonymous
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			uid, pid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithUser(r.Context(), uid)
			ctx = pnet.WithPerson(ctx, pid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
