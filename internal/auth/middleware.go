package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"barbertime/internal/session"
)

type claimsContextKey struct{}

// PanelVerifier is what the guard needs to check a panel token. *Issuer
// satisfies it.
type PanelVerifier interface {
	Verify(ctx context.Context, tokenString string) (*Claims, error)
}

// GuardState exposes the session manager's guard state. *session.Manager
// satisfies it.
type GuardState interface {
	State() session.State
}

// Guard is the protected-route gate. While the session store is still
// resolving its initial validation, nothing is served (the spinner analog:
// 503 + Retry-After). Unauthenticated requests get the login payload in
// place. A valid panel token from a local operator bypasses the session
// state so the panel stays reachable while the SSO surface is down.
func Guard(mgr GuardState, verifier PanelVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				if mgr.State() == session.StateLoading {
					w.Header().Set("Retry-After", "1")
					http.Error(w, "session initializing", http.StatusServiceUnavailable)
					return
				}
				writeUnauthenticated(w)
				return
			}
			claims, err := verifier.Verify(r.Context(), strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeUnauthenticated(w)
				return
			}

			if !claims.Local {
				switch mgr.State() {
				case session.StateLoading:
					w.Header().Set("Retry-After", "1")
					http.Error(w, "session initializing", http.StatusServiceUnavailable)
					return
				case session.StateUnauthenticated:
					writeUnauthenticated(w)
					return
				}
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified panel claims set by Guard.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*Claims)
	return claims, ok
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error": "unauthenticated",
		"login": "/api/login",
	})
}
