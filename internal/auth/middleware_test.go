package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbertime/internal/session"
)

type fakeState struct {
	state session.State
}

func (f fakeState) State() session.State { return f.state }

type fakeVerifier struct {
	claims *Claims
	err    error
}

func (f fakeVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	return f.claims, f.err
}

func guardedEcho(mgr GuardState, verifier PanelVerifier) http.Handler {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return Guard(mgr, verifier)(inner)
}

func doGuarded(t *testing.T, mgr GuardState, verifier PanelVerifier, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/empresas", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	guardedEcho(mgr, verifier).ServeHTTP(rec, req)
	return rec
}

func TestGuardNoTokenWhileLoading(t *testing.T) {
	rec := doGuarded(t, fakeState{session.StateLoading}, fakeVerifier{}, "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestGuardNoTokenUnauthenticated(t *testing.T) {
	rec := doGuarded(t, fakeState{session.StateUnauthenticated}, fakeVerifier{}, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthenticated", body["error"])
	assert.Equal(t, "/api/login", body["login"])
}

func TestGuardInvalidToken(t *testing.T) {
	verifier := fakeVerifier{err: errors.New("invalid panel token")}
	rec := doGuarded(t, fakeState{session.StateAuthenticated}, verifier, "bad")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGuardValidTokenAuthenticated(t *testing.T) {
	verifier := fakeVerifier{claims: &Claims{Name: "Pedro"}}
	rec := doGuarded(t, fakeState{session.StateAuthenticated}, verifier, "ok")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuardSSOTokenBlockedWhileSessionDown(t *testing.T) {
	verifier := fakeVerifier{claims: &Claims{Name: "Pedro"}}

	rec := doGuarded(t, fakeState{session.StateUnauthenticated}, verifier, "ok")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doGuarded(t, fakeState{session.StateLoading}, verifier, "ok")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGuardLocalTokenBypassesSessionState(t *testing.T) {
	verifier := fakeVerifier{claims: &Claims{Name: "suporte", Local: true}}

	for _, state := range []session.State{session.StateLoading, session.StateUnauthenticated, session.StateAuthenticated} {
		rec := doGuarded(t, fakeState{state}, verifier, "ok")
		assert.Equal(t, http.StatusOK, rec.Code, "state %s", state)
	}
}

func TestClaimsReachTheHandler(t *testing.T) {
	verifier := fakeVerifier{claims: &Claims{Name: "Pedro", Email: "pedro@example.com"}}
	var got *Claims
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Guard(fakeState{session.StateAuthenticated}, verifier)(inner)

	req := httptest.NewRequest(http.MethodGet, "/api/empresas", nil)
	req.Header.Set("Authorization", "Bearer ok")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, "pedro@example.com", got.Email)
}
