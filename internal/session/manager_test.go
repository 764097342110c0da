package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"barbertime/internal/entities"
)

type fakeUpstream struct {
	validateCalls int
	logoutCalls   int
	validateErr   error
	logoutErr     error
	profile       entities.Profile
}

func (f *fakeUpstream) Validate(ctx context.Context, token string) (*entities.Profile, error) {
	f.validateCalls++
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	p := f.profile
	return &p, nil
}

func (f *fakeUpstream) Logout(ctx context.Context, token string) error {
	f.logoutCalls++
	return f.logoutErr
}

type fakeStore struct {
	token   string
	profile entities.Profile
	saveErr error
}

func (f *fakeStore) GetToken(ctx context.Context) (string, error) { return f.token, nil }

func (f *fakeStore) SaveToken(ctx context.Context, token string, profile entities.Profile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.token = token
	f.profile = profile
	return nil
}

func (f *fakeStore) DeleteToken(ctx context.Context) error {
	f.token = ""
	f.profile = entities.Profile{}
	return nil
}

func newTestManager(up *fakeUpstream, st *fakeStore) *Manager {
	return NewManager(up, st, "https://sso.example.com/auth", "https://panel.example.com/", 2*time.Second)
}

func TestInitializeFastPathSkipsRevalidation(t *testing.T) {
	up := &fakeUpstream{profile: entities.Profile{ID: "1", Name: "Jo"}}
	st := &fakeStore{token: "tok-1"}
	m := newTestManager(up, st)

	first := m.Initialize(context.Background(), "")
	assert.Equal(t, StateAuthenticated, first.State)
	assert.Equal(t, 1, up.validateCalls)

	second := m.Initialize(context.Background(), "")
	assert.Equal(t, StateAuthenticated, second.State)
	assert.Equal(t, ActionNone, second.Action)
	assert.Equal(t, 1, up.validateCalls, "fast path must not revalidate")
}

func TestInitializeWithoutAnyTokenRedirectsOnce(t *testing.T) {
	up := &fakeUpstream{}
	st := &fakeStore{}
	m := newTestManager(up, st)

	out := m.Initialize(context.Background(), "")
	assert.Equal(t, StateUnauthenticated, out.State)
	assert.Equal(t, ActionRedirect, out.Action)
	assert.Contains(t, out.RedirectURL, "https://sso.example.com/auth?return=")
	assert.Zero(t, up.validateCalls)
	assert.NotEqual(t, StateAuthenticated, m.State())
}

func TestInitializeConsumesQueryToken(t *testing.T) {
	up := &fakeUpstream{profile: entities.Profile{ID: "7", Name: "Maria"}}
	st := &fakeStore{}
	m := newTestManager(up, st)

	out := m.Initialize(context.Background(), "sso-token")
	assert.Equal(t, StateAuthenticated, out.State)
	assert.Equal(t, "sso-token", st.token, "token must be persisted")
	assert.Equal(t, "Maria", m.Current().User.Name)
}

func TestValidationFailureIsTerminal(t *testing.T) {
	up := &fakeUpstream{validateErr: errors.New("rejected")}
	st := &fakeStore{token: "stale"}
	m := newTestManager(up, st)

	out := m.Initialize(context.Background(), "")
	assert.Equal(t, StateUnauthenticated, out.State)
	assert.Equal(t, ActionRedirect, out.Action)
	assert.NotEmpty(t, out.Message)
	assert.Equal(t, 2*time.Second, out.Delay)
	assert.Empty(t, st.token, "persisted token must be cleared")
	assert.Equal(t, 1, up.validateCalls, "no retries on failure")
}

func TestLogoutClearsStateEvenWhenUpstreamFails(t *testing.T) {
	up := &fakeUpstream{profile: entities.Profile{ID: "1", Name: "Jo"}, logoutErr: errors.New("boom")}
	st := &fakeStore{token: "tok-1"}
	m := newTestManager(up, st)
	m.Initialize(context.Background(), "")

	out := m.Logout(context.Background())
	assert.Equal(t, StateUnauthenticated, out.State)
	assert.Equal(t, ActionRedirect, out.Action)
	assert.Equal(t, 1, up.logoutCalls)
	assert.Empty(t, st.token)
	assert.Empty(t, m.Token())
}

func TestInstallEstablishesSessionWithoutValidation(t *testing.T) {
	up := &fakeUpstream{}
	st := &fakeStore{}
	m := newTestManager(up, st)

	err := m.Install(context.Background(), "fresh", entities.Profile{ID: "2", Name: "Ana"})
	assert.NoError(t, err)
	assert.Equal(t, StateAuthenticated, m.State())
	assert.Equal(t, "fresh", m.Token())
	assert.Zero(t, up.validateCalls)
}

func TestValidateTokenFastPathForHeldToken(t *testing.T) {
	up := &fakeUpstream{profile: entities.Profile{ID: "1", Name: "Jo"}}
	st := &fakeStore{token: "tok-1"}
	m := newTestManager(up, st)
	m.Initialize(context.Background(), "")

	out := m.ValidateToken(context.Background(), "tok-1")
	assert.Equal(t, StateAuthenticated, out.State)
	assert.Equal(t, 1, up.validateCalls)
}

func TestCleanReturnURL(t *testing.T) {
	got := CleanReturnURL("https://panel.example.com/home?access_token=abc&tab=2")
	assert.NotContains(t, got, "access_token")
	assert.Contains(t, got, "tab=2")

	got = CleanReturnURL("https://panel.example.com/home#agenda")
	assert.NotContains(t, got, "#")
	assert.Contains(t, got, "%23agenda")
}
