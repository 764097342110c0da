// Package session owns the gateway's single authenticated session: token
// lifecycle, validation against the upstream, and the guard state machine.
// The manager never navigates or writes HTTP responses; every operation
// returns an Outcome value the HTTP layer interprets.
package session

import (
	"context"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"barbertime/internal/entities"
)

// State is the guard state. Protected content is never served while the
// manager is still Loading.
type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Action tells the caller what to do with an Outcome.
type Action int

const (
	ActionNone Action = iota
	ActionRedirect
)

// Outcome is the result of a session operation. When Action is
// ActionRedirect, Delay is how long the caller should leave any Message
// visible before applying the redirect.
type Outcome struct {
	State       State
	Action      Action
	RedirectURL string
	Message     string
	Delay       time.Duration
}

// Validator is what the manager needs from the upstream.
type Validator interface {
	Validate(ctx context.Context, token string) (*entities.Profile, error)
	Logout(ctx context.Context, token string) error
}

// TokenStore is the durable storage behind the session, the server-side
// analog of the browser's localStorage. An absent token is ("", nil).
type TokenStore interface {
	GetToken(ctx context.Context) (string, error)
	SaveToken(ctx context.Context, token string, profile entities.Profile) error
	DeleteToken(ctx context.Context) error
}

type Manager struct {
	mu       sync.Mutex
	upstream Validator
	store    TokenStore

	authRedirectURL string
	returnURL       string
	redirectDelay   time.Duration

	state   State
	current entities.Session
}

func NewManager(upstream Validator, store TokenStore, authRedirectURL, returnURL string, redirectDelay time.Duration) *Manager {
	return &Manager{
		upstream:        upstream,
		store:           store,
		authRedirectURL: authRedirectURL,
		returnURL:       returnURL,
		redirectDelay:   redirectDelay,
		state:           StateLoading,
	}
}

// Initialize resolves the session on startup or after an SSO redirect.
// Priority: a stored token matching the held, validated session is a fast
// path with zero network calls; otherwise a stored token is validated;
// otherwise a query-parameter token is validated (the HTTP layer strips it
// from the visible URL); with no token at all the outcome is an immediate
// redirect to the external auth surface.
func (m *Manager) Initialize(ctx context.Context, queryToken string) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, err := m.store.GetToken(ctx)
	if err != nil {
		log.Printf("session: reading stored token: %v", err)
		stored = ""
	}

	if stored != "" && m.current.Validated && stored == m.current.Token {
		return Outcome{State: m.state}
	}
	if stored != "" {
		return m.validateLocked(ctx, stored)
	}
	if queryToken != "" {
		return m.validateLocked(ctx, queryToken)
	}

	m.state = StateUnauthenticated
	m.current = entities.Session{}
	return Outcome{
		State:       m.state,
		Action:      ActionRedirect,
		RedirectURL: m.redirectURL(),
	}
}

// ValidateToken validates a caller-supplied token (the SSO callback path).
func (m *Manager) ValidateToken(ctx context.Context, token string) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current.Validated && token == m.current.Token {
		return Outcome{State: m.state}
	}
	return m.validateLocked(ctx, token)
}

// validateLocked runs one validation round trip. Failure is terminal:
// the persisted token is cleared and the outcome always redirects. No
// retries.
func (m *Manager) validateLocked(ctx context.Context, token string) Outcome {
	profile, err := m.upstream.Validate(ctx, token)
	if err != nil {
		log.Printf("session: token validation failed: %v", err)
		if delErr := m.store.DeleteToken(ctx); delErr != nil {
			log.Printf("session: clearing stored token: %v", delErr)
		}
		m.current = entities.Session{}
		m.state = StateUnauthenticated
		return Outcome{
			State:       m.state,
			Action:      ActionRedirect,
			RedirectURL: m.redirectURL(),
			Message:     "Sessão inválida ou expirada. Redirecionando para o login...",
			Delay:       m.redirectDelay,
		}
	}

	if err := m.store.SaveToken(ctx, token, *profile); err != nil {
		// the session survives in memory; only resumption after a
		// restart is at risk
		log.Printf("session: persisting token: %v", err)
	}
	m.current = entities.Session{Token: token, User: *profile, Validated: true}
	m.state = StateAuthenticated
	return Outcome{State: m.state}
}

// Install establishes a session from a fresh login response without a
// second validation round trip.
func (m *Manager) Install(ctx context.Context, token string, profile entities.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.SaveToken(ctx, token, profile); err != nil {
		log.Printf("session: persisting token: %v", err)
	}
	m.current = entities.Session{Token: token, User: profile, Validated: true}
	m.state = StateAuthenticated
	return nil
}

// Logout tears the session down. The upstream call is best-effort; local
// state and the persisted token are cleared regardless.
func (m *Manager) Logout(ctx context.Context) Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current.Token != "" {
		if err := m.upstream.Logout(ctx, m.current.Token); err != nil {
			log.Printf("session: upstream logout failed: %v", err)
		}
	}
	if err := m.store.DeleteToken(ctx); err != nil {
		log.Printf("session: clearing stored token: %v", err)
	}
	m.current = entities.Session{}
	m.state = StateUnauthenticated
	return Outcome{
		State:       m.state,
		Action:      ActionRedirect,
		RedirectURL: m.redirectURL(),
	}
}

// State returns the current guard state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current returns a copy of the held session.
func (m *Manager) Current() entities.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Token returns the bearer token protected calls should carry, or "".
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.current.Validated {
		return ""
	}
	return m.current.Token
}

func (m *Manager) redirectURL() string {
	ret := CleanReturnURL(m.returnURL)
	sep := "?"
	if strings.Contains(m.authRedirectURL, "?") {
		sep = "&"
	}
	return m.authRedirectURL + sep + "return=" + url.QueryEscape(ret)
}

// CleanReturnURL prepares a location to be used as an SSO return URL: any
// existing access_token query parameter is stripped and any fragment marker
// is substituted so it survives the round trip.
func CleanReturnURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return strings.ReplaceAll(raw, "#", "%23")
	}
	q := u.Query()
	q.Del("access_token")
	u.RawQuery = q.Encode()
	fragment := u.Fragment
	u.Fragment = ""
	out := u.String()
	if fragment != "" {
		out += "%23" + fragment
	}
	return out
}
