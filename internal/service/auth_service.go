package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"barbertime/internal/auth"
	"barbertime/internal/entities"
	"barbertime/internal/repository"
	"barbertime/internal/session"
	"barbertime/internal/upstream"
)

// Authenticator is the slice of the upstream client the auth flow needs.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*upstream.AuthResult, error)
	Register(ctx context.Context, req upstream.RegisterRequest) (*upstream.AuthResult, error)
}

// AuthService establishes sessions: upstream credentials login, the SSO
// token path (delegated to the session manager) and local break-glass
// operator login.
type AuthService struct {
	upstream  Authenticator
	manager   *session.Manager
	operators repository.OperatorRepository
	issuer    *auth.Issuer
}

func NewAuthService(up Authenticator, manager *session.Manager, operators repository.OperatorRepository, issuer *auth.Issuer) *AuthService {
	return &AuthService{
		upstream:  up,
		manager:   manager,
		operators: operators,
		issuer:    issuer,
	}
}

// LoginResult carries the minted panel token and the profile behind it.
type LoginResult struct {
	PanelToken string           `json:"token"`
	User       entities.Profile `json:"user"`
}

// Login authenticates against the upstream, installs the session and mints
// a panel token for the browser.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	result, err := s.upstream.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.manager.Install(ctx, result.Token, result.User); err != nil {
		return nil, err
	}
	panelToken, err := s.issuer.Issue(ctx, result.User.ID, result.User.Name, result.User.Email, false)
	if err != nil {
		return nil, fmt.Errorf("issuing panel token: %w", err)
	}
	return &LoginResult{PanelToken: panelToken, User: result.User}, nil
}

// Register creates an account upstream and signs the new user in.
func (s *AuthService) Register(ctx context.Context, req upstream.RegisterRequest) (*LoginResult, error) {
	result, err := s.upstream.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.manager.Install(ctx, result.Token, result.User); err != nil {
		return nil, err
	}
	panelToken, err := s.issuer.Issue(ctx, result.User.ID, result.User.Name, result.User.Email, false)
	if err != nil {
		return nil, fmt.Errorf("issuing panel token: %w", err)
	}
	return &LoginResult{PanelToken: panelToken, User: result.User}, nil
}

// LocalLogin authenticates a break-glass operator against the local store.
// No upstream session is involved; the minted token is marked local.
func (s *AuthService) LocalLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	operator, err := s.operators.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}

	panelToken, err := s.issuer.Issue(ctx, operator.Email, operator.Email, operator.Email, true)
	if err != nil {
		return nil, fmt.Errorf("issuing panel token: %w", err)
	}
	return &LoginResult{
		PanelToken: panelToken,
		User:       entities.Profile{ID: operator.Email, Name: operator.Email, Email: operator.Email, Perfil: "SUPORTE"},
	}, nil
}

// CreateOperator provisions a local break-glass account.
func (s *AuthService) CreateOperator(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return errors.New("email and password cannot be empty")
	}
	return s.operators.Create(ctx, email, password)
}

// SSOCallback finishes the external login round trip: the token arriving on
// the callback URL is validated and, on success, a panel token is minted for
// the profile behind it. On failure the outcome carries the redirect back to
// the auth surface.
func (s *AuthService) SSOCallback(ctx context.Context, token string) (*LoginResult, session.Outcome) {
	outcome := s.manager.ValidateToken(ctx, token)
	if outcome.State != session.StateAuthenticated {
		return nil, outcome
	}
	user := s.manager.Current().User
	panelToken, err := s.issuer.Issue(ctx, user.ID, user.Name, user.Email, false)
	if err != nil {
		log.Printf("auth: issuing panel token after callback: %v", err)
		return nil, s.manager.Logout(ctx)
	}
	return &LoginResult{PanelToken: panelToken, User: user}, outcome
}

// Logout revokes the subject's panel tokens and tears the shared session
// down. The returned outcome carries the external redirect.
func (s *AuthService) Logout(ctx context.Context, subject string) session.Outcome {
	if subject != "" {
		if err := s.issuer.Revoke(ctx, subject); err != nil {
			// tokens still expire naturally
			log.Printf("auth: revoking panel tokens for %s: %v", subject, err)
		}
	}
	return s.manager.Logout(ctx)
}
