// Package upstream is the typed client for the external BarberApp API.
// The gateway owns no entity data; every empresa, funcionario, cliente,
// servico and agendamento lives behind these endpoints.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"barbertime/internal/entities"
	apperrors "barbertime/internal/errors"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// AuthResult is the payload of a successful login or registration.
type AuthResult struct {
	Token string           `json:"token"`
	User  entities.Profile `json:"user"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/login", "", body, &out); err != nil {
		return nil, err
	}
	if out.Token == "" || out.User.ID == "" {
		return nil, fmt.Errorf("login: malformed payload: %w", apperrors.ErrNetworkFailure)
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", req, &out); err != nil {
		return nil, err
	}
	if out.Token == "" || out.User.ID == "" {
		return nil, fmt.Errorf("register: malformed payload: %w", apperrors.ErrNetworkFailure)
	}
	return &out, nil
}

// Validate checks a token against the upstream. A rejection maps to
// ErrInvalidToken; everything else is a NetworkFailure. The profile is
// decoded strictly so a half-formed payload is never trusted.
func (c *Client) Validate(ctx context.Context, token string) (*entities.Profile, error) {
	var out entities.Profile
	path := "/validate?token=" + url.QueryEscape(token)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	if out.ID == "" || out.Name == "" {
		return nil, fmt.Errorf("validate: malformed payload: %w", apperrors.ErrNetworkFailure)
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	path := "/logout?token=" + url.QueryEscape(token)
	return c.do(ctx, http.MethodGet, path, token, nil, nil)
}

func (c *Client) ListEmpresas(ctx context.Context, token string) ([]entities.Empresa, error) {
	var out []entities.Empresa
	if err := c.do(ctx, http.MethodGet, "/empresas", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateEmpresa(ctx context.Context, token string, empresa entities.Empresa) (*entities.Empresa, error) {
	var out entities.Empresa
	if err := c.do(ctx, http.MethodPost, "/empresa", token, empresa, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListFuncionarios(ctx context.Context, token string, empresaID int) ([]entities.Funcionario, error) {
	path := "/funcionarios"
	if empresaID > 0 {
		path += "?empresaId=" + strconv.Itoa(empresaID)
	}
	var out []entities.Funcionario
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateFuncionario(ctx context.Context, token string, f entities.Funcionario) (*entities.Funcionario, error) {
	var out entities.Funcionario
	if err := c.do(ctx, http.MethodPost, "/funcionario", token, f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateFuncionario(ctx context.Context, token string, id int, f entities.Funcionario) (*entities.Funcionario, error) {
	var out entities.Funcionario
	path := "/funcionario/" + strconv.Itoa(id)
	if err := c.do(ctx, http.MethodPut, path, token, f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteFuncionario(ctx context.Context, token string, id int) error {
	path := "/funcionario/" + strconv.Itoa(id)
	return c.do(ctx, http.MethodDelete, path, token, nil, nil)
}

func (c *Client) CreateAgendamento(ctx context.Context, token string, a entities.Agendamento) (*entities.Agendamento, error) {
	var out entities.Agendamento
	if err := c.do(ctx, http.MethodPost, "/agendamento", token, a, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListAgendamentos fetches a company's bookings. The upstream exposes the
// listing as a POST carrying the company id in the body.
func (c *Client) ListAgendamentos(ctx context.Context, token string, empresaID int) ([]entities.Agendamento, error) {
	body := map[string]int{"empresaId": empresaID}
	var out []entities.Agendamento
	if err := c.do(ctx, http.MethodPost, "/agendamentos", token, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCliente(ctx context.Context, token string, cliente entities.Cliente) (*entities.Cliente, error) {
	var out entities.Cliente
	if err := c.do(ctx, http.MethodPost, "/cliente", token, cliente, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateServico(ctx context.Context, token string, servico entities.Servico) (*entities.Servico, error) {
	var out entities.Servico
	if err := c.do(ctx, http.MethodPost, "/servicos", token, servico, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListServicos(ctx context.Context, token string, empresaID int) ([]entities.Servico, error) {
	path := "/servicos"
	if empresaID > 0 {
		path += "?empresaId=" + strconv.Itoa(empresaID)
	}
	var out []entities.Servico
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json;charset=UTF-8")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %v: %w", method, path, err, apperrors.ErrNetworkFailure)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, apperrors.ErrInvalidToken)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, apperrors.ErrNotFound)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, apperrors.ErrNetworkFailure)
	case resp.StatusCode >= 400:
		return apperrors.NewHTTPError(resp.StatusCode, readErrorMessage(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decoding response: %v: %w", method, path, err, apperrors.ErrNetworkFailure)
	}
	return nil
}

func readErrorMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return "upstream rejected the request"
}
