package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbertime/internal/entities"
	apperrors "barbertime/internal/errors"
	"barbertime/internal/service"
	"barbertime/internal/session"
)

type fakeDirectory struct {
	bookings []entities.Agendamento
	servicos []entities.Servico
}

func (f *fakeDirectory) ListAgendamentos(ctx context.Context, token string, empresaID int) ([]entities.Agendamento, error) {
	return f.bookings, nil
}

func (f *fakeDirectory) ListServicos(ctx context.Context, token string, empresaID int) ([]entities.Servico, error) {
	return f.servicos, nil
}

func (f *fakeDirectory) CreateAgendamento(ctx context.Context, token string, a entities.Agendamento) (*entities.Agendamento, error) {
	a.AgendamentoID = 1
	return &a, nil
}

type staticTokens struct{}

func (staticTokens) Token() string { return "tok" }

type rejectingValidator struct{}

func (rejectingValidator) Validate(ctx context.Context, token string) (*entities.Profile, error) {
	return nil, errors.New("rejected")
}

func (rejectingValidator) Logout(ctx context.Context, token string) error { return nil }

type memoryStore struct {
	token string
}

func (m *memoryStore) GetToken(ctx context.Context) (string, error) { return m.token, nil }

func (m *memoryStore) SaveToken(ctx context.Context, token string, profile entities.Profile) error {
	m.token = token
	return nil
}

func (m *memoryStore) DeleteToken(ctx context.Context) error {
	m.token = ""
	return nil
}

func newTestManager() *session.Manager {
	return session.NewManager(rejectingValidator{}, &memoryStore{},
		"https://sso.example.com/login", "https://panel.example.com/agenda", 3*time.Second)
}

func TestFreeSlotsRequiresCompany(t *testing.T) {
	h := NewAgendaHandler(service.NewAgendaService(&fakeDirectory{}, staticTokens{}, nil, false, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/agenda/slots?date=2026-03-10", nil)
	rec := httptest.NewRecorder()
	h.FreeSlots(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFreeSlotsHappyPath(t *testing.T) {
	dir := &fakeDirectory{bookings: []entities.Agendamento{
		{DataAgendamento: "2026-03-10", FuncionarioID: 1, HorarioInicio: "08:00", HorarioFim: "08:30", Status: entities.StatusAgendado},
	}}
	h := NewAgendaHandler(service.NewAgendaService(dir, staticTokens{}, nil, false, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/agenda/slots?empresaId=1&funcionarioId=1&date=2026-03-10", nil)
	rec := httptest.NewRecorder()
	h.FreeSlots(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp entities.FreeSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotContains(t, resp.FreeSlots, "08:00")
	assert.Contains(t, resp.FreeSlots, "08:30")
}

func TestFreeSlotsBadDateReturnsFieldErrors(t *testing.T) {
	h := NewAgendaHandler(service.NewAgendaService(&fakeDirectory{}, staticTokens{}, nil, false, nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/agenda/slots?empresaId=1&date=10-03-2026", nil)
	rec := httptest.NewRecorder()
	h.FreeSlots(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Fields, "date")
}

func TestQuoteEndpoint(t *testing.T) {
	dir := &fakeDirectory{servicos: []entities.Servico{
		{ServicoID: 1, Nome: "Corte", Preco: 30, DuracaoMinutos: 30, Ativo: true},
		{ServicoID: 2, Nome: "Barba", Preco: 20, DuracaoMinutos: 20, Ativo: true},
	}}
	h := NewAgendaHandler(service.NewAgendaService(dir, staticTokens{}, nil, false, nil, nil))

	req := httptest.NewRequest(http.MethodPost, "/api/agenda/quote",
		strings.NewReader(`{"empresaId":1,"servicoIds":[2,1]}`))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var quote entities.Quote
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
	assert.Equal(t, 50.0, quote.PrecoTotal)
	assert.Equal(t, 50, quote.DuracaoTotal)
}

func TestSessionEndpointResolvesOnFirstPoll(t *testing.T) {
	manager := newTestManager()
	h := NewAuthHandler(service.NewAuthService(nil, manager, nil, nil), manager)

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	rec := httptest.NewRecorder()
	h.Session(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthenticated", body.State)
	assert.Contains(t, body.RedirectURL, "https://sso.example.com/login?return=")
	assert.Empty(t, body.Message)
	assert.Zero(t, body.DelaySeconds)
	assert.Equal(t, session.StateUnauthenticated, manager.State())
}

func TestSSOCallbackWithoutToken(t *testing.T) {
	manager := newTestManager()
	h := NewAuthHandler(service.NewAuthService(nil, manager, nil, nil), manager)

	req := httptest.NewRequest(http.MethodGet, "/api/sso/callback", nil)
	rec := httptest.NewRecorder()
	h.SSOCallback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSSOCallbackFailureRendersRedirectPage(t *testing.T) {
	manager := newTestManager()
	h := NewAuthHandler(service.NewAuthService(nil, manager, nil, nil), manager)

	req := httptest.NewRequest(http.MethodGet, "/api/sso/callback?access_token=bad", nil)
	rec := httptest.NewRecorder()
	h.SSOCallback(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "Sessão inválida ou expirada")
	assert.Contains(t, body, "http-equiv=\"refresh\"")
	assert.Contains(t, body, "content=\"3;")
}

func TestWriteErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", apperrors.ErrInvalidToken, http.StatusUnauthorized},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound},
		{"network failure", apperrors.ErrNetworkFailure, http.StatusBadGateway},
		{"http error", apperrors.NewHTTPError(http.StatusConflict, "horário já ocupado"), http.StatusConflict},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
