package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barbertime/internal/entities"
	apperrors "barbertime/internal/errors"
)

func TestValidateReturnsProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/validate", r.URL.Path)
		assert.Equal(t, "abc", r.URL.Query().Get("token"))
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(entities.Profile{ID: "u1", Name: "Pedro", Email: "pedro@example.com"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	profile, err := client.Validate(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "u1", profile.ID)
	assert.Equal(t, "Pedro", profile.Name)
}

func TestValidateRejectsHalfFormedProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"email": "pedro@example.com"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.Validate(context.Background(), "abc")
	assert.ErrorIs(t, err, apperrors.ErrNetworkFailure)
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, apperrors.ErrInvalidToken},
		{"forbidden", http.StatusForbidden, apperrors.ErrInvalidToken},
		{"not found", http.StatusNotFound, apperrors.ErrNotFound},
		{"server error", http.StatusInternalServerError, apperrors.ErrNetworkFailure},
		{"bad gateway", http.StatusBadGateway, apperrors.ErrNetworkFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			defer srv.Close()

			client := NewClient(srv.URL, nil)
			_, err := client.Validate(context.Background(), "abc")
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestClientFourHundredCarriesUpstreamMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{"message": "horário já ocupado"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.CreateAgendamento(context.Background(), "tok", entities.Agendamento{})

	var httpErr *apperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.Code)
	assert.Equal(t, "horário já ocupado", httpErr.Message)
}

func TestLoginRequiresCompletePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"token": "abc"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	_, err := client.Login(context.Background(), "pedro@example.com", "secret")
	assert.ErrorIs(t, err, apperrors.ErrNetworkFailure)
}

func TestListAgendamentosPostsCompanyID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/agendamentos", r.URL.Path)
		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 7, body["empresaId"])
		json.NewEncoder(w).Encode([]entities.Agendamento{{AgendamentoID: 1, EmpresaID: 7}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	bookings, err := client.ListAgendamentos(context.Background(), "tok", 7)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, 7, bookings[0].EmpresaID)
}

func TestBaseURLTrailingSlashNormalized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/empresas", r.URL.Path)
		json.NewEncoder(w).Encode([]entities.Empresa{})
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", nil)
	_, err := client.ListEmpresas(context.Background(), "tok")
	assert.NoError(t, err)
}
