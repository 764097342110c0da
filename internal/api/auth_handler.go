package api

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"

	"barbertime/internal/auth"
	"barbertime/internal/service"
	"barbertime/internal/session"
	"barbertime/internal/upstream"
)

type AuthHandler struct {
	Auth    *service.AuthService
	Manager *session.Manager
}

func NewAuthHandler(authSvc *service.AuthService, manager *session.Manager) *AuthHandler {
	return &AuthHandler{Auth: authSvc, Manager: manager}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	result, err := h.Auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) LocalLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	result, err := h.Auth.LocalLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "credenciais inválidas"})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	result, err := h.Auth.Register(r.Context(), upstream.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *AuthHandler) CreateOperator(w http.ResponseWriter, r *http.Request) {
	var req CreateOperatorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if err := h.Auth.CreateOperator(r.Context(), req.Email, req.Password); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "operador criado"})
}

// Session reports the guard state. While the manager is still loading it
// resolves the session in place, so the first poll after startup settles it.
// The access_token query parameter covers panels that land here straight
// from the SSO redirect.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	var outcome session.Outcome
	queryToken := r.URL.Query().Get("access_token")
	if h.Manager.State() == session.StateLoading || queryToken != "" {
		outcome = h.Manager.Initialize(r.Context(), queryToken)
	} else {
		outcome = session.Outcome{State: h.Manager.State()}
	}

	resp := SessionResponse{State: outcome.State.String()}
	if outcome.State == session.StateAuthenticated {
		resp.User = h.Manager.Current().User
	}
	if outcome.Action == session.ActionRedirect {
		resp.RedirectURL = outcome.RedirectURL
		if outcome.Message != "" {
			resp.Message = outcome.Message
			resp.DelaySeconds = int(outcome.Delay.Seconds())
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	subject := ""
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		subject = claims.Subject
	}
	outcome := h.Auth.Logout(r.Context(), subject)
	writeJSON(w, http.StatusOK, SessionResponse{
		State:       outcome.State.String(),
		RedirectURL: outcome.RedirectURL,
	})
}

var callbackFailurePage = template.Must(template.New("callback").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="{{.Delay}};url={{.URL}}">
<title>BarberTime</title>
</head>
<body>
<p>{{.Message}}</p>
</body>
</html>`))

// SSOCallback receives the browser back from the external auth surface.
// Success redirects to the panel with the minted token in the URL fragment,
// keeping it out of server logs on the way. Failure renders a short page
// with the outcome message and a delayed redirect back to the login.
func (h *AuthHandler) SSOCallback(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("access_token")
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		http.Error(w, "access_token required", http.StatusBadRequest)
		return
	}

	result, outcome := h.Auth.SSOCallback(r.Context(), token)
	if result == nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		err := callbackFailurePage.Execute(w, map[string]interface{}{
			"Delay":   int(outcome.Delay.Seconds()),
			"URL":     outcome.RedirectURL,
			"Message": outcome.Message,
		})
		if err != nil {
			log.Printf("api: rendering callback page: %v", err)
		}
		return
	}

	returnTo := session.CleanReturnURL(r.URL.Query().Get("return"))
	if returnTo == "" {
		returnTo = "/"
	}
	http.Redirect(w, r, fmt.Sprintf("%s#token=%s", returnTo, result.PanelToken), http.StatusFound)
}
