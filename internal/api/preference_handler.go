package api

import (
	"encoding/json"
	"net/http"

	"barbertime/internal/repository"
)

const themeKey = "theme"

type PreferenceHandler struct {
	Repo *repository.TokenRepository
}

func NewPreferenceHandler(repo *repository.TokenRepository) *PreferenceHandler {
	return &PreferenceHandler{Repo: repo}
}

func (h *PreferenceHandler) GetTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := h.Repo.GetPreference(r.Context(), themeKey)
	if err != nil {
		writeError(w, err)
		return
	}
	if theme == "" {
		theme = "light"
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": theme})
}

func (h *PreferenceHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	var req ThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Theme != "light" && req.Theme != "dark" {
		http.Error(w, "theme must be light or dark", http.StatusBadRequest)
		return
	}
	if err := h.Repo.SavePreference(r.Context(), themeKey, req.Theme); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"theme": req.Theme})
}
