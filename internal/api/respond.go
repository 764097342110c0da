package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	apperrors "barbertime/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("api: encoding response: %v", err)
	}
}

// writeError translates the failure taxonomy to HTTP. Validation failures
// come back as per-field messages so forms can render them inline.
func writeError(w http.ResponseWriter, err error) {
	var vf *apperrors.ValidationFailure
	if errors.As(err, &vf) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": vf.Fields,
		})
		return
	}
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		writeJSON(w, httpErr.Code, map[string]string{"error": httpErr.Message})
		return
	}
	switch {
	case errors.Is(err, apperrors.ErrInvalidToken):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "sessão inválida"})
	case errors.Is(err, apperrors.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "não encontrado"})
	case errors.Is(err, apperrors.ErrNetworkFailure):
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "serviço indisponível"})
	default:
		log.Printf("api: internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "erro interno"})
	}
}
