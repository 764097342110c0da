package api

import (
	"encoding/json"
	"net/http"

	"barbertime/internal/entities"
	"barbertime/internal/service"
)

type EmpresaHandler struct {
	Service *service.EmpresaService
}

func NewEmpresaHandler(svc *service.EmpresaService) *EmpresaHandler {
	return &EmpresaHandler{Service: svc}
}

func (h *EmpresaHandler) List(w http.ResponseWriter, r *http.Request) {
	empresas, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, empresas)
}

func (h *EmpresaHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req entities.Empresa
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	created, err := h.Service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}
