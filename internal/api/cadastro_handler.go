package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"barbertime/internal/entities"
	"barbertime/internal/service"
)

type CadastroHandler struct {
	Service *service.CadastroService
}

func NewCadastroHandler(svc *service.CadastroService) *CadastroHandler {
	return &CadastroHandler{Service: svc}
}

func (h *CadastroHandler) CreateCliente(w http.ResponseWriter, r *http.Request) {
	var req entities.Cliente
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	created, err := h.Service.CreateCliente(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CadastroHandler) CreateServico(w http.ResponseWriter, r *http.Request) {
	var req entities.Servico
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	created, err := h.Service.CreateServico(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *CadastroHandler) ListServicos(w http.ResponseWriter, r *http.Request) {
	empresaID, err := strconv.Atoi(r.URL.Query().Get("empresaId"))
	if err != nil || empresaID <= 0 {
		http.Error(w, "empresaId required", http.StatusBadRequest)
		return
	}
	servicos, err := h.Service.ListServicos(r.Context(), empresaID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, servicos)
}
