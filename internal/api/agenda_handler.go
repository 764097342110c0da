package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"barbertime/internal/service"
)

type AgendaHandler struct {
	Service *service.AgendaService
}

func NewAgendaHandler(svc *service.AgendaService) *AgendaHandler {
	return &AgendaHandler{Service: svc}
}

// FreeSlots answers GET /api/agenda/slots?empresaId=&funcionarioId=&date=.
func (h *AgendaHandler) FreeSlots(w http.ResponseWriter, r *http.Request) {
	empresaID, err := strconv.Atoi(r.URL.Query().Get("empresaId"))
	if err != nil || empresaID <= 0 {
		http.Error(w, "empresaId required", http.StatusBadRequest)
		return
	}
	funcionarioID, _ := strconv.Atoi(r.URL.Query().Get("funcionarioId"))
	date := r.URL.Query().Get("date")

	resp, err := h.Service.FreeSlotsForDay(r.Context(), empresaID, funcionarioID, date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AgendaHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.EmpresaID <= 0 {
		http.Error(w, "empresaId required", http.StatusBadRequest)
		return
	}
	quote, err := h.Service.QuoteServices(r.Context(), req.EmpresaID, req.ServicoIDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *AgendaHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	result, err := h.Service.CreateBooking(r.Context(), service.BookingRequest{
		EmpresaID:       req.EmpresaID,
		ClienteID:       req.ClienteID,
		FuncionarioID:   req.FuncionarioID,
		ServicoIDs:      req.ServicoIDs,
		DataAgendamento: req.DataAgendamento,
		HorarioInicio:   req.HorarioInicio,
		HorarioFim:      req.HorarioFim,
		Observacoes:     req.Observacoes,
		Valor:           req.Valor,
		ClienteNome:     req.ClienteNome,
		ClienteEmail:    req.ClienteEmail,
		ClienteTelefone: req.ClienteTelefone,
		EmpresaNome:     req.EmpresaNome,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// ListBookings mirrors the upstream contract: the company id travels in the
// request body, the optional date narrows to one day.
func (h *AgendaHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	var req ListBookingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.EmpresaID <= 0 {
		http.Error(w, "empresaId required", http.StatusBadRequest)
		return
	}
	bookings, err := h.Service.ListBookings(r.Context(), req.EmpresaID, req.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
