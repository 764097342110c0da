package service

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"barbertime/internal/agenda"
	"barbertime/internal/entities"
	apperrors "barbertime/internal/errors"
)

// TokenSource yields the bearer token protected upstream calls carry.
// *session.Manager satisfies it.
type TokenSource interface {
	Token() string
}

// Directory is the slice of the upstream client the agenda flow needs.
type Directory interface {
	ListAgendamentos(ctx context.Context, token string, empresaID int) ([]entities.Agendamento, error)
	ListServicos(ctx context.Context, token string, empresaID int) ([]entities.Servico, error)
	CreateAgendamento(ctx context.Context, token string, a entities.Agendamento) (*entities.Agendamento, error)
}

// AgendaService computes availability, quotes service selections and
// creates bookings against the upstream.
type AgendaService struct {
	upstream     Directory
	tokens       TokenSource
	catalog      []string
	overlapAware bool
	sender       *SenderService
	payments     *PaymentService
}

func NewAgendaService(upstream Directory, tokens TokenSource, catalog []string, overlapAware bool, sender *SenderService, payments *PaymentService) *AgendaService {
	if len(catalog) == 0 {
		catalog = agenda.DefaultSlotCatalog
	}
	return &AgendaService{
		upstream:     upstream,
		tokens:       tokens,
		catalog:      catalog,
		overlapAware: overlapAware,
		sender:       sender,
		payments:     payments,
	}
}

// FreeSlotsForDay returns the slot starts still bookable for a company (and
// optionally a single employee) on a day.
func (s *AgendaService) FreeSlotsForDay(ctx context.Context, empresaID, funcionarioID int, date string) (*entities.FreeSlotsResponse, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		vf := apperrors.NewValidationFailure()
		vf.Add("date", "data deve estar no formato YYYY-MM-DD")
		return nil, vf
	}

	bookings, err := s.bookingsForDay(ctx, empresaID, funcionarioID, date)
	if err != nil {
		return nil, err
	}

	free := s.freeSlots(bookings)
	return &entities.FreeSlotsResponse{
		EmpresaID:     empresaID,
		FuncionarioID: funcionarioID,
		Date:          date,
		FreeSlots:     free,
		AllSlotsTaken: len(free) == 0,
	}, nil
}

// QuoteServices aggregates a service-id selection against the company's
// active catalog.
func (s *AgendaService) QuoteServices(ctx context.Context, empresaID int, servicoIDs []int) (*entities.Quote, error) {
	catalog, err := s.activeServicos(ctx, empresaID)
	if err != nil {
		return nil, err
	}
	quote := agenda.Quote(servicoIDs, catalog)
	return &quote, nil
}

// BookingRequest is a booking as the panel submits it. ServicoIDs may name
// several services; the quote decides value and duration when the request
// leaves them blank.
type BookingRequest struct {
	EmpresaID       int
	ClienteID       int
	FuncionarioID   int
	ServicoIDs      []int
	DataAgendamento string
	HorarioInicio   string
	HorarioFim      string
	Observacoes     string
	Valor           float64
	ClienteNome     string
	ClienteEmail    string
	ClienteTelefone string
	EmpresaNome     string
}

type BookingResult struct {
	Agendamento entities.Agendamento
	Quote       entities.Quote
	PaymentURL  string `json:"paymentUrl,omitempty"`
}

// CreateBooking validates the request, confirms the slot is still free,
// creates the booking upstream and fires confirmations (and the deposit
// checkout when payments are enabled).
func (s *AgendaService) CreateBooking(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	if vf := s.validateBooking(req); !vf.Empty() {
		return nil, vf
	}

	quote, err := s.QuoteServices(ctx, req.EmpresaID, req.ServicoIDs)
	if err != nil {
		return nil, err
	}
	if len(quote.Servicos) == 0 {
		vf := apperrors.NewValidationFailure()
		vf.Add("servicoIds", "nenhum serviço selecionado foi encontrado no catálogo")
		return nil, vf
	}

	valor := req.Valor
	if valor == 0 {
		valor = quote.PrecoTotal
	}
	horarioFim := req.HorarioFim
	if horarioFim == "" {
		horarioFim, err = addMinutes(req.HorarioInicio, quote.DuracaoTotal)
		if err != nil {
			return nil, err
		}
	}
	if !agenda.ValidRange(req.HorarioInicio, horarioFim) {
		vf := apperrors.NewValidationFailure()
		vf.Add("horarioFim", "horário de fim deve ser depois do início")
		return nil, vf
	}

	bookings, err := s.bookingsForDay(ctx, req.EmpresaID, req.FuncionarioID, req.DataAgendamento)
	if err != nil {
		return nil, err
	}
	if !containsSlot(s.freeSlots(bookings), req.HorarioInicio) {
		return nil, apperrors.NewHTTPError(http.StatusConflict, "horário já ocupado")
	}

	created, err := s.upstream.CreateAgendamento(ctx, s.tokens.Token(), entities.Agendamento{
		EmpresaID:       req.EmpresaID,
		ClienteID:       req.ClienteID,
		FuncionarioID:   req.FuncionarioID,
		ServicoID:       quote.Servicos[0].ServicoID,
		DataAgendamento: req.DataAgendamento,
		HorarioInicio:   req.HorarioInicio,
		HorarioFim:      horarioFim,
		Status:          entities.StatusAgendado,
		Valor:           valor,
		Observacoes:     req.Observacoes,
	})
	if err != nil {
		return nil, err
	}

	result := &BookingResult{Agendamento: *created, Quote: *quote}

	if s.payments != nil {
		code := fmt.Sprintf("AG-%06d", created.AgendamentoID)
		description := fmt.Sprintf("Sinal de agendamento %s - %s", code, quote.Servicos[0].Nome)
		url, payErr := s.payments.CreateDepositCheckout(ctx, code, description, req.ClienteEmail, valor)
		if payErr != nil {
			// booking stands; the deposit can be collected on site
			log.Printf("agenda: deposit checkout for %s failed: %v", code, payErr)
		} else {
			result.PaymentURL = url
		}
	}

	if s.sender != nil {
		data := entities.BookingEmailData{
			ClienteNome:   req.ClienteNome,
			EmpresaNome:   req.EmpresaNome,
			ServicoNome:   quote.Servicos[0].Nome,
			DataFormatted: formatDateBR(req.DataAgendamento),
			HorarioInicio: req.HorarioInicio,
			HorarioFim:    horarioFim,
			Status:        entities.StatusAgendado,
			Valor:         valor,
		}
		if req.ClienteEmail != "" {
			s.sender.SendBookingEmail(req.ClienteEmail, data)
		}
		if req.ClienteTelefone != "" {
			s.sender.SendBookingSMS(req.ClienteTelefone, data)
		}
	}

	return result, nil
}

// ListBookings returns a company's bookings, optionally narrowed to a day.
func (s *AgendaService) ListBookings(ctx context.Context, empresaID int, date string) ([]entities.Agendamento, error) {
	all, err := s.upstream.ListAgendamentos(ctx, s.tokens.Token(), empresaID)
	if err != nil {
		return nil, err
	}
	if date == "" {
		return all, nil
	}
	var filtered []entities.Agendamento
	for _, b := range all {
		if b.DataAgendamento == date {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

func (s *AgendaService) validateBooking(req BookingRequest) *apperrors.ValidationFailure {
	vf := apperrors.NewValidationFailure()
	if req.EmpresaID <= 0 {
		vf.Add("empresaId", "empresa é obrigatória")
	}
	if req.ClienteID <= 0 {
		vf.Add("clienteId", "cliente é obrigatório")
	}
	if req.FuncionarioID <= 0 {
		vf.Add("funcionarioId", "funcionário é obrigatório")
	}
	if len(req.ServicoIDs) == 0 {
		vf.Add("servicoIds", "selecione ao menos um serviço")
	}
	if _, err := time.Parse("2006-01-02", req.DataAgendamento); err != nil {
		vf.Add("dataAgendamento", "data deve estar no formato YYYY-MM-DD")
	}
	if !containsSlot(s.catalog, req.HorarioInicio) {
		vf.Add("horarioInicio", "horário fora da grade de atendimento")
	}
	return vf
}

func (s *AgendaService) bookingsForDay(ctx context.Context, empresaID, funcionarioID int, date string) ([]entities.Agendamento, error) {
	all, err := s.upstream.ListAgendamentos(ctx, s.tokens.Token(), empresaID)
	if err != nil {
		return nil, err
	}
	var day []entities.Agendamento
	for _, b := range all {
		if b.DataAgendamento != date {
			continue
		}
		if funcionarioID > 0 && b.FuncionarioID != funcionarioID {
			continue
		}
		day = append(day, b)
	}
	return day, nil
}

func (s *AgendaService) freeSlots(bookings []entities.Agendamento) []string {
	if s.overlapAware {
		return agenda.FreeSlotsOverlap(s.catalog, bookings)
	}
	return agenda.FreeSlots(s.catalog, bookings)
}

func (s *AgendaService) activeServicos(ctx context.Context, empresaID int) ([]entities.Servico, error) {
	all, err := s.upstream.ListServicos(ctx, s.tokens.Token(), empresaID)
	if err != nil {
		return nil, err
	}
	var active []entities.Servico
	for _, sv := range all {
		if sv.Ativo {
			active = append(active, sv)
		}
	}
	return active, nil
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

func addMinutes(clock string, minutes int) (string, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return "", fmt.Errorf("invalid time %q", clock)
	}
	return t.Add(time.Duration(minutes) * time.Minute).Format("15:04"), nil
}

func formatDateBR(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}
