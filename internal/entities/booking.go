package entities

// Booking statuses as the upstream stores them.
const (
	StatusAgendado    = "agendado"
	StatusConfirmado  = "confirmado"
	StatusEmAndamento = "em_andamento"
	StatusConcluido   = "concluido"
	StatusCancelado   = "cancelado"
)

// Agendamento is a booking linking client, employee and service to a date
// and time range. Field names and JSON keys follow the upstream contract.
// Invariant: HorarioInicio < HorarioFim.
type Agendamento struct {
	AgendamentoID   int     `json:"agendamentoId"`
	EmpresaID       int     `json:"empresaId"`
	ClienteID       int     `json:"clienteId"`
	FuncionarioID   int     `json:"funcionarioId"`
	ServicoID       int     `json:"servicoId"`
	DataAgendamento string  `json:"dataAgendamento"` // YYYY-MM-DD
	HorarioInicio   string  `json:"horarioInicio"`   // HH:MM
	HorarioFim      string  `json:"horarioFim"`      // HH:MM
	Status          string  `json:"status"`
	Valor           float64 `json:"valor"`
	Observacoes     string  `json:"observacoes,omitempty"`
	ClienteNome     string  `json:"clienteNome,omitempty"`
	FuncionarioNome string  `json:"funcionarioNome,omitempty"`
	ServicoNome     string  `json:"servicoNome,omitempty"`
}

// Occupies reports whether the booking blocks the given slot start. A
// cancelled booking never occupies a slot.
func (a Agendamento) Occupies(slot string) bool {
	if a.Status == StatusCancelado {
		return false
	}
	return a.HorarioInicio == slot
}
