package api

// Auth
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

type CreateOperatorRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	State        string      `json:"state"`
	User         interface{} `json:"user,omitempty"`
	RedirectURL  string      `json:"redirectUrl,omitempty"`
	Message      string      `json:"message,omitempty"`
	DelaySeconds int         `json:"delaySeconds,omitempty"`
}

// Agenda
type QuoteRequest struct {
	EmpresaID  int   `json:"empresaId"`
	ServicoIDs []int `json:"servicoIds"`
}

type CreateBookingRequest struct {
	EmpresaID       int     `json:"empresaId"`
	ClienteID       int     `json:"clienteId"`
	FuncionarioID   int     `json:"funcionarioId"`
	ServicoIDs      []int   `json:"servicoIds"`
	DataAgendamento string  `json:"dataAgendamento"`
	HorarioInicio   string  `json:"horarioInicio"`
	HorarioFim      string  `json:"horarioFim,omitempty"`
	Observacoes     string  `json:"observacoes,omitempty"`
	Valor           float64 `json:"valor,omitempty"`
	ClienteNome     string  `json:"clienteNome,omitempty"`
	ClienteEmail    string  `json:"clienteEmail,omitempty"`
	ClienteTelefone string  `json:"clienteTelefone,omitempty"`
	EmpresaNome     string  `json:"empresaNome,omitempty"`
}

type ListBookingsRequest struct {
	EmpresaID int    `json:"empresaId"`
	Date      string `json:"date,omitempty"`
}

// Preferences
type ThemeRequest struct {
	Theme string `json:"theme"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
