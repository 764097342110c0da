package entities

// Servico is an immutable catalog entry owned by the upstream. Bookings
// reference it, never own it.
type Servico struct {
	ServicoID      int     `json:"servicoId"`
	EmpresaID      int     `json:"empresaId"`
	Nome           string  `json:"nome"`
	Descricao      string  `json:"descricao,omitempty"`
	DuracaoMinutos int     `json:"duracaoMinutos"`
	Preco          float64 `json:"preco"`
	Categoria      string  `json:"categoria,omitempty"`
	Ativo          bool    `json:"ativo"`
}

// Empresa is a tenant company (barbershop) owning employees, services and
// bookings.
type Empresa struct {
	EmpresaID int    `json:"empresaId"`
	Nome      string `json:"nome"`
	Endereco  string `json:"endereco,omitempty"`
	Cidade    string `json:"cidade,omitempty"`
	Telefone  string `json:"telefone,omitempty"`
	Ativo     bool   `json:"ativo"`
}

// Funcionario is an employee record tied to a company.
type Funcionario struct {
	FuncionarioID int    `json:"funcionarioId"`
	EmpresaID     int    `json:"empresaId"`
	Nome          string `json:"nome"`
	Email         string `json:"email,omitempty"`
	Telefone      string `json:"telefone,omitempty"`
	Cargo         string `json:"cargo,omitempty"`
	Ativo         bool   `json:"ativo"`
}

// Cliente is the person a booking is made for.
type Cliente struct {
	ClienteID int    `json:"clienteId"`
	Nome      string `json:"nome"`
	Email     string `json:"email,omitempty"`
	Telefone  string `json:"telefone,omitempty"`
}
