package entities

// BookingEmailData feeds the confirmation email template.
type BookingEmailData struct {
	ClienteNome   string
	EmpresaNome   string
	ServicoNome   string
	DataFormatted string
	HorarioInicio string
	HorarioFim    string
	Status        string
	Valor         float64
	CurrentYear   int
}
