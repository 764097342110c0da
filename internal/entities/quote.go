package entities

// Quote aggregates the selected services of a booking for display and
// confirmation. Totals cover resolved services only; ids with no catalog
// match are dropped and echoed back in UnknownIDs.
type Quote struct {
	PrecoTotal   float64   `json:"precoTotal"`
	DuracaoTotal int       `json:"duracaoTotal"`
	Servicos     []Servico `json:"servicosSelecionados"`
	UnknownIDs   []int     `json:"unknownIds,omitempty"`
}
