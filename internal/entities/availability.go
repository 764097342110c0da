package entities

// FreeSlotsResponse lists the slot starts still bookable on a day. A fully
// booked day is reported explicitly through AllSlotsTaken so callers never
// have to guess from an empty list.
type FreeSlotsResponse struct {
	EmpresaID     int      `json:"empresaId"`
	FuncionarioID int      `json:"funcionarioId,omitempty"`
	Date          string   `json:"date"`
	FreeSlots     []string `json:"freeSlots"`
	AllSlotsTaken bool     `json:"allSlotsTaken"`
}
