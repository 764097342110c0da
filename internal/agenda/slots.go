package agenda

import (
	"fmt"
	"strconv"
	"strings"

	"barbertime/internal/entities"
)

// DefaultSlotCatalog is the fixed grid of bookable slot starts: every 30
// minutes within business hours, with the 11:30-14:00 lunch gap. It is a
// process-wide constant, not derived from data.
var DefaultSlotCatalog = []string{
	"08:00", "08:30", "09:00", "09:30",
	"10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30",
	"16:00", "16:30", "17:00", "17:30",
	"18:00",
}

// FreeSlots returns the catalog slots not taken by any booking, matching by
// exact start time. Ordering is preserved from the catalog. This is the
// behavior the legacy panel shipped with: a 45-minute booking does not block
// the next 30-minute slot it partially covers. FreeSlotsOverlap is the
// duration-aware variant.
func FreeSlots(catalog []string, bookings []entities.Agendamento) []string {
	free := make([]string, 0, len(catalog))
	for _, slot := range catalog {
		taken := false
		for _, b := range bookings {
			if b.Occupies(slot) {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, slot)
		}
	}
	return free
}

// FreeSlotsOverlap returns the catalog slots whose start does not fall
// inside any booking's [inicio, fim) interval. Slots with an unparseable
// time are kept, mirroring FreeSlots for malformed data.
func FreeSlotsOverlap(catalog []string, bookings []entities.Agendamento) []string {
	free := make([]string, 0, len(catalog))
	for _, slot := range catalog {
		start, err := parseClock(slot)
		if err != nil {
			free = append(free, slot)
			continue
		}
		taken := false
		for _, b := range bookings {
			if b.Status == entities.StatusCancelado {
				continue
			}
			ini, errIni := parseClock(b.HorarioInicio)
			fim, errFim := parseClock(b.HorarioFim)
			if errIni != nil || errFim != nil {
				// fall back to exact matching for malformed bookings
				if b.HorarioInicio == slot {
					taken = true
					break
				}
				continue
			}
			if start >= ini && start < fim {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, slot)
		}
	}
	return free
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*60 + m, nil
}

// ValidRange reports whether inicio and fim are well-formed clock values
// with inicio strictly before fim.
func ValidRange(inicio, fim string) bool {
	a, errA := parseClock(inicio)
	b, errB := parseClock(fim)
	return errA == nil && errB == nil && a < b
}
