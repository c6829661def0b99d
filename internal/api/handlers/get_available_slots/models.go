package get_available_slots

import (
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// SlotResponse HTTP модель свободного слота
type SlotResponse struct {
	ID     int64  `json:"id"`
	Date   string `json:"date"`
	Window string `json:"window"`
	Cost   int64  `json:"cost"`
}

// SlotsResponse HTTP модель списка свободных слотов
type SlotsResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomain конвертирует слоты, отбрасывая занятые и отключённые
func FromDomain(slots []*domain.Slot) *SlotsResponse {
	resp := &SlotsResponse{Slots: make([]SlotResponse, 0, len(slots))}
	for _, s := range slots {
		if !s.CanReserve() {
			continue
		}
		resp.Slots = append(resp.Slots, SlotResponse{
			ID:     s.ID,
			Date:   s.Date.Format(domain.DateFormat),
			Window: s.Window.String(),
			Cost:   s.Cost,
		})
	}
	return resp
}
