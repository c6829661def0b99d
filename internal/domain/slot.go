package domain

import (
	"fmt"
	"strings"
	"time"
)

// SlotState represents the booking state of a slot.
//
// Состояние бронирования и админская (де)активация разделены намеренно:
// неактивный слот нельзя резервировать, но занятый слот можно пометить
// неактивным, не снимая бронь.
type SlotState string

const (
	SlotAvailable SlotState = "available"
	SlotReserved  SlotState = "reserved" // платёж в ожидании
	SlotBooked    SlotState = "booked"   // платёж подтверждён
)

// Slot represents a single bookable (date, time-window) unit
type Slot struct {
	ID       int64
	Date     time.Time // только дата, время обнулено
	Window   TimeWindow
	Cost     int64 // цена для гостей (не прошедших верификацию)
	State    SlotState
	Active   bool
	BookedBy *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasBooking returns true if a user is attached to the slot
func (s *Slot) HasBooking() bool {
	return s.BookedBy != nil
}

// CanReserve returns true if the slot accepts a new reservation
func (s *Slot) CanReserve() bool {
	return s.Active && s.State == SlotAvailable
}

// Key returns the (date, window) identity used for idempotent generation
func (s *Slot) Key() SlotKey {
	return SlotKey{Date: s.Date.Format(DateFormat), Window: s.Window}
}

// SlotKey uniquely identifies a slot by its calendar position
type SlotKey struct {
	Date   string // YYYY-MM-DD
	Window TimeWindow
}

// TimeWindow временное окно слота в формате "HH:MM-HH:MM"
type TimeWindow string

// Validate проверяет формат окна
func (w TimeWindow) Validate() error {
	start, end, ok := w.bounds()
	if !ok {
		return fmt.Errorf("invalid time window format %q, expected HH:MM-HH:MM", string(w))
	}
	if !end.After(start) {
		return fmt.Errorf("time window %q ends before it starts", string(w))
	}
	return nil
}

// Start возвращает время начала окна ("HH:MM"); для сортировки и инвойсов
func (w TimeWindow) Start() string {
	if start, _, ok := w.bounds(); ok {
		return start.Format(TimeFormat)
	}
	return ""
}

func (w TimeWindow) String() string {
	return string(w)
}

func (w TimeWindow) bounds() (time.Time, time.Time, bool) {
	startStr, endStr, found := strings.Cut(string(w), "-")
	if !found {
		return time.Time{}, time.Time{}, false
	}
	start, err := time.Parse(TimeFormat, startStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(TimeFormat, endStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// DateRange инклюзивный диапазон дат [From, To] для выборок слотов
type DateRange struct {
	From time.Time
	To   time.Time
}

// Validate проверяет, что диапазон не вывернут
func (r DateRange) Validate() error {
	if r.To.Before(r.From) {
		return fmt.Errorf("invalid date range: %s is after %s",
			r.From.Format(DateFormat), r.To.Format(DateFormat))
	}
	return nil
}

// CategoryRate цена сеанса для категории пользователей
type CategoryRate struct {
	Category    UserCategory
	SessionCost int64
	UpdatedAt   time.Time
}
