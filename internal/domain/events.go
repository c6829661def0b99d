package domain

import "time"

// Event types published to the broker for the transport layer to render
const (
	EventSlotBooked      = "slot.booked"
	EventPaymentVerified = "payment.verified"
	EventBookingReleased = "booking.released"
)

// Event доменное событие ядра
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`

	SlotID      int64  `json:"slot_id,omitempty"`
	SessionDate string `json:"session_date,omitempty"`
	Window      string `json:"window,omitempty"`
	UserID      int64  `json:"user_id,omitempty"`
	PaymentID   string `json:"payment_id,omitempty"`
	Amount      int64  `json:"amount,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// NewSlotBooked событие: слот переведен в booked
func NewSlotBooked(slot *Slot, userID int64, now time.Time) Event {
	return Event{
		Type:        EventSlotBooked,
		OccurredAt:  now,
		SlotID:      slot.ID,
		SessionDate: slot.Date.Format(DateFormat),
		Window:      slot.Window.String(),
		UserID:      userID,
	}
}

// NewPaymentVerified событие: платёж подтверждён провайдером
func NewPaymentVerified(p *Payment, now time.Time) Event {
	return Event{
		Type:       EventPaymentVerified,
		OccurredAt: now,
		SlotID:     p.SlotID,
		UserID:     p.UserID,
		PaymentID:  p.ID.String(),
		Amount:     p.Amount,
	}
}

// NewBookingReleased событие: бронь снята (возврат, отклонение или админ)
func NewBookingReleased(slot *Slot, userID int64, reason string, now time.Time) Event {
	return Event{
		Type:        EventBookingReleased,
		OccurredAt:  now,
		SlotID:      slot.ID,
		SessionDate: slot.Date.Format(DateFormat),
		Window:      slot.Window.String(),
		UserID:      userID,
		Reason:      reason,
	}
}
