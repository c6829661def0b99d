package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the lifecycle state of a payment.
//
// Допустимые переходы:
//
//	pending  -> verified
//	pending  -> rejected
//	verified -> refunded
//
// Статус никогда не движется назад; rejected и refunded терминальные.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentRejected PaymentStatus = "rejected"
	PaymentRefunded PaymentStatus = "refunded"
)

// CanTransitionTo returns true if the transition is permitted
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	switch s {
	case PaymentPending:
		return next == PaymentVerified || next == PaymentRejected
	case PaymentVerified:
		return next == PaymentRefunded
	default:
		return false
	}
}

// IsTerminal returns true if no further transition is possible
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentRejected || s == PaymentRefunded
}

// Payment represents a payment record linked to one booking attempt
type Payment struct {
	ID          uuid.UUID
	SlotID      int64
	UserID      int64
	Amount      int64 // отрицательная сумма - сторнирующая запись возврата
	Status      PaymentStatus
	ExternalRef *string // трекинг-номер провайдера, присваивается при подтверждении
	RefundOf    *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRefundEntry returns true for the negative audit entry created by a refund
func (p *Payment) IsRefundEntry() bool {
	return p.RefundOf != nil
}
