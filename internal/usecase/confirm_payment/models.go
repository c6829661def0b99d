package confirm_payment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модель запроса подтверждения платежа (вебхук провайдера)
type Request struct {
	PaymentID   uuid.UUID // ID платежа из payload инвойса
	ExternalRef *string   // трекинг-номер провайдера
}

// Response модель ответа с подтверждённым платежом
type Response struct {
	PaymentID uuid.UUID
	SlotID    int64
	Amount    int64
	Status    domain.PaymentStatus // verified
}
