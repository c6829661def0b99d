package reject_payment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модель запроса отклонения платежа
type Request struct {
	PaymentID uuid.UUID
	Reason    string // причина от провайдера или оператора, попадает в событие
}

// Response модель ответа с отклонённым платежом
type Response struct {
	PaymentID uuid.UUID
	SlotID    int64
	Status    domain.PaymentStatus // rejected
}
