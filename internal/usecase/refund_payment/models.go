package refund_payment

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модель запроса возврата платежа
type Request struct {
	PaymentID  uuid.UUID
	OperatorID int64 // инициатор, должен иметь роль оператора
}

// Response модель ответа по оформленному возврату
type Response struct {
	PaymentID    uuid.UUID            // исходный платёж, теперь refunded
	RefundID     uuid.UUID            // сторнирующая запись с отрицательной суммой
	SlotID       int64                // освобождённый слот
	RefundAmount int64                // отрицательная сумма возврата
	Status       domain.PaymentStatus // refunded
}
