package book_slot

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// Request модель запроса на бронирование слота
type Request struct {
	UserID int64 // ID пользователя (Telegram ID)
	SlotID int64 // ID слота
}

// Response модель ответа с открытым платежом
type Response struct {
	PaymentID uuid.UUID            // ID открытого платежа
	SlotID    int64                // ID зарезервированного слота
	Date      time.Time            // Дата сеанса
	Window    domain.TimeWindow    // Временное окно
	Amount    int64                // Сумма к оплате
	Status    domain.PaymentStatus // Статус платежа (pending)
}
