package confirm_payment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to domain.PaymentStatus, externalRef *string) error
}

// BookingService интерфейс сервиса бронирования
type BookingService interface {
	GetSlot(ctx context.Context, slotID int64) (*domain.Slot, error)
	Confirm(ctx context.Context, slotID int64) error
}

// EventPublisher интерфейс публикации доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// Notifier интерфейс best-effort уведомлений пользователя
type Notifier interface {
	SendText(ctx context.Context, userID int64, text string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
