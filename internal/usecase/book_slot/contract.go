package book_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// BookingService интерфейс сервиса бронирования
type BookingService interface {
	GetSlot(ctx context.Context, slotID int64) (*domain.Slot, error)
	Reserve(ctx context.Context, slotID, userID int64) error
}

// CatalogService интерфейс каталога тарифов
type CatalogService interface {
	RateFor(ctx context.Context, category domain.UserCategory) (int64, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
}

// InvoiceProvider интерфейс платёжного транспорта
type InvoiceProvider interface {
	OpenInvoice(ctx context.Context, userID int64, paymentID string, slot *domain.Slot, amount int64) error
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
