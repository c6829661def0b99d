package admin

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, limit, offset uint64) ([]*domain.User, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	List(ctx context.Context, rng domain.DateRange) ([]*domain.Slot, error)
	ListBookedBy(ctx context.Context, userID int64, limit, offset uint64) ([]*domain.Slot, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	ListByUser(ctx context.Context, userID int64, limit, offset uint64) ([]*domain.Payment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
