package booking

import (
	"context"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	Reserve(ctx context.Context, slotID, userID int64) error
	Confirm(ctx context.Context, slotID int64) error
	Release(ctx context.Context, slotID int64) error
	SetActive(ctx context.Context, slotID int64, active bool) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
